package minimize

import (
	"testing"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
	"github.com/stretchr/testify/require"
)

func mkExpr(cs ...int64) *linexpr.LinExpr {
	e := linexpr.New(len(cs))
	for i, c := range cs {
		e.SetCoeff(linexpr.Var(i), rational.NewInt(c))
	}
	return e
}

func conExpr(inhomo int64, cs ...int64) *linexpr.LinExpr {
	e := mkExpr(cs...)
	e.SetInhomo(rational.NewInt(inhomo))
	return e
}

func TestCons_DropsRedundantRow(t *testing.T) {
	cons := conset.NewConSys(2)
	require.NoError(t, cons.AppendCon(conset.NewCon(mkExpr(1, 0), conset.NonStrict)))
	require.NoError(t, cons.AppendCon(conset.NewCon(mkExpr(0, 1), conset.NonStrict)))
	require.NoError(t, cons.AppendCon(conset.NewCon(conExpr(2, -1, -1), conset.NonStrict)))
	// Redundant: implied by the first two rows plus the sum constraint
	// (x <= 3 never binds inside the triangle x,y >= 0, x+y <= 2).
	require.NoError(t, cons.AppendCon(conset.NewCon(conExpr(3, -1, 0), conset.NonStrict)))

	minCons, minGens, sat, err := Cons(topology.Closed, cons)
	require.NoError(t, err)
	require.True(t, minGens.HasPoint())
	require.Equal(t, 3, minCons.NumSk(), "the redundant x<=3 row must be dropped")
	require.True(t, sat.VerifyTranspose())
}

func TestCons_EmptyWhenInconsistent(t *testing.T) {
	cons := conset.NewConSys(1)
	require.NoError(t, cons.AppendCon(conset.NewCon(mkExpr(1), conset.NonStrict)))
	require.NoError(t, cons.AppendCon(conset.NewCon(conExpr(-5, -1), conset.NonStrict)))

	minCons, minGens, _, err := Cons(topology.Closed, cons)
	require.NoError(t, err)
	require.False(t, minGens.HasPoint())
	require.Equal(t, 0, minGens.NumSk())
	found := false
	for i := 0; i < minCons.NumSk(); i++ {
		if minCons.Sk(i).IsInconsistent() {
			found = true
		}
	}
	require.True(t, found)
}

func TestCons_NonStrictDroppedWhenStrictTwinPresent(t *testing.T) {
	cons := conset.NewConSys(1)
	require.NoError(t, cons.AppendCon(conset.NewCon(mkExpr(1), conset.Strict)))
	require.NoError(t, cons.AppendCon(conset.NewCon(mkExpr(1), conset.NonStrict)))
	require.NoError(t, cons.AppendCon(conset.NewCon(conExpr(4, -1), conset.NonStrict)))

	minCons, _, _, err := Cons(topology.NNC, cons)
	require.NoError(t, err)
	for i := 0; i < minCons.NumSk(); i++ {
		c := minCons.Sk(i)
		if c.Expr().Equal(mkExpr(1)) {
			require.Equal(t, conset.Strict, c.Kind())
		}
	}
}

func TestGens_DualOfCons(t *testing.T) {
	gens := conset.NewGenSys(2)
	origin, err := conset.NewPoint(mkExpr(0, 0), rational.NewInt(1))
	require.NoError(t, err)
	p1, err := conset.NewPoint(mkExpr(2, 0), rational.NewInt(1))
	require.NoError(t, err)
	p2, err := conset.NewPoint(mkExpr(0, 2), rational.NewInt(1))
	require.NoError(t, err)
	require.NoError(t, gens.AppendGen(origin))
	require.NoError(t, gens.AppendGen(p1))
	require.NoError(t, gens.AppendGen(p2))
	// Duplicate row: should collapse away.
	require.NoError(t, gens.AppendGen(origin))

	minGens, minCons, sat, err := Gens(topology.Closed, gens)
	require.NoError(t, err)
	require.Equal(t, 3, minGens.NumSk())
	require.Equal(t, 3, minCons.NumSk())
	require.True(t, sat.VerifyTranspose())
}
