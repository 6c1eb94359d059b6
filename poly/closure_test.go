package poly

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

// openUnitSquare is the NNC square 0 < x < 1, 0 < y < 1.
func openUnitSquare(t *testing.T) *Poly {
	t.Helper()
	p := NewUniverse(2, topology.NNC)
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.Strict)))
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(1, -1, 0), conset.Strict)))
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.Strict)))
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(1, 0, -1), conset.Strict)))
	return p
}

func TestTopologicalClosureAssign_RelaxesStrict(t *testing.T) {
	p := openUnitSquare(t)
	require.NoError(t, p.TopologicalClosureAssign())
	cons, err := p.Constraints()
	require.NoError(t, err)
	for i := 0; i < cons.NumSk(); i++ {
		require.NotEqual(t, conset.Strict, cons.Sk(i).Kind())
	}
	// The closure is the closed unit square, which still entails x >= 0.
	origin, _ := conset.NewPoint(mkExpr(0, 0), rational.NewInt(1))
	rel, err := p.Relation(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict))
	require.NoError(t, err)
	require.True(t, rel.Has(RelIsIncluded))
	_ = origin
}

func TestSetTopology_ClosedToNNCIsFree(t *testing.T) {
	p := NewUniverse(2, topology.Closed)
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	require.NoError(t, p.SetTopology(topology.NNC))
	require.Equal(t, topology.NNC, p.Topology())
	// widening to NNC must not have introduced any strictness.
	cons, err := p.Constraints()
	require.NoError(t, err)
	for i := 0; i < cons.NumSk(); i++ {
		require.NotEqual(t, conset.Strict, cons.Sk(i).Kind())
	}
}

func TestSetTopology_NNCToClosedTakesClosureFirst(t *testing.T) {
	p := openUnitSquare(t)
	require.NoError(t, p.SetTopology(topology.Closed))
	require.Equal(t, topology.Closed, p.Topology())
	cons, err := p.Constraints()
	require.NoError(t, err)
	for i := 0; i < cons.NumSk(); i++ {
		require.NotEqual(t, conset.Strict, cons.Sk(i).Kind())
	}
}

func TestTimeElapseAssign_UnboundsAlongQsDirections(t *testing.T) {
	// p is the single point (0,0); q is the ray along +x.
	origin, err := conset.NewPoint(mkExpr(0, 0), rational.NewInt(1))
	require.NoError(t, err)
	p, err := FromGens(topology.Closed, func() *conset.GenSys {
		gs := conset.NewGenSys(2)
		require.NoError(t, gs.AppendSk(origin))
		return gs
	}())
	require.NoError(t, err)

	q := NewUniverse(2, topology.Closed)
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(0, 0, 1), conset.Equality)))
	require.NoError(t, q.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))

	require.NoError(t, p.TimeElapseAssign(q))
	bounded, err := p.IsBounded()
	require.NoError(t, err)
	require.False(t, bounded)

	rel, err := p.Relation(conset.NewCon(conExpr(0, 0, 1), conset.Equality))
	require.NoError(t, err)
	require.True(t, rel.Has(RelIsIncluded))
}
