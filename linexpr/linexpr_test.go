package linexpr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/polylib/ppl/rational"
	"github.com/stretchr/testify/require"
)

func mkExpr(cs ...int64) *LinExpr {
	e := New(len(cs))
	for i, c := range cs {
		e.SetCoeff(Var(i), rational.NewInt(c))
	}
	return e
}

func TestLinExpr_ExtendDim(t *testing.T) {
	e := mkExpr(1, 2)
	e.ExtendDim(4)
	require.Equal(t, 4, e.Dim())
	require.True(t, e.Coeff(2).IsZero())
	require.True(t, e.Coeff(3).IsZero())
}

func TestLinExpr_SwapDims(t *testing.T) {
	e := mkExpr(1, 2, 3)
	e.SwapDims(0, 2)
	require.Equal(t, "3", e.Coeff(0).String())
	require.Equal(t, "1", e.Coeff(2).String())
}

func TestLinExpr_ShiftFrom(t *testing.T) {
	e := mkExpr(1, 2, 3)
	e.ShiftFrom(1, 2)
	require.Equal(t, 5, e.Dim())
	require.Equal(t, "1", e.Coeff(0).String())
	require.True(t, e.Coeff(1).IsZero())
	require.True(t, e.Coeff(2).IsZero())
	require.Equal(t, "2", e.Coeff(3).String())
	require.Equal(t, "3", e.Coeff(4).String())
}

func TestLinExpr_DropDims(t *testing.T) {
	e := mkExpr(1, 2, 3, 4)
	e.DropDims([]Var{1, 3})
	require.Equal(t, 2, e.Dim())
	require.Equal(t, "1", e.Coeff(0).String())
	require.Equal(t, "3", e.Coeff(1).String())
}

func TestLinExpr_Permute(t *testing.T) {
	e := mkExpr(1, 2, 3)
	err := e.Permute([]Var{2, NotADim, 0})
	require.NoError(t, err)
	require.Equal(t, 3, e.Dim())
	require.Equal(t, "3", e.Coeff(0).String())
	require.True(t, e.Coeff(1).IsZero())
	require.Equal(t, "1", e.Coeff(2).String())

	e2 := mkExpr(1, 2)
	require.ErrorIs(t, e2.Permute([]Var{0, 0}), ErrBadPermutation)
}

func TestLinExpr_ProportionalEqual(t *testing.T) {
	a := mkExpr(2, 4)
	b := mkExpr(1, 2)
	require.True(t, a.ProportionalEqual(b, -1))

	c := mkExpr(1, 3)
	require.False(t, a.ProportionalEqual(c, -1))
}

func TestLinExpr_NormalizeSign(t *testing.T) {
	e := mkExpr(-1, 2)
	e.NormalizeSign()
	require.Equal(t, "1", e.Coeff(0).String())
	require.Equal(t, "-2", e.Coeff(1).String())
}

func TestLinExpr_ReduceByGCD(t *testing.T) {
	e := mkExpr(4, 6)
	e.SetInhomo(rational.NewInt(8))
	e.ReduceByGCD()
	require.Equal(t, "2", e.Coeff(0).String())
	require.Equal(t, "3", e.Coeff(1).String())
	require.Equal(t, "4", e.Inhomo().String())
}

func TestLinExpr_FirstLastNonzero(t *testing.T) {
	e := mkExpr(0, 0, 5, 0, 3)
	require.Equal(t, 2, e.FirstNonzero())
	require.Equal(t, 4, e.LastNonzero())

	zero := mkExpr(0, 0)
	require.Equal(t, -1, zero.FirstNonzero())
}

func TestLinExpr_AddMulAssign(t *testing.T) {
	e := mkExpr(1, 1)
	other := mkExpr(2, 3)
	e.AddMulAssign(rational.NewInt(2), other)
	require.Equal(t, "5", e.Coeff(0).String())
	require.Equal(t, "7", e.Coeff(1).String())
}

// TestLinExpr_CloneDiffsAsEqual relies on LinExpr.Equal (and, through
// it, rational.Integer.Equal) so cmp can compare unexported coefficient
// state without an Exporter, the same way gonum's own tests diff
// structures built from custom-Equal leaf types.
func TestLinExpr_CloneDiffsAsEqual(t *testing.T) {
	e := mkExpr(1, -2, 3)
	e.SetInhomo(rational.NewInt(5))
	clone := e.Clone()
	require.Empty(t, cmp.Diff(e, clone))
}

func TestLinExpr_CloneThenMutateDiffsAsUnequal(t *testing.T) {
	e := mkExpr(1, -2, 3)
	clone := e.Clone()
	clone.SetCoeff(0, rational.NewInt(99))
	require.NotEmpty(t, cmp.Diff(e, clone))
}
