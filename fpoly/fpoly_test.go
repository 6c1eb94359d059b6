package fpoly

import (
	"testing"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
	"github.com/stretchr/testify/require"
)

func mkExpr(dim int, coeffs map[int]int64) *linexpr.LinExpr {
	e := linexpr.New(dim)
	for i, c := range coeffs {
		e.SetCoeff(linexpr.Var(i), rational.NewInt(c))
	}
	return e
}

func conRow(dim int, inhomo int64, coeffs map[int]int64, kind conset.ConKind) *conset.Con {
	e := mkExpr(dim, coeffs)
	e.SetInhomo(rational.NewInt(inhomo))
	return conset.NewCon(e, kind)
}

func TestNewUniverse_StartsWithOneFactorPerDimension(t *testing.T) {
	fp := NewUniverse(3, topology.Closed)
	require.Equal(t, 3, fp.SpaceDimension())
	require.Equal(t, 3, fp.NumFactors())
	empty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.False(t, empty)
}

func TestNewEmpty_IsEmptyFromConstruction(t *testing.T) {
	fp := NewEmpty(2, topology.Closed)
	empty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.True(t, empty)
}

func TestNewEmpty_ZeroDim(t *testing.T) {
	fp := NewEmpty(0, topology.Closed)
	empty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.True(t, empty)
}

func TestAddCon_SingleDimStaysAsInterval(t *testing.T) {
	fp := NewUniverse(2, topology.Closed)
	require.NoError(t, fp.AddCon(conRow(2, 0, map[int]int64{0: 1}, conset.NonStrict)))  // x >= 0
	require.NoError(t, fp.AddCon(conRow(2, 1, map[int]int64{0: -1}, conset.NonStrict))) // x <= 1
	require.Equal(t, 2, fp.NumFactors())

	empty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.False(t, empty)
}

func TestAddCon_CrossFactorConstraintMergesFactors(t *testing.T) {
	fp := NewUniverse(3, topology.Closed)
	require.Equal(t, 3, fp.NumFactors())
	// y - x <= 1 (x - y + 1 >= 0), spans dims 0 and 1.
	require.NoError(t, fp.AddCon(conRow(3, 1, map[int]int64{0: 1, 1: -1}, conset.NonStrict)))
	require.Equal(t, 2, fp.NumFactors())

	var all []int
	for i := 0; i < fp.NumFactors(); i++ {
		dims, err := fp.FactorDims(i)
		require.NoError(t, err)
		all = append(all, dims...)
	}
	require.ElementsMatch(t, []int{0, 1, 2}, all)

	var mergedLen int
	for i := 0; i < fp.NumFactors(); i++ {
		dims, err := fp.FactorDims(i)
		require.NoError(t, err)
		if len(dims) > 1 {
			mergedLen = len(dims)
		}
	}
	require.Equal(t, 2, mergedLen)
}

func TestAddCon_InconsistentIntervalMakesItEmpty(t *testing.T) {
	fp := NewUniverse(1, topology.Closed)
	require.NoError(t, fp.AddCon(conRow(1, -1, map[int]int64{0: 1}, conset.NonStrict))) // x >= 1
	require.NoError(t, fp.AddCon(conRow(1, -1, map[int]int64{0: -1}, conset.NonStrict))) // x <= -1
	empty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.True(t, empty)
}

func TestAddCon_StrictConOnClosedTopologyErrors(t *testing.T) {
	fp := NewUniverse(1, topology.Closed)
	err := fp.AddCon(conRow(1, 0, map[int]int64{0: 1}, conset.Strict))
	require.ErrorIs(t, err, ErrTopologyMismatch)
}

func TestAddCon_DimensionMismatchErrors(t *testing.T) {
	fp := NewUniverse(2, topology.Closed)
	err := fp.AddCon(conRow(3, 0, map[int]int64{0: 1}, conset.NonStrict))
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestAddCon_ZeroDimInconsistentSetsZeroEmpty(t *testing.T) {
	fp := NewUniverse(0, topology.Closed)
	e := linexpr.New(0)
	e.SetInhomo(rational.NewInt(-1))
	require.NoError(t, fp.AddCon(conset.NewCon(e, conset.NonStrict)))
	empty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.True(t, empty)
}

func TestAddCons_BatchesMultipleRows(t *testing.T) {
	fp := NewUniverse(2, topology.Closed)
	cs := conset.NewConSys(2)
	require.NoError(t, cs.AppendCon(conRow(2, 0, map[int]int64{0: 1}, conset.NonStrict)))
	require.NoError(t, cs.AppendCon(conRow(2, 1, map[int]int64{0: -1}, conset.NonStrict)))
	require.NoError(t, fp.AddCons(cs))
	empty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.False(t, empty)
}

func TestClone_IsIndependent(t *testing.T) {
	fp := NewUniverse(2, topology.Closed)
	require.NoError(t, fp.AddCon(conRow(2, 0, map[int]int64{0: 1}, conset.NonStrict)))
	clone := fp.Clone()
	require.NoError(t, clone.AddCon(conRow(2, -1, map[int]int64{0: -1}, conset.NonStrict))) // x <= -1 makes clone empty

	cloneEmpty, err := clone.IsEmpty()
	require.NoError(t, err)
	require.True(t, cloneEmpty)

	origEmpty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.False(t, origEmpty)
}

func TestConstraints_RoundTripsThroughToPoly(t *testing.T) {
	fp := NewUniverse(2, topology.Closed)
	require.NoError(t, fp.AddCon(conRow(2, 0, map[int]int64{0: 1}, conset.NonStrict)))
	require.NoError(t, fp.AddCon(conRow(2, 2, map[int]int64{0: -1}, conset.NonStrict)))
	require.NoError(t, fp.AddCon(conRow(2, 0, map[int]int64{1: 1}, conset.NonStrict)))
	require.NoError(t, fp.AddCon(conRow(2, 3, map[int]int64{1: -1}, conset.NonStrict)))

	p, err := fp.ToPoly()
	require.NoError(t, err)
	bounded, err := p.IsBounded()
	require.NoError(t, err)
	require.True(t, bounded)
}

func TestFromPoly_CollapsesToSingleFactor(t *testing.T) {
	fp := NewUniverse(3, topology.Closed)
	p, err := fp.ToPoly()
	require.NoError(t, err)
	rebuilt := FromPoly(p)
	require.Equal(t, 1, rebuilt.NumFactors())
	require.Equal(t, 3, rebuilt.SpaceDimension())
}

func TestFromPoly_ZeroDimEmpty(t *testing.T) {
	fp := NewEmpty(0, topology.Closed)
	p, err := fp.ToPoly()
	require.NoError(t, err)
	rebuilt := FromPoly(p)
	empty, err := rebuilt.IsEmpty()
	require.NoError(t, err)
	require.True(t, empty)
}

func TestNumBlocks_MatchesNumFactors(t *testing.T) {
	fp := NewUniverse(3, topology.Closed)
	require.Equal(t, fp.NumFactors(), fp.NumBlocks())
}

func TestBlockPoly_IntervalFactorRendersAsBoundedPoly(t *testing.T) {
	fp := NewUniverse(1, topology.Closed)
	require.NoError(t, fp.AddCon(conRow(1, 0, map[int]int64{0: 1}, conset.NonStrict)))  // x >= 0
	require.NoError(t, fp.AddCon(conRow(1, 2, map[int]int64{0: -1}, conset.NonStrict))) // x <= 2

	block, err := fp.BlockPoly(0)
	require.NoError(t, err)
	require.Equal(t, 1, block.SpaceDimension())
	bounded, err := block.IsBounded()
	require.NoError(t, err)
	require.True(t, bounded)
}

func TestBlockPoly_OutOfRangeErrors(t *testing.T) {
	fp := NewUniverse(2, topology.Closed)
	_, err := fp.BlockPoly(5)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBlockPoly_MergedFactorReturnsIndependentCopy(t *testing.T) {
	fp := NewUniverse(2, topology.Closed)
	require.NoError(t, fp.AddCon(conRow(2, 1, map[int]int64{0: 1, 1: -1}, conset.NonStrict)))
	require.Equal(t, 1, fp.NumFactors())

	block, err := fp.BlockPoly(0)
	require.NoError(t, err)
	require.Equal(t, 2, block.SpaceDimension())
	require.NoError(t, block.AddCon(conRow(2, -2, map[int]int64{0: -1, 1: 1}, conset.NonStrict))) // y >= x + 2, disjoint from y <= x + 1; independent mutation

	blockEmpty, err := block.IsEmpty()
	require.NoError(t, err)
	require.True(t, blockEmpty)

	fpEmpty, err := fp.IsEmpty()
	require.NoError(t, err)
	require.False(t, fpEmpty)
}

func TestGenerators_NonEmptyForBoundedBox(t *testing.T) {
	fp := NewUniverse(2, topology.Closed)
	require.NoError(t, fp.AddCon(conRow(2, 0, map[int]int64{0: 1}, conset.NonStrict)))
	require.NoError(t, fp.AddCon(conRow(2, 1, map[int]int64{0: -1}, conset.NonStrict)))
	require.NoError(t, fp.AddCon(conRow(2, 0, map[int]int64{1: 1}, conset.NonStrict)))
	require.NoError(t, fp.AddCon(conRow(2, 1, map[int]int64{1: -1}, conset.NonStrict)))

	gens, err := fp.Generators()
	require.NoError(t, err)
	require.Greater(t, gens.NumSk(), 0)
}
