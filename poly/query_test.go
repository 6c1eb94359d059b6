package poly

import (
	"testing"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
	"github.com/stretchr/testify/require"
)

func TestConstrains_TrueForBoundedDimension(t *testing.T) {
	p := unitSquare(t)
	c, err := p.Constrains(0)
	require.NoError(t, err)
	require.True(t, c)
}

func TestConstrains_FalseForFreeDimension(t *testing.T) {
	p := NewUniverse(2, topology.Closed)
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	c, err := p.Constrains(1)
	require.NoError(t, err)
	require.False(t, c)
}

func TestIsBounded_TrueForBox(t *testing.T) {
	p := unitSquare(t)
	bounded, err := p.IsBounded()
	require.NoError(t, err)
	require.True(t, bounded)
}

func TestIsBounded_FalseForHalfPlane(t *testing.T) {
	p := NewUniverse(2, topology.Closed)
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	bounded, err := p.IsBounded()
	require.NoError(t, err)
	require.False(t, bounded)
}

func TestIsBounded_TrueForEmpty(t *testing.T) {
	p := NewEmpty(2, topology.Closed)
	bounded, err := p.IsBounded()
	require.NoError(t, err)
	require.True(t, bounded)
}

func TestMinMax_ComputeExactOptimaOverBox(t *testing.T) {
	p := unitSquare(t)
	e := mkExpr(1, 1) // x + y
	minVal, minIncl, _, minOk, err := p.Min(e)
	require.NoError(t, err)
	require.True(t, minOk)
	require.True(t, minIncl)
	require.Equal(t, "0", minVal.String())

	maxVal, maxIncl, _, maxOk, err := p.Max(e)
	require.NoError(t, err)
	require.True(t, maxOk)
	require.True(t, maxIncl)
	require.Equal(t, "2", maxVal.String())
}

func TestMinMax_UnboundedReturnsNotOk(t *testing.T) {
	p := NewUniverse(2, topology.Closed)
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1, 0), conset.NonStrict)))
	_, _, _, ok, err := p.Max(mkExpr(1, 0))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBounds_ReportsBothEndsOverBox(t *testing.T) {
	p := unitSquare(t)
	lo, hi, loClosed, hiClosed, err := p.Bounds(mkExpr(1, 0))
	require.NoError(t, err)
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	require.True(t, loClosed)
	require.True(t, hiClosed)
	require.Equal(t, "0", lo.String())
	require.Equal(t, "1", hi.String())
}

func TestBounds_UnboundedSideIsNil(t *testing.T) {
	p := NewUniverse(1, topology.Closed)
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1), conset.NonStrict)))
	lo, hi, _, _, err := p.Bounds(mkExpr(1))
	require.NoError(t, err)
	require.NotNil(t, lo)
	require.Nil(t, hi)
}

func TestGetBoundingBox_MatchesUnitSquare(t *testing.T) {
	p := unitSquare(t)
	box, err := p.GetBoundingBox()
	require.NoError(t, err)
	require.False(t, box.IsEmpty())
	require.Equal(t, "0", box.Itv(0).Lo().String())
	require.Equal(t, "1", box.Itv(0).Hi().String())
}

func TestGetBoundingBox_EmptyForEmptyPoly(t *testing.T) {
	p := NewEmpty(2, topology.Closed)
	box, err := p.GetBoundingBox()
	require.NoError(t, err)
	require.True(t, box.IsEmpty())
}

func TestAffineImage_TranslatesAllPoints(t *testing.T) {
	p := unitSquare(t)
	// x := x + 5
	e := mkExpr(1, 0)
	e.SetInhomo(rational.NewInt(5))
	require.NoError(t, p.AffineImage(0, e, rational.NewInt(1)))
	minVal, _, _, ok, err := p.Min(mkExpr(1, 0))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "5", minVal.String())
}

func TestAffinePreimage_SubstitutesIntoConstraints(t *testing.T) {
	p := unitSquare(t)
	// replace x by x - 1 in the constraints: x in [0,1] becomes x-1 in
	// [0,1], i.e. x in [1,2].
	e := mkExpr(1, 0)
	e.SetInhomo(rational.NewInt(-1))
	require.NoError(t, p.AffinePreimage(0, e, rational.NewInt(1)))
	minVal, _, _, ok, err := p.Min(mkExpr(1, 0))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", minVal.String())
}

func TestAddSpaceDims_ProjectPinsToZero(t *testing.T) {
	p := unitSquare(t)
	require.NoError(t, p.AddSpaceDims(1, true))
	require.Equal(t, 3, p.SpaceDimension())
	minVal, _, _, ok, err := p.Min(mkExpr(0, 0, 1))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "0", minVal.String())
}

func TestRemoveSpaceDims_DropsNamedDims(t *testing.T) {
	p := unitSquare(t)
	require.NoError(t, p.RemoveSpaceDims([]int{1}))
	require.Equal(t, 1, p.SpaceDimension())
}

func TestRemoveHigherSpaceDims_TruncatesTail(t *testing.T) {
	p := unitSquare(t)
	require.NoError(t, p.RemoveHigherSpaceDims(1))
	require.Equal(t, 1, p.SpaceDimension())
}

func TestSplit_PartitionsIntoConAndComplement(t *testing.T) {
	p := unitSquare(t)
	// x <= 0.5
	cut := conset.NewCon(conExpr(1, -2, 0), conset.NonStrict)
	q, err := p.Split(cut)
	require.NoError(t, err)

	pEmpty, err := p.IsEmpty()
	require.NoError(t, err)
	require.False(t, pEmpty)
	qEmpty, err := q.IsEmpty()
	require.NoError(t, err)
	require.False(t, qEmpty)

	maxVal, _, _, ok, err := p.Max(mkExpr(1, 0))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1/2", maxVal.String())
}

func TestIntegralSplit_ProducesDisjointIntegerHalves(t *testing.T) {
	p := NewUniverse(1, topology.Closed)
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(0, 1), conset.NonStrict)))
	require.NoError(t, p.AddCon(conset.NewCon(conExpr(10, -1), conset.NonStrict)))

	// x <= 4 (integer boundary).
	cut := conset.NewCon(conExpr(4, -1), conset.NonStrict)
	low, high, err := p.IntegralSplit(cut)
	require.NoError(t, err)

	lowEmpty, err := low.IsEmpty()
	require.NoError(t, err)
	require.False(t, lowEmpty)
	highEmpty, err := high.IsEmpty()
	require.NoError(t, err)
	require.False(t, highEmpty)
}
