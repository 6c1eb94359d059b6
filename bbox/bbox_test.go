package bbox

import (
	"math"
	"testing"

	"github.com/polylib/ppl/rational"
	"github.com/stretchr/testify/require"
)

func r(n int64) *rational.Rational {
	return rational.NewRationalInt(rational.NewInt(n))
}

func TestItv_Contains(t *testing.T) {
	it := Bounded(r(0), true, r(5), false)
	require.True(t, it.Contains(r(0)))
	require.True(t, it.Contains(r(3)))
	require.False(t, it.Contains(r(5)))
	require.False(t, it.Contains(r(-1)))
}

func TestItv_BoundedEqualClosedIsNotEmpty(t *testing.T) {
	it := Bounded(r(2), true, r(2), true)
	require.False(t, it.IsEmpty())
	require.True(t, it.Contains(r(2)))
}

func TestItv_BoundedEqualOpenCollapsesToEmpty(t *testing.T) {
	it := Bounded(r(2), true, r(2), false)
	require.True(t, it.IsEmpty())
}

func TestItv_BoundedCrossedCollapsesToEmpty(t *testing.T) {
	it := Bounded(r(5), true, r(0), true)
	require.True(t, it.IsEmpty())
}

func TestItv_Glb(t *testing.T) {
	a := Bounded(r(0), true, r(10), true)
	b := Bounded(r(5), false, nil, true)
	g := a.Glb(b)
	require.False(t, g.IsEmpty())
	require.Equal(t, 0, g.Lo().Cmp(r(5)))
	require.False(t, g.LoClosed())
	require.Equal(t, 0, g.Hi().Cmp(r(10)))
	require.True(t, g.HiClosed())
}

func TestItv_GlbDisjointIsEmpty(t *testing.T) {
	a := Bounded(r(0), true, r(1), true)
	b := Bounded(r(2), true, r(3), true)
	require.True(t, a.Glb(b).IsEmpty())
	require.True(t, a.IsDisjointFrom(b))
}

func TestItv_Lub(t *testing.T) {
	a := Bounded(r(0), true, r(1), true)
	b := Bounded(r(2), true, r(3), true)
	l := a.Lub(b)
	require.Equal(t, 0, l.Lo().Cmp(r(0)))
	require.Equal(t, 0, l.Hi().Cmp(r(3)))
}

func TestItv_LubUnboundedAbsorbs(t *testing.T) {
	a := Bounded(r(0), true, r(1), true)
	b := Universe()
	require.True(t, a.Lub(b).IsUniverse())
}

func TestItv_WidthUnboundedIsInf(t *testing.T) {
	it := Bounded(nil, true, r(5), true)
	require.True(t, math.IsInf(it.Width(), 1))
}

func TestBBox_ContainsAndDisjoint(t *testing.T) {
	outer := New(2)
	require.NoError(t, outer.SetItv(0, Bounded(r(0), true, r(10), true)))
	require.NoError(t, outer.SetItv(1, Bounded(r(0), true, r(10), true)))

	inner := New(2)
	require.NoError(t, inner.SetItv(0, Bounded(r(2), true, r(3), true)))
	require.NoError(t, inner.SetItv(1, Bounded(r(2), true, r(3), true)))

	ok, err := outer.Contains(inner)
	require.NoError(t, err)
	require.True(t, ok)

	disjoint := New(2)
	require.NoError(t, disjoint.SetItv(0, Bounded(r(20), true, r(30), true)))
	require.NoError(t, disjoint.SetItv(1, Bounded(r(20), true, r(30), true)))

	ok, err = outer.IsDisjointFrom(disjoint)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = outer.Contains(disjoint)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBBox_VolumeIsProductOfWidths(t *testing.T) {
	b := New(2)
	require.NoError(t, b.SetItv(0, Bounded(r(0), true, r(3), true)))
	require.NoError(t, b.SetItv(1, Bounded(r(0), true, r(4), true)))
	require.InDelta(t, 12.0, b.Volume(), 1e-9)
}

func TestBBox_EmptyDimensionMakesBoxEmpty(t *testing.T) {
	b := New(2)
	require.NoError(t, b.SetItv(0, EmptyItv()))
	require.NoError(t, b.SetItv(1, Bounded(r(0), true, r(1), true)))
	require.True(t, b.IsEmpty())
	require.Equal(t, 0.0, b.Volume())
}

func TestBBox_DimensionMismatch(t *testing.T) {
	a := New(2)
	b := New(3)
	_, err := a.Glb(b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}
