package bbox

import (
	"math"

	"github.com/polylib/ppl/rational"
	"gonum.org/v1/gonum/floats"
)

// Itv is a one-dimensional rational interval. Either end may be
// unbounded (nil bound); each end is independently closed or open, so a
// half-open interval like "[0, 5)" carried by an NNC polyhedron's
// bounding box is representable exactly (spec §4.7).
type Itv struct {
	lo       *rational.Rational
	loClosed bool
	hi       *rational.Rational
	hiClosed bool
	empty    bool
}

// Universe returns the unbounded interval (-inf, +inf).
func Universe() *Itv {
	return &Itv{loClosed: true, hiClosed: true}
}

// EmptyItv returns the empty interval.
func EmptyItv() *Itv {
	return &Itv{empty: true}
}

// Bounded returns the interval with the given endpoints; either of lo,
// hi may be nil for an unbounded end. The result normalizes to the
// empty interval when lo > hi, or when lo == hi but the interval is not
// closed at both ends.
func Bounded(lo *rational.Rational, loClosed bool, hi *rational.Rational, hiClosed bool) *Itv {
	it := &Itv{lo: cloneOpt(lo), loClosed: loClosed, hi: cloneOpt(hi), hiClosed: hiClosed}
	it.normalize()
	return it
}

func cloneOpt(r *rational.Rational) *rational.Rational {
	if r == nil {
		return nil
	}
	return r.Clone()
}

func (it *Itv) normalize() {
	if it.empty || it.lo == nil || it.hi == nil {
		return
	}
	switch c := it.lo.Cmp(it.hi); {
	case c > 0:
		it.empty = true
	case c == 0 && !(it.loClosed && it.hiClosed):
		it.empty = true
	}
}

// IsEmpty reports whether it is the empty interval.
func (it *Itv) IsEmpty() bool { return it.empty }

// IsUniverse reports whether it is unbounded at both ends.
func (it *Itv) IsUniverse() bool { return !it.empty && it.lo == nil && it.hi == nil }

// Lo returns the lower bound, or nil if unbounded below.
func (it *Itv) Lo() *rational.Rational { return it.lo }

// Hi returns the upper bound, or nil if unbounded above.
func (it *Itv) Hi() *rational.Rational { return it.hi }

// LoClosed reports whether the lower bound (if any) is included.
func (it *Itv) LoClosed() bool { return it.loClosed }

// HiClosed reports whether the upper bound (if any) is included.
func (it *Itv) HiClosed() bool { return it.hiClosed }

// Clone returns an independent copy of it.
func (it *Itv) Clone() *Itv {
	return &Itv{lo: cloneOpt(it.lo), loClosed: it.loClosed, hi: cloneOpt(it.hi), hiClosed: it.hiClosed, empty: it.empty}
}

// Contains reports whether x lies within it.
func (it *Itv) Contains(x *rational.Rational) bool {
	if it.empty {
		return false
	}
	if it.lo != nil {
		c := x.Cmp(it.lo)
		if c < 0 || (c == 0 && !it.loClosed) {
			return false
		}
	}
	if it.hi != nil {
		c := x.Cmp(it.hi)
		if c > 0 || (c == 0 && !it.hiClosed) {
			return false
		}
	}
	return true
}

// Glb returns the greatest-lower-bound interval: the intersection of it
// and other.
func (it *Itv) Glb(other *Itv) *Itv {
	if it.empty || other.empty {
		return EmptyItv()
	}
	lo, loClosed := tighterLo(it.lo, it.loClosed, other.lo, other.loClosed)
	hi, hiClosed := tighterHi(it.hi, it.hiClosed, other.hi, other.hiClosed)
	return Bounded(lo, loClosed, hi, hiClosed)
}

// Lub returns the least-upper-bound interval: the smallest interval
// containing both it and other (their convex hull, not their union).
func (it *Itv) Lub(other *Itv) *Itv {
	if it.empty {
		return other.Clone()
	}
	if other.empty {
		return it.Clone()
	}
	lo, loClosed := looserLo(it.lo, it.loClosed, other.lo, other.loClosed)
	hi, hiClosed := looserHi(it.hi, it.hiClosed, other.hi, other.hiClosed)
	return Bounded(lo, loClosed, hi, hiClosed)
}

// IsDisjointFrom reports whether it and other share no point. This test
// is exact, not a pre-filter: interval arithmetic is exact rational
// arithmetic.
func (it *Itv) IsDisjointFrom(other *Itv) bool {
	return it.Glb(other).IsEmpty()
}

// itvWithin reports whether every point of inner is also in outer
// (interval containment).
func itvWithin(outer, inner *Itv) bool {
	if inner.empty {
		return true
	}
	if outer.empty {
		return false
	}
	if outer.lo != nil {
		if inner.lo == nil {
			return false
		}
		c := inner.lo.Cmp(outer.lo)
		if c < 0 || (c == 0 && !outer.loClosed && inner.loClosed) {
			return false
		}
	}
	if outer.hi != nil {
		if inner.hi == nil {
			return false
		}
		c := inner.hi.Cmp(outer.hi)
		if c > 0 || (c == 0 && !outer.hiClosed && inner.hiClosed) {
			return false
		}
	}
	return true
}

// Width returns hi - lo as a float64, math.Inf(1) if unbounded at
// either end, and 0 for the empty interval. It feeds only the
// pseudo-volume heuristic and is never used for an exact test.
func (it *Itv) Width() float64 {
	if it.empty {
		return 0
	}
	if it.lo == nil || it.hi == nil {
		return math.Inf(1)
	}
	return it.hi.Float64() - it.lo.Float64()
}

// tighterLo picks the larger (more restrictive) of two optional lower
// bounds; nil means unbounded (the loosest possible bound).
func tighterLo(a *rational.Rational, aClosed bool, b *rational.Rational, bClosed bool) (*rational.Rational, bool) {
	if a == nil {
		return cloneOpt(b), bClosed
	}
	if b == nil {
		return cloneOpt(a), aClosed
	}
	switch a.Cmp(b) {
	case 0:
		return a.Clone(), aClosed && bClosed
	case 1:
		return a.Clone(), aClosed
	default:
		return b.Clone(), bClosed
	}
}

// tighterHi picks the smaller (more restrictive) of two optional upper
// bounds; nil means unbounded.
func tighterHi(a *rational.Rational, aClosed bool, b *rational.Rational, bClosed bool) (*rational.Rational, bool) {
	if a == nil {
		return cloneOpt(b), bClosed
	}
	if b == nil {
		return cloneOpt(a), aClosed
	}
	switch a.Cmp(b) {
	case 0:
		return a.Clone(), aClosed && bClosed
	case -1:
		return a.Clone(), aClosed
	default:
		return b.Clone(), bClosed
	}
}

// looserLo picks the smaller (least restrictive) of two optional lower
// bounds; either being nil makes the result unbounded.
func looserLo(a *rational.Rational, aClosed bool, b *rational.Rational, bClosed bool) (*rational.Rational, bool) {
	if a == nil || b == nil {
		return nil, true
	}
	switch a.Cmp(b) {
	case 0:
		return a.Clone(), aClosed || bClosed
	case -1:
		return a.Clone(), aClosed
	default:
		return b.Clone(), bClosed
	}
}

// looserHi picks the larger (least restrictive) of two optional upper
// bounds; either being nil makes the result unbounded.
func looserHi(a *rational.Rational, aClosed bool, b *rational.Rational, bClosed bool) (*rational.Rational, bool) {
	if a == nil || b == nil {
		return nil, true
	}
	switch a.Cmp(b) {
	case 0:
		return a.Clone(), aClosed || bClosed
	case 1:
		return a.Clone(), aClosed
	default:
		return b.Clone(), bClosed
	}
}

// BBox is an axis-aligned bounding box: one Itv per space dimension,
// plus an overall empty flag set whenever any dimension's interval is
// empty (spec §4.7).
type BBox struct {
	dim   int
	itvs  []*Itv
	empty bool
}

// New returns the universe box over dim dimensions (every dimension
// unbounded).
func New(dim int) *BBox {
	itvs := make([]*Itv, dim)
	for i := range itvs {
		itvs[i] = Universe()
	}
	return &BBox{dim: dim, itvs: itvs}
}

// NewEmpty returns the empty box over dim dimensions.
func NewEmpty(dim int) *BBox {
	itvs := make([]*Itv, dim)
	for i := range itvs {
		itvs[i] = EmptyItv()
	}
	return &BBox{dim: dim, itvs: itvs, empty: true}
}

// Dim returns the box's space dimension.
func (b *BBox) Dim() int { return b.dim }

// IsEmpty reports whether the box is empty (any dimension's interval is
// empty).
func (b *BBox) IsEmpty() bool { return b.empty }

// Itv returns the interval for dimension i.
func (b *BBox) Itv(i int) *Itv { return b.itvs[i] }

// SetItv replaces the interval for dimension i and refreshes the box's
// empty flag.
func (b *BBox) SetItv(i int, it *Itv) error {
	if i < 0 || i >= b.dim {
		return ErrIndexOutOfRange
	}
	b.itvs[i] = it
	b.recomputeEmpty()
	return nil
}

func (b *BBox) recomputeEmpty() {
	for _, it := range b.itvs {
		if it.IsEmpty() {
			b.empty = true
			return
		}
	}
	b.empty = false
}

// Clone returns an independent deep copy of b.
func (b *BBox) Clone() *BBox {
	itvs := make([]*Itv, b.dim)
	for i, it := range b.itvs {
		itvs[i] = it.Clone()
	}
	return &BBox{dim: b.dim, itvs: itvs, empty: b.empty}
}

// Glb returns the greatest-lower-bound box: the per-dimension
// intersection of b and other.
func (b *BBox) Glb(other *BBox) (*BBox, error) {
	if b.dim != other.dim {
		return nil, ErrDimensionMismatch
	}
	r := New(b.dim)
	for i := 0; i < b.dim; i++ {
		r.itvs[i] = b.itvs[i].Glb(other.itvs[i])
	}
	r.recomputeEmpty()
	return r, nil
}

// Lub returns the least-upper-bound box: the per-dimension convex hull
// of b and other.
func (b *BBox) Lub(other *BBox) (*BBox, error) {
	if b.dim != other.dim {
		return nil, ErrDimensionMismatch
	}
	if b.empty {
		return other.Clone(), nil
	}
	if other.empty {
		return b.Clone(), nil
	}
	r := New(b.dim)
	for i := 0; i < b.dim; i++ {
		r.itvs[i] = b.itvs[i].Lub(other.itvs[i])
	}
	return r, nil
}

// Contains reports whether every point of other's box also lies in b's
// box.
func (b *BBox) Contains(other *BBox) (bool, error) {
	if b.dim != other.dim {
		return false, ErrDimensionMismatch
	}
	if other.empty {
		return true, nil
	}
	if b.empty {
		return false, nil
	}
	for i := 0; i < b.dim; i++ {
		if !itvWithin(b.itvs[i], other.itvs[i]) {
			return false, nil
		}
	}
	return true, nil
}

// IsDisjointFrom reports whether b and other share no point (exact at
// the box level).
func (b *BBox) IsDisjointFrom(other *BBox) (bool, error) {
	if b.dim != other.dim {
		return false, ErrDimensionMismatch
	}
	if b.empty || other.empty {
		return true, nil
	}
	for i := 0; i < b.dim; i++ {
		if b.itvs[i].IsDisjointFrom(other.itvs[i]) {
			return true, nil
		}
	}
	return false, nil
}

// BoxedContains is Contains used as an optimistic pre-filter: a false
// result proves the exact polyhedra cannot be in a containment
// relation, while a true result only licenses the caller to fall
// through to the exact geometric test (spec §4.7).
func (b *BBox) BoxedContains(other *BBox) (bool, error) {
	return b.Contains(other)
}

// BoxedIsDisjointFrom is IsDisjointFrom; box disjointness is itself
// exact, so unlike BoxedContains a true result here is conclusive and
// the caller need not fall through to a geometric test (spec §4.7).
func (b *BBox) BoxedIsDisjointFrom(other *BBox) (bool, error) {
	return b.IsDisjointFrom(other)
}

// Volume returns the box's pseudo-volume, the product of its per-
// dimension widths (0 for an empty box, +Inf if any dimension is
// unbounded). It is a float64 heuristic used only to cheaply rank or
// filter boxes, never to decide an exact geometric question.
func (b *BBox) Volume() float64 {
	if b.empty || b.dim == 0 {
		return 0
	}
	widths := make([]float64, b.dim)
	for i, it := range b.itvs {
		widths[i] = it.Width()
		if math.IsInf(widths[i], 1) {
			return math.Inf(1)
		}
	}
	return floats.Prod(widths)
}
