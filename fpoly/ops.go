package fpoly

import (
	"github.com/polylib/ppl/bbox"
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/poly"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
)

// AddCon conjoins c (spec §4.6's per-factor add_con): only the factor(s)
// c's nonzero coefficients span are touched, merged first into one if
// more than one.
func (fp *FPoly) AddCon(c *conset.Con) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	if c.Dim() != fp.dim {
		return ErrDimensionMismatch
	}
	if c.Kind() == conset.Strict && fp.topo == topology.Closed {
		return ErrTopologyMismatch
	}
	if fp.dim == 0 {
		if c.IsInconsistent() {
			fp.zeroEmpty = true
		}
		return nil
	}
	touched := touchedDims(c.Expr())
	if len(touched) == 0 {
		if c.IsInconsistent() {
			return fp.forceEmptyLocked()
		}
		return nil
	}
	idx, err := fp.mergeFactorsTouching(touched)
	if err != nil {
		return err
	}
	f := fp.factors[idx]
	local := globalConToLocal(c, f.dims)
	if f.isInterval() {
		half, err := conToItv(local)
		if err != nil {
			return err
		}
		f.itv = f.itv.Glb(half)
		return nil
	}
	return f.p.AddCon(local)
}

// AddCons is the batched form of AddCon (spec §4.6 add_cons).
func (fp *FPoly) AddCons(cons *conset.ConSys) error {
	if cons.Dim() != fp.SpaceDimension() {
		return ErrDimensionMismatch
	}
	rows := make([]*conset.Con, 0, cons.NumSing()+cons.NumSk())
	for i := 0; i < cons.NumSing(); i++ {
		rows = append(rows, cons.Sing(i))
	}
	for i := 0; i < cons.NumSk(); i++ {
		rows = append(rows, cons.Sk(i))
	}
	for _, c := range rows {
		if err := fp.AddCon(c); err != nil {
			return err
		}
	}
	return nil
}

// forceEmptyLocked collapses fp to the empty factored polyhedron by
// making a single factor (any factor suffices: the product of sets is
// empty as soon as one factor is) unsatisfiable. fp.mu must already be
// held for writing.
func (fp *FPoly) forceEmptyLocked() error {
	if fp.dim == 0 {
		fp.zeroEmpty = true
		return nil
	}
	f := fp.factors[0]
	if f.isInterval() {
		f.itv = bbox.EmptyItv()
		return nil
	}
	e := linexpr.New(len(f.dims))
	e.SetInhomo(rational.NewInt(-1))
	return f.p.AddCon(conset.NewCon(e, conset.NonStrict))
}

// IntersectionAssign replaces fp with fp ∩ other (spec §4.6
// intersection_assign), applied row by row so only the factors actually
// touched by each of other's constraints ever get merged.
func (fp *FPoly) IntersectionAssign(other *FPoly) error {
	if fp.SpaceDimension() != other.SpaceDimension() {
		return ErrDimensionMismatch
	}
	if fp.Topology() != other.Topology() {
		return ErrTopologyMismatch
	}
	cons, err := other.Constraints()
	if err != nil {
		return err
	}
	return fp.AddCons(cons)
}

// collapseAssign is the shared fallback for operations spec §4.6 says
// "force a merge, then delegate to the monolithic polyhedron": both
// operands collapse to a poly.Poly, delegate runs the named poly.Poly
// mutation on fp's copy, and the result becomes fp's new partition (a
// single factor spanning every dimension).
func (fp *FPoly) collapseAssign(other *FPoly, delegate func(p, q *poly.Poly) error) error {
	if fp.SpaceDimension() != other.SpaceDimension() {
		return ErrDimensionMismatch
	}
	if fp.Topology() != other.Topology() {
		return ErrTopologyMismatch
	}
	p, err := fp.ToPoly()
	if err != nil {
		return err
	}
	q, err := other.ToPoly()
	if err != nil {
		return err
	}
	if err := delegate(p, q); err != nil {
		return err
	}
	collapsed := FromPoly(p)
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.factors = collapsed.factors
	fp.zeroEmpty = collapsed.zeroEmpty
	return nil
}

// PolyHullAssign replaces fp with the convex hull of fp and other (spec
// §4.6): the generator-system union of two differently-partitioned
// polyhedra is not itself a product of per-factor hulls in general, so
// this delegates to poly.Poly.
func (fp *FPoly) PolyHullAssign(other *FPoly) error {
	return fp.collapseAssign(other, func(p, q *poly.Poly) error { return p.PolyHullAssign(q) })
}

// ConHullAssign replaces fp with the constraint hull of fp and other.
func (fp *FPoly) ConHullAssign(other *FPoly) error {
	return fp.collapseAssign(other, func(p, q *poly.Poly) error { return p.ConHullAssign(q) })
}

// PolyDifferenceAssign replaces fp with fp \ other when that set is
// itself convex (spec §4.6, §4.5 poly_difference_assign).
func (fp *FPoly) PolyDifferenceAssign(other *FPoly) error {
	return fp.collapseAssign(other, func(p, q *poly.Poly) error { return p.PolyDifferenceAssign(q) })
}

// WideningAssign widens fp against prev by delegating to poly.Poly's
// widening over the monolithic collapse: a factor-aware certificate
// would need to track per-factor history across calls that this
// stateless signature does not carry, so the collapsed widening (itself
// always sound, falling back to H79) is used uniformly.
func (fp *FPoly) WideningAssign(prev *FPoly, impl topology.WidenImpl, wspec topology.WidenSpec) error {
	return fp.collapseAssign(prev, func(p, q *poly.Poly) error { return p.WideningAssign(q, impl, wspec) })
}

// Generators reconstructs the generator system denoted by the product
// of all factors via the monolithic collapse: a factor-wise generator
// system would need one generator per combination of factors' own
// generators, which poly.Poly's minimization already computes correctly.
func (fp *FPoly) Generators() (*conset.GenSys, error) {
	p, err := fp.ToPoly()
	if err != nil {
		return nil, err
	}
	return p.Generators()
}
