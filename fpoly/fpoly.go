package fpoly

import (
	"sync"

	"github.com/polylib/ppl/bbox"
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/poly"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
)

// factor is one block of the partition: either a one-dimensional
// interval (itv != nil) or a full polyhedron over dims (p != nil).
// Exactly one of itv, p is set. dims is sorted ascending.
type factor struct {
	dims []int
	itv  *bbox.Itv
	p    *poly.Poly
}

func (f *factor) isInterval() bool { return f.itv != nil }

func (f *factor) clone() *factor {
	nf := &factor{dims: append([]int(nil), f.dims...)}
	if f.itv != nil {
		nf.itv = f.itv.Clone()
	} else {
		nf.p = f.p.Clone()
	}
	return nf
}

func (f *factor) isEmpty() (bool, error) {
	if f.itv != nil {
		return f.itv.IsEmpty(), nil
	}
	return f.p.IsEmpty()
}

// FPoly is a Cartesian-factored polyhedron (spec §4.6): space dimension
// 0..dim-1 partitioned into independent factors, refactored (merged) on
// demand whenever a constraint spans more than one existing factor.
type FPoly struct {
	mu        sync.RWMutex
	dim       int
	topo      topology.Topol
	factors   []*factor
	zeroEmpty bool // meaningful only when dim == 0 (no factors to carry it)
}

// NewUniverse returns the factored polyhedron containing all of
// dim-dimensional space: dim independent unbounded interval-dims.
func NewUniverse(dim int, topo topology.Topol) *FPoly {
	fp := &FPoly{dim: dim, topo: topo}
	for i := 0; i < dim; i++ {
		fp.factors = append(fp.factors, &factor{dims: []int{i}, itv: bbox.Universe()})
	}
	return fp
}

// NewEmpty returns the empty factored polyhedron over dim dimensions.
func NewEmpty(dim int, topo topology.Topol) *FPoly {
	fp := &FPoly{dim: dim, topo: topo}
	if dim == 0 {
		fp.zeroEmpty = true
		return fp
	}
	fp.factors = append(fp.factors, &factor{dims: []int{0}, itv: bbox.EmptyItv()})
	for i := 1; i < dim; i++ {
		fp.factors = append(fp.factors, &factor{dims: []int{i}, itv: bbox.Universe()})
	}
	return fp
}

// SpaceDimension returns the factored polyhedron's space dimension.
func (fp *FPoly) SpaceDimension() int {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	return fp.dim
}

// Topology returns the factored polyhedron's topology.
func (fp *FPoly) Topology() topology.Topol {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	return fp.topo
}

// NumFactors returns the current number of factors in the partition
// (introspection, not part of the core operation table).
func (fp *FPoly) NumFactors() int {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	return len(fp.factors)
}

// FactorDims returns the global dimension indices belonging to factor i.
func (fp *FPoly) FactorDims(i int) ([]int, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	if i < 0 || i >= len(fp.factors) {
		return nil, ErrIndexOutOfRange
	}
	return append([]int(nil), fp.factors[i].dims...), nil
}

// NumBlocks returns the current number of factors in the partition (spec's
// supplemented feature set, the named counterpart to NumFactors that
// PPLite's gens_info.cc test calls by that name).
func (fp *FPoly) NumBlocks() int {
	return fp.NumFactors()
}

// BlockPoly returns an independent copy of factor i's polyhedron,
// expressed over its own local dimensions 0..len(dims)-1 (spec's
// supplemented feature set: read-only single-factor access, grounded in
// PPLite's get_poly.cc). A one-dimensional interval factor is rendered
// as its equivalent poly.Poly on the fly.
func (fp *FPoly) BlockPoly(i int) (*poly.Poly, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	if i < 0 || i >= len(fp.factors) {
		return nil, ErrIndexOutOfRange
	}
	f := fp.factors[i]
	if !f.isInterval() {
		return f.p.Clone(), nil
	}
	p := poly.NewUniverse(1, fp.topo)
	for _, c := range itvToCons(f.itv, 0, 1) {
		if err := p.AddCon(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// LeastUpperBound returns the convex hull of fp and other as a new
// factored polyhedron, without mutating either operand (spec's
// supplemented feature set, grounded in PPLite's lub.cc). Like
// PolyHullAssign, this collapses to the monolithic representation
// before hulling and re-normalizes through FromPoly afterward (spec
// §4.6's con_hull mandatory re-expansion rule): the generator-system
// union of two differently-partitioned polyhedra is not itself a
// product of per-factor hulls in general.
func (fp *FPoly) LeastUpperBound(other *FPoly) (*FPoly, error) {
	result := fp.Clone()
	if err := result.PolyHullAssign(other); err != nil {
		return nil, err
	}
	return result, nil
}

// IsEmpty reports whether the factored polyhedron denotes the empty set:
// true iff any factor is empty (the product of sets is empty iff some
// factor is).
func (fp *FPoly) IsEmpty() (bool, error) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	if fp.dim == 0 {
		return fp.zeroEmpty, nil
	}
	for _, f := range fp.factors {
		empty, err := f.isEmpty()
		if err != nil {
			return false, err
		}
		if empty {
			return true, nil
		}
	}
	return false, nil
}

// Clone returns an independent deep copy.
func (fp *FPoly) Clone() *FPoly {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	q := &FPoly{dim: fp.dim, topo: fp.topo, zeroEmpty: fp.zeroEmpty}
	for _, f := range fp.factors {
		q.factors = append(q.factors, f.clone())
	}
	return q
}

// Constraints reconstructs the single monolithic constraint system
// denoted by the product of all factors, translating each factor's local
// rows back into the factored polyhedron's global dimensions.
func (fp *FPoly) Constraints() (*conset.ConSys, error) {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	cs := conset.NewConSys(fp.dim)
	if fp.dim == 0 {
		if fp.zeroEmpty {
			e := linexpr.New(0)
			e.SetInhomo(rational.NewInt(-1))
			_ = cs.AppendSk(conset.NewCon(e, conset.NonStrict))
		}
		return cs, nil
	}
	for _, f := range fp.factors {
		rows, err := factorConsGlobal(f, fp.dim)
		if err != nil {
			return nil, err
		}
		for _, c := range rows {
			if err := cs.AppendCon(c); err != nil {
				return nil, err
			}
		}
	}
	return cs, nil
}

// ToPoly collapses the factored representation into a single monolithic
// poly.Poly, the fallback used by every cross-factor operation (spec
// §4.6: "operations that cross factors force a merge, then delegate to
// the monolithic polyhedron").
func (fp *FPoly) ToPoly() (*poly.Poly, error) {
	cons, err := fp.Constraints()
	if err != nil {
		return nil, err
	}
	return poly.FromCons(fp.Topology(), cons), nil
}

// FromPoly rebuilds a factored polyhedron from a monolithic one as a
// single factor spanning every dimension — the coarsest possible
// partition, used after any operation (con_hull_assign, difference) that
// cannot be decomposed factor-wise.
func FromPoly(p *poly.Poly) *FPoly {
	dim := p.SpaceDimension()
	if dim == 0 {
		empty, _ := p.IsEmpty()
		return &FPoly{dim: 0, topo: p.Topology(), zeroEmpty: empty}
	}
	dims := make([]int, dim)
	for i := range dims {
		dims[i] = i
	}
	return &FPoly{dim: dim, topo: p.Topology(), factors: []*factor{{dims: dims, p: p.Clone()}}}
}
