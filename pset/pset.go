package pset

import (
	"sync"
	"unsafe"

	"github.com/polylib/ppl/poly"
	"github.com/polylib/ppl/topology"
)

// PSet is a finite union of convex polyhedra (spec §4.8).
type PSet struct {
	mu        sync.RWMutex
	dim       int
	topo      topology.Topol
	disjuncts []*poly.Poly
}

// NewEmpty returns the powerset denoting the empty set: no disjuncts.
func NewEmpty(dim int, topo topology.Topol) *PSet {
	return &PSet{dim: dim, topo: topo}
}

// NewUniverse returns the powerset with a single disjunct spanning all
// of dim-dimensional space.
func NewUniverse(dim int, topo topology.Topol) *PSet {
	return &PSet{dim: dim, topo: topo, disjuncts: []*poly.Poly{poly.NewUniverse(dim, topo)}}
}

// SpaceDimension returns ps's space dimension.
func (ps *PSet) SpaceDimension() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.dim
}

// Topology returns ps's topology.
func (ps *PSet) Topology() topology.Topol {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.topo
}

// NumDisjuncts returns the current disjunct count.
func (ps *PSet) NumDisjuncts() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.disjuncts)
}

// Size returns the current disjunct count (spec's supplemented feature
// set: the named counterpart to size(), exposed alongside NumDisjuncts
// since PPLite's test suite calls it by that name).
func (ps *PSet) Size() int {
	return ps.NumDisjuncts()
}

// Disjunct returns an independent copy of the i-th disjunct.
func (ps *PSet) Disjunct(i int) (*poly.Poly, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	if i < 0 || i >= len(ps.disjuncts) {
		return nil, ErrIndexOutOfRange
	}
	return ps.disjuncts[i].Clone(), nil
}

// IsEmpty reports whether ps denotes the empty set: the empty disjunct
// list.
func (ps *PSet) IsEmpty() bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.disjuncts) == 0
}

// Clone returns an independent deep copy of ps.
func (ps *PSet) Clone() *PSet {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	q := &PSet{dim: ps.dim, topo: ps.topo}
	for _, d := range ps.disjuncts {
		q.disjuncts = append(q.disjuncts, d.Clone())
	}
	return q
}

// hullAllLocked returns the convex hull of every disjunct, the same
// value join∘collapse(1) produces (spec §8 sanity property). Callers
// must hold ps.mu for reading or writing.
func (ps *PSet) hullAllLocked() (*poly.Poly, error) {
	if len(ps.disjuncts) == 0 {
		return poly.NewEmpty(ps.dim, ps.topo), nil
	}
	h := ps.disjuncts[0].Clone()
	for _, d := range ps.disjuncts[1:] {
		if err := h.PolyHullAssign(d); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// lockPair locks ps and other for writing in a consistent address order
// (mirroring poly.Poly's lockPair), avoiding an ABBA deadlock when two
// goroutines operate on the same pair of powersets in opposite argument
// order; both are taken for writing even when only one is mutated,
// since a same-pointer call (ps.JoinAssign(ps)) must not attempt to
// acquire ps.mu twice.
func lockPair(a, b *PSet) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}
	pa := uintptr(unsafe.Pointer(a))
	pb := uintptr(unsafe.Pointer(b))
	if pa < pb {
		a.mu.Lock()
		b.mu.Lock()
	} else {
		b.mu.Lock()
		a.mu.Lock()
	}
	return func() {
		a.mu.Unlock()
		b.mu.Unlock()
	}
}
