package poly

import (
	"sync"
	"unsafe"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/convert"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/minimize"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/satmat"
	"github.com/polylib/ppl/topology"
)

// Poly is a convex polyhedron over a fixed space dimension and topology,
// represented by the dual constraint/generator systems of spec §3.6.
// Mutating methods append to the constraint system and mark the
// generator side (and the saturation matrix) stale; the dual is
// recomputed lazily, on the next call that actually needs it, via
// minimize.Cons (spec §4.2's "C and G ... kept only as consistent as
// actually needed").
//
// Every mutating method and every method that may trigger lazy
// minimization takes mu for writing; pure read accessors that can
// answer from whatever is already cached take it for reading. This
// mirrors the per-mutable-aggregate sync.RWMutex model of spec §5.
type Poly struct {
	mu      sync.RWMutex
	dim     int
	topo    topology.Topol
	empty   bool
	minimal bool
	c       *conset.ConSys
	g       *conset.GenSys
	sat     *satmat.SatMatrix
}

// NewEmpty returns the empty polyhedron over dim dimensions.
func NewEmpty(dim int, topo topology.Topol) *Poly {
	c := conset.NewConSys(dim)
	e := linexpr.New(dim)
	e.SetInhomo(rational.NewInt(-1))
	_ = c.AppendSk(conset.NewCon(e, conset.NonStrict))
	g := conset.NewGenSys(dim)
	sat, _ := satmat.ComputeConVsGen(c, g)
	return &Poly{dim: dim, topo: topo, empty: true, minimal: true, c: c, g: g, sat: sat}
}

// NewUniverse returns the polyhedron containing all of dim-dimensional
// space.
func NewUniverse(dim int, topo topology.Topol) *Poly {
	c := conset.NewConSys(dim)
	g := conset.NewGenSys(dim)
	origin, _ := conset.NewPoint(linexpr.New(dim), rational.NewInt(1))
	_ = g.AppendSk(origin)
	for i := 0; i < dim; i++ {
		dir := linexpr.New(dim)
		dir.SetCoeff(linexpr.Var(i), rational.NewInt(1))
		_ = g.AppendSing(conset.NewLine(dir))
	}
	sat, _ := satmat.ComputeConVsGen(c, g)
	return &Poly{dim: dim, topo: topo, empty: false, minimal: true, c: c, g: g, sat: sat}
}

// FromCons returns the polyhedron defined by cons, not yet minimized.
func FromCons(topo topology.Topol, cons *conset.ConSys) *Poly {
	return &Poly{dim: cons.Dim(), topo: topo, c: cons.Clone(), g: conset.NewGenSys(cons.Dim())}
}

// FromGens returns the polyhedron defined by gens, not yet minimized.
func FromGens(topo topology.Topol, gens *conset.GenSys) (*Poly, error) {
	cons, err := convert.GensToCons(topo, gens)
	if err != nil {
		return nil, err
	}
	return &Poly{dim: gens.Dim(), topo: topo, c: cons, g: gens.Clone()}, nil
}

// SpaceDimension returns the polyhedron's space dimension.
func (p *Poly) SpaceDimension() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dim
}

// Topology returns the polyhedron's topology.
func (p *Poly) Topology() topology.Topol {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.topo
}

// IsEmpty reports whether the polyhedron denotes the empty set,
// minimizing first if needed.
func (p *Poly) IsEmpty() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureMinimalLocked(); err != nil {
		return false, err
	}
	return p.empty, nil
}

// IsUniverse reports whether the polyhedron denotes all of space: no
// constraints survive minimization.
func (p *Poly) IsUniverse() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureMinimalLocked(); err != nil {
		return false, err
	}
	return !p.empty && p.c.NumSing() == 0 && p.c.NumSk() == 0, nil
}

// Constraints returns a minimized, independent copy of the polyhedron's
// constraint system.
func (p *Poly) Constraints() (*conset.ConSys, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureMinimalLocked(); err != nil {
		return nil, err
	}
	return p.c.Clone(), nil
}

// Generators returns a minimized, independent copy of the polyhedron's
// generator system.
func (p *Poly) Generators() (*conset.GenSys, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureMinimalLocked(); err != nil {
		return nil, err
	}
	return p.g.Clone(), nil
}

// Clone returns an independent deep copy of p.
func (p *Poly) Clone() *Poly {
	p.mu.RLock()
	defer p.mu.RUnlock()
	q := &Poly{dim: p.dim, topo: p.topo, empty: p.empty, minimal: p.minimal, c: p.c.Clone()}
	if p.g != nil {
		q.g = p.g.Clone()
	}
	if p.sat != nil {
		q.sat = p.sat.Clone()
	}
	return q
}

// AffineDimension returns the dimension of the smallest affine subspace
// containing the polyhedron: space_dim minus the number of sing
// (equality) constraints, once minimized (spec's supplemented feature
// set — a standard PPL query not named by the operation table but
// directly derivable from the minimized constraint count).
func (p *Poly) AffineDimension() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureMinimalLocked(); err != nil {
		return 0, err
	}
	if p.empty {
		return -1, nil
	}
	return p.dim - p.c.NumSing(), nil
}

// ensureMinimalLocked recomputes the generator dual and saturation
// matrix from the current constraint system if they are stale. Callers
// must hold mu for writing.
func (p *Poly) ensureMinimalLocked() error {
	if p.minimal {
		return nil
	}
	minCons, minGens, sat, err := minimize.Cons(p.topo, p.c)
	if err != nil {
		return err
	}
	p.c = minCons
	p.g = minGens
	p.sat = sat
	p.minimal = true
	p.empty = !minGens.HasPoint()
	return nil
}

// lockPair locks a and b for writing in a consistent order (by memory
// address) to avoid an ABBA deadlock when two goroutines operate on the
// same pair of polyhedra in opposite argument order. It returns the
// matching unlock function.
func lockPair(a, b *Poly) func() {
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
