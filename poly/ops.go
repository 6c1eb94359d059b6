package poly

import (
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/convert"
	"github.com/polylib/ppl/topology"
)

// AddCon conjoins c to the polyhedron (spec §4.5 add_con). A Strict
// constraint is rejected with ErrTopologyMismatch when the polyhedron's
// topology is Closed.
func (p *Poly) AddCon(c *conset.Con) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addConsLocked(c)
}

// AddCons conjoins every row of cons (spec §4.5 add_cons), batched into
// a single deferred minimization rather than one per row.
func (p *Poly) AddCons(cons *conset.ConSys) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cons.Dim() != p.dim {
		return ErrDimensionMismatch
	}
	rows := make([]*conset.Con, 0, cons.NumSing()+cons.NumSk())
	for i := 0; i < cons.NumSing(); i++ {
		rows = append(rows, cons.Sing(i))
	}
	for i := 0; i < cons.NumSk(); i++ {
		rows = append(rows, cons.Sk(i))
	}
	return p.addConsLocked(rows...)
}

func (p *Poly) addConsLocked(cons ...*conset.Con) error {
	for _, c := range cons {
		if c.Dim() != p.dim {
			return ErrDimensionMismatch
		}
		if c.Kind() == conset.Strict && p.topo == topology.Closed {
			return ErrTopologyMismatch
		}
	}
	for _, c := range cons {
		if err := p.c.AppendCon(c); err != nil {
			return err
		}
	}
	p.minimal = false
	return nil
}

// AddGen conjoins generator g to the polyhedron's generator system (spec
// §4.5 add_gen): the system denoted by G ∪ {g}. Unlike AddCon this is
// not a simple append, since the constraint dual must be re-derived from
// the enlarged generator set.
func (p *Poly) AddGen(g *conset.Gen) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addGensLocked(g)
}

// AddGens is the batched form of AddGen (spec §4.5 add_gens).
func (p *Poly) AddGens(gens *conset.GenSys) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gens.Dim() != p.dim {
		return ErrDimensionMismatch
	}
	rows := make([]*conset.Gen, 0, gens.NumSing()+gens.NumSk())
	for i := 0; i < gens.NumSing(); i++ {
		rows = append(rows, gens.Sing(i))
	}
	for i := 0; i < gens.NumSk(); i++ {
		rows = append(rows, gens.Sk(i))
	}
	return p.addGensLocked(rows...)
}

func (p *Poly) addGensLocked(gens ...*conset.Gen) error {
	for _, g := range gens {
		if g.Dim() != p.dim {
			return ErrDimensionMismatch
		}
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return err
	}
	g2 := p.g.Clone()
	for _, g := range gens {
		if err := g2.AppendGen(g); err != nil {
			return err
		}
	}
	newCons, err := convert.GensToCons(p.topo, g2)
	if err != nil {
		return err
	}
	p.c = newCons
	p.g = g2
	p.minimal = false
	return nil
}

// IntersectionAssign replaces p with p ∩ other (spec §4.5
// intersection_assign): the union of their constraint systems.
func (p *Poly) IntersectionAssign(other *Poly) error {
	if p.dim != other.dim {
		return ErrDimensionMismatch
	}
	unlock := lockPair(p, other)
	defer unlock()
	if p.topo != other.topo {
		return ErrTopologyMismatch
	}
	if err := other.ensureMinimalLocked(); err != nil {
		return err
	}
	oc := other.c
	rows := make([]*conset.Con, 0, oc.NumSing()+oc.NumSk())
	for i := 0; i < oc.NumSing(); i++ {
		rows = append(rows, oc.Sing(i))
	}
	for i := 0; i < oc.NumSk(); i++ {
		rows = append(rows, oc.Sk(i))
	}
	return p.addConsLocked(rows...)
}

// PolyHullAssign replaces p with the smallest polyhedron containing both
// p and other — their convex hull (spec §4.5 poly_hull_assign): the
// union of their generator systems.
func (p *Poly) PolyHullAssign(other *Poly) error {
	if p.dim != other.dim {
		return ErrDimensionMismatch
	}
	unlock := lockPair(p, other)
	defer unlock()
	if p.topo != other.topo {
		return ErrTopologyMismatch
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return err
	}
	if err := other.ensureMinimalLocked(); err != nil {
		return err
	}
	og := other.g
	rows := make([]*conset.Gen, 0, og.NumSing()+og.NumSk())
	for i := 0; i < og.NumSing(); i++ {
		rows = append(rows, og.Sing(i))
	}
	for i := 0; i < og.NumSk(); i++ {
		rows = append(rows, og.Sk(i))
	}
	return p.addGensLocked(rows...)
}

// ConHullAssign replaces p with the smallest polyhedron containing both
// p and other whose constraint description is exactly the shared
// constraints of the two (spec §4.5.1 con_hull_assign): every row of p's
// minimized constraint system that is also implied by other, and vice
// versa. This is generally weaker (a bigger set) than PolyHullAssign
// when the two do not share an identical constraint basis.
func (p *Poly) ConHullAssign(other *Poly) error {
	if p.dim != other.dim {
		return ErrDimensionMismatch
	}
	unlock := lockPair(p, other)
	defer unlock()
	if p.topo != other.topo {
		return ErrTopologyMismatch
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return err
	}
	if err := other.ensureMinimalLocked(); err != nil {
		return err
	}
	shared := conset.NewConSys(p.dim)
	for i := 0; i < p.c.NumSing(); i++ {
		c := p.c.Sing(i)
		if conRowImpliedBy(c, other.g) {
			_ = shared.AppendCon(c)
		}
	}
	for i := 0; i < p.c.NumSk(); i++ {
		c := p.c.Sk(i)
		if conRowImpliedBy(c, other.g) {
			_ = shared.AppendCon(c)
		}
	}
	for i := 0; i < other.c.NumSing(); i++ {
		if c := other.c.Sing(i); conRowImpliedBy(c, p.g) {
			_ = shared.AppendCon(c)
		}
	}
	for i := 0; i < other.c.NumSk(); i++ {
		if c := other.c.Sk(i); conRowImpliedBy(c, p.g) {
			_ = shared.AppendCon(c)
		}
	}
	p.c = shared
	p.minimal = false
	return nil
}

// rowFoundIn reports whether an identical row (same kind, equal
// normalized expression) already appears in cs.
func rowFoundIn(c *conset.Con, cs *conset.ConSys) bool {
	for i := 0; i < cs.NumSing(); i++ {
		if cs.Sing(i).Kind() == c.Kind() && cs.Sing(i).Expr().Equal(c.Expr()) {
			return true
		}
	}
	for i := 0; i < cs.NumSk(); i++ {
		if cs.Sk(i).Kind() == c.Kind() && cs.Sk(i).Expr().Equal(c.Expr()) {
			return true
		}
	}
	return false
}

func conRowImpliedBy(c *conset.Con, gens *conset.GenSys) bool {
	check := func(g *conset.Gen) bool {
		val := conset.EvalValue(c, g)
		switch c.Kind() {
		case conset.NonStrict:
			return val.Sign() >= 0
		case conset.Strict:
			if val.Sign() < 0 {
				return false
			}
			if val.Sign() == 0 && g.Kind() == conset.Point {
				return false
			}
			return true
		default:
			return val.Sign() == 0
		}
	}
	for i := 0; i < gens.NumSing(); i++ {
		if !check(gens.Sing(i)) {
			return false
		}
	}
	for i := 0; i < gens.NumSk(); i++ {
		if !check(gens.Sk(i)) {
			return false
		}
	}
	return true
}

// PolyDifferenceAssign replaces p with p \ other when that set is itself
// convex (spec §4.5 poly_difference_assign); this holds exactly when
// other's minimized constraint system has a single row, in which case
// the difference is p intersected with the complement of that one row.
// A non-convex difference is a precondition violation here, since a
// single Poly cannot represent a non-convex result — pset.P_Set is the
// type for that (spec §4.8).
func (p *Poly) PolyDifferenceAssign(other *Poly) error {
	if p.dim != other.dim {
		return ErrDimensionMismatch
	}
	unlock := lockPair(p, other)
	defer unlock()
	if p.topo != other.topo {
		return ErrTopologyMismatch
	}
	if err := other.ensureMinimalLocked(); err != nil {
		return err
	}
	if other.empty {
		return nil
	}
	total := other.c.NumSing() + other.c.NumSk()
	if total != 1 || other.c.NumSing() != 0 {
		return ErrNonConvexDifference
	}
	row := other.c.Sk(0)
	complement := complementRow(row)
	return p.addConsLocked(complement)
}

// ComplementCon returns row's topology-respecting complement (the ¬c_i
// of spec §4.5's poly_difference_assign). Exported for the pset
// package, which builds a disjunctive difference one constraint at a
// time rather than delegating to PolyDifferenceAssign's single-row
// convex case.
func ComplementCon(row *conset.Con) *conset.Con {
	return complementRow(row)
}

// complementRow returns the negated relation of row: >= becomes a strict
// < (expressed as the negated strict >), > becomes <=, following the
// topology-respecting complement used by poly_difference_assign.
func complementRow(row *conset.Con) *conset.Con {
	neg := row.Expr().Clone()
	neg.Negate()
	switch row.Kind() {
	case conset.NonStrict:
		return conset.NewCon(neg, conset.Strict)
	case conset.Strict:
		return conset.NewCon(neg, conset.NonStrict)
	default:
		// Equality's complement (expr != 0) is not itself convex; callers
		// never reach here because PolyDifferenceAssign only accepts a
		// single-inequality other.
		return conset.NewCon(neg, conset.NonStrict)
	}
}
