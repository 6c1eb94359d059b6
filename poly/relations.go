package poly

import (
	"github.com/polylib/ppl/conset"
)

// ConRelation is a lattice of flags describing how a polyhedron relates
// to a single constraint (spec §6.2).
type ConRelation uint8

const (
	RelSaturates ConRelation = 1 << iota
	RelIsIncluded
	RelIsDisjoint
	RelStrictlyIntersects
)

func (r ConRelation) Has(flag ConRelation) bool { return r&flag != 0 }

// Relation computes P's relation to constraint c (spec §6.2):
// saturates iff every generator of P lies on c's boundary; is_included
// iff P ⊨ c; is_disjoint iff P ∩ c = ∅; strictly_intersects iff
// P ∩ c ≠ ∅ and P ⊄ c. The canonical empty-polyhedron encoding
// (saturates ∧ is_included ∧ is_disjoint, with strictly_intersects
// clear) falls out directly: an empty generator system vacuously
// saturates and is included, and an empty set never meets anything.
func (p *Poly) Relation(c *conset.Con) (ConRelation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c.Dim() != p.dim {
		return 0, ErrDimensionMismatch
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return 0, err
	}

	var r ConRelation
	saturates := true
	included := true
	anySatisfying := false

	check := func(g *conset.Gen) {
		val := conset.EvalValue(c, g)
		sign := val.Sign()
		if sign != 0 {
			saturates = false
		}
		switch c.Kind() {
		case conset.NonStrict:
			if sign < 0 {
				included = false
			} else {
				anySatisfying = true
			}
		case conset.Strict:
			satisfiesHere := sign > 0 || (sign == 0 && g.Kind() == conset.Point)
			if !satisfiesHere {
				included = false
			} else {
				anySatisfying = true
			}
		default:
			if sign != 0 {
				included = false
			} else {
				anySatisfying = true
			}
		}
	}
	for i := 0; i < p.g.NumSing(); i++ {
		check(p.g.Sing(i))
	}
	for i := 0; i < p.g.NumSk(); i++ {
		check(p.g.Sk(i))
	}

	if saturates {
		r |= RelSaturates
	}
	if included {
		r |= RelIsIncluded
	}
	disjoint := !anySatisfying
	if disjoint {
		r |= RelIsDisjoint
	}
	if anySatisfying && !included {
		r |= RelStrictlyIntersects
	}
	return r, nil
}

// Entails reports whether p entails c, i.e. p ⊨ c (spec's supplemented
// feature set): a named, documented wrapper over the is_included flag
// of Relation rather than leaving the check implicit in the lattice.
func (p *Poly) Entails(c *conset.Con) (bool, error) {
	rel, err := p.Relation(c)
	if err != nil {
		return false, err
	}
	return rel.Has(RelIsIncluded), nil
}

// Contains reports whether p ⊇ q: every point of q also lies in p. It is
// a thin wrapper over Relation, checking that q satisfies every one of
// p's minimized constraints.
func (p *Poly) Contains(q *Poly) (bool, error) {
	if p.dim != q.dim {
		return false, ErrDimensionMismatch
	}
	cons, err := p.Constraints()
	if err != nil {
		return false, err
	}
	check := func(c *conset.Con) (bool, error) {
		rel, err := q.Relation(c)
		if err != nil {
			return false, err
		}
		return rel.Has(RelIsIncluded), nil
	}
	for i := 0; i < cons.NumSing(); i++ {
		ok, err := check(cons.Sing(i))
		if err != nil || !ok {
			return false, err
		}
	}
	for i := 0; i < cons.NumSk(); i++ {
		ok, err := check(cons.Sk(i))
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Equals reports geometric equality: p and q denote the same set,
// tested as mutual Contains (double containment).
func (p *Poly) Equals(q *Poly) (bool, error) {
	pContainsQ, err := p.Contains(q)
	if err != nil || !pContainsQ {
		return false, err
	}
	return q.Contains(p)
}

// GenRelation is the flag lattice for a polyhedron's relation to a
// generator (spec §6.2): subsumes iff adding g leaves P unchanged.
type GenRelation uint8

const (
	RelSubsumes GenRelation = 1 << iota
	RelNothing
)

// RelationGen computes P's relation to generator g.
func (p *Poly) RelationGen(g *conset.Gen) (GenRelation, error) {
	p.mu.Lock()
	if g.Dim() != p.dim {
		p.mu.Unlock()
		return 0, ErrDimensionMismatch
	}
	p.mu.Unlock()

	before := p.Clone()
	after := p.Clone()
	if err := after.AddGen(g); err != nil {
		return 0, err
	}
	beforeCons, err := before.Constraints()
	if err != nil {
		return 0, err
	}
	afterCons, err := after.Constraints()
	if err != nil {
		return 0, err
	}
	if sameConSys(beforeCons, afterCons) {
		return RelSubsumes, nil
	}
	return RelNothing, nil
}

func sameConSys(a, b *conset.ConSys) bool {
	if a.Dim() != b.Dim() || a.NumSing() != b.NumSing() || a.NumSk() != b.NumSk() || a.NumNS() != b.NumNS() {
		return false
	}
	for i := 0; i < a.NumSing(); i++ {
		if !a.Sing(i).Expr().Equal(b.Sing(i).Expr()) || a.Sing(i).Kind() != b.Sing(i).Kind() {
			return false
		}
	}
	for i := 0; i < a.NumSk(); i++ {
		if !a.Sk(i).Expr().Equal(b.Sk(i).Expr()) || a.Sk(i).Kind() != b.Sk(i).Kind() {
			return false
		}
	}
	return true
}
