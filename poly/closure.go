package poly

import (
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/convert"
	"github.com/polylib/ppl/topology"
)

// TopologicalClosureAssign replaces p with its topological closure (spec
// §4.5): every strict constraint becomes non-strict, ns rows are
// dropped, and closure points are promoted to points. The result is
// always re-minimized, which also makes this operation idempotent as
// required by spec §8.2 (minimize.Cons's redundancy pass removes any
// non-strict row made redundant by the relaxation).
func (p *Poly) TopologicalClosureAssign() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureMinimalLocked(); err != nil {
		return err
	}
	if p.empty {
		return nil
	}
	c2 := conset.NewConSys(p.dim)
	relax := func(c *conset.Con) *conset.Con {
		if c.Kind() == conset.Strict {
			return conset.NewCon(c.Expr(), conset.NonStrict)
		}
		return c
	}
	for i := 0; i < p.c.NumSing(); i++ {
		_ = c2.AppendCon(relax(p.c.Sing(i)))
	}
	for i := 0; i < p.c.NumSk(); i++ {
		_ = c2.AppendCon(relax(p.c.Sk(i)))
	}
	p.c = c2
	p.minimal = false
	return nil
}

// SetTopology reinterprets p under topology t (spec §4.5): widening a
// Closed polyhedron to NNC is free (no strict constraint can already be
// present). Narrowing NNC to Closed requires p to already be
// topologically closed; the spec leaves the result of violating that
// precondition undefined, so this takes the closure first rather than
// silently dropping strictness, which keeps the representation valid in
// every case at the cost of being a no-op precisely when the
// precondition already held.
func (p *Poly) SetTopology(t topology.Topol) error {
	p.mu.Lock()
	if p.topo == t {
		p.mu.Unlock()
		return nil
	}
	if t == topology.Closed {
		p.mu.Unlock()
		if err := p.TopologicalClosureAssign(); err != nil {
			return err
		}
		p.mu.Lock()
	}
	p.topo = t
	p.minimal = false
	p.mu.Unlock()
	return nil
}

// TimeElapseAssign replaces p with the reachable set under continuous
// time elapse against q (spec §4.5): gens(p ⊕ q) = { point + ray : point
// ∈ gens(p), ray ∈ lines(q) ∪ rays(q) ∪ points(q) treated as rays from
// the origin }. Concretely, every point of p stays; every line and ray
// of q is added as a line/ray of the result, and every point of q
// contributes its direction from the origin as an additional ray, since
// "moving along a direction present in q" includes moving towards any of
// q's own reachable points.
func (p *Poly) TimeElapseAssign(q *Poly) error {
	if p.dim != q.dim {
		return ErrDimensionMismatch
	}
	unlock := lockPair(p, q)
	defer unlock()
	if p.topo != q.topo {
		return ErrTopologyMismatch
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return err
	}
	if err := q.ensureMinimalLocked(); err != nil {
		return err
	}
	g2 := p.g.Clone()
	for i := 0; i < q.g.NumSing(); i++ {
		if err := g2.AppendGen(q.g.Sing(i)); err != nil {
			return err
		}
	}
	for i := 0; i < q.g.NumSk(); i++ {
		qg := q.g.Sk(i)
		switch qg.Kind() {
		case conset.Ray:
			if err := g2.AppendGen(qg); err != nil {
				return err
			}
		default:
			ray := conset.NewRay(qg.Expr())
			if err := g2.AppendGen(ray); err != nil {
				return err
			}
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
