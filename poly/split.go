package poly

import (
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
)

// Split returns a new polyhedron Q = self ∩ ¬c and mutates self in place
// to self ∩ c (spec §4.5.3). An optional topol argument overrides the
// topology of the returned complement half (used when a strict split of
// an otherwise-closed polyhedron is wanted); it defaults to self's own
// topology. When that half is Closed, the complement of a non-strict c is
// its non-strict opposite, so the two halves share c's boundary.
func (p *Poly) Split(c *conset.Con, topol ...topology.Topol) (*Poly, error) {
	p.mu.Lock()
	if c.Dim() != p.dim {
		p.mu.Unlock()
		return nil, ErrDimensionMismatch
	}
	qTopo := p.topo
	if len(topol) > 0 {
		qTopo = topol[0]
	}
	q := &Poly{dim: p.dim, topo: qTopo, c: p.c.Clone()}
	comp := complementRow(c)
	if qTopo == topology.Closed && comp.Kind() == conset.Strict {
		comp = conset.NewCon(comp.Expr(), conset.NonStrict)
	}
	if err := q.addConsLocked(comp); err != nil {
		p.mu.Unlock()
		return nil, err
	}
	err := p.addConsLocked(c)
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return q, nil
}

// IntegralSplit splits self along the integer boundary of c (spec
// §4.5.4): c must have integer coefficients and inhomogeneous term; the
// two results are self ∩ ⌈c⌉ and self ∩ ⌊¬c⌋, each tightened to the
// nearest integer-feasible half-space rather than sharing c's boundary.
// If clearing divisors by the coefficient gcd would leave a
// non-integer constant, the corresponding side is reported empty via its
// IsEmpty() rather than here, matching the spec's "undefined" wording
// for preconditions by simply returning a polyhedron that converts to
// empty on the first query.
func (p *Poly) IntegralSplit(c *conset.Con) (lowSide, highSide *Poly, err error) {
	p.mu.RLock()
	dim := p.dim
	topo := p.topo
	p.mu.RUnlock()
	if c.Dim() != dim {
		return nil, nil, ErrDimensionMismatch
	}
	if c.Kind() != conset.NonStrict {
		return nil, nil, ErrTopologyMismatch
	}
	expr := c.Expr().Clone()
	g := expr.GCDRange(0, expr.Dim())
	if !g.IsZero() && g.Cmp(rational.NewInt(1)) != 0 {
		q, errDiv := rational.Zero().ExactDiv(expr.Inhomo(), g)
		if errDiv != nil {
			empty := NewEmpty(dim, topo)
			return empty, empty.Clone(), nil
		}
		for i := 0; i < expr.Dim(); i++ {
			qc, _ := rational.Zero().ExactDiv(expr.Coeff(linexpr.Var(i)), g)
			expr.SetCoeff(linexpr.Var(i), qc)
		}
		expr.SetInhomo(q)
	}
	// c is a*x + k >= 0, i.e. a*x >= -k; the "floor" side keeps a*x >= -k
	// unchanged (already integer-tight since a, k are integers and the
	// boundary -k is an integer), the "ceil-complement" side tightens
	// a*x <= -k-1 to a*x + k + 1 <= 0.
	low := p.Clone()
	if err := low.AddCon(conset.NewCon(expr, conset.NonStrict)); err != nil {
		return nil, nil, err
	}
	highExpr := expr.Clone()
	highExpr.Negate()
	highExpr.SetInhomo(rational.Zero().Sub(highExpr.Inhomo(), rational.NewInt(1)))
	high := p.Clone()
	if err := high.AddCon(conset.NewCon(highExpr, conset.NonStrict)); err != nil {
		return nil, nil, err
	}
	return low, high, nil
}
