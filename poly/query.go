package poly

import (
	"github.com/polylib/ppl/bbox"
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
)

// Constrains reports whether dimension v is constrained (spec §4.5):
// true iff some non-line generator's direction has a nonzero component
// at v, or some equality constraint mentions v.
func (p *Poly) Constrains(v linexpr.Var) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(v) < 0 || int(v) >= p.dim {
		return false, ErrIndexOutOfRange
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return false, err
	}
	for i := 0; i < p.c.NumSing(); i++ {
		if !p.c.Sing(i).Expr().Coeff(v).IsZero() {
			return true, nil
		}
	}
	for i := 0; i < p.g.NumSk(); i++ {
		if !p.g.Sk(i).Expr().Coeff(v).IsZero() {
			return true, nil
		}
	}
	return false, nil
}

// MinOrMax selects whether IsBoundedExpr/Min/Max looks for a lower or
// upper bound of the functional.
type MinOrMax int

const (
	Minimize MinOrMax = iota
	Maximize
)

// IsBounded reports whether the polyhedron is bounded in every direction
// (spec §4.5 is_bounded): no line exists and no ray has a nonzero
// direction at all (a ray always witnesses unboundedness, since there is
// always some linear functional unbounded along it).
func (p *Poly) IsBounded() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureMinimalLocked(); err != nil {
		return false, err
	}
	if p.empty {
		return true, nil
	}
	if p.g.NumSing() > 0 {
		return false, nil
	}
	for i := 0; i < p.g.NumSk(); i++ {
		if p.g.Sk(i).Kind() == conset.Ray {
			return false, nil
		}
	}
	return true, nil
}

// IsBoundedExpr reports whether the linear functional e is bounded in
// the requested direction over the polyhedron (spec §4.5
// is_bounded_expr): unbounded iff some line has a nonzero dot product
// with e, or some ray's dot product with e has the sign that would
// improve the requested optimum.
func (p *Poly) IsBoundedExpr(dir MinOrMax, e *linexpr.LinExpr) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e.Dim() != p.dim {
		return false, ErrDimensionMismatch
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return false, err
	}
	if p.empty {
		return true, nil
	}
	for i := 0; i < p.g.NumSing(); i++ {
		if dotDirection(e, p.g.Sing(i)) != 0 {
			return false, nil
		}
	}
	for i := 0; i < p.g.NumSk(); i++ {
		g := p.g.Sk(i)
		if g.Kind() != conset.Ray {
			continue
		}
		s := dotDirection(e, g)
		if dir == Maximize && s > 0 {
			return false, nil
		}
		if dir == Minimize && s < 0 {
			return false, nil
		}
	}
	return true, nil
}

func dotDirection(e *linexpr.LinExpr, g *conset.Gen) int {
	acc := rational.Zero()
	coords := g.Coords()
	for i := 0; i < e.Dim(); i++ {
		acc.AddMul(e.Coeff(linexpr.Var(i)), coords[i])
	}
	return acc.Sign()
}

// Min computes the exact minimum of e over the polyhedron (spec §4.5
// min), returning the value, whether it is actually attained
// (included), a witnessing generator, and whether an optimum exists at
// all. Max is the same computation negating the comparison.
func (p *Poly) Min(e *linexpr.LinExpr) (value *rational.Rational, included bool, witness *conset.Gen, ok bool, err error) {
	return p.optimize(Minimize, e)
}

// Max computes the exact maximum of e over the polyhedron (spec §4.5
// max).
func (p *Poly) Max(e *linexpr.LinExpr) (value *rational.Rational, included bool, witness *conset.Gen, ok bool, err error) {
	return p.optimize(Maximize, e)
}

func (p *Poly) optimize(dir MinOrMax, e *linexpr.LinExpr) (*rational.Rational, bool, *conset.Gen, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e.Dim() != p.dim {
		return nil, false, nil, false, ErrDimensionMismatch
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return nil, false, nil, false, err
	}
	if p.empty {
		return nil, false, nil, false, nil
	}
	for i := 0; i < p.g.NumSing(); i++ {
		if dotDirection(e, p.g.Sing(i)) != 0 {
			return nil, false, nil, false, nil
		}
	}
	for i := 0; i < p.g.NumSk(); i++ {
		g := p.g.Sk(i)
		if g.Kind() != conset.Ray {
			continue
		}
		s := dotDirection(e, g)
		if (dir == Maximize && s > 0) || (dir == Minimize && s < 0) {
			return nil, false, nil, false, nil
		}
	}

	var best *rational.Rational
	var bestIncluded bool
	var bestGen *conset.Gen
	consider := func(g *conset.Gen) {
		if g.Kind() != conset.Point && g.Kind() != conset.ClosurePoint {
			return
		}
		num := rational.Zero()
		coords := g.Coords()
		for i := 0; i < e.Dim(); i++ {
			num.AddMul(e.Coeff(linexpr.Var(i)), coords[i])
		}
		num.AddMul(e.Inhomo(), g.Divisor())
		val, _ := rational.NewRational(num, g.Divisor())
		included := g.Kind() == conset.Point
		if best == nil {
			best, bestIncluded, bestGen = val, included, g
			return
		}
		c := val.Cmp(best)
		better := (dir == Maximize && c > 0) || (dir == Minimize && c < 0)
		// A closure point ties to an equal-valued point only lose: the
		// point is a strictly better (attained) witness at the same value.
		tie := c == 0 && !bestIncluded && included
		if better || tie {
			best, bestIncluded, bestGen = val, included, g
		}
	}
	for i := 0; i < p.g.NumSk(); i++ {
		consider(p.g.Sk(i))
	}
	if best == nil {
		return nil, false, nil, false, nil
	}
	return best, bestIncluded, bestGen.Clone(), true, nil
}

// Bounds reports both ends of e's range over the polyhedron in one call
// (spec's supplemented feature set, built directly on Min/Max): lo/hi
// are nil when the corresponding side is unbounded or the polyhedron is
// empty, and loClosed/hiClosed report whether the respective bound is
// attained.
func (p *Poly) Bounds(e *linexpr.LinExpr) (lo, hi *rational.Rational, loClosed, hiClosed bool, err error) {
	loVal, loIncl, _, loOk, err := p.Min(e)
	if err != nil {
		return nil, nil, false, false, err
	}
	hiVal, hiIncl, _, hiOk, err := p.Max(e)
	if err != nil {
		return nil, nil, false, false, err
	}
	if loOk {
		lo, loClosed = loVal, loIncl
	}
	if hiOk {
		hi, hiClosed = hiVal, hiIncl
	}
	return lo, hi, loClosed, hiClosed, nil
}

// GetBoundingBox returns the axis-aligned envelope of the polyhedron
// (spec §4.5, §4.7): one interval per dimension, each end computed
// exactly via Min/Max along that axis.
func (p *Poly) GetBoundingBox() (*bbox.BBox, error) {
	p.mu.Lock()
	dim := p.dim
	empty := false
	if err := p.ensureMinimalLocked(); err != nil {
		p.mu.Unlock()
		return nil, err
	}
	empty = p.empty
	p.mu.Unlock()
	if empty {
		return bbox.NewEmpty(dim), nil
	}
	box := bbox.New(dim)
	for i := 0; i < dim; i++ {
		e := linexpr.New(dim)
		e.SetCoeff(linexpr.Var(i), rational.NewInt(1))
		loVal, loIncl, _, loOk, err := p.Min(e)
		if err != nil {
			return nil, err
		}
		hiVal, hiIncl, _, hiOk, err := p.Max(e)
		if err != nil {
			return nil, err
		}
		var lo, hi *rational.Rational
		loClosed, hiClosed := true, true
		if loOk {
			lo = loVal
			loClosed = loIncl
		}
		if hiOk {
			hi = hiVal
			hiClosed = hiIncl
		}
		if err := box.SetItv(i, bbox.Bounded(lo, loClosed, hi, hiClosed)); err != nil {
			return nil, err
		}
	}
	return box, nil
}
