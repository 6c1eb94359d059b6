package poly

import (
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/convert"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
)

// AffineImage replaces variable v by (e(x) + e.Inhomo())/denom (spec §4.5
// affine_image); e's own inhomogeneous term carries the "+ inhomo" half
// of the table's four-argument form, so only v, e and denom are needed
// here. denom must be strictly positive.
//
// This always transforms the generator system directly and re-derives
// the constraint dual (convert.GensToCons), rather than branching on
// whether e depends on v: the generator-level substitution formula below
// is valid in both cases (e may legally reference v itself, since it is
// evaluated against each generator's full old coordinate vector before
// any coordinate is overwritten), so one code path covers what spec
// §4.5's operation table frames as two.
func (p *Poly) AffineImage(v linexpr.Var, e *linexpr.LinExpr, denom *rational.Integer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(v) < 0 || int(v) >= p.dim || e.Dim() != p.dim {
		return ErrIndexOutOfRange
	}
	if denom.Sign() <= 0 {
		return ErrNonPositiveDenominator
	}
	if err := p.ensureMinimalLocked(); err != nil {
		return err
	}
	g2 := conset.NewGenSys(p.dim)
	for i := 0; i < p.g.NumSing(); i++ {
		if err := g2.AppendGen(affineImageGen(p.g.Sing(i), v, e, denom)); err != nil {
			return err
		}
	}
	for i := 0; i < p.g.NumSk(); i++ {
		if err := g2.AppendGen(affineImageGen(p.g.Sk(i), v, e, denom)); err != nil {
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

// affineImageGen transforms a single generator under x_v := (e(x) +
// e.Inhomo())/denom. For a line/ray, only the homogeneous part of e is
// used (directions carry no absolute position); for a point/closure
// point the standard divisor-scaled substitution is used: the new
// divisor is old_divisor*denom, every other coordinate is scaled by
// denom to preserve its value, and the v coordinate becomes the
// numerator of e evaluated at the old point.
func affineImageGen(g *conset.Gen, v linexpr.Var, e *linexpr.LinExpr, denom *rational.Integer) *conset.Gen {
	dim := g.Dim()
	coords := g.Coords()
	newExpr := linexpr.New(dim)
	for i := 0; i < dim; i++ {
		if linexpr.Var(i) == v {
			continue
		}
		newExpr.SetCoeff(linexpr.Var(i), rational.Zero().Mul(coords[i], denom))
	}
	vCoeff := rational.Zero()
	for i := 0; i < dim; i++ {
		vCoeff.AddMul(e.Coeff(linexpr.Var(i)), coords[i])
	}
	if g.Kind() != conset.Line && g.Kind() != conset.Ray {
		vCoeff.AddMul(e.Inhomo(), g.Divisor())
		newExpr.SetCoeff(v, vCoeff)
		newDen := rational.Zero().Mul(g.Divisor(), denom)
		switch g.Kind() {
		case conset.ClosurePoint:
			ng, _ := conset.NewClosurePoint(newExpr, newDen)
			return ng
		default:
			ng, _ := conset.NewPoint(newExpr, newDen)
			return ng
		}
	}
	newExpr.SetCoeff(v, vCoeff)
	if g.Kind() == conset.Line {
		return conset.NewLine(newExpr)
	}
	return conset.NewRay(newExpr)
}

// AffinePreimage replaces every occurrence of v in the constraint system
// by (e(x) + e.Inhomo())/denom (spec §4.5 affine_preimage), the dual of
// AffineImage. Unlike the image direction this is always a valid
// constraint-level substitution regardless of whether e depends on v,
// since a preimage only ever eliminates v from each row, never solves
// for it.
func (p *Poly) AffinePreimage(v linexpr.Var, e *linexpr.LinExpr, denom *rational.Integer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(v) < 0 || int(v) >= p.dim || e.Dim() != p.dim {
		return ErrIndexOutOfRange
	}
	if denom.Sign() <= 0 {
		return ErrNonPositiveDenominator
	}
	c2 := conset.NewConSys(p.dim)
	for i := 0; i < p.c.NumSing(); i++ {
		if err := c2.AppendCon(affinePreimageCon(p.c.Sing(i), v, e, denom)); err != nil {
			return err
		}
	}
	for i := 0; i < p.c.NumSk(); i++ {
		if err := c2.AppendCon(affinePreimageCon(p.c.Sk(i), v, e, denom)); err != nil {
			return err
		}
	}
	p.c = c2
	p.minimal = false
	return nil
}

// affinePreimageCon substitutes x_v := (e(x) + e.Inhomo())/denom into a
// single constraint, scaling by denom to keep the result integral:
//
//	new_j   = denom*c_j + c_v*e_j   for j != v
//	new_v   = c_v * e_v
//	new_k   = denom*k + c_v*e.Inhomo()
func affinePreimageCon(c *conset.Con, v linexpr.Var, e *linexpr.LinExpr, denom *rational.Integer) *conset.Con {
	dim := c.Dim()
	cv := c.Expr().Coeff(v)
	newExpr := linexpr.New(dim)
	for j := 0; j < dim; j++ {
		if linexpr.Var(j) == v {
			continue
		}
		coeff := rational.Zero().Mul(denom, c.Expr().Coeff(linexpr.Var(j)))
		coeff.AddMul(cv, e.Coeff(linexpr.Var(j)))
		newExpr.SetCoeff(linexpr.Var(j), coeff)
	}
	newExpr.SetCoeff(v, rational.Zero().Mul(cv, e.Coeff(v)))
	newInhomo := rational.Zero().Mul(denom, c.Expr().Inhomo())
	newInhomo.AddMul(cv, e.Inhomo())
	newExpr.SetInhomo(newInhomo)
	return conset.NewCon(newExpr, c.Kind())
}

// ParallelAffineImage applies n simultaneous affine images (spec §4.5):
// for each i, vars[i] takes on (exprs[i](x) + exprs[i].Inhomo())/denoms[i]
// evaluated against the *original* point, as if every substitution read
// from a fresh copy of the old space before any target variable was
// overwritten. This is implemented exactly as the spec's own hint
// describes: add one fresh dimension per substitution, pin each to the
// old-space value via AffineImage(fresh, expr, denom), rename every
// vars[i] to its fresh dimension (a denom=1 affine image), then drop the
// fresh pool.
func (p *Poly) ParallelAffineImage(vars []linexpr.Var, exprs []*linexpr.LinExpr, denoms []*rational.Integer) error {
	if len(vars) != len(exprs) || len(vars) != len(denoms) {
		return ErrDimensionMismatch
	}
	if len(vars) == 0 {
		return nil
	}
	n := len(vars)
	p.mu.Lock()
	oldDim := p.dim
	p.mu.Unlock()

	if err := p.AddSpaceDims(n, false); err != nil {
		return err
	}
	fresh := make([]linexpr.Var, n)
	for i := 0; i < n; i++ {
		fresh[i] = linexpr.Var(oldDim + i)
	}
	for i := 0; i < n; i++ {
		e := exprs[i].Clone()
		e.ExtendDim(oldDim + n)
		if err := p.AffineImage(fresh[i], e, denoms[i]); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		rename := linexpr.New(oldDim + n)
		rename.SetCoeff(fresh[i], rational.NewInt(1))
		if err := p.AffineImage(vars[i], rename, rational.NewInt(1)); err != nil {
			return err
		}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = oldDim + i
	}
	return p.RemoveSpaceDims(idx)
}
