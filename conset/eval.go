package conset

import (
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
)

// EvalValue evaluates constraint c's homogeneous linear form at generator
// g and returns the exact integer numerator of the result (spec §4.3's
// "value(a, b)"): for a line/ray this is the pure dot product of c's
// coefficients with g's direction, since a direction has no absolute
// position and c's inhomogeneous term plays no part; for a point/closure
// point it is c(expr) + c.Inhomo()*divisor, i.e. the numerator of
// c(expr)/divisor scaled by divisor. Conversion combines two dual rows by
// the magnitude of this value, not merely its sign, so it is exposed
// alongside EvalSign rather than folded away.
func EvalValue(c *Con, g *Gen) *rational.Integer {
	coords := g.Coords()
	acc := rational.Zero()
	if g.Kind() != Line && g.Kind() != Ray {
		acc.AddMul(c.Expr().Inhomo(), g.Divisor())
	}
	for i := 0; i < c.Dim(); i++ {
		acc.AddMul(c.Expr().Coeff(linexpr.Var(i)), coords[i])
	}
	return acc
}

// EvalSign evaluates constraint c's linear form at generator g and
// returns its sign (-1, 0, +1). For a line/ray, the "value" is the pure
// homogeneous dot product of c's coefficients with g's direction (a
// direction has no absolute position, so c's inhomogeneous term plays no
// part — this is the standard double-description convention and is what
// makes lines/rays translation-invariant probes of a constraint's linear
// part). For a point/closure point, the value is c(expr)/divisor,
// computed exactly; since divisor > 0 the sign of the value equals the
// sign of the numerator, so no rational division is needed on the hot
// path.
func EvalSign(c *Con, g *Gen) int {
	return EvalValue(c, g).Sign()
}

// DotDirection returns the sign of the pure homogeneous dot product of
// two generators' coordinate vectors (ignoring divisors). The conversion
// code in package convert does not call it.
func DotDirection(a, b *Gen) int {
	ac := a.Coords()
	bc := b.Coords()
	acc := rational.Zero()
	for i := range ac {
		acc.AddMul(ac[i], bc[i])
	}
	return acc.Sign()
}
