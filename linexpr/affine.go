package linexpr

import "github.com/polylib/ppl/rational"

// AffineExpr is a LinExpr together with a positive Integer divisor,
// denoting the rational-valued expression Expr()/Divisor().
// poly.AffineImage and poly.AffinePreimage do not take an AffineExpr:
// they take the expression and its denominator as separate arguments.
type AffineExpr struct {
	expr *LinExpr
	den  *rational.Integer
}

// NewAffineExpr builds an AffineExpr. den must be > 0 (precondition;
// violating it is undefined behaviour per spec §7.1, mirrored here by a
// panic since there is no sane defaulted value to return).
func NewAffineExpr(expr *LinExpr, den *rational.Integer) *AffineExpr {
	if den.Sign() <= 0 {
		panic("linexpr: AffineExpr divisor must be positive")
	}
	return &AffineExpr{expr: expr.Clone(), den: den.Clone()}
}

// Expr returns the linear-expression numerator.
func (a *AffineExpr) Expr() *LinExpr { return a.expr }

// Divisor returns the positive denominator.
func (a *AffineExpr) Divisor() *rational.Integer { return a.den }

// Clone returns an independent deep copy.
func (a *AffineExpr) Clone() *AffineExpr {
	return &AffineExpr{expr: a.expr.Clone(), den: a.den.Clone()}
}
