package conset

import (
	"fmt"

	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
)

// ConKind tags the three flavors of constraint (spec §3.2).
type ConKind int

const (
	// Equality denotes expr = 0.
	Equality ConKind = iota
	// NonStrict denotes expr >= 0.
	NonStrict
	// Strict denotes expr > 0. Only meaningful in NNC systems.
	Strict
)

func (k ConKind) String() string {
	switch k {
	case Equality:
		return "EQ"
	case NonStrict:
		return "NONSTRICT"
	case Strict:
		return "STRICT"
	default:
		return "UNKNOWN_CON_KIND"
	}
}

// IsInequality reports whether k is NonStrict or Strict.
func (k ConKind) IsInequality() bool { return k == NonStrict || k == Strict }

// Con is a linear constraint: Expr() [relation] 0, where the relation is
// given by Kind().
type Con struct {
	expr *linexpr.LinExpr
	kind ConKind
}

// NewCon builds a Con over expr (cloned) with the given kind, normalizing
// the row (sign, gcd) per spec §4.2.
func NewCon(expr *linexpr.LinExpr, kind ConKind) *Con {
	e := expr.Clone()
	normalizeConRow(e, kind)
	return &Con{expr: e, kind: kind}
}

// normalizeConRow gcd-reduces a constraint's underlying expression and,
// for an equality only, sign-normalizes it first: the leading nonzero
// coefficient (or, failing that, the inhomogeneous term) is made
// positive. Inequalities keep their sign, since expr >= 0 and -expr >= 0
// are different constraints; the row is then divided by the gcd of all
// its components (spec §3.2, §4.2).
func normalizeConRow(e *linexpr.LinExpr, kind ConKind) {
	if kind == Equality {
		e.NormalizeSign()
	}
	e.ReduceByGCD()
}

// Expr returns the underlying linear expression. Callers must not mutate
// it; use Clone to obtain an independent Con first.
func (c *Con) Expr() *linexpr.LinExpr { return c.expr }

// Kind returns the constraint's relation.
func (c *Con) Kind() ConKind { return c.kind }

// Dim returns the constraint's space dimension.
func (c *Con) Dim() int { return c.expr.Dim() }

// Clone returns a deep, independent copy.
func (c *Con) Clone() *Con { return &Con{expr: c.expr.Clone(), kind: c.kind} }

// IsInconsistent reports whether c is the canonical "false" row: an
// all-zero coefficient vector with an inhomogeneous term that falsifies
// the relation (spec §4.3 "Failure modes"). For example 0 >= -1 is
// trivially true and not inconsistent, but 0 >= 1 is.
func (c *Con) IsInconsistent() bool {
	if c.expr.FirstNonzero() != -1 {
		return false
	}
	k := c.expr.Inhomo().Sign()
	switch c.kind {
	case Equality:
		return k != 0
	case NonStrict:
		return k < 0
	case Strict:
		return k <= 0
	default:
		return false
	}
}

// Value evaluates the constraint's linear form at the rational point
// num/den.
func (c *Con) Value(num []*rational.Integer, den *rational.Integer) (*rational.Rational, error) {
	return c.expr.Value(num, den)
}

// String renders c using variable names A, B, C, ... (spec §6.4). Use
// poly.FormatCon for a custom naming function.
func (c *Con) String() string {
	return formatLinear(c.expr, relSymbol(c.kind))
}

func relSymbol(k ConKind) string {
	switch k {
	case Equality:
		return "="
	case NonStrict:
		return ">="
	case Strict:
		return ">"
	default:
		return "?"
	}
}

func formatLinear(e *linexpr.LinExpr, rel string) string {
	s := ""
	first := true
	for i := 0; i < e.Dim(); i++ {
		c := e.Coeff(linexpr.Var(i))
		if c.IsZero() {
			continue
		}
		name := varName(i)
		term := fmt.Sprintf("%s*%s", c.String(), name)
		if first {
			s = term
			first = false
		} else {
			s += " + " + term
		}
	}
	if s == "" {
		s = "0"
	}
	return fmt.Sprintf("%s %s %s", s, rel, e.Inhomo().Clone().Negate().String())
}

// varName renders dimension i as A, B, ..., Z, A1, B1, ... matching the
// default naming scheme of spec §6.4.
func varName(i int) string {
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < 26 {
		return string(letters[i])
	}
	return fmt.Sprintf("%c%d", letters[i%26], i/26)
}
