package conset

import (
	"fmt"

	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
)

// GenKind tags the four flavors of generator (spec §3.3).
type GenKind int

const (
	Line GenKind = iota
	Ray
	Point
	ClosurePoint
)

func (k GenKind) String() string {
	switch k {
	case Line:
		return "LINE"
	case Ray:
		return "RAY"
	case Point:
		return "POINT"
	case ClosurePoint:
		return "CLOSURE_POINT"
	default:
		return "UNKNOWN_GEN_KIND"
	}
}

// HasDivisor reports whether k carries a meaningful positive divisor
// (Point and ClosurePoint do; Line and Ray are direction-only and store
// their divisor as 0, per spec §3.3 invariant).
func (k GenKind) HasDivisor() bool { return k == Point || k == ClosurePoint }

// Gen is a generator: a line or ray direction, or a point/closure_point
// at Expr()/Divisor().
type Gen struct {
	expr *linexpr.LinExpr
	kind GenKind
	den  *rational.Integer // 0 for Line/Ray
}

// NewLine builds a line generator with the given direction.
func NewLine(dir *linexpr.LinExpr) *Gen { return newDirectional(dir, Line) }

// NewRay builds a ray generator with the given direction.
func NewRay(dir *linexpr.LinExpr) *Gen { return newDirectional(dir, Ray) }

func newDirectional(dir *linexpr.LinExpr, kind GenKind) *Gen {
	e := dir.Clone()
	e.SetInhomo(rational.Zero())
	normalizeGenRow(e)
	if kind == Line {
		e.NormalizeSign()
	}
	return &Gen{expr: e, kind: kind, den: rational.Zero()}
}

// NewPoint builds a point generator at expr/den. den must be > 0.
func NewPoint(expr *linexpr.LinExpr, den *rational.Integer) (*Gen, error) {
	return newPointish(expr, den, Point)
}

// NewClosurePoint builds a closure-point generator at expr/den (only
// meaningful in NNC systems). den must be > 0.
func NewClosurePoint(expr *linexpr.LinExpr, den *rational.Integer) (*Gen, error) {
	return newPointish(expr, den, ClosurePoint)
}

func newPointish(expr *linexpr.LinExpr, den *rational.Integer, kind GenKind) (*Gen, error) {
	if den.Sign() <= 0 {
		return nil, ErrNonPositiveDivisor
	}
	e := expr.Clone()
	e.SetInhomo(rational.Zero())
	d := den.Clone()
	normalizePointRow(e, d)
	return &Gen{expr: e, kind: kind, den: d}, nil
}

// normalizeGenRow reduces a direction (line/ray) row to lowest terms.
// newDirectional then gives lines a canonical sign (first nonzero
// positive); ray signs carry meaning and are never flipped.
func normalizeGenRow(e *linexpr.LinExpr) {
	e.ReduceByGCD()
}

// normalizePointRow reduces expr/den to lowest terms: divide both by
// gcd(gcd(expr coefficients), den).
func normalizePointRow(e *linexpr.LinExpr, den *rational.Integer) {
	g := e.GCDRange(0, e.Dim())
	g.GCD(g, den)
	if g.IsZero() {
		return
	}
	one := rational.NewInt(1)
	if g.Cmp(one) == 0 {
		return
	}
	for i := 0; i < e.Dim(); i++ {
		q, _ := rational.Zero().ExactDiv(e.Coeff(linexpr.Var(i)), g)
		e.SetCoeff(linexpr.Var(i), q)
	}
	q, _ := rational.Zero().ExactDiv(den, g)
	den.Set(q)
}

// Expr returns the underlying linear expression (direction, or numerator
// for points). Callers must not mutate it.
func (g *Gen) Expr() *linexpr.LinExpr { return g.expr }

// Kind returns the generator's flavor.
func (g *Gen) Kind() GenKind { return g.kind }

// Divisor returns the positive divisor for Point/ClosurePoint, or the
// zero Integer for Line/Ray (spec §3.3 invariant: "implicitly 1 and
// stored as 0").
func (g *Gen) Divisor() *rational.Integer { return g.den }

// Dim returns the generator's space dimension.
func (g *Gen) Dim() int { return g.expr.Dim() }

// Clone returns a deep, independent copy.
func (g *Gen) Clone() *Gen {
	return &Gen{expr: g.expr.Clone(), kind: g.kind, den: g.den.Clone()}
}

// IsSkeleton reports whether g belongs in the sk partition (everything
// except Line, which is sing).
func (g *Gen) IsSkeleton() bool { return g.kind != Line }

// Coords returns the generator's coordinate vector (the coefficients of
// its underlying expression, which carries no inhomogeneous term of its
// own) as a plain slice, for evaluating constraints at this generator.
func (g *Gen) Coords() []*rational.Integer {
	out := make([]*rational.Integer, g.Dim())
	for i := range out {
		out[i] = g.expr.Coeff(linexpr.Var(i))
	}
	return out
}

// String renders g using variable names A, B, C, ....
func (g *Gen) String() string {
	return fmt.Sprintf("%s(%s)%s", g.kind.String(), trimZeroRelation(g.expr), divisorSuffix(g))
}

func trimZeroRelation(e *linexpr.LinExpr) string {
	s := ""
	first := true
	for i := 0; i < e.Dim(); i++ {
		c := e.Coeff(linexpr.Var(i))
		if c.IsZero() {
			continue
		}
		term := fmt.Sprintf("%s*%s", c.String(), varName(i))
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
	return s
}

func divisorSuffix(g *Gen) string {
	if !g.kind.HasDivisor() {
		return ""
	}
	return "/" + g.den.String()
}
