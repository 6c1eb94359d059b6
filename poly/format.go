package poly

import (
	"fmt"
	"strings"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/config"
	"github.com/polylib/ppl/linexpr"
)

// VarNameFunc renders a space dimension as a display name for a single
// FormatCon/FormatGen call (spec §6.4's "custom output function"),
// mirroring PPLite's IO_Operators customization point: that hook is
// passed at the call site, not set process-wide the way config.NameFunc
// is. FormatCon/FormatGen accept one as an optional trailing argument
// and fall back to config.NameDim when none is given.
type VarNameFunc func(dim int) string

// FormatCon renders c, using nameFunc if given or config.NameDim
// otherwise for variable names (spec §6.4's "or by a custom output
// function"), rather than conset.Con's built-in A, B, C default.
func FormatCon(c *conset.Con, nameFunc ...VarNameFunc) string {
	name := resolveNameFunc(nameFunc)
	rel := map[bool]string{true: ">", false: ">="}[c.Kind() == conset.Strict]
	if c.Kind() == conset.Equality {
		rel = "="
	}
	return fmt.Sprintf("%s %s %s", formatExprNamed(c.Expr(), name), rel, c.Expr().Inhomo().Clone().Negate().String())
}

// FormatGen renders g, using nameFunc if given or config.NameDim
// otherwise.
func FormatGen(g *conset.Gen, nameFunc ...VarNameFunc) string {
	name := resolveNameFunc(nameFunc)
	body := formatExprNamed(g.Expr(), name)
	if body == "" {
		body = "0"
	}
	kind := strings.ToLower(g.Kind().String())
	if g.Kind().HasDivisor() {
		return fmt.Sprintf("%s(%s)/%s", kind, body, g.Divisor().String())
	}
	return fmt.Sprintf("%s(%s)", kind, body)
}

func resolveNameFunc(nameFunc []VarNameFunc) VarNameFunc {
	if len(nameFunc) > 0 && nameFunc[0] != nil {
		return nameFunc[0]
	}
	return config.NameDim
}

func formatExprNamed(e *linexpr.LinExpr, name VarNameFunc) string {
	s := ""
	first := true
	for i := 0; i < e.Dim(); i++ {
		c := e.Coeff(linexpr.Var(i))
		if c.IsZero() {
			continue
		}
		term := fmt.Sprintf("%s*%s", c.String(), name(i))
		if first {
			s = term
			first = false
		} else {
			s += " + " + term
		}
	}
	if s == "" {
		return "0"
	}
	return s
}
