package poly

import (
	"bufio"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/polylib/ppl/bitset"
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/satmat"
	"github.com/polylib/ppl/topology"
)

// AsciiDump renders p as a line-oriented textual dump (spec §6.3):
// topology, space dimension, status, and the sing/sk/ns rows of both the
// constraint and generator systems, followed by the saturation matrix.
// This implementation carries no separate "pending" system — a Poly
// always applies new rows into its live constraint system rather than
// queuing them in a second one — so the dump's pending sections are
// always empty rather than omitted, keeping the record's shape stable
// for ascii_load.
func (p *Poly) AsciiDump() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ensureMinimalLocked()

	var b strings.Builder
	fmt.Fprintf(&b, "topology: %s\n", p.topo)
	fmt.Fprintf(&b, "dim: %d\n", p.dim)
	status := "nonempty"
	if p.empty {
		status = "empty"
	}
	fmt.Fprintf(&b, "status: %s\n", status)

	dumpCons(&b, "cons", p.c)
	dumpGens(&b, "gens", p.g)
	dumpCons(&b, "pending_cons", conset.NewConSys(p.dim))
	dumpGens(&b, "pending_gens", conset.NewGenSys(p.dim))
	dumpSat(&b, p.sat)
	return b.String()
}

func dumpCons(b *strings.Builder, label string, cs *conset.ConSys) {
	fmt.Fprintf(b, "%s:\n", label)
	fmt.Fprintf(b, "  sing: %d\n", cs.NumSing())
	for i := 0; i < cs.NumSing(); i++ {
		fmt.Fprintf(b, "  %s\n", formatConRow(cs.Sing(i)))
	}
	fmt.Fprintf(b, "  sk: %d\n", cs.NumSk())
	for i := 0; i < cs.NumSk(); i++ {
		fmt.Fprintf(b, "  %s\n", formatConRow(cs.Sk(i)))
	}
	fmt.Fprintf(b, "  ns: %d\n", cs.NumNS())
	for i := 0; i < cs.NumNS(); i++ {
		fmt.Fprintf(b, "  %s\n", formatNSRow(cs.NS(i)))
	}
}

func dumpGens(b *strings.Builder, label string, gs *conset.GenSys) {
	fmt.Fprintf(b, "%s:\n", label)
	fmt.Fprintf(b, "  sing: %d\n", gs.NumSing())
	for i := 0; i < gs.NumSing(); i++ {
		fmt.Fprintf(b, "  %s\n", formatGenRow(gs.Sing(i)))
	}
	fmt.Fprintf(b, "  sk: %d\n", gs.NumSk())
	for i := 0; i < gs.NumSk(); i++ {
		fmt.Fprintf(b, "  %s\n", formatGenRow(gs.Sk(i)))
	}
	fmt.Fprintf(b, "  ns: %d\n", gs.NumNS())
	for i := 0; i < gs.NumNS(); i++ {
		fmt.Fprintf(b, "  %s\n", formatNSRow(gs.NS(i)))
	}
}

func dumpSat(b *strings.Builder, sat *satmat.SatMatrix) {
	fmt.Fprintf(b, "sat_c:\n")
	if sat == nil {
		return
	}
	for i := 0; i < sat.NumCons(); i++ {
		fmt.Fprintf(b, "  %s\n", formatBitsAsDigits(sat.RowByCon(i), sat.NumGens()))
	}
}

func formatBitsAsDigits(row *bitset.Bits, n int) string {
	digits := make([]string, n)
	for j := 0; j < n; j++ {
		if row.Test(j) {
			digits[j] = "1"
		} else {
			digits[j] = "0"
		}
	}
	return strings.Join(digits, " ")
}

func formatConRow(c *conset.Con) string {
	var kind string
	switch c.Kind() {
	case conset.Equality:
		kind = "equality"
	case conset.Strict:
		kind = "strict"
	default:
		kind = "nonstrict"
	}
	return fmt.Sprintf("%s : %d : %s : %s", kind, c.Dim(), formatCoeffs(c.Expr()), c.Expr().Inhomo().String())
}

func formatGenRow(g *conset.Gen) string {
	var kind string
	switch g.Kind() {
	case conset.Line:
		kind = "line"
	case conset.Ray:
		kind = "ray"
	case conset.ClosurePoint:
		kind = "closure_point"
	default:
		kind = "point"
	}
	div := "1"
	if g.Kind().HasDivisor() {
		div = g.Divisor().String()
	}
	return fmt.Sprintf("%s : %d : %s : %s", kind, g.Dim(), formatCoeffs(g.Expr()), div)
}

func formatCoeffs(e *linexpr.LinExpr) string {
	parts := make([]string, e.Dim())
	for i := 0; i < e.Dim(); i++ {
		parts[i] = e.Coeff(linexpr.Var(i)).String()
	}
	return strings.Join(parts, " ")
}

func formatNSRow(row *bitset.IndexSet) string {
	idx := row.Slice()
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = strconv.Itoa(v)
	}
	return fmt.Sprintf("%d : { %s }", len(idx), strings.Join(parts, ", "))
}

// AsciiLoadPoly parses the format produced by AsciiDump (spec §6.3's
// load ∘ dump == identity on canonical representations). It returns
// (nil, false) on any malformed input, per spec §7's "ascii_load returns
// a boolean; on false the target is unspecified".
func AsciiLoadPoly(s string) (*Poly, bool) {
	sc := bufio.NewScanner(strings.NewReader(s))
	lines := make([]string, 0, 64)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	i := 0
	next := func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		line := lines[i]
		i++
		return line, true
	}

	line, ok := next()
	if !ok || !strings.HasPrefix(line, "topology: ") {
		return nil, false
	}
	var topo topology.Topol
	switch strings.TrimPrefix(line, "topology: ") {
	case "Closed":
		topo = topology.Closed
	case "NNC":
		topo = topology.NNC
	default:
		return nil, false
	}

	line, ok = next()
	if !ok || !strings.HasPrefix(line, "dim: ") {
		return nil, false
	}
	dim, err := strconv.Atoi(strings.TrimPrefix(line, "dim: "))
	if err != nil || dim < 0 {
		return nil, false
	}

	line, ok = next()
	if !ok || !strings.HasPrefix(line, "status: ") {
		return nil, false
	}

	cons, nextI, okc := parseConsBlock(lines, i, "cons:", dim)
	if !okc {
		return nil, false
	}
	i = nextI
	_, nextI, okg := parseGensBlock(lines, i, "gens:", dim)
	if !okg {
		return nil, false
	}
	i = nextI
	if _, nextI, ok := parseConsBlock(lines, i, "pending_cons:", dim); ok {
		i = nextI
	}
	if _, nextI, ok := parseGensBlock(lines, i, "pending_gens:", dim); ok {
		i = nextI
	}

	return FromCons(topo, cons), true
}

func parseConsBlock(lines []string, i int, label string, dim int) (*conset.ConSys, int, bool) {
	if i >= len(lines) || strings.TrimSpace(lines[i]) != label {
		return nil, i, false
	}
	i++
	cs := conset.NewConSys(dim)
	n, next, ok := readCount(lines, i, "sing")
	if !ok {
		return nil, i, false
	}
	i = next
	for k := 0; k < n; k++ {
		c, next, ok := parseConRow(lines, i, dim)
		if !ok {
			return nil, i, false
		}
		i = next
		_ = cs.AppendSing(c)
	}
	n, next, ok = readCount(lines, i, "sk")
	if !ok {
		return nil, i, false
	}
	i = next
	for k := 0; k < n; k++ {
		c, next, ok := parseConRow(lines, i, dim)
		if !ok {
			return nil, i, false
		}
		i = next
		_ = cs.AppendSk(c)
	}
	n, next, ok = readCount(lines, i, "ns")
	if !ok {
		return nil, i, false
	}
	i = next
	for k := 0; k < n; k++ {
		support, next, ok := parseNSRow(lines, i)
		if !ok {
			return nil, i, false
		}
		i = next
		_ = cs.AppendNS(support)
	}
	return cs, i, true
}

func parseGensBlock(lines []string, i int, label string, dim int) (*conset.GenSys, int, bool) {
	if i >= len(lines) || strings.TrimSpace(lines[i]) != label {
		return nil, i, false
	}
	i++
	gs := conset.NewGenSys(dim)
	n, next, ok := readCount(lines, i, "sing")
	if !ok {
		return nil, i, false
	}
	i = next
	for k := 0; k < n; k++ {
		g, next, ok := parseGenRow(lines, i, dim)
		if !ok {
			return nil, i, false
		}
		i = next
		_ = gs.AppendSing(g)
	}
	n, next, ok = readCount(lines, i, "sk")
	if !ok {
		return nil, i, false
	}
	i = next
	for k := 0; k < n; k++ {
		g, next, ok := parseGenRow(lines, i, dim)
		if !ok {
			return nil, i, false
		}
		i = next
		_ = gs.AppendSk(g)
	}
	n, next, ok = readCount(lines, i, "ns")
	if !ok {
		return nil, i, false
	}
	i = next
	for k := 0; k < n; k++ {
		support, next, ok := parseNSRow(lines, i)
		if !ok {
			return nil, i, false
		}
		i = next
		_ = gs.AppendNS(support)
	}
	return gs, i, true
}

func readCount(lines []string, i int, label string) (int, int, bool) {
	if i >= len(lines) {
		return 0, i, false
	}
	trimmed := strings.TrimSpace(lines[i])
	prefix := label + ": "
	if !strings.HasPrefix(trimmed, prefix) {
		return 0, i, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(trimmed, prefix))
	if err != nil {
		return 0, i, false
	}
	return n, i + 1, true
}

func parseConRow(lines []string, i int, dim int) (*conset.Con, int, bool) {
	if i >= len(lines) {
		return nil, i, false
	}
	fields := strings.Split(strings.TrimSpace(lines[i]), " : ")
	if len(fields) != 4 {
		return nil, i, false
	}
	var kind conset.ConKind
	switch fields[0] {
	case "equality":
		kind = conset.Equality
	case "strict":
		kind = conset.Strict
	case "nonstrict":
		kind = conset.NonStrict
	default:
		return nil, i, false
	}
	rowDim, err := strconv.Atoi(fields[1])
	if err != nil || rowDim != dim {
		return nil, i, false
	}
	e, ok := parseLinExpr(fields[2], dim)
	if !ok {
		return nil, i, false
	}
	k, ok := parseBigInt(fields[3])
	if !ok {
		return nil, i, false
	}
	e.SetInhomo(rational.NewIntFromBig(k))
	return conset.NewCon(e, kind), i + 1, true
}

func parseGenRow(lines []string, i int, dim int) (*conset.Gen, int, bool) {
	if i >= len(lines) {
		return nil, i, false
	}
	fields := strings.Split(strings.TrimSpace(lines[i]), " : ")
	if len(fields) != 4 {
		return nil, i, false
	}
	rowDim, err := strconv.Atoi(fields[1])
	if err != nil || rowDim != dim {
		return nil, i, false
	}
	e, ok := parseLinExpr(fields[2], dim)
	if !ok {
		return nil, i, false
	}
	den, ok := parseBigInt(fields[3])
	if !ok {
		return nil, i, false
	}
	denom := rational.NewIntFromBig(den)
	switch fields[0] {
	case "line":
		return conset.NewLine(e), i + 1, true
	case "ray":
		return conset.NewRay(e), i + 1, true
	case "closure_point":
		g, err := conset.NewClosurePoint(e, denom)
		if err != nil {
			return nil, i, false
		}
		return g, i + 1, true
	case "point":
		g, err := conset.NewPoint(e, denom)
		if err != nil {
			return nil, i, false
		}
		return g, i + 1, true
	default:
		return nil, i, false
	}
}

func parseLinExpr(s string, dim int) (*linexpr.LinExpr, bool) {
	e := linexpr.New(dim)
	if strings.TrimSpace(s) == "" {
		if dim == 0 {
			return e, true
		}
		return nil, false
	}
	fields := strings.Fields(s)
	if len(fields) != dim {
		return nil, false
	}
	for i, f := range fields {
		n, ok := parseBigInt(f)
		if !ok {
			return nil, false
		}
		e.SetCoeff(linexpr.Var(i), rational.NewIntFromBig(n))
	}
	return e, true
}

func parseNSRow(lines []string, i int) (*bitset.IndexSet, int, bool) {
	if i >= len(lines) {
		return nil, i, false
	}
	trimmed := strings.TrimSpace(lines[i])
	parts := strings.SplitN(trimmed, " : ", 2)
	if len(parts) != 2 {
		return nil, i, false
	}
	body := strings.TrimSpace(parts[1])
	body = strings.TrimPrefix(body, "{")
	body = strings.TrimSuffix(body, "}")
	body = strings.TrimSpace(body)
	support := bitset.New(0)
	if body != "" {
		for _, tok := range strings.Split(body, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return nil, i, false
			}
			support.Set(idx)
		}
	}
	return support, i + 1, true
}

func parseBigInt(s string) (*big.Int, bool) {
	n := new(big.Int)
	_, ok := n.SetString(strings.TrimSpace(s), 10)
	return n, ok
}
