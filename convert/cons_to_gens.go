package convert

import (
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
)

// ConsToGens converts a constraint system into its generator-system dual
// from scratch (spec §4.3): starting from the universe {origin} ∪
// {line per axis}, every sing row is absorbed first, then every sk row,
// each in input order. The result is unminimized; callers run
// minimize.Gens to reach canonical form. topo is carried for symmetry
// with GensToCons and future use — strictness and closure-point status
// here are tracked directly via ConKind/GenKind tags rather than an
// extra epsilon dimension, so the core arithmetic does not itself branch
// on topo.
func ConsToGens(topo topology.Topol, cons *conset.ConSys) (*conset.GenSys, error) {
	dim := cons.Dim()
	dual := initialDualGens(dim)
	var strictSeen []*conset.Con
	absorb := func(a *conset.Con) (bool, error) {
		next, empty, err := incorporateCon(dim, dual, a, strictSeen)
		if err != nil {
			return false, err
		}
		if empty {
			return true, nil
		}
		dual = next
		if a.Kind() == conset.Strict {
			strictSeen = append(strictSeen, a)
		}
		return false, nil
	}
	for i := 0; i < cons.NumSing(); i++ {
		empty, err := absorb(cons.Sing(i))
		if err != nil {
			return nil, err
		}
		if empty {
			return conset.NewGenSys(dim), nil
		}
	}
	for i := 0; i < cons.NumSk(); i++ {
		empty, err := absorb(cons.Sk(i))
		if err != nil {
			return nil, err
		}
		if empty {
			return conset.NewGenSys(dim), nil
		}
	}
	return finalize(dim, dual), nil
}

// finalize applies the "empty iff G has no point" rule (spec's
// consistency invariant) once, after every pending row has been
// incorporated, rather than after each one. An intermediate dual
// legitimately has only closure points and rays — incorporating x > 0
// alone yields {closure_point(0), ray(+1)}, the open ray (0, ∞), which is
// non-empty even though it carries no point row yet. A later pending row
// (x <= 4) can still bound it into (0, 4], which does gain a genuine
// point. Once nothing is left pending, a dual with no point is either
// truly empty or missing only the interior witness a closure point
// combined with a ray, or with a second closure point, always supplies.
func finalize(dim int, dual *conset.GenSys) *conset.GenSys {
	if dual.HasPoint() {
		return dual
	}
	if dual.NumSk() == 0 {
		return conset.NewGenSys(dim)
	}
	witness := synthesizeInteriorPoint(dual)
	if witness == nil {
		return conset.NewGenSys(dim)
	}
	next := conset.NewGenSys(dim)
	for i := 0; i < dual.NumSing(); i++ {
		_ = next.AppendSing(dual.Sing(i))
	}
	for i := 0; i < dual.NumSk(); i++ {
		_ = next.AppendSk(dual.Sk(i))
	}
	_ = next.AppendSk(witness)
	return next
}

// synthesizeInteriorPoint builds a genuine point implied by a closure
// point already present in dual: combined with a ray it gives a point
// strictly past the closure point along that ray; combined with a second
// closure point it gives their midpoint. Returns nil when dual carries
// no closure point to anchor from (a true emptiness signal).
func synthesizeInteriorPoint(dual *conset.GenSys) *conset.Gen {
	dim := dual.Dim()
	var cp *conset.Gen
	for i := 0; i < dual.NumSk(); i++ {
		if dual.Sk(i).Kind() == conset.ClosurePoint {
			cp = dual.Sk(i)
			break
		}
	}
	if cp == nil {
		return nil
	}
	for i := 0; i < dual.NumSk(); i++ {
		r := dual.Sk(i)
		if r.Kind() != conset.Ray {
			continue
		}
		expr := cp.Expr().Clone()
		expr.AddMulAssign(cp.Divisor(), r.Expr())
		pt, err := conset.NewPoint(expr, cp.Divisor().Clone())
		if err != nil {
			return nil
		}
		return pt
	}
	for i := 0; i < dual.NumSk(); i++ {
		other := dual.Sk(i)
		if other.Kind() != conset.ClosurePoint || other == cp {
			continue
		}
		expr := linexpr.New(dim)
		expr.AddMulAssign(other.Divisor(), cp.Expr())
		expr.AddMulAssign(cp.Divisor(), other.Expr())
		div := rational.Zero()
		div.AddMul(cp.Divisor(), other.Divisor())
		div.Add(div, div)
		pt, err := conset.NewPoint(expr, div)
		if err != nil {
			return nil
		}
		return pt
	}
	return nil
}

// initialDualGens is the universe generator set: a point at the origin
// plus one line per axis (spec §4.3 step 1).
func initialDualGens(dim int) *conset.GenSys {
	g := conset.NewGenSys(dim)
	origin, err := conset.NewPoint(linexpr.New(dim), rational.NewInt(1))
	if err != nil {
		panic("convert: origin point construction cannot fail")
	}
	_ = g.AppendSk(origin)
	for i := 0; i < dim; i++ {
		dir := linexpr.New(dim)
		dir.SetCoeff(linexpr.Var(i), rational.NewInt(1))
		_ = g.AppendSing(conset.NewLine(dir))
	}
	return g
}

type genRow struct {
	g      *conset.Gen
	val    *rational.Integer
	isLine bool
}

func collectGenRows(dual *conset.GenSys, a *conset.Con) []genRow {
	rows := make([]genRow, 0, dual.NumSing()+dual.NumSk())
	for i := 0; i < dual.NumSing(); i++ {
		g := dual.Sing(i)
		rows = append(rows, genRow{g: g, val: conset.EvalValue(a, g), isLine: true})
	}
	for i := 0; i < dual.NumSk(); i++ {
		g := dual.Sk(i)
		rows = append(rows, genRow{g: g, val: conset.EvalValue(a, g), isLine: false})
	}
	return rows
}

// incorporateCon absorbs one pending constraint into dual, returning the
// updated dual (a fresh GenSys) and whether the whole system collapsed to
// empty.
func incorporateCon(dim int, dual *conset.GenSys, a *conset.Con, strictSeen []*conset.Con) (*conset.GenSys, bool, error) {
	if a.IsInconsistent() {
		return nil, true, nil
	}

	if a.Kind() == conset.Equality {
		return incorporateEqualityCon(dim, dual, a, strictSeen)
	}
	return incorporateInequalityCon(dim, dual, a, strictSeen)
}

func incorporateEqualityCon(dim int, dual *conset.GenSys, a *conset.Con, strictSeen []*conset.Con) (*conset.GenSys, bool, error) {
	rows := collectGenRows(dual, a)

	var nonzero []genRow
	for _, r := range rows {
		if r.val.Sign() != 0 {
			nonzero = append(nonzero, r)
		}
	}

	next := conset.NewGenSys(dim)
	if len(nonzero) == 0 {
		for _, r := range rows {
			if err := next.AppendGen(r.g); err != nil {
				return nil, false, err
			}
		}
		return next, false, nil
	}

	for _, r := range rows {
		if r.val.Sign() == 0 {
			if err := next.AppendGen(r.g); err != nil {
				return nil, false, err
			}
		}
	}

	pivot := nonzero[0]
	for _, r := range nonzero[1:] {
		combined, err := combineEqualityGens(dim, pivot, r, strictSeen)
		if err != nil {
			return nil, false, err
		}
		if combined == nil {
			continue
		}
		if err := next.AppendGen(combined); err != nil {
			return nil, false, err
		}
	}

	// A point-less intermediate dual is not necessarily empty (see
	// finalize); only bail here when every anchor row (point or closure
	// point) is gone, which no later pending row can recover from.
	if next.NumSk() == 0 {
		return nil, true, nil
	}
	return next, false, nil
}

// combineEqualityGens returns the unique (up to sign) combination of
// pivot and r that kills a: val(pivot)*r - val(r)*pivot.
func combineEqualityGens(dim int, pivot, r genRow, strictSeen []*conset.Con) (*conset.Gen, error) {
	expr := linexpr.New(dim)
	expr.AddMulAssign(pivot.val, r.g.Expr())
	negRVal := r.val.Clone().Negate()
	expr.AddMulAssign(negRVal, pivot.g.Expr())

	div := rational.Zero()
	div.AddMul(pivot.val, r.g.Divisor())
	div.SubMul(r.val, pivot.g.Divisor())

	if pivot.isLine && r.isLine {
		if expr.IsZero() {
			return nil, nil
		}
		return conset.NewLine(expr), nil
	}
	return buildSkGen(expr, div, strictSeen)
}

func incorporateInequalityCon(dim int, dual *conset.GenSys, a *conset.Con, strictSeen []*conset.Con) (*conset.GenSys, bool, error) {
	var satLines, satSk []*conset.Gen
	var pos, neg []genRow

	for i := 0; i < dual.NumSing(); i++ {
		line := dual.Sing(i)
		val := conset.EvalValue(a, line)
		if val.Sign() == 0 {
			satLines = append(satLines, line)
			continue
		}
		// a.val != 0: the line is no longer free in both directions, so
		// split it into antipodal rays and let the ordinary pos/neg
		// machinery handle each half; a two-sided Line can never survive
		// into next once it disagrees with a.
		negExpr := line.Expr().Clone()
		negExpr.Negate()
		posRay := conset.NewRay(line.Expr())
		negRay := conset.NewRay(negExpr)
		if val.Sign() > 0 {
			pos = append(pos, genRow{g: posRay, val: val})
			neg = append(neg, genRow{g: negRay, val: val.Clone().Negate()})
		} else {
			neg = append(neg, genRow{g: posRay, val: val})
			pos = append(pos, genRow{g: negRay, val: val.Clone().Negate()})
		}
	}
	for i := 0; i < dual.NumSk(); i++ {
		g := dual.Sk(i)
		val := conset.EvalValue(a, g)
		switch {
		case val.Sign() == 0:
			satSk = append(satSk, g)
		case val.Sign() > 0:
			pos = append(pos, genRow{g: g, val: val})
		default:
			neg = append(neg, genRow{g: g, val: val})
		}
	}

	strict := a.Kind() == conset.Strict
	next := conset.NewGenSys(dim)
	for _, l := range satLines {
		if err := next.AppendSing(l); err != nil {
			return nil, false, err
		}
	}
	for _, g := range satSk {
		if strict {
			g = demoteToClosurePoint(g)
		}
		if err := next.AppendSk(g); err != nil {
			return nil, false, err
		}
	}
	for _, p := range pos {
		// p.g is either an ordinary sk row or one of the two rays a
		// disagreeing line was split into above; AppendGen routes each by
		// its kind.
		if err := next.AppendGen(p.g); err != nil {
			return nil, false, err
		}
	}
	for _, p := range pos {
		for _, n := range neg {
			combined, err := combineInequalityGens(dim, p, n, strictSeen)
			if err != nil {
				return nil, false, err
			}
			if combined == nil {
				continue
			}
			if strict {
				combined = demoteToClosurePoint(combined)
			}
			if err := next.AppendSk(combined); err != nil {
				return nil, false, err
			}
		}
	}

	// See the equality branch above and finalize: a point-less dual here
	// can still be legitimately non-empty mid-conversion.
	if next.NumSk() == 0 {
		return nil, true, nil
	}
	return next, false, nil
}

// combineInequalityGens returns |val(n)|*p + val(p)*n, the nonnegative
// combination that lies exactly on a's hyperplane (spec §4.3 step 3).
func combineInequalityGens(dim int, p, n genRow, strictSeen []*conset.Con) (*conset.Gen, error) {
	valAbsN := rational.Zero().Abs(n.val)
	valP := p.val

	expr := linexpr.New(dim)
	expr.AddMulAssign(valAbsN, p.g.Expr())
	expr.AddMulAssign(valP, n.g.Expr())

	div := rational.Zero()
	div.AddMul(valAbsN, p.g.Divisor())
	div.AddMul(valP, n.g.Divisor())

	return buildSkGen(expr, div, strictSeen)
}

func demoteToClosurePoint(g *conset.Gen) *conset.Gen {
	if g.Kind() != conset.Point {
		return g
	}
	cp, err := conset.NewClosurePoint(g.Expr(), g.Divisor())
	if err != nil {
		return g
	}
	return cp
}

// buildSkGen classifies a freshly combined (expr, div) homogeneous row
// into a Ray (div == 0) or Point/ClosurePoint (div != 0, sign-normalized
// to positive); a trivial all-zero combination returns (nil, nil) and is
// dropped by the caller.
//
// A combination of two rows that individually satisfy every strict
// constraint incorporated so far can still land exactly on one of those
// earlier strict boundaries — e.g. combining a closure point that sits on
// an old strict boundary with a ray pointing away from it can, depending
// on the weights, either escape that boundary or stay glued to it. Rather
// than propagate a point's own Kind blindly (a closure point combined
// with anything is not automatically still a closure point — see
// convert_test.go's (0, 4] case), the freshly built point is
// evaluated against every strict constraint seen so far and demoted only
// if it truly saturates one.
func buildSkGen(expr *linexpr.LinExpr, div *rational.Integer, strictSeen []*conset.Con) (*conset.Gen, error) {
	if expr.IsZero() && div.IsZero() {
		return nil, nil
	}
	if div.Sign() < 0 {
		expr = expr.Clone()
		expr.Negate()
		div = div.Clone()
		div.Negate()
	}
	if div.IsZero() {
		return conset.NewRay(expr), nil
	}
	pt, err := conset.NewPoint(expr, div)
	if err != nil {
		return nil, err
	}
	for _, s := range strictSeen {
		if conset.EvalValue(s, pt).Sign() == 0 {
			return conset.NewClosurePoint(expr, div)
		}
	}
	return pt, nil
}
