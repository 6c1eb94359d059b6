package convert

import (
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
)

// GensToCons converts a generator system into its constraint-system dual
// (spec §4.3). A generator system with no point row represents the empty
// polyhedron (spec §3.6) and converts directly to the canonical
// inconsistent constraint.
//
// Rather than running a second, independently-derived pivot loop, this
// reduces to ConsToGens by the standard homogenization/polarity
// construction: a point (x, den) and a ray/line direction x both embed
// as the coefficient vector (x, den) one dimension up, with den implicit
// 0 for directions; under this embedding a generator system's dual
// constraints are exactly the generators of the embedded system's polar
// cone. buildAuxCons performs the embedding, ConsToGens computes the
// polar cone's generators, and truncateAuxGens drops the extra
// coordinate back into an ordinary dim-dimensional constraint. A
// violated equality cannot simply be "split" into two directionless
// halves the way a line can (it carries a position, not just a
// direction), which is what makes a second from-scratch pivot loop on
// the Con/Gen pair error-prone; the homogenization sidesteps that by
// giving every row a direction in the lifted space.
func GensToCons(topo topology.Topol, gens *conset.GenSys) (*conset.ConSys, error) {
	dim := gens.Dim()
	if !gens.HasPoint() {
		return inconsistentConSys(dim), nil
	}
	aux := buildAuxCons(gens)
	auxDual, err := ConsToGens(topo, aux)
	if err != nil {
		return nil, err
	}
	return truncateAuxGens(dim, auxDual), nil
}

func inconsistentConSys(dim int) *conset.ConSys {
	cs := conset.NewConSys(dim)
	expr := linexpr.New(dim)
	expr.SetInhomo(rational.NewInt(-1))
	_ = cs.AppendSk(conset.NewCon(expr, conset.NonStrict))
	return cs
}

// buildAuxCons lifts gens (dim dimensions) into a (dim+1)-dimensional
// constraint system: row i's coefficients are generator i's coordinates
// followed by its divisor (0 for Line/Ray). A Line becomes an Equality
// (it pins the lifted cone in both directions); a ClosurePoint becomes
// Strict (spec §4.3 NNC extension's closure-point-forces-strict rule,
// applied here at construction instead of during pivoting); everything
// else becomes NonStrict.
func buildAuxCons(gens *conset.GenSys) *conset.ConSys {
	dim := gens.Dim()
	aux := conset.NewConSys(dim + 1)
	addRow := func(g *conset.Gen) {
		coords := g.Coords()
		expr := linexpr.New(dim + 1)
		for i, c := range coords {
			expr.SetCoeff(linexpr.Var(i), c)
		}
		expr.SetCoeff(linexpr.Var(dim), g.Divisor())
		var kind conset.ConKind
		switch g.Kind() {
		case conset.Line:
			kind = conset.Equality
		case conset.ClosurePoint:
			kind = conset.Strict
		default:
			kind = conset.NonStrict
		}
		_ = aux.AppendCon(conset.NewCon(expr, kind))
	}
	for i := 0; i < gens.NumSing(); i++ {
		addRow(gens.Sing(i))
	}
	for i := 0; i < gens.NumSk(); i++ {
		addRow(gens.Sk(i))
	}
	return aux
}

// truncateAuxGens is buildAuxCons's inverse on the result side: each
// (dim+1)-dimensional generator of the polar cone becomes a
// dim-dimensional constraint, with its last coordinate read back out as
// the inhomogeneous term. Line maps back to Equality, ClosurePoint to
// Strict, everything else to NonStrict.
func truncateAuxGens(dim int, auxDual *conset.GenSys) *conset.ConSys {
	out := conset.NewConSys(dim)
	addRow := func(g *conset.Gen) {
		coords := g.Coords()
		expr := linexpr.New(dim)
		for i := 0; i < dim; i++ {
			expr.SetCoeff(linexpr.Var(i), coords[i])
		}
		expr.SetInhomo(coords[dim])
		var kind conset.ConKind
		switch g.Kind() {
		case conset.Line:
			kind = conset.Equality
		case conset.ClosurePoint:
			kind = conset.Strict
		default:
			kind = conset.NonStrict
		}
		con := conset.NewCon(expr, kind)
		if con.IsInconsistent() {
			return
		}
		_ = out.AppendCon(con)
	}
	for i := 0; i < auxDual.NumSing(); i++ {
		addRow(auxDual.Sing(i))
	}
	for i := 0; i < auxDual.NumSk(); i++ {
		addRow(auxDual.Sk(i))
	}
	return out
}
