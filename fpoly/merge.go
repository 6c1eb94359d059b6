package fpoly

import (
	"sort"

	"github.com/polylib/ppl/bbox"
	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/linexpr"
	"github.com/polylib/ppl/poly"
	"github.com/polylib/ppl/rational"
	"github.com/polylib/ppl/topology"
)

// touchedDims returns the sorted global dimension indices with a nonzero
// coefficient in e.
func touchedDims(e *linexpr.LinExpr) []int {
	var dims []int
	for i := 0; i < e.Dim(); i++ {
		if !e.Coeff(linexpr.Var(i)).IsZero() {
			dims = append(dims, i)
		}
	}
	return dims
}

// localIndexOf returns the position of global dim d within the sorted
// dims slice, or -1.
func localIndexOf(dims []int, d int) int {
	lo, hi := 0, len(dims)
	for lo < hi {
		mid := (lo + hi) / 2
		if dims[mid] < d {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(dims) && dims[lo] == d {
		return lo
	}
	return -1
}

// ownerIndex returns the index into fp.factors owning global dim d, or
// -1 (every dim in [0,fp.dim) is owned by exactly one factor).
func (fp *FPoly) ownerIndex(d int) int {
	for i, f := range fp.factors {
		if localIndexOf(f.dims, d) >= 0 {
			return i
		}
	}
	return -1
}

// mergeFactorsTouching collapses every factor owning a dimension in
// touched into a single new factor (removing the originals), and
// returns the new factor's index. If touched dims are all owned by one
// factor already, no merge happens and that factor's index is returned
// unchanged.
func (fp *FPoly) mergeFactorsTouching(touched []int) (int, error) {
	ownerSet := map[int]bool{}
	for _, d := range touched {
		ownerSet[fp.ownerIndex(d)] = true
	}
	owners := make([]int, 0, len(ownerSet))
	for o := range ownerSet {
		owners = append(owners, o)
	}
	sort.Ints(owners)
	if len(owners) == 1 {
		return owners[0], nil
	}

	var unionDims []int
	for _, o := range owners {
		unionDims = append(unionDims, fp.factors[o].dims...)
	}
	sort.Ints(unionDims)

	merged, err := buildMergedFactor(fp.factors, owners, unionDims, fp.topo)
	if err != nil {
		return 0, err
	}

	ownerMark := make(map[int]bool, len(owners))
	for _, o := range owners {
		ownerMark[o] = true
	}
	newFactors := make([]*factor, 0, len(fp.factors)-len(owners)+1)
	inserted := false
	for i, f := range fp.factors {
		if ownerMark[i] {
			if !inserted {
				newFactors = append(newFactors, merged)
				inserted = true
			}
			continue
		}
		newFactors = append(newFactors, f)
	}
	fp.factors = newFactors
	return fp.ownerIndex(unionDims[0]), nil
}

// buildMergedFactor constructs a single Poly-backed factor over
// unionDims by translating every named owner factor's existing rows
// (interval bounds or constraint rows) into the new local numbering.
func buildMergedFactor(factors []*factor, owners []int, unionDims []int, topo topology.Topol) (*factor, error) {
	p := poly.NewUniverse(len(unionDims), topo)
	for _, o := range owners {
		f := factors[o]
		if f.isInterval() {
			newLocal := localIndexOf(unionDims, f.dims[0])
			for _, c := range itvToCons(f.itv, newLocal, len(unionDims)) {
				if err := p.AddCon(c); err != nil {
					return nil, err
				}
			}
			continue
		}
		cons, err := f.p.Constraints()
		if err != nil {
			return nil, err
		}
		rows := make([]*conset.Con, 0, cons.NumSing()+cons.NumSk())
		for i := 0; i < cons.NumSing(); i++ {
			rows = append(rows, cons.Sing(i))
		}
		for i := 0; i < cons.NumSk(); i++ {
			rows = append(rows, cons.Sk(i))
		}
		for _, row := range rows {
			translated := remapCon(row, f.dims, unionDims)
			if err := p.AddCon(translated); err != nil {
				return nil, err
			}
		}
	}
	return &factor{dims: unionDims, p: p}, nil
}

// remapCon translates a constraint local to oldDims into one local to
// newDims (oldDims ⊆ newDims).
func remapCon(c *conset.Con, oldDims, newDims []int) *conset.Con {
	e := linexpr.New(len(newDims))
	for oldLocal, gd := range oldDims {
		coeff := c.Expr().Coeff(linexpr.Var(oldLocal))
		if coeff.IsZero() {
			continue
		}
		e.SetCoeff(linexpr.Var(localIndexOf(newDims, gd)), coeff)
	}
	e.SetInhomo(c.Expr().Inhomo())
	return conset.NewCon(e, c.Kind())
}

// itvToCons renders a one-dimensional interval as 0..2 constraints over
// a space of width total, with the interval's dimension placed at
// local.
func itvToCons(it *bbox.Itv, local, total int) []*conset.Con {
	var rows []*conset.Con
	if it.IsEmpty() {
		e := linexpr.New(total)
		e.SetInhomo(rational.NewInt(-1))
		return []*conset.Con{conset.NewCon(e, conset.NonStrict)}
	}
	if it.Lo() != nil {
		num, den := it.Lo().Num(), it.Lo().Den()
		// lo = num/den, den > 0: den*x - num >= 0 (or > 0 if open).
		e := linexpr.New(total)
		e.SetCoeff(linexpr.Var(local), den)
		e.SetInhomo(num.Negate())
		kind := conset.NonStrict
		if !it.LoClosed() {
			kind = conset.Strict
		}
		rows = append(rows, conset.NewCon(e, kind))
	}
	if it.Hi() != nil {
		num, den := it.Hi().Num(), it.Hi().Den()
		// hi = num/den, den > 0: num - den*x >= 0 (or > 0 if open).
		e := linexpr.New(total)
		e.SetCoeff(linexpr.Var(local), den.Negate())
		e.SetInhomo(num)
		kind := conset.NonStrict
		if !it.HiClosed() {
			kind = conset.Strict
		}
		rows = append(rows, conset.NewCon(e, kind))
	}
	return rows
}

// factorConsGlobal renders a factor's defining rows in the full
// dim-dimensional global space.
func factorConsGlobal(f *factor, dim int) ([]*conset.Con, error) {
	if f.isInterval() {
		return itvToCons(f.itv, f.dims[0], dim), nil
	}
	cons, err := f.p.Constraints()
	if err != nil {
		return nil, err
	}
	var rows []*conset.Con
	for i := 0; i < cons.NumSing(); i++ {
		rows = append(rows, remapCon(cons.Sing(i), f.dims, identityDims(dim)))
	}
	for i := 0; i < cons.NumSk(); i++ {
		rows = append(rows, remapCon(cons.Sk(i), f.dims, identityDims(dim)))
	}
	return rows, nil
}

func identityDims(dim int) []int {
	dims := make([]int, dim)
	for i := range dims {
		dims[i] = i
	}
	return dims
}

// globalConToLocal restricts a constraint expressed over the full
// fp.dim-dimensional space to a factor's own local numbering; c's
// nonzero coefficients outside dims are assumed absent by the caller
// (mergeFactorsTouching has already folded every touched factor into
// one).
func globalConToLocal(c *conset.Con, dims []int) *conset.Con {
	e := linexpr.New(len(dims))
	for i, gd := range dims {
		coeff := c.Expr().Coeff(linexpr.Var(gd))
		if !coeff.IsZero() {
			e.SetCoeff(linexpr.Var(i), coeff)
		}
	}
	e.SetInhomo(c.Expr().Inhomo())
	return conset.NewCon(e, c.Kind())
}

// conToItv renders a constraint local to a one-dimensional factor as the
// half-line (or point, for an equality) it cuts out of the real line:
// coeff*x + inhomo (relop) 0 becomes x (relop') -inhomo/coeff, flipping
// the relation when coeff is negative.
func conToItv(c *conset.Con) (*bbox.Itv, error) {
	coeff := c.Expr().Coeff(linexpr.Var(0))
	inhomo := c.Expr().Inhomo()
	if coeff.IsZero() {
		if c.IsInconsistent() {
			return bbox.EmptyItv(), nil
		}
		return bbox.Universe(), nil
	}
	t, err := rational.NewRational(inhomo.Clone().Negate(), coeff.Clone())
	if err != nil {
		return nil, err
	}
	if c.Kind() == conset.Equality {
		return bbox.Bounded(t, true, t, true), nil
	}
	closed := c.Kind() == conset.NonStrict
	if coeff.Sign() > 0 {
		return bbox.Bounded(t, closed, nil, true), nil
	}
	return bbox.Bounded(nil, true, t, closed), nil
}
