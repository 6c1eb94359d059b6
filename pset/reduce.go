package pset

import (
	"github.com/polylib/ppl/poly"
)

// containsPoly reports whether every point of b also lies in a: a ⊇ b,
// tested by checking that b's generators saturate-or-satisfy each of
// a's minimized constraints through the poly-con relation lattice of
// spec §6.2 (the same test poly.Poly.Contains makes).
func containsPoly(a, b *poly.Poly) (bool, error) {
	cons, err := a.Constraints()
	if err != nil {
		return false, err
	}
	for i := 0; i < cons.NumSing(); i++ {
		rel, err := b.Relation(cons.Sing(i))
		if err != nil {
			return false, err
		}
		if !rel.Has(poly.RelIsIncluded) {
			return false, nil
		}
	}
	for i := 0; i < cons.NumSk(); i++ {
		rel, err := b.Relation(cons.Sk(i))
		if err != nil {
			return false, err
		}
		if !rel.Has(poly.RelIsIncluded) {
			return false, nil
		}
	}
	return true, nil
}

// omegaReduce drops every disjunct contained in another, restoring the
// "no disjunct is contained in another" invariant (spec §4.8) after an
// operation may have produced redundant ones. Equal disjuncts collapse
// to the lower-indexed survivor.
func omegaReduce(ds []*poly.Poly) ([]*poly.Poly, error) {
	drop := make([]bool, len(ds))
	for i := 0; i < len(ds); i++ {
		if drop[i] {
			continue
		}
		for j := i + 1; j < len(ds); j++ {
			if drop[j] {
				continue
			}
			iInJ, err := containsPoly(ds[j], ds[i])
			if err != nil {
				return nil, err
			}
			if iInJ {
				drop[i] = true
				break
			}
			jInI, err := containsPoly(ds[i], ds[j])
			if err != nil {
				return nil, err
			}
			if jInI {
				drop[j] = true
			}
		}
	}
	out := make([]*poly.Poly, 0, len(ds))
	for i, d := range ds {
		if !drop[i] {
			out = append(out, d)
		}
	}
	return out, nil
}
