package conset

import (
	"sort"

	"github.com/polylib/ppl/bitset"
)

// GenSys is the generator-system dual of ConSys: sing holds lines, sk
// holds rays/points/closure points, and ns holds bitsets over sk indices
// denoting points implicit in combinations of closure points (spec §3.4).
type GenSys struct {
	dim  int
	sing []*Gen
	sk   []*Gen
	ns   []*bitset.IndexSet
}

// NewGenSys returns an empty generator system over dim dimensions.
func NewGenSys(dim int) *GenSys { return &GenSys{dim: dim} }

func (s *GenSys) Dim() int    { return s.dim }
func (s *GenSys) NumSing() int { return len(s.sing) }
func (s *GenSys) NumSk() int   { return len(s.sk) }
func (s *GenSys) NumNS() int   { return len(s.ns) }

func (s *GenSys) Sing(i int) *Gen             { return s.sing[i] }
func (s *GenSys) Sk(i int) *Gen               { return s.sk[i] }
func (s *GenSys) NS(i int) *bitset.IndexSet   { return s.ns[i] }

// AppendSing appends a line.
func (s *GenSys) AppendSing(g *Gen) error {
	if g.Dim() != s.dim {
		return ErrDimensionMismatch
	}
	s.sing = append(s.sing, g.Clone())
	return nil
}

// AppendSk appends a ray, point or closure point.
func (s *GenSys) AppendSk(g *Gen) error {
	if g.Dim() != s.dim {
		return ErrDimensionMismatch
	}
	s.sk = append(s.sk, g.Clone())
	return nil
}

// AppendGen classifies g by its Kind and appends it to sing or sk.
func (s *GenSys) AppendGen(g *Gen) error {
	if g.Kind() == Line {
		return s.AppendSing(g)
	}
	return s.AppendSk(g)
}

// AppendNS appends a non-skeleton row naming an implicit point.
func (s *GenSys) AppendNS(support *bitset.IndexSet) error {
	if support.Size() < 2 {
		return ErrSingletonNSRow
	}
	ok := true
	support.Each(func(i int) bool {
		if i < 0 || i >= len(s.sk) {
			ok = false
			return false
		}
		return true
	})
	if !ok {
		return ErrNSIndexOutOfRange
	}
	s.ns = append(s.ns, support.Clone())
	return nil
}

// RemoveSk removes sk row i, renumbering ns rows exactly as
// ConSys.RemoveSk does.
func (s *GenSys) RemoveSk(i int) error {
	if i < 0 || i >= len(s.sk) {
		return ErrRowIndexOutOfRange
	}
	s.sk = append(s.sk[:i], s.sk[i+1:]...)
	remapped := s.ns[:0]
	for _, row := range s.ns {
		if row.Test(i) {
			continue
		}
		shifted := bitset.New(0)
		row.Each(func(j int) bool {
			if j > i {
				shifted.Set(j - 1)
			} else {
				shifted.Set(j)
			}
			return true
		})
		remapped = append(remapped, shifted)
	}
	s.ns = remapped
	return nil
}

// ExtendDim grows the space dimension, padding every row.
func (s *GenSys) ExtendDim(newDim int) {
	if newDim <= s.dim {
		return
	}
	for _, g := range s.sing {
		g.expr.ExtendDim(newDim)
	}
	for _, g := range s.sk {
		g.expr.ExtendDim(newDim)
	}
	s.dim = newDim
}

// Clone returns a deep, independent copy.
func (s *GenSys) Clone() *GenSys {
	c := &GenSys{dim: s.dim}
	for _, r := range s.sing {
		c.sing = append(c.sing, r.Clone())
	}
	for _, r := range s.sk {
		c.sk = append(c.sk, r.Clone())
	}
	for _, r := range s.ns {
		c.ns = append(c.ns, r.Clone())
	}
	return c
}

// HasPoint reports whether any sk row is a Point — the spec's definition
// of non-emptiness (spec §3.6: "empty iff G has no row of type point").
func (s *GenSys) HasPoint() bool {
	for _, g := range s.sk {
		if g.Kind() == Point {
			return true
		}
	}
	return false
}

// SortCanonical reorders sing and sk rows lexicographically, remapping ns
// row supports to track the sk permutation (mirrors ConSys.SortCanonical).
func (s *GenSys) SortCanonical() {
	sort.SliceStable(s.sing, func(i, j int) bool {
		return s.sing[i].Expr().Compare(s.sing[j].Expr()) < 0
	})

	type idxGen struct {
		old int
		g   *Gen
	}
	tagged := make([]idxGen, len(s.sk))
	for i, g := range s.sk {
		tagged[i] = idxGen{old: i, g: g}
	}
	sort.SliceStable(tagged, func(i, j int) bool {
		return tagged[i].g.Expr().Compare(tagged[j].g.Expr()) < 0
	})
	oldToNew := make([]int, len(s.sk))
	newSk := make([]*Gen, len(s.sk))
	for newIdx, t := range tagged {
		oldToNew[t.old] = newIdx
		newSk[newIdx] = t.g
	}
	s.sk = newSk

	for _, row := range s.ns {
		remapped := bitset.New(0)
		row.Each(func(old int) bool {
			remapped.Set(oldToNew[old])
			return true
		})
		*row = *remapped
	}
}
