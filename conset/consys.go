package conset

import (
	"sort"

	"github.com/polylib/ppl/bitset"
)

// ConSys is an ordered constraint matrix partitioned into sing
// (equalities), sk (skeleton inequalities) and ns (non-skeleton bitset
// rows over sk indices), per spec §3.4. It stores whatever rows it is
// given, normalizing each on the way in; it does not enforce
// minimization (that is convert/minimize's job).
type ConSys struct {
	dim  int
	sing []*Con
	sk   []*Con
	ns   []*bitset.IndexSet
}

// NewConSys returns an empty constraint system over dim dimensions.
func NewConSys(dim int) *ConSys {
	return &ConSys{dim: dim}
}

// Dim returns the space dimension.
func (s *ConSys) Dim() int { return s.dim }

// NumSing, NumSk, NumNS return the row counts of each partition.
func (s *ConSys) NumSing() int { return len(s.sing) }
func (s *ConSys) NumSk() int   { return len(s.sk) }
func (s *ConSys) NumNS() int   { return len(s.ns) }

// Sing returns the i-th sing (equality) row.
func (s *ConSys) Sing(i int) *Con { return s.sing[i] }

// Sk returns the i-th sk row.
func (s *ConSys) Sk(i int) *Con { return s.sk[i] }

// NS returns the i-th ns row (a bitset over sk indices).
func (s *ConSys) NS(i int) *bitset.IndexSet { return s.ns[i] }

// AppendSing appends an equality row. It never extends the space
// dimension: it returns ErrDimensionMismatch whenever c.Dim() differs
// from s.Dim(), so callers ExtendDim first.
func (s *ConSys) AppendSing(c *Con) error {
	if c.Dim() != s.dim {
		return ErrDimensionMismatch
	}
	s.sing = append(s.sing, c.Clone())
	return nil
}

// AppendSk appends a skeleton (inequality) row.
func (s *ConSys) AppendSk(c *Con) error {
	if c.Dim() != s.dim {
		return ErrDimensionMismatch
	}
	s.sk = append(s.sk, c.Clone())
	return nil
}

// AppendCon classifies c by its Kind and appends it to sing or sk.
func (s *ConSys) AppendCon(c *Con) error {
	if c.Kind() == Equality {
		return s.AppendSing(c)
	}
	return s.AppendSk(c)
}

// AppendNS appends a non-skeleton row. support must name at least two
// distinct sk indices, all within range (spec §3.4).
func (s *ConSys) AppendNS(support *bitset.IndexSet) error {
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

// RemoveSk removes sk row i, shifting later rows down by one and fixing
// up every ns row's support to track the shift (renumbering references
// above i down by one, and dropping any ns row that referenced i itself —
// callers that need to preserve such an ns row must replace it with its
// post-removal support before calling RemoveSk).
func (s *ConSys) RemoveSk(i int) error {
	if i < 0 || i >= len(s.sk) {
		return ErrRowIndexOutOfRange
	}
	s.sk = append(s.sk[:i], s.sk[i+1:]...)
	remapped := s.ns[:0]
	for _, row := range s.ns {
		if row.Test(i) {
			continue // row becomes degenerate (references a dropped sk row); drop it
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
func (s *ConSys) ExtendDim(newDim int) {
	if newDim <= s.dim {
		return
	}
	for _, c := range s.sing {
		c.expr.ExtendDim(newDim)
	}
	for _, c := range s.sk {
		c.expr.ExtendDim(newDim)
	}
	s.dim = newDim
}

// Clone returns a deep, independent copy.
func (s *ConSys) Clone() *ConSys {
	c := &ConSys{dim: s.dim}
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

// SortCanonical reorders sing and sk rows lexicographically on their
// coefficients (spec §3.4 rule 4), and remaps every ns row's support to
// track the sk permutation.
func (s *ConSys) SortCanonical() {
	sort.SliceStable(s.sing, func(i, j int) bool {
		return s.sing[i].Expr().Compare(s.sing[j].Expr()) < 0
	})

	type idxCon struct {
		old int
		c   *Con
	}
	tagged := make([]idxCon, len(s.sk))
	for i, c := range s.sk {
		tagged[i] = idxCon{old: i, c: c}
	}
	sort.SliceStable(tagged, func(i, j int) bool {
		return tagged[i].c.Expr().Compare(tagged[j].c.Expr()) < 0
	})
	oldToNew := make([]int, len(s.sk))
	newSk := make([]*Con, len(s.sk))
	for newIdx, t := range tagged {
		oldToNew[t.old] = newIdx
		newSk[newIdx] = t.c
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
