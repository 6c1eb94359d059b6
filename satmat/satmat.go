package satmat

import (
	"errors"

	"github.com/polylib/ppl/bitset"
	"github.com/polylib/ppl/conset"
)

// ErrRowIndexOutOfRange is returned by accessors given an out-of-range
// row index.
var ErrRowIndexOutOfRange = errors.New("satmat: row index out of range")

// SatMatrix holds the two transposed views of the saturation relation
// between an m-row constraint-like system and an n-row generator-like
// system. byCon[i] is the set of generator indices saturating constraint
// i; byGen[j] is the set of constraint indices saturating generator j.
// The two are always kept consistent by Set.
type SatMatrix struct {
	byCon []*bitset.Bits
	byGen []*bitset.Bits
}

// New returns an all-clear SatMatrix for an m x n relation.
func New(m, n int) *SatMatrix {
	s := &SatMatrix{
		byCon: make([]*bitset.Bits, m),
		byGen: make([]*bitset.Bits, n),
	}
	for i := range s.byCon {
		s.byCon[i] = bitset.New(n)
	}
	for j := range s.byGen {
		s.byGen[j] = bitset.New(m)
	}
	return s
}

// NumCons, NumGens return the current shape.
func (s *SatMatrix) NumCons() int { return len(s.byCon) }
func (s *SatMatrix) NumGens() int { return len(s.byGen) }

// Test reports whether constraint i saturates generator j.
func (s *SatMatrix) Test(i, j int) bool { return s.byCon[i].Test(j) }

// Set records (or clears) that constraint i saturates generator j in
// both transposed views.
func (s *SatMatrix) Set(i, j int, v bool) {
	if v {
		s.byCon[i].Set(j)
		s.byGen[j].Set(i)
	} else {
		s.byCon[i].Reset(j)
		s.byGen[j].Reset(i)
	}
}

// RowByCon returns the saturation row (over generator indices) for
// constraint i. Callers must not mutate it.
func (s *SatMatrix) RowByCon(i int) *bitset.Bits { return s.byCon[i] }

// RowByGen returns the saturation row (over constraint indices) for
// generator j. Callers must not mutate it.
func (s *SatMatrix) RowByGen(j int) *bitset.Bits { return s.byGen[j] }

// AppendConRow appends a fresh, all-clear row to the by-constraint view
// sized to the current generator count, and returns its index.
func (s *SatMatrix) AppendConRow() int {
	s.byCon = append(s.byCon, bitset.New(len(s.byGen)))
	return len(s.byCon) - 1
}

// AppendGenRow appends a fresh, all-clear row to the by-generator view
// sized to the current constraint count, and returns its index.
func (s *SatMatrix) AppendGenRow() int {
	s.byGen = append(s.byGen, bitset.New(len(s.byCon)))
	return len(s.byGen) - 1
}

// RemoveConRow deletes constraint row i from both views.
func (s *SatMatrix) RemoveConRow(i int) error {
	if i < 0 || i >= len(s.byCon) {
		return ErrRowIndexOutOfRange
	}
	s.byCon = append(s.byCon[:i], s.byCon[i+1:]...)
	for _, row := range s.byGen {
		shiftDown(row, i)
	}
	return nil
}

// RemoveGenRow deletes generator row j from both views.
func (s *SatMatrix) RemoveGenRow(j int) error {
	if j < 0 || j >= len(s.byGen) {
		return ErrRowIndexOutOfRange
	}
	s.byGen = append(s.byGen[:j], s.byGen[j+1:]...)
	for _, row := range s.byCon {
		shiftDown(row, j)
	}
	return nil
}

// shiftDown clears bit i and shifts every bit above i down by one,
// matching the renumbering a row deletion imposes on any bitset that
// refers to the deleted dimension's index space.
func shiftDown(row *bitset.Bits, i int) {
	shifted := bitset.New(0)
	row.Each(func(idx int) bool {
		switch {
		case idx < i:
			shifted.Set(idx)
		case idx > i:
			shifted.Set(idx - 1)
		}
		return true
	})
	*row = *shifted
}

// NSPatternByCon returns the implicit saturation pattern (over generator
// indices) of a constraint-system ns row whose support names sk indices:
// the intersection of the saturation rows of those sk constraints (spec
// §3.5). singCount is the number of sing rows preceding the sk partition
// in this SatMatrix's row numbering.
func (s *SatMatrix) NSPatternByCon(singCount int, support *bitset.Bits) *bitset.Bits {
	return s.combine(s.byCon, singCount, support)
}

// NSPatternByGen is the generator-system dual of NSPatternByCon.
func (s *SatMatrix) NSPatternByGen(singCount int, support *bitset.Bits) *bitset.Bits {
	return s.combine(s.byGen, singCount, support)
}

func (s *SatMatrix) combine(rows []*bitset.Bits, singCount int, support *bitset.Bits) *bitset.Bits {
	var pattern *bitset.Bits
	support.Each(func(skIdx int) bool {
		row := rows[singCount+skIdx]
		if pattern == nil {
			pattern = row.Clone()
		} else {
			pattern.AndAssign(row)
		}
		return true
	})
	if pattern == nil {
		pattern = bitset.New(0)
	}
	return pattern
}

// Clone returns an independent deep copy.
func (s *SatMatrix) Clone() *SatMatrix {
	c := &SatMatrix{
		byCon: make([]*bitset.Bits, len(s.byCon)),
		byGen: make([]*bitset.Bits, len(s.byGen)),
	}
	for i, r := range s.byCon {
		c.byCon[i] = r.Clone()
	}
	for j, r := range s.byGen {
		c.byGen[j] = r.Clone()
	}
	return c
}

// VerifyTranspose reports whether byCon and byGen genuinely describe
// transposed relations (spec §8.1 universal invariant: "sat_c and sat_g
// are transposes"). Intended for tests and debug assertions, not hot
// paths.
func (s *SatMatrix) VerifyTranspose() bool {
	for i, row := range s.byCon {
		ok := true
		row.Each(func(j int) bool {
			if j >= len(s.byGen) || !s.byGen[j].Test(i) {
				ok = false
				return false
			}
			return true
		})
		if !ok {
			return false
		}
	}
	for j, row := range s.byGen {
		ok := true
		row.Each(func(i int) bool {
			if i >= len(s.byCon) || !s.byCon[i].Test(j) {
				ok = false
				return false
			}
			return true
		})
		if !ok {
			return false
		}
	}
	return true
}

// ComputeConVsGen evaluates cons against gens from scratch and returns
// the resulting SatMatrix: entry (i, j) is set iff cons row i's linear
// form vanishes on gens row j's point/direction, following spec §3.5's
// definition (strict constraints use the same zero test on the
// underlying linear form as non-strict ones — strictness only affects
// whether P itself contains the boundary, not whether a given generator
// saturates the row).
func ComputeConVsGen(cons *conset.ConSys, gens *conset.GenSys) (*SatMatrix, error) {
	allCons := allRows(cons)
	allGens := allGenRows(gens)
	sm := New(len(allCons), len(allGens))
	for i, c := range allCons {
		for j, g := range allGens {
			if conset.EvalSign(c, g) == 0 {
				sm.Set(i, j, true)
			}
		}
	}
	return sm, nil
}

func allRows(cs *conset.ConSys) []*conset.Con {
	out := make([]*conset.Con, 0, cs.NumSing()+cs.NumSk())
	for i := 0; i < cs.NumSing(); i++ {
		out = append(out, cs.Sing(i))
	}
	for i := 0; i < cs.NumSk(); i++ {
		out = append(out, cs.Sk(i))
	}
	return out
}

func allGenRows(gs *conset.GenSys) []*conset.Gen {
	out := make([]*conset.Gen, 0, gs.NumSing()+gs.NumSk())
	for i := 0; i < gs.NumSing(); i++ {
		out = append(out, gs.Sing(i))
	}
	for i := 0; i < gs.NumSk(); i++ {
		out = append(out, gs.Sk(i))
	}
	return out
}

