package pset

import (
	"math"

	"github.com/polylib/ppl/conset"
	"github.com/polylib/ppl/poly"
	"github.com/polylib/ppl/topology"
)

// AddDisjunct appends p then omega-reduces (spec §4.8 add_disjunct). An
// empty p is dropped silently: the empty set contributes nothing to a
// union.
func (ps *PSet) AddDisjunct(p *poly.Poly) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p.SpaceDimension() != ps.dim {
		return ErrDimensionMismatch
	}
	if p.Topology() != ps.topo {
		return ErrTopologyMismatch
	}
	empty, err := p.IsEmpty()
	if err != nil {
		return err
	}
	if empty {
		return nil
	}
	ds, err := omegaReduce(append(ps.disjuncts, p.Clone()))
	if err != nil {
		return err
	}
	ps.disjuncts = ds
	return nil
}

// Reduce applies omega-reduction as a standalone, idempotent operation
// (spec §4.8's contract, exposed here as its own named method rather
// than only running implicitly inside AddDisjunct/JoinAssign/etc).
func (ps *PSet) Reduce() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	reduced, err := omegaReduce(ps.disjuncts)
	if err != nil {
		return err
	}
	ps.disjuncts = reduced
	return nil
}

// Concatenate returns the list concatenation of ps and other without any
// omega-reduction pass — the same disjunct union JoinAssign computes,
// minus the redundancy cleanup, exposed separately so bulk ingestion can
// defer a single reduction to the end (spec's supplemented feature set).
func (ps *PSet) Concatenate(other *PSet) (*PSet, error) {
	unlock := lockPair(ps, other)
	defer unlock()
	if ps.dim != other.dim {
		return nil, ErrDimensionMismatch
	}
	if ps.topo != other.topo {
		return nil, ErrTopologyMismatch
	}
	result := &PSet{dim: ps.dim, topo: ps.topo}
	result.disjuncts = make([]*poly.Poly, 0, len(ps.disjuncts)+len(other.disjuncts))
	for _, d := range ps.disjuncts {
		result.disjuncts = append(result.disjuncts, d.Clone())
	}
	for _, d := range other.disjuncts {
		result.disjuncts = append(result.disjuncts, d.Clone())
	}
	return result, nil
}

// IntersectionAssign replaces ps with { a ∩ b : a ∈ ps, b ∈ other },
// omega-reduced (spec §4.8 intersection_assign).
func (ps *PSet) IntersectionAssign(other *PSet) error {
	unlock := lockPair(ps, other)
	defer unlock()
	if ps.dim != other.dim {
		return ErrDimensionMismatch
	}
	if ps.topo != other.topo {
		return ErrTopologyMismatch
	}
	var result []*poly.Poly
	for _, a := range ps.disjuncts {
		for _, b := range other.disjuncts {
			c := a.Clone()
			if err := c.IntersectionAssign(b); err != nil {
				return err
			}
			empty, err := c.IsEmpty()
			if err != nil {
				return err
			}
			if !empty {
				result = append(result, c)
			}
		}
	}
	reduced, err := omegaReduce(result)
	if err != nil {
		return err
	}
	ps.disjuncts = reduced
	return nil
}

// JoinAssign replaces ps with the list concatenation of ps and other,
// omega-reduced — the union, without taking any convex hull (spec §4.8
// join_assign).
func (ps *PSet) JoinAssign(other *PSet) error {
	unlock := lockPair(ps, other)
	defer unlock()
	if ps.dim != other.dim {
		return ErrDimensionMismatch
	}
	if ps.topo != other.topo {
		return ErrTopologyMismatch
	}
	combined := make([]*poly.Poly, 0, len(ps.disjuncts)+len(other.disjuncts))
	for _, d := range ps.disjuncts {
		combined = append(combined, d.Clone())
	}
	for _, d := range other.disjuncts {
		combined = append(combined, d.Clone())
	}
	reduced, err := omegaReduce(combined)
	if err != nil {
		return err
	}
	ps.disjuncts = reduced
	return nil
}

// DifferenceAssign replaces ps with ps \ other (spec §4.8
// difference_assign): for each disjunct of other, every current
// self-disjunct a is replaced by the disjuncts of a \ b.
func (ps *PSet) DifferenceAssign(other *PSet) error {
	unlock := lockPair(ps, other)
	defer unlock()
	if ps.dim != other.dim {
		return ErrDimensionMismatch
	}
	if ps.topo != other.topo {
		return ErrTopologyMismatch
	}
	current := ps.disjuncts
	for _, b := range other.disjuncts {
		var next []*poly.Poly
		for _, a := range current {
			pieces, err := polyMinus(a, b)
			if err != nil {
				return err
			}
			next = append(next, pieces...)
		}
		current = next
	}
	reduced, err := omegaReduce(current)
	if err != nil {
		return err
	}
	ps.disjuncts = reduced
	return nil
}

// polyMinus computes a \ b exactly as a list of convex disjuncts,
// following spec §4.5's "accumulate self ∩ ¬c_i" over b's constraints:
// since b equals the intersection of its rows, ¬b is the union of each
// row's complement, and a \ b = a ∩ ¬b distributes into one piece per
// row. An equality row is split into its two inequality halves first so
// that each half's complement stays a single half-space.
func polyMinus(a, b *poly.Poly) ([]*poly.Poly, error) {
	empty, err := b.IsEmpty()
	if err != nil {
		return nil, err
	}
	if empty {
		return []*poly.Poly{a.Clone()}, nil
	}
	cons, err := b.Constraints()
	if err != nil {
		return nil, err
	}
	var rows []*conset.Con
	for i := 0; i < cons.NumSing(); i++ {
		row := cons.Sing(i)
		rows = append(rows, conset.NewCon(row.Expr(), conset.NonStrict))
		neg := row.Expr().Clone()
		neg.Negate()
		rows = append(rows, conset.NewCon(neg, conset.NonStrict))
	}
	for i := 0; i < cons.NumSk(); i++ {
		rows = append(rows, cons.Sk(i))
	}
	var pieces []*poly.Poly
	for _, row := range rows {
		piece := a.Clone()
		if err := piece.AddCon(poly.ComplementCon(row)); err != nil {
			return nil, err
		}
		pieceEmpty, err := piece.IsEmpty()
		if err != nil {
			return nil, err
		}
		if !pieceEmpty {
			pieces = append(pieces, piece)
		}
	}
	return pieces, nil
}

// Collapse coalesces disjuncts pairwise by convex hull, always merging
// the pair whose hull grows the least in bounding-box volume, until at
// most k remain (spec §4.8 collapse(k)).
func (ps *PSet) Collapse(k int) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for len(ps.disjuncts) > k && len(ps.disjuncts) > 1 {
		bestI, bestJ := -1, -1
		var bestHull *poly.Poly
		bestGrowth := math.Inf(1)
		for i := 0; i < len(ps.disjuncts); i++ {
			boxI, err := ps.disjuncts[i].GetBoundingBox()
			if err != nil {
				return err
			}
			for j := i + 1; j < len(ps.disjuncts); j++ {
				boxJ, err := ps.disjuncts[j].GetBoundingBox()
				if err != nil {
					return err
				}
				hull := ps.disjuncts[i].Clone()
				if err := hull.PolyHullAssign(ps.disjuncts[j]); err != nil {
					return err
				}
				hullBox, err := hull.GetBoundingBox()
				if err != nil {
					return err
				}
				growth := hullBox.Volume() - (boxI.Volume() + boxJ.Volume())
				if growth < bestGrowth {
					bestGrowth = growth
					bestI, bestJ = i, j
					bestHull = hull
				}
			}
		}
		next := make([]*poly.Poly, 0, len(ps.disjuncts)-1)
		for idx, d := range ps.disjuncts {
			if idx == bestI || idx == bestJ {
				continue
			}
			next = append(next, d)
		}
		next = append(next, bestHull)
		ps.disjuncts = next
	}
	reduced, err := omegaReduce(ps.disjuncts)
	if err != nil {
		return err
	}
	ps.disjuncts = reduced
	return nil
}

// WideningAssign widens ps against prev disjunct-wise wherever a
// containing match exists in prev, falling back to widening the convex
// hulls of both sides otherwise (spec §4.8 widening_assign, the
// multiset-ordered certificate of spec §4.5.2's closing paragraph).
func (ps *PSet) WideningAssign(prev *PSet, impl topology.WidenImpl, wspec topology.WidenSpec) error {
	unlock := lockPair(ps, prev)
	defer unlock()
	if ps.dim != prev.dim {
		return ErrDimensionMismatch
	}
	if ps.topo != prev.topo {
		return ErrTopologyMismatch
	}
	var widened []*poly.Poly
	allMatched := true
	for _, a := range ps.disjuncts {
		var match *poly.Poly
		for _, q := range prev.disjuncts {
			contained, err := containsPoly(a, q)
			if err != nil {
				return err
			}
			if contained {
				match = q
				break
			}
		}
		if match == nil {
			allMatched = false
			break
		}
		w := a.Clone()
		if err := w.WideningAssign(match, impl, wspec); err != nil {
			return err
		}
		widened = append(widened, w)
	}
	if allMatched {
		ps.disjuncts = widened
		return nil
	}
	selfHull, err := ps.hullAllLocked()
	if err != nil {
		return err
	}
	prevHull, err := prev.hullAllLocked()
	if err != nil {
		return err
	}
	if err := selfHull.WideningAssign(prevHull, impl, wspec); err != nil {
		return err
	}
	ps.disjuncts = []*poly.Poly{selfHull}
	return nil
}
