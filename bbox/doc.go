// Package bbox implements the axis-aligned bounding box used as a fast,
// optimistic pre-filter for containment and disjointness checks (spec
// §4.7): for each dimension a rational interval, closed or open at
// either end independently, plus a precomputed pseudo-volume indicator.
//
// BBox never performs the exact polyhedral test itself — Contains and
// IsDisjointFrom are exact at the box level, but as a pre-filter
// (BBox.BoxedContains) a false containment result is conclusive, while a
// true one only licenses the caller to go on to the exact geometric
// test; the pseudo-volume is a float64 heuristic by design, the one place
// this module crosses out of exact rational arithmetic (spec §4.7, §1).
package bbox
