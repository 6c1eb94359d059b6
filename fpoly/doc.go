// Package fpoly implements the Cartesian-factored polyhedron of spec
// §4.6: a polyhedron represented as a product of independent factors on
// disjoint blocks of space dimensions, refactoring automatically
// whenever a constraint relates dimensions that currently live in
// different factors.
//
// Each factor is either a one-dimensional rational interval
// (interval-dim) or a full poly.Poly over the factor's block of
// dimensions (size ≥ 2). Merging promotes interval-dims to degenerate
// one-dimensional Poly values only transiently, while constructing the
// merged block's constraint system; a factor, once merged into a
// multi-dimension block, is never re-split back into independent
// interval-dims even if a later operation would make that precise — spec
// §4.6 requires merging on demand but does not require re-splitting, and
// re-splitting correctly (detecting that a block's polyhedron is in fact
// a product of independent lower-dimensional pieces) is a separate,
// harder analysis this package does not attempt.
package fpoly
