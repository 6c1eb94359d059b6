// Package bitset implements an unbounded-length, dense bit vector, Bits,
// used throughout this module both as a combinatorial row (the support of
// a non-skeleton row, spec §3.4) and as a saturation row (spec §3.5).
//
// Bits grows on demand: setting a bit beyond the current capacity extends
// the underlying word slice. Every method that mutates is also exported in
// a non-mutating form where a fresh result is useful (Or/And/Diff return
// new values; OrAssign/AndAssign/DiffAssign mutate in place), following the
// teacher's pattern of pairing a pure helper with an *_Assign in-place
// variant (see poly's own *_Assign operations, spec §4.5).
package bitset

// IndexSet is the spec's name for a Bits value used as a combinatorial
// support set (the "S" in an ns row, spec §3.4). It is the same underlying
// representation: the spec's leaf component #3 is one type serving two
// roles, not two types.
type IndexSet = Bits
