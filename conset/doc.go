// Package conset implements the tagged-sum Con and Gen row types (spec
// §3.2-3.3) and the ConSys/GenSys matrices that hold them, partitioned
// into sing/sk/ns sub-matrices (spec §3.4).
//
// ConSys and GenSys are deliberately "dumb": they store whatever rows
// they are given, normalizing each row on the way in (strip leading
// zeros implicitly via ReduceByGCD, sign-normalize, and reduce by gcd —
// spec §4.2), but never enforce minimization themselves. Minimization and
// the conversion between the two representations are the job of the
// convert and minimize packages, which take a ConSys/GenSys plus a
// saturation matrix and produce an updated, consistent pair (spec §4.3,
// §4.4). This split mirrors the teacher's own separation between a
// storage-only matrix type (lvlath/matrix) and the algorithms that
// operate on it (lvlath/matrix/ops).
package conset
