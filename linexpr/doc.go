// Package linexpr implements Var (a space-dimension index) and LinExpr, the
// sparse-in-spirit but densely-stored vector of integer coefficients plus
// inhomogeneous term that every Con and Gen is built from (spec §3.1,
// §4.1 part 2).
//
// LinExpr stores coefficients densely (a []*rational.Integer indexed by
// dimension) because the conversion core reads and writes essentially
// every coefficient of every row during a pivot step; a sparse map would
// trade a constant-factor memory win for pointer-chasing in the one loop
// that dominates this library's running time. Rows that are genuinely
// sparse (the overwhelming majority in practice) still cost little: the
// zero Integer is shared where possible is not attempted — correctness
// over micro-optimization, matching the teacher's own dense-slice matrix
// representation (lvlath/matrix).
package linexpr

// Var identifies a space dimension by its non-negative index.
type Var int

// NotADim is the sentinel "no dimension" value used by permutations
// (spec §4.5's map_space_dims) to mean "drop this dimension".
const NotADim Var = -1
