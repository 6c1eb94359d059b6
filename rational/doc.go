// Package rational provides the two arbitrary-precision numeric leaf types
// used by every other package in this module: Integer, a signed exact
// integer, and Rational, an exact fraction of two Integers.
//
// Both types wrap math/big (Integer wraps *big.Int, Rational wraps *big.Rat)
// rather than reimplementing bignum arithmetic: no third-party arbitrary
// precision package appears anywhere in this module's reference corpus, and
// math/big is the idiomatic Go way to get exact, unbounded arithmetic.
//
// Integer values are mutable by convention — most methods mutate the
// receiver and also return it, mirroring math/big's own receiver-mutates
// style, so that call chains such as:
//
//	z := NewInt(0).AddMul(a, b).Negate()
//
// read naturally. Callers that need a fresh value must Clone() first.
package rational
