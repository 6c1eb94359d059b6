package linexpr

import "errors"

var (
	// ErrNegativeDimension reports a negative space dimension. No function
	// in this module returns it.
	ErrNegativeDimension = errors.New("linexpr: negative space dimension")

	// ErrDimensionOutOfRange reports an index/dimension argument that does
	// not name a valid coefficient slot of the expression. No function in
	// this module returns it.
	ErrDimensionOutOfRange = errors.New("linexpr: dimension out of range")

	// ErrBadPermutation is returned by Permute when the supplied mapping
	// is not injective over its defined (non-NotADim) entries.
	ErrBadPermutation = errors.New("linexpr: permutation is not injective")
)
