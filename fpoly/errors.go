package fpoly

import "errors"

var (
	// ErrDimensionMismatch is returned when two factored polyhedra, or a
	// factored polyhedron and a constraint, disagree on space dimension.
	ErrDimensionMismatch = errors.New("fpoly: dimension mismatch")
	// ErrTopologyMismatch is returned when an operation requires both
	// operands to share a topology and they do not.
	ErrTopologyMismatch = errors.New("fpoly: topology mismatch")
	// ErrIndexOutOfRange is returned by dimension/factor accessors given
	// an out-of-range index.
	ErrIndexOutOfRange = errors.New("fpoly: index out of range")
)
