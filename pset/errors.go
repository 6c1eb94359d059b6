package pset

import "errors"

var (
	// ErrDimensionMismatch is returned when two powersets, or a powerset
	// and a disjunct, disagree on space dimension.
	ErrDimensionMismatch = errors.New("pset: dimension mismatch")
	// ErrTopologyMismatch is returned when an operation requires matching
	// topologies and the operands disagree.
	ErrTopologyMismatch = errors.New("pset: topology mismatch")
	// ErrIndexOutOfRange is returned by disjunct accessors given an
	// out-of-range index.
	ErrIndexOutOfRange = errors.New("pset: index out of range")
)
