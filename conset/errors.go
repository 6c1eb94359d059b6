package conset

import "errors"

var (
	// ErrDimensionMismatch is returned when a row's dimension does not
	// match the system it is being appended to.
	ErrDimensionMismatch = errors.New("conset: dimension mismatch")

	// ErrNonPositiveDivisor is returned by NewPoint/NewClosurePoint when
	// given a divisor <= 0.
	ErrNonPositiveDivisor = errors.New("conset: point divisor must be positive")

	// ErrSingletonNSRow is returned when a caller attempts to append an ns
	// row with fewer than two members; spec §3.4 forbids singleton
	// supports (they are absorbed into promoting the sk row to strict).
	ErrSingletonNSRow = errors.New("conset: ns row support must have size >= 2")

	// ErrNSIndexOutOfRange is returned when an ns row names an sk index
	// that does not exist.
	ErrNSIndexOutOfRange = errors.New("conset: ns row references unknown sk row")

	// ErrRowIndexOutOfRange is returned by row-removal/slicing helpers
	// given an out-of-range index.
	ErrRowIndexOutOfRange = errors.New("conset: row index out of range")
)
