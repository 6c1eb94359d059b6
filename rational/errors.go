package rational

import "errors"

// Sentinel errors for the rational package. Exact division and rational
// construction are the only operations here that can fail on well-formed
// but semantically invalid input (spec: precondition violations are
// programmer errors; we still surface a sentinel where the caller can
// reasonably check first, per the teacher's convention of never panicking
// on conditions a caller can validate in O(1)).
var (
	// ErrDivisionByZero is returned by Div/ExactDiv/NewRational when the
	// divisor or denominator is zero.
	ErrDivisionByZero = errors.New("rational: division by zero")

	// ErrNotDivisible is returned by ExactDiv when the dividend is not an
	// exact multiple of the divisor. Callers that already know the
	// division is exact (the common case inside the conversion core) may
	// ignore the error.
	ErrNotDivisible = errors.New("rational: inexact division")
)
