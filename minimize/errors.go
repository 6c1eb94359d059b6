package minimize

import "errors"

// ErrDimensionMismatch is returned when a system's declared dimension
// disagrees with one of its own rows — an invariant violation that
// should be unreachable through the public conset API.
var ErrDimensionMismatch = errors.New("minimize: dimension mismatch")
