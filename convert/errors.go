package convert

import "errors"

// ErrDimensionMismatch is returned when a system's rows do not all share
// its declared space dimension.
var ErrDimensionMismatch = errors.New("convert: dimension mismatch")
