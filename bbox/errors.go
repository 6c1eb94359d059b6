package bbox

import "errors"

// ErrDimensionMismatch is returned when two boxes of different
// dimension are combined.
var ErrDimensionMismatch = errors.New("bbox: dimension mismatch")

// ErrIndexOutOfRange is returned by per-dimension accessors given an
// out-of-range index.
var ErrIndexOutOfRange = errors.New("bbox: dimension index out of range")
