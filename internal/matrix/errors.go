package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrOutOfRange        = errors.New("index out of range")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// RangeError reports a slicing argument outside the source matrix.
type RangeError struct {
	Op    string // Operation (e.g., "block")
	Arg   string // Offending argument (e.g., "start_row")
	Value int    // Value supplied
	Min   int    // Smallest valid value
	Max   int    // Largest valid value
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s is %d, but must be in the interval [%d, %d]", e.Op, e.Arg, e.Value, e.Min, e.Max)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
