package scalar

import (
	"errors"
	"fmt"
)

// ErrDomain matches every DomainError.
var ErrDomain = errors.New("argument outside function domain")

// DomainError reports an elementary function called outside its mathematical domain.
type DomainError struct {
	Func string  // Function name (e.g., "log")
	Arg  float64 // Offending argument
	Want string  // Human-readable domain (e.g., "positive")
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: argument is %g, but must be %s", e.Func, e.Arg, e.Want)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}
