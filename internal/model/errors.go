package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrEvaluation          = errors.New("evaluation failed")
	ErrParamCount          = errors.New("wrong number of parameters")
	ErrIncompleteFamily    = errors.New("density family requires Float and Var instantiations")
	ErrUnsupported         = errors.New("density not instantiated for this scalar family")
	ErrGradientMismatch    = errors.New("gradient does not match finite differences")
	ErrNotPositiveDefinite = errors.New("matrix is not positive definite")
)

// EvaluationError reports a density that failed while being composed.
// No partial value or gradient accompanies it.
type EvaluationError struct {
	Model string // Model name
	Err   error  // Originating error (e.g., a *scalar.DomainError)
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("model %s: %v: %v", e.Model, ErrEvaluation, e.Err)
}

// Unwrap returns the originating error.
func (e *EvaluationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrEvaluation.
func (e *EvaluationError) Is(target error) bool {
	return target == ErrEvaluation
}
