// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import (
	"github.com/born-ml/agrad/internal/fwd"
	"github.com/born-ml/agrad/internal/rev"
	"github.com/born-ml/agrad/internal/scalar"
)

// Scalar is the arithmetic contract shared by every AD scalar type.
type Scalar[T any] = scalar.Scalar[T]

// Float is the primitive scalar.
type Float = scalar.Float

// DomainError reports an argument outside a function's domain.
type DomainError = scalar.DomainError

// ErrDomain matches every DomainError.
var ErrDomain = scalar.ErrDomain

// Dual is a forward-mode scalar over T.
type Dual[T Scalar[T]] = fwd.Dual[T]

// NewDual returns a Dual with the given value and tangent.
func NewDual[T Scalar[T]](value, tangent T) Dual[T] {
	return fwd.New(value, tangent)
}

// Variable returns a Dual seeded with tangent 1.
func Variable[T Scalar[T]](value T) Dual[T] {
	return fwd.Variable(value)
}

// Constant returns a Dual with tangent 0.
func Constant[T Scalar[T]](value T) Dual[T] {
	return fwd.Constant(value)
}

// Derivative evaluates f at x and returns its value and first derivative.
func Derivative[T Scalar[T]](f func(Dual[T]) (Dual[T], error), x T) (value, deriv T, err error) {
	return fwd.Derivative(fwd.Func[T](f), x)
}

// Tape is the reverse-mode arena.
type Tape = rev.Tape

// NewTape creates an empty tape.
func NewTape() *Tape {
	return rev.NewTape()
}

// Var is a reverse-mode scalar.
type Var = rev.Var

// Op identifies the operation that produced a Var.
type Op = rev.Op

// Adjoints returns the adjoint of each Var after a Backward sweep.
func Adjoints(vs []Var) []float64 {
	return rev.Adjoints(vs)
}

// Sum adds xs. An empty slice is an error.
func Sum[T Scalar[T]](xs []T) (T, error) {
	return scalar.Sum(xs)
}

// LogSumExp computes log(Σ exp(xᵢ)) without overflow.
func LogSumExp[T Scalar[T]](xs []T) (T, error) {
	return scalar.LogSumExp(xs)
}
