// Package fwd implements forward-mode automatic differentiation with dual numbers.
//
// A Dual[T] carries a value and a tangent (the directional derivative with respect
// to a seeded input). Every operation computes the result's tangent by the chain
// rule at construction time; there is no tape and no deferred sweep.
//
// Dual is generic over any scalar.Scalar, including itself and rev.Var:
//
//	Dual[scalar.Float]              first derivatives
//	Dual[Dual[scalar.Float]]        second derivatives, no tape
//	Dual[rev.Var]                   forward-over-reverse (Hessian-vector products)
//
// The rules below are written once and apply at every nesting depth.
package fwd

import "github.com/born-ml/agrad/internal/scalar"

// Dual is a forward-mode AD scalar: value + tangent.
type Dual[T scalar.Scalar[T]] struct {
	val T
	tan T
}

var _ scalar.Scalar[Dual[scalar.Float]] = Dual[scalar.Float]{}

// New creates a dual number with the given value and tangent.
func New[T scalar.Scalar[T]](value, tangent T) Dual[T] {
	return Dual[T]{val: value, tan: tangent}
}

// Variable creates an input seeded with tangent 1 (d/dx x = 1).
func Variable[T scalar.Scalar[T]](value T) Dual[T] {
	return Dual[T]{val: value, tan: value.Const(1)}
}

// Constant creates a dual number with tangent 0.
func Constant[T scalar.Scalar[T]](value T) Dual[T] {
	return Dual[T]{val: value, tan: value.Const(0)}
}

// Value returns the value component.
func (x Dual[T]) Value() T { return x.val }

// Tangent returns the tangent component.
func (x Dual[T]) Tangent() T { return x.tan }

// Val returns the innermost primitive value.
func (x Dual[T]) Val() float64 { return x.val.Val() }

// Const lifts c with a zero tangent.
func (x Dual[T]) Const(c float64) Dual[T] {
	return Dual[T]{val: x.val.Const(c), tan: x.val.Const(0)}
}

// Neg returns -x.
func (x Dual[T]) Neg() Dual[T] {
	return Dual[T]{val: x.val.Neg(), tan: x.tan.Neg()}
}

// Add returns x + b.
//
//	d(a+b) = da + db
func (x Dual[T]) Add(b Dual[T]) Dual[T] {
	return Dual[T]{val: x.val.Add(b.val), tan: x.tan.Add(b.tan)}
}

// Sub returns x - b.
//
//	d(a-b) = da - db
func (x Dual[T]) Sub(b Dual[T]) Dual[T] {
	return Dual[T]{val: x.val.Sub(b.val), tan: x.tan.Sub(b.tan)}
}

// Mul returns x * b.
//
//	d(a*b) = da*b + a*db
func (x Dual[T]) Mul(b Dual[T]) Dual[T] {
	return Dual[T]{
		val: x.val.Mul(b.val),
		tan: x.tan.Mul(b.val).Add(x.val.Mul(b.tan)),
	}
}

// Div returns x / b.
//
//	d(a/b) = (da*b - a*db) / b²
func (x Dual[T]) Div(b Dual[T]) Dual[T] {
	return Dual[T]{
		val: x.val.Div(b.val),
		tan: x.tan.Mul(b.val).Sub(x.val.Mul(b.tan)).Div(b.val.Square()),
	}
}

// Square returns x².
//
//	d(a²) = 2a*da
func (x Dual[T]) Square() Dual[T] {
	return Dual[T]{
		val: x.val.Square(),
		tan: x.val.Add(x.val).Mul(x.tan),
	}
}
