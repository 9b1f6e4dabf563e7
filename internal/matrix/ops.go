package matrix

import (
	"fmt"

	"github.com/born-ml/agrad/internal/scalar"
)

func checkSameShape[T any](op string, a, b *Matrix[T]) error {
	if a.rows != b.rows || a.cols != b.cols {
		return fmt.Errorf("%s: %dx%d vs %dx%d: %w", op, a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	return nil
}

func zipWith[T any](a, b *Matrix[T], f func(x, y T) T) *Matrix[T] {
	out := New[T](a.rows, a.cols)
	for k := range a.data {
		out.data[k] = f(a.data[k], b.data[k])
	}
	return out
}

// Add returns a + b element-wise.
func Add[T scalar.Scalar[T]](a, b *Matrix[T]) (*Matrix[T], error) {
	if err := checkSameShape("Add", a, b); err != nil {
		return nil, err
	}
	return zipWith(a, b, func(x, y T) T { return x.Add(y) }), nil
}

// Sub returns a - b element-wise.
func Sub[T scalar.Scalar[T]](a, b *Matrix[T]) (*Matrix[T], error) {
	if err := checkSameShape("Sub", a, b); err != nil {
		return nil, err
	}
	return zipWith(a, b, func(x, y T) T { return x.Sub(y) }), nil
}

// ElemMul returns the element-wise (Hadamard) product of a and b.
func ElemMul[T scalar.Scalar[T]](a, b *Matrix[T]) (*Matrix[T], error) {
	if err := checkSameShape("ElemMul", a, b); err != nil {
		return nil, err
	}
	return zipWith(a, b, func(x, y T) T { return x.Mul(y) }), nil
}

// Scale returns c * m.
func Scale[T scalar.Scalar[T]](m *Matrix[T], c float64) *Matrix[T] {
	return Map(m, func(x T) T { return scalar.Scale(x, c) })
}

// MatMul returns the matrix product a·b.
//
// The inner dimension must be positive: an empty sum has no element to lift a
// zero from.
func MatMul[T scalar.Scalar[T]](a, b *Matrix[T]) (*Matrix[T], error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("MatMul: %dx%d · %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	if a.cols == 0 {
		return nil, fmt.Errorf("MatMul: empty inner dimension: %w", scalar.ErrEmpty)
	}
	out := New[T](a.rows, b.cols)
	for j := 0; j < b.cols; j++ {
		for i := 0; i < a.rows; i++ {
			acc := a.data[i].Mul(b.data[j*b.rows])
			for k := 1; k < a.cols; k++ {
				acc = acc.Add(a.data[k*a.rows+i].Mul(b.data[j*b.rows+k]))
			}
			out.data[j*out.rows+i] = acc
		}
	}
	return out, nil
}

// Sum returns the sum of all elements in column-major order.
func Sum[T scalar.Scalar[T]](m *Matrix[T]) (T, error) {
	return scalar.Sum(m.data)
}

// DotProduct returns the inner product of two vectors of equal size.
// Orientation is ignored.
func DotProduct[T scalar.Scalar[T]](a, b *Matrix[T]) (T, error) {
	var zero T
	if !a.IsVector() || !b.IsVector() || a.Size() != b.Size() {
		return zero, fmt.Errorf("DotProduct: %dx%d · %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	return scalar.Dot(a.data, b.data)
}
