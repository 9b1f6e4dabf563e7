package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/agrad/internal/fwd"
	"github.com/born-ml/agrad/internal/rev"
	"github.com/born-ml/agrad/internal/scalar"
)

// FromDense copies a gonum matrix into a Matrix of primitive scalars.
func FromDense(d mat.Matrix) *Matrix[scalar.Float] {
	r, c := d.Dims()
	m := New[scalar.Float](r, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			m.data[j*r+i] = scalar.Float(d.At(i, j))
		}
	}
	return m
}

// Lift copies a gonum matrix into the family of like, as constants.
// For rev.Var every element becomes a leaf on like's tape.
func Lift[T scalar.Scalar[T]](like T, d mat.Matrix) *Matrix[T] {
	r, c := d.Dims()
	m := New[T](r, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			m.data[j*r+i] = like.Const(d.At(i, j))
		}
	}
	return m
}

// toDense builds a gonum matrix from f applied to each element.
// gonum rejects zero-sized dimensions, so an empty m yields an empty Dense.
func toDense[T any](m *Matrix[T], f func(T) float64) *mat.Dense {
	if m.Size() == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for j := 0; j < m.cols; j++ {
		for i := 0; i < m.rows; i++ {
			d.Set(i, j, f(m.data[j*m.rows+i]))
		}
	}
	return d
}

// Values returns the innermost primitive values of m.
func Values[T scalar.Scalar[T]](m *Matrix[T]) *mat.Dense {
	return toDense(m, func(x T) float64 { return x.Val() })
}

// Tangents returns the innermost primitive values of each element's tangent.
func Tangents[T scalar.Scalar[T]](m *Matrix[fwd.Dual[T]]) *mat.Dense {
	return toDense(m, func(x fwd.Dual[T]) float64 { return x.Tangent().Val() })
}

// Adjoints returns the adjoint of each element after a Backward sweep.
func Adjoints(m *Matrix[rev.Var]) *mat.Dense {
	return toDense(m, rev.Var.Adj)
}
