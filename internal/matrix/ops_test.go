package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/agrad/internal/fwd"
	"github.com/born-ml/agrad/internal/matrix"
	"github.com/born-ml/agrad/internal/rev"
	"github.com/born-ml/agrad/internal/scalar"
)

func TestFromRows_Ragged(t *testing.T) {
	_, err := matrix.FromRows([][]scalar.Float{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	m, err := matrix.FromRows[scalar.Float](nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Size())
}

func TestMatrix_AtSetBounds(t *testing.T) {
	m := matrix.New[scalar.Float](2, 3)
	m.Set(1, 2, 5)
	assert.Equal(t, scalar.Float(5), m.At(1, 2))
	assert.Equal(t, []scalar.Float{0, 0, 0, 0, 0, 5}, m.Data())

	assert.Panics(t, func() { m.At(2, 0) })
	assert.Panics(t, func() { matrix.New[scalar.Float](-1, 2) })
}

func TestElementWise(t *testing.T) {
	a, _ := matrix.FromRows([][]scalar.Float{{1, 2}, {3, 4}})
	b, _ := matrix.FromRows([][]scalar.Float{{5, 6}, {7, 8}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]scalar.Float{{6, 8}, {10, 12}}, sum.ToRows())

	diff, err := matrix.Sub(b, a)
	require.NoError(t, err)
	assert.Equal(t, [][]scalar.Float{{4, 4}, {4, 4}}, diff.ToRows())

	prod, err := matrix.ElemMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]scalar.Float{{5, 12}, {21, 32}}, prod.ToRows())

	assert.Equal(t, [][]scalar.Float{{2, 4}, {6, 8}}, matrix.Scale(a, 2).ToRows())
	assert.Equal(t, [][]scalar.Float{{1, 3}, {2, 4}}, matrix.Transpose(a).ToRows())

	_, err = matrix.Add(a, matrix.New[scalar.Float](2, 3))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMatMul(t *testing.T) {
	a, _ := matrix.FromRows([][]scalar.Float{{1, 2, 3}, {4, 5, 6}})
	b, _ := matrix.FromRows([][]scalar.Float{{1, 0}, {0, 1}, {1, 1}})

	c, err := matrix.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]scalar.Float{{4, 5}, {10, 11}}, c.ToRows())

	_, err = matrix.MatMul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.MatMul(matrix.New[scalar.Float](2, 0), matrix.New[scalar.Float](0, 2))
	assert.ErrorIs(t, err, scalar.ErrEmpty)
}

// d/dx (xᵀ A x) = (A + Aᵀ) x
func TestMatMul_ReverseGradient(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{2, 1, 0, 3})
	tape := rev.NewTape()
	xs := tape.Leaves([]float64{1, -2})

	x := matrix.Vector(xs)
	lifted := matrix.Lift(xs[0], A)
	ax, err := matrix.MatMul(lifted, x)
	require.NoError(t, err)
	q, err := matrix.MatMul(matrix.Transpose(x), ax)
	require.NoError(t, err)
	require.Equal(t, 1, q.Size())

	tape.Backward(q.At(0, 0))
	// A + Aᵀ = [[4 1] [1 6]]
	assert.Equal(t, []float64{4*1 + 1*-2, 1*1 + 6*-2}, rev.Adjoints(xs))
}

func TestDotProductAndSum(t *testing.T) {
	a := matrix.Vector([]fwd.Dual[scalar.Float]{fwd.New[scalar.Float](1, 1), fwd.New[scalar.Float](2, 0)})
	b := matrix.RowVector([]fwd.Dual[scalar.Float]{fwd.New[scalar.Float](3, 0), fwd.New[scalar.Float](4, 0)})

	d, err := matrix.DotProduct(a, b)
	require.NoError(t, err)
	assert.Equal(t, 11.0, d.Val())
	assert.Equal(t, 3.0, d.Tangent().Val())

	s, err := matrix.Sum(a)
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Val())

	_, err = matrix.DotProduct(a, matrix.Vector([]fwd.Dual[scalar.Float]{fwd.New[scalar.Float](1, 0)}))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Sum(matrix.New[scalar.Float](0, 3))
	assert.ErrorIs(t, err, scalar.ErrEmpty)
}

func TestMapErr(t *testing.T) {
	m := matrix.Vector([]scalar.Float{1, -1})
	_, err := matrix.MapErr(m, scalar.Float.Log)
	assert.ErrorIs(t, err, scalar.ErrDomain)

	ok, err := matrix.MapErr(matrix.Vector([]scalar.Float{4, 9}), scalar.Float.Sqrt)
	require.NoError(t, err)
	assert.Equal(t, []scalar.Float{2, 3}, ok.Data())
}

func TestDenseBridge(t *testing.T) {
	d := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	m := matrix.FromDense(d)
	assert.Equal(t, [][]scalar.Float{{1, 2, 3}, {4, 5, 6}}, m.ToRows())
	assert.True(t, mat.Equal(d, matrix.Values(m)))

	duals := matrix.Map(m, func(x scalar.Float) fwd.Dual[scalar.Float] { return fwd.New(x, x.Mul(10)) })
	assert.True(t, mat.Equal(d, matrix.Values(duals)))
	tangents := matrix.Tangents(duals)
	assert.Equal(t, 60.0, tangents.At(1, 2))

	empty := matrix.Values(matrix.New[scalar.Float](0, 0))
	assert.True(t, empty.IsEmpty())
}
