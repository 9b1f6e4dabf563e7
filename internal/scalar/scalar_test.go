package scalar_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/agrad/internal/scalar"
)

func TestFloat_Arithmetic(t *testing.T) {
	a, b := scalar.Float(6), scalar.Float(3)

	assert.Equal(t, scalar.Float(9), a.Add(b))
	assert.Equal(t, scalar.Float(3), a.Sub(b))
	assert.Equal(t, scalar.Float(18), a.Mul(b))
	assert.Equal(t, scalar.Float(2), a.Div(b))
	assert.Equal(t, scalar.Float(-6), a.Neg())
	assert.Equal(t, scalar.Float(36), a.Square())
	assert.Equal(t, 6.0, a.Val())
	assert.Equal(t, scalar.Float(1.5), a.Const(1.5))
}

func TestFloat_DomainErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (scalar.Float, error)
		want string
	}{
		{"log zero", func() (scalar.Float, error) { return scalar.Float(0).Log() }, "log"},
		{"log negative", func() (scalar.Float, error) { return scalar.Float(-1).Log() }, "log"},
		{"log NaN", func() (scalar.Float, error) { return scalar.Float(math.NaN()).Log() }, "log"},
		{"log1p", func() (scalar.Float, error) { return scalar.Float(-1).Log1p() }, "log1p"},
		{"sqrt", func() (scalar.Float, error) { return scalar.Float(-0.5).Sqrt() }, "sqrt"},
		{"pow", func() (scalar.Float, error) { return scalar.Float(-2).Pow(0.5) }, "pow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			require.Error(t, err)
			assert.ErrorIs(t, err, scalar.ErrDomain)

			var de *scalar.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.want, de.Func)
		})
	}
}

func TestFloat_DomainBoundaries(t *testing.T) {
	s, err := scalar.Float(0).Sqrt()
	require.NoError(t, err)
	assert.Equal(t, scalar.Float(0), s)

	p, err := scalar.Float(-2).Pow(3)
	require.NoError(t, err)
	assert.Equal(t, scalar.Float(-8), p)

	l, err := scalar.Float(math.E).Log()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, l.Val(), 1e-15)
}

func TestInvLogit_Tails(t *testing.T) {
	assert.InDelta(t, 0.5, scalar.InvLogit(0), 1e-15)
	assert.InDelta(t, 1.0, scalar.InvLogit(800), 1e-15)
	assert.Greater(t, scalar.InvLogit(-700), 0.0)
	assert.InDelta(t, 1-scalar.InvLogit(2.5), scalar.InvLogit(-2.5), 1e-15)
}

func TestLog1pExp_NoOverflow(t *testing.T) {
	assert.InDelta(t, 1000.0, scalar.Log1pExp(1000), 1e-12)
	assert.InDelta(t, math.Log(2), scalar.Log1pExp(0), 1e-15)
	assert.InDelta(t, math.Exp(-50), scalar.Log1pExp(-50), 1e-30)
}

func TestSumDot(t *testing.T) {
	xs := []scalar.Float{1, 2, 3}

	s, err := scalar.Sum(xs)
	require.NoError(t, err)
	assert.Equal(t, scalar.Float(6), s)

	d, err := scalar.Dot(xs, xs)
	require.NoError(t, err)
	assert.Equal(t, scalar.Float(14), d)

	_, err = scalar.Sum([]scalar.Float{})
	assert.ErrorIs(t, err, scalar.ErrEmpty)

	_, err = scalar.Dot(xs, xs[:2])
	assert.Error(t, err)
}

func TestLogSumExp(t *testing.T) {
	xs := []scalar.Float{1000, 1000}
	l, err := scalar.LogSumExp(xs)
	require.NoError(t, err)
	assert.InDelta(t, 1000+math.Log(2), l.Val(), 1e-12)

	l, err = scalar.LogSumExp([]scalar.Float{-1, 0, 2})
	require.NoError(t, err)
	want := math.Log(math.Exp(-1) + 1 + math.Exp(2))
	assert.InDelta(t, want, l.Val(), 1e-14)
}
