package fwd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/agrad/internal/fwd"
	"github.com/born-ml/agrad/internal/rev"
	"github.com/born-ml/agrad/internal/scalar"
)

type (
	fv  = fwd.Dual[scalar.Float]
	ffv = fwd.Dual[fwd.Dual[scalar.Float]]
	fvv = fwd.Dual[rev.Var]
)

func TestDual_Arithmetic(t *testing.T) {
	a := fwd.New[scalar.Float](3, 1)
	b := fwd.New[scalar.Float](2, 0.5)

	tests := []struct {
		name    string
		got     fv
		val     float64
		tangent float64
	}{
		{"add", a.Add(b), 5, 1.5},
		{"sub", a.Sub(b), 1, 0.5},
		{"mul", a.Mul(b), 6, 1*2 + 3*0.5},
		{"div", a.Div(b), 1.5, (1*2 - 3*0.5) / 4},
		{"neg", a.Neg(), -3, -1},
		{"square", a.Square(), 9, 6},
		{"const", a.Const(7), 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.val, tt.got.Val(), 1e-15)
			assert.InDelta(t, tt.tangent, tt.got.Tangent().Val(), 1e-15)
		})
	}
}

func TestDual_ElementaryFunctions(t *testing.T) {
	x := 0.7
	d := fwd.Variable(scalar.Float(x))

	must := func(y fv, err error) fv {
		require.NoError(t, err)
		return y
	}

	tests := []struct {
		name  string
		got   fv
		val   float64
		deriv float64
	}{
		{"exp", d.Exp(), math.Exp(x), math.Exp(x)},
		{"sin", d.Sin(), math.Sin(x), math.Cos(x)},
		{"cos", d.Cos(), math.Cos(x), -math.Sin(x)},
		{"tanh", d.Tanh(), math.Tanh(x), 1 - math.Tanh(x)*math.Tanh(x)},
		{"inv_logit", d.InvLogit(), scalar.InvLogit(x), scalar.InvLogit(x) * (1 - scalar.InvLogit(x))},
		{"log1p_exp", d.Log1pExp(), scalar.Log1pExp(x), scalar.InvLogit(x)},
		{"log", must(d.Log()), math.Log(x), 1 / x},
		{"log1p", must(d.Log1p()), math.Log1p(x), 1 / (1 + x)},
		{"sqrt", must(d.Sqrt()), math.Sqrt(x), 0.5 / math.Sqrt(x)},
		{"pow", must(d.Pow(2.5)), math.Pow(x, 2.5), 2.5 * math.Pow(x, 1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.val, tt.got.Val(), 1e-14)
			assert.InDelta(t, tt.deriv, tt.got.Tangent().Val(), 1e-14)
		})
	}
}

// y = f(g(x)) must satisfy y' = f'(g(x)) g'(x) x'.
func TestDual_ChainRule(t *testing.T) {
	x := 0.3
	seed := 2.0
	d := fwd.New(scalar.Float(x), scalar.Float(seed))

	// exp(sin(x))
	y := d.Sin().Exp()
	assert.InDelta(t, math.Exp(math.Sin(x))*math.Cos(x)*seed, y.Tangent().Val(), 1e-14)

	// log(1 + x²)
	l, err := d.Square().Log1p()
	require.NoError(t, err)
	assert.InDelta(t, 2*x/(1+x*x)*seed, l.Tangent().Val(), 1e-14)

	// tanh(sqrt(x))
	s, err := d.Sqrt()
	require.NoError(t, err)
	th := s.Tanh()
	want := (1 - math.Pow(math.Tanh(math.Sqrt(x)), 2)) * 0.5 / math.Sqrt(x) * seed
	assert.InDelta(t, want, th.Tangent().Val(), 1e-14)
}

func TestDual_PowZeroExponent(t *testing.T) {
	y, err := fwd.Variable(scalar.Float(0)).Pow(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, y.Val())
	assert.Equal(t, 0.0, y.Tangent().Val())

	tape := rev.NewTape()
	x := tape.Leaf(0)
	z, err := fwd.Variable(x).Pow(0)
	require.NoError(t, err)
	tape.Backward(z.Tangent())
	assert.Equal(t, 0.0, z.Tangent().Val())
	assert.Equal(t, 0.0, x.Adj())
}

func TestDual_DomainErrorPropagates(t *testing.T) {
	_, err := fwd.Variable(scalar.Float(-1)).Log()
	assert.ErrorIs(t, err, scalar.ErrDomain)

	// The inner type raises the error at any nesting depth.
	inner := fwd.Variable(scalar.Float(-1))
	_, err = fwd.Variable(inner).Sqrt()
	assert.ErrorIs(t, err, scalar.ErrDomain)
}

func TestDerivative(t *testing.T) {
	v, d, err := fwd.Derivative(func(x fv) (fv, error) {
		return x.Square().Exp(), nil
	}, scalar.Float(1))
	require.NoError(t, err)
	assert.InDelta(t, math.E, v.Val(), 1e-14)
	assert.InDelta(t, 2*math.E, d.Val(), 1e-14)
}

func TestDirectional(t *testing.T) {
	f := func(xs []fv) (fv, error) { return xs[0].Mul(xs[1]).Add(xs[1].Sin()), nil }

	v, d, err := fwd.Directional(f, []scalar.Float{2, 1}, []scalar.Float{1, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2+math.Sin(1), v.Val(), 1e-14)
	// ∇f = (x1, x0 + cos x1)
	assert.InDelta(t, 1*1+3*(2+math.Cos(1)), d.Val(), 1e-14)

	_, _, err = fwd.Directional(f, []scalar.Float{1}, []scalar.Float{1, 2})
	assert.Error(t, err)
}

// f(x) = x³ sin(x); a Dual[Dual[Float]] with both tangents seeded yields f''.
func TestDual_NestedSecondDerivative(t *testing.T) {
	x := 1.3
	in := fwd.New(fwd.New[scalar.Float](scalar.Float(x), 1), fwd.New[scalar.Float](1, 0))

	cube, err := in.Pow(3)
	require.NoError(t, err)
	y := cube.Mul(in.Sin())

	f := func(x float64) float64 { return x * x * x * math.Sin(x) }
	d1 := 3*x*x*math.Sin(x) + x*x*x*math.Cos(x)
	d2 := 6*x*math.Sin(x) + 6*x*x*math.Cos(x) - x*x*x*math.Sin(x)

	assert.InDelta(t, f(x), y.Val(), 1e-13)
	assert.InDelta(t, d1, y.Value().Tangent().Val(), 1e-13)
	assert.InDelta(t, d1, y.Tangent().Value().Val(), 1e-13)
	assert.InDelta(t, d2, y.Tangent().Tangent().Val(), 1e-12)

	numeric := fd.Derivative(f, x, &fd.Settings{Formula: fd.Central2nd, Step: 1e-3})
	assert.InDelta(t, numeric, y.Tangent().Tangent().Val(), 1e-4)
}

// Seeding the inner and outer tangent in either order gives the same mixed derivative.
func TestDual_NestingOrderSymmetric(t *testing.T) {
	f := func(a, b ffv) ffv { return a.Mul(b).Exp().Add(a.Square().Mul(b)) }

	x, y := scalar.Float(0.4), scalar.Float(-0.2)
	a1 := fwd.New(fwd.New(x, 1), fwd.New[scalar.Float](0, 0))
	b1 := fwd.New(fwd.New[scalar.Float](y, 0), fwd.New[scalar.Float](1, 0))
	a2 := fwd.New(fwd.New[scalar.Float](x, 0), fwd.New[scalar.Float](1, 0))
	b2 := fwd.New(fwd.New(y, 1), fwd.New[scalar.Float](0, 0))

	m1 := f(a1, b1).Tangent().Tangent().Val()
	m2 := f(a2, b2).Tangent().Tangent().Val()

	// ∂²/∂x∂y [exp(xy) + x²y] = exp(xy)(1 + xy) + 2x
	xy := float64(x * y)
	want := math.Exp(xy)*(1+xy) + 2*float64(x)
	assert.InDelta(t, want, m1, 1e-13)
	assert.InDelta(t, m1, m2, 1e-13)
}

// Dual[Var]: the adjoint of the tangent output is the second derivative.
func TestDual_OverReverse(t *testing.T) {
	x := 0.9
	tape := rev.NewTape()
	xv := tape.Leaf(x)
	in := fwd.New(xv, xv.Const(1))

	// f(x) = exp(sin x) * x
	y := in.Sin().Exp().Mul(in)

	f1 := func(x float64) float64 { return math.Exp(math.Sin(x)) * (1 + x*math.Cos(x)) }
	assert.InDelta(t, math.Exp(math.Sin(x))*x, y.Val(), 1e-14)
	assert.InDelta(t, f1(x), y.Tangent().Val(), 1e-14)

	tape.Backward(y.Value())
	assert.InDelta(t, f1(x), xv.Adj(), 1e-13)

	tape.Backward(y.Tangent())
	numeric := fd.Derivative(f1, x, &fd.Settings{Formula: fd.Central, Step: 1e-6})
	assert.InDelta(t, numeric, xv.Adj(), 1e-6)
}

func TestDual_OverReverseDomainError(t *testing.T) {
	tape := rev.NewTape()
	xv := tape.Leaf(-3)
	var in fvv = fwd.Variable(xv)

	_, err := in.Log()
	assert.ErrorIs(t, err, scalar.ErrDomain)
}
