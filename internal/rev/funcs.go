package rev

import (
	"math"

	"github.com/born-ml/agrad/internal/scalar"
)

// Exp returns e**v. ∂/∂a = e**a.
func (v Var) Exp() Var {
	e := math.Exp(v.Value())
	return v.unary(OpExp, e, e)
}

// Sin returns sin(v). ∂/∂a = cos(a).
func (v Var) Sin() Var {
	x := v.Value()
	return v.unary(OpSin, math.Sin(x), math.Cos(x))
}

// Cos returns cos(v). ∂/∂a = -sin(a).
func (v Var) Cos() Var {
	x := v.Value()
	return v.unary(OpCos, math.Cos(x), -math.Sin(x))
}

// Tanh returns tanh(v). ∂/∂a = 1 - tanh²(a).
func (v Var) Tanh() Var {
	th := math.Tanh(v.Value())
	return v.unary(OpTanh, th, 1-th*th)
}

// InvLogit returns the logistic sigmoid of v. ∂/∂a = σ(a)(1-σ(a)).
func (v Var) InvLogit() Var {
	s := scalar.InvLogit(v.Value())
	return v.unary(OpInvLogit, s, s*(1-s))
}

// Log1pExp returns log(1 + exp(v)). ∂/∂a = σ(a).
func (v Var) Log1pExp() Var {
	x := v.Value()
	return v.unary(OpLog1pExp, scalar.Log1pExp(x), scalar.InvLogit(x))
}

// Log returns the natural logarithm of v. ∂/∂a = 1/a.
func (v Var) Log() (Var, error) {
	l, err := scalar.Float(v.Value()).Log()
	if err != nil {
		return Var{}, err
	}
	return v.unary(OpLog, float64(l), 1/v.Value()), nil
}

// Log1p returns log(1 + v). ∂/∂a = 1/(1+a).
func (v Var) Log1p() (Var, error) {
	l, err := scalar.Float(v.Value()).Log1p()
	if err != nil {
		return Var{}, err
	}
	return v.unary(OpLog1p, float64(l), 1/(1+v.Value())), nil
}

// Sqrt returns the square root of v. ∂/∂a = 1/(2√a).
func (v Var) Sqrt() (Var, error) {
	s, err := scalar.Float(v.Value()).Sqrt()
	if err != nil {
		return Var{}, err
	}
	return v.unary(OpSqrt, float64(s), 0.5/float64(s)), nil
}

// Pow returns v**c for a constant exponent. ∂/∂a = c a^(c-1), and 0 for c = 0.
func (v Var) Pow(c float64) (Var, error) {
	x := v.Value()
	p, err := scalar.Float(x).Pow(c)
	if err != nil {
		return Var{}, err
	}
	if c == 0 {
		return v.unary(OpPow, float64(p), 0), nil
	}
	return v.unary(OpPow, float64(p), c*math.Pow(x, c-1)), nil
}

// Values returns the values of vs.
func Values(vs []Var) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Value()
	}
	return out
}

// Adjoints returns the adjoints of vs.
func Adjoints(vs []Var) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Adj()
	}
	return out
}
