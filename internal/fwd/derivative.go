package fwd

import "github.com/born-ml/agrad/internal/scalar"

// Func is a differentiable function of one forward-mode argument.
type Func[T scalar.Scalar[T]] func(x Dual[T]) (Dual[T], error)

// Derivative evaluates f at x with the tangent seeded to 1 and returns f(x) and f'(x).
//
// Example:
//
//	v, d, _ := fwd.Derivative(func(x fwd.Dual[scalar.Float]) (fwd.Dual[scalar.Float], error) {
//	    return x.Mul(x).Exp(), nil
//	}, scalar.Float(1))
//	// v = e, d = 2e
func Derivative[T scalar.Scalar[T]](f Func[T], x T) (value, deriv T, err error) {
	y, err := f(Variable(x))
	if err != nil {
		return value, deriv, err
	}
	return y.val, y.tan, nil
}

// Directional seeds xs with tangents dir and returns the tangents of f's output:
// the directional derivative ∇f(xs)·dir.
func Directional[T scalar.Scalar[T]](f func([]Dual[T]) (Dual[T], error), xs, dir []T) (value, deriv T, err error) {
	if len(xs) != len(dir) {
		return value, deriv, errLengthMismatch
	}
	in := make([]Dual[T], len(xs))
	for i := range xs {
		in[i] = New(xs[i], dir[i])
	}
	y, err := f(in)
	if err != nil {
		return value, deriv, err
	}
	return y.val, y.tan, nil
}
