package scalar

import "errors"

// ErrEmpty is returned by reductions over an empty sequence.
// There is no receiver to lift a zero from, so the result would have no family.
var ErrEmpty = errors.New("reduction over empty sequence")

// Sum returns xs[0] + xs[1] + ... in order.
func Sum[T Scalar[T]](xs []T) (T, error) {
	var zero T
	if len(xs) == 0 {
		return zero, ErrEmpty
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = acc.Add(x)
	}
	return acc, nil
}

// Dot returns the inner product of a and b, which must have equal non-zero length.
func Dot[T Scalar[T]](a, b []T) (T, error) {
	var zero T
	if len(a) != len(b) {
		return zero, errors.New("dot: length mismatch")
	}
	if len(a) == 0 {
		return zero, ErrEmpty
	}
	acc := a[0].Mul(b[0])
	for i := 1; i < len(a); i++ {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc, nil
}

// Scale returns x * c with c lifted into x's family.
func Scale[T Scalar[T]](x T, c float64) T {
	return x.Mul(x.Const(c))
}

// LogSumExp returns log(sum(exp(xs))) shifted by the largest value for stability.
func LogSumExp[T Scalar[T]](xs []T) (T, error) {
	var zero T
	if len(xs) == 0 {
		return zero, ErrEmpty
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x.Val() > m.Val() {
			m = x
		}
	}
	shift := m.Const(m.Val())
	terms := make([]T, len(xs))
	for i, x := range xs {
		terms[i] = x.Sub(shift).Exp()
	}
	s, err := Sum(terms)
	if err != nil {
		return zero, err
	}
	l, err := s.Log()
	if err != nil {
		return zero, err
	}
	return l.Add(shift), nil
}
