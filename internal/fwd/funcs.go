package fwd

// Elementary functions. Each follows f(x) -> {f(v), f'(v) * dv}; domain errors come
// from T's own implementation and are returned unchanged.

// Exp returns e**x.
func (x Dual[T]) Exp() Dual[T] {
	e := x.val.Exp()
	return Dual[T]{val: e, tan: x.tan.Mul(e)}
}

// Sin returns sin(x).
func (x Dual[T]) Sin() Dual[T] {
	return Dual[T]{val: x.val.Sin(), tan: x.tan.Mul(x.val.Cos())}
}

// Cos returns cos(x).
func (x Dual[T]) Cos() Dual[T] {
	return Dual[T]{val: x.val.Cos(), tan: x.tan.Mul(x.val.Sin()).Neg()}
}

// Tanh returns tanh(x).
//
//	d tanh(a) = (1 - tanh²(a)) da
func (x Dual[T]) Tanh() Dual[T] {
	t := x.val.Tanh()
	one := x.val.Const(1)
	return Dual[T]{val: t, tan: x.tan.Mul(one.Sub(t.Square()))}
}

// InvLogit returns 1 / (1 + exp(-x)).
//
//	d σ(a) = σ(a)(1 - σ(a)) da
func (x Dual[T]) InvLogit() Dual[T] {
	s := x.val.InvLogit()
	one := x.val.Const(1)
	return Dual[T]{val: s, tan: x.tan.Mul(s.Mul(one.Sub(s)))}
}

// Log1pExp returns log(1 + exp(x)).
//
//	d log1pexp(a) = σ(a) da
func (x Dual[T]) Log1pExp() Dual[T] {
	return Dual[T]{val: x.val.Log1pExp(), tan: x.tan.Mul(x.val.InvLogit())}
}

// Log returns the natural logarithm of x.
//
//	d log(a) = da / a
func (x Dual[T]) Log() (Dual[T], error) {
	l, err := x.val.Log()
	if err != nil {
		return Dual[T]{}, err
	}
	return Dual[T]{val: l, tan: x.tan.Div(x.val)}, nil
}

// Log1p returns log(1 + x).
//
//	d log1p(a) = da / (1 + a)
func (x Dual[T]) Log1p() (Dual[T], error) {
	l, err := x.val.Log1p()
	if err != nil {
		return Dual[T]{}, err
	}
	return Dual[T]{val: l, tan: x.tan.Div(x.val.Const(1).Add(x.val))}, nil
}

// Sqrt returns the square root of x.
//
//	d √a = da / (2√a)
func (x Dual[T]) Sqrt() (Dual[T], error) {
	s, err := x.val.Sqrt()
	if err != nil {
		return Dual[T]{}, err
	}
	return Dual[T]{val: s, tan: x.tan.Div(s.Add(s))}, nil
}

// Pow returns x**c for a constant exponent.
//
//	d a^c = c a^(c-1) da
//
// x**0 is constant, so its tangent is zero even at a = 0.
func (x Dual[T]) Pow(c float64) (Dual[T], error) {
	p, err := x.val.Pow(c)
	if err != nil {
		return Dual[T]{}, err
	}
	if c == 0 {
		return Dual[T]{val: p, tan: x.tan.Const(0)}, nil
	}
	pm1, err := x.val.Pow(c - 1)
	if err != nil {
		return Dual[T]{}, err
	}
	return Dual[T]{val: p, tan: x.tan.Mul(pm1.Mul(x.val.Const(c)))}, nil
}
