package scalar

import "math"

// Float is the primitive scalar: a float64 that satisfies Scalar[Float].
type Float float64

// Val returns x as a float64.
func (x Float) Val() float64 { return float64(x) }

// Const returns c as a Float.
func (Float) Const(c float64) Float { return Float(c) }

// Neg returns -x.
func (x Float) Neg() Float { return -x }

// Add returns x + b.
func (x Float) Add(b Float) Float { return x + b }

// Sub returns x - b.
func (x Float) Sub(b Float) Float { return x - b }

// Mul returns x * b.
func (x Float) Mul(b Float) Float { return x * b }

// Div returns x / b. Division by zero follows IEEE 754.
func (x Float) Div(b Float) Float { return x / b }

// Square returns x * x.
func (x Float) Square() Float { return x * x }

// Exp returns e**x.
func (x Float) Exp() Float { return Float(math.Exp(float64(x))) }

// Sin returns sin(x).
func (x Float) Sin() Float { return Float(math.Sin(float64(x))) }

// Cos returns cos(x).
func (x Float) Cos() Float { return Float(math.Cos(float64(x))) }

// Tanh returns tanh(x).
func (x Float) Tanh() Float { return Float(math.Tanh(float64(x))) }

// InvLogit returns the logistic sigmoid of x.
func (x Float) InvLogit() Float { return Float(InvLogit(float64(x))) }

// Log1pExp returns log(1 + exp(x)).
func (x Float) Log1pExp() Float { return Float(Log1pExp(float64(x))) }

// Log returns the natural logarithm of x. x must be positive.
func (x Float) Log() (Float, error) {
	if !(x > 0) {
		return 0, &DomainError{Func: "log", Arg: float64(x), Want: "positive"}
	}
	return Float(math.Log(float64(x))), nil
}

// Log1p returns log(1 + x). x must be greater than -1.
func (x Float) Log1p() (Float, error) {
	if !(x > -1) {
		return 0, &DomainError{Func: "log1p", Arg: float64(x), Want: "greater than -1"}
	}
	return Float(math.Log1p(float64(x))), nil
}

// Sqrt returns the square root of x. x must be non-negative.
func (x Float) Sqrt() (Float, error) {
	if !(x >= 0) {
		return 0, &DomainError{Func: "sqrt", Arg: float64(x), Want: "non-negative"}
	}
	return Float(math.Sqrt(float64(x))), nil
}

// Pow returns x**c. A negative x requires an integral c.
func (x Float) Pow(c float64) (Float, error) {
	if x < 0 && c != math.Trunc(c) {
		return 0, &DomainError{Func: "pow", Arg: float64(x), Want: "non-negative for a fractional exponent"}
	}
	return Float(math.Pow(float64(x), c)), nil
}

// InvLogit computes 1 / (1 + exp(-x)) for a float64, stable in both tails.
func InvLogit(x float64) float64 {
	if x < 0 {
		e := math.Exp(x)
		return e / (1 + e)
	}
	return 1 / (1 + math.Exp(-x))
}

// Log1pExp computes log(1 + exp(x)) for a float64 without overflow.
func Log1pExp(x float64) float64 {
	if x > 0 {
		return x + math.Log1p(math.Exp(-x))
	}
	return math.Log1p(math.Exp(x))
}
