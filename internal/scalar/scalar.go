// Package scalar defines the arithmetic contract shared by every AD scalar type.
//
// A type T satisfies Scalar[T] when it offers the operations below and returns its
// own type from each of them. The primitive Float, the forward-mode fwd.Dual[T]
// and the reverse-mode rev.Var all satisfy it, so code written once against
// Scalar[T] runs unchanged for plain values, tangents, tapes and any nesting of them:
//
//	func square[T scalar.Scalar[T]](x T) T { return x.Mul(x) }
//
//	square(scalar.Float(3))                    // 9
//	square(fwd.New(scalar.Float(3), 1))        // {9, 6}
//	square(tape.Leaf(3))                       // node on the tape
//
// Functions with a restricted domain (Log, Log1p, Sqrt, Pow) return an error
// instead of a NaN, so a bad argument is reported where it happens and travels
// unchanged through any wrapping type.
package scalar

// Scalar is the arithmetic contract implemented by every AD scalar family.
type Scalar[T any] interface {
	// Val returns the innermost primitive value.
	Val() float64

	// Const lifts c into the same family as the receiver.
	// Reverse-mode types place the constant on the receiver's tape.
	Const(c float64) T

	Neg() T
	Add(b T) T
	Sub(b T) T
	Mul(b T) T
	Div(b T) T
	Square() T

	Exp() T
	Sin() T
	Cos() T
	Tanh() T

	// InvLogit computes 1 / (1 + exp(-x)).
	InvLogit() T

	// Log1pExp computes log(1 + exp(x)) without overflow.
	Log1pExp() T

	Log() (T, error)
	Log1p() (T, error)
	Sqrt() (T, error)
	Pow(c float64) (T, error)
}
