// Package rev implements reverse-mode automatic differentiation on an arena tape.
//
// A Var is a small handle (tape pointer + node index) into a Tape. Arithmetic on
// Vars appends nodes that record their parents and local partial derivatives; no
// derivative is propagated until Tape.Backward sweeps the tape from an output
// back to the leaves.
//
// Copying a Var copies the handle, never the node, so any number of containers
// (matrix blocks, slices) can alias the same node without double counting.
package rev

import "github.com/born-ml/agrad/internal/scalar"

// Var is a reverse-mode AD scalar. The zero Var is not usable.
type Var struct {
	tape *Tape
	id   int
	gen  uint32
}

var _ scalar.Scalar[Var] = Var{}

// Tape returns the tape holding v.
func (v Var) Tape() *Tape { return v.tape }

// ID returns v's index on its tape.
func (v Var) ID() int { return v.id }

// Value returns the value of v.
func (v Var) Value() float64 { return v.tape.node(v).value }

// Val returns the value of v.
func (v Var) Val() float64 { return v.Value() }

// Adj returns the adjoint accumulated by the last Backward sweep.
func (v Var) Adj() float64 { return v.tape.node(v).adjoint }

// Op returns the operation that produced v.
func (v Var) Op() Op { return v.tape.node(v).op }

// Const places c on v's tape as a leaf.
func (v Var) Const(c float64) Var {
	v.tape.node(v)
	return v.tape.Leaf(c)
}

func (v Var) unary(op Op, value, partial float64) Var {
	return v.tape.push(op, value, v.id, partial, -1, 0)
}

// binary records an operation with two parents after checking both handles.
func (v Var) binary(op Op, b Var, value, da, db float64) Var {
	v.tape.node(b)
	return v.tape.push(op, value, v.id, da, b.id, db)
}

// Neg returns -v.
func (v Var) Neg() Var {
	return v.unary(OpNeg, -v.Value(), -1)
}

// Add returns v + b.
func (v Var) Add(b Var) Var {
	return v.binary(OpAdd, b, v.Value()+b.Value(), 1, 1)
}

// Sub returns v - b.
func (v Var) Sub(b Var) Var {
	return v.binary(OpSub, b, v.Value()-b.Value(), 1, -1)
}

// Mul returns v * b.
//
//	∂(ab)/∂a = b, ∂(ab)/∂b = a
func (v Var) Mul(b Var) Var {
	x, y := v.Value(), b.Value()
	return v.binary(OpMul, b, x*y, y, x)
}

// Div returns v / b.
//
//	∂(a/b)/∂a = 1/b, ∂(a/b)/∂b = -a/b²
func (v Var) Div(b Var) Var {
	x, y := v.Value(), b.Value()
	return v.binary(OpDiv, b, x/y, 1/y, -x/(y*y))
}

// Square returns v².
func (v Var) Square() Var {
	x := v.Value()
	return v.unary(OpSquare, x*x, 2*x)
}
