package rev

// Op identifies the operation that produced a tape node.
type Op uint8

// Recorded operations.
const (
	OpLeaf Op = iota
	OpNeg
	OpSquare
	OpExp
	OpLog
	OpLog1p
	OpSqrt
	OpPow
	OpSin
	OpCos
	OpTanh
	OpInvLogit
	OpLog1pExp
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var opNames = [...]string{
	OpLeaf:     "leaf",
	OpNeg:      "neg",
	OpSquare:   "square",
	OpExp:      "exp",
	OpLog:      "log",
	OpLog1p:    "log1p",
	OpSqrt:     "sqrt",
	OpPow:      "pow",
	OpSin:      "sin",
	OpCos:      "cos",
	OpTanh:     "tanh",
	OpInvLogit: "inv_logit",
	OpLog1pExp: "log1p_exp",
	OpAdd:      "add",
	OpSub:      "sub",
	OpMul:      "mul",
	OpDiv:      "div",
}

// String returns the operation name.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Arity returns the number of parent nodes: 0 for leaves, 1 for unary, 2 for binary ops.
func (o Op) Arity() int {
	switch {
	case o == OpLeaf:
		return 0
	case o >= OpAdd:
		return 2
	default:
		return 1
	}
}
