package rev

import "fmt"

// node is one recorded operation. Parents always have smaller indices, so the
// arena order is a topological order of the expression graph.
type node struct {
	value   float64
	adjoint float64
	op      Op
	a, b    int     // parent indices (unused slots are -1)
	da, db  float64 // local partials captured at creation
	gen     uint32  // tape generation the node was created in
}

// Tape is the arena that owns every reverse-mode node.
//
// Operations on Var append nodes; Backward sweeps them in reverse creation order.
// Memory is reclaimed with Mark/Recover (or StartNested/RecoverNested), which truncate
// the arena while keeping its capacity for the next evaluation.
//
// Usage:
//
//	tape := rev.NewTape()
//	x := tape.Leaf(2)
//	y := x.Mul(x).Exp()
//	tape.Backward(y)
//	fmt.Println(x.Adj()) // 4e^4
//	tape.Clear()
//
// A Tape is not safe for concurrent use. Give every goroutine its own tape.
type Tape struct {
	nodes []node
	marks []int  // nested checkpoints, innermost last
	gen   uint32 // bumped on every rewind
}

// NewTape creates an empty tape.
func NewTape() *Tape {
	return &Tape{
		nodes: make([]node, 0, 256), // Pre-allocate for common case
	}
}

// Len returns the number of nodes on the tape.
func (t *Tape) Len() int {
	return len(t.nodes)
}

// Leaf appends an independent variable with the given value.
func (t *Tape) Leaf(value float64) Var {
	return t.push(OpLeaf, value, -1, 0, -1, 0)
}

// Leaves appends one leaf per value, in order.
func (t *Tape) Leaves(values []float64) []Var {
	vs := make([]Var, len(values))
	for i, x := range values {
		vs[i] = t.Leaf(x)
	}
	return vs
}

func (t *Tape) push(op Op, value float64, a int, da float64, b int, db float64) Var {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{
		value: value,
		op:    op,
		a:     a,
		b:     b,
		da:    da,
		db:    db,
		gen:   t.gen,
	})
	return Var{tape: t, id: id, gen: t.gen}
}

// node returns the node behind v, panicking on foreign or stale handles.
func (t *Tape) node(v Var) *node {
	if v.tape == nil {
		panic("rev: use of uninitialized Var")
	}
	if v.tape != t {
		panic("rev: Var belongs to a different tape")
	}
	if v.id >= len(t.nodes) || t.nodes[v.id].gen != v.gen {
		panic(fmt.Sprintf("rev: stale Var %d used after its tape region was recovered", v.id))
	}
	return &t.nodes[v.id]
}

// Backward runs the reverse sweep seeded at out.
//
// Algorithm:
//  1. Zero the adjoints of every node up to and including out
//  2. Set adjoint(out) = 1
//  3. Visit nodes in strictly descending creation order
//  4. For each node, add adjoint * local partial to each parent's adjoint
//
// Afterwards every node's Adj() is ∂out/∂node. The tape itself is not modified,
// so Backward may be called again with another output (e.g. the tangent of a
// Dual[Var]) to obtain a second set of adjoints.
func (t *Tape) Backward(out Var) {
	t.sweep(0, out)
}

// BackwardFrom runs the reverse sweep seeded at out over the nodes created at
// or after mark only. Adjoints of older nodes are neither reset nor updated,
// so a sweep inside a nested region leaves the enclosing computation intact.
func (t *Tape) BackwardFrom(mark int, out Var) {
	t.node(out)
	if mark < 0 || mark > out.id {
		panic(fmt.Sprintf("rev: backward mark %d outside [0, %d]", mark, out.id))
	}
	t.sweep(mark, out)
}

func (t *Tape) sweep(from int, out Var) {
	t.node(out)

	for i := from; i <= out.id; i++ {
		t.nodes[i].adjoint = 0
	}
	t.nodes[out.id].adjoint = 1

	for i := out.id; i >= from; i-- {
		n := &t.nodes[i]
		switch n.op.Arity() {
		case 2:
			if n.b >= from {
				t.nodes[n.b].adjoint += n.adjoint * n.db
			}
			fallthrough
		case 1:
			if n.a >= from {
				t.nodes[n.a].adjoint += n.adjoint * n.da
			}
		}
	}
}

// Gradient runs Backward(out) and returns the adjoints of wrt in order.
func (t *Tape) Gradient(out Var, wrt []Var) []float64 {
	t.Backward(out)
	return Adjoints(wrt)
}

// ZeroAdjoints resets every adjoint on the tape to 0.
func (t *Tape) ZeroAdjoints() {
	for i := range t.nodes {
		t.nodes[i].adjoint = 0
	}
}

// Mark returns a checkpoint that Recover can rewind to.
func (t *Tape) Mark() int {
	return len(t.nodes)
}

// Recover discards every node created after mark.
// Handles to discarded nodes become stale; using one panics.
func (t *Tape) Recover(mark int) {
	if mark < 0 || mark > len(t.nodes) {
		panic(fmt.Sprintf("rev: recover mark %d outside tape of length %d", mark, len(t.nodes)))
	}
	t.nodes = t.nodes[:mark]
	t.gen++
	for len(t.marks) > 0 && t.marks[len(t.marks)-1] > mark {
		t.marks = t.marks[:len(t.marks)-1]
	}
}

// StartNested opens a nested region. Nodes created until the matching
// RecoverNested are discarded by it.
func (t *Tape) StartNested() {
	t.marks = append(t.marks, len(t.nodes))
}

// RecoverNested closes the innermost nested region, discarding its nodes.
func (t *Tape) RecoverNested() {
	if len(t.marks) == 0 {
		panic("rev: RecoverNested without StartNested")
	}
	mark := t.marks[len(t.marks)-1]
	t.marks = t.marks[:len(t.marks)-1]
	t.Recover(mark)
}

// NestedDepth returns the number of open nested regions.
func (t *Tape) NestedDepth() int {
	return len(t.marks)
}

// Clear removes all nodes and nested regions. Capacity is preserved.
func (t *Tape) Clear() {
	t.nodes = t.nodes[:0]
	t.marks = t.marks[:0]
	t.gen++
}
