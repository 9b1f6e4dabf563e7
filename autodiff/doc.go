// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides forward- and reverse-mode automatic differentiation
// of scalar functions, matrices of AD scalars, and a driver that returns a log
// density together with its gradient.
//
// # Overview
//
// Every scalar type implements Scalar, so a function written once against the
// contract runs on:
//   - Float: plain float64 values
//   - Dual[T]: forward mode, a value and a tangent of type T
//   - Var: reverse mode, a handle to a node on a Tape
//
// Dual nests. Dual[Dual[Float]] gives second derivatives in one forward pass;
// Dual[Var] gives Hessian-vector products with one forward pass and two sweeps.
//
// # Reverse Mode
//
//	tape := autodiff.NewTape()
//	x := tape.Leaf(2)
//	y, _ := x.Mul(x).Log()   // log(x²)
//	tape.Backward(y)
//	fmt.Println(x.Adj())     // 1
//
// Mark and Recover rewind the tape to a checkpoint; StartNested and
// RecoverNested do the same with a stack of checkpoints. A Var recorded after
// the checkpoint must not be used once its region is recovered.
//
// # Forward Mode
//
//	f := func(x autodiff.Dual[autodiff.Float]) (autodiff.Dual[autodiff.Float], error) {
//	    return x.Mul(x).Sin(), nil
//	}
//	v, d, _ := autodiff.Derivative(f, 0.5)
//
// # Matrices
//
// Matrix[T] is column-major. Block slices it with 1-based indices and reports
// out-of-range arguments as *RangeError:
//
//	b, err := autodiff.Block(m, 2, 2, 2, 2)
//
// # Log Densities
//
// A Model bundles one density instantiated for each scalar family. The
// Evaluator records on a private tape and rewinds it after every call:
//
//	ev := autodiff.NewEvaluator(nil)
//	lp, grad, err := ev.LogProbGrad(m, theta, nil, true)
package autodiff
