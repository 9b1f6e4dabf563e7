package model

import (
	"log/slog"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	fscalar "gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/agrad/internal/fwd"
	"github.com/born-ml/agrad/internal/rev"
	"github.com/born-ml/agrad/internal/scalar"
)

// ForwardGradient computes the gradient with forward mode, one pass per
// parameter. It needs no tape and serves as an independent check of LogProbGrad.
func ForwardGradient(m Model, theta []float64, data []int, propto bool) (float64, []float64, error) {
	if err := checkParams(m, theta); err != nil {
		return 0, nil, err
	}
	f := m.Densities().Dual
	if f == nil {
		return 0, nil, errors.Wrapf(ErrUnsupported, "model %s: forward gradient", m.Name())
	}

	var lp float64
	grad := make([]float64, len(theta))
	in := make([]fwd.Dual[scalar.Float], len(theta))
	for k := range theta {
		for i, x := range theta {
			in[i] = fwd.Constant(scalar.Float(x))
		}
		in[k] = fwd.Variable(scalar.Float(theta[k]))

		out, err := f(in, data, propto)
		if err != nil {
			return 0, nil, &EvaluationError{Model: m.Name(), Err: err}
		}
		lp = out.Val()
		grad[k] = out.Tangent().Val()
	}
	if len(theta) == 0 {
		v, err := LogProb(m, theta, data, propto)
		return v, grad, err
	}
	return lp, grad, nil
}

// DirectionalSecond evaluates f, ∇f·v and vᵀ(∇²f)v in a single nested forward
// pass with Dual[Dual[Float]] parameters.
func DirectionalSecond(m Model, theta, v []float64, data []int, propto bool) (value, first, second float64, err error) {
	if err = checkParams(m, theta); err != nil {
		return 0, 0, 0, err
	}
	if err = checkParams(m, v); err != nil {
		return 0, 0, 0, err
	}
	f := m.Densities().DualDual
	if f == nil {
		return 0, 0, 0, errors.Wrapf(ErrUnsupported, "model %s: directional second derivative", m.Name())
	}

	in := make([]fwd.Dual[fwd.Dual[scalar.Float]], len(theta))
	for i := range theta {
		x, d := scalar.Float(theta[i]), scalar.Float(v[i])
		in[i] = fwd.New(fwd.New(x, d), fwd.New(d, 0))
	}
	out, err := f(in, data, propto)
	if err != nil {
		return 0, 0, 0, &EvaluationError{Model: m.Name(), Err: err}
	}
	return out.Val(), out.Tangent().Val(), out.Tangent().Tangent().Val(), nil
}

// HessianVectorProduct returns the log density, its gradient and (∇²f)v using
// Dual[Var] parameters: one forward pass and two backward sweeps.
func (e *Evaluator) HessianVectorProduct(m Model, theta, v []float64, data []int, propto bool) (lp float64, grad, hv []float64, err error) {
	if err = checkParams(m, theta); err != nil {
		return 0, nil, nil, err
	}
	if err = checkParams(m, v); err != nil {
		return 0, nil, nil, err
	}
	f := m.Densities().DualVar
	if f == nil {
		return 0, nil, nil, errors.Wrapf(ErrUnsupported, "model %s: Hessian-vector product", m.Name())
	}

	mark := e.tape.Mark()
	e.tape.StartNested()
	defer e.tape.RecoverNested()

	x := e.tape.Leaves(theta)
	in := make([]fwd.Dual[rev.Var], len(x))
	for i := range x {
		in[i] = fwd.New(x[i], x[i].Const(v[i]))
	}
	out, err := f(in, data, propto)
	if err != nil {
		return 0, nil, nil, e.fail(m, "hessian_vector_product", err)
	}

	e.tape.BackwardFrom(mark, out.Value())
	grad = rev.Adjoints(x)
	e.tape.BackwardFrom(mark, out.Tangent())
	hv = rev.Adjoints(x)
	return out.Val(), grad, hv, nil
}

// Hessian returns the log density, gradient and full Hessian, built column by
// column from Hessian-vector products with unit vectors.
func (e *Evaluator) Hessian(m Model, theta []float64, data []int, propto bool) (float64, []float64, *mat.SymDense, error) {
	if err := checkParams(m, theta); err != nil {
		return 0, nil, nil, err
	}
	n := len(theta)
	if n == 0 {
		lp, grad, err := e.LogProbGrad(m, theta, data, propto)
		return lp, grad, &mat.SymDense{}, err
	}

	cols := make([][]float64, n)
	var (
		lp   float64
		grad []float64
	)
	unit := make([]float64, n)
	for j := 0; j < n; j++ {
		unit[j] = 1
		v, g, hv, err := e.HessianVectorProduct(m, theta, unit, data, propto)
		unit[j] = 0
		if err != nil {
			return 0, nil, nil, err
		}
		lp, grad, cols[j] = v, g, hv
	}

	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			h.SetSym(i, j, 0.5*(cols[j][i]+cols[i][j]))
		}
	}
	return lp, grad, h, nil
}

// GradientFD approximates the gradient with central finite differences on the
// Float density. step <= 0 selects gonum's default step.
func GradientFD(m Model, theta []float64, data []int, propto bool, step float64) ([]float64, error) {
	if err := checkParams(m, theta); err != nil {
		return nil, err
	}

	var evalErr error
	f := func(x []float64) float64 {
		if evalErr != nil {
			return 0
		}
		v, err := LogProb(m, x, data, propto)
		if err != nil {
			evalErr = err
		}
		return v
	}
	settings := &fd.Settings{Formula: fd.Central}
	if step > 0 {
		settings.Step = step
	}
	grad := fd.Gradient(nil, f, theta, settings)
	if evalErr != nil {
		return nil, evalErr
	}
	return grad, nil
}

// CheckGradient compares LogProbGrad against GradientFD and fails with
// ErrGradientMismatch when any component differs by more than tol, absolute or
// relative. Each mismatch is logged.
func (e *Evaluator) CheckGradient(m Model, theta []float64, data []int, propto bool, tol float64) error {
	_, grad, err := e.LogProbGrad(m, theta, data, propto)
	if err != nil {
		return err
	}
	approx, err := GradientFD(m, theta, data, propto, 0)
	if err != nil {
		return err
	}

	bad := -1
	for i := range grad {
		if fscalar.EqualWithinAbsOrRel(grad[i], approx[i], tol, tol) {
			continue
		}
		e.logger.Warn("gradient mismatch",
			slog.String("model", m.Name()),
			slog.Int("param", i),
			slog.Float64("reverse", grad[i]),
			slog.Float64("finite_diff", approx[i]),
		)
		if bad < 0 {
			bad = i
		}
	}
	if bad >= 0 {
		return errors.Wrapf(ErrGradientMismatch, "model %s: parameter %d: %g vs %g", m.Name(), bad, grad[bad], approx[bad])
	}
	return nil
}
