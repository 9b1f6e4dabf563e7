package services

import (
	"context"
	"log/slog"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/agrad/internal/model"
	"github.com/born-ml/agrad/internal/optim"
)

// Optimization algorithms.
const (
	Adam   = "adam"
	SGD    = "sgd"
	Newton = "newton"
)

// ErrUnknownAlgorithm is returned for an unrecognised OptimizeConfig.Algorithm.
var ErrUnknownAlgorithm = errors.New("unknown optimization algorithm")

// OptimizeConfig controls Optimize. Zero fields take their defaults.
type OptimizeConfig struct {
	Algorithm string  // Adam, SGD or Newton (default: Adam)
	LR        float64 // Step size for Adam and SGD, and for Newton's fallback steps (default: 0.1)
	MaxIter   int     // Iteration limit (default: 2000)
	Tol       float64 // Converged once the largest gradient component is below Tol (default: 1e-8)
	Propto    bool    // Passed to the density.
}

func (c OptimizeConfig) withDefaults() OptimizeConfig {
	if c.Algorithm == "" {
		c.Algorithm = Adam
	}
	if c.LR == 0 {
		c.LR = 0.1
	}
	if c.MaxIter == 0 {
		c.MaxIter = 2000
	}
	if c.Tol == 0 {
		c.Tol = 1e-8
	}
	return c
}

// OptimizeResult is the outcome of Optimize.
type OptimizeResult struct {
	Theta      []float64 // Unconstrained parameters at the last iterate.
	LP         float64   // Log density at Theta.
	GradNorm   float64   // Largest absolute gradient component at Theta.
	Iterations int       // Steps taken.
	Converged  bool
}

// Optimize climbs the log density of m from the constrained starting point init.
//
// Adam and SGD take gradient steps. Newton solves against the negated Hessian
// and falls back to a gradient step of size LR where it is not positive
// definite. Running out of iterations is not an error; check Converged.
func Optimize(ctx context.Context, m model.Model, init []float64, logger *slog.Logger, cfg OptimizeConfig) (*OptimizeResult, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "optimize"), slog.String("model", m.Name()), slog.String("algorithm", cfg.Algorithm))

	theta, err := m.Unconstrain(init)
	if err != nil {
		return nil, errors.Wrap(err, "optimize: initial values")
	}
	n := len(theta)

	var opt optim.Optimizer
	switch cfg.Algorithm {
	case Adam:
		opt, err = optim.NewAdam(n, optim.AdamConfig{LR: cfg.LR})
	case SGD:
		opt, err = optim.NewSGD(n, optim.SGDConfig{LR: cfg.LR})
	case Newton:
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", cfg.Algorithm)
	}
	if err != nil {
		return nil, err
	}

	ev := model.NewEvaluator(model.WithLogger(logger))
	evaluate := func() (lp float64, grad []float64, h *mat.SymDense, err error) {
		if opt == nil {
			return ev.Hessian(m, theta, nil, cfg.Propto)
		}
		lp, grad, err = ev.LogProbGrad(m, theta, nil, cfg.Propto)
		return lp, grad, nil, err
	}
	move := func(grad []float64, h *mat.SymDense) error {
		if opt != nil {
			ascent := append([]float64(nil), grad...)
			floats.Scale(-1, ascent)
			return opt.Step(theta, ascent)
		}
		if !newtonStep(theta, grad, h) {
			logger.Debug("hessian not negative definite, taking gradient step")
			floats.AddScaled(theta, cfg.LR, grad)
		}
		return nil
	}

	res := &OptimizeResult{}
	for it := 0; ; it++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "optimize: iteration %d", it)
		}
		lp, grad, h, err := evaluate()
		if err != nil {
			logger.Error("optimization failed", slog.Int("iteration", it), slog.String("error", err.Error()))
			return nil, errors.Wrapf(err, "optimize: iteration %d", it)
		}
		res.LP, res.GradNorm, res.Iterations = lp, gradNorm(grad), it
		if res.GradNorm < cfg.Tol {
			res.Converged = true
			break
		}
		if it == cfg.MaxIter {
			break
		}
		if it%100 == 0 {
			logger.Debug("optimizing", slog.Int("iteration", it), slog.Float64("lp", lp), slog.Float64("grad_norm", res.GradNorm))
		}
		if err := move(grad, h); err != nil {
			return nil, errors.Wrapf(err, "optimize: iteration %d", it)
		}
	}
	res.Theta = append([]float64(nil), theta...)

	logger.Info("optimization finished",
		slog.Bool("converged", res.Converged),
		slog.Int("iterations", res.Iterations),
		slog.Float64("lp", res.LP),
	)
	return res, nil
}

// newtonStep moves theta to theta + (-H)⁻¹ grad. It reports false, leaving
// theta unchanged, when -H has no Cholesky factorization.
func newtonStep(theta, grad []float64, h *mat.SymDense) bool {
	n := len(theta)
	neg := mat.NewSymDense(n, nil)
	neg.ScaleSym(-1, h)

	var chol mat.Cholesky
	if !chol.Factorize(neg) {
		return false
	}
	var d mat.VecDense
	if err := chol.SolveVecTo(&d, mat.NewVecDense(n, append([]float64(nil), grad...))); err != nil {
		return false
	}
	for i := range theta {
		theta[i] += d.AtVec(i)
	}
	return true
}

func gradNorm(grad []float64) float64 {
	if len(grad) == 0 {
		return 0
	}
	return floats.Norm(grad, math.Inf(1))
}
