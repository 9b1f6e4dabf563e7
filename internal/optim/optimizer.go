// Package optim implements first-order optimizers over flat parameter vectors.
//
// This package provides:
//   - Optimizer interface: in-place descent steps
//   - SGD: gradient descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers minimize. To maximize a log density, pass the negated gradient.
//
// Example usage:
//
//	opt, _ := optim.NewAdam(len(theta), optim.AdamConfig{LR: 0.05})
//	for range steps {
//	    lp, grad, _ := ev.LogProbGrad(m, theta, nil, true)
//	    floats.Scale(-1, grad)
//	    _ = opt.Step(theta, grad)
//	}
package optim

import (
	"math"

	"github.com/pkg/errors"
)

// Errors returned by optimizers.
var (
	ErrInvalidConfig = errors.New("invalid optimizer configuration")
	ErrLength        = errors.New("parameter and gradient lengths differ from optimizer state")
	ErrNonFinite     = errors.New("non-finite gradient")
)

// Optimizer updates a parameter vector in place.
type Optimizer interface {
	// Step applies one descent update to params using grad.
	Step(params, grad []float64) error

	// Reset clears accumulated state such as momentum.
	Reset()

	// LR returns the current learning rate.
	LR() float64

	// SetLR changes the learning rate.
	SetLR(lr float64)
}

func checkStep(n int, params, grad []float64) error {
	if len(params) != n || len(grad) != n {
		return errors.Wrapf(ErrLength, "state %d, params %d, grad %d", n, len(params), len(grad))
	}
	for i, g := range grad {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return errors.Wrapf(ErrNonFinite, "component %d is %g", i, g)
		}
	}
	return nil
}
