package optim

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// SGD implements gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	lr       float64
	momentum float64
	velocity []float64
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor in [0, 1) (default: 0)
}

// NewSGD creates an SGD optimizer for n parameters.
func NewSGD(n int, config SGDConfig) (*SGD, error) {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.LR < 0 || config.Momentum < 0 || config.Momentum >= 1 || n < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "sgd: lr %g, momentum %g, n %d", config.LR, config.Momentum, n)
	}
	return &SGD{
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: make([]float64, n),
	}, nil
}

// Step performs one update.
func (s *SGD) Step(params, grad []float64) error {
	if err := checkStep(len(s.velocity), params, grad); err != nil {
		return err
	}
	if s.momentum == 0 {
		floats.AddScaled(params, -s.lr, grad)
		return nil
	}
	floats.Scale(s.momentum, s.velocity)
	floats.Add(s.velocity, grad)
	floats.AddScaled(params, -s.lr, s.velocity)
	return nil
}

// Reset zeroes the velocity.
func (s *SGD) Reset() {
	clear(s.velocity)
}

// LR returns the learning rate.
func (s *SGD) LR() float64 { return s.lr }

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) { s.lr = lr }
