package optim

import (
	"math"

	"github.com/pkg/errors"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int       // Timestep for bias correction
	m     []float64 // First moment estimates
	v     []float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Running average coefficients (default: [0.9, 0.999])
	Eps   float64    // Numerical stability term (default: 1e-8)
}

// NewAdam creates an Adam optimizer for n parameters. Zero fields take their
// defaults.
func NewAdam(n int, config AdamConfig) (*Adam, error) {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	b1, b2 := config.Betas[0], config.Betas[1]
	if config.LR < 0 || b1 < 0 || b1 >= 1 || b2 < 0 || b2 >= 1 || config.Eps < 0 || n < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "adam: lr %g, betas %v, eps %g, n %d", config.LR, config.Betas, config.Eps, n)
	}

	return &Adam{
		lr:    config.LR,
		beta1: b1,
		beta2: b2,
		eps:   config.Eps,
		m:     make([]float64, n),
		v:     make([]float64, n),
	}, nil
}

// Step performs one update.
func (a *Adam) Step(params, grad []float64) error {
	if err := checkStep(len(a.m), params, grad); err != nil {
		return err
	}
	a.t++

	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	for i, g := range grad {
		a.m[i] = a.beta1*a.m[i] + (1-a.beta1)*g
		a.v[i] = a.beta2*a.v[i] + (1-a.beta2)*g*g

		mHat := a.m[i] / biasCorrection1
		vHat := max(a.v[i]/biasCorrection2, 0)

		params[i] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
	}
	return nil
}

// Reset clears both moment estimates and the timestep.
func (a *Adam) Reset() {
	clear(a.m)
	clear(a.v)
	a.t = 0
}

// LR returns the learning rate.
func (a *Adam) LR() float64 { return a.lr }

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) { a.lr = lr }

// Timestep returns the number of steps taken since creation or Reset.
func (a *Adam) Timestep() int { return a.t }
