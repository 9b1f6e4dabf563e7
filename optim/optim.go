// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides first-order optimizers over flat parameter vectors.
//
// Optimizers minimize; to climb a log density, pass the negated gradient:
//
//	opt, _ := optim.NewAdam(len(theta), optim.AdamConfig{LR: 0.05})
//	for range steps {
//	    _, grad, _ := ev.LogProbGrad(m, theta, nil, true)
//	    floats.Scale(-1, grad)
//	    _ = opt.Step(theta, grad)
//	}
package optim

import (
	"github.com/born-ml/agrad/internal/optim"
)

// Optimizer updates a parameter vector in place.
type Optimizer = optim.Optimizer

// SGD is gradient descent with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD.
type SGDConfig = optim.SGDConfig

// NewSGD creates an SGD optimizer for n parameters.
func NewSGD(n int, config SGDConfig) (*SGD, error) {
	return optim.NewSGD(n, config)
}

// Adam is the Adam optimizer with bias correction.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam.
type AdamConfig = optim.AdamConfig

// NewAdam creates an Adam optimizer for n parameters.
func NewAdam(n int, config AdamConfig) (*Adam, error) {
	return optim.NewAdam(n, config)
}

// Optimizer errors.
var (
	ErrInvalidConfig = optim.ErrInvalidConfig
	ErrLength        = optim.ErrLength
	ErrNonFinite     = optim.ErrNonFinite
)
