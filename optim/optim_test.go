// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/agrad/autodiff"
	"github.com/born-ml/agrad/optim"
)

// TestAdam_ClimbsLogDensity maximizes lp = -(mu - 2)² through the public API.
func TestAdam_ClimbsLogDensity(t *testing.T) {
	tape := autodiff.NewTape()
	opt, err := optim.NewAdam(1, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	mu := []float64{0}
	for i := 0; i < 500; i++ {
		mark := tape.Mark()
		x := tape.Leaf(mu[0])
		lp := x.Sub(x.Const(2)).Square().Neg()
		tape.Backward(lp)
		grad := []float64{-x.Adj()}
		tape.Recover(mark)

		require.NoError(t, opt.Step(mu, grad))
	}
	assert.InDelta(t, 2.0, mu[0], 1e-2)
	assert.Equal(t, 0, tape.Len())
}

func TestSGD_RejectsBadMomentum(t *testing.T) {
	_, err := optim.NewSGD(1, optim.SGDConfig{Momentum: -0.5})
	assert.ErrorIs(t, err, optim.ErrInvalidConfig)
}
