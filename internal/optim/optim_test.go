package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/agrad/internal/optim"
)

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	opt, err := optim.NewSGD(1, optim.SGDConfig{LR: 0.1})
	require.NoError(t, err)

	x := []float64{2.0}
	require.NoError(t, opt.Step(x, []float64{1.0}))

	// x_new = 2.0 - 0.1 * 1.0
	assert.InDelta(t, 1.9, x[0], 1e-15)
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	opt, err := optim.NewSGD(1, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, err)

	x := []float64{1.0}

	// v_1 = 1.0, x_1 = 1.0 - 0.1 * 1.0
	require.NoError(t, opt.Step(x, []float64{1.0}))
	assert.InDelta(t, 0.9, x[0], 1e-15)

	// v_2 = 0.9 * 1.0 + 1.0 = 1.9, x_2 = 0.9 - 0.1 * 1.9
	require.NoError(t, opt.Step(x, []float64{1.0}))
	assert.InDelta(t, 0.71, x[0], 1e-15)

	// After Reset the velocity starts from zero again.
	opt.Reset()
	require.NoError(t, opt.Step(x, []float64{1.0}))
	assert.InDelta(t, 0.61, x[0], 1e-15)
}

// TestSGD_GetSetLR tests learning rate getter/setter.
func TestSGD_GetSetLR(t *testing.T) {
	opt, err := optim.NewSGD(1, optim.SGDConfig{})
	require.NoError(t, err)
	assert.Equal(t, 0.01, opt.LR())

	opt.SetLR(0.001)
	assert.Equal(t, 0.001, opt.LR())
}

// TestAdam_SimpleUpdate tests the first Adam step.
func TestAdam_SimpleUpdate(t *testing.T) {
	opt, err := optim.NewAdam(1, optim.AdamConfig{LR: 0.001})
	require.NoError(t, err)

	x := []float64{1.0}
	require.NoError(t, opt.Step(x, []float64{1.0}))

	// m_hat = v_hat = 1 after bias correction, so the step is lr / (1 + eps).
	assert.InDelta(t, 0.999, x[0], 1e-9)
	assert.Equal(t, 1, opt.Timestep())
}

// TestAdam_BiasCorrection checks that the step size stays near lr while the
// gradient is constant.
func TestAdam_BiasCorrection(t *testing.T) {
	opt, err := optim.NewAdam(1, optim.AdamConfig{LR: 0.01})
	require.NoError(t, err)

	x := []float64{0}
	for i := 0; i < 10; i++ {
		prev := x[0]
		require.NoError(t, opt.Step(x, []float64{3}))
		assert.InDelta(t, 0.01, prev-x[0], 1e-8, "step %d", i+1)
	}

	opt.Reset()
	assert.Equal(t, 0, opt.Timestep())
}

// TestConvergence_SimpleQuadratic minimizes f(x) = Σ (x_i - c_i)².
func TestConvergence_SimpleQuadratic(t *testing.T) {
	target := []float64{3, -1}
	grad := func(x []float64) []float64 {
		g := make([]float64, len(x))
		for i := range x {
			g[i] = 2 * (x[i] - target[i])
		}
		return g
	}

	sgd, err := optim.NewSGD(2, optim.SGDConfig{LR: 0.1, Momentum: 0.5})
	require.NoError(t, err)
	adam, err := optim.NewAdam(2, optim.AdamConfig{LR: 0.1})
	require.NoError(t, err)

	for name, opt := range map[string]optim.Optimizer{"sgd": sgd, "adam": adam} {
		t.Run(name, func(t *testing.T) {
			x := []float64{0, 0}
			for i := 0; i < 1000; i++ {
				require.NoError(t, opt.Step(x, grad(x)))
			}
			assert.InDeltaSlice(t, target, x, 1e-2)
		})
	}
}

func TestOptimizer_Validation(t *testing.T) {
	_, err := optim.NewSGD(1, optim.SGDConfig{Momentum: 1})
	assert.ErrorIs(t, err, optim.ErrInvalidConfig)
	_, err = optim.NewAdam(1, optim.AdamConfig{Betas: [2]float64{0.9, 1}})
	assert.ErrorIs(t, err, optim.ErrInvalidConfig)
	_, err = optim.NewAdam(1, optim.AdamConfig{LR: -1})
	assert.ErrorIs(t, err, optim.ErrInvalidConfig)

	opt, err := optim.NewAdam(2, optim.AdamConfig{})
	require.NoError(t, err)
	assert.ErrorIs(t, opt.Step([]float64{1}, []float64{1}), optim.ErrLength)

	x := []float64{1, 2}
	assert.ErrorIs(t, opt.Step(x, []float64{math.NaN(), 0}), optim.ErrNonFinite)
	assert.Equal(t, []float64{1, 2}, x, "a rejected step leaves params untouched")
}
