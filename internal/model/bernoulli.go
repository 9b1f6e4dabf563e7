package model

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/agrad/internal/fwd"
	"github.com/born-ml/agrad/internal/rev"
	"github.com/born-ml/agrad/internal/scalar"
)

// NewBernoulli builds the model
//
//	theta ~ beta(1, 1)
//	y[n]  ~ bernoulli(theta)
//
// over the single unconstrained parameter u = logit(theta). The density includes
// the log Jacobian log(theta) + log(1 - theta) of the inverse-logit transform:
//
//	lp(u) = (s + 1) log(theta) + (N - s + 1) log(1 - theta),   s = sum(y)
//
// beta(1, 1) is flat, and every remaining term depends on theta, so propto
// changes nothing for this model.
func NewBernoulli(y []int) (*Program, error) {
	s := 0
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, errors.Errorf("bernoulli: y[%d] is %d, but must be 0 or 1", i, v)
		}
		s += v
	}
	n := len(y)

	return New("bernoulli", []string{"theta"}, Family{
		Float:    bernoulliDensity[scalar.Float](n, s),
		Var:      bernoulliDensity[rev.Var](n, s),
		Dual:     bernoulliDensity[fwd.Dual[scalar.Float]](n, s),
		DualVar:  bernoulliDensity[fwd.Dual[rev.Var]](n, s),
		DualDual: bernoulliDensity[fwd.Dual[fwd.Dual[scalar.Float]]](n, s),
	}, logitTransform)
}

func bernoulliDensity[T scalar.Scalar[T]](n, s int) Density[T] {
	return func(theta []T, _ []int, _ bool) (T, error) {
		var zero T
		if len(theta) != 1 {
			return zero, errors.Wrapf(ErrParamCount, "bernoulli: got %d parameters, want 1", len(theta))
		}
		u := theta[0]

		// log(inv_logit(u)) = -log1p(exp(-u)), log(1 - inv_logit(u)) = -log1p(exp(u))
		logTheta := u.Neg().Log1pExp().Neg()
		log1mTheta := u.Log1pExp().Neg()

		lp := scalar.Scale(logTheta, float64(s+1)).Add(scalar.Scale(log1mTheta, float64(n-s+1)))
		return lp, nil
	}
}

// logitTransform maps theta in (0, 1) to logit(theta).
func logitTransform(constrained []float64) ([]float64, error) {
	theta := constrained[0]
	if !(theta > 0 && theta < 1) {
		return nil, errors.Errorf("bernoulli: theta is %g, but must be in (0, 1)", theta)
	}
	return []float64{math.Log(theta / (1 - theta))}, nil
}
