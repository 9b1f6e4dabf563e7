// Package model defines the log-density functor contract and the drivers that
// differentiate it.
//
// A model is a log density written once, generically, against scalar.Scalar and
// instantiated for each scalar family a driver needs:
//
//	func myDensity[T scalar.Scalar[T]](theta []T, data []int, propto bool) (T, error) { ... }
//
//	prog, _ := model.New("my", []string{"mu"}, model.Family{
//	    Float:    myDensity[scalar.Float],
//	    Var:      myDensity[rev.Var],
//	    Dual:     myDensity[fwd.Dual[scalar.Float]],
//	    DualVar:  myDensity[fwd.Dual[rev.Var]],
//	    DualDual: myDensity[fwd.Dual[fwd.Dual[scalar.Float]]],
//	}, nil)
//
// The Evaluator then returns the log density and its gradient in one pass:
//
//	lp, grad, err := model.NewEvaluator().LogProbGrad(prog, theta, nil, true)
package model

import (
	"github.com/pkg/errors"

	"github.com/born-ml/agrad/internal/fwd"
	"github.com/born-ml/agrad/internal/rev"
	"github.com/born-ml/agrad/internal/scalar"
)

// Density is a log density over unconstrained parameters theta and integer data.
// propto asks the density to drop terms that do not depend on theta; what that
// means is up to the density.
type Density[T scalar.Scalar[T]] func(theta []T, data []int, propto bool) (T, error)

// Family holds one density instantiated for every scalar family the drivers use.
// Float and Var are required; the others enable the higher-order drivers.
type Family struct {
	Float    Density[scalar.Float]
	Var      Density[rev.Var]
	Dual     Density[fwd.Dual[scalar.Float]]
	DualVar  Density[fwd.Dual[rev.Var]]
	DualDual Density[fwd.Dual[fwd.Dual[scalar.Float]]]
}

// Model is what the drivers consume.
type Model interface {
	// Name identifies the model in errors and logs.
	Name() string

	// ParamNames returns one name per unconstrained parameter.
	ParamNames() []string

	// NumParams returns len(ParamNames()).
	NumParams() int

	// Unconstrain maps constrained parameter values to the unconstrained
	// vector the densities take.
	Unconstrain(constrained []float64) ([]float64, error)

	// Densities returns the instantiated densities.
	Densities() Family
}

// Program is a Model assembled from a Family.
type Program struct {
	name        string
	params      []string
	family      Family
	unconstrain func([]float64) ([]float64, error)
}

var _ Model = (*Program)(nil)

// New assembles a Program. unconstrain may be nil for models whose parameters
// are already unconstrained.
func New(name string, params []string, family Family, unconstrain func([]float64) ([]float64, error)) (*Program, error) {
	if family.Float == nil || family.Var == nil {
		return nil, errors.Wrapf(ErrIncompleteFamily, "model %s", name)
	}
	names := make([]string, len(params))
	copy(names, params)
	return &Program{
		name:        name,
		params:      names,
		family:      family,
		unconstrain: unconstrain,
	}, nil
}

// Name returns the model name.
func (p *Program) Name() string { return p.name }

// ParamNames returns a copy of the parameter names.
func (p *Program) ParamNames() []string {
	out := make([]string, len(p.params))
	copy(out, p.params)
	return out
}

// NumParams returns the number of unconstrained parameters.
func (p *Program) NumParams() int { return len(p.params) }

// Densities returns the instantiated densities.
func (p *Program) Densities() Family { return p.family }

// Unconstrain maps constrained values to unconstrained ones.
func (p *Program) Unconstrain(constrained []float64) ([]float64, error) {
	if len(constrained) != len(p.params) {
		return nil, errors.Wrapf(ErrParamCount, "model %s: got %d values, want %d", p.name, len(constrained), len(p.params))
	}
	if p.unconstrain == nil {
		out := make([]float64, len(constrained))
		copy(out, constrained)
		return out, nil
	}
	return p.unconstrain(constrained)
}

func checkParams(m Model, theta []float64) error {
	if len(theta) != m.NumParams() {
		return errors.Wrapf(ErrParamCount, "model %s: got %d parameters, want %d", m.Name(), len(theta), m.NumParams())
	}
	return nil
}
