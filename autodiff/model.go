// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import (
	"log/slog"

	"github.com/born-ml/agrad/internal/model"
)

// Density is a log density over unconstrained parameters.
type Density[T Scalar[T]] = model.Density[T]

// Family holds one density per scalar family.
type Family = model.Family

// Model is what the Evaluator consumes.
type Model = model.Model

// Program is a Model assembled from a Family.
type Program = model.Program

// Evaluator computes log densities and gradients on a private tape.
type Evaluator = model.Evaluator

// EvaluationError wraps a failure raised by a density.
type EvaluationError = model.EvaluationError

// Model errors.
var (
	ErrEvaluation       = model.ErrEvaluation
	ErrParamCount       = model.ErrParamCount
	ErrIncompleteFamily = model.ErrIncompleteFamily
	ErrUnsupported      = model.ErrUnsupported
)

// NewModel assembles a Program from a Family. unconstrain may be nil.
func NewModel(name string, params []string, family Family, unconstrain func([]float64) ([]float64, error)) (*Program, error) {
	return model.New(name, params, family, unconstrain)
}

// NewEvaluator creates an Evaluator that logs failed evaluations to logger.
// A nil logger selects slog.Default.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	return model.NewEvaluator(model.WithLogger(logger))
}
