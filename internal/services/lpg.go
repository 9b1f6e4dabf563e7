// Package services runs gradient evaluations over batches of stored draws.
package services

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/agrad/internal/model"
	"github.com/born-ml/agrad/internal/parallel"
)

// Errors returned by StandaloneLPG before any draw is evaluated.
var (
	ErrEmptyDraws      = errors.New("empty set of draws from fitted model")
	ErrWrongParamCount = errors.New("wrong number of parameter values in draws from fitted model")
)

// LPColumn names the log density column of the output.
const LPColumn = "lp__"

// Config controls a batch run.
type Config struct {
	// Workers is the number of goroutines evaluating draws. Each owns its
	// own Evaluator. Values below 2 evaluate on the calling goroutine.
	Workers int

	// Propto is passed to the density.
	Propto bool
}

// DefaultConfig evaluates sequentially with propto=true.
func DefaultConfig() Config {
	return Config{Workers: 1, Propto: true}
}

// StandaloneLPG recomputes the log density and its gradient for each draw of
// constrained parameter values, one row per draw and one column per parameter.
//
// w receives a header of LPColumn followed by the model's parameter names, then
// one row per draw holding lp followed by the gradient, in draw order. The
// gradient is with respect to the unconstrained parameters.
//
// The first failing draw stops the run: rows before it have been written, and
// the returned error wraps the cause. Cancelling ctx stops the run between draws.
// A nil draws matrix, including a nil *mat.Dense, is reported as ErrEmptyDraws.
func StandaloneLPG(ctx context.Context, m model.Model, draws mat.Matrix, w Writer, logger *slog.Logger, cfg Config) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "standalone_lpg"), slog.String("model", m.Name()))

	var rows, cols int
	if !isNil(draws) {
		rows, cols = draws.Dims()
	}
	if rows == 0 || cols == 0 {
		logger.Error(ErrEmptyDraws.Error())
		return ErrEmptyDraws
	}
	if cols != m.NumParams() {
		err := errors.Wrapf(ErrWrongParamCount, "expecting %d columns, found %d columns", m.NumParams(), cols)
		logger.Error(err.Error())
		return err
	}

	header := append([]string{LPColumn}, m.ParamNames()...)
	if err := w.Header(header); err != nil {
		return errors.Wrap(err, "standalone_lpg: write header")
	}

	results := make([]result, rows)
	parallel.ForSpans(rows, func(s parallel.Span) {
		e := model.NewEvaluator(model.WithLogger(logger))
		for i := s.Start; i < s.End; i++ {
			if err := ctx.Err(); err != nil {
				results[i].err = errors.Wrapf(err, "draw %d", i+1)
				return
			}
			results[i] = evaluate(e, m, draws, i, cfg.Propto)
			if results[i].err != nil {
				return
			}
		}
	}, parallel.Workers(cfg.Workers))

	for i, r := range results {
		if r.err != nil {
			logger.Log(ctx, r.level, "draw failed", slog.Int("draw", i+1), slog.String("error", r.err.Error()))
			return r.err
		}
		if err := w.Row(r.values); err != nil {
			return errors.Wrapf(err, "standalone_lpg: write draw %d", i+1)
		}
	}
	logger.Debug("draws evaluated", slog.Int("draws", rows), slog.Int("workers", max(cfg.Workers, 1)))
	return nil
}

type result struct {
	values []float64
	err    error
	level  slog.Level
}

func evaluate(e *model.Evaluator, m model.Model, draws mat.Matrix, i int, propto bool) result {
	constrained := mat.Row(nil, i, draws)
	theta, err := m.Unconstrain(constrained)
	if err != nil {
		return result{err: errors.Wrapf(err, "draw %d: unconstrain", i+1), level: slog.LevelError}
	}

	lp, grad, err := e.LogProbGrad(m, theta, nil, propto)
	if err != nil {
		// Density rejections log at Info.
		return result{err: errors.Wrapf(err, "draw %d", i+1), level: slog.LevelInfo}
	}
	return result{values: append([]float64{lp}, grad...)}
}

// isNil reports whether m is nil or wraps a nil pointer.
func isNil(m mat.Matrix) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
