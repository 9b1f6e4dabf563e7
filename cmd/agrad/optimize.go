package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/agrad/internal/config"
	"github.com/born-ml/agrad/internal/model"
	"github.com/born-ml/agrad/internal/scalar"
	"github.com/born-ml/agrad/internal/services"
)

func runOptimize(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		yFlag     = fs.String("y", "", "comma-separated 0/1 outcomes")
		initTheta = fs.Float64("init", 0.5, "initial theta in (0, 1)")
		algorithm = fs.String("algorithm", services.Newton, "adam, sgd or newton")
		lr        = fs.Float64("lr", 0, "step size (0 selects the default)")
		maxIter   = fs.Int("max-iter", 0, "iteration limit (0 selects the default)")
		propto    = fs.Bool("propto", cfg.Propto, "drop constant terms of the density")
		logLevel  = fs.String("log-level", cfg.LogLevel.String(), "debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger(stderr, *logLevel)
	if err != nil {
		return err
	}
	y, err := parseOutcomes(*yFlag)
	if err != nil {
		return err
	}
	m, err := model.NewBernoulli(y)
	if err != nil {
		return err
	}

	res, err := services.Optimize(ctx, m, []float64{*initTheta}, logger, services.OptimizeConfig{
		Algorithm: *algorithm,
		LR:        *lr,
		MaxIter:   *maxIter,
		Propto:    *propto,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "theta=%.10g lp=%.10g iterations=%d converged=%t\n",
		scalar.InvLogit(res.Theta[0]), res.LP, res.Iterations, res.Converged)
	return nil
}
