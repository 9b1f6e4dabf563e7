package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/agrad/internal/config"
	"github.com/born-ml/agrad/internal/model"
	"github.com/born-ml/agrad/internal/services"
)

func runLPG(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("lpg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		yFlag     = fs.String("y", "", "comma-separated 0/1 outcomes")
		drawsFlag = fs.String("draws", "-", "CSV file of theta draws, \"-\" for stdin")
		header    = fs.Bool("header", false, "skip the first line of the draws file")
		workers   = fs.Int("workers", cfg.Workers, "goroutines evaluating draws")
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
	if cfg.EnvFile != "" {
		logger.Debug("loaded env file", slog.String("path", cfg.EnvFile))
	}

	y, err := parseOutcomes(*yFlag)
	if err != nil {
		return err
	}
	m, err := model.NewBernoulli(y)
	if err != nil {
		return err
	}

	in := stdin
	if *drawsFlag != "-" {
		f, err := os.Open(*drawsFlag)
		if err != nil {
			return errors.Wrap(err, "open draws")
		}
		defer f.Close()
		in = f
	}
	draws, err := readDraws(in, *header)
	if err != nil {
		return err
	}

	w := services.NewCSVWriter(stdout)
	err = services.StandaloneLPG(ctx, m, draws, w, logger, services.Config{Workers: *workers, Propto: *propto})
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}

func newLogger(w io.Writer, levelName string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, errors.Wrap(err, "-log-level")
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func parseOutcomes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("-y is required")
	}
	fields := strings.Split(s, ",")
	y := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "-y: element %d", i+1)
		}
		y[i] = v
	}
	return y, nil
}

// readDraws parses one draw per CSV record. An empty input yields an empty
// matrix so the service can report it.
func readDraws(r io.Reader, skipHeader bool) (mat.Matrix, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read draws")
	}
	if skipHeader && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return &mat.Dense{}, nil
	}

	cols := len(records[0])
	data := make([]float64, 0, len(records)*cols)
	for i, rec := range records {
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "draws: line %d, column %d", i+1, j+1)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(records), cols, data), nil
}
