// Package main provides the agrad CLI.
//
// Usage:
//
//	agrad version
//	agrad lpg -y 0,1,0,0,0,0,0,0,0,1 -draws theta.csv
//	agrad optimize -y 0,1,0,0,0,0,0,0,0,1 -algorithm newton
//
// lpg recomputes lp__ and its gradient for each draw of the Bernoulli model and
// writes a CSV table to stdout. Draws are read from a file, or stdin when
// -draws is "-", one draw per line.
//
// optimize finds the posterior mode of the same model and prints theta.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

const version = "v0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "agrad: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "agrad %s\n", version)
		return nil
	case "lpg":
		return runLPG(ctx, args[1:], stdin, stdout, stderr)
	case "optimize":
		return runOptimize(ctx, args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "agrad - automatic differentiation for log densities")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  lpg        Log density and gradient for stored draws")
	fmt.Fprintln(w, "  optimize   Posterior mode")
	fmt.Fprintln(w, "  version    Show version")
}
