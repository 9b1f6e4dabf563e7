package model

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/agrad/internal/fwd"
	"github.com/born-ml/agrad/internal/matrix"
	"github.com/born-ml/agrad/internal/rev"
	"github.com/born-ml/agrad/internal/scalar"
)

// NewRowNormal builds a model over a rows×J parameter matrix X whose rows are
// independent multivariate normals with mean mu and fixed precision Λ:
//
//	X[i] ~ multi_normal_prec(mu, Λ),   i = 1..rows
//
//	lp = -½ Σᵢ (X[i] - mu) Λ (X[i] - mu)ᵀ
//	     + rows (½ log|Λ| - ½ J log 2π)       (only when propto is false)
//
// Parameters are X in column-major order, named "x.i.j". Each row is taken with
// matrix.Row, so its elements are the parameter handles themselves.
func NewRowNormal(mu []float64, precision mat.Symmetric, rows int) (*Program, error) {
	j := len(mu)
	if j == 0 || rows <= 0 {
		return nil, errors.Errorf("row_normal: need at least one row and one column, got %dx%d", rows, j)
	}
	if precision.SymmetricDim() != j {
		return nil, errors.Errorf("row_normal: precision is %dx%d, mu has %d elements", precision.SymmetricDim(), precision.SymmetricDim(), j)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(precision); !ok {
		return nil, errors.Wrap(ErrNotPositiveDefinite, "row_normal: precision")
	}

	prec := mat.NewDense(j, j, nil)
	prec.Copy(precision)
	r := &rowNormal{
		rows: rows,
		cols: j,
		mu:   mat.NewDense(1, j, append([]float64(nil), mu...)),
		prec: prec,
		norm: float64(rows) * (0.5*chol.LogDet() - 0.5*float64(j)*math.Log(2*math.Pi)),
	}

	names := make([]string, 0, rows*j)
	for c := 1; c <= j; c++ {
		for i := 1; i <= rows; i++ {
			names = append(names, fmt.Sprintf("x.%d.%d", i, c))
		}
	}

	return New("row_normal", names, Family{
		Float:    rowNormalDensity[scalar.Float](r),
		Var:      rowNormalDensity[rev.Var](r),
		Dual:     rowNormalDensity[fwd.Dual[scalar.Float]](r),
		DualVar:  rowNormalDensity[fwd.Dual[rev.Var]](r),
		DualDual: rowNormalDensity[fwd.Dual[fwd.Dual[scalar.Float]]](r),
	}, nil)
}

type rowNormal struct {
	rows, cols int
	mu         *mat.Dense // 1×cols
	prec       *mat.Dense // cols×cols
	norm       float64    // normalising constant for all rows
}

func rowNormalDensity[T scalar.Scalar[T]](r *rowNormal) Density[T] {
	return func(theta []T, _ []int, propto bool) (T, error) {
		var zero T
		x, err := matrix.FromColMajor(r.rows, r.cols, theta)
		if err != nil {
			return zero, errors.Wrap(err, "row_normal")
		}
		like := theta[0]
		mu := matrix.Lift(like, r.mu)
		prec := matrix.Lift(like, r.prec)

		terms := make([]T, 0, r.rows)
		for i := 1; i <= r.rows; i++ {
			row, err := matrix.Row(x, i)
			if err != nil {
				return zero, err
			}
			diff, err := matrix.Sub(row, mu)
			if err != nil {
				return zero, err
			}
			dp, err := matrix.MatMul(diff, prec)
			if err != nil {
				return zero, err
			}
			q, err := matrix.MatMul(dp, matrix.Transpose(diff))
			if err != nil {
				return zero, err
			}
			terms = append(terms, q.At(0, 0))
		}

		quad, err := scalar.Sum(terms)
		if err != nil {
			return zero, err
		}
		lp := scalar.Scale(quad, -0.5)
		if !propto {
			lp = lp.Add(like.Const(r.norm))
		}
		return lp, nil
	}
}
