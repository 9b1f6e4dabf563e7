// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import (
	"github.com/born-ml/agrad/internal/matrix"
)

// Matrix is a dense column-major matrix of AD scalars.
type Matrix[T any] = matrix.Matrix[T]

// RangeError reports a Block argument outside its valid interval.
type RangeError = matrix.RangeError

// Matrix errors.
var (
	ErrOutOfRange        = matrix.ErrOutOfRange
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
)

// NewMatrix creates a rows×cols matrix of zero values.
func NewMatrix[T any](rows, cols int) *Matrix[T] {
	return matrix.New[T](rows, cols)
}

// FromRows creates a matrix from equal-length rows.
func FromRows[T any](rows [][]T) (*Matrix[T], error) {
	return matrix.FromRows(rows)
}

// Block returns the nRows×nCols sub-matrix starting at (startRow, startCol),
// both 1-based.
func Block[T any](m *Matrix[T], startRow, startCol, nRows, nCols int) (*Matrix[T], error) {
	return matrix.Block(m, startRow, startCol, nRows, nCols)
}

// Row returns row i (1-based) as a 1×cols matrix.
func Row[T any](m *Matrix[T], i int) (*Matrix[T], error) {
	return matrix.Row(m, i)
}

// Col returns column j (1-based) as a rows×1 matrix.
func Col[T any](m *Matrix[T], j int) (*Matrix[T], error) {
	return matrix.Col(m, j)
}

// MatMul returns a·b.
func MatMul[T Scalar[T]](a, b *Matrix[T]) (*Matrix[T], error) {
	return matrix.MatMul(a, b)
}
