// Package matrix provides dense 2-D containers of AD scalars.
//
// Matrix[T] stores any element type: scalar.Float, fwd.Dual[T], rev.Var or a
// nesting of them. Slicing (Block, Row, Col, Segment) copies elements, which for
// rev.Var means copying handles: the block's elements are the same tape nodes as
// the source's, and a later Backward sweep attributes their adjoints once.
//
// Indices passed to At/Set are 0-based like Go slices. Slicing functions follow
// the 1-based convention of the modelling language they serve.
package matrix

import "fmt"

// Matrix is a dense column-major matrix.
type Matrix[T any] struct {
	rows int
	cols int
	data []T // column-major: element (i, j) at data[j*rows+i]
}

// New creates a rows×cols matrix of zero values.
// Panics if either dimension is negative.
func New[T any](rows, cols int) *Matrix[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions %dx%d", rows, cols))
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// FromRows creates a matrix from row slices, which must have equal length.
//
// Example:
//
//	m, _ := matrix.FromRows([][]scalar.Float{{1, 4, 9}, {1, 4, 9}})
func FromRows[T any](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return New[T](0, 0), nil
	}
	cols := len(rows[0])
	m := New[T](len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d elements, want %d: %w", i, len(r), cols, ErrDimensionMismatch)
		}
		for j, x := range r {
			m.data[j*m.rows+i] = x
		}
	}
	return m, nil
}

// FromColMajor creates a rows×cols matrix over a copy of data laid out column by column.
func FromColMajor[T any](rows, cols int, data []T) (*Matrix[T], error) {
	if rows < 0 || cols < 0 || rows*cols != len(data) {
		return nil, fmt.Errorf("FromColMajor: %dx%d needs %d elements, got %d: %w", rows, cols, rows*cols, len(data), ErrDimensionMismatch)
	}
	m := New[T](rows, cols)
	copy(m.data, data)
	return m, nil
}

// Vector creates a column vector holding xs.
func Vector[T any](xs []T) *Matrix[T] {
	m := New[T](len(xs), 1)
	copy(m.data, xs)
	return m
}

// RowVector creates a row vector holding xs.
func RowVector[T any](xs []T) *Matrix[T] {
	m := New[T](1, len(xs))
	copy(m.data, xs)
	return m
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// Size returns rows*cols.
func (m *Matrix[T]) Size() int { return len(m.data) }

// IsVector reports whether m has a single row or a single column.
func (m *Matrix[T]) IsVector() bool { return m.rows == 1 || m.cols == 1 }

// At returns element (i, j), 0-based.
func (m *Matrix[T]) At(i, j int) T {
	m.checkIndex(i, j)
	return m.data[j*m.rows+i]
}

// Set stores x at (i, j), 0-based.
func (m *Matrix[T]) Set(i, j int, x T) {
	m.checkIndex(i, j)
	m.data[j*m.rows+i] = x
}

func (m *Matrix[T]) checkIndex(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range for %dx%d", i, j, m.rows, m.cols))
	}
}

// Data returns a column-major copy of the elements.
func (m *Matrix[T]) Data() []T {
	out := make([]T, len(m.data))
	copy(out, m.data)
	return out
}

// ToRows returns the elements as row slices.
func (m *Matrix[T]) ToRows() [][]T {
	out := make([][]T, m.rows)
	for i := range out {
		out[i] = make([]T, m.cols)
		for j := range out[i] {
			out[i][j] = m.data[j*m.rows+i]
		}
	}
	return out
}

// Transpose returns mᵀ.
func Transpose[T any](m *Matrix[T]) *Matrix[T] {
	out := New[T](m.cols, m.rows)
	for j := 0; j < m.cols; j++ {
		for i := 0; i < m.rows; i++ {
			out.data[i*out.rows+j] = m.data[j*m.rows+i]
		}
	}
	return out
}

// Map applies f to every element.
func Map[T, U any](m *Matrix[T], f func(T) U) *Matrix[U] {
	out := New[U](m.rows, m.cols)
	for k, x := range m.data {
		out.data[k] = f(x)
	}
	return out
}

// MapErr applies f to every element, stopping at the first error.
func MapErr[T, U any](m *Matrix[T], f func(T) (U, error)) (*Matrix[U], error) {
	out := New[U](m.rows, m.cols)
	for k, x := range m.data {
		y, err := f(x)
		if err != nil {
			return nil, err
		}
		out.data[k] = y
	}
	return out, nil
}
