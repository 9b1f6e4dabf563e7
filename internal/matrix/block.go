package matrix

import (
	"fmt"
	"math"
)

// Block returns the nRows×nCols sub-matrix whose top-left element is
// (startRow, startCol), 1-based.
//
// Element (i, j) of the result is element (startRow+i-1, startCol+j-1) of m,
// copied as-is: values and tangents for forward types, handles for reverse types.
// No tape nodes are created and m is not modified.
//
// A zero extent is valid and yields an empty matrix. Fails with a *RangeError when
//
//	startRow < 1, startCol < 1, nRows < 0, nCols < 0,
//	startRow+nRows-1 > m.Rows() or startCol+nCols-1 > m.Cols().
func Block[T any](m *Matrix[T], startRow, startCol, nRows, nCols int) (*Matrix[T], error) {
	if err := checkSpan("block", "start_row", "n_rows", startRow, nRows, m.rows); err != nil {
		return nil, err
	}
	if err := checkSpan("block", "start_col", "n_cols", startCol, nCols, m.cols); err != nil {
		return nil, err
	}

	out := New[T](nRows, nCols)
	r0, c0 := startRow-1, startCol-1
	for j := 0; j < nCols; j++ {
		src := m.data[(c0+j)*m.rows+r0 : (c0+j)*m.rows+r0+nRows]
		copy(out.data[j*nRows:(j+1)*nRows], src)
	}
	return out, nil
}

// checkSpan validates a 1-based start and extent against a dimension of size n.
func checkSpan(op, startName, extentName string, start, extent, n int) error {
	if start < 1 {
		return &RangeError{Op: op, Arg: startName, Value: start, Min: 1, Max: max(n, 1)}
	}
	if extent < 0 {
		return &RangeError{Op: op, Arg: extentName, Value: extent, Min: 0, Max: max(n-start+1, 0)}
	}
	if extent > n-start+1 {
		last := math.MaxInt
		if extent <= math.MaxInt-start+1 {
			last = start + extent - 1
		}
		return &RangeError{Op: op, Arg: startName + "+" + extentName + "-1", Value: last, Min: start - 1, Max: n}
	}
	return nil
}

// Row returns row i (1-based) as a 1×Cols matrix.
func Row[T any](m *Matrix[T], i int) (*Matrix[T], error) {
	if i < 1 || i > m.rows {
		return nil, &RangeError{Op: "row", Arg: "i", Value: i, Min: 1, Max: m.rows}
	}
	return Block(m, i, 1, 1, m.cols)
}

// Col returns column j (1-based) as a Rows×1 matrix.
func Col[T any](m *Matrix[T], j int) (*Matrix[T], error) {
	if j < 1 || j > m.cols {
		return nil, &RangeError{Op: "col", Arg: "j", Value: j, Min: 1, Max: m.cols}
	}
	return Block(m, 1, j, m.rows, 1)
}

// Segment returns n elements of vector v starting at i (1-based),
// keeping v's orientation.
func Segment[T any](v *Matrix[T], i, n int) (*Matrix[T], error) {
	if !v.IsVector() {
		return nil, fmt.Errorf("segment: %dx%d is not a vector: %w", v.rows, v.cols, ErrDimensionMismatch)
	}
	if err := checkSpan("segment", "i", "n", i, n, v.Size()); err != nil {
		return nil, err
	}
	if v.cols == 1 {
		return Block(v, i, 1, n, 1)
	}
	return Block(v, 1, i, 1, n)
}

// Head returns the first n elements of vector v.
func Head[T any](v *Matrix[T], n int) (*Matrix[T], error) {
	return Segment(v, 1, n)
}

// Tail returns the last n elements of vector v.
func Tail[T any](v *Matrix[T], n int) (*Matrix[T], error) {
	return Segment(v, v.Size()-n+1, n)
}
