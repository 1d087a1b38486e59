// SPDX-License-Identifier: MIT
// Package matrix: dense float64 backend, trimmed from the teacher's array-
// backed Matrix implementation down to the one concrete thing this repo
// needs it for — the all-pairs shortest-distance pass in FloydWarshall
// (impl_floydwarshall.go), driven by analytics.ShortestPathDistances. The
// teacher's generic Matrix interface, functional-option construction
// (options.go), View/Induced windowing, and the eigen/inverse/LU/QR/
// covariance/correlation routines built on top had no caller anywhere in
// this domain and were dropped rather than kept unexercised; see
// DESIGN.md.
package matrix

import "fmt"

// Dense is a row-major, array-backed r-by-c float64 matrix.
type Dense struct {
	r, c int
	data []float64
}

// NewDense allocates an r×c Dense matrix initialized to zeros.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix: new_dense: %w", ErrInvalidDimensions)
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("matrix: dense(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[off], nil
}

// Set writes v at (row, col). Unlike the teacher's Dense, Set carries no
// NaN/Inf rejection policy: FloydWarshall relies on +Inf as the "no path
// yet" sentinel, so a finite-value guard here would reject its own writes.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[off] = v
	return nil
}

// Clone returns a deep copy of the matrix.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	return &Dense{r: m.r, c: m.c, data: cp}
}

// String provides a simple row-wise dump for debugging/logging.
func (m *Dense) String() string {
	out := ""
	for i := 0; i < m.r; i++ {
		out += "["
		for j := 0; j < m.c; j++ {
			out += fmt.Sprintf("%g", m.data[i*m.c+j])
			if j+1 < m.c {
				out += ", "
			}
		}
		out += "]\n"
	}
	return out
}
