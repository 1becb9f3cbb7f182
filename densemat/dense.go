// Package densemat provides the flat, row-major dense matrix used by
// State's M×M distance matrix and by every local kₐ×kₐ distance matrix
// (kₐ ≤ 12) the CNA and similarity engines build per atom.
//
// The shape mirrors the teacher package's matrix.Dense: a single
// []float64 backing slice indexed row*cols+col, with bounds-checked
// accessors and a fast in-package path for symmetric fills.
package densemat

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates non-positive requested dimensions.
var ErrInvalidDimensions = errors.New("densemat: dimensions must be > 0")

// ErrIndexOutOfBounds indicates a row or column index outside [0, n).
var ErrIndexOutOfBounds = errors.New("densemat: index out of bounds")

// ErrDimensionMismatch indicates an operation between incompatibly shaped matrices.
var ErrDimensionMismatch = errors.New("densemat: dimension mismatch")

// Dense is a square or rectangular row-major matrix of float64 values.
type Dense struct {
	r, c int
	data []float64
}

func indexErrorf(method string, row, col int) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, ErrIndexOutOfBounds)
}

// New allocates an r×c zero matrix.
func New(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewSquare allocates an n×n zero matrix.
func NewSquare(n int) (*Dense, error) {
	return New(n, n)
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) float64 {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		panic(indexErrorf("At", row, col))
	}

	return m.data[row*m.c+col]
}

// TryAt retrieves the element at (row, col), returning an error instead of
// panicking on an out-of-range index.
func (m *Dense) TryAt(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, indexErrorf("TryAt", row, col)
	}

	return m.data[row*m.c+col], nil
}

// Set assigns v at (row, col).
func (m *Dense) Set(row, col int, v float64) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		panic(indexErrorf("Set", row, col))
	}
	m.data[row*m.c+col] = v
}

// SetSymmetric assigns v at (row,col) and (col,row) in one call, the shape
// every distance-matrix fill in this module uses.
func (m *Dense) SetSymmetric(row, col int, v float64) {
	m.Set(row, col, v)
	m.Set(col, row, v)
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) []float64 {
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return &Dense{r: m.r, c: m.c, data: data}
}

// IsSquare reports whether rows == cols.
func (m *Dense) IsSquare() bool { return m.r == m.c }

// IsSymmetric reports whether m[i][j] == m[j][i] for every pair, and the
// diagonal is (approximately) zero.
func (m *Dense) IsSymmetric(tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	for i := 0; i < m.r; i++ {
		if absf(m.At(i, i)) > tol {
			return false
		}
		for j := i + 1; j < m.c; j++ {
			if absf(m.At(i, j)-m.At(j, i)) > tol {
				return false
			}
		}
	}

	return true
}

// Submatrix extracts the square submatrix induced by the given index set,
// in the order given. Used to carve a local kₐ×kₐ neighborhood out of the
// supercell's M×M distance matrix.
func (m *Dense) Submatrix(indices []int) (*Dense, error) {
	k := len(indices)
	out, err := NewSquare(k)
	if err != nil {
		return nil, err
	}
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			v, err := m.TryAt(indices[i], indices[j])
			if err != nil {
				return nil, err
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}

// PadSquare zero-pads m to a K×K matrix; no-op (returns a clone) when m is
// already K×K.
func (m *Dense) PadSquare(k int) (*Dense, error) {
	if !m.IsSquare() {
		return nil, ErrDimensionMismatch
	}
	if m.r == k {
		return m.Clone(), nil
	}
	if k < m.r {
		return nil, ErrDimensionMismatch
	}
	out, err := NewSquare(k)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.Set(i, j, m.At(i, j))
		}
	}

	return out, nil
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
