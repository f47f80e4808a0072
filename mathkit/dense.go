// SPDX-License-Identifier: MIT
// Dense is a row-major dense matrix, modeled on lvlath/matrix's Dense:
// flat backing slice, O(1) indexing, fast-path elementwise kernels over the
// raw slice when both operands are *Dense.
package mathkit

import (
	"fmt"

	"github.com/katalvlaran/optimcore/optimerr"
)

// Dense is a row-major matrix of r rows and c columns.
type Dense[F Real] struct {
	r, c int
	data []F
}

// NewDense allocates an r x c Dense matrix initialized to zero.
// Fails with InvalidParameter if rows or cols <= 0.
func NewDense[F Real](rows, cols int) (*Dense[F], error) {
	if rows <= 0 || cols <= 0 {
		return nil, optimerr.New(optimerr.InvalidParameter, "mathkit: NewDense: dimensions must be > 0")
	}
	return &Dense[F]{r: rows, c: cols, data: make([]F, rows*cols)}, nil
}

// DenseFromRows builds a Dense matrix from row-major nested slices. All
// rows must share the same length.
func DenseFromRows[F Real](rows [][]F) (*Dense[F], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, optimerr.New(optimerr.InvalidParameter, "mathkit: DenseFromRows: empty input")
	}
	r, c := len(rows), len(rows[0])
	data := make([]F, 0, r*c)
	for _, row := range rows {
		if len(row) != c {
			return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: DenseFromRows: ragged rows")
		}
		data = append(data, row...)
	}
	return &Dense[F]{r: r, c: c, data: data}, nil
}

// Rows returns the row count.
func (m *Dense[F]) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense[F]) Cols() int { return m.c }

// Shape reports {Rows(), Cols()}.
func (m *Dense[F]) Shape() Shape { return Shape{Rows: m.r, Cols: m.c} }

// Raw exposes the flat row-major backing slice for fast-path kernels.
func (m *Dense[F]) Raw() []F { return m.data }

func (m *Dense[F]) index(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, optimerr.New(optimerr.ShapeMismatch, fmt.Sprintf("mathkit: Dense: (%d,%d) out of range for %dx%d", row, col, m.r, m.c))
	}
	return row*m.c + col, nil
}

// AtRC returns the element at (row, col).
func (m *Dense[F]) AtRC(row, col int) (F, error) {
	idx, err := m.index(row, col)
	if err != nil {
		var zero F
		return zero, err
	}
	return m.data[idx], nil
}

// SetRC assigns v at (row, col).
func (m *Dense[F]) SetRC(row, col int, v F) error {
	idx, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// At returns the element at linear (row-major) index i.
func (m *Dense[F]) At(i int) (F, error) {
	if i < 0 || i >= len(m.data) {
		var zero F
		return zero, optimerr.New(optimerr.ShapeMismatch, "mathkit: Dense.At: index out of range")
	}
	return m.data[i], nil
}

// SetAt assigns the element at linear (row-major) index i.
func (m *Dense[F]) SetAt(i int, v F) error {
	if i < 0 || i >= len(m.data) {
		return optimerr.New(optimerr.ShapeMismatch, "mathkit: Dense.SetAt: index out of range")
	}
	m.data[i] = v
	return nil
}

// Clone returns a deep copy of m.
func (m *Dense[F]) Clone() Container[F] {
	data := make([]F, len(m.data))
	copy(data, m.data)
	return &Dense[F]{r: m.r, c: m.c, data: data}
}

// Row returns a copy of row i as a plain slice.
func (m *Dense[F]) Row(i int) []F {
	out := make([]F, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])
	return out
}

// String implements fmt.Stringer for debugging.
func (m *Dense[F]) String() string {
	s := ""
	for i := 0; i < m.r; i++ {
		s += "["
		for j := 0; j < m.c; j++ {
			s += fmt.Sprintf("%g", m.data[i*m.c+j])
			if j < m.c-1 {
				s += ", "
			}
		}
		s += "]\n"
	}
	return s
}
