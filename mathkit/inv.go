// SPDX-License-Identifier: MIT
// Inv: dense matrix inverse via Gauss-Jordan elimination with partial
// pivoting on an augmented [A | I] tableau. Grounded on
// lvlath/matrix/ops/{lu,inverse}.go's elimination structure; partial
// pivoting is added here (the teacher's non-pivoting scheme is
// intentionally simple/deterministic for graph-adjacency matrices, but a
// Hessian/Jacobian arising from an arbitrary Problem cannot be assumed to
// have nonzero leading pivots, so solver correctness requires pivoting —
// see DESIGN.md).
package mathkit

import (
	"math"

	"github.com/katalvlaran/optimcore/optimerr"
)

// Inv returns the inverse of x. Scalar specialization returns 1/x, failing
// with NonInvertible if x == 0. Dense specialization uses Gauss-Jordan
// elimination with partial pivoting; fails with NonInvertible if a rank-revealing pivot falls below
// the configured epsilon (DefaultEpsilon unless overridden via opts).
func Inv[F Real](x Container[F], opts ...Option) (Container[F], error) {
	pol := newPolicy(opts...)

	switch v := x.(type) {
	case *Scalar[F]:
		if v.V == 0 {
			return nil, optimerr.New(optimerr.NonInvertible, "mathkit: Inv: scalar is zero")
		}
		return &Scalar[F]{V: 1 / v.V}, nil

	case *Dense[F]:
		if v.r != v.c {
			return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: Inv: matrix is not square")
		}
		return invDense(v, pol.epsilon)

	default:
		s := x.Shape()
		if s.Rows != s.Cols {
			return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: Inv: container is not square")
		}
		dense, err := toDense(x)
		if err != nil {
			return nil, err
		}
		return invDense(dense, pol.epsilon)
	}
}

func toDense[F Real](x Container[F]) (*Dense[F], error) {
	s := x.Shape()
	out, err := NewDense[F](s.Rows, s.Cols)
	if err != nil {
		return nil, err
	}
	n := s.Size()
	for i := 0; i < n; i++ {
		val, err := x.At(i)
		if err != nil {
			return nil, err
		}
		out.data[i] = val
	}
	return out, nil
}

// invDense performs Gauss-Jordan elimination with partial pivoting on an
// augmented [A | I] tableau, yielding A^-1 in the right half.
func invDense[F Real](m *Dense[F], epsilon float64) (*Dense[F], error) {
	n := m.r
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, 2*n)
		for j := 0; j < n; j++ {
			row[j] = float64(m.data[i*n+j])
		}
		row[n+i] = 1
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		// Partial pivot: find the largest-magnitude entry in this column
		// at or below the diagonal.
		pivotRow := col
		maxAbs := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if a := math.Abs(aug[r][col]); a > maxAbs {
				maxAbs = a
				pivotRow = r
			}
		}
		if maxAbs < epsilon {
			return nil, optimerr.New(optimerr.NonInvertible, "mathkit: Inv: pivot below epsilon, matrix is singular")
		}
		if pivotRow != col {
			aug[col], aug[pivotRow] = aug[pivotRow], aug[col]
		}

		pivot := aug[col][col]
		for j := col; j < 2*n; j++ {
			aug[col][j] /= pivot
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for j := col; j < 2*n; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}

	out, err := NewDense[F](n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = F(aug[i][n+j])
		}
	}
	return out, nil
}
