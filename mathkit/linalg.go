// SPDX-License-Identifier: MIT
// Dot, Outer, Transpose, Eye/EyeLike, ZeroLike: the shape-changing
// linear-algebra capabilities. Inv lives in inv.go (Gauss-Jordan
// elimination with partial pivoting).
package mathkit

import (
	"fmt"

	"github.com/katalvlaran/optimcore/optimerr"
)

// Dot computes the inner product for vector/vector, matrix/vector, or
// ordinary matrix multiply for matrix/matrix. Fails with ShapeMismatch for
// incompatible inner dimensions.
func Dot[F Real](a, b Container[F]) (Container[F], error) {
	sa, sb := a.Shape(), b.Shape()

	switch {
	case sa.IsVector() && sb.IsVector():
		if sa.Rows != sb.Rows {
			return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: Dot: vector length mismatch")
		}
		var sum F
		for i := 0; i < sa.Rows; i++ {
			av, _ := a.At(i)
			bv, _ := b.At(i)
			sum += av * bv
		}
		return &Scalar[F]{V: sum}, nil

	case !sa.IsVector() && sb.IsVector():
		// matrix (r x c) times vector (c x 1) -> vector (r x 1)
		if sa.Cols != sb.Rows {
			return nil, optimerr.New(optimerr.ShapeMismatch,
				fmt.Sprintf("mathkit: Dot: matrix cols %d != vector len %d", sa.Cols, sb.Rows))
		}
		out := &Vector[F]{data: make([]F, sa.Rows)}
		for i := 0; i < sa.Rows; i++ {
			var sum F
			for k := 0; k < sa.Cols; k++ {
				av, _ := a.At(i*sa.Cols + k)
				bv, _ := b.At(k)
				sum += av * bv
			}
			out.data[i] = sum
		}
		return out, nil

	default:
		// matrix (r x k) times matrix (k x c) -> matrix (r x c)
		if sa.Cols != sb.Rows {
			return nil, optimerr.New(optimerr.ShapeMismatch,
				fmt.Sprintf("mathkit: Dot: inner dims %d != %d", sa.Cols, sb.Rows))
		}
		out, err := NewDense[F](sa.Rows, sb.Cols)
		if err != nil {
			return nil, err
		}
		for i := 0; i < sa.Rows; i++ {
			for j := 0; j < sb.Cols; j++ {
				var sum F
				for k := 0; k < sa.Cols; k++ {
					av, _ := a.At(i*sa.Cols + k)
					bv, _ := b.At(k*sb.Cols + j)
					sum += av * bv
				}
				out.data[i*sb.Cols+j] = sum
			}
		}
		return out, nil
	}
}

// Outer returns the outer product M[i,j] = u[i]*v[j].
func Outer[F Real](u, v Container[F]) (*Dense[F], error) {
	su, sv := u.Shape(), v.Shape()
	if !su.IsVector() || !sv.IsVector() {
		return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: Outer: both operands must be vectors")
	}
	out, err := NewDense[F](su.Rows, sv.Rows)
	if err != nil {
		return nil, err
	}
	for i := 0; i < su.Rows; i++ {
		ui, _ := u.At(i)
		for j := 0; j < sv.Rows; j++ {
			vj, _ := v.At(j)
			out.data[i*sv.Rows+j] = ui * vj
		}
	}
	return out, nil
}

// Transpose returns the transpose of x: shape (r,c) -> (c,r). Vectors and
// scalars are returned unchanged (identity, per spec §4.1).
func Transpose[F Real](x Container[F]) Container[F] {
	switch v := x.(type) {
	case *Scalar[F]:
		return &Scalar[F]{V: v.V}
	case *Vector[F]:
		out := make([]F, len(v.data))
		copy(out, v.data)
		return &Vector[F]{data: out}
	case *Dense[F]:
		out, _ := NewDense[F](v.c, v.r)
		for i := 0; i < v.r; i++ {
			for j := 0; j < v.c; j++ {
				out.data[j*v.r+i] = v.data[i*v.c+j]
			}
		}
		return out
	default:
		n := x.Shape().Size()
		out := x.Clone()
		for i := 0; i < n; i++ {
			val, _ := x.At(i)
			_ = out.SetAt(i, val)
		}
		return out
	}
}

// Eye returns the n x n identity matrix. Fails with InvalidParameter if
// n <= 0.
func Eye[F Real](n int) (*Dense[F], error) {
	out, err := NewDense[F](n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		out.data[i*n+i] = 1
	}
	return out, nil
}

// EyeLike returns the identity matrix of the same square shape as m. Fails
// with ShapeMismatch if m is not square.
func EyeLike[F Real](m Container[F]) (*Dense[F], error) {
	s := m.Shape()
	if s.Rows != s.Cols {
		return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: EyeLike: receiver is not square")
	}
	return Eye[F](s.Rows)
}

// ZeroLike returns a zero-valued container of the same concrete type and
// shape as x.
func ZeroLike[F Real](x Container[F]) Container[F] {
	switch v := x.(type) {
	case *Scalar[F]:
		return &Scalar[F]{}
	case *Vector[F]:
		return &Vector[F]{data: make([]F, len(v.data))}
	case *Dense[F]:
		return &Dense[F]{r: v.r, c: v.c, data: make([]F, len(v.data))}
	default:
		out := x.Clone()
		n := x.Shape().Size()
		for i := 0; i < n; i++ {
			var zero F
			_ = out.SetAt(i, zero)
		}
		return out
	}
}
