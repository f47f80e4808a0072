package gonumf64

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"gonum.org/v1/gonum/mat"
)

// Dot multiplies two gonum-backed matrices using gonum's BLAS-backed Mul,
// rather than mathkit's pure-Go triple loop.
func Dot(a, b *Dense) (*Dense, error) {
	ar, ac := a.m.Dims()
	br, bc := b.m.Dims()
	if ac != br {
		return nil, optimerr.New(optimerr.ShapeMismatch, "gonumf64: Dot: inner dimensions mismatch")
	}
	out := mat.NewDense(ar, bc, nil)
	out.Mul(a.m, b.m)
	return &Dense{m: out}, nil
}

// Inv inverts a using gonum's LU-based mat.Dense.Inverse, failing with
// NonInvertible if gonum reports the matrix is singular.
func Inv(a *Dense) (*Dense, error) {
	r, c := a.m.Dims()
	if r != c {
		return nil, optimerr.New(optimerr.ShapeMismatch, "gonumf64: Inv: matrix is not square")
	}
	out := mat.NewDense(r, c, nil)
	if err := out.Inverse(a.m); err != nil {
		return nil, optimerr.Wrap(optimerr.NonInvertible, "gonumf64: Inv: gonum reported a singular matrix", err)
	}
	return &Dense{m: out}, nil
}

var _ mathkit.Container[float64] = (*Dense)(nil)
var _ mathkit.Container[float64] = (*Vector)(nil)
