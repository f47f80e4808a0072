// SPDX-License-Identifier: MIT
// Package vecmath collects the small Container-level arithmetic every
// solver in the catalog repeats (scale, axpy, dot-as-scalar, norm), so each
// solver package reads as algorithm logic rather than mathkit error-
// plumbing. Grounded on mathkit/ops.go + mathkit/linalg.go, thin wrappers
// only — no new numerical behavior.
package vecmath

import (
	"github.com/katalvlaran/optimcore/mathkit"
)

// Scale returns alpha * x as a new Container.
func Scale[F mathkit.Real](alpha F, x mathkit.Container[F]) mathkit.Container[F] {
	out := mathkit.ZeroLike(x)
	n := x.Shape().Size()
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		_ = out.SetAt(i, alpha*v)
	}
	return out
}

// Axpy returns x + alpha*y (mathkit.ScaledAdd, renamed to the BLAS term
// solver authors expect).
func Axpy[F mathkit.Real](x mathkit.Container[F], alpha F, y mathkit.Container[F]) (mathkit.Container[F], error) {
	return mathkit.ScaledAdd(x, alpha, y)
}

// DotScalar computes the inner product of a and b as a plain F, collapsing
// mathkit.Dot's Container[F] return (always a *Scalar for vector/vector
// input) to its value.
func DotScalar[F mathkit.Real](a, b mathkit.Container[F]) (F, error) {
	r, err := mathkit.Dot(a, b)
	if err != nil {
		var zero F
		return zero, err
	}
	return r.At(0)
}

// Norm2 returns the L2 norm of x.
func Norm2[F mathkit.Real](x mathkit.Container[F]) F {
	return mathkit.L2Norm(x)
}

// Negate returns -x as a new Container.
func Negate[F mathkit.Real](x mathkit.Container[F]) mathkit.Container[F] {
	return Scale(F(-1), x)
}

// ApplyMatrix returns m (a matrix Container) times v, passing mathkit.Dot's
// shape-mismatch error through to the caller.
func ApplyMatrix[F mathkit.Real](m, v mathkit.Container[F]) (mathkit.Container[F], error) {
	return mathkit.Dot(m, v)
}
