// SPDX-License-Identifier: MIT
package mathkit

import "github.com/katalvlaran/optimcore/optimerr"

// Scalar is a 0-D Container: a single value of type F boxed so it can
// participate in the same capability contracts as Vector and Dense
// (spec §4.1: "for vectors and scalars the identity" applies uniformly).
type Scalar[F Real] struct {
	V F
}

// NewScalar boxes v as a Container[F].
func NewScalar[F Real](v F) *Scalar[F] { return &Scalar[F]{V: v} }

// Shape always reports {1, 1} for a Scalar.
func (s *Scalar[F]) Shape() Shape { return Shape{Rows: 1, Cols: 1} }

// At returns V for i == 0, and fails otherwise.
func (s *Scalar[F]) At(i int) (F, error) {
	if i != 0 {
		var zero F
		return zero, optimerr.New(optimerr.ShapeMismatch, "mathkit: Scalar.At: index out of range")
	}
	return s.V, nil
}

// SetAt assigns V for i == 0, and fails otherwise.
func (s *Scalar[F]) SetAt(i int, v F) error {
	if i != 0 {
		return optimerr.New(optimerr.ShapeMismatch, "mathkit: Scalar.SetAt: index out of range")
	}
	s.V = v
	return nil
}

// Clone returns an independent copy of s.
func (s *Scalar[F]) Clone() Container[F] { return &Scalar[F]{V: s.V} }
