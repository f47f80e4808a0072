// SPDX-License-Identifier: MIT
// Vector is a dense 1-D Container, the direct generalization of
// lvlath/matrix's Dense row-major storage to a single dimension.
package mathkit

import "github.com/katalvlaran/optimcore/optimerr"

// Vector is a dense, owned 1-D container of length n.
type Vector[F Real] struct {
	data []F
}

// NewVector allocates a zero-valued Vector of length n.
// Fails with InvalidParameter if n <= 0.
func NewVector[F Real](n int) (*Vector[F], error) {
	if n <= 0 {
		return nil, optimerr.New(optimerr.InvalidParameter, "mathkit: NewVector: length must be > 0")
	}
	return &Vector[F]{data: make([]F, n)}, nil
}

// VectorFromSlice wraps data directly (no copy); callers must not reuse
// data afterwards if they need Vector to own it independently.
func VectorFromSlice[F Real](data []F) *Vector[F] {
	return &Vector[F]{data: data}
}

// Len returns the vector's length.
func (v *Vector[F]) Len() int { return len(v.data) }

// Shape reports {Len(), 1}.
func (v *Vector[F]) Shape() Shape { return Shape{Rows: len(v.data), Cols: 1} }

// Raw exposes the backing slice for capability kernels' fast paths. It
// aliases v's storage; callers must not retain it across mutation.
func (v *Vector[F]) Raw() []F { return v.data }

func (v *Vector[F]) bound(i int) error {
	if i < 0 || i >= len(v.data) {
		return optimerr.New(optimerr.ShapeMismatch, "mathkit: Vector: index out of range")
	}
	return nil
}

// At returns the element at linear index i.
func (v *Vector[F]) At(i int) (F, error) {
	if err := v.bound(i); err != nil {
		var zero F
		return zero, err
	}
	return v.data[i], nil
}

// SetAt assigns the element at linear index i.
func (v *Vector[F]) SetAt(i int, val F) error {
	if err := v.bound(i); err != nil {
		return err
	}
	v.data[i] = val
	return nil
}

// Clone returns a deep copy of v.
func (v *Vector[F]) Clone() Container[F] {
	out := make([]F, len(v.data))
	copy(out, v.data)
	return &Vector[F]{data: out}
}
