package gonumf64

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"gonum.org/v1/gonum/mat"
)

// Vector wraps a *mat.VecDense so it satisfies mathkit.Container[float64].
type Vector struct {
	v *mat.VecDense
}

// NewVector allocates a zero-valued gonum-backed vector of length n.
func NewVector(n int) (*Vector, error) {
	if n <= 0 {
		return nil, optimerr.New(optimerr.InvalidParameter, "gonumf64: NewVector: length must be > 0")
	}
	return &Vector{v: mat.NewVecDense(n, nil)}, nil
}

// FromVec wraps an existing *mat.VecDense without copying.
func FromVec(v *mat.VecDense) *Vector { return &Vector{v: v} }

// Raw exposes the underlying *mat.VecDense.
func (v *Vector) Raw() *mat.VecDense { return v.v }

// Shape reports {Len(), 1}.
func (v *Vector) Shape() mathkit.Shape {
	return mathkit.Shape{Rows: v.v.Len(), Cols: 1}
}

// At returns the element at linear index i.
func (v *Vector) At(i int) (float64, error) {
	if i < 0 || i >= v.v.Len() {
		return 0, optimerr.New(optimerr.ShapeMismatch, "gonumf64: Vector: index out of range")
	}
	return v.v.AtVec(i), nil
}

// SetAt assigns the element at linear index i.
func (v *Vector) SetAt(i int, val float64) error {
	if i < 0 || i >= v.v.Len() {
		return optimerr.New(optimerr.ShapeMismatch, "gonumf64: Vector: index out of range")
	}
	v.v.SetVec(i, val)
	return nil
}

// Clone returns an independent deep copy.
func (v *Vector) Clone() mathkit.Container[float64] {
	out := mat.NewVecDense(v.v.Len(), nil)
	out.CopyVec(v.v)
	return &Vector{v: out}
}
