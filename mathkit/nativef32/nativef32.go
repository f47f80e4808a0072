package nativef32

import "github.com/katalvlaran/optimcore/mathkit"

// Scalar is a float32-pinned container, for Problems that only need
// single-precision working storage (e.g. embedded or SIMD-adjacent solver
// deployments where float64's bandwidth cost is unwelcome).
type Scalar = mathkit.Scalar[float32]

// Vector is a float32-pinned container.
type Vector = mathkit.Vector[float32]

// Dense is a float32-pinned container.
type Dense = mathkit.Dense[float32]

// NewScalar boxes v.
func NewScalar(v float32) *Scalar { return mathkit.NewScalar(v) }

// NewVector allocates a zero-valued Vector of length n.
func NewVector(n int) (*Vector, error) { return mathkit.NewVector[float32](n) }

// VectorFromSlice wraps data directly.
func VectorFromSlice(data []float32) *Vector { return mathkit.VectorFromSlice(data) }

// NewDense allocates a zero-valued rows x cols Dense matrix.
func NewDense(rows, cols int) (*Dense, error) { return mathkit.NewDense[float32](rows, cols) }

// DenseFromRows builds a Dense matrix from row-major nested slices.
func DenseFromRows(rows [][]float32) (*Dense, error) { return mathkit.DenseFromRows[float32](rows) }

// Add returns a+b elementwise, or broadcasts a scalar.
func Add(a, b mathkit.Container[float32]) (mathkit.Container[float32], error) {
	return mathkit.Add[float32](a, b)
}

// Sub returns a-b elementwise, or broadcasts a scalar.
func Sub(a, b mathkit.Container[float32]) (mathkit.Container[float32], error) {
	return mathkit.Sub[float32](a, b)
}

// Dot computes vector/vector, matrix/vector, or matrix/matrix product.
func Dot(a, b mathkit.Container[float32]) (mathkit.Container[float32], error) {
	return mathkit.Dot[float32](a, b)
}

// Inv returns the inverse of x.
func Inv(x mathkit.Container[float32], opts ...mathkit.Option) (mathkit.Container[float32], error) {
	return mathkit.Inv[float32](x, opts...)
}

// L2Norm returns sqrt(Sum x_i^2).
func L2Norm(x mathkit.Container[float32]) float32 { return mathkit.L2Norm[float32](x) }
