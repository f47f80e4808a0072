package fd_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/mathkit/fd"
	"github.com/stretchr/testify/require"
)

// sphere(x) = Sum x_i^2, gradient = 2x.
func sphere(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return s
}

func TestGradientApproximatesSphere(t *testing.T) {
	param := mathkit.VectorFromSlice([]float64{1, 2, 3})
	grad, err := fd.Gradient(sphere, param)
	require.NoError(t, err)
	for i, want := range []float64{2, 4, 6} {
		got, _ := grad.At(i)
		require.InDelta(t, want, got, 1e-4)
	}
}

func TestJacobianOfLinearResidual(t *testing.T) {
	// residual(x) = [x0 - x1, x0 + x1]; Jacobian = [[1,-1],[1,1]].
	residual := func(x []float64) []float64 {
		return []float64{x[0] - x[1], x[0] + x[1]}
	}
	param := mathkit.VectorFromSlice([]float64{5, 3})
	jac, err := fd.Jacobian(residual, param)
	require.NoError(t, err)
	require.Equal(t, 2, jac.Rows())
	require.Equal(t, 2, jac.Cols())
	v00, _ := jac.AtRC(0, 0)
	v01, _ := jac.AtRC(0, 1)
	v10, _ := jac.AtRC(1, 0)
	v11, _ := jac.AtRC(1, 1)
	require.InDelta(t, 1.0, v00, 1e-4)
	require.InDelta(t, -1.0, v01, 1e-4)
	require.InDelta(t, 1.0, v10, 1e-4)
	require.InDelta(t, 1.0, v11, 1e-4)
}
