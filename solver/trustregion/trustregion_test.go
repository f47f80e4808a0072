package trustregion_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/trustregion"
	"github.com/stretchr/testify/require"
)

// sphere is f(x) = sum(x_i^2), Hessian = 2*I.
type sphere struct{}

func (sphere) Cost(x mathkit.Container[float64]) (float64, error) {
	var sum float64
	n := x.Shape().Size()
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		sum += v * v
	}
	return sum, nil
}

func (sphere) Gradient(x mathkit.Container[float64]) (mathkit.Container[float64], error) {
	n := x.Shape().Size()
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		data[i] = 2 * v
	}
	return mathkit.VectorFromSlice(data), nil
}

func hessian(n int) mathkit.Container[float64] {
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, n)
		row[i] = 2
		rows[i] = row
	}
	d, _ := mathkit.DenseFromRows(rows)
	return d
}

func TestCauchyPointStaysWithinRadius(t *testing.T) {
	g := mathkit.VectorFromSlice([]float64{6, -8})
	h := hessian(2)
	cp := trustregion.CauchyPoint[float64]{}

	step, err := cp.Solve(g, h, 1.0)
	require.NoError(t, err)

	s0, _ := step.At(0)
	s1, _ := step.At(1)
	require.InDelta(t, 1.0, s0*s0+s1*s1, 1e-9)
}

func TestDoglegReturnsNewtonStepWithinRadius(t *testing.T) {
	g := mathkit.VectorFromSlice([]float64{6, -8})
	h := hessian(2)
	dl := trustregion.Dogleg[float64]{}

	step, err := dl.Solve(g, h, 10.0)
	require.NoError(t, err)
	s0, _ := step.At(0)
	s1, _ := step.At(1)
	require.InDelta(t, -3.0, s0, 1e-9)
	require.InDelta(t, 4.0, s1, 1e-9)
}

func TestStepAcceptsDescentOnSphere(t *testing.T) {
	pw := problem.New[float64](sphere{})
	x := mathkit.VectorFromSlice([]float64{3, -4})
	f, err := pw.Cost(x)
	require.NoError(t, err)
	g, err := pw.Gradient(x)
	require.NoError(t, err)
	h := hessian(2)

	res, err := trustregion.Step[float64](pw, trustregion.Dogleg[float64]{}, x, f, g, h, 1.0, 10.0, 0.1)
	require.NoError(t, err)
	require.True(t, res.Accepted)
	require.Less(t, res.Cost, f)
}
