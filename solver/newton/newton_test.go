package newton_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/newton"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

// sphere is f(x) = sum(x_i^2); Hessian is the constant matrix 2*I, so
// undamped Newton (gamma=1) reaches the minimum in a single step.
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

func (sphere) Hessian(x mathkit.Container[float64]) (mathkit.Container[float64], error) {
	n := x.Shape().Size()
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, n)
		row[i] = 2
		rows[i] = row
	}
	return mathkit.DenseFromRows(rows)
}

func TestNewtonSolvesInOneStepOnQuadratic(t *testing.T) {
	pw := problem.New[float64](sphere{})
	slv := newton.New[float64](1.0, 1e-8)

	st := state.New[float64]().WithParam(mathkit.VectorFromSlice([]float64{3, -4}))
	st, _, err := slv.Init(pw, st)
	require.NoError(t, err)
	initialCost := st.Cost

	st, _, err = slv.NextIter(pw, st)
	require.NoError(t, err)
	require.Less(t, st.Cost, initialCost)

	x0, _ := st.Param.At(0)
	x1, _ := st.Param.At(1)
	require.InDelta(t, 0.0, x0, 1e-9)
	require.InDelta(t, 0.0, x1, 1e-9)
}
