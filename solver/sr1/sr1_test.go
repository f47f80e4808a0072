package sr1_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/linesearch"
	"github.com/katalvlaran/optimcore/solver/sr1"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

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

func TestSR1ConvergesOnSphere(t *testing.T) {
	pw := problem.New[float64](sphere{})
	ls := linesearch.NewBacktracking[float64](linesearch.Armijo)
	slv := sr1.New[float64](ls, 1e-8)

	st := state.New[float64]().WithParam(mathkit.VectorFromSlice([]float64{1.5, -2.0}))
	st, _, err := slv.Init(pw, st)
	require.NoError(t, err)
	initialCost := st.Cost

	for i := 0; i < 30; i++ {
		if slv.TerminateInternal(st).Terminated() {
			break
		}
		st, _, err = slv.NextIter(pw, st)
		require.NoError(t, err)
	}
	require.Less(t, st.Cost, initialCost)
}
