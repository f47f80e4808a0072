package neldermead_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/neldermead"
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

func TestNelderMeadReducesSpread(t *testing.T) {
	pw := problem.New[float64](sphere{})
	s := neldermead.New[float64](0.5, 1e-8)

	st := state.NewPopulation[float64]()
	st = st.WithPopulation([]state.Individual[float64]{{Param: mathkit.VectorFromSlice([]float64{3, 3})}})

	st, _, err := s.Init(pw, st)
	require.NoError(t, err)
	initialBest := st.BestCost

	for i := 0; i < 100; i++ {
		if s.TerminateInternal(st).Reason != 0 {
			break
		}
		st, _, err = s.NextIter(pw, st)
		require.NoError(t, err)
	}
	require.Less(t, st.BestCost, initialBest)
	require.InDelta(t, 0.0, st.BestCost, 1e-3)
}
