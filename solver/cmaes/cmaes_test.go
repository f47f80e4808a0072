package cmaes_test

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/cmaes"
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

func TestCMAESReducesBestCost(t *testing.T) {
	pw := problem.New[float64](sphere{})
	src := rand.NewSource(7)
	s := cmaes.New[float64](0, 0.5, src)

	st := state.NewPopulation[float64]()
	st = st.WithPopulation([]state.Individual[float64]{{Param: mathkit.VectorFromSlice([]float64{3, -2})}})

	st, _, err := s.Init(pw, st)
	require.NoError(t, err)
	initialBest := st.BestCost

	for i := 0; i < 50; i++ {
		st, _, err = s.NextIter(pw, st)
		require.NoError(t, err)
	}
	require.Less(t, st.BestCost, initialBest)
}
