package pso_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/pso"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

// himmelblau is f(x,y) = (x^2+y-11)^2 + (x+y^2-7)^2, four global minima at
// cost 0.
type himmelblau struct{}

func (himmelblau) Cost(x mathkit.Container[float64]) (float64, error) {
	a, _ := x.At(0)
	b, _ := x.At(1)
	t1 := a*a + b - 11
	t2 := a + b*b - 7
	return t1*t1 + t2*t2, nil
}

func TestParticleSwarmFindsNearZero(t *testing.T) {
	pw := problem.New[float64](himmelblau{})
	lo := mathkit.VectorFromSlice([]float64{-5, -5})
	hi := mathkit.VectorFromSlice([]float64{5, 5})
	rng := rand.New(rand.NewSource(42))

	s := pso.New[float64](30, lo, hi, rng, 0)
	st, _, err := s.Init(pw, state.NewPopulation[float64]())
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		st = st.IncrementIter()
		st, _, err = s.NextIter(pw, st)
		require.NoError(t, err)
	}
	require.Less(t, st.BestCost, 1.0)
}
