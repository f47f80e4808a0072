package ralg_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/ralg"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

// absSum is f(x) = sum(|x_i|), non-smooth at the origin; its subgradient
// is sign(x), with sign(0) taken as 0.
type absSum struct{}

func (absSum) Cost(x mathkit.Container[float64]) (float64, error) {
	var sum float64
	n := x.Shape().Size()
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		if v < 0 {
			sum -= v
		} else {
			sum += v
		}
	}
	return sum, nil
}

func (absSum) Gradient(x mathkit.Container[float64]) (mathkit.Container[float64], error) {
	n := x.Shape().Size()
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		switch {
		case v > 0:
			data[i] = 1
		case v < 0:
			data[i] = -1
		}
	}
	return mathkit.VectorFromSlice(data), nil
}

func TestRalgReducesCost(t *testing.T) {
	pw := problem.New[float64](absSum{})
	s := ralg.New[float64](1.0, 0)

	st := state.New[float64]().WithParam(mathkit.VectorFromSlice([]float64{5, -3}))
	st, _, err := s.Init(pw, st)
	require.NoError(t, err)
	initialCost := st.Cost

	for i := 0; i < 500; i++ {
		st = st.IncrementIter()
		st, _, err = s.NextIter(pw, st)
		require.NoError(t, err)
	}
	require.Less(t, st.Cost, initialCost)
}
