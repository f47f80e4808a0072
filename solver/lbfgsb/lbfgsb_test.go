package lbfgsb_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/lbfgsb"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

// sphere is f(x) = sum(x_i^2), unconstrained minimum at the origin, but
// the box [1,5]^2 keeps it away from the unconstrained optimum.
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

func TestLBFGSBRespectsBoxConstraint(t *testing.T) {
	pw := problem.New[float64](sphere{})
	lo := mathkit.VectorFromSlice([]float64{1, 1})
	hi := mathkit.VectorFromSlice([]float64{5, 5})
	s := lbfgsb.New[float64](lo, hi, 7, 1e-8)

	st := state.New[float64]().WithParam(mathkit.VectorFromSlice([]float64{4, 4}))
	st, _, err := s.Init(pw, st)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		st, _, err = s.NextIter(pw, st)
		require.NoError(t, err)
	}
	x0, _ := st.Param.At(0)
	x1, _ := st.Param.At(1)
	require.InDelta(t, 1.0, x0, 1e-3)
	require.InDelta(t, 1.0, x1, 1e-3)
}
