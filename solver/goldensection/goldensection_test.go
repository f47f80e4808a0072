package goldensection_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/goldensection"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

type parabola struct{}

func (parabola) Cost(x mathkit.Container[float64]) (float64, error) {
	v, _ := x.At(0)
	return (v - 2) * (v - 2), nil
}

func TestGoldenSectionFindsMinimum(t *testing.T) {
	pw := problem.New[float64](parabola{})
	s := goldensection.New[float64](-10, 10, 1e-8)
	st, _, err := s.Init(pw, state.New[float64]())
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		if s.TerminateInternal(st).Reason != 0 {
			break
		}
		st, _, err = s.NextIter(pw, st)
		require.NoError(t, err)
	}
	x, _ := st.Param.At(0)
	require.InDelta(t, 2.0, x, 1e-3)
}
