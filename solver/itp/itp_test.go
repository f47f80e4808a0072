package itp_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/itp"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

type cubic struct{}

func (cubic) Cost(x mathkit.Container[float64]) (float64, error) {
	v, _ := x.At(0)
	return (v + 3) * (v + 1) * (v + 1), nil
}

func TestITPFindsRoot(t *testing.T) {
	pw := problem.New[float64](cubic{})
	s := itp.New[float64](-4, -2, 1e-10, 1)
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
	require.InDelta(t, -3.0, x, 1e-6)
}
