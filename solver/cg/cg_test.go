package cg_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/cg"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

// diagOperator exposes A = diag(2,3), symmetric positive definite so its own
// transpose equals itself.
type diagOperator struct{}

func (diagOperator) Apply(x mathkit.Container[float64]) (mathkit.Container[float64], error) {
	v0, _ := x.At(0)
	v1, _ := x.At(1)
	return mathkit.VectorFromSlice([]float64{2 * v0, 3 * v1}), nil
}

func (d diagOperator) ApplyTranspose(x mathkit.Container[float64]) (mathkit.Container[float64], error) {
	return d.Apply(x)
}

func TestLinearCGSolvesDiagonalSystem(t *testing.T) {
	pw := problem.New[float64](diagOperator{})
	b := mathkit.VectorFromSlice([]float64{4, 9})
	slv := cg.New[float64](b, 1e-10)

	st := state.New[float64]().WithParam(mathkit.VectorFromSlice([]float64{0, 0}))
	st, _, err := slv.Init(pw, st)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		if slv.TerminateInternal(st).Terminated() {
			break
		}
		st, _, err = slv.NextIter(pw, st)
		require.NoError(t, err)
	}
	require.True(t, slv.TerminateInternal(st).Terminated())

	x0, _ := st.Param.At(0)
	x1, _ := st.Param.At(1)
	require.InDelta(t, 2.0, x0, 1e-6)
	require.InDelta(t, 3.0, x1, 1e-6)
}
