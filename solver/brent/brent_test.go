package brent_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/brent"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

// cubic is f(x) = (x+3)(x+1)^2, roots at x=-3 and a double root at x=-1.
type cubic struct{}

func (cubic) Cost(x mathkit.Container[float64]) (float64, error) {
	v, _ := x.At(0)
	return (v + 3) * (v + 1) * (v + 1), nil
}

// parabola is f(x) = (x-2)^2, minimum at x=2.
type parabola struct{}

func (parabola) Cost(x mathkit.Container[float64]) (float64, error) {
	v, _ := x.At(0)
	return (v - 2) * (v - 2), nil
}

func TestBrentRootFindsRoot(t *testing.T) {
	pw := problem.New[float64](cubic{})
	r := brent.NewRoot[float64](-4, -2, 1e-9)
	st, _, err := r.Init(pw, state.New[float64]())
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		if r.TerminateInternal(st).Reason != 0 {
			break
		}
		st, _, err = r.NextIter(pw, st)
		require.NoError(t, err)
	}
	x, _ := st.Param.At(0)
	require.InDelta(t, -3.0, x, 1e-6)
}

func TestBrentRootRejectsSameSignBracket(t *testing.T) {
	pw := problem.New[float64](cubic{})
	r := brent.NewRoot[float64](-0.5, 0, 1e-9)
	_, _, err := r.Init(pw, state.New[float64]())
	require.Error(t, err)
}

func TestBrentOptFindsMinimum(t *testing.T) {
	pw := problem.New[float64](parabola{})
	o := brent.NewOpt[float64](-10, 10, 1e-9)
	st, _, err := o.Init(pw, state.New[float64]())
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		if o.TerminateInternal(st).Reason != 0 {
			break
		}
		st, _, err = o.NextIter(pw, st)
		require.NoError(t, err)
	}
	x, _ := st.Param.At(0)
	require.InDelta(t, 2.0, x, 1e-4)
}
