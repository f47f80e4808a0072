package linesearch_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/linesearch"
	"github.com/stretchr/testify/require"
)

// quadratic is f(x) = 0.5 * sum(x_i^2), gradient x.
type quadratic struct{}

func (quadratic) Cost(x mathkit.Container[float64]) (float64, error) {
	var sum float64
	n := x.Shape().Size()
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		sum += 0.5 * v * v
	}
	return sum, nil
}

func (quadratic) Gradient(x mathkit.Container[float64]) (mathkit.Container[float64], error) {
	n := x.Shape().Size()
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i], _ = x.At(i)
	}
	return mathkit.VectorFromSlice(data), nil
}

func TestBacktrackingArmijoDescends(t *testing.T) {
	pw := problem.New[float64](quadratic{})
	x0 := mathkit.VectorFromSlice([]float64{2, 2})
	f0, err := pw.Cost(x0)
	require.NoError(t, err)
	g0, err := pw.Gradient(x0)
	require.NoError(t, err)
	direction := mathkit.VectorFromSlice([]float64{-2, -2})

	ls := linesearch.NewBacktracking[float64](linesearch.Armijo)
	alpha, err := ls.Search(pw, x0, f0, g0, direction)
	require.NoError(t, err)
	require.Greater(t, alpha, 0.0)
	require.LessOrEqual(t, alpha, 1.0)
}

func TestBacktrackingRejectsAscentDirection(t *testing.T) {
	pw := problem.New[float64](quadratic{})
	x0 := mathkit.VectorFromSlice([]float64{2, 2})
	f0, _ := pw.Cost(x0)
	g0, _ := pw.Gradient(x0)
	direction := mathkit.VectorFromSlice([]float64{2, 2})

	ls := linesearch.NewBacktracking[float64](linesearch.Wolfe)
	_, err := ls.Search(pw, x0, f0, g0, direction)
	require.Error(t, err)
}

func TestMoreThuenteSatisfiesStrongWolfe(t *testing.T) {
	pw := problem.New[float64](quadratic{})
	x0 := mathkit.VectorFromSlice([]float64{3, -1})
	f0, _ := pw.Cost(x0)
	g0, _ := pw.Gradient(x0)
	direction := mathkit.VectorFromSlice([]float64{-3, 1})

	ls := linesearch.NewMoreThuente[float64]()
	alpha, err := ls.Search(pw, x0, f0, g0, direction)
	require.NoError(t, err)
	require.Greater(t, alpha, 0.0)
}

func TestHagerZhangAcceptsStep(t *testing.T) {
	pw := problem.New[float64](quadratic{})
	x0 := mathkit.VectorFromSlice([]float64{1, 1})
	f0, _ := pw.Cost(x0)
	g0, _ := pw.Gradient(x0)
	direction := mathkit.VectorFromSlice([]float64{-1, -1})

	ls := linesearch.NewHagerZhang[float64]()
	alpha, err := ls.Search(pw, x0, f0, g0, direction)
	require.NoError(t, err)
	require.Greater(t, alpha, 0.0)
}
