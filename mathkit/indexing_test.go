package mathkit_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/stretchr/testify/require"
)

func TestTakeDenseRows(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	out, err := mathkit.Take[float64](m, []int{2, 0}, 0)
	require.NoError(t, err)
	od := out.(*mathkit.Dense[float64])
	require.Equal(t, 2, od.Rows())
	v00, _ := od.AtRC(0, 0)
	v01, _ := od.AtRC(0, 1)
	require.Equal(t, 5.0, v00)
	require.Equal(t, 6.0, v01)
}

func TestTakeDenseCols(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	out, err := mathkit.Take[float64](m, []int{2, 1}, 1)
	require.NoError(t, err)
	od := out.(*mathkit.Dense[float64])
	require.Equal(t, 2, od.Cols())
	v00, _ := od.AtRC(0, 0)
	v01, _ := od.AtRC(0, 1)
	require.Equal(t, 3.0, v00)
	require.Equal(t, 2.0, v01)
}

func TestTakeDenseBadAxis(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{1, 2}})
	require.NoError(t, err)
	_, err = mathkit.Take[float64](m, []int{0}, 2)
	require.Error(t, err)
	require.Equal(t, optimerr.InvalidParameter, optimerr.KindOf(err))
}

func TestTakeUnsupportedKind(t *testing.T) {
	_, err := mathkit.Take[float64](mathkit.NewScalar(1.0), []int{0}, 0)
	require.Error(t, err)
	require.Equal(t, optimerr.NotImplemented, optimerr.KindOf(err))
}

func TestGetSetRoundTrip(t *testing.T) {
	v := vec(1, 2, 3)
	require.NoError(t, mathkit.Set[float64](v, 1, 99))
	got, err := mathkit.Get[float64](v, 1)
	require.NoError(t, err)
	require.Equal(t, 99.0, got)
}

func TestSizeHelper(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, 4, mathkit.Size[float64](m))
}

func TestZeroLikePreservesShape(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	z := mathkit.ZeroLike[float64](m)
	require.Equal(t, m.Shape(), z.Shape())
	for i := 0; i < 4; i++ {
		got, _ := z.At(i)
		require.Equal(t, 0.0, got)
	}
}

func TestSignumAndConj(t *testing.T) {
	v := vec(-5, 0, 5)
	s := mathkit.Signum[float64](v)
	g0, _ := s.At(0)
	g1, _ := s.At(1)
	g2, _ := s.At(2)
	require.Equal(t, -1.0, g0)
	require.Equal(t, 0.0, g1)
	require.Equal(t, 1.0, g2)

	c := mathkit.Conj[float64](v)
	for i := 0; i < 3; i++ {
		a, _ := v.At(i)
		b, _ := c.At(i)
		require.Equal(t, a, b)
	}
}

func TestWithEpsilonOverride(t *testing.T) {
	// A matrix whose pivot is smaller than DefaultEpsilon but larger than a
	// relaxed epsilon should invert successfully only with the looser bound.
	m, err := mathkit.DenseFromRows([][]float64{{1e-13, 0}, {0, 1}})
	require.NoError(t, err)
	_, err = mathkit.Inv[float64](m)
	require.Error(t, err)

	_, err = mathkit.Inv[float64](m, mathkit.WithEpsilon(1e-14))
	require.NoError(t, err)
}
