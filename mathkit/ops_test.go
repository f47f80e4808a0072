package mathkit_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/stretchr/testify/require"
)

func vec(vals ...float64) *mathkit.Vector[float64] {
	return mathkit.VectorFromSlice(vals)
}

func TestAddVectors(t *testing.T) {
	a, b := vec(1, 2, 3), vec(10, 20, 30)
	out, err := mathkit.Add[float64](a, b)
	require.NoError(t, err)
	for i, want := range []float64{11, 22, 33} {
		got, _ := out.At(i)
		require.Equal(t, want, got)
	}
}

func TestAddShapeMismatch(t *testing.T) {
	a, b := vec(1, 2, 3), vec(1, 2)
	_, err := mathkit.Add[float64](a, b)
	require.Error(t, err)
	require.Equal(t, optimerr.ShapeMismatch, optimerr.KindOf(err))
}

func TestScalarBroadcast(t *testing.T) {
	a := vec(1, 2, 3)
	s := mathkit.NewScalar(10.0)
	out, err := mathkit.Add[float64](s, a)
	require.NoError(t, err)
	for i, want := range []float64{11, 12, 13} {
		got, _ := out.At(i)
		require.Equal(t, want, got)
	}
}

func TestScaledAddSub(t *testing.T) {
	a, v := vec(1, 1, 1), vec(2, 2, 2)
	added, err := mathkit.ScaledAdd[float64](a, 3, v)
	require.NoError(t, err)
	got, _ := added.At(0)
	require.Equal(t, 7.0, got)

	subbed, err := mathkit.ScaledSub[float64](a, 3, v)
	require.NoError(t, err)
	got, _ = subbed.At(0)
	require.Equal(t, -5.0, got)
}

func TestDotVectorVector(t *testing.T) {
	a, b := vec(1, 2, 3), vec(4, 5, 6)
	out, err := mathkit.Dot[float64](a, b)
	require.NoError(t, err)
	got, _ := out.At(0)
	require.Equal(t, 32.0, got)
}

func TestDotMatrixVector(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	v := vec(5, 7)
	out, err := mathkit.Dot[float64](m, v)
	require.NoError(t, err)
	g0, _ := out.At(0)
	g1, _ := out.At(1)
	require.Equal(t, 5.0, g0)
	require.Equal(t, 7.0, g1)
}

func TestOuter(t *testing.T) {
	u, v := vec(1, 2), vec(3, 4)
	m, err := mathkit.Outer[float64](u, v)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())
	g, _ := m.AtRC(1, 0)
	require.Equal(t, 6.0, g)
}

func TestL1L2Norm(t *testing.T) {
	v := vec(-3, 4)
	require.Equal(t, 7.0, mathkit.L1Norm[float64](v))
	require.Equal(t, 5.0, mathkit.L2Norm[float64](v))
}

func TestTransposeRoundTrip(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	tt := mathkit.Transpose[float64](mathkit.Transpose[float64](m))
	td := tt.(*mathkit.Dense[float64])
	require.Equal(t, m.Rows(), td.Rows())
	require.Equal(t, m.Cols(), td.Cols())
	for i := 0; i < m.Rows()*m.Cols(); i++ {
		a, _ := m.At(i)
		b, _ := td.At(i)
		require.Equal(t, a, b)
	}
}

func TestEyeRoundTrip(t *testing.T) {
	id, err := mathkit.Eye[float64](3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, _ := id.AtRC(i, j)
			if i == j {
				require.Equal(t, 1.0, v)
			} else {
				require.Equal(t, 0.0, v)
			}
		}
	}
}

func TestInvIdentityRoundTrip(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{4, 7}, {2, 6}})
	require.NoError(t, err)
	inv, err := mathkit.Inv[float64](m)
	require.NoError(t, err)
	prod, err := mathkit.Dot[float64](m, inv)
	require.NoError(t, err)
	eye, err := mathkit.EyeLike[float64](m)
	require.NoError(t, err)
	pd := prod.(*mathkit.Dense[float64])
	for i := 0; i < 4; i++ {
		a, _ := pd.At(i)
		b, _ := eye.At(i)
		require.InDelta(t, b, a, 1e-9)
	}
}

func TestInvSingularFails(t *testing.T) {
	m, err := mathkit.DenseFromRows([][]float64{{1, 2}, {2, 4}})
	require.NoError(t, err)
	_, err = mathkit.Inv[float64](m)
	require.Error(t, err)
	require.Equal(t, optimerr.NonInvertible, optimerr.KindOf(err))
}

func TestInvScalarZeroFails(t *testing.T) {
	_, err := mathkit.Inv[float64](mathkit.NewScalar(0.0))
	require.Error(t, err)
	require.Equal(t, optimerr.NonInvertible, optimerr.KindOf(err))
}

func TestArgsortStableTies(t *testing.T) {
	v := vec(3, 1, 1, 2)
	idx := mathkit.Argsort[float64](v)
	require.Equal(t, []int{1, 2, 3, 0}, idx)
}

func TestTakeVector(t *testing.T) {
	v := vec(10, 20, 30, 40)
	out, err := mathkit.Take[float64](v, []int{3, 0}, 0)
	require.NoError(t, err)
	g0, _ := out.At(0)
	g1, _ := out.At(1)
	require.Equal(t, 40.0, g0)
	require.Equal(t, 10.0, g1)
}

func TestMinMaxNaNConvention(t *testing.T) {
	a := vec(1, mathNaN())
	b := vec(2, 3)
	min, err := mathkit.Min[float64](a, b)
	require.NoError(t, err)
	g0, _ := min.At(0)
	g1, _ := min.At(1)
	require.Equal(t, 1.0, g0)
	require.Equal(t, 3.0, g1) // NaN in a[1] -> b[1] returned
}

func TestRandomFromRangeDeterministic(t *testing.T) {
	lo, hi := vec(0, 5), vec(1, 5)
	calls := 0
	rng := func() float64 {
		calls++
		return 0.5
	}
	out, err := mathkit.RandomFromRange[float64](lo, hi, rng)
	require.NoError(t, err)
	g0, _ := out.At(0)
	g1, _ := out.At(1)
	require.Equal(t, 0.5, g0)
	require.Equal(t, 5.0, g1) // lo==hi, rng not consulted for this element's value
	require.Equal(t, 1, calls)
}

func mathNaN() float64 {
	var z float64
	return z / z
}
