package nativef32_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit/nativef32"
	"github.com/stretchr/testify/require"
)

func TestAddFloat32Vectors(t *testing.T) {
	a := nativef32.VectorFromSlice([]float32{1, 2, 3})
	b := nativef32.VectorFromSlice([]float32{10, 20, 30})
	out, err := nativef32.Add(a, b)
	require.NoError(t, err)
	got, err := out.At(0)
	require.NoError(t, err)
	require.Equal(t, float32(11), got)
}

func TestInvFloat32Scalar(t *testing.T) {
	inv, err := nativef32.Inv(nativef32.NewScalar(4))
	require.NoError(t, err)
	got, _ := inv.At(0)
	require.Equal(t, float32(0.25), got)
}

func TestL2NormFloat32(t *testing.T) {
	v := nativef32.VectorFromSlice([]float32{3, 4})
	require.Equal(t, float32(5), nativef32.L2Norm(v))
}

func TestDotFloat32MatrixVector(t *testing.T) {
	m, err := nativef32.DenseFromRows([][]float32{{2, 0}, {0, 2}})
	require.NoError(t, err)
	v := nativef32.VectorFromSlice([]float32{3, 5})
	out, err := nativef32.Dot(m, v)
	require.NoError(t, err)
	g0, _ := out.At(0)
	g1, _ := out.At(1)
	require.Equal(t, float32(6), g0)
	require.Equal(t, float32(10), g1)
}
