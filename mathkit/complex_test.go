package mathkit_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/stretchr/testify/require"
)

func TestNewComplexShapeMismatch(t *testing.T) {
	re := vec(1, 2, 3)
	im := vec(1, 2)
	_, err := mathkit.NewComplex[float64](re, im)
	require.Error(t, err)
}

func TestConjComplexNegatesImaginary(t *testing.T) {
	c, err := mathkit.NewComplex[float64](vec(1, 2), vec(3, 4))
	require.NoError(t, err)
	conj, err := mathkit.ConjComplex[float64](c)
	require.NoError(t, err)
	re0, _ := conj.ReAt(0)
	im0, _ := conj.ImAt(0)
	require.Equal(t, 1.0, re0)
	require.Equal(t, -3.0, im0)
}

func TestSignumComplexIndependentParts(t *testing.T) {
	c, err := mathkit.NewComplex[float64](vec(-2, 0, 5), vec(3, 0, -1))
	require.NoError(t, err)
	s := mathkit.SignumComplex[float64](c)
	re0, _ := s.ReAt(0)
	im0, _ := s.ImAt(0)
	require.Equal(t, -1.0, re0)
	require.Equal(t, 1.0, im0)
	re2, _ := s.ReAt(2)
	im2, _ := s.ImAt(2)
	require.Equal(t, 1.0, re2)
	require.Equal(t, -1.0, im2)
}

func TestComplexNormsUseComponentMagnitude(t *testing.T) {
	c, err := mathkit.NewComplex[float64](vec(3, 0), vec(4, 0))
	require.NoError(t, err)
	l1, err := mathkit.L1NormComplex[float64](c)
	require.NoError(t, err)
	require.InDelta(t, 5.0, l1, 1e-12) // |3+4i| = 5, |0+0i| = 0

	l2, err := mathkit.L2NormComplex[float64](c)
	require.NoError(t, err)
	require.InDelta(t, 5.0, l2, 1e-12) // sqrt(5^2 + 0^2) = 5
}

func TestComplexSignumZero(t *testing.T) {
	c, err := mathkit.NewComplex[float64](vec(0), vec(0))
	require.NoError(t, err)
	s := mathkit.SignumComplex[float64](c)
	re0, _ := s.ReAt(0)
	require.Equal(t, 0.0, re0)
	require.False(t, math.Signbit(re0))
}
