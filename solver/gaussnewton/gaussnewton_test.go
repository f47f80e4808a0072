package gaussnewton_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/gaussnewton"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

// linearFit is a trivial least-squares problem: residual r(x) = A*x - b for
// a single unknown, A = [[1],[2]], b = [2,5]. Jacobian is constant A; Gauss-
// Newton should land on the least-squares solution in one step.
type linearFit struct{}

var linA = []float64{1, 2}
var linB = []float64{2, 5}

func (linearFit) Cost(x mathkit.Container[float64]) (float64, error) {
	v, _ := x.At(0)
	var sum float64
	for i, a := range linA {
		r := a*v - linB[i]
		sum += 0.5 * r * r
	}
	return sum, nil
}

func (linearFit) Jacobian(x mathkit.Container[float64]) (mathkit.Container[float64], error) {
	m, _ := mathkit.DenseFromRows([][]float64{{linA[0]}, {linA[1]}})
	return m, nil
}

func (linearFit) Residuals(x mathkit.Container[float64]) (mathkit.Container[float64], error) {
	v, _ := x.At(0)
	data := make([]float64, len(linA))
	for i, a := range linA {
		data[i] = a*v - linB[i]
	}
	return mathkit.VectorFromSlice(data), nil
}

func TestGaussNewtonSolvesLinearLeastSquares(t *testing.T) {
	pw := problem.New[float64](linearFit{})
	s := gaussnewton.New[float64](nil, 1e-10)
	st := state.New[float64]().WithParam(mathkit.NewScalar(0.0))

	st, _, err := s.Init(pw, st)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		if s.TerminateInternal(st).Reason != 0 {
			break
		}
		st, _, err = s.NextIter(pw, st)
		require.NoError(t, err)
	}
	x, _ := st.Param.At(0)
	require.InDelta(t, 12.0/5.0, x, 1e-6)
}
