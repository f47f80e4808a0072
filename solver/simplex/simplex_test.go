package simplex_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/solver/simplex"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

// max 3x+2y s.t. x+y<=4, x+3y<=6, x,y>=0, encoded as a minimization of
// -3x-2y with slack variables s1,s2. Tableau columns: [x, y, s1, s2, rhs].
func TestSimplexSolvesSmallLP(t *testing.T) {
	tableau, err := mathkit.DenseFromRows([][]float64{
		{1, 1, 1, 0, 4},
		{1, 3, 0, 1, 6},
		{-3, -2, 0, 0, 0},
	})
	require.NoError(t, err)

	st := state.NewLinearProgram[float64](tableau, []int{2, 3})
	s := simplex.New[float64](1e-9)

	st, _, err = s.Init(st)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		if s.TerminateInternal(st).Reason != 0 {
			break
		}
		st, _, err = s.NextIter(st)
		require.NoError(t, err)
	}
	require.True(t, s.TerminateInternal(st).Terminated())

	// The objective row's RHS holds -(c^T x): at the optimum x=4, y=0 the
	// minimum of -3x-2y is -12, so the cell reads 12.
	objVal, err := st.Tableau.AtRC(st.Tableau.Rows()-1, st.Tableau.Cols()-1)
	require.NoError(t, err)
	require.InDelta(t, 12.0, objVal, 1e-6)
}
