package state_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

func TestCostSetterUpdatesBest(t *testing.T) {
	s := state.New[float64]()
	s = s.WithParam(mathkit.NewScalar(1.0))
	s = s.WithCost(5.0)
	require.Equal(t, 5.0, s.BestCost)

	s = s.WithParam(mathkit.NewScalar(2.0))
	s = s.WithCost(10.0) // worse, best unchanged
	require.Equal(t, 5.0, s.BestCost)

	s = s.WithParam(mathkit.NewScalar(3.0))
	s = s.IncrementIter()
	s = s.WithCost(1.0) // better
	require.Equal(t, 1.0, s.BestCost)
	require.Equal(t, 1, s.LastBestIter)
	bp := s.BestParam.(*mathkit.Scalar[float64])
	require.Equal(t, 3.0, bp.V)
}

func TestPrevFieldsPushedBackOneStep(t *testing.T) {
	s := state.New[float64]()
	s = s.WithParam(mathkit.NewScalar(1.0))
	s = s.WithParam(mathkit.NewScalar(2.0))
	require.Equal(t, 1.0, s.PrevParam.(*mathkit.Scalar[float64]).V)
	require.Equal(t, 2.0, s.Param.(*mathkit.Scalar[float64]).V)
}

func TestIncrementIterExactlyOne(t *testing.T) {
	s := state.New[float64]()
	require.Equal(t, 0, s.Iter)
	s = s.IncrementIter()
	require.Equal(t, 1, s.Iter)
	s = s.IncrementIter()
	require.Equal(t, 2, s.Iter)
}

func TestFuncCountsMonotoneMerge(t *testing.T) {
	s := state.New[float64]()
	s = s.IncrementFuncCounts(map[string]uint64{"cost": 1})
	s = s.IncrementFuncCounts(map[string]uint64{"cost": 2, "gradient": 1})
	require.Equal(t, uint64(3), s.FuncCounts["cost"])
	require.Equal(t, uint64(1), s.FuncCounts["gradient"])
}

func TestLimitReasonMaxIters(t *testing.T) {
	s := state.New[float64]().WithMaxIters(3)
	s = s.IncrementIter()
	s = s.IncrementIter()
	s = s.IncrementIter()
	reason, hit := s.LimitReason()
	require.True(t, hit)
	require.Equal(t, state.MaxItersReached, reason)
}

func TestLimitReasonTargetCost(t *testing.T) {
	s := state.New[float64]().WithTargetCost(0.5)
	s = s.WithCost(0.4)
	reason, hit := s.LimitReason()
	require.True(t, hit)
	require.Equal(t, state.TargetCostReached, reason)
}

func TestCloneIsIndependent(t *testing.T) {
	a := state.New[float64]()
	a = a.IncrementFuncCounts(map[string]uint64{"cost": 1})
	b := a.IncrementFuncCounts(map[string]uint64{"cost": 1})
	require.Equal(t, uint64(1), a.FuncCounts["cost"])
	require.Equal(t, uint64(2), b.FuncCounts["cost"])
}

func TestPopulationBestTracking(t *testing.T) {
	p := state.NewPopulation[float64]()
	p = p.WithPopulation([]state.Individual[float64]{
		{Param: mathkit.NewScalar(1.0), Cost: 3.0},
		{Param: mathkit.NewScalar(2.0), Cost: 1.0},
	})
	require.Equal(t, 1.0, p.BestCost)
	require.True(t, p.HasBest())
}

func TestTakeParamClearsField(t *testing.T) {
	s := state.New[float64]().WithParam(mathkit.NewScalar(9.0))
	p, rest := s.TakeParam()
	require.NotNil(t, p)
	require.Nil(t, rest.Param)
}
