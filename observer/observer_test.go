package observer_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/observer"
	"github.com/katalvlaran/optimcore/state"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	inits int
	iters int
	fail  bool
}

func (r *recordingObserver) ObserveInit(name string, s *state.IterState[float64], log *kv.Log) error {
	r.inits++
	return nil
}

func (r *recordingObserver) ObserveIter(s *state.IterState[float64], log *kv.Log) error {
	r.iters++
	if r.fail {
		return errors.New("boom")
	}
	return nil
}

func TestAlwaysFiresEveryIteration(t *testing.T) {
	f := observer.New[float64]()
	rec := &recordingObserver{}
	f.Add(rec, observer.Always())
	s := state.New[float64]()
	for i := 0; i < 3; i++ {
		s = s.IncrementIter()
		require.NoError(t, f.Iter(s, kv.New(), false))
	}
	require.Equal(t, 3, rec.iters)
}

func TestEveryNFiltersIterations(t *testing.T) {
	f := observer.New[float64]()
	rec := &recordingObserver{}
	f.Add(rec, observer.Every(2))
	s := state.New[float64]()
	for i := 0; i < 4; i++ {
		s = s.IncrementIter()
		require.NoError(t, f.Iter(s, kv.New(), false))
	}
	require.Equal(t, 2, rec.iters) // iter 2, iter 4
}

func TestNewBestOnlyFiresOnImprovement(t *testing.T) {
	f := observer.New[float64]()
	rec := &recordingObserver{}
	f.Add(rec, observer.NewBest())
	s := state.New[float64]()
	require.NoError(t, f.Iter(s, kv.New(), false))
	require.NoError(t, f.Iter(s, kv.New(), true))
	require.Equal(t, 1, rec.iters)
}

func TestNeverSuppresses(t *testing.T) {
	f := observer.New[float64]()
	rec := &recordingObserver{}
	f.Add(rec, observer.Never())
	require.NoError(t, f.Iter(state.New[float64](), kv.New(), true))
	require.Equal(t, 0, rec.iters)
}

func TestObserverErrorAbortsRun(t *testing.T) {
	f := observer.New[float64]()
	rec := &recordingObserver{fail: true}
	f.Add(rec, observer.Always())
	err := f.Iter(state.New[float64](), kv.New(), false)
	require.Error(t, err)
}

func TestEveryPanicsOnNonPositiveN(t *testing.T) {
	require.Panics(t, func() { observer.Every(0) })
}
