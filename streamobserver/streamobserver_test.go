package streamobserver_test

import (
	"net"
	"testing"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/state"
	"github.com/katalvlaran/optimcore/streamobserver"
	"github.com/stretchr/testify/require"
)

func TestStreamObserverRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	type result struct {
		frames []streamobserver.Frame
		err    error
	}
	done := make(chan result, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			done <- result{err: err}
			return
		}
		defer conn.Close()
		var frames []streamobserver.Frame
		for {
			f, err := streamobserver.ReadFrame(conn)
			if err != nil {
				break
			}
			frames = append(frames, f)
			if f.Kind == streamobserver.KindTermination {
				break
			}
		}
		done <- result{frames: frames}
	}()

	obs, err := streamobserver.Dial[float64](ln.Addr().String(), "run-1", "gradientdescent", nil)
	require.NoError(t, err)

	s := state.New[float64]().WithParam(mathkit.VectorFromSlice([]float64{1, 2})).WithMaxIters(10)
	require.NoError(t, obs.ObserveInit("run-1", s, kv.New()))

	s = s.IncrementIter().WithCost(0.5)
	log := kv.New().Set("cost", 0.5)
	require.NoError(t, obs.ObserveIter(s, log))

	require.NoError(t, obs.Close(state.Status{Reason: state.MaxItersReached}))

	res := <-done
	require.NoError(t, res.err)
	require.GreaterOrEqual(t, len(res.frames), 3)
	require.Equal(t, streamobserver.KindNewRun, res.frames[0].Kind)
	require.Equal(t, "gradientdescent", res.frames[0].NewRun.Solver)
	last := res.frames[len(res.frames)-1]
	require.Equal(t, streamobserver.KindTermination, last.Kind)
	require.Equal(t, "MaxItersReached", last.Termination.TerminationStatus)
}
