package streamobserver

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"net"
	"time"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/state"
)

// Observer streams a run's frames to a TCP listener, connecting once per
// run and terminating with a Termination frame (spec.md §6).
type Observer[F mathkit.Real] struct {
	name     string
	solver   string
	selected map[string]bool

	conn net.Conn
	w    *bufio.Writer
}

// Dial connects to addr (host:port, DefaultPort if port omitted) and
// returns a streaming Observer for the named run. selected restricts which
// kv names are forwarded in Samples frames; nil/empty forwards all.
func Dial[F mathkit.Real](addr, name, solver string, selected []string) (*Observer[F], error) {
	if addr == "" {
		addr = fmt.Sprintf("127.0.0.1:%d", DefaultPort)
	} else if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, fmt.Sprint(DefaultPort))
	}
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, optimerr.Wrap(optimerr.Other, "streamobserver: dial failed", err)
	}
	w := bufio.NewWriter(conn)
	sel := make(map[string]bool, len(selected))
	for _, s := range selected {
		sel[s] = true
	}
	return &Observer[F]{
		name:     name,
		solver:   solver,
		selected: sel,
		conn:     conn,
		w:        w,
	}, nil
}

func (o *Observer[F]) send(f Frame) error {
	// Frames are length-prefixed: a uint32 byte count followed by a
	// gob-encoded Frame, so a reader can demultiplex a stream of frames
	// without relying on gob's own (stream-oriented) framing.
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(f); err != nil {
		return optimerr.Wrap(optimerr.Other, "streamobserver: encode failed", err)
	}
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(buf.Len()))
	if _, err := o.w.Write(lenPrefix[:]); err != nil {
		return optimerr.Wrap(optimerr.Other, "streamobserver: write length prefix failed", err)
	}
	if _, err := o.w.Write(buf.Bytes()); err != nil {
		return optimerr.Wrap(optimerr.Other, "streamobserver: write frame failed", err)
	}
	return o.w.Flush()
}

// ObserveInit sends a NewRun frame.
func (o *Observer[F]) ObserveInit(name string, s *state.IterState[F], log *kv.Log) error {
	settings := make(map[string]string)
	var initParam []float64
	hasInit := false
	if s.Param != nil {
		initParam = toFloat64Slice(s.Param)
		hasInit = true
	}
	selected := make([]string, 0, len(o.selected))
	for k := range o.selected {
		selected = append(selected, k)
	}
	return o.send(Frame{
		Kind: KindNewRun,
		NewRun: &NewRunFrame{
			Name:       name,
			Solver:     o.solver,
			MaxIter:    s.MaxIters,
			TargetCost: float64(s.TargetCost),
			InitParam:  initParam,
			HasInit:    hasInit,
			Settings:   settings,
			Selected:   selected,
		},
	})
}

// ObserveIter sends Samples, FuncCounts, Param, and (when best improved)
// BestParam frames for one iteration.
func (o *Observer[F]) ObserveIter(s *state.IterState[F], log *kv.Log) error {
	samples := make(map[string]float64)
	for _, p := range log.Pairs() {
		if len(o.selected) > 0 && !o.selected[p.Name] {
			continue
		}
		if f, ok := toFloat64(p.Value); ok {
			samples[p.Name] = f
		}
	}
	if err := o.send(Frame{
		Kind: KindSamples,
		Samples: &SamplesFrame{
			Name:              o.name,
			Iter:              s.Iter,
			TimeNanos:         s.Time.Nanoseconds(),
			TerminationStatus: s.TerminationStatus.Reason.String(),
			KV:                samples,
		},
	}); err != nil {
		return err
	}

	counts := make(map[string]uint64, len(s.FuncCounts))
	for k, v := range s.FuncCounts {
		counts[k] = v
	}
	if err := o.send(Frame{
		Kind:       KindFuncCounts,
		FuncCounts: &FuncCountsFrame{Name: o.name, Iter: s.Iter, KV: counts},
	}); err != nil {
		return err
	}

	if s.Param != nil {
		if err := o.send(Frame{
			Kind:  KindParam,
			Param: &ParamFrame{Name: o.name, Iter: s.Iter, Param: toFloat64Slice(s.Param)},
		}); err != nil {
			return err
		}
	}

	if s.LastBestIter == s.Iter && s.BestParam != nil {
		if err := o.send(Frame{
			Kind:      KindBestParam,
			BestParam: &BestParamFrame{Name: o.name, Iter: s.Iter, Param: toFloat64Slice(s.BestParam)},
		}); err != nil {
			return err
		}
	}

	return nil
}

// Close sends the terminating Termination frame and closes the connection.
func (o *Observer[F]) Close(status state.Status) error {
	err := o.send(Frame{
		Kind:        KindTermination,
		Termination: &TerminationFrame{Name: o.name, TerminationStatus: status.Reason.String()},
	})
	closeErr := o.conn.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return optimerr.Wrap(optimerr.Other, "streamobserver: close failed", closeErr)
	}
	return nil
}

func toFloat64Slice[F mathkit.Real](c mathkit.Container[F]) []float64 {
	n := c.Shape().Size()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, _ := c.At(i)
		out[i] = float64(v)
	}
	return out
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
