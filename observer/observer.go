// SPDX-License-Identifier: MIT
// Package observer implements the Observer fan-out contract (spec.md §4.5):
// registered observers are called sequentially on the calling goroutine
// after each iteration's state update, filtered by a per-observer trigger
// mode. Grounded on the teacher's functional-options-with-validation style
// (builder/options.go) for trigger-mode configuration, generalized from a
// config-mutation closure to a small closed Mode type since trigger modes
// are a fixed enumeration rather than open-ended configuration knobs.
package observer

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/state"
)

// Observer receives lifecycle callbacks from an Executor run.
type Observer[F mathkit.Real] interface {
	// ObserveInit is called once, after solver.Init, before the main loop.
	ObserveInit(name string, s *state.IterState[F], log *kv.Log) error
	// ObserveIter is called after each successful iteration, subject to
	// the observer's trigger mode.
	ObserveIter(s *state.IterState[F], log *kv.Log) error
}

// Mode selects when a registered Observer fires.
type Mode struct {
	kind modeKind
	n    int
}

type modeKind int

const (
	always modeKind = iota
	every
	newBest
	never
)

// Always fires on every iteration.
func Always() Mode { return Mode{kind: always} }

// Every fires when iter % n == 0. Panics if n <= 0 (a malformed trigger
// configuration is a programmer error, not a runtime condition — matching
// the teacher's option-constructor fail-fast convention).
func Every(n int) Mode {
	if n <= 0 {
		panic("observer: Every: n must be > 0")
	}
	return Mode{kind: every, n: n}
}

// NewBest fires only on iterations where best_cost strictly decreased.
func NewBest() Mode { return Mode{kind: newBest} }

// Never suppresses the observer (useful for runtime-toggled observers).
func Never() Mode { return Mode{kind: never} }

func (m Mode) fires(iter int, bestImproved bool) bool {
	switch m.kind {
	case always:
		return true
	case every:
		return iter%m.n == 0
	case newBest:
		return bestImproved
	case never:
		return false
	default:
		return false
	}
}

type registration[F mathkit.Real] struct {
	obs  Observer[F]
	mode Mode
}

// FanOut holds the registered observers for one Executor run and dispatches
// ObserveInit/ObserveIter to each per its Mode.
type FanOut[F mathkit.Real] struct {
	regs []registration[F]
}

// New returns an empty FanOut.
func New[F mathkit.Real]() *FanOut[F] { return &FanOut[F]{} }

// Add registers obs under mode.
func (f *FanOut[F]) Add(obs Observer[F], mode Mode) {
	f.regs = append(f.regs, registration[F]{obs: obs, mode: mode})
}

// Init calls ObserveInit on every registered observer, in registration
// order, regardless of trigger mode (spec.md §4.8 step 2: "invoke
// observe_init on every observer").
func (f *FanOut[F]) Init(name string, s *state.IterState[F], log *kv.Log) error {
	for _, r := range f.regs {
		if err := r.obs.ObserveInit(name, s, log); err != nil {
			return optimerr.Wrap(optimerr.Other, "observer: ObserveInit failed", err)
		}
	}
	return nil
}

// Iter calls ObserveIter on every observer whose Mode fires for this
// iteration, in registration order. bestImproved must reflect whether this
// iteration's WithCost call strictly reduced BestCost (needed for NewBest).
func (f *FanOut[F]) Iter(s *state.IterState[F], log *kv.Log, bestImproved bool) error {
	for _, r := range f.regs {
		if !r.mode.fires(s.Iter, bestImproved) {
			continue
		}
		if err := r.obs.ObserveIter(s, log); err != nil {
			return optimerr.Wrap(optimerr.Other, "observer: ObserveIter failed", err)
		}
	}
	return nil
}
