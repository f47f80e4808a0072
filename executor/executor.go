// SPDX-License-Identifier: MIT
// Package executor drives a solver.Solver to convergence against a
// problem.Wrapper, coordinating observation and checkpointing (spec.md
// §4.8). Grounded on gonum.org/v1/gonum/optimize's own Problem/Settings/
// Result/Stats naming idiom (see DESIGN.md) composed with the teacher's
// thin-facade style (core/api.go: constructors/getters carry no algorithmic
// logic) — this file stays thin; the run loop lives in run.go.
package executor

import (
	"sync/atomic"
	"time"

	"github.com/katalvlaran/optimcore/checkpoint"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/observer"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/state"
)

// Stats summarizes a completed or aborted run, modeled on gonum/optimize's
// Stats type.
type Stats struct {
	MajorIterations int
	FuncEvaluations map[string]uint64
	Runtime         time.Duration
}

// Result is the Executor's return value: the final solver, problem
// wrapper, and state, plus a derived Stats summary.
type Result[F mathkit.Real] struct {
	Solver  solver.Solver[F]
	Problem *problem.Wrapper[F]
	State   *state.IterState[F]
	Stats   Stats
}

// Executor drives one solver.Solver against one problem.Wrapper.
type Executor[F mathkit.Real] struct {
	problem *problem.Wrapper[F]
	solver  solver.Solver[F]
	state   *state.IterState[F]

	fanout     *observer.FanOut[F]
	checkpoint *checkpoint.Checkpointer
	checkpointFreq checkpoint.Frequency
	runName        string

	aborted *atomic.Bool
}

// New constructs an Executor for problem and slv, starting from init
// (typically state.New[F]() with Param seeded via WithParam).
func New[F mathkit.Real](p *problem.Wrapper[F], slv solver.Solver[F], init *state.IterState[F]) *Executor[F] {
	return &Executor[F]{
		problem:        p,
		solver:         slv,
		state:          init,
		fanout:         observer.New[F](),
		checkpointFreq: checkpoint.Never(),
		runName:        slv.Name(),
		aborted:        &atomic.Bool{},
	}
}

// Configure applies fn to the Executor's current state, for pre-run
// configuration (max_iters, target_cost, …).
func (e *Executor[F]) Configure(fn func(*state.IterState[F]) *state.IterState[F]) *Executor[F] {
	e.state = fn(e.state)
	return e
}

// AddObserver registers obs under mode.
func (e *Executor[F]) AddObserver(obs observer.Observer[F], mode observer.Mode) *Executor[F] {
	e.fanout.Add(obs, mode)
	return e
}

// Checkpointing attaches cp with the given save frequency.
func (e *Executor[F]) Checkpointing(cp *checkpoint.Checkpointer, freq checkpoint.Frequency) *Executor[F] {
	e.checkpoint = cp
	e.checkpointFreq = freq
	return e
}

// Abort sets the cancellation flag checked at the top of each iteration
// (spec.md §5); an Observer can call this from ObserveIter.
func (e *Executor[F]) Abort() {
	e.aborted.Store(true)
}

// State returns the Executor's current state (for checkpoint payloads
// assembled by the caller between Configure and Run).
func (e *Executor[F]) State() *state.IterState[F] { return e.state }
