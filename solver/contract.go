// SPDX-License-Identifier: MIT
// Package solver declares the state-machine contract every algorithm in
// the catalog implements (spec.md §4.7): a stable NAME, Init (called
// exactly once before any NextIter), NextIter (exactly one algorithmic
// step, never incrementing Iter — that is the Executor's job), and an
// optional TerminateInternal convergence check. Grounded on the teacher's
// small-interface-plus-concrete-implementers pattern (matrix.Matrix with
// *Dense/adjacency/incidence implementers).
package solver

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/state"
)

// Solver is the iterative-solver contract driven by executor.Run.
type Solver[F mathkit.Real] interface {
	// Name returns a stable identifier, used in checkpoint envelopes and
	// streamobserver's NewRun frame.
	Name() string
	// Init seeds any state fields the solver needs (e.g. the initial
	// gradient), failing with optimerr.NotInitialized if a required
	// field (typically Param) is absent. Called exactly once.
	Init(pw *problem.Wrapper[F], s *state.IterState[F]) (*state.IterState[F], *kv.Log, error)
	// NextIter performs exactly one algorithmic step.
	NextIter(pw *problem.Wrapper[F], s *state.IterState[F]) (*state.IterState[F], *kv.Log, error)
	// TerminateInternal performs a convergence check proprietary to the
	// solver (e.g. ‖gradient‖ below a tolerance). Returns state.Zero when
	// the solver has no opinion.
	TerminateInternal(s *state.IterState[F]) state.Status
}

// PopulationSolver is the population-state analogue of Solver, for
// particle swarm, Nelder-Mead and CMA-ES. Simulated annealing implements
// Solver over IterState, not this interface.
type PopulationSolver[F mathkit.Real] interface {
	Name() string
	Init(pw *problem.Wrapper[F], s *state.PopulationState[F]) (*state.PopulationState[F], *kv.Log, error)
	NextIter(pw *problem.Wrapper[F], s *state.PopulationState[F]) (*state.PopulationState[F], *kv.Log, error)
	TerminateInternal(s *state.PopulationState[F]) state.Status
}

// LineSearch is the inner-solver contract used by Gradient Descent,
// Newton-CG, Nonlinear CG, and the quasi-Newton family: given a starting
// point, its cost and gradient, and a search direction, produce a step
// length satisfying the search's sufficient-decrease condition.
type LineSearch[F mathkit.Real] interface {
	Name() string
	Search(pw *problem.Wrapper[F], x0 mathkit.Container[F], f0 F, g0, direction mathkit.Container[F]) (alpha F, err error)
}

// TrustRegionSubproblem is the common contract Trust Region's subproblem
// solvers (CauchyPoint, Dogleg, Steihaug) implement: given the current
// gradient, Hessian, and radius, produce a bounded step.
type TrustRegionSubproblem[F mathkit.Real] interface {
	Name() string
	Solve(g, h mathkit.Container[F], delta F) (step mathkit.Container[F], err error)
}

// BetaUpdate is Nonlinear CG's strategy object (spec.md §4.9:
// "update(gₖ, gₖ₊₁, pₖ) → β").
type BetaUpdate[F mathkit.Real] interface {
	Name() string
	Update(gPrev, gCur, pPrev mathkit.Container[F]) (F, error)
}

// StatefulSolver is implemented by catalog solvers that carry private
// per-iteration state beyond what IterState holds — a history ring buffer,
// a trust-region radius, a previous search direction (spec.md §9's
// "sub-solvers as owned inner state"). executor.Run's checkpoint path
// type-asserts Solver against this interface: when present, SnapshotState
// is called alongside state.IterState.ToSnapshot on Save, and RestoreState
// is called alongside state.FromSnapshot on Load, so a resumed run carries
// forward the same private fields an uninterrupted run would have built up
// (spec.md §4.6's "save(solver, state)" / "load() → (solver, state)").
// Solvers with no private state beyond IterState (GradientDescent,
// Landweber, Newton, BFGS, DFP, SR1, ...) simply don't implement it.
type StatefulSolver interface {
	// SnapshotState gob-encodes the solver's private fields into an
	// opaque blob suitable for a checkpoint payload.
	SnapshotState() ([]byte, error)
	// RestoreState decodes a blob previously returned by SnapshotState,
	// repopulating the solver's private fields in place.
	RestoreState(blob []byte) error
}

// TemperatureSchedule is SimulatedAnnealing's pluggable strategy object.
type TemperatureSchedule[F mathkit.Real] interface {
	Temperature(iter int) F
}

// LinearProgramSolver is the tableau-state analogue of Solver, for the
// simplex method (spec.md §4.9's "Simplex (LP)").
type LinearProgramSolver[F mathkit.Real] interface {
	Name() string
	Init(s *state.LinearProgramState[F]) (*state.LinearProgramState[F], *kv.Log, error)
	NextIter(s *state.LinearProgramState[F]) (*state.LinearProgramState[F], *kv.Log, error)
	TerminateInternal(s *state.LinearProgramState[F]) state.Status
}
