// SPDX-License-Identifier: MIT
// Package state carries the per-iteration record threaded between Executor
// and Solver calls: IterState for the iterative-solver family (simulated
// annealing included), PopulationState for population-based solvers
// (particle swarm, CMA-ES, Nelder-Mead), and LinearProgramState for the
// simplex method.
// Grounded on the teacher's core package's immutable-facade-over-mutable-
// internals shape (core/methods.go's copy-on-write vertex/edge slices):
// every mutator here returns a new, independently owned State value.
package state

// Reason enumerates why a run stopped.
type Reason int

const (
	NotTerminated Reason = iota
	MaxItersReached
	TargetCostReached
	TargetPrecisionReached
	SolverConverged
	SolverExit
	Aborted
	KeyboardInterrupt
)

func (r Reason) String() string {
	switch r {
	case NotTerminated:
		return "NotTerminated"
	case MaxItersReached:
		return "MaxItersReached"
	case TargetCostReached:
		return "TargetCostReached"
	case TargetPrecisionReached:
		return "TargetPrecisionReached"
	case SolverConverged:
		return "SolverConverged"
	case SolverExit:
		return "SolverExit"
	case Aborted:
		return "Aborted"
	case KeyboardInterrupt:
		return "KeyboardInterrupt"
	default:
		return "Unknown"
	}
}

// Status pairs a Reason with an optional free-text tag (spec.md's
// SolverConverged(tag)/SolverExit(tag)).
type Status struct {
	Reason Reason
	Tag    string
}

// Terminated reports whether s represents a terminal status.
func (s Status) Terminated() bool { return s.Reason != NotTerminated }

// Zero is the initial, non-terminal status.
var Zero = Status{Reason: NotTerminated}
