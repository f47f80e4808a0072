// SPDX-License-Identifier: MIT
package executor

import (
	"time"

	"github.com/katalvlaran/optimcore/checkpoint"
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/state"
)

// checkpointPayload bundles the IterState snapshot with the solver's own
// private state, when it carries any (spec.md §4.6: "save(solver, state)" /
// "load() → (solver, state)"). SolverState is left nil for solvers that
// don't implement solver.StatefulSolver, in which case a resume restores
// only the IterState (solver.Init is not called again, since the restored
// Iter is non-zero).
type checkpointPayload[F mathkit.Real] struct {
	State       state.Snapshot[F]
	SolverState []byte
}

// Run drives the configured solver to convergence (spec.md §4.8's run
// loop), returning the last known-good Result even on error so the caller
// can inspect partial progress (spec.md §7: "errors... surfaced... with
// the last known good state attached").
func (e *Executor[F]) Run() (Result[F], error) {
	start := time.Now()

	if e.checkpoint != nil {
		payload, err := e.checkpoint.Load()
		switch {
		case err == nil:
			var cp checkpointPayload[F]
			if decErr := checkpoint.DecodeGob(payload, &cp); decErr != nil {
				return e.result(start), decErr
			}
			e.state = state.FromSnapshot[F](cp.State)
			if len(cp.SolverState) > 0 {
				sf, ok := e.solver.(solver.StatefulSolver)
				if !ok {
					return e.result(start), optimerr.New(optimerr.NotImplemented,
						"executor: checkpoint carries solver state but "+e.solver.Name()+" does not implement solver.StatefulSolver")
				}
				if restoreErr := sf.RestoreState(cp.SolverState); restoreErr != nil {
					return e.result(start), restoreErr
				}
			}
		case optimerr.KindOf(err) == optimerr.CheckpointNotFound:
			// Proceed with the fresh state the caller supplied.
		default:
			return e.result(start), err
		}
	}

	if e.state.Iter == 0 {
		next, initLog, err := e.solver.Init(e.problem, e.state)
		if err != nil {
			return e.result(start), optimerr.Wrap(optimerr.Other, "executor: solver.Init failed", err)
		}
		e.state = next

		core := kv.New().
			Set("max_iters", e.state.MaxIters).
			Set("target_cost", e.state.TargetCost)
		if e.state.Param != nil {
			core.Set("initial_param", e.state.Param)
		}
		if initLog != nil {
			core.Merge(initLog)
		}
		if err := e.fanout.Init(e.runName, e.state, core); err != nil {
			return e.result(start), err
		}
	}

	for {
		if e.aborted.Load() {
			e.state = e.state.WithTerminationStatus(state.Status{Reason: state.Aborted})
			break
		}
		if reason, hit := e.state.LimitReason(); hit {
			e.state = e.state.WithTerminationStatus(state.Status{Reason: reason})
			break
		}

		iterStart := time.Now()
		bestBefore := e.state.BestCost
		next, iterLog, err := e.solver.NextIter(e.problem, e.state)
		if err != nil {
			return e.result(start), optimerr.Wrap(optimerr.Other, "executor: solver.NextIter failed", err)
		}
		e.state = next
		e.state = e.state.IncrementIter()
		e.state = e.state.AddTime(time.Since(iterStart))
		e.state = e.state.IncrementFuncCounts(e.problem.TakeCounts())

		bestImproved := e.state.BestCost < bestBefore

		if term := e.solver.TerminateInternal(e.state); term.Terminated() {
			e.state = e.state.WithTerminationStatus(term)
		}

		core := kv.New().
			Set("cost", e.state.Cost).
			Set("best_cost", e.state.BestCost).
			Set("iter", e.state.Iter).
			Set("time", e.state.Time)
		if iterLog != nil {
			core.Merge(iterLog)
		}
		if err := e.fanout.Iter(e.state, core, bestImproved); err != nil {
			return e.result(start), err
		}

		if e.checkpoint != nil && e.checkpointFreq.Fires(e.state.Iter) {
			cp := checkpointPayload[F]{State: e.state.ToSnapshot()}
			if sf, ok := e.solver.(solver.StatefulSolver); ok {
				blob, err := sf.SnapshotState()
				if err != nil {
					return e.result(start), err
				}
				cp.SolverState = blob
			}
			payload, err := checkpoint.EncodeGob(cp)
			if err != nil {
				return e.result(start), err
			}
			if err := e.checkpoint.Save(payload); err != nil {
				return e.result(start), err
			}
		}

		if e.state.TerminationStatus.Terminated() {
			break
		}
	}

	return e.result(start), nil
}

func (e *Executor[F]) result(start time.Time) Result[F] {
	funcCounts := make(map[string]uint64, len(e.state.FuncCounts))
	for k, v := range e.state.FuncCounts {
		funcCounts[k] = v
	}
	return Result[F]{
		Solver:  e.solver,
		Problem: e.problem,
		State:   e.state,
		Stats: Stats{
			MajorIterations: e.state.Iter,
			FuncEvaluations: funcCounts,
			Runtime:         time.Since(start),
		},
	}
}
