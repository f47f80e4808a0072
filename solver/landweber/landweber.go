// SPDX-License-Identifier: MIT
// Package landweber implements the fixed-step gradient iteration
// x <- x - omega*grad(x) (spec.md §4.9's "Landweber"), the simplest solver
// in the catalog and the one exercised by the checkpoint-resume scenario
// (spec.md §8.F).
package landweber

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver performs a fixed-step gradient descent.
type Solver[F mathkit.Real] struct {
	Omega F
}

// New returns a Landweber Solver with the given fixed step omega.
func New[F mathkit.Real](omega F) *Solver[F] { return &Solver[F]{Omega: omega} }

func (s *Solver[F]) Name() string { return "Landweber" }

// Init seeds Cost/Grad at the starting point.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "landweber: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	g, err := pw.Gradient(st.Param)
	if err != nil {
		return nil, nil, err
	}
	return st.WithCost(f).WithGradient(g), kv.New().Set("cost", f), nil
}

// NextIter performs x <- x - omega*grad(x).
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	xNext, err := vecmath.Axpy(st.Param, -s.Omega, st.Grad)
	if err != nil {
		return nil, nil, err
	}
	fNext, err := pw.Cost(xNext)
	if err != nil {
		return nil, nil, err
	}
	gNext, err := pw.Gradient(xNext)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithParam(xNext).WithCost(fNext).WithGradient(gNext)
	return out, kv.New().Set("cost", fNext), nil
}

// TerminateInternal never fires; Landweber relies entirely on the
// Executor's max_iters/target_cost limits.
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	return state.Zero
}
