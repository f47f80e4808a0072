// SPDX-License-Identifier: MIT
// Package gradientdescent implements steepest descent: each iteration takes
// a unit descent direction −g/‖g‖ and hands it to an inner solver.LineSearch
// (spec.md §4.9's "Steepest/Gradient descent"). Grounded on tsp/two_opt.go's
// propose-then-accept step shape, generalized to a continuous line search.
package gradientdescent

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives steepest descent via an injected line search.
type Solver[F mathkit.Real] struct {
	LineSearch solver.LineSearch[F]
	GradTol    F // TerminateInternal fires when ‖g‖ <= GradTol; 0 disables
}

// New returns a gradient-descent Solver composing ls.
func New[F mathkit.Real](ls solver.LineSearch[F], gradTol F) *Solver[F] {
	return &Solver[F]{LineSearch: ls, GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "GradientDescent" }

// Init requires Param to already be set; seeds Cost/Grad at the starting
// point.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "gradientdescent: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	g, err := pw.Gradient(st.Param)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithCost(f).WithGradient(g)
	return out, kv.New().Set("cost", f), nil
}

// NextIter performs one steepest-descent step.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	norm := vecmath.Norm2(st.Grad)
	if norm == 0 {
		return st, kv.New().Set("grad_norm", norm), nil
	}
	direction := vecmath.Scale(-1/norm, st.Grad)

	alpha, err := s.LineSearch.Search(pw, st.Param, st.Cost, st.Grad, direction)
	if err != nil {
		return nil, nil, err
	}
	xNext, err := vecmath.Axpy(st.Param, alpha, direction)
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
	log := kv.New().Set("alpha", alpha).Set("grad_norm", vecmath.Norm2(gNext))
	return out, log, nil
}

// TerminateInternal fires SolverConverged when ‖g‖ <= GradTol.
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	if s.GradTol <= 0 {
		return state.Zero
	}
	if vecmath.Norm2(st.Grad) <= s.GradTol {
		return state.Status{Reason: state.SolverConverged, Tag: "gradient norm below tolerance"}
	}
	return state.Zero
}
