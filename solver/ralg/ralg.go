// SPDX-License-Identifier: MIT
// Package ralg implements a diminishing-step subgradient method ([ADD]
// supplement to the solver catalog, spec.md's smooth-only methods have no
// answer for a locally Lipschitz but non-differentiable Cost): at
// iteration k, step x <- x - (step0/(1+k)) * g/‖g‖ along whatever vector
// pw.Gradient returns — a subgradient when Cost is non-smooth at x, the
// true gradient otherwise. Grounded on the diminishing-step-length and
// projection idiom of other_examples' Lagrangian-dual subgradient solver
// (step := initialStepLength / (1.0 + float64(k))).
package ralg

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives the subgradient method with a diminishing step size
// step0/(1+iter).
type Solver[F mathkit.Real] struct {
	InitialStep F
	GradTol     F // TerminateInternal fires when ‖g‖ <= GradTol; non-smooth
	// problems rarely drive this to exactly zero, so GradTol is best used
	// as a loose stall detector rather than a tight convergence test.
}

// New returns a subgradient Solver with the given initial step length.
func New[F mathkit.Real](initialStep, gradTol F) *Solver[F] {
	return &Solver[F]{InitialStep: initialStep, GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "ralg" }

// Init seeds Cost/Grad at the starting point.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "ralg: Init: Param must be set before Init")
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

// NextIter takes a step of length step0/(1+iter) along the normalized
// (sub)gradient direction.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	norm := vecmath.Norm2(st.Grad)
	if norm == 0 {
		return st, kv.New().Set("cost", st.Cost).Set("step", F(0)), nil
	}
	step := s.InitialStep / F(1+st.Iter)
	direction := vecmath.Scale(-step/norm, st.Grad)

	xNext, err := mathkit.Add(st.Param, direction)
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
	log := kv.New().Set("cost", fNext).Set("step", step)
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
