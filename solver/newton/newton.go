// SPDX-License-Identifier: MIT
// Package newton implements the damped Newton step x <- x - gamma*H^-1*g
// (spec.md §4.9's "Newton"), failing with NonInvertible when the Hessian is
// singular at the current point.
package newton

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver performs damped Newton steps.
type Solver[F mathkit.Real] struct {
	Gamma   F // damping factor in (0,1], default 1
	GradTol F // TerminateInternal fires when ‖g‖ <= GradTol; 0 disables
}

// New returns a Newton Solver with the given damping factor gamma.
func New[F mathkit.Real](gamma, gradTol F) *Solver[F] {
	return &Solver[F]{Gamma: gamma, GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "Newton" }

// Init seeds Cost/Grad/Hessian at the starting point.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "newton: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	g, err := pw.Gradient(st.Param)
	if err != nil {
		return nil, nil, err
	}
	h, err := pw.Hessian(st.Param)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithCost(f).WithGradient(g).WithHessian(h)
	return out, kv.New().Set("cost", f), nil
}

// NextIter computes x <- x - gamma*H^-1*g, failing with NonInvertible if H
// cannot be inverted at the current point.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	hInv, err := mathkit.Inv(st.Hessian)
	if err != nil {
		return nil, nil, optimerr.Wrap(optimerr.NonInvertible, "newton: NextIter: Hessian is singular", err)
	}
	step, err := vecmath.ApplyMatrix(hInv, st.Grad)
	if err != nil {
		return nil, nil, err
	}
	xNext, err := vecmath.Axpy(st.Param, -s.Gamma, step)
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
	hNext, err := pw.Hessian(xNext)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithParam(xNext).WithCost(fNext).WithGradient(gNext).WithHessian(hNext)
	return out, kv.New().Set("cost", fNext).Set("grad_norm", vecmath.Norm2(gNext)), nil
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
