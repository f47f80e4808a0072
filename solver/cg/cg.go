// SPDX-License-Identifier: MIT
// Package cg implements the linear conjugate-gradient method: solves
// apply(x) = b for a symmetric positive-definite linear operator exposed via
// problemiface.OperatorFunc (spec.md §4.9's "Conjugate Gradient (linear)").
// The residual/search-direction pair is solver-private state rather than a
// State field (spec.md §9's "sub-solvers as owned inner state"), since
// state.IterState has no slot for a CG direction vector distinct from Grad.
package cg

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver runs one CG iteration per NextIter call against b.
type Solver[F mathkit.Real] struct {
	B   mathkit.Container[F]
	Tol F

	r, p mathkit.Container[F]
	rsOld F
}

// New returns a linear-CG Solver targeting apply(x) = b, converging when
// ‖residual‖2 <= tol.
func New[F mathkit.Real](b mathkit.Container[F], tol F) *Solver[F] {
	return &Solver[F]{B: b, Tol: tol}
}

func (s *Solver[F]) Name() string { return "ConjugateGradient" }

func (s *Solver[F]) apply(pw *problem.Wrapper[F], v mathkit.Container[F]) (mathkit.Container[F], error) {
	return pw.Apply(v)
}

// Init seeds the residual r = b - A*x0 and initial direction p = r.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "cg: Init: Param must be set before Init")
	}
	ax, err := s.apply(pw, st.Param)
	if err != nil {
		return nil, nil, err
	}
	r, err := vecmath.Axpy(s.B, F(-1), ax)
	if err != nil {
		return nil, nil, err
	}
	s.r = r
	s.p = r.Clone()
	s.rsOld, err = vecmath.DotScalar(r, r)
	if err != nil {
		return nil, nil, err
	}
	cost, err := vecmath.DotScalar(r, r)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithCost(cost)
	return out, kv.New().Set("residual_norm", vecmath.Norm2(r)), nil
}

// NextIter performs one CG recurrence step.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	ap, err := s.apply(pw, s.p)
	if err != nil {
		return nil, nil, err
	}
	pAp, err := vecmath.DotScalar(s.p, ap)
	if err != nil {
		return nil, nil, err
	}
	if pAp == 0 {
		return st, kv.New().Set("residual_norm", vecmath.Norm2(s.r)), nil
	}
	alpha := s.rsOld / pAp

	xNext, err := vecmath.Axpy(st.Param, alpha, s.p)
	if err != nil {
		return nil, nil, err
	}
	rNext, err := vecmath.Axpy(s.r, -alpha, ap)
	if err != nil {
		return nil, nil, err
	}
	rsNew, err := vecmath.DotScalar(rNext, rNext)
	if err != nil {
		return nil, nil, err
	}
	beta := rsNew / s.rsOld
	pNext, err := vecmath.Axpy(rNext, beta, s.p)
	if err != nil {
		return nil, nil, err
	}

	s.r, s.p, s.rsOld = rNext, pNext, rsNew

	out := st.WithParam(xNext).WithCost(rsNew)
	return out, kv.New().Set("residual_norm", vecmath.Norm2(rNext)).Set("alpha", alpha), nil
}

// TerminateInternal fires SolverConverged when ‖residual‖2 <= Tol.
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	if s.r == nil {
		return state.Zero
	}
	if vecmath.Norm2(s.r) <= s.Tol {
		return state.Status{Reason: state.SolverConverged, Tag: "residual norm below tolerance"}
	}
	return state.Zero
}
