// SPDX-License-Identifier: MIT
// Package bfgs implements the BFGS quasi-Newton method: maintains an
// approximate inverse Hessian in state.IterState.InvHessian, computes the
// direction -InvHessian*g, line-searches along it, then updates InvHessian
// from the observed step s = x+ - x and gradient change y = g+ - g
// (spec.md §4.9's BFGS/DFP/L-BFGS/SR1 paragraph).
package bfgs

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives BFGS via an injected line search.
type Solver[F mathkit.Real] struct {
	LineSearch solver.LineSearch[F]
	GradTol    F
}

// New returns a BFGS Solver composing ls.
func New[F mathkit.Real](ls solver.LineSearch[F], gradTol F) *Solver[F] {
	return &Solver[F]{LineSearch: ls, GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "BFGS" }

// Init seeds Cost/Grad and an identity inverse-Hessian approximation.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "bfgs: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	g, err := pw.Gradient(st.Param)
	if err != nil {
		return nil, nil, err
	}
	n := st.Param.Shape().Size()
	eye, err := mathkit.Eye[F](n)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithCost(f).WithGradient(g).WithInvHessian(eye)
	return out, kv.New().Set("cost", f), nil
}

// NextIter computes the BFGS direction, line-searches, and updates
// InvHessian via the standard rank-two BFGS formula.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	direction, err := vecmath.ApplyMatrix(st.InvHessian, st.Grad)
	if err != nil {
		return nil, nil, err
	}
	direction = vecmath.Negate(direction)

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

	sVec, err := mathkit.Sub(xNext, st.Param)
	if err != nil {
		return nil, nil, err
	}
	yVec, err := mathkit.Sub(gNext, st.Grad)
	if err != nil {
		return nil, nil, err
	}
	sy, err := vecmath.DotScalar(sVec, yVec)
	if err != nil {
		return nil, nil, err
	}

	invHNext := st.InvHessian
	if sy > 1e-12 {
		invHNext, err = bfgsUpdate(st.InvHessian, sVec, yVec, sy)
		if err != nil {
			return nil, nil, err
		}
	}

	out := st.WithParam(xNext).WithCost(fNext).WithGradient(gNext).WithInvHessian(invHNext)
	log := kv.New().Set("cost", fNext).Set("alpha", alpha).Set("grad_norm", vecmath.Norm2(gNext))
	return out, log, nil
}

// bfgsUpdate applies the rank-two BFGS inverse-Hessian update:
// H+ = (I - rho*s*y^T) H (I - rho*y*s^T) + rho*s*s^T, rho = 1/(y^T s).
func bfgsUpdate[F mathkit.Real](h mathkit.Container[F], s, y mathkit.Container[F], sy F) (mathkit.Container[F], error) {
	rho := 1 / sy
	n := s.Shape().Size()
	eye, err := mathkit.Eye[F](n)
	if err != nil {
		return nil, err
	}
	syT, err := mathkit.Outer(s, y)
	if err != nil {
		return nil, err
	}
	ysT, err := mathkit.Outer(y, s)
	if err != nil {
		return nil, err
	}
	ssT, err := mathkit.Outer(s, s)
	if err != nil {
		return nil, err
	}

	left, err := mathkit.ScaledAdd(eye, -rho, syT)
	if err != nil {
		return nil, err
	}
	right, err := mathkit.ScaledAdd(eye, -rho, ysT)
	if err != nil {
		return nil, err
	}

	mid, err := mathkit.Dot(left, h)
	if err != nil {
		return nil, err
	}
	term1, err := mathkit.Dot(mid, right)
	if err != nil {
		return nil, err
	}
	out, err := mathkit.ScaledAdd(term1, rho, ssT)
	if err != nil {
		return nil, err
	}
	return out, nil
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
