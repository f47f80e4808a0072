// SPDX-License-Identifier: MIT
// Package newtoncg implements Newton's method with the Newton direction
// obtained from an inner conjugate-gradient subsolve of H*d = -g (spec.md
// §4.9's "Newton-CG"), followed by a line search along d — useful when
// forming H^-1 directly (as plain Newton does) is too expensive. H itself
// is still read from pw.Hessian as a full matrix; the CG subsolve only
// touches it through matrix-vector products.
package newtoncg

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives Newton-CG via an injected line search and CG subsolve
// tolerance.
type Solver[F mathkit.Real] struct {
	LineSearch  solver.LineSearch[F]
	CGRelTol    F // CG subsolve stops at ‖residual‖ <= CGRelTol*‖g‖
	CGMaxIter   int
	GradTol     F
}

// New returns a Newton-CG Solver.
func New[F mathkit.Real](ls solver.LineSearch[F], cgRelTol F, cgMaxIter int, gradTol F) *Solver[F] {
	return &Solver[F]{LineSearch: ls, CGRelTol: cgRelTol, CGMaxIter: cgMaxIter, GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "NewtonCG" }

// Init seeds Cost/Grad/Hessian at the starting point.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "newtoncg: Init: Param must be set before Init")
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

// NextIter solves H*d = -g by CG, then line-searches along d.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	negG := vecmath.Negate(st.Grad)
	apply := func(v mathkit.Container[F]) (mathkit.Container[F], error) {
		return vecmath.ApplyMatrix(st.Hessian, v)
	}
	tol := s.CGRelTol * vecmath.Norm2(st.Grad)
	x0 := mathkit.ZeroLike(st.Grad)
	direction, cgIters, err := vecmath.LinearCG(apply, negG, x0, tol, s.CGMaxIter)
	if err != nil {
		return nil, nil, err
	}

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
	hNext, err := pw.Hessian(xNext)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithParam(xNext).WithCost(fNext).WithGradient(gNext).WithHessian(hNext)
	log := kv.New().Set("cost", fNext).Set("alpha", alpha).Set("cg_iters", cgIters)
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
