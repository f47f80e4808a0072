// SPDX-License-Identifier: MIT
// Package gaussnewton implements Gauss-Newton least squares (spec.md
// §4.9): forms the normal equations (J^T J) d = -J^T r from the Problem's
// Jacobian/Residuals and solves them via mathkit.Inv, optionally damped by
// an injected solver.LineSearch (the "line-searched variant").
package gaussnewton

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives Gauss-Newton. LineSearch is optional: nil means take the
// full normal-equations step (classic Gauss-Newton); non-nil line-searches
// along the computed direction (the line-searched variant).
type Solver[F mathkit.Real] struct {
	LineSearch solver.LineSearch[F]
	GradTol    F
}

// New returns a Gauss-Newton Solver. Pass a nil ls for the classic
// full-step variant.
func New[F mathkit.Real](ls solver.LineSearch[F], gradTol F) *Solver[F] {
	return &Solver[F]{LineSearch: ls, GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "GaussNewton" }

// Init seeds Cost, Jacobian and Residuals, and derives Grad = J^T r for
// TerminateInternal's use.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "gaussnewton: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	j, err := pw.Jacobian(st.Param)
	if err != nil {
		return nil, nil, err
	}
	res, err := pw.Residuals(st.Param)
	if err != nil {
		return nil, nil, err
	}
	g, err := jacobianTransposeResiduals(j, res)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithCost(f).WithJacobian(j).WithResiduals(res).WithGradient(g)
	return out, kv.New().Set("cost", f), nil
}

// NextIter solves (J^T J) d = -J^T r for the Gauss-Newton direction and
// takes either the full step or a line-searched step along d.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	jt := mathkit.Transpose(st.Jacobian)
	jtjRaw, err := mathkit.Dot(jt, st.Jacobian)
	if err != nil {
		return nil, nil, err
	}
	jtj := jtjRaw

	jtjInv, err := mathkit.Inv(jtj)
	if err != nil {
		return nil, nil, optimerr.Wrap(optimerr.NonInvertible, "gaussnewton: NextIter: J^T J is singular", err)
	}
	negJtr := vecmath.Negate(st.Grad)
	d, err := vecmath.ApplyMatrix(jtjInv, negJtr)
	if err != nil {
		return nil, nil, err
	}

	alpha := F(1)
	if s.LineSearch != nil {
		alpha, err = s.LineSearch.Search(pw, st.Param, st.Cost, st.Grad, d)
		if err != nil {
			return nil, nil, err
		}
	}
	xNext, err := vecmath.Axpy(st.Param, alpha, d)
	if err != nil {
		return nil, nil, err
	}

	fNext, err := pw.Cost(xNext)
	if err != nil {
		return nil, nil, err
	}
	jNext, err := pw.Jacobian(xNext)
	if err != nil {
		return nil, nil, err
	}
	resNext, err := pw.Residuals(xNext)
	if err != nil {
		return nil, nil, err
	}
	gNext, err := jacobianTransposeResiduals(jNext, resNext)
	if err != nil {
		return nil, nil, err
	}

	out := st.WithParam(xNext).WithCost(fNext).WithJacobian(jNext).WithResiduals(resNext).WithGradient(gNext)
	log := kv.New().Set("cost", fNext).Set("alpha", alpha)
	return out, log, nil
}

func jacobianTransposeResiduals[F mathkit.Real](j, res mathkit.Container[F]) (mathkit.Container[F], error) {
	jt := mathkit.Transpose(j)
	return vecmath.ApplyMatrix(jt, res)
}

// TerminateInternal fires SolverConverged when ‖J^T r‖ <= GradTol.
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	if s.GradTol <= 0 {
		return state.Zero
	}
	if vecmath.Norm2(st.Grad) <= s.GradTol {
		return state.Status{Reason: state.SolverConverged, Tag: "residual gradient below tolerance"}
	}
	return state.Zero
}
