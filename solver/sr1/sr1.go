// SPDX-License-Identifier: MIT
// Package sr1 implements the Symmetric Rank-1 quasi-Newton update. Unlike
// BFGS/DFP it maintains the approximate (non-inverse) Hessian in
// state.IterState.Hessian, matching spec.md §4.9's denominator safeguard
// "r*‖s‖*‖y−Bs‖" which is stated in terms of B, not B^-1; the direction is
// obtained by inverting B each iteration (mathkit.Inv), trading a per-step
// inversion for reusing the same Container-level Inv every other solver
// already exercises, rather than maintaining a second, inverse-only update
// rule.
package sr1

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives SR1 via an injected line search.
type Solver[F mathkit.Real] struct {
	LineSearch solver.LineSearch[F]
	GradTol    F
	SafeguardR F // denominator safeguard constant, default 1e-8
}

// New returns an SR1 Solver composing ls, with the conventional r=1e-8
// safeguard.
func New[F mathkit.Real](ls solver.LineSearch[F], gradTol F) *Solver[F] {
	return &Solver[F]{LineSearch: ls, GradTol: gradTol, SafeguardR: F(1e-8)}
}

func (s *Solver[F]) Name() string { return "SR1" }

// Init seeds Cost/Grad and an identity Hessian approximation.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "sr1: Init: Param must be set before Init")
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
	out := st.WithCost(f).WithGradient(g).WithHessian(eye)
	return out, kv.New().Set("cost", f), nil
}

// NextIter inverts the current Hessian approximation to get the direction,
// line-searches, then applies the SR1 update (or skips it if the
// denominator safeguard fails).
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	bInv, err := mathkit.Inv(st.Hessian)
	if err != nil {
		return nil, nil, optimerr.Wrap(optimerr.NonInvertible, "sr1: NextIter: Hessian approximation is singular", err)
	}
	direction, err := vecmath.ApplyMatrix(bInv, st.Grad)
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

	bNext, updated, err := sr1Update(st.Hessian, sVec, yVec, s.SafeguardR)
	if err != nil {
		return nil, nil, err
	}

	out := st.WithParam(xNext).WithCost(fNext).WithGradient(gNext).WithHessian(bNext)
	log := kv.New().Set("cost", fNext).Set("alpha", alpha).Set("updated", updated)
	return out, log, nil
}

// sr1Update applies B+ = B + ((y-Bs)(y-Bs)^T)/((y-Bs)^T s), skipping the
// update (returning b unchanged, updated=false) if
// |(y-Bs)^T s| < r*‖s‖*‖y-Bs‖.
func sr1Update[F mathkit.Real](b mathkit.Container[F], s, y mathkit.Container[F], r F) (mathkit.Container[F], bool, error) {
	bs, err := vecmath.ApplyMatrix(b, s)
	if err != nil {
		return b, false, err
	}
	yMinusBs, err := mathkit.Sub(y, bs)
	if err != nil {
		return b, false, err
	}
	denom, err := vecmath.DotScalar(yMinusBs, s)
	if err != nil {
		return b, false, err
	}
	safeguard := r * vecmath.Norm2(s) * vecmath.Norm2(yMinusBs)
	if abs(denom) < safeguard {
		return b, false, nil
	}
	outer, err := mathkit.Outer(yMinusBs, yMinusBs)
	if err != nil {
		return b, false, err
	}
	out, err := mathkit.ScaledAdd(b, 1/denom, outer)
	if err != nil {
		return b, false, err
	}
	return out, true, nil
}

func abs[F mathkit.Real](v F) F {
	if v < 0 {
		return -v
	}
	return v
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
