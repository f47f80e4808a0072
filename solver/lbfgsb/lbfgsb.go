// SPDX-License-Identifier: MIT
// Package lbfgsb implements a box-constrained variant of limited-memory
// BFGS (an [ADD] supplement to the unconstrained solver catalog): the same
// two-loop-recursion direction as solver/lbfgs, but every trial point is
// projected onto [Lo,Hi] before being evaluated, and the backtracking line
// search runs against the projected point rather than the raw unconstrained
// one. This is the gradient-projection simplification of L-BFGS-B (it
// skips the original's generalized Cauchy-point subspace-selection step),
// a deliberate simplicity-over-fidelity tradeoff for a core solver
// catalog, same spirit as solver/sr1's choice to invert the Hessian
// directly instead of maintaining an inverse approximation.
package lbfgsb

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

type pair[F mathkit.Real] struct {
	s, y mathkit.Container[F]
	rho  F
}

// Solver drives box-constrained L-BFGS over [Lo,Hi].
type Solver[F mathkit.Real] struct {
	Lo, Hi        mathkit.Container[F]
	M             int // memory size, default 7
	GradTol       F
	C1            F // Armijo constant, default 1e-4
	MaxBacktracks int

	history []pair[F]
}

// New returns a box-constrained L-BFGS Solver over [lo,hi].
func New[F mathkit.Real](lo, hi mathkit.Container[F], m int, gradTol F) *Solver[F] {
	return &Solver[F]{Lo: lo, Hi: hi, M: m, GradTol: gradTol, C1: F(1e-4), MaxBacktracks: 30}
}

func (s *Solver[F]) Name() string { return "L-BFGS-B" }

func clamp[F mathkit.Real](x, lo, hi mathkit.Container[F]) (mathkit.Container[F], error) {
	c, err := mathkit.Max(x, lo)
	if err != nil {
		return nil, err
	}
	return mathkit.Min(c, hi)
}

// Init seeds Cost/Grad at the (clamped) starting point.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "lbfgsb: Init: Param must be set before Init")
	}
	x0, err := clamp(st.Param, s.Lo, s.Hi)
	if err != nil {
		return nil, nil, err
	}
	f, err := pw.Cost(x0)
	if err != nil {
		return nil, nil, err
	}
	g, err := pw.Gradient(x0)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithParam(x0).WithCost(f).WithGradient(g)
	return out, kv.New().Set("cost", f), nil
}

func (s *Solver[F]) direction(g mathkit.Container[F]) (mathkit.Container[F], error) {
	q := g.Clone()
	n := len(s.history)
	alphas := make([]F, n)

	for i := n - 1; i >= 0; i-- {
		h := s.history[i]
		a, err := vecmath.DotScalar(h.s, q)
		if err != nil {
			return nil, err
		}
		a *= h.rho
		alphas[i] = a
		q, err = vecmath.Axpy(q, -a, h.y)
		if err != nil {
			return nil, err
		}
	}

	gamma := F(1)
	if n > 0 {
		last := s.history[n-1]
		yy, err := vecmath.DotScalar(last.y, last.y)
		if err != nil {
			return nil, err
		}
		sy, err := vecmath.DotScalar(last.s, last.y)
		if err != nil {
			return nil, err
		}
		if yy > 0 {
			gamma = sy / yy
		}
	}
	r := vecmath.Scale(gamma, q)

	for i := 0; i < n; i++ {
		h := s.history[i]
		b, err := vecmath.DotScalar(h.y, r)
		if err != nil {
			return nil, err
		}
		b *= h.rho
		r, err = vecmath.Axpy(r, alphas[i]-b, h.s)
		if err != nil {
			return nil, err
		}
	}
	return vecmath.Negate(r), nil
}

// NextIter computes the two-loop direction, projects a backtracking
// sequence of trial points onto [Lo,Hi] until Armijo-decrease holds
// against the projected step, and pushes the realized (s,y) pair.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	direction, err := s.direction(st.Grad)
	if err != nil {
		return nil, nil, err
	}
	alpha := F(1)
	var xNext mathkit.Container[F]
	var fNext F
	accepted := false
	for i := 0; i < s.MaxBacktracks; i++ {
		trial, err := vecmath.Axpy(st.Param, alpha, direction)
		if err != nil {
			return nil, nil, err
		}
		trial, err = clamp(trial, s.Lo, s.Hi)
		if err != nil {
			return nil, nil, err
		}
		fTrial, err := pw.Cost(trial)
		if err != nil {
			return nil, nil, err
		}
		step, err := mathkit.Sub(trial, st.Param)
		if err != nil {
			return nil, nil, err
		}
		gDotStep, err := vecmath.DotScalar(st.Grad, step)
		if err != nil {
			return nil, nil, err
		}
		if fTrial <= st.Cost+s.C1*gDotStep {
			xNext, fNext, accepted = trial, fTrial, true
			break
		}
		alpha /= 2
	}
	if !accepted {
		return nil, nil, optimerr.New(optimerr.LineSearchFailed, "lbfgsb: NextIter: no projected step satisfied the Armijo condition")
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
	if sy > 1e-12 {
		s.history = append(s.history, pair[F]{s: sVec, y: yVec, rho: 1 / sy})
		if len(s.history) > s.M {
			s.history = s.history[1:]
		}
	}

	out := st.WithParam(xNext).WithCost(fNext).WithGradient(gNext)
	log := kv.New().Set("cost", fNext).Set("alpha", alpha).Set("memory", len(s.history))
	return out, log, nil
}

// TerminateInternal fires SolverConverged when the projected gradient norm
// ‖P(x-g) - x‖ <= GradTol, where P clamps onto [Lo,Hi].
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	if s.GradTol <= 0 {
		return state.Zero
	}
	pg, err := vecmath.Axpy(st.Param, -1, st.Grad)
	if err == nil {
		pg, err = clamp(pg, s.Lo, s.Hi)
	}
	if err == nil {
		pg, err = mathkit.Sub(pg, st.Param)
	}
	if err != nil {
		return state.Zero
	}
	if vecmath.Norm2(pg) <= s.GradTol {
		return state.Status{Reason: state.SolverConverged, Tag: "gradient norm below tolerance"}
	}
	return state.Zero
}
