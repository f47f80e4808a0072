// SPDX-License-Identifier: MIT
// Package goldensection implements GoldenSectionSearch (spec.md §4.9): a
// derivative-free 1-D bracket-shrinking minimizer that maintains the golden
// ratio between interior probe points so each iteration reuses one of the
// prior two function evaluations.
package goldensection

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/state"
)

const invPhi = 0.6180339887498949  // 1/phi
const invPhi2 = 0.3819660112501051 // 1/phi^2

// Solver drives GoldenSectionSearch over bracket [A,B].
type Solver[F mathkit.Real] struct {
	A, B F
	Tol  F

	a, b, c, d F
	fc, fd     F
}

// New returns a GoldenSectionSearch Solver minimizing over [a,b].
func New[F mathkit.Real](a, b, tol F) *Solver[F] {
	return &Solver[F]{A: a, B: b, Tol: tol}
}

func (s *Solver[F]) Name() string { return "GoldenSectionSearch" }

func evalScalar[F mathkit.Real](pw *problem.Wrapper[F], x F) (F, error) {
	return pw.Cost(mathkit.NewScalar(x))
}

// Init places the two interior probe points at golden-ratio offsets from
// the bracket ends.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	s.a, s.b = s.A, s.B
	if s.a > s.b {
		s.a, s.b = s.b, s.a
	}
	h := s.b - s.a
	s.c = s.a + F(invPhi2)*h
	s.d = s.a + F(invPhi)*h

	fc, err := evalScalar(pw, s.c)
	if err != nil {
		return nil, nil, err
	}
	fd, err := evalScalar(pw, s.d)
	if err != nil {
		return nil, nil, err
	}
	s.fc, s.fd = fc, fd

	best, fbest := s.bestPoint()
	out := st.WithParam(mathkit.NewScalar(best)).WithCost(fbest)
	return out, kv.New().Set("a", s.a).Set("b", s.b), nil
}

func (s *Solver[F]) bestPoint() (F, F) {
	if s.fc < s.fd {
		return s.c, s.fc
	}
	return s.d, s.fd
}

// NextIter shrinks the bracket by one golden-ratio step, reusing one of the
// previous iteration's two function evaluations.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if s.fc < s.fd {
		s.b = s.d
		s.d, s.fd = s.c, s.fc
		h := s.b - s.a
		s.c = s.a + F(invPhi2)*h
		fc, err := evalScalar(pw, s.c)
		if err != nil {
			return nil, nil, err
		}
		s.fc = fc
	} else {
		s.a = s.c
		s.c, s.fc = s.d, s.fd
		h := s.b - s.a
		s.d = s.a + F(invPhi)*h
		fd, err := evalScalar(pw, s.d)
		if err != nil {
			return nil, nil, err
		}
		s.fd = fd
	}

	best, fbest := s.bestPoint()
	out := st.WithParam(mathkit.NewScalar(best)).WithCost(fbest)
	log := kv.New().Set("a", s.a).Set("b", s.b).Set("x", best).Set("f_x", fbest)
	return out, log, nil
}

// TerminateInternal fires SolverConverged when the bracket width has
// shrunk below Tol.
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	if s.b-s.a <= s.Tol {
		return state.Status{Reason: state.SolverConverged, Tag: "bracket within tolerance"}
	}
	return state.Zero
}
