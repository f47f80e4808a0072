// SPDX-License-Identifier: MIT
// Package itp implements the ITP (Interpolate, Truncate, Project) root
// finder (spec.md §4.9): combines regula-falsi interpolation with a
// bisection-bounded truncation/projection step so it never does worse
// than bisection's worst case while typically converging superlinearly.
// Grounded on Oliveira & Takahashi's "ITP Method" (ACM TOMS 2020), the
// algorithm the spec names.
package itp

import (
	"math"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives the ITP root finder on bracket [A,B].
type Solver[F mathkit.Real] struct {
	A, B   F
	Eps    F // tolerance epsilon
	Kappa1 F // truncation parameter kappa1 > 0; 0 derives 0.2/(B-A)
	Kappa2 F // truncation parameter kappa2 in [1, 1+phi); default 2
	N0     int

	a, b, fa, fb F
	nMax         int
	j            int
}

// New returns an ITP Solver on bracket [a,b] with tolerance eps.
func New[F mathkit.Real](a, b, eps F, n0 int) *Solver[F] {
	return &Solver[F]{A: a, B: b, Eps: eps, Kappa2: 2, N0: n0}
}

func (s *Solver[F]) Name() string { return "ITP" }

func evalScalar[F mathkit.Real](pw *problem.Wrapper[F], x F) (F, error) {
	return pw.Cost(mathkit.NewScalar(x))
}

// Init validates the bracket invariant sign(f(a)) != sign(f(b)) and
// derives n_max from the bracket width and tolerance.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	s.a, s.b = s.A, s.B
	fa, err := evalScalar(pw, s.a)
	if err != nil {
		return nil, nil, err
	}
	fb, err := evalScalar(pw, s.b)
	if err != nil {
		return nil, nil, err
	}
	if sign(fa) == sign(fb) {
		return nil, nil, optimerr.New(optimerr.ConditionViolated, "itp: Init: f(a) and f(b) must have opposite signs")
	}
	s.fa, s.fb = fa, fb
	if s.Kappa1 <= 0 {
		s.Kappa1 = F(0.2) / (s.b - s.a)
	}
	nHalf := int(math.Ceil(math.Log2(float64(s.b-s.a) / (2 * float64(s.Eps)))))
	s.nMax = nHalf + s.N0
	s.j = 0

	mid := (s.a + s.b) / 2
	out := st.WithParam(mathkit.NewScalar(mid)).WithCost(F(0))
	return out, kv.New().Set("a", s.a).Set("b", s.b), nil
}

// NextIter performs one interpolate/truncate/project step.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	xHalf := (s.a + s.b) / 2
	xF := (s.fb*s.a - s.fa*s.b) / (s.fb - s.fa)

	delta := s.Kappa1 * F(math.Pow(float64(abs(s.b-s.a)), float64(s.Kappa2)))
	sigma := sign2(xHalf - xF)
	var xT F
	if delta <= abs(xHalf-xF) {
		xT = xF + sigma*delta
	} else {
		xT = xHalf
	}

	r := s.Eps*F(math.Pow(2, float64(s.nMax-s.j))) - (s.b-s.a)/2
	var xItp F
	if abs(xT-xHalf) <= r {
		xItp = xT
	} else {
		xItp = xHalf - sigma*r
	}

	yItp, err := evalScalar(pw, xItp)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case yItp > 0:
		s.b, s.fb = xItp, yItp
	case yItp < 0:
		s.a, s.fa = xItp, yItp
	default:
		s.a, s.b = xItp, xItp
	}
	s.j++

	mid := (s.a + s.b) / 2
	out := st.WithParam(mathkit.NewScalar(mid)).WithCost(yItp)
	log := kv.New().Set("a", s.a).Set("b", s.b).Set("x", xItp).Set("f_x", yItp)
	return out, log, nil
}

// TerminateInternal fires SolverConverged when the bracket half-width has
// shrunk below Eps.
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	if (s.b-s.a)/2 <= s.Eps {
		return state.Status{Reason: state.SolverConverged, Tag: "bracket within tolerance"}
	}
	return state.Zero
}

func sign[F mathkit.Real](v F) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func sign2[F mathkit.Real](v F) F {
	if v < 0 {
		return -1
	}
	return 1
}

func abs[F mathkit.Real](v F) F {
	if v < 0 {
		return -v
	}
	return v
}
