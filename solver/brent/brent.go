// SPDX-License-Identifier: MIT
// Package brent implements the 1-D scalar Brent family (spec.md §4.9):
// BrentRoot (bisection + secant + inverse-quadratic interpolation root
// finding on a bracket with opposite-signed endpoints) and BrentOpt
// (golden-section + parabolic-interpolation minimum search). Both operate
// on Scalar[F] parameters via problem.Wrapper.Cost, one evaluation per
// candidate point per iteration.
package brent

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/state"
)

// Root solves f(x) = 0 on bracket [A,B] via Brent's method, requiring
// sign(f(A)) != sign(f(B)) at Init.
type Root[F mathkit.Real] struct {
	A, B F
	Tol  F

	a, b, c, fa, fb, fc F
	d                   F
	mflag               bool
}

// NewRoot returns a BrentRoot Solver on bracket [a,b] with the given
// tolerance.
func NewRoot[F mathkit.Real](a, b, tol F) *Root[F] {
	return &Root[F]{A: a, B: b, Tol: tol}
}

func (r *Root[F]) Name() string { return "BrentRoot" }

func evalScalar[F mathkit.Real](pw *problem.Wrapper[F], x F) (F, error) {
	return pw.Cost(mathkit.NewScalar(x))
}

// Init validates the bracket invariant sign(f(a)) != sign(f(b)).
func (r *Root[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	fa, err := evalScalar(pw, r.A)
	if err != nil {
		return nil, nil, err
	}
	fb, err := evalScalar(pw, r.B)
	if err != nil {
		return nil, nil, err
	}
	if sign(fa) == sign(fb) {
		return nil, nil, optimerr.New(optimerr.ConditionViolated, "brent: Root: Init: f(a) and f(b) must have opposite signs")
	}
	if abs(fa) < abs(fb) {
		r.a, r.b, r.fa, r.fb = r.B, r.A, fb, fa
	} else {
		r.a, r.b, r.fa, r.fb = r.A, r.B, fa, fb
	}
	r.c, r.fc = r.a, r.fa
	r.mflag = true

	out := st.WithParam(mathkit.NewScalar(r.b)).WithCost(r.fb)
	return out, kv.New().Set("a", r.a).Set("b", r.b), nil
}

// NextIter performs one Brent root-finding step.
func (r *Root[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	var s F
	if r.fa != r.fc && r.fb != r.fc {
		s = r.a*r.fb*r.fc/((r.fa-r.fb)*(r.fa-r.fc)) +
			r.b*r.fa*r.fc/((r.fb-r.fa)*(r.fb-r.fc)) +
			r.c*r.fa*r.fb/((r.fc-r.fa)*(r.fc-r.fb))
	} else {
		s = r.b - r.fb*(r.b-r.a)/(r.fb-r.fa)
	}

	lo, hi := (3*r.a+r.b)/4, r.b
	if lo > hi {
		lo, hi = hi, lo
	}
	needBisect := s < lo || s > hi
	if !needBisect && r.mflag {
		needBisect = abs(s-r.b) >= abs(r.b-r.c)/2
	}
	if !needBisect && !r.mflag {
		needBisect = abs(s-r.b) >= abs(r.c-r.d)/2
	}
	if needBisect {
		s = (r.a + r.b) / 2
		r.mflag = true
	} else {
		r.mflag = false
	}

	fs, err := evalScalar(pw, s)
	if err != nil {
		return nil, nil, err
	}
	r.d = r.c
	r.c, r.fc = r.b, r.fb

	if sign(r.fa) != sign(fs) {
		r.b, r.fb = s, fs
	} else {
		r.a, r.fa = s, fs
	}
	if abs(r.fa) < abs(r.fb) {
		r.a, r.b = r.b, r.a
		r.fa, r.fb = r.fb, r.fa
	}

	out := st.WithParam(mathkit.NewScalar(r.b)).WithCost(r.fb)
	log := kv.New().Set("a", r.a).Set("b", r.b).Set("f_b", r.fb)
	return out, log, nil
}

// TerminateInternal fires SolverConverged when the bracket has shrunk below
// Tol or f(b) is within Tol of zero.
func (r *Root[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	if abs(r.b-r.a) <= r.Tol || abs(r.fb) <= r.Tol {
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

func abs[F mathkit.Real](v F) F {
	if v < 0 {
		return -v
	}
	return v
}
