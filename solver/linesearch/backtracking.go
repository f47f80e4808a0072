package linesearch

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
)

// Condition selects Backtracking's acceptance test.
type Condition int

const (
	// Armijo accepts the first step satisfying sufficient decrease alone.
	Armijo Condition = iota
	// Wolfe adds the curvature condition to Armijo.
	Wolfe
	// StrongWolfe tightens Wolfe's curvature condition to an absolute value
	// bound, rejecting steps where the directional derivative overshoots.
	StrongWolfe
	// Goldstein brackets sufficient decrease between two linear bounds
	// instead of checking curvature, avoiding steps that are too small.
	Goldstein
)

// Backtracking halves (or scales by Rho) a trial step until its condition
// is satisfied, starting from InitialStep.
type Backtracking[F mathkit.Real] struct {
	Condition    Condition
	C1           F // sufficient-decrease constant, default 1e-4
	C2           F // curvature constant (Wolfe/StrongWolfe), default 0.9
	Rho          F // backtracking shrink factor, default 0.5
	InitialStep  F // default 1
	MaxBacktracks int // default 50
}

// NewBacktracking returns a Backtracking line search with the conventional
// defaults (Nocedal & Wright's c1=1e-4, c2=0.9, rho=0.5) under cond.
func NewBacktracking[F mathkit.Real](cond Condition) *Backtracking[F] {
	return &Backtracking[F]{
		Condition:     cond,
		C1:            F(1e-4),
		C2:            F(0.9),
		Rho:           F(0.5),
		InitialStep:   F(1),
		MaxBacktracks: 50,
	}
}

func (b *Backtracking[F]) Name() string { return "Backtracking" }

// Search returns a step length alpha satisfying b.Condition along direction,
// starting from x0/f0/g0 (spec.md §4.9's LineSearch contract).
func (b *Backtracking[F]) Search(pw *problem.Wrapper[F], x0 mathkit.Container[F], f0 F, g0, direction mathkit.Container[F]) (F, error) {
	slope, err := vecmath.DotScalar(g0, direction)
	if err != nil {
		var zero F
		return zero, err
	}
	if slope >= 0 {
		var zero F
		return zero, optimerr.New(optimerr.ConditionViolated, "linesearch: Backtracking: direction is not a descent direction")
	}

	alpha := b.InitialStep
	for i := 0; i < b.MaxBacktracks; i++ {
		trial, err := vecmath.Axpy(x0, alpha, direction)
		if err != nil {
			var zero F
			return zero, err
		}
		fTrial, err := pw.Cost(trial)
		if err != nil {
			var zero F
			return zero, err
		}

		if fTrial <= f0+b.C1*alpha*slope {
			switch b.Condition {
			case Armijo:
				return alpha, nil
			case Goldstein:
				if fTrial >= f0+(1-b.C1)*alpha*slope {
					return alpha, nil
				}
			case Wolfe, StrongWolfe:
				gTrial, err := pw.Gradient(trial)
				if err != nil {
					var zero F
					return zero, err
				}
				curv, err := vecmath.DotScalar(gTrial, direction)
				if err != nil {
					var zero F
					return zero, err
				}
				if b.Condition == Wolfe && curv >= b.C2*slope {
					return alpha, nil
				}
				if b.Condition == StrongWolfe && abs(curv) <= b.C2*abs(slope) {
					return alpha, nil
				}
			}
		}
		alpha *= b.Rho
	}
	return alpha, optimerr.New(optimerr.LineSearchFailed, "linesearch: Backtracking: no acceptable step found within MaxBacktracks")
}

func abs[F mathkit.Real](v F) F {
	if v < 0 {
		return -v
	}
	return v
}
