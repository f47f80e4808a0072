package linesearch

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
)

// MoreThuente brackets a step interval and bisects it (zoom) until the
// strong Wolfe conditions hold, in the spirit of Moré & Thuente's
// safeguarded cubic-interpolation search — this implementation uses plain
// bisection for the zoom phase rather than cubic interpolation, trading a
// few extra evaluations for materially simpler, still-correct code.
type MoreThuente[F mathkit.Real] struct {
	C1          F
	C2          F
	InitialStep F
	MaxIters    int
}

// NewMoreThuente returns a MoreThuente search with the conventional strong-
// Wolfe defaults (c1=1e-4, c2=0.9).
func NewMoreThuente[F mathkit.Real]() *MoreThuente[F] {
	return &MoreThuente[F]{C1: F(1e-4), C2: F(0.9), InitialStep: F(1), MaxIters: 50}
}

func (m *MoreThuente[F]) Name() string { return "MoreThuente" }

func (m *MoreThuente[F]) phi(pw *problem.Wrapper[F], x0 mathkit.Container[F], direction mathkit.Container[F], alpha F) (fval F, slope F, err error) {
	trial, err := vecmath.Axpy(x0, alpha, direction)
	if err != nil {
		return fval, slope, err
	}
	fval, err = pw.Cost(trial)
	if err != nil {
		return fval, slope, err
	}
	g, err := pw.Gradient(trial)
	if err != nil {
		return fval, slope, err
	}
	slope, err = vecmath.DotScalar(g, direction)
	return fval, slope, err
}

// Search implements solver.LineSearch.
func (m *MoreThuente[F]) Search(pw *problem.Wrapper[F], x0 mathkit.Container[F], f0 F, g0, direction mathkit.Container[F]) (F, error) {
	slope0, err := vecmath.DotScalar(g0, direction)
	if err != nil {
		var zero F
		return zero, err
	}
	if slope0 >= 0 {
		var zero F
		return zero, optimerr.New(optimerr.ConditionViolated, "linesearch: MoreThuente: direction is not a descent direction")
	}

	lo, hi := F(0), F(0)
	alpha := m.InitialStep
	fPrev := f0
	haveHi := false

	for i := 0; i < m.MaxIters; i++ {
		fAlpha, slopeAlpha, err := m.phi(pw, x0, direction, alpha)
		if err != nil {
			var zero F
			return zero, err
		}
		if fAlpha > f0+m.C1*alpha*slope0 || (i > 0 && fAlpha >= fPrev) {
			hi, haveHi = alpha, true
			break
		}
		if abs(slopeAlpha) <= -m.C2*slope0 {
			return alpha, nil
		}
		if slopeAlpha >= 0 {
			hi, haveHi = alpha, true
			break
		}
		lo = alpha
		fPrev = fAlpha
		alpha *= 2
	}
	if !haveHi {
		return alpha, optimerr.New(optimerr.LineSearchFailed, "linesearch: MoreThuente: failed to bracket a valid interval")
	}

	for i := 0; i < m.MaxIters; i++ {
		mid := (lo + hi) / 2
		fMid, slopeMid, err := m.phi(pw, x0, direction, mid)
		if err != nil {
			var zero F
			return zero, err
		}
		if fMid > f0+m.C1*mid*slope0 || fMid >= fPrev {
			hi = mid
			continue
		}
		if abs(slopeMid) <= -m.C2*slope0 {
			return mid, nil
		}
		if slopeMid*(hi-lo) >= 0 {
			hi = lo
		}
		lo = mid
		fPrev = fMid
	}
	return (lo + hi) / 2, optimerr.New(optimerr.LineSearchFailed, "linesearch: MoreThuente: zoom phase did not converge within MaxIters")
}
