package linesearch

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
)

// HagerZhang accepts a step under the approximate Wolfe conditions (Hager &
// Zhang 2005): sufficient decrease is tested against a quadratic-fit bound
// rather than raw f0, so the search stays accurate even when round-off
// swamps the true decrease close to a minimizer. This implementation
// expands to bracket a sign change in the directional derivative, then
// bisects to shrink the bracket; it takes no secant steps.
type HagerZhang[F mathkit.Real] struct {
	Delta       F // sufficient-decrease constant, default 0.1
	Sigma       F // curvature constant, default 0.9
	Epsilon     F // approximate-Wolfe error tolerance, default 1e-6
	InitialStep F
	MaxIters    int
}

// NewHagerZhang returns a HagerZhang search with the paper's conventional
// defaults.
func NewHagerZhang[F mathkit.Real]() *HagerZhang[F] {
	return &HagerZhang[F]{Delta: F(0.1), Sigma: F(0.9), Epsilon: F(1e-6), InitialStep: F(1), MaxIters: 50}
}

func (h *HagerZhang[F]) Name() string { return "HagerZhang" }

func (h *HagerZhang[F]) eval(pw *problem.Wrapper[F], x0, direction mathkit.Container[F], alpha F) (fval, slope F, err error) {
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
func (h *HagerZhang[F]) Search(pw *problem.Wrapper[F], x0 mathkit.Container[F], f0 F, g0, direction mathkit.Container[F]) (F, error) {
	slope0, err := vecmath.DotScalar(g0, direction)
	if err != nil {
		var zero F
		return zero, err
	}
	if slope0 >= 0 {
		var zero F
		return zero, optimerr.New(optimerr.ConditionViolated, "linesearch: HagerZhang: direction is not a descent direction")
	}
	approxBound := f0 + h.Epsilon*abs(f0)

	accept := func(fAlpha, slopeAlpha, alpha F) bool {
		wolfeExact := fAlpha-f0 <= h.Delta*alpha*slope0 && slopeAlpha >= h.Sigma*slope0
		wolfeApprox := fAlpha <= approxBound && (2*h.Delta-1)*slope0 >= slopeAlpha && slopeAlpha >= h.Sigma*slope0
		return wolfeExact || wolfeApprox
	}

	lo, hi := F(0), h.InitialStep
	fLo, slopeLo := f0, slope0

	for i := 0; i < h.MaxIters; i++ {
		fHi, slopeHi, err := h.eval(pw, x0, direction, hi)
		if err != nil {
			var zero F
			return zero, err
		}
		if accept(fHi, slopeHi, hi) {
			return hi, nil
		}
		if fHi > approxBound || slopeHi >= 0 {
			break
		}
		lo, fLo, slopeLo = hi, fHi, slopeHi
		hi *= 2
	}

	for i := 0; i < h.MaxIters; i++ {
		mid := (lo + hi) / 2
		fMid, slopeMid, err := h.eval(pw, x0, direction, mid)
		if err != nil {
			var zero F
			return zero, err
		}
		if accept(fMid, slopeMid, mid) {
			return mid, nil
		}
		if fMid > approxBound || slopeMid >= 0 {
			hi = mid
		} else {
			lo, fLo, slopeLo = mid, fMid, slopeMid
		}
	}
	_ = fLo
	_ = slopeLo
	return (lo + hi) / 2, optimerr.New(optimerr.LineSearchFailed, "linesearch: HagerZhang: search did not converge within MaxIters")
}
