package trustregion

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
)

// Result is one outer trust-region iteration's outcome.
type Result[F mathkit.Real] struct {
	Param    mathkit.Container[F]
	Cost     F
	Grad     mathkit.Container[F]
	Delta    F
	Accepted bool
	Rho      F
}

// Step performs one trust-region outer iteration (spec.md §4.9's "Trust
// Region (outer)"): solve the subproblem for a step p, evaluate the
// reduction ratio rho, update the radius, and accept the step if
// rho > eta.
func Step[F mathkit.Real](pw *problem.Wrapper[F], sub solver.TrustRegionSubproblem[F], x mathkit.Container[F], f F, g, h mathkit.Container[F], delta, deltaMax, eta F) (Result[F], error) {
	p, err := sub.Solve(g, h, delta)
	if err != nil {
		return Result[F]{}, err
	}

	xTrial, err := mathkit.Add(x, p)
	if err != nil {
		return Result[F]{}, err
	}
	fTrial, err := pw.Cost(xTrial)
	if err != nil {
		return Result[F]{}, err
	}

	gp, err := vecmath.DotScalar(g, p)
	if err != nil {
		return Result[F]{}, err
	}
	hp, err := vecmath.ApplyMatrix(h, p)
	if err != nil {
		return Result[F]{}, err
	}
	pHp, err := vecmath.DotScalar(p, hp)
	if err != nil {
		return Result[F]{}, err
	}
	predicted := -(gp + F(0.5)*pHp)

	var rho F
	if predicted != 0 {
		rho = (f - fTrial) / predicted
	}

	pNorm := vecmath.Norm2(p)
	nextDelta := delta
	switch {
	case rho < 0.25:
		nextDelta = delta / 4
	case rho > 0.75 && pNorm >= delta*F(0.999):
		nextDelta = 2 * delta
		if nextDelta > deltaMax {
			nextDelta = deltaMax
		}
	}

	if rho > eta {
		gTrial, err := pw.Gradient(xTrial)
		if err != nil {
			return Result[F]{}, err
		}
		return Result[F]{Param: xTrial, Cost: fTrial, Grad: gTrial, Delta: nextDelta, Accepted: true, Rho: rho}, nil
	}
	return Result[F]{Param: x, Cost: f, Grad: g, Delta: nextDelta, Accepted: false, Rho: rho}, nil
}
