package trustregion

import (
	"math"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
)

// CauchyPoint returns the closed-form steepest-descent step limited to the
// trust-region radius delta.
type CauchyPoint[F mathkit.Real] struct{}

func (CauchyPoint[F]) Name() string { return "CauchyPoint" }

// Solve implements solver.TrustRegionSubproblem.
func (CauchyPoint[F]) Solve(g, h mathkit.Container[F], delta F) (mathkit.Container[F], error) {
	gNorm := vecmath.Norm2(g)
	if gNorm == 0 {
		return mathkit.ZeroLike(g), nil
	}
	gHg, err := curvature(g, h)
	if err != nil {
		return nil, err
	}
	tau := F(1)
	if gHg > 0 {
		cand := gNorm * gNorm * gNorm / (delta * gHg)
		if cand < 1 {
			tau = cand
		}
	}
	step := vecmath.Scale(-tau*delta/gNorm, g)
	return step, nil
}

// Dogleg blends the unconstrained Newton step with the Cauchy step,
// requiring a positive-definite h.
type Dogleg[F mathkit.Real] struct{}

func (Dogleg[F]) Name() string { return "Dogleg" }

// Solve implements solver.TrustRegionSubproblem.
func (Dogleg[F]) Solve(g, h mathkit.Container[F], delta F) (mathkit.Container[F], error) {
	hInv, err := mathkit.Inv(h)
	if err != nil {
		cp := CauchyPoint[F]{}
		return cp.Solve(g, h, delta)
	}
	newtonStep, err := vecmath.ApplyMatrix(hInv, g)
	if err != nil {
		return nil, err
	}
	newtonStep = vecmath.Negate(newtonStep)
	newtonNorm := vecmath.Norm2(newtonStep)
	if newtonNorm <= delta {
		return newtonStep, nil
	}

	gHg, err := curvature(g, h)
	if err != nil {
		return nil, err
	}
	gNorm := vecmath.Norm2(g)
	pu := mathkit.ZeroLike(g)
	if gHg > 0 && gNorm > 0 {
		tau := gNorm * gNorm / gHg
		pu = vecmath.Scale(-tau, g)
	}
	puNorm := vecmath.Norm2(pu)
	if puNorm >= delta {
		return vecmath.Scale(delta/puNorm, pu), nil
	}

	diff, err := mathkit.Sub(newtonStep, pu)
	if err != nil {
		return nil, err
	}
	tEnd, err := doglegBoundary(pu, diff, delta)
	if err != nil {
		return nil, err
	}
	step, err := vecmath.Axpy(pu, tEnd, diff)
	if err != nil {
		return nil, err
	}
	return step, nil
}

// doglegBoundary finds t in [0,1] such that ‖pu + t*diff‖ == delta.
func doglegBoundary[F mathkit.Real](pu, diff mathkit.Container[F], delta F) (F, error) {
	a, err := vecmath.DotScalar(diff, diff)
	if err != nil {
		return 0, err
	}
	b, err := vecmath.DotScalar(pu, diff)
	if err != nil {
		return 0, err
	}
	c, err := vecmath.DotScalar(pu, pu)
	if err != nil {
		return 0, err
	}
	c -= delta * delta
	disc := b*b - a*c
	if disc < 0 {
		disc = 0
	}
	t := (-b + F(math.Sqrt(float64(disc)))) / a
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t, nil
}

// Steihaug runs truncated conjugate gradient inside the trust region,
// stopping on negative curvature or a boundary hit.
type Steihaug[F mathkit.Real] struct {
	MaxIter int
	Tol     F
}

func NewSteihaug[F mathkit.Real](maxIter int, tol F) Steihaug[F] {
	return Steihaug[F]{MaxIter: maxIter, Tol: tol}
}

func (Steihaug[F]) Name() string { return "Steihaug" }

// Solve implements solver.TrustRegionSubproblem.
func (s Steihaug[F]) Solve(g, h mathkit.Container[F], delta F) (mathkit.Container[F], error) {
	z := mathkit.ZeroLike(g)
	r := g.Clone()
	d := vecmath.Negate(r)

	rr, err := vecmath.DotScalar(r, r)
	if err != nil {
		return nil, err
	}
	if vecmath.Norm2(r) <= s.Tol {
		return z, nil
	}

	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = g.Shape().Size()
	}

	for i := 0; i < maxIter; i++ {
		hd, err := vecmath.ApplyMatrix(h, d)
		if err != nil {
			return nil, err
		}
		dhd, err := vecmath.DotScalar(d, hd)
		if err != nil {
			return nil, err
		}
		if dhd <= 0 {
			return boundaryIntersect(z, d, delta)
		}
		alpha := rr / dhd
		zNext, err := vecmath.Axpy(z, alpha, d)
		if err != nil {
			return nil, err
		}
		if vecmath.Norm2(zNext) >= delta {
			return boundaryIntersect(z, d, delta)
		}
		rNext, err := vecmath.Axpy(r, alpha, hd)
		if err != nil {
			return nil, err
		}
		if vecmath.Norm2(rNext) <= s.Tol {
			return zNext, nil
		}
		rrNext, err := vecmath.DotScalar(rNext, rNext)
		if err != nil {
			return nil, err
		}
		beta := rrNext / rr
		dNext, err := vecmath.Axpy(vecmath.Negate(rNext), beta, d)
		if err != nil {
			return nil, err
		}
		z, r, d, rr = zNext, rNext, dNext, rrNext
	}
	return z, nil
}

// boundaryIntersect finds tau >= 0 with ‖z + tau*d‖ == delta and returns
// z + tau*d.
func boundaryIntersect[F mathkit.Real](z, d mathkit.Container[F], delta F) (mathkit.Container[F], error) {
	dd, err := vecmath.DotScalar(d, d)
	if err != nil {
		return nil, err
	}
	zd, err := vecmath.DotScalar(z, d)
	if err != nil {
		return nil, err
	}
	zz, err := vecmath.DotScalar(z, z)
	if err != nil {
		return nil, err
	}
	c := zz - delta*delta
	disc := zd*zd - dd*c
	if disc < 0 {
		disc = 0
	}
	tau := (-zd + F(math.Sqrt(float64(disc)))) / dd
	return vecmath.Axpy(z, tau, d)
}

func curvature[F mathkit.Real](g, h mathkit.Container[F]) (F, error) {
	hg, err := vecmath.ApplyMatrix(h, g)
	if err != nil {
		var zero F
		return zero, err
	}
	return vecmath.DotScalar(g, hg)
}
