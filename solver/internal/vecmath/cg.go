package vecmath

import (
	"github.com/katalvlaran/optimcore/mathkit"
)

// LinearCG runs the standard conjugate-gradient recurrence to solve
// apply(x) = b for symmetric positive-definite apply, starting from x0,
// stopping when ‖residual‖2 <= tol or after maxIter steps. Used by
// solver/newtoncg for its Newton-direction subsolve, per spec.md §4.9's
// "Newton-CG direction computed by inner conjugate-gradient subsolve";
// solver/cg runs its own copy of the recurrence over IterState.
func LinearCG[F mathkit.Real](apply func(mathkit.Container[F]) (mathkit.Container[F], error), b, x0 mathkit.Container[F], tol F, maxIter int) (mathkit.Container[F], int, error) {
	x := x0.Clone()
	ax, err := apply(x)
	if err != nil {
		return nil, 0, err
	}
	r, err := Axpy(b, F(-1), ax)
	if err != nil {
		return nil, 0, err
	}
	p := r.Clone()
	rsOld, err := DotScalar(r, r)
	if err != nil {
		return nil, 0, err
	}

	for i := 0; i < maxIter; i++ {
		if Norm2(r) <= tol {
			return x, i, nil
		}
		ap, err := apply(p)
		if err != nil {
			return nil, i, err
		}
		pAp, err := DotScalar(p, ap)
		if err != nil {
			return nil, i, err
		}
		if pAp == 0 {
			return x, i, nil
		}
		alpha := rsOld / pAp

		x, err = Axpy(x, alpha, p)
		if err != nil {
			return nil, i, err
		}
		r, err = Axpy(r, -alpha, ap)
		if err != nil {
			return nil, i, err
		}
		rsNew, err := DotScalar(r, r)
		if err != nil {
			return nil, i, err
		}
		if Norm2(r) <= tol {
			return x, i + 1, nil
		}
		beta := rsNew / rsOld
		p, err = Axpy(r, beta, p)
		if err != nil {
			return nil, i, err
		}
		rsOld = rsNew
	}
	return x, maxIter, nil
}
