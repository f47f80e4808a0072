// SPDX-License-Identifier: MIT
// Signum, Conj, Min, Max, RandomFromRange: elementwise capabilities that
// don't change shape. NaN convention: documented per spec §4.1/§9 — Min/Max
// never prefer NaN; if either argument is NaN the other is returned. This
// matches the native backend's choice and is called out explicitly because
// gonum's own elementwise ops propagate NaN by default; mathkit/gonumf64
// containers have no Min/Max of their own and get this convention when
// passed to these functions.
package mathkit

import "math"

// Signum returns the elementwise sign of x (-1, 0, or 1).
func Signum[F Real](x Container[F]) Container[F] {
	out := x.Clone()
	n := x.Shape().Size()
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		fv := float64(v)
		var s float64
		switch {
		case fv > 0:
			s = 1
		case fv < 0:
			s = -1
		default:
			s = 0
		}
		_ = out.SetAt(i, F(s))
	}
	return out
}

// Conj returns the elementwise complex conjugate; for the real element
// types this package is instantiated over, Conj is the identity (spec
// §4.1: "identity for real types"). See the Complex type for true complex
// support.
func Conj[F Real](x Container[F]) Container[F] {
	return x.Clone()
}

// Min returns the elementwise minimum of a and b; ties go to a. If exactly
// one of a[i], b[i] is NaN, the non-NaN value is returned (documented
// convention, spec §4.1/§9).
func Min[F Real](a, b Container[F]) (Container[F], error) {
	return elementwiseMinMax(a, b, true)
}

// Max returns the elementwise maximum of a and b; ties go to a. Same NaN
// convention as Min.
func Max[F Real](a, b Container[F]) (Container[F], error) {
	return elementwiseMinMax(a, b, false)
}

func elementwiseMinMax[F Real](a, b Container[F], wantMin bool) (Container[F], error) {
	pick := func(av, bv F) F {
		afv, bfv := float64(av), float64(bv)
		aNaN, bNaN := math.IsNaN(afv), math.IsNaN(bfv)
		switch {
		case aNaN && bNaN:
			return av
		case aNaN:
			return bv
		case bNaN:
			return av
		}
		if wantMin {
			if bfv < afv {
				return bv
			}
			return av
		}
		if bfv > afv {
			return bv
		}
		return av
	}
	return elementwise(a, b, pick, "MinMax")
}

// RandomFromRange draws an elementwise uniform sample in
// [min(lo,hi), max(lo,hi)] using rng (a func() float64 returning a uniform
// sample in [0,1), so the upper bound itself is not drawn unless lo == hi).
// When lo == hi elementwise, that value is
// returned. Fails with ShapeMismatch if lo and hi have different shapes.
func RandomFromRange[F Real](lo, hi Container[F], rng func() float64) (Container[F], error) {
	if lo.Shape() != hi.Shape() {
		return nil, shapeMismatch("RandomFromRange", lo.Shape(), hi.Shape())
	}
	out := lo.Clone()
	n := lo.Shape().Size()
	for i := 0; i < n; i++ {
		lv, _ := lo.At(i)
		hv, _ := hi.At(i)
		l, h := float64(lv), float64(hv)
		if l > h {
			l, h = h, l
		}
		var sample float64
		if l == h {
			sample = l
		} else {
			sample = l + rng()*(h-l)
		}
		_ = out.SetAt(i, F(sample))
	}
	return out, nil
}
