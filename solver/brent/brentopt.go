package brent

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/state"
)

const goldenRatio = 0.3819660112501051

// Opt minimizes a scalar pw.Cost over [A,B] via Brent's combination of
// golden-section search and parabolic interpolation.
type Opt[F mathkit.Real] struct {
	A, B F
	Tol  F

	a, b, v, w, x F
	fv, fw, fx    F
	d, e          F
}

// NewOpt returns a BrentOpt Solver minimizing over [a,b].
func NewOpt[F mathkit.Real](a, b, tol F) *Opt[F] {
	return &Opt[F]{A: a, B: b, Tol: tol}
}

func (o *Opt[F]) Name() string { return "BrentOpt" }

// Init seeds the golden-section point a + 0.381966*(b-a) of the bracket as
// the initial best point.
func (o *Opt[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	o.a, o.b = o.A, o.B
	if o.a > o.b {
		o.a, o.b = o.b, o.a
	}
	o.x = o.a + F(goldenRatio)*(o.b-o.a)
	o.v, o.w = o.x, o.x

	fx, err := evalScalar(pw, o.x)
	if err != nil {
		return nil, nil, err
	}
	o.fx, o.fv, o.fw = fx, fx, fx
	o.d, o.e = 0, 0

	out := st.WithParam(mathkit.NewScalar(o.x)).WithCost(o.fx)
	return out, kv.New().Set("x", o.x).Set("f_x", o.fx), nil
}

// NextIter performs one Brent minimization step.
func (o *Opt[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	xm := (o.a + o.b) / 2
	tol1 := o.Tol*abs(o.x) + F(1e-12)
	tol2 := 2 * tol1

	var u F
	useParabola := false
	if abs(o.e) > tol1 {
		r := (o.x - o.w) * (o.fx - o.fv)
		q := (o.x - o.v) * (o.fx - o.fw)
		p := (o.x-o.v)*q - (o.x-o.w)*r
		q2 := 2 * (q - r)
		if q2 > 0 {
			p = -p
		}
		q2 = abs(q2)
		eTemp := o.e
		o.e = o.d
		if abs(p) < abs(F(0.5)*q2*eTemp) && p > q2*(o.a-o.x) && p < q2*(o.b-o.x) {
			o.d = p / q2
			u = o.x + o.d
			if u-o.a < tol2 || o.b-u < tol2 {
				o.d = sign2(xm-o.x) * tol1
			}
			useParabola = true
		}
	}
	if !useParabola {
		if o.x < xm {
			o.e = o.b - o.x
		} else {
			o.e = o.a - o.x
		}
		o.d = F(goldenRatio) * o.e
	}

	if abs(o.d) >= tol1 {
		u = o.x + o.d
	} else {
		u = o.x + sign2(o.d)*tol1
	}

	fu, err := evalScalar(pw, u)
	if err != nil {
		return nil, nil, err
	}

	if fu <= o.fx {
		if u < o.x {
			o.b = o.x
		} else {
			o.a = o.x
		}
		o.v, o.fv = o.w, o.fw
		o.w, o.fw = o.x, o.fx
		o.x, o.fx = u, fu
	} else {
		if u < o.x {
			o.a = u
		} else {
			o.b = u
		}
		if fu <= o.fw || o.w == o.x {
			o.v, o.fv = o.w, o.fw
			o.w, o.fw = u, fu
		} else if fu <= o.fv || o.v == o.x || o.v == o.w {
			o.v, o.fv = u, fu
		}
	}

	out := st.WithParam(mathkit.NewScalar(o.x)).WithCost(o.fx)
	log := kv.New().Set("x", o.x).Set("f_x", o.fx)
	return out, log, nil
}

// TerminateInternal fires SolverConverged once both bracket ends lie within
// 2*tol1 of the best point x, where tol1 = Tol*|x| + 1e-12 (Tol is relative
// to |x|).
func (o *Opt[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	xm := (o.a + o.b) / 2
	tol1 := o.Tol*abs(o.x) + F(1e-12)
	if abs(o.x-xm) <= 2*tol1-(o.b-o.a)/2 {
		return state.Status{Reason: state.SolverConverged, Tag: "bracket within tolerance"}
	}
	return state.Zero
}

func sign2[F mathkit.Real](v F) F {
	if v < 0 {
		return -1
	}
	return 1
}
