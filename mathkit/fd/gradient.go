package fd

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"gonum.org/v1/gonum/diff/fd"
)

// Gradient estimates the gradient of cost at param using central
// differences (gonum's fd.Central formula), returning a Vector of the same
// length as param. cost must be a pure function of its input slice: it is
// called len(param)*2 additional times per finite-difference formula point.
func Gradient(cost func([]float64) float64, param *mathkit.Vector[float64]) (*mathkit.Vector[float64], error) {
	if param == nil {
		return nil, optimerr.New(optimerr.InvalidParameter, "fd: Gradient: param is nil")
	}
	x := append([]float64(nil), param.Raw()...)
	dst := make([]float64, len(x))
	fd.Gradient(dst, cost, x, &fd.Settings{Formula: fd.Central})
	return mathkit.VectorFromSlice(dst), nil
}

// GradientOf is the mathkit.Container[float64]-flavored convenience form:
// cost operates on a Container rather than a raw slice, at the cost of one
// allocation per evaluation to re-box the probe point.
func GradientOf(cost func(mathkit.Container[float64]) float64, param *mathkit.Vector[float64]) (*mathkit.Vector[float64], error) {
	wrapped := func(x []float64) float64 {
		return cost(mathkit.VectorFromSlice(x))
	}
	return Gradient(wrapped, param)
}
