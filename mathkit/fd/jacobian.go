package fd

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// Jacobian estimates the Jacobian of residual at param using central
// differences, returning an m x n Dense matrix where m is the residual
// dimension (probed with one extra residual evaluation at param) and n is
// len(param).
func Jacobian(residual func([]float64) []float64, param *mathkit.Vector[float64]) (*mathkit.Dense[float64], error) {
	if param == nil {
		return nil, optimerr.New(optimerr.InvalidParameter, "fd: Jacobian: param is nil")
	}
	x := append([]float64(nil), param.Raw()...)
	probe := residual(x)
	m, n := len(probe), len(x)
	if m == 0 {
		return nil, optimerr.New(optimerr.InvalidParameter, "fd: Jacobian: residual has zero dimension")
	}

	dst := mat.NewDense(m, n, nil)
	wrapped := func(y, x []float64) {
		copy(y, residual(x))
	}
	fd.Jacobian(dst, wrapped, x, &fd.JacobianSettings{Formula: fd.Central})

	out, err := mathkit.NewDense[float64](m, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if err := out.SetRC(i, j, dst.At(i, j)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
