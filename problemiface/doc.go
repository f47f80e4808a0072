// SPDX-License-Identifier: MIT
// Package problemiface declares the optional capability interfaces a caller
// implements to describe an optimization problem: CostFunc, GradientFunc,
// HessianFunc, JacobianFunc, ResidualFunc, OperatorFunc, and AnnealFunc.
// A concrete Problem implements whichever subset its algorithm needs and
// composes them by struct embedding, mirroring the teacher's preference for
// small single-method interfaces (matrix.Matrix, core's GraphOption) over
// one large interface every user must fully satisfy.
package problemiface

import "github.com/katalvlaran/optimcore/mathkit"

// CostFunc evaluates the objective at param.
type CostFunc[F mathkit.Real] interface {
	Cost(param mathkit.Container[F]) (F, error)
}

// GradientFunc evaluates the gradient of the objective at param.
type GradientFunc[F mathkit.Real] interface {
	Gradient(param mathkit.Container[F]) (mathkit.Container[F], error)
}

// HessianFunc evaluates the Hessian of the objective at param.
type HessianFunc[F mathkit.Real] interface {
	Hessian(param mathkit.Container[F]) (mathkit.Container[F], error)
}

// JacobianFunc evaluates the Jacobian of a residual vector at param.
type JacobianFunc[F mathkit.Real] interface {
	Jacobian(param mathkit.Container[F]) (mathkit.Container[F], error)
}

// ResidualFunc evaluates the residual vector at param (for Gauss-Newton and
// related least-squares solvers).
type ResidualFunc[F mathkit.Real] interface {
	Residuals(param mathkit.Container[F]) (mathkit.Container[F], error)
}

// OperatorFunc exposes a linear operator and its transpose, for solvers
// (linear conjugate gradient) that act on an operator rather than a dense
// matrix.
type OperatorFunc[F mathkit.Real] interface {
	Apply(param mathkit.Container[F]) (mathkit.Container[F], error)
	ApplyTranspose(param mathkit.Container[F]) (mathkit.Container[F], error)
}

// AnnealFunc proposes a perturbed point at the given temperature, for
// SimulatedAnnealing.
type AnnealFunc[F mathkit.Real] interface {
	Anneal(param mathkit.Container[F], temperature F) (mathkit.Container[F], error)
}
