// SPDX-License-Identifier: MIT
// Package gonumf64 adapts gonum.org/v1/gonum/mat's Dense and VecDense types
// to the mathkit.Container[float64] contract, so solver catalog code written
// against mathkit's capability layer can be backed by gonum's BLAS/LAPACK
// bindings instead of the pure-Go native backend (mathkit.Dense/Vector) when
// performance on larger problems matters more than dependency-freeness.
package gonumf64
