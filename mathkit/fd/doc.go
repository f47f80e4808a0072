// SPDX-License-Identifier: MIT
// Package fd adapts gonum.org/v1/gonum/diff/fd's finite-difference
// Gradient/Jacobian helpers to mathkit's Container[float64] contract, so a
// Problem that only supplies a cost or residual function still has a
// working GradientFunc/JacobianFunc for solvers that need derivatives
// (Newton, Gauss-Newton, quasi-Newton family), without requiring every
// Problem author to hand-write a finite-difference routine.
package fd
