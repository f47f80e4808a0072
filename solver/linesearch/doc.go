// SPDX-License-Identifier: MIT
// Package linesearch implements solver.LineSearch strategies: Backtracking
// (parameterized by an acceptance Condition — Armijo, Wolfe, StrongWolfe, or
// Goldstein), MoreThuente (bracket-and-zoom satisfying the strong Wolfe
// conditions), and HagerZhang (bracketing with the approximate Wolfe
// conditions, tolerant of round-off near a minimizer). Grounded on
// tsp/two_opt.go's propose-evaluate-accept step shape, generalized from a
// discrete swap to a continuous step length.
package linesearch
