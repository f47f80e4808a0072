// SPDX-License-Identifier: MIT
// Package trustregion implements the Trust Region outer loop (spec.md
// §4.9's "Trust Region (outer)") and its three selectable subproblem
// solvers (CauchyPoint, Dogleg, Steihaug). The outer Step function is
// shared by any solver that needs a trust-region iteration over a
// (gradient, Hessian) pair — solver/sr1trustregion composes it with an SR1
// Hessian update. Grounded on tsp/bb.go's branch-and-bound bookkeeping
// (bound/accept/reject per candidate), generalized from a combinatorial
// branch bound to a continuous trust-region radius.
package trustregion
