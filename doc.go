// Package optimcore is a pluggable numerical optimization engine: a
// Problem/Solver/Executor protocol, a catalog of line-search, trust-region,
// quasi-Newton, derivative-free, and population-based solvers, and a
// generic math-container layer (mathkit) underneath them.
//
// Under the hood:
//
//	mathkit/      — generic Container[F]/Dense/Vector algebra shared by every solver
//	problem/      — Wrapper around user cost/gradient/Hessian/Jacobian callbacks
//	state/        — immutable IterState/PopulationState, gob-friendly Snapshot
//	solver/       — the solver catalog (gradientdescent, lbfgs, pso, cmaes, ...)
//	executor/     — the run loop: Init/NextIter/TerminateInternal, observers, checkpoints
//	observer/     — Observer fan-out and firing-mode policies
//	checkpoint/   — gob-encoded state persistence and resume
//	optimerr/     — closed error-kind taxonomy shared across packages
package optimcore
