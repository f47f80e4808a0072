// SPDX-License-Identifier: MIT
package state

import (
	"time"

	"github.com/katalvlaran/optimcore/mathkit"
)

// IterState is the iterative-solver record: param/cost/gradient/Hessian/
// Jacobian/residual history one step back, best-so-far tracking, counters,
// timing, and termination status (spec.md §3).
type IterState[F mathkit.Real] struct {
	Param     mathkit.Container[F]
	PrevParam mathkit.Container[F]
	BestParam mathkit.Container[F]

	Cost     F
	PrevCost F
	BestCost F
	hasCost  bool

	TargetCost F

	Grad     mathkit.Container[F]
	PrevGrad mathkit.Container[F]

	Hessian     mathkit.Container[F]
	PrevHessian mathkit.Container[F]

	InvHessian     mathkit.Container[F]
	PrevInvHessian mathkit.Container[F]

	Jacobian     mathkit.Container[F]
	PrevJacobian mathkit.Container[F]

	Residuals     mathkit.Container[F]
	PrevResiduals mathkit.Container[F]

	Iter         int
	LastBestIter int
	MaxIters     int

	FuncCounts map[string]uint64

	Time time.Duration

	TerminationStatus Status
}

// New returns an Uninitialized IterState with zero-valued history, an
// infinite target cost (so TargetCostReached never fires until configured
// otherwise), and an empty func_counts map.
func New[F mathkit.Real]() *IterState[F] {
	var posInf F
	posInf = F(1) / F(0) // +Inf via IEEE 754 division, same convention as mathkit's NaN tests
	return &IterState[F]{
		BestCost:   posInf,
		TargetCost: negInf[F](),
		FuncCounts: make(map[string]uint64),
	}
}

func negInf[F mathkit.Real]() F {
	return -(F(1) / F(0))
}

// clone performs a shallow copy: a new *IterState value sharing no mutable
// map with the receiver but aliasing Container fields (ownership of those
// passes to the caller of the setter that replaces them, per spec.md §3's
// "updates produce new owned values assigned back into State").
func (s *IterState[F]) clone() *IterState[F] {
	out := *s
	out.FuncCounts = make(map[string]uint64, len(s.FuncCounts))
	for k, v := range s.FuncCounts {
		out.FuncCounts[k] = v
	}
	return &out
}

// WithParam replaces Param, pushing the old value to PrevParam.
func (s *IterState[F]) WithParam(p mathkit.Container[F]) *IterState[F] {
	out := s.clone()
	out.PrevParam = s.Param
	out.Param = p
	return out
}

// WithCost replaces Cost, pushing the old value to PrevCost. If c is
// strictly less than BestCost, BestParam/BestCost/LastBestIter are updated
// too — this is the single best-so-far update site (Design Notes §9: best-
// so-far locus is the Cost setter, not the Executor).
func (s *IterState[F]) WithCost(c F) *IterState[F] {
	out := s.clone()
	out.PrevCost = s.Cost
	out.Cost = c
	out.hasCost = true
	if c < out.BestCost {
		out.BestCost = c
		out.BestParam = out.Param
		out.LastBestIter = out.Iter
	}
	return out
}

// HasCost reports whether WithCost has been called at least once.
func (s *IterState[F]) HasCost() bool { return s.hasCost }

// WithGradient replaces Grad, pushing the old value to PrevGrad.
func (s *IterState[F]) WithGradient(g mathkit.Container[F]) *IterState[F] {
	out := s.clone()
	out.PrevGrad = s.Grad
	out.Grad = g
	return out
}

// WithHessian replaces Hessian, pushing the old value to PrevHessian.
func (s *IterState[F]) WithHessian(h mathkit.Container[F]) *IterState[F] {
	out := s.clone()
	out.PrevHessian = s.Hessian
	out.Hessian = h
	return out
}

// WithInvHessian replaces InvHessian, pushing the old value to
// PrevInvHessian.
func (s *IterState[F]) WithInvHessian(h mathkit.Container[F]) *IterState[F] {
	out := s.clone()
	out.PrevInvHessian = s.InvHessian
	out.InvHessian = h
	return out
}

// WithJacobian replaces Jacobian, pushing the old value to PrevJacobian.
func (s *IterState[F]) WithJacobian(j mathkit.Container[F]) *IterState[F] {
	out := s.clone()
	out.PrevJacobian = s.Jacobian
	out.Jacobian = j
	return out
}

// WithResiduals replaces Residuals, pushing the old value to
// PrevResiduals.
func (s *IterState[F]) WithResiduals(r mathkit.Container[F]) *IterState[F] {
	out := s.clone()
	out.PrevResiduals = s.Residuals
	out.Residuals = r
	return out
}

// WithMaxIters is a configuration setter.
func (s *IterState[F]) WithMaxIters(n int) *IterState[F] {
	out := s.clone()
	out.MaxIters = n
	return out
}

// WithTargetCost is a configuration setter.
func (s *IterState[F]) WithTargetCost(c F) *IterState[F] {
	out := s.clone()
	out.TargetCost = c
	return out
}

// WithTerminationStatus is a configuration setter.
func (s *IterState[F]) WithTerminationStatus(st Status) *IterState[F] {
	out := s.clone()
	out.TerminationStatus = st
	return out
}

// IncrementIter returns a copy with Iter advanced by exactly 1 (spec.md
// §3's "iter strictly increases by exactly 1 per next_iter call that does
// not fail" — enforced by the Executor calling this, never the solver).
func (s *IterState[F]) IncrementIter() *IterState[F] {
	out := s.clone()
	out.Iter = s.Iter + 1
	return out
}

// IncrementFuncCounts sum-merges delta into FuncCounts.
func (s *IterState[F]) IncrementFuncCounts(delta map[string]uint64) *IterState[F] {
	out := s.clone()
	for k, v := range delta {
		out.FuncCounts[k] += v
	}
	return out
}

// AddTime adds d to the accumulated elapsed time.
func (s *IterState[F]) AddTime(d time.Duration) *IterState[F] {
	out := s.clone()
	out.Time = s.Time + d
	return out
}

// TakeParam returns Param and a copy of s with Param cleared, handing
// ownership to a caller that will mutate and return it (spec.md §4.4's
// destructive-getter contract).
func (s *IterState[F]) TakeParam() (mathkit.Container[F], *IterState[F]) {
	p := s.Param
	out := s.clone()
	out.Param = nil
	return p, out
}

// TakeGradient returns Grad and a copy of s with Grad cleared.
func (s *IterState[F]) TakeGradient() (mathkit.Container[F], *IterState[F]) {
	g := s.Grad
	out := s.clone()
	out.Grad = nil
	return g, out
}

// TakeHessian returns Hessian and a copy of s with Hessian cleared.
func (s *IterState[F]) TakeHessian() (mathkit.Container[F], *IterState[F]) {
	h := s.Hessian
	out := s.clone()
	out.Hessian = nil
	return h, out
}

// LimitReason evaluates the first two steps of the termination predicate
// (spec.md §4.4) that IterState alone can decide: iter >= max_iters, then
// best_cost <= target_cost. The Executor evaluates the remaining two steps
// (solver.terminate_internal, external abort) since those require calling
// out to the Solver and checking the cancellation flag.
func (s *IterState[F]) LimitReason() (Reason, bool) {
	if s.MaxIters > 0 && s.Iter >= s.MaxIters {
		return MaxItersReached, true
	}
	if s.hasCost && s.BestCost <= s.TargetCost {
		return TargetCostReached, true
	}
	return NotTerminated, false
}
