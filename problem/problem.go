// SPDX-License-Identifier: MIT
// Package problem wraps a user-supplied Problem, counting evaluations per
// capability and forwarding calls to whichever optional interfaces the
// Problem implements. A solver that requests an unimplemented capability
// receives optimerr.NotImplemented instead of a nil-pointer panic.
package problem

import (
	"sync/atomic"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problemiface"
)

// Capability names the countable operations a Problem may expose.
type Capability string

// The closed set of capabilities the Problem Wrapper tracks.
const (
	Cost           Capability = "cost"
	Gradient       Capability = "gradient"
	Hessian        Capability = "hessian"
	Jacobian       Capability = "jacobian"
	Residuals      Capability = "residuals"
	Apply          Capability = "apply"
	ApplyTranspose Capability = "apply_transpose"
	Anneal         Capability = "anneal"
)

var allCapabilities = []Capability{Cost, Gradient, Hessian, Jacobian, Residuals, Apply, ApplyTranspose, Anneal}

// Wrapper wraps an arbitrary user Problem, counting calls per capability.
// Counters are atomics so a Wrapper is safe to share by read reference
// across a data-parallel population-evaluation worker pool (spec §5).
type Wrapper[F mathkit.Real] struct {
	problem  any
	counters map[Capability]*atomic.Uint64
}

// New wraps problem. problem may implement any subset of
// problemiface.{CostFunc,GradientFunc,HessianFunc,JacobianFunc,
// ResidualFunc,OperatorFunc,AnnealFunc}.
func New[F mathkit.Real](problem any) *Wrapper[F] {
	counters := make(map[Capability]*atomic.Uint64, len(allCapabilities))
	for _, c := range allCapabilities {
		counters[c] = &atomic.Uint64{}
	}
	return &Wrapper[F]{problem: problem, counters: counters}
}

// Forward constructs an inner Wrapper around the same underlying Problem,
// for a composite solver's sub-solver (spec §4.3/§9: inner solvers see a
// fresh Wrapper forwarding to the outer Problem). Counts are tracked on the
// returned Wrapper independently and must be merged back via TakeCounts +
// MergeCounts by the outer solver on return.
func (w *Wrapper[F]) Forward() *Wrapper[F] {
	return New[F](w.problem)
}

func (w *Wrapper[F]) bump(c Capability) {
	w.counters[c].Add(1)
}

// Cost evaluates the objective, failing with NotImplemented if the wrapped
// Problem does not implement problemiface.CostFunc.
func (w *Wrapper[F]) Cost(param mathkit.Container[F]) (F, error) {
	p, ok := w.problem.(problemiface.CostFunc[F])
	if !ok {
		var zero F
		return zero, optimerr.New(optimerr.NotImplemented, "problem: Cost: not implemented by this Problem")
	}
	w.bump(Cost)
	return p.Cost(param)
}

// Gradient evaluates the gradient, failing with NotImplemented if absent.
func (w *Wrapper[F]) Gradient(param mathkit.Container[F]) (mathkit.Container[F], error) {
	p, ok := w.problem.(problemiface.GradientFunc[F])
	if !ok {
		return nil, optimerr.New(optimerr.NotImplemented, "problem: Gradient: not implemented by this Problem")
	}
	w.bump(Gradient)
	return p.Gradient(param)
}

// Hessian evaluates the Hessian, failing with NotImplemented if absent.
func (w *Wrapper[F]) Hessian(param mathkit.Container[F]) (mathkit.Container[F], error) {
	p, ok := w.problem.(problemiface.HessianFunc[F])
	if !ok {
		return nil, optimerr.New(optimerr.NotImplemented, "problem: Hessian: not implemented by this Problem")
	}
	w.bump(Hessian)
	return p.Hessian(param)
}

// Jacobian evaluates the Jacobian, failing with NotImplemented if absent.
func (w *Wrapper[F]) Jacobian(param mathkit.Container[F]) (mathkit.Container[F], error) {
	p, ok := w.problem.(problemiface.JacobianFunc[F])
	if !ok {
		return nil, optimerr.New(optimerr.NotImplemented, "problem: Jacobian: not implemented by this Problem")
	}
	w.bump(Jacobian)
	return p.Jacobian(param)
}

// Residuals evaluates the residual vector, failing with NotImplemented if
// absent.
func (w *Wrapper[F]) Residuals(param mathkit.Container[F]) (mathkit.Container[F], error) {
	p, ok := w.problem.(problemiface.ResidualFunc[F])
	if !ok {
		return nil, optimerr.New(optimerr.NotImplemented, "problem: Residuals: not implemented by this Problem")
	}
	w.bump(Residuals)
	return p.Residuals(param)
}

// Apply evaluates the linear operator, failing with NotImplemented if
// absent.
func (w *Wrapper[F]) Apply(param mathkit.Container[F]) (mathkit.Container[F], error) {
	p, ok := w.problem.(problemiface.OperatorFunc[F])
	if !ok {
		return nil, optimerr.New(optimerr.NotImplemented, "problem: Apply: not implemented by this Problem")
	}
	w.bump(Apply)
	return p.Apply(param)
}

// ApplyTranspose evaluates the linear operator's transpose, failing with
// NotImplemented if absent.
func (w *Wrapper[F]) ApplyTranspose(param mathkit.Container[F]) (mathkit.Container[F], error) {
	p, ok := w.problem.(problemiface.OperatorFunc[F])
	if !ok {
		return nil, optimerr.New(optimerr.NotImplemented, "problem: ApplyTranspose: not implemented by this Problem")
	}
	w.bump(ApplyTranspose)
	return p.ApplyTranspose(param)
}

// Anneal proposes a perturbed point at the given temperature, failing with
// NotImplemented if absent.
func (w *Wrapper[F]) Anneal(param mathkit.Container[F], temperature F) (mathkit.Container[F], error) {
	p, ok := w.problem.(problemiface.AnnealFunc[F])
	if !ok {
		return nil, optimerr.New(optimerr.NotImplemented, "problem: Anneal: not implemented by this Problem")
	}
	w.bump(Anneal)
	return p.Anneal(param, temperature)
}

// Implements reports whether the wrapped Problem provides the given
// capability, without counting a call.
func (w *Wrapper[F]) Implements(c Capability) bool {
	switch c {
	case Cost:
		_, ok := w.problem.(problemiface.CostFunc[F])
		return ok
	case Gradient:
		_, ok := w.problem.(problemiface.GradientFunc[F])
		return ok
	case Hessian:
		_, ok := w.problem.(problemiface.HessianFunc[F])
		return ok
	case Jacobian:
		_, ok := w.problem.(problemiface.JacobianFunc[F])
		return ok
	case Residuals:
		_, ok := w.problem.(problemiface.ResidualFunc[F])
		return ok
	case Apply, ApplyTranspose:
		_, ok := w.problem.(problemiface.OperatorFunc[F])
		return ok
	case Anneal:
		_, ok := w.problem.(problemiface.AnnealFunc[F])
		return ok
	default:
		return false
	}
}

// TakeCounts drains and returns a snapshot of every capability counter,
// resetting them to zero. Used to merge nested-solver counts upward
// (spec §4.3's take_counts) and by the Executor to update a State's
// func_counts each iteration.
func (w *Wrapper[F]) TakeCounts() map[string]uint64 {
	out := make(map[string]uint64, len(w.counters))
	for c, counter := range w.counters {
		out[string(c)] = counter.Swap(0)
	}
	return out
}

// Counts returns a snapshot of every capability counter without resetting
// them.
func (w *Wrapper[F]) Counts() map[string]uint64 {
	out := make(map[string]uint64, len(w.counters))
	for c, counter := range w.counters {
		out[string(c)] = counter.Load()
	}
	return out
}

// MergeCounts adds delta's per-capability counts into w's counters,
// matching spec.md §4.3's "merged upward by composite solvers."
func (w *Wrapper[F]) MergeCounts(delta map[string]uint64) {
	for name, n := range delta {
		if counter, ok := w.counters[Capability(name)]; ok {
			counter.Add(n)
		}
	}
}
