// SPDX-License-Identifier: MIT
package state

import (
	"time"

	"github.com/katalvlaran/optimcore/mathkit"
)

// Individual pairs a candidate point with its evaluated cost, the element
// type of PopulationState.Population.
type Individual[F mathkit.Real] struct {
	Param mathkit.Container[F]
	Cost  F
}

// PopulationState carries the per-iteration record for population-based
// solvers (particle swarm, Nelder-Mead, CMA-ES; simulated annealing uses
// IterState):
// an ordered population, the best individual found so far, and the same
// counters/termination fields as IterState (spec.md §3: "otherwise
// parallel semantics").
type PopulationState[F mathkit.Real] struct {
	Population []Individual[F]

	BestParam mathkit.Container[F]
	BestCost  F
	hasBest   bool

	Iter         int
	LastBestIter int
	MaxIters     int
	TargetCost   F

	FuncCounts map[string]uint64
	Time       time.Duration

	TerminationStatus Status
}

// NewPopulation returns an empty PopulationState with BestCost at +Inf.
func NewPopulation[F mathkit.Real]() *PopulationState[F] {
	return &PopulationState[F]{
		BestCost:   F(1) / F(0),
		TargetCost: -(F(1) / F(0)),
		FuncCounts: make(map[string]uint64),
	}
}

func (s *PopulationState[F]) clone() *PopulationState[F] {
	out := *s
	out.Population = append([]Individual[F](nil), s.Population...)
	out.FuncCounts = make(map[string]uint64, len(s.FuncCounts))
	for k, v := range s.FuncCounts {
		out.FuncCounts[k] = v
	}
	return &out
}

// HasBest reports whether WithPopulation has ever updated the best.
func (s *PopulationState[F]) HasBest() bool { return s.hasBest }

// WithPopulation replaces Population and recomputes BestParam/BestCost/
// LastBestIter if any individual strictly improves on the current best
// (same best-so-far locus convention as IterState.WithCost).
func (s *PopulationState[F]) WithPopulation(pop []Individual[F]) *PopulationState[F] {
	out := s.clone()
	out.Population = append([]Individual[F](nil), pop...)
	for _, ind := range out.Population {
		if !out.hasBest || ind.Cost < out.BestCost {
			out.BestCost = ind.Cost
			out.BestParam = ind.Param
			out.LastBestIter = out.Iter
			out.hasBest = true
		}
	}
	return out
}

// WithMaxIters is a configuration setter.
func (s *PopulationState[F]) WithMaxIters(n int) *PopulationState[F] {
	out := s.clone()
	out.MaxIters = n
	return out
}

// WithTargetCost is a configuration setter.
func (s *PopulationState[F]) WithTargetCost(c F) *PopulationState[F] {
	out := s.clone()
	out.TargetCost = c
	return out
}

// WithTerminationStatus is a configuration setter.
func (s *PopulationState[F]) WithTerminationStatus(st Status) *PopulationState[F] {
	out := s.clone()
	out.TerminationStatus = st
	return out
}

// IncrementIter returns a copy with Iter advanced by exactly 1.
func (s *PopulationState[F]) IncrementIter() *PopulationState[F] {
	out := s.clone()
	out.Iter = s.Iter + 1
	return out
}

// IncrementFuncCounts sum-merges delta into FuncCounts.
func (s *PopulationState[F]) IncrementFuncCounts(delta map[string]uint64) *PopulationState[F] {
	out := s.clone()
	for k, v := range delta {
		out.FuncCounts[k] += v
	}
	return out
}

// AddTime adds d to the accumulated elapsed time.
func (s *PopulationState[F]) AddTime(d time.Duration) *PopulationState[F] {
	out := s.clone()
	out.Time = s.Time + d
	return out
}
