// SPDX-License-Identifier: MIT
package state

import (
	"time"

	"github.com/katalvlaran/optimcore/mathkit"
)

// LinearProgramState carries the simplex method's tableau and basis
// (spec.md §3). Tableau is row-major, augmented with the objective row as
// its last row and the RHS as its last column, matching the classical
// textbook layout the simplex solver pivots over.
type LinearProgramState[F mathkit.Real] struct {
	Tableau *mathkit.Dense[F]
	Basis   []int

	Iter         int
	MaxIters     int
	FuncCounts   map[string]uint64
	Time         time.Duration
	TerminationStatus Status
}

// NewLinearProgram wraps an initial tableau and basis.
func NewLinearProgram[F mathkit.Real](tableau *mathkit.Dense[F], basis []int) *LinearProgramState[F] {
	return &LinearProgramState[F]{
		Tableau:    tableau,
		Basis:      append([]int(nil), basis...),
		FuncCounts: make(map[string]uint64),
	}
}

func (s *LinearProgramState[F]) clone() *LinearProgramState[F] {
	out := *s
	out.Basis = append([]int(nil), s.Basis...)
	out.FuncCounts = make(map[string]uint64, len(s.FuncCounts))
	for k, v := range s.FuncCounts {
		out.FuncCounts[k] = v
	}
	return &out
}

// WithTableau replaces Tableau and Basis after a pivot step.
func (s *LinearProgramState[F]) WithTableau(t *mathkit.Dense[F], basis []int) *LinearProgramState[F] {
	out := s.clone()
	out.Tableau = t
	out.Basis = append([]int(nil), basis...)
	return out
}

// IncrementIter returns a copy with Iter advanced by exactly 1.
func (s *LinearProgramState[F]) IncrementIter() *LinearProgramState[F] {
	out := s.clone()
	out.Iter = s.Iter + 1
	return out
}

// WithTerminationStatus is a configuration setter.
func (s *LinearProgramState[F]) WithTerminationStatus(st Status) *LinearProgramState[F] {
	out := s.clone()
	out.TerminationStatus = st
	return out
}

// IncrementFuncCounts sum-merges delta into FuncCounts.
func (s *LinearProgramState[F]) IncrementFuncCounts(delta map[string]uint64) *LinearProgramState[F] {
	out := s.clone()
	for k, v := range delta {
		out.FuncCounts[k] += v
	}
	return out
}

// AddTime adds d to the accumulated elapsed time.
func (s *LinearProgramState[F]) AddTime(d time.Duration) *LinearProgramState[F] {
	out := s.clone()
	out.Time = s.Time + d
	return out
}
