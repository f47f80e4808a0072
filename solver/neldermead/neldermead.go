// SPDX-License-Identifier: MIT
// Package neldermead implements the derivative-free Nelder-Mead simplex
// method (spec.md §4.9): reflection, expansion, contraction and shrink of
// an n+1-point simplex, driven purely off pw.Cost (no Gradient required).
package neldermead

import (
	"context"
	"sort"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/popeval"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives Nelder-Mead over a population of n+1 vertices.
type Solver[F mathkit.Real] struct {
	Alpha       F // reflection coefficient, default 1
	Gamma       F // expansion coefficient, default 2
	Rho         F // contraction coefficient, default 0.5
	Sigma       F // shrink coefficient, default 0.5
	InitialStep F // edge length of the initial simplex, default 1
	Tol         F // TerminateInternal fires when the cost spread <= Tol
}

// New returns a Nelder-Mead Solver with Nelder & Mead's classic
// coefficients.
func New[F mathkit.Real](initialStep, tol F) *Solver[F] {
	return &Solver[F]{Alpha: 1, Gamma: 2, Rho: F(0.5), Sigma: F(0.5), InitialStep: initialStep, Tol: tol}
}

func (s *Solver[F]) Name() string { return "NelderMead" }

// Init builds the initial simplex: the given seed vertex plus one
// perturbation per dimension, evaluating every vertex's cost data-parallel
// (spec.md §5) since the n+1 initial vertices are mutually independent.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.PopulationState[F]) (*state.PopulationState[F], *kv.Log, error) {
	if len(st.Population) == 0 {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "neldermead: Init: Population must be seeded with one vertex before Init")
	}
	x0 := st.Population[0].Param
	n := x0.Shape().Size()
	xs := make([]mathkit.Container[F], n+1)
	xs[0] = x0
	for i := 0; i < n; i++ {
		xi := x0.Clone()
		v, _ := xi.At(i)
		_ = xi.SetAt(i, v+s.InitialStep)
		xs[i+1] = xi
	}

	costs, err := popeval.EvalCosts(context.Background(), pw, xs)
	if err != nil {
		return nil, nil, err
	}

	pop := make([]state.Individual[F], n+1)
	for i, x := range xs {
		pop[i] = state.Individual[F]{Param: x, Cost: costs[i]}
	}

	out := st.WithPopulation(pop)
	return out, kv.New().Set("best_cost", out.BestCost), nil
}

// NextIter performs one reflect/expand/contract/shrink cycle.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.PopulationState[F]) (*state.PopulationState[F], *kv.Log, error) {
	pop := append([]state.Individual[F](nil), st.Population...)
	sort.Slice(pop, func(i, j int) bool { return pop[i].Cost < pop[j].Cost })

	n := len(pop) - 1
	worst := pop[n]

	centroid := mathkit.ZeroLike(pop[0].Param)
	for i := 0; i < n; i++ {
		var err error
		centroid, err = mathkit.Add(centroid, pop[i].Param)
		if err != nil {
			return nil, nil, err
		}
	}
	centroid = vecmath.Scale(1/F(n), centroid)

	action := "reflect"
	reflected, err := reflect(centroid, worst.Param, s.Alpha)
	if err != nil {
		return nil, nil, err
	}
	fReflected, err := pw.Cost(reflected)
	if err != nil {
		return nil, nil, err
	}

	var replacement state.Individual[F]
	switch {
	case fReflected < pop[0].Cost:
		expanded, err := reflect(centroid, worst.Param, s.Alpha*s.Gamma)
		if err != nil {
			return nil, nil, err
		}
		fExpanded, err := pw.Cost(expanded)
		if err != nil {
			return nil, nil, err
		}
		if fExpanded < fReflected {
			replacement = state.Individual[F]{Param: expanded, Cost: fExpanded}
			action = "expand"
		} else {
			replacement = state.Individual[F]{Param: reflected, Cost: fReflected}
		}
	case fReflected < pop[n-1].Cost:
		replacement = state.Individual[F]{Param: reflected, Cost: fReflected}
	default:
		contracted, err := reflect(centroid, worst.Param, -s.Rho)
		if err != nil {
			return nil, nil, err
		}
		fContracted, err := pw.Cost(contracted)
		if err != nil {
			return nil, nil, err
		}
		if fContracted < worst.Cost {
			replacement = state.Individual[F]{Param: contracted, Cost: fContracted}
			action = "contract"
		} else {
			action = "shrink"
			shrunk, err := shrinkSimplex(pw, pop, s.Sigma)
			if err != nil {
				return nil, nil, err
			}
			out := st.WithPopulation(shrunk)
			return out, kv.New().Set("action", action).Set("best_cost", out.BestCost), nil
		}
	}

	pop[n] = replacement
	out := st.WithPopulation(pop)
	log := kv.New().Set("action", action).Set("best_cost", out.BestCost)
	return out, log, nil
}

// reflect returns centroid + coeff*(centroid - worst).
func reflect[F mathkit.Real](centroid, worst mathkit.Container[F], coeff F) (mathkit.Container[F], error) {
	diff, err := mathkit.Sub(centroid, worst)
	if err != nil {
		return nil, err
	}
	return vecmath.Axpy(centroid, coeff, diff)
}

// shrinkSimplex moves every vertex but the best toward the best by sigma.
func shrinkSimplex[F mathkit.Real](pw *problem.Wrapper[F], pop []state.Individual[F], sigma F) ([]state.Individual[F], error) {
	best := pop[0]
	out := make([]state.Individual[F], len(pop))
	out[0] = best
	for i := 1; i < len(pop); i++ {
		diff, err := mathkit.Sub(pop[i].Param, best.Param)
		if err != nil {
			return nil, err
		}
		xNew, err := vecmath.Axpy(best.Param, sigma, diff)
		if err != nil {
			return nil, err
		}
		fNew, err := pw.Cost(xNew)
		if err != nil {
			return nil, err
		}
		out[i] = state.Individual[F]{Param: xNew, Cost: fNew}
	}
	return out, nil
}

// TerminateInternal fires SolverConverged when the spread between the best
// and worst costs in the simplex has shrunk below Tol.
func (s *Solver[F]) TerminateInternal(st *state.PopulationState[F]) state.Status {
	if s.Tol <= 0 || len(st.Population) == 0 {
		return state.Zero
	}
	lo, hi := st.Population[0].Cost, st.Population[0].Cost
	for _, ind := range st.Population {
		if ind.Cost < lo {
			lo = ind.Cost
		}
		if ind.Cost > hi {
			hi = ind.Cost
		}
	}
	if hi-lo <= s.Tol {
		return state.Status{Reason: state.SolverConverged, Tag: "simplex cost spread below tolerance"}
	}
	return state.Zero
}
