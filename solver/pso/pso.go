// SPDX-License-Identifier: MIT
// Package pso implements box-constrained Particle Swarm Optimization
// (spec.md §4.9): a population of particles each carrying a position and
// velocity, updated toward its own best and the swarm's best. Velocities
// have no home in state.PopulationState and are kept as solver-private
// state, one entry per population index (spec.md §9's "sub-solvers as
// owned inner state").
package pso

import (
	"context"
	"math/rand"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver/internal/popeval"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives box-constrained Particle Swarm Optimization.
type Solver[F mathkit.Real] struct {
	SwarmSize int
	Inertia   F // w, default 0.7
	Cognitive F // c1, default 1.5
	Social    F // c2, default 1.5
	Lo, Hi    mathkit.Container[F]
	Rng       *rand.Rand
	Tol       F // TerminateInternal fires when best-cost improvement stalls

	// Ctx bounds the data-parallel cost-evaluation fan-out across the
	// swarm each iteration (spec.md §5); nil defaults to
	// context.Background(), i.e. unconditional fan-out.
	Ctx context.Context

	velocities  []mathkit.Container[F]
	personal    []state.Individual[F]
	lastImprove int
}

// New returns a Particle Swarm Solver with the given box constraints
// [lo,hi] and swarm size.
func New[F mathkit.Real](swarmSize int, lo, hi mathkit.Container[F], rng *rand.Rand, tol F) *Solver[F] {
	return &Solver[F]{SwarmSize: swarmSize, Inertia: F(0.7), Cognitive: F(1.5), Social: F(1.5), Lo: lo, Hi: hi, Rng: rng, Tol: tol}
}

func (s *Solver[F]) Name() string { return "ParticleSwarm" }

func (s *Solver[F]) uniform() float64 { return s.Rng.Float64() }

func (s *Solver[F]) ctx() context.Context {
	if s.Ctx != nil {
		return s.Ctx
	}
	return context.Background()
}

// Init scatters SwarmSize particles uniformly in [Lo,Hi] with zero initial
// velocity, evaluating every particle's initial cost data-parallel
// (spec.md §5).
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.PopulationState[F]) (*state.PopulationState[F], *kv.Log, error) {
	if s.SwarmSize <= 0 {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "pso: Init: SwarmSize must be positive")
	}
	xs := make([]mathkit.Container[F], s.SwarmSize)
	s.velocities = make([]mathkit.Container[F], s.SwarmSize)
	for i := 0; i < s.SwarmSize; i++ {
		x, err := mathkit.RandomFromRange(s.Lo, s.Hi, s.uniform)
		if err != nil {
			return nil, nil, err
		}
		xs[i] = x
		s.velocities[i] = mathkit.ZeroLike(x)
	}

	costs, err := popeval.EvalCosts(s.ctx(), pw, xs)
	if err != nil {
		return nil, nil, err
	}

	pop := make([]state.Individual[F], s.SwarmSize)
	s.personal = make([]state.Individual[F], s.SwarmSize)
	for i := 0; i < s.SwarmSize; i++ {
		pop[i] = state.Individual[F]{Param: xs[i], Cost: costs[i]}
		s.personal[i] = pop[i]
	}

	out := st.WithPopulation(pop)
	s.lastImprove = 0
	return out, kv.New().Set("best_cost", out.BestCost), nil
}

// NextIter updates every particle's velocity and position toward its
// personal best and the swarm's global best, clamping to [Lo,Hi], then
// evaluates the swarm's updated costs data-parallel (spec.md §5).
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.PopulationState[F]) (*state.PopulationState[F], *kv.Log, error) {
	xs := make([]mathkit.Container[F], len(st.Population))
	globalBest := st.BestParam

	for i, ind := range st.Population {
		r1, r2 := F(s.uniform()), F(s.uniform())

		toPersonal, err := mathkit.Sub(s.personal[i].Param, ind.Param)
		if err != nil {
			return nil, nil, err
		}
		toGlobal, err := mathkit.Sub(globalBest, ind.Param)
		if err != nil {
			return nil, nil, err
		}

		vNext := vecmath.Scale(s.Inertia, s.velocities[i])
		vNext, err = vecmath.Axpy(vNext, s.Cognitive*r1, toPersonal)
		if err != nil {
			return nil, nil, err
		}
		vNext, err = vecmath.Axpy(vNext, s.Social*r2, toGlobal)
		if err != nil {
			return nil, nil, err
		}
		s.velocities[i] = vNext

		xNext, err := mathkit.Add(ind.Param, vNext)
		if err != nil {
			return nil, nil, err
		}
		xNext, err = clamp(xNext, s.Lo, s.Hi)
		if err != nil {
			return nil, nil, err
		}
		xs[i] = xNext
	}

	costs, err := popeval.EvalCosts(s.ctx(), pw, xs)
	if err != nil {
		return nil, nil, err
	}

	pop := make([]state.Individual[F], len(st.Population))
	for i := range xs {
		pop[i] = state.Individual[F]{Param: xs[i], Cost: costs[i]}
		if costs[i] < s.personal[i].Cost {
			s.personal[i] = pop[i]
		}
	}

	out := st.WithPopulation(pop)
	if out.BestCost < st.BestCost {
		s.lastImprove = out.Iter
	}
	log := kv.New().Set("best_cost", out.BestCost)
	return out, log, nil
}

func clamp[F mathkit.Real](x, lo, hi mathkit.Container[F]) (mathkit.Container[F], error) {
	clamped, err := mathkit.Max(x, lo)
	if err != nil {
		return nil, err
	}
	return mathkit.Min(clamped, hi)
}

// TerminateInternal fires SolverConverged when the swarm's best cost has
// not improved for Tol iterations (Tol is interpreted as an iteration
// count here, mirroring spec.md's stall-detection convention for
// population solvers).
func (s *Solver[F]) TerminateInternal(st *state.PopulationState[F]) state.Status {
	if s.Tol <= 0 {
		return state.Zero
	}
	if F(st.Iter-s.lastImprove) >= s.Tol {
		return state.Status{Reason: state.SolverConverged, Tag: "best cost stalled"}
	}
	return state.Zero
}
