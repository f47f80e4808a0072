// SPDX-License-Identifier: MIT
// Package nlcg implements Nonlinear Conjugate Gradient: composes an inner
// solver.LineSearch and a solver.BetaUpdate policy (FletcherReeves /
// PolakRibiere / HestenesStiefel / DaiYuan), with the two restart rules of
// spec.md §4.9: force beta=0 every RestartIters iterations, and force
// beta=0 when the orthogonality-loss test |g.gPrev|/‖g‖² >= v fires. The
// previous direction p is solver-private state (spec.md §9's "sub-solvers
// as owned inner state").
package nlcg

import (
	"bytes"
	"encoding/gob"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives Nonlinear CG.
type Solver[F mathkit.Real] struct {
	LineSearch   solver.LineSearch[F]
	Beta         solver.BetaUpdate[F]
	RestartIters int // force beta=0 every n iterations; 0 disables
	OrthogTol    F   // orthogonality-loss threshold v, default 0.1
	GradTol      F

	pPrev mathkit.Container[F]
	iters int
}

// New returns a Nonlinear CG Solver composing ls and beta.
func New[F mathkit.Real](ls solver.LineSearch[F], beta solver.BetaUpdate[F], restartIters int, gradTol F) *Solver[F] {
	return &Solver[F]{LineSearch: ls, Beta: beta, RestartIters: restartIters, OrthogTol: F(0.1), GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "NonlinearCG" }

// Init seeds Cost/Grad; the first direction is steepest descent.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "nlcg: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	g, err := pw.Gradient(st.Param)
	if err != nil {
		return nil, nil, err
	}
	s.pPrev = vecmath.Negate(g)
	out := st.WithCost(f).WithGradient(g)
	return out, kv.New().Set("cost", f), nil
}

// NextIter line-searches along the current direction, then updates beta
// (applying restart rules) to form the next direction.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	alpha, err := s.LineSearch.Search(pw, st.Param, st.Cost, st.Grad, s.pPrev)
	if err != nil {
		return nil, nil, err
	}
	xNext, err := vecmath.Axpy(st.Param, alpha, s.pPrev)
	if err != nil {
		return nil, nil, err
	}
	fNext, err := pw.Cost(xNext)
	if err != nil {
		return nil, nil, err
	}
	gNext, err := pw.Gradient(xNext)
	if err != nil {
		return nil, nil, err
	}

	s.iters++
	beta, err := s.Beta.Update(st.Grad, gNext, s.pPrev)
	if err != nil {
		return nil, nil, err
	}

	restarted := false
	if s.RestartIters > 0 && s.iters%s.RestartIters == 0 {
		beta, restarted = 0, true
	}
	gDot, err := vecmath.DotScalar(gNext, st.Grad)
	if err != nil {
		return nil, nil, err
	}
	gNextNormSq, err := vecmath.DotScalar(gNext, gNext)
	if err != nil {
		return nil, nil, err
	}
	if gNextNormSq > 0 && abs(gDot)/gNextNormSq >= s.OrthogTol {
		beta, restarted = 0, true
	}

	negG := vecmath.Negate(gNext)
	pNext, err := vecmath.Axpy(negG, beta, s.pPrev)
	if err != nil {
		return nil, nil, err
	}
	s.pPrev = pNext

	out := st.WithParam(xNext).WithCost(fNext).WithGradient(gNext)
	log := kv.New().Set("cost", fNext).Set("alpha", alpha).Set("beta", beta).Set("restarted", restarted)
	return out, log, nil
}

func abs[F mathkit.Real](v F) F {
	if v < 0 {
		return -v
	}
	return v
}

// TerminateInternal fires SolverConverged when ‖g‖ <= GradTol.
func (s *Solver[F]) TerminateInternal(st *state.IterState[F]) state.Status {
	if s.GradTol <= 0 {
		return state.Zero
	}
	if vecmath.Norm2(st.Grad) <= s.GradTol {
		return state.Status{Reason: state.SolverConverged, Tag: "gradient norm below tolerance"}
	}
	return state.Zero
}

// persistedState is the gob-encoded shape of Solver's private fields,
// satisfying solver.StatefulSolver so a checkpoint resume restores the
// previous direction rather than feeding LineSearch.Search a nil pPrev.
type persistedState[F mathkit.Real] struct {
	PPrev []byte
	Iters int
}

// SnapshotState implements solver.StatefulSolver.
func (s *Solver[F]) SnapshotState() ([]byte, error) {
	pPrev, err := mathkit.EncodeContainer[F](s.pPrev)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(persistedState[F]{PPrev: pPrev, Iters: s.iters}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RestoreState implements solver.StatefulSolver.
func (s *Solver[F]) RestoreState(blob []byte) error {
	var ps persistedState[F]
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&ps); err != nil {
		return optimerr.Wrap(optimerr.CheckpointCorrupt, "nlcg: RestoreState: decode failed", err)
	}
	pPrev, err := mathkit.DecodeContainer[F](ps.PPrev)
	if err != nil {
		return optimerr.Wrap(optimerr.CheckpointCorrupt, "nlcg: RestoreState: decode pPrev failed", err)
	}
	s.pPrev = pPrev
	s.iters = ps.Iters
	return nil
}
