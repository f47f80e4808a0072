// SPDX-License-Identifier: MIT
// Package lbfgs implements limited-memory BFGS: a bounded ring buffer of the
// last m (s,y) pairs reconstructs the direction via the standard two-loop
// recursion, discarding the oldest pair once the ring is full (spec.md
// §4.9's BFGS/DFP/L-BFGS/SR1 paragraph). The ring buffer is solver-private
// state (spec.md §9's "sub-solvers as owned inner state") since
// state.IterState has no slot for a variable-length pair history.
package lbfgs

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

type pair[F mathkit.Real] struct {
	s, y mathkit.Container[F]
	rho  F
}

// Solver drives L-BFGS via an injected line search and memory size M.
type Solver[F mathkit.Real] struct {
	LineSearch solver.LineSearch[F]
	M          int // memory size, default 7 per spec.md §8.C
	GradTol    F

	history []pair[F]
}

// New returns an L-BFGS Solver with memory m composing ls.
func New[F mathkit.Real](ls solver.LineSearch[F], m int, gradTol F) *Solver[F] {
	return &Solver[F]{LineSearch: ls, M: m, GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "L-BFGS" }

// Init seeds Cost/Grad; the history starts empty (first direction is
// steepest descent).
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "lbfgs: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	g, err := pw.Gradient(st.Param)
	if err != nil {
		return nil, nil, err
	}
	out := st.WithCost(f).WithGradient(g)
	return out, kv.New().Set("cost", f), nil
}

// direction computes the L-BFGS two-loop-recursion direction for gradient g.
func (s *Solver[F]) direction(g mathkit.Container[F]) (mathkit.Container[F], error) {
	q := g.Clone()
	n := len(s.history)
	alphas := make([]F, n)

	for i := n - 1; i >= 0; i-- {
		h := s.history[i]
		a, err := vecmath.DotScalar(h.s, q)
		if err != nil {
			return nil, err
		}
		a *= h.rho
		alphas[i] = a
		q, err = vecmath.Axpy(q, -a, h.y)
		if err != nil {
			return nil, err
		}
	}

	gamma := F(1)
	if n > 0 {
		last := s.history[n-1]
		yy, err := vecmath.DotScalar(last.y, last.y)
		if err != nil {
			return nil, err
		}
		sy, err := vecmath.DotScalar(last.s, last.y)
		if err != nil {
			return nil, err
		}
		if yy > 0 {
			gamma = sy / yy
		}
	}
	r := vecmath.Scale(gamma, q)

	for i := 0; i < n; i++ {
		h := s.history[i]
		b, err := vecmath.DotScalar(h.y, r)
		if err != nil {
			return nil, err
		}
		b *= h.rho
		r, err = vecmath.Axpy(r, alphas[i]-b, h.s)
		if err != nil {
			return nil, err
		}
	}
	return vecmath.Negate(r), nil
}

// NextIter computes the two-loop direction, line-searches, and pushes the
// observed (s,y) pair into the ring buffer.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	direction, err := s.direction(st.Grad)
	if err != nil {
		return nil, nil, err
	}

	alpha, err := s.LineSearch.Search(pw, st.Param, st.Cost, st.Grad, direction)
	if err != nil {
		return nil, nil, err
	}
	xNext, err := vecmath.Axpy(st.Param, alpha, direction)
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

	sVec, err := mathkit.Sub(xNext, st.Param)
	if err != nil {
		return nil, nil, err
	}
	yVec, err := mathkit.Sub(gNext, st.Grad)
	if err != nil {
		return nil, nil, err
	}
	sy, err := vecmath.DotScalar(sVec, yVec)
	if err != nil {
		return nil, nil, err
	}
	if sy > 1e-12 {
		s.history = append(s.history, pair[F]{s: sVec, y: yVec, rho: 1 / sy})
		if len(s.history) > s.M {
			s.history = s.history[1:]
		}
	}

	out := st.WithParam(xNext).WithCost(fNext).WithGradient(gNext)
	log := kv.New().Set("cost", fNext).Set("alpha", alpha).Set("grad_norm", vecmath.Norm2(gNext)).Set("memory", len(s.history))
	return out, log, nil
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

// pairDTO is pair's gob-friendly flattening (Container fields can't be
// gob-encoded directly, being interfaces over unexported concrete types).
type pairDTO struct {
	S, Y []byte
	Rho  float64
}

// SnapshotState implements solver.StatefulSolver, persisting the ring
// buffer so a resumed run continues the two-loop recursion with the same
// (s,y) history instead of restarting from steepest descent.
func (s *Solver[F]) SnapshotState() ([]byte, error) {
	dtos := make([]pairDTO, len(s.history))
	for i, h := range s.history {
		sBlob, err := mathkit.EncodeContainer[F](h.s)
		if err != nil {
			return nil, err
		}
		yBlob, err := mathkit.EncodeContainer[F](h.y)
		if err != nil {
			return nil, err
		}
		dtos[i] = pairDTO{S: sBlob, Y: yBlob, Rho: float64(h.rho)}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dtos); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RestoreState implements solver.StatefulSolver.
func (s *Solver[F]) RestoreState(blob []byte) error {
	var dtos []pairDTO
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&dtos); err != nil {
		return optimerr.Wrap(optimerr.CheckpointCorrupt, "lbfgs: RestoreState: decode failed", err)
	}
	history := make([]pair[F], len(dtos))
	for i, d := range dtos {
		sVec, err := mathkit.DecodeContainer[F](d.S)
		if err != nil {
			return optimerr.Wrap(optimerr.CheckpointCorrupt, "lbfgs: RestoreState: decode s failed", err)
		}
		yVec, err := mathkit.DecodeContainer[F](d.Y)
		if err != nil {
			return optimerr.Wrap(optimerr.CheckpointCorrupt, "lbfgs: RestoreState: decode y failed", err)
		}
		history[i] = pair[F]{s: sVec, y: yVec, rho: F(d.Rho)}
	}
	s.history = history
	return nil
}
