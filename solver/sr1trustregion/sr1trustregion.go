// SPDX-License-Identifier: MIT
// Package sr1trustregion composes an SR1 Hessian update with the
// trustregion outer loop (spec.md §4.9's "SR1-TrustRegion"). The Hessian
// approximation lives in state.IterState.Hessian, the same slot plain SR1
// uses, so a checkpoint taken mid-run restores identically whichever of the
// two solvers wrote it.
package sr1trustregion

import (
	"bytes"
	"encoding/gob"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/problem"
	"github.com/katalvlaran/optimcore/solver"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
	"github.com/katalvlaran/optimcore/solver/trustregion"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives the SR1-TrustRegion method.
type Solver[F mathkit.Real] struct {
	Subproblem solver.TrustRegionSubproblem[F]
	Delta0     F
	DeltaMax   F
	Eta        F
	SafeguardR F
	GradTol    F

	delta F
}

// New returns an SR1-TrustRegion Solver.
func New[F mathkit.Real](sub solver.TrustRegionSubproblem[F], delta0, deltaMax, eta, gradTol F) *Solver[F] {
	return &Solver[F]{Subproblem: sub, Delta0: delta0, DeltaMax: deltaMax, Eta: eta, SafeguardR: F(1e-8), GradTol: gradTol}
}

func (s *Solver[F]) Name() string { return "SR1-TrustRegion" }

// Init seeds Cost/Grad, an identity Hessian approximation, and the initial
// trust-region radius.
func (s *Solver[F]) Init(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	if st.Param == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "sr1trustregion: Init: Param must be set before Init")
	}
	f, err := pw.Cost(st.Param)
	if err != nil {
		return nil, nil, err
	}
	g, err := pw.Gradient(st.Param)
	if err != nil {
		return nil, nil, err
	}
	n := st.Param.Shape().Size()
	eye, err := mathkit.Eye[F](n)
	if err != nil {
		return nil, nil, err
	}
	s.delta = s.Delta0
	out := st.WithCost(f).WithGradient(g).WithHessian(eye)
	return out, kv.New().Set("cost", f).Set("delta", s.delta), nil
}

// NextIter performs one trust-region iteration, updating the SR1 Hessian
// approximation when the step is accepted.
func (s *Solver[F]) NextIter(pw *problem.Wrapper[F], st *state.IterState[F]) (*state.IterState[F], *kv.Log, error) {
	res, err := trustregion.Step(pw, s.Subproblem, st.Param, st.Cost, st.Grad, st.Hessian, s.delta, s.DeltaMax, s.Eta)
	if err != nil {
		return nil, nil, err
	}
	s.delta = res.Delta

	hNext := st.Hessian
	if res.Accepted {
		sVec, err := mathkit.Sub(res.Param, st.Param)
		if err != nil {
			return nil, nil, err
		}
		yVec, err := mathkit.Sub(res.Grad, st.Grad)
		if err != nil {
			return nil, nil, err
		}
		hNext, _, err = sr1Update(st.Hessian, sVec, yVec, s.SafeguardR)
		if err != nil {
			return nil, nil, err
		}
	}

	out := st.WithParam(res.Param).WithCost(res.Cost).WithGradient(res.Grad).WithHessian(hNext)
	log := kv.New().Set("cost", res.Cost).Set("delta", s.delta).Set("rho", res.Rho).Set("accepted", res.Accepted)
	return out, log, nil
}

// sr1Update applies B+ = B + ((y-Bs)(y-Bs)^T)/((y-Bs)^T s), skipping the
// update if |(y-Bs)^T s| < r*‖s‖*‖y-Bs‖ (same safeguard as solver/sr1).
func sr1Update[F mathkit.Real](b mathkit.Container[F], s, y mathkit.Container[F], r F) (mathkit.Container[F], bool, error) {
	bs, err := vecmath.ApplyMatrix(b, s)
	if err != nil {
		return b, false, err
	}
	yMinusBs, err := mathkit.Sub(y, bs)
	if err != nil {
		return b, false, err
	}
	denom, err := vecmath.DotScalar(yMinusBs, s)
	if err != nil {
		return b, false, err
	}
	safeguard := r * vecmath.Norm2(s) * vecmath.Norm2(yMinusBs)
	if absF(denom) < safeguard {
		return b, false, nil
	}
	outer, err := mathkit.Outer(yMinusBs, yMinusBs)
	if err != nil {
		return b, false, err
	}
	out, err := mathkit.ScaledAdd(b, 1/denom, outer)
	if err != nil {
		return b, false, err
	}
	return out, true, nil
}

func absF[F mathkit.Real](v F) F {
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

// SnapshotState implements solver.StatefulSolver, persisting the trust
// radius so a resumed run doesn't silently restart at delta=0 (the step
// would stay clamped to the origin until a fresh Delta0 reset it).
func (s *Solver[F]) SnapshotState() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(float64(s.delta)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RestoreState implements solver.StatefulSolver.
func (s *Solver[F]) RestoreState(blob []byte) error {
	var delta float64
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&delta); err != nil {
		return optimerr.Wrap(optimerr.CheckpointCorrupt, "sr1trustregion: RestoreState: decode failed", err)
	}
	s.delta = F(delta)
	return nil
}
