// SPDX-License-Identifier: MIT
package state

import (
	"time"

	"github.com/katalvlaran/optimcore/mathkit"
)

// containerKind tags which concrete mathkit.Container a flattened field
// reconstructs into; checkpoint format choice is deliberately unspecified
// by spec.md (Design Notes §9), so this is the reference implementation's
// choice, not a contractual wire format.
type containerKind uint8

const (
	kindNil containerKind = iota
	kindScalar
	kindVector
	kindDense
)

type containerDTO[F mathkit.Real] struct {
	Kind containerKind
	Rows int
	Cols int
	Data []F
}

func toDTO[F mathkit.Real](c mathkit.Container[F]) containerDTO[F] {
	if c == nil {
		return containerDTO[F]{Kind: kindNil}
	}
	shape := c.Shape()
	n := shape.Size()
	data := make([]F, n)
	for i := 0; i < n; i++ {
		data[i], _ = c.At(i)
	}
	switch c.(type) {
	case *mathkit.Scalar[F]:
		return containerDTO[F]{Kind: kindScalar, Rows: 1, Cols: 1, Data: data}
	case *mathkit.Vector[F]:
		return containerDTO[F]{Kind: kindVector, Rows: shape.Rows, Cols: 1, Data: data}
	default:
		return containerDTO[F]{Kind: kindDense, Rows: shape.Rows, Cols: shape.Cols, Data: data}
	}
}

func fromDTO[F mathkit.Real](d containerDTO[F]) mathkit.Container[F] {
	switch d.Kind {
	case kindNil:
		return nil
	case kindScalar:
		return mathkit.NewScalar(d.Data[0])
	case kindVector:
		return mathkit.VectorFromSlice(append([]F(nil), d.Data...))
	case kindDense:
		dense, _ := mathkit.NewDense[F](d.Rows, d.Cols)
		for i, v := range d.Data {
			_ = dense.SetAt(i, v)
		}
		return dense
	default:
		return nil
	}
}

// Snapshot is a gob-friendly (exported fields only) flattening of an
// IterState, suitable for a checkpoint payload. Capability fields beyond
// Param/Cost/Grad are included since a quasi-Newton resume needs its
// approximate Hessian; solvers that only need Param (Landweber, gradient
// descent) simply leave the rest at their zero DTO.
type Snapshot[F mathkit.Real] struct {
	Param     containerDTO[F]
	BestParam containerDTO[F]
	Grad      containerDTO[F]
	Hessian   containerDTO[F]
	InvHessian containerDTO[F]
	Jacobian  containerDTO[F]
	Residuals containerDTO[F]

	Cost     F
	PrevCost F
	BestCost F
	HasCost  bool

	TargetCost F

	Iter         int
	LastBestIter int
	MaxIters     int

	FuncCounts map[string]uint64

	TimeNanos int64

	TerminationReason int
	TerminationTag    string
}

// ToSnapshot flattens s into a Snapshot.
func (s *IterState[F]) ToSnapshot() Snapshot[F] {
	return Snapshot[F]{
		Param:             toDTO[F](s.Param),
		BestParam:         toDTO[F](s.BestParam),
		Grad:              toDTO[F](s.Grad),
		Hessian:           toDTO[F](s.Hessian),
		InvHessian:        toDTO[F](s.InvHessian),
		Jacobian:          toDTO[F](s.Jacobian),
		Residuals:         toDTO[F](s.Residuals),
		Cost:              s.Cost,
		PrevCost:          s.PrevCost,
		BestCost:          s.BestCost,
		HasCost:           s.hasCost,
		TargetCost:        s.TargetCost,
		Iter:              s.Iter,
		LastBestIter:      s.LastBestIter,
		MaxIters:          s.MaxIters,
		FuncCounts:        s.FuncCounts,
		TimeNanos:         s.Time.Nanoseconds(),
		TerminationReason: int(s.TerminationStatus.Reason),
		TerminationTag:    s.TerminationStatus.Tag,
	}
}

// FromSnapshot reconstructs an IterState from a Snapshot, as restored by a
// Checkpointer.Load on startup (spec.md §4.6: "Restored state's iter
// becomes the starting iteration; observers are NOT replayed").
func FromSnapshot[F mathkit.Real](snap Snapshot[F]) *IterState[F] {
	counts := make(map[string]uint64, len(snap.FuncCounts))
	for k, v := range snap.FuncCounts {
		counts[k] = v
	}
	return &IterState[F]{
		Param:      fromDTO[F](snap.Param),
		BestParam:  fromDTO[F](snap.BestParam),
		Grad:       fromDTO[F](snap.Grad),
		Hessian:    fromDTO[F](snap.Hessian),
		InvHessian: fromDTO[F](snap.InvHessian),
		Jacobian:   fromDTO[F](snap.Jacobian),
		Residuals:  fromDTO[F](snap.Residuals),

		Cost:     snap.Cost,
		PrevCost: snap.PrevCost,
		BestCost: snap.BestCost,
		hasCost:  snap.HasCost,

		TargetCost: snap.TargetCost,

		Iter:         snap.Iter,
		LastBestIter: snap.LastBestIter,
		MaxIters:     snap.MaxIters,

		FuncCounts: counts,
		Time:       time.Duration(snap.TimeNanos),

		TerminationStatus: Status{Reason: Reason(snap.TerminationReason), Tag: snap.TerminationTag},
	}
}
