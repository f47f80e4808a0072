// SPDX-License-Identifier: MIT
// Package simplex implements the standard (primal, tableau) simplex method
// (spec.md §4.9): min c^T x s.t. A·x <= b, x >= 0, pivoting on the most
// negative reduced cost with a minimum-ratio leaving-variable test, until
// no negative reduced cost remains.
package simplex

import (
	"github.com/katalvlaran/optimcore/kv"
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/katalvlaran/optimcore/state"
)

// Solver drives the tableau simplex method. The tableau is row-major with
// the objective as its last row and the RHS as its last column (the layout
// state.LinearProgramState documents).
type Solver[F mathkit.Real] struct {
	Tol F // entries within Tol of zero are treated as zero; default 1e-9
}

// New returns a Simplex Solver.
func New[F mathkit.Real](tol F) *Solver[F] {
	return &Solver[F]{Tol: tol}
}

func (s *Solver[F]) Name() string { return "Simplex" }

// Init validates the tableau shape against Basis and is otherwise a no-op:
// the caller constructs the initial tableau via state.NewLinearProgram.
func (s *Solver[F]) Init(st *state.LinearProgramState[F]) (*state.LinearProgramState[F], *kv.Log, error) {
	if st.Tableau == nil {
		return nil, nil, optimerr.New(optimerr.NotInitialized, "simplex: Init: Tableau must be set before Init")
	}
	if len(st.Basis) != st.Tableau.Rows()-1 {
		return nil, nil, optimerr.New(optimerr.InvalidParameter, "simplex: Init: Basis length must equal Tableau.Rows()-1")
	}
	return st, kv.New(), nil
}

// enteringColumn returns the index of the most negative objective-row
// entry, or -1 if none is negative (optimal).
func (s *Solver[F]) enteringColumn(t *mathkit.Dense[F]) (int, error) {
	objRow := t.Rows() - 1
	best := -1
	var bestVal F
	for j := 0; j < t.Cols()-1; j++ {
		v, err := t.AtRC(objRow, j)
		if err != nil {
			return -1, err
		}
		if v < -s.Tol && (best == -1 || v < bestVal) {
			best, bestVal = j, v
		}
	}
	return best, nil
}

// leavingRow runs the minimum-ratio test over the entering column,
// failing with ConditionViolated if the problem is unbounded (no positive
// entry in the entering column).
func (s *Solver[F]) leavingRow(t *mathkit.Dense[F], col int) (int, error) {
	rhsCol := t.Cols() - 1
	best := -1
	var bestRatio F
	for i := 0; i < t.Rows()-1; i++ {
		a, err := t.AtRC(i, col)
		if err != nil {
			return -1, err
		}
		if a <= s.Tol {
			continue
		}
		rhs, err := t.AtRC(i, rhsCol)
		if err != nil {
			return -1, err
		}
		ratio := rhs / a
		if best == -1 || ratio < bestRatio {
			best, bestRatio = i, ratio
		}
	}
	if best == -1 {
		return -1, optimerr.New(optimerr.ConditionViolated, "simplex: leavingRow: problem is unbounded")
	}
	return best, nil
}

// NextIter performs one pivot: select the entering column, the leaving
// row, normalize the pivot row, and eliminate the entering column from
// every other row (including the objective row).
func (s *Solver[F]) NextIter(st *state.LinearProgramState[F]) (*state.LinearProgramState[F], *kv.Log, error) {
	t := st.Tableau.Clone().(*mathkit.Dense[F])

	col, err := s.enteringColumn(t)
	if err != nil {
		return nil, nil, err
	}
	if col == -1 {
		return st, kv.New().Set("pivoted", false), nil
	}
	row, err := s.leavingRow(t, col)
	if err != nil {
		return nil, nil, err
	}

	pivot, err := t.AtRC(row, col)
	if err != nil {
		return nil, nil, err
	}
	for j := 0; j < t.Cols(); j++ {
		v, err := t.AtRC(row, j)
		if err != nil {
			return nil, nil, err
		}
		if err := t.SetRC(row, j, v/pivot); err != nil {
			return nil, nil, err
		}
	}

	for i := 0; i < t.Rows(); i++ {
		if i == row {
			continue
		}
		factor, err := t.AtRC(i, col)
		if err != nil {
			return nil, nil, err
		}
		if factor == 0 {
			continue
		}
		for j := 0; j < t.Cols(); j++ {
			pivotRowVal, err := t.AtRC(row, j)
			if err != nil {
				return nil, nil, err
			}
			cur, err := t.AtRC(i, j)
			if err != nil {
				return nil, nil, err
			}
			if err := t.SetRC(i, j, cur-factor*pivotRowVal); err != nil {
				return nil, nil, err
			}
		}
	}

	basis := append([]int(nil), st.Basis...)
	basis[row] = col

	out := st.WithTableau(t, basis)
	log := kv.New().Set("pivoted", true).Set("entering", col).Set("leaving_row", row)
	return out, log, nil
}

// TerminateInternal fires SolverConverged when no negative reduced cost
// remains in the objective row.
func (s *Solver[F]) TerminateInternal(st *state.LinearProgramState[F]) state.Status {
	col, err := s.enteringColumn(st.Tableau)
	if err != nil || col == -1 {
		return state.Status{Reason: state.SolverConverged, Tag: "no negative reduced cost remains"}
	}
	return state.Zero
}
