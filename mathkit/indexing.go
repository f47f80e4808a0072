// SPDX-License-Identifier: MIT
package mathkit

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/optimcore/optimerr"
)

func shapeMismatch(op string, a, b Shape) error {
	return optimerr.New(optimerr.ShapeMismatch, fmt.Sprintf("mathkit: %s: shape mismatch %v vs %v", op, a, b))
}

// Size returns the total element count of x.
func Size[F Real](x Container[F]) int { return x.Shape().Size() }

// Get returns the element at linear index i, bounds-checked.
func Get[F Real](x Container[F], i int) (F, error) { return x.At(i) }

// Set assigns the element at linear index i, bounds-checked.
func Set[F Real](x Container[F], i int, v F) error { return x.SetAt(i, v) }

// Argsort returns the indices that would sort x ascending; ties are broken
// by earlier index (a stable sort).
func Argsort[F Real](x Container[F]) []int {
	n := x.Shape().Size()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, _ := x.At(idx[a])
		vb, _ := x.At(idx[b])
		return va < vb
	})
	return idx
}

// Take gathers elements of x at the given linear indices along axis 0
// (the only axis a Vector has; for a Dense matrix, axis selects row
// gather when axis==0 or column gather when axis==1).
func Take[F Real](x Container[F], indices []int, axis int) (Container[F], error) {
	switch v := x.(type) {
	case *Vector[F]:
		out := &Vector[F]{data: make([]F, len(indices))}
		for k, i := range indices {
			if i < 0 || i >= len(v.data) {
				return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: Take: index out of range")
			}
			out.data[k] = v.data[i]
		}
		return out, nil

	case *Dense[F]:
		switch axis {
		case 0: // gather rows
			out, err := NewDense[F](len(indices), v.c)
			if err != nil {
				return nil, err
			}
			for k, r := range indices {
				if r < 0 || r >= v.r {
					return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: Take: row index out of range")
				}
				copy(out.data[k*v.c:(k+1)*v.c], v.data[r*v.c:(r+1)*v.c])
			}
			return out, nil
		case 1: // gather columns
			out, err := NewDense[F](v.r, len(indices))
			if err != nil {
				return nil, err
			}
			for row := 0; row < v.r; row++ {
				for k, col := range indices {
					if col < 0 || col >= v.c {
						return nil, optimerr.New(optimerr.ShapeMismatch, "mathkit: Take: col index out of range")
					}
					out.data[row*len(indices)+k] = v.data[row*v.c+col]
				}
			}
			return out, nil
		default:
			return nil, optimerr.New(optimerr.InvalidParameter, "mathkit: Take: axis must be 0 or 1 for a matrix")
		}

	default:
		return nil, optimerr.New(optimerr.NotImplemented, "mathkit: Take: unsupported container kind")
	}
}
