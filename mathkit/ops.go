// SPDX-License-Identifier: MIT
// Elementwise arithmetic kernels: Add, Sub, Mul, Div. Fast-path when both
// operands are the same concrete container (flat-slice loop, modeled on
// lvlath/matrix's Add/Sub/Mul over *Dense); broadcast when one operand is a
// *Scalar; ShapeMismatch otherwise (spec §4.1 — "never silently broadcast"
// containers of differing shape).
package mathkit

import (
	"fmt"

	"github.com/katalvlaran/optimcore/optimerr"
)

type binOp[F Real] func(a, b F) F

func addOp[F Real](a, b F) F { return a + b }
func subOp[F Real](a, b F) F { return a - b }
func mulOp[F Real](a, b F) F { return a * b }
func divOp[F Real](a, b F) F { return a / b }

// Add returns a+b elementwise, or broadcasts a scalar across a container.
func Add[F Real](a, b Container[F]) (Container[F], error) { return elementwise(a, b, addOp[F], "Add") }

// Sub returns a-b elementwise, or broadcasts a scalar across a container.
func Sub[F Real](a, b Container[F]) (Container[F], error) { return elementwise(a, b, subOp[F], "Sub") }

// Mul returns a*b elementwise, or broadcasts a scalar across a container.
func Mul[F Real](a, b Container[F]) (Container[F], error) { return elementwise(a, b, mulOp[F], "Mul") }

// Div returns a/b elementwise, or broadcasts a scalar across a container.
func Div[F Real](a, b Container[F]) (Container[F], error) { return elementwise(a, b, divOp[F], "Div") }

func elementwise[F Real](a, b Container[F], op binOp[F], name string) (Container[F], error) {
	sa, sb := a.Shape(), b.Shape()

	// Scalar broadcast: either operand (not both) may be a 1x1 Scalar.
	if as, ok := a.(*Scalar[F]); ok && !sb.IsScalar() {
		return broadcastLeft(as.V, b, op)
	}
	if bs, ok := b.(*Scalar[F]); ok && !sa.IsScalar() {
		return broadcastRight(a, bs.V, op)
	}

	if sa != sb {
		return nil, optimerr.New(optimerr.ShapeMismatch,
			fmt.Sprintf("mathkit: %s: shape mismatch %v vs %v", name, sa, sb))
	}

	// Fast path: identical concrete container kinds over flat storage.
	if da, ok := a.(*Dense[F]); ok {
		if db, ok := b.(*Dense[F]); ok {
			out, err := NewDense[F](da.r, da.c)
			if err != nil {
				return nil, err
			}
			for i := range da.data {
				out.data[i] = op(da.data[i], db.data[i])
			}
			return out, nil
		}
	}
	if va, ok := a.(*Vector[F]); ok {
		if vb, ok := b.(*Vector[F]); ok {
			out := &Vector[F]{data: make([]F, len(va.data))}
			for i := range va.data {
				out.data[i] = op(va.data[i], vb.data[i])
			}
			return out, nil
		}
	}
	if sca, ok := a.(*Scalar[F]); ok {
		if scb, ok := b.(*Scalar[F]); ok {
			return &Scalar[F]{V: op(sca.V, scb.V)}, nil
		}
	}

	// Fallback: generic interface path, fixed 0..n-1 order.
	n := sa.Size()
	out := a.Clone()
	for i := 0; i < n; i++ {
		av, err := a.At(i)
		if err != nil {
			return nil, err
		}
		bv, err := b.At(i)
		if err != nil {
			return nil, err
		}
		if err := out.SetAt(i, op(av, bv)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func broadcastLeft[F Real](scalar F, b Container[F], op binOp[F]) (Container[F], error) {
	out := b.Clone()
	n := b.Shape().Size()
	for i := 0; i < n; i++ {
		bv, err := b.At(i)
		if err != nil {
			return nil, err
		}
		if err := out.SetAt(i, op(scalar, bv)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func broadcastRight[F Real](a Container[F], scalar F, op binOp[F]) (Container[F], error) {
	out := a.Clone()
	n := a.Shape().Size()
	for i := 0; i < n; i++ {
		av, err := a.At(i)
		if err != nil {
			return nil, err
		}
		if err := out.SetAt(i, op(av, scalar)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ScaledAdd returns a + alpha*v (spec §4.1 fused form; kept simple rather
// than loop-fused, which is permitted since the contract only binds the
// resulting value, not the implementation strategy).
func ScaledAdd[F Real](a Container[F], alpha F, v Container[F]) (Container[F], error) {
	scaled, err := broadcastRight(v, alpha, mulOp[F])
	if err != nil {
		return nil, err
	}
	return Add(a, scaled)
}

// ScaledSub returns a - alpha*v.
func ScaledSub[F Real](a Container[F], alpha F, v Container[F]) (Container[F], error) {
	scaled, err := broadcastRight(v, alpha, mulOp[F])
	if err != nil {
		return nil, err
	}
	return Sub(a, scaled)
}
