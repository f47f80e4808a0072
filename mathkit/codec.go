// SPDX-License-Identifier: MIT
package mathkit

import (
	"bytes"
	"encoding/gob"
)

// containerKind tags which concrete Container a flattened encoding
// reconstructs into. Mirrors state.Snapshot's own containerDTO convention
// (checkpoint wire format is deliberately unspecified by spec.md's Design
// Notes §9, so this is a reference choice, not a contract).
type containerKind uint8

const (
	kindNil containerKind = iota
	kindScalar
	kindVector
	kindDense
)

type containerDTO[F Real] struct {
	Kind containerKind
	Rows int
	Cols int
	Data []F
}

// EncodeContainer flattens c (nil-safe) into a gob-encoded blob, for
// solver-private state that holds a Container outside of IterState/
// PopulationState (e.g. nlcg's previous direction, lbfgs's history pairs).
func EncodeContainer[F Real](c Container[F]) ([]byte, error) {
	dto := containerDTO[F]{Kind: kindNil}
	if c != nil {
		shape := c.Shape()
		n := shape.Size()
		data := make([]F, n)
		for i := 0; i < n; i++ {
			data[i], _ = c.At(i)
		}
		switch c.(type) {
		case *Scalar[F]:
			dto = containerDTO[F]{Kind: kindScalar, Rows: 1, Cols: 1, Data: data}
		case *Vector[F]:
			dto = containerDTO[F]{Kind: kindVector, Rows: shape.Rows, Cols: 1, Data: data}
		default:
			dto = containerDTO[F]{Kind: kindDense, Rows: shape.Rows, Cols: shape.Cols, Data: data}
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dto); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeContainer is EncodeContainer's counterpart, returning nil if blob
// encoded a nil Container.
func DecodeContainer[F Real](blob []byte) (Container[F], error) {
	var dto containerDTO[F]
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&dto); err != nil {
		return nil, err
	}
	switch dto.Kind {
	case kindScalar:
		return NewScalar(dto.Data[0]), nil
	case kindVector:
		return VectorFromSlice(append([]F(nil), dto.Data...)), nil
	case kindDense:
		d, err := NewDense[F](dto.Rows, dto.Cols)
		if err != nil {
			return nil, err
		}
		for i, v := range dto.Data {
			if err := d.SetAt(i, v); err != nil {
				return nil, err
			}
		}
		return d, nil
	default:
		return nil, nil
	}
}
