package gonumf64

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/optimerr"
	"gonum.org/v1/gonum/mat"
)

// Dense wraps a *mat.Dense so it satisfies mathkit.Container[float64],
// linearly indexing it in row-major order like mathkit.Dense does.
type Dense struct {
	m *mat.Dense
}

// NewDense allocates a zero-valued rows x cols gonum-backed matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, optimerr.New(optimerr.InvalidParameter, "gonumf64: NewDense: dimensions must be > 0")
	}
	return &Dense{m: mat.NewDense(rows, cols, nil)}, nil
}

// FromMat wraps an existing *mat.Dense without copying.
func FromMat(m *mat.Dense) *Dense { return &Dense{m: m} }

// Raw exposes the underlying *mat.Dense for gonum-native callers (e.g. to
// pass directly to mat.Solve or a gonum optimizer).
func (d *Dense) Raw() *mat.Dense { return d.m }

// Shape reports the matrix's dimensions.
func (d *Dense) Shape() mathkit.Shape {
	r, c := d.m.Dims()
	return mathkit.Shape{Rows: r, Cols: c}
}

func (d *Dense) rc(i int) (int, int, error) {
	r, c := d.m.Dims()
	if i < 0 || i >= r*c {
		return 0, 0, optimerr.New(optimerr.ShapeMismatch, "gonumf64: Dense: index out of range")
	}
	return i / c, i % c, nil
}

// At returns the element at row-major linear index i.
func (d *Dense) At(i int) (float64, error) {
	row, col, err := d.rc(i)
	if err != nil {
		return 0, err
	}
	return d.m.At(row, col), nil
}

// SetAt assigns the element at row-major linear index i.
func (d *Dense) SetAt(i int, v float64) error {
	row, col, err := d.rc(i)
	if err != nil {
		return err
	}
	d.m.Set(row, col, v)
	return nil
}

// Clone returns an independent deep copy.
func (d *Dense) Clone() mathkit.Container[float64] {
	r, c := d.m.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(d.m)
	return &Dense{m: out}
}
