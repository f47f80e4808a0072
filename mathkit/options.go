// SPDX-License-Identifier: MIT
// Numeric policy: functional options controlling the epsilon tolerance used
// by rank-revealing checks (Inv's pivot test), modeled on
// lvlath/matrix/options.go's single-source-of-defaults style.
package mathkit

// DefaultEpsilon is the tolerance below which a pivot is treated as zero
// during Gauss-Jordan elimination in Inv.
const DefaultEpsilon = 1e-12

// policy holds numeric-policy configuration for capability kernels that
// need a tolerance (currently: Inv).
type policy struct {
	epsilon float64
}

// Option configures a numeric policy.
type Option func(*policy)

// WithEpsilon overrides the pivot-zero tolerance used by Inv.
func WithEpsilon(eps float64) Option {
	return func(p *policy) { p.epsilon = eps }
}

func newPolicy(opts ...Option) policy {
	p := policy{epsilon: DefaultEpsilon}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
