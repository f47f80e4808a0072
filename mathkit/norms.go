// SPDX-License-Identifier: MIT
package mathkit

import "math"

// L1Norm returns the l1 norm, Sum|x_i|, over real magnitudes.
func L1Norm[F Real](x Container[F]) F {
	n := x.Shape().Size()
	var sum F
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		sum += F(math.Abs(float64(v)))
	}
	return sum
}

// L2Norm returns the l2 norm, sqrt(Sum x_i^2).
func L2Norm[F Real](x Container[F]) F {
	n := x.Shape().Size()
	var sum float64
	for i := 0; i < n; i++ {
		v, _ := x.At(i)
		fv := float64(v)
		sum += fv * fv
	}
	return F(math.Sqrt(sum))
}
