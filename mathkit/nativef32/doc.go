// SPDX-License-Identifier: MIT
// Package nativef32 instantiates the mathkit capability kernels over
// float32 instead of float64, demonstrating that mathkit's generic
// Container[F Real] contract is genuinely precision-agnostic rather than a
// float64-only API with a second type parameter bolted on. It adds no new
// logic: it is a thin, type-pinned convenience layer over
// mathkit.Vector[float32]/mathkit.Dense[float32].
package nativef32
