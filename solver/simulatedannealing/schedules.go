// SPDX-License-Identifier: MIT
// Package simulatedannealing implements SimulatedAnnealing (spec.md §4.9):
// at temperature T, propose x' = Anneal(x, T) and accept with probability
// min(1, exp(-(f(x')-f(x))/T)) (the Metropolis criterion). The temperature
// schedule is a pluggable solver.TemperatureSchedule strategy; this file
// provides the four named in spec.md: Boltzmann, Exponential, Fast, and
// Custom.
package simulatedannealing

import (
	"math"

	"github.com/katalvlaran/optimcore/mathkit"
)

// Boltzmann implements T(k) = T0 / ln(2+k), the classical annealing
// schedule with guaranteed asymptotic convergence.
type Boltzmann[F mathkit.Real] struct {
	T0 F
}

func (b Boltzmann[F]) Temperature(iter int) F {
	return b.T0 / F(math.Log(2+float64(iter)))
}

// Exponential implements T(k) = T0 * alpha^k, 0 < alpha < 1.
type Exponential[F mathkit.Real] struct {
	T0    F
	Alpha F
}

func (e Exponential[F]) Temperature(iter int) F {
	return e.T0 * F(math.Pow(float64(e.Alpha), float64(iter)))
}

// Fast implements T(k) = T0 / (1+k), the "fast annealing"/Cauchy schedule.
type Fast[F mathkit.Real] struct {
	T0 F
}

func (f Fast[F]) Temperature(iter int) F {
	return f.T0 / F(1+iter)
}

// Custom wraps an arbitrary closure as a TemperatureSchedule.
type Custom[F mathkit.Real] struct {
	Fn func(iter int) F
}

func (c Custom[F]) Temperature(iter int) F {
	return c.Fn(iter)
}
