package nlcg

import (
	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/solver/internal/vecmath"
)

// FletcherReeves computes beta = (g+.g+) / (g.g).
type FletcherReeves[F mathkit.Real] struct{}

func (FletcherReeves[F]) Name() string { return "FletcherReeves" }

func (FletcherReeves[F]) Update(gPrev, gCur, pPrev mathkit.Container[F]) (F, error) {
	num, err := vecmath.DotScalar(gCur, gCur)
	if err != nil {
		var zero F
		return zero, err
	}
	den, err := vecmath.DotScalar(gPrev, gPrev)
	if err != nil {
		var zero F
		return zero, err
	}
	if den == 0 {
		return 0, nil
	}
	return num / den, nil
}

// PolakRibiere computes beta = g+.(g+-g) / (g.g), clamped to >= 0.
type PolakRibiere[F mathkit.Real] struct{}

func (PolakRibiere[F]) Name() string { return "PolakRibiere" }

func (PolakRibiere[F]) Update(gPrev, gCur, pPrev mathkit.Container[F]) (F, error) {
	diff, err := mathkit.Sub(gCur, gPrev)
	if err != nil {
		var zero F
		return zero, err
	}
	num, err := vecmath.DotScalar(gCur, diff)
	if err != nil {
		var zero F
		return zero, err
	}
	den, err := vecmath.DotScalar(gPrev, gPrev)
	if err != nil {
		var zero F
		return zero, err
	}
	if den == 0 {
		return 0, nil
	}
	beta := num / den
	if beta < 0 {
		beta = 0
	}
	return beta, nil
}

// HestenesStiefel computes beta = g+.(g+-g) / (p.(g+-g)).
type HestenesStiefel[F mathkit.Real] struct{}

func (HestenesStiefel[F]) Name() string { return "HestenesStiefel" }

func (HestenesStiefel[F]) Update(gPrev, gCur, pPrev mathkit.Container[F]) (F, error) {
	diff, err := mathkit.Sub(gCur, gPrev)
	if err != nil {
		var zero F
		return zero, err
	}
	num, err := vecmath.DotScalar(gCur, diff)
	if err != nil {
		var zero F
		return zero, err
	}
	den, err := vecmath.DotScalar(pPrev, diff)
	if err != nil {
		var zero F
		return zero, err
	}
	if den == 0 {
		return 0, nil
	}
	return num / den, nil
}

// DaiYuan computes beta = (g+.g+) / (p.(g+-g)).
type DaiYuan[F mathkit.Real] struct{}

func (DaiYuan[F]) Name() string { return "DaiYuan" }

func (DaiYuan[F]) Update(gPrev, gCur, pPrev mathkit.Container[F]) (F, error) {
	diff, err := mathkit.Sub(gCur, gPrev)
	if err != nil {
		var zero F
		return zero, err
	}
	num, err := vecmath.DotScalar(gCur, gCur)
	if err != nil {
		var zero F
		return zero, err
	}
	den, err := vecmath.DotScalar(pPrev, diff)
	if err != nil {
		var zero F
		return zero, err
	}
	if den == 0 {
		return 0, nil
	}
	return num / den, nil
}
