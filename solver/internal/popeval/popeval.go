// SPDX-License-Identifier: MIT
// Package popeval implements the optional data-parallel population
// evaluation mode (spec.md §5): fan out a population's Cost evaluations
// across a worker pool instead of a plain sequential loop. Safe because
// problem.Wrapper's per-capability counters are sync/atomic (spec.md §4.3),
// so concurrent Cost calls against the same Wrapper never race. Grounded
// on flow.Dinic/EdmondsKarp's ctx-first-argument convention for
// cancellable operations, applied here to a worker pool instead of a
// traversal.
package popeval

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/optimcore/mathkit"
	"github.com/katalvlaran/optimcore/problem"
)

// EvalCosts evaluates pw.Cost(xs[i]) concurrently for every i, returning
// costs in the same order as xs. Once ctx is cancelled or a Cost call fails,
// evaluations that have not started yet are skipped; calls already running
// are not interrupted (Cost takes no context), and EvalCosts waits for them
// before returning the first error encountered.
func EvalCosts[F mathkit.Real](ctx context.Context, pw *problem.Wrapper[F], xs []mathkit.Container[F]) ([]F, error) {
	costs := make([]F, len(xs))
	g, gctx := errgroup.WithContext(ctx)
	for i := range xs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := pw.Cost(xs[i])
			if err != nil {
				return err
			}
			costs[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return costs, nil
}
