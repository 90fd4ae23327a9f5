package driver

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/projectmatch/gaengine/internal/rng"
	"github.com/projectmatch/gaengine/pkg/chromosome"
	"github.com/projectmatch/gaengine/pkg/constraint"
	"github.com/projectmatch/gaengine/pkg/fitness"
)

// parallelEvaluate fills the fitness cache of every chromosome in the
// population. Fitness evaluation is a pure function of a chromosome and the
// read-only dataset, so it can run on partitioned workers with no shared
// mutable state beyond each chromosome's own cache: no worker ever observes
// a partially-written chromosome owned by another worker. errgroup.WithContext
// plus SetLimit gives a single context-respecting join point without
// hand-rolled job/result channels, which fits here because each work item is
// a pure value computation with no multiple-result-field bookkeeping to do.
func parallelEvaluate(ctx context.Context, eval *fitness.Evaluator, pop *chromosome.Population, workers int) error {
	snapshot := pop.Snapshot()
	if len(snapshot) == 0 {
		return nil
	}

	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, c := range snapshot {
		c := c

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			_, err := eval.Evaluate(c)

			return err
		})
	}

	return g.Wait()
}

// parallelRepair repairs every chromosome in the population independently.
// Each chromosome's repair draws from its own PRNG substream, derived
// deterministically from seed and the chromosome's own index rather than
// from workers or the worker it happens to run on, so two runs with the
// same seed repair identically regardless of host core count or worker
// count, and no two chromosomes ever share a stream.
func parallelRepair(ctx context.Context, repairer *constraint.Repairer, pop *chromosome.Population, seed int64, workers int) error {
	snapshot := pop.Snapshot()
	if len(snapshot) == 0 {
		return nil
	}

	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range snapshot {
		i, c := i, c

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			itemRNG := rng.Substream(seed, i)
			repairer.Repair(itemRNG, c)

			return nil
		})
	}

	return g.Wait()
}

// newRand returns a deterministic PRNG when seed is non-nil, otherwise a
// nondeterministic one seeded by fallback (the caller's current-time source).
func newRand(seed *int64, fallback func() int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}

	return rand.New(rand.NewSource(fallback()))
}
