// Package driver implements the GA state machine: init, the generational
// loop with convergence detection, and termination. It exposes a single
// New-plus-Run shape with a default-seed-from-time fallback, driving the
// dataset/config/fitness/constraint pipeline through each generation.
package driver

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/chromosome"
	"github.com/projectmatch/gaengine/pkg/config"
	"github.com/projectmatch/gaengine/pkg/constraint"
	"github.com/projectmatch/gaengine/pkg/fitness"
	"github.com/projectmatch/gaengine/pkg/model"
	"github.com/projectmatch/gaengine/pkg/operators"
	"github.com/projectmatch/gaengine/pkg/stats"
)

// Driver owns the current and next Population exclusively for the
// duration of one run.
type Driver struct {
	dataset *model.Dataset
	cfg     config.Config

	evaluator *fitness.Evaluator
	checker   *constraint.Checker
	repairer  *constraint.Repairer

	selector  *operators.Selector
	crossover *operators.Crossover
	mutator   *operators.Mutator
	elitism   *operators.Elitism

	candidates []uuid.UUID
	workers    int
}

// New validates cfg and builds a Driver bound to dataset. Configuration
// errors are returned here, before any run state exists; the dataset itself
// is not checked here (model.NewDataset rejects inconsistent data).
func New(dataset *model.Dataset, cfg config.Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	weights := fitness.Weights{Capacity: cfg.Wc, GPA: cfg.Wg, Partner: cfg.Wp}

	d := &Driver{
		dataset:    dataset,
		cfg:        cfg,
		evaluator:  fitness.New(dataset, weights),
		checker:    constraint.New(dataset),
		repairer:   constraint.NewRepairer(dataset),
		selector:   operators.NewSelector(operators.Tournament),
		crossover:  operators.NewCrossover(operators.Uniform),
		mutator:    operators.NewMutator(operators.Swap, dataset.ProjectIDs()),
		elitism:    operators.NewElitism(),
		candidates: dataset.ProjectIDs(),
		workers:    runtime.NumCPU(),
	}

	d.selector.TournamentSize = cfg.TournamentSize
	d.crossover.Rate = cfg.CrossoverRate
	d.mutator.Rate = cfg.MutationRate
	d.elitism.Fraction = cfg.ElitePercentage

	return d, nil
}

// Run executes the generational loop until a stop condition triggers or
// ctx is cancelled, returning the best assignment ever observed plus the
// full stats stream.
func (d *Driver) Run(ctx context.Context) (*stats.RunResult, error) {
	start := time.Now()

	rng := newRand(d.cfg.Seed, func() int64 { return time.Now().UnixNano() })

	population := chromosome.NewPopulation()
	for i := 0; i < d.cfg.PopulationSize; i++ {
		population.Append(chromosome.RandomInit(rng, d.dataset.NumStudents(), d.candidates))
	}

	if err := parallelEvaluate(ctx, d.evaluator, population, d.workers); err != nil {
		if isCancellation(err) {
			return d.buildResult(nil, nil, 0, true, time.Since(start)), nil
		}

		return nil, err
	}

	if d.cfg.RepairEnabled {
		seed := int64(0)
		if d.cfg.Seed != nil {
			seed = *d.cfg.Seed
		}

		if err := parallelRepair(ctx, d.repairer, population, seed, d.workers); err != nil {
			if isCancellation(err) {
				return d.buildResult(nil, nil, 0, true, time.Since(start)), nil
			}

			return nil, err
		}

		if err := parallelEvaluate(ctx, d.evaluator, population, d.workers); err != nil {
			if isCancellation(err) {
				return d.buildResult(nil, nil, 0, true, time.Since(start)), nil
			}

			return nil, err
		}
	}

	var genStats []stats.GenerationStats

	var bestEver *chromosome.Chromosome

	bestEverFitness := 0.0
	bestEverSet := false

	cancelled := false

	generationsExecuted := 0

	for g := 0; g < d.cfg.MaxGenerations; g++ {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}

		if cancelled {
			break
		}

		population.Sort()

		agg := population.AggregateStats()
		best := population.Best()
		worst := population.Worst()

		bestFitness, _ := best.Fitness()
		worstFitness, _ := worst.Fitness()

		if !bestEverSet || bestFitness > bestEverFitness {
			bestEver = best.Clone()
			bestEverFitness = bestFitness
			bestEverSet = true
		}

		record := stats.GenerationStats{
			Generation: g,
			Best:       bestFitness,
			Average:    agg.Mean,
			Worst:      worstFitness,
			StdDev:     agg.StdDev,
			ValidCount: population.CountValid(),
			BestEver:   bestEverFitness,
		}
		genStats = append(genStats, record)

		generationsExecuted = g + 1

		if d.cfg.TargetFitness != nil && bestEverFitness >= *d.cfg.TargetFitness {
			break
		}

		if d.cfg.ConvergenceEnabled && converged(genStats, d.cfg.ConvergenceGenerations, d.cfg.ConvergenceThreshold) {
			break
		}

		next, err := d.breed(ctx, rng, population)
		if err != nil {
			if isCancellation(err) {
				cancelled = true
				break
			}

			return nil, err
		}

		if err := parallelEvaluate(ctx, d.evaluator, next, d.workers); err != nil {
			if isCancellation(err) {
				cancelled = true
				break
			}

			return nil, err
		}

		population = next
	}

	result := d.buildResult(bestEver, genStats, generationsExecuted, cancelled, time.Since(start))

	return result, nil
}

// breed produces the next generation: elites carried over unconditionally,
// then parent pairs drawn, crossed over, mutated, and (if enabled)
// repaired, serially and deterministically given the driver's PRNG
// (one breeding pass per generation, strictly sequential — no fan-out).
func (d *Driver) breed(ctx context.Context, rng *rand.Rand, population *chromosome.Population) (*chromosome.Population, error) {
	elite := d.elitism.SelectElite(population)

	next := chromosome.NewPopulation()
	for _, c := range elite {
		next.Append(c)
	}

	for next.Size() < d.cfg.PopulationSize {
		if ctx.Err() != nil {
			break
		}

		parent1, parent2 := d.selector.SelectParents(rng, population)
		offspring1, offspring2 := d.crossover.Apply(rng, parent1, parent2)

		d.mutator.Apply(rng, offspring1)
		d.mutator.Apply(rng, offspring2)

		if d.cfg.RepairEnabled {
			d.repairer.Repair(rng, offspring1)
			d.repairer.Repair(rng, offspring2)
		}

		next.Append(offspring1)

		if next.Size() < d.cfg.PopulationSize {
			next.Append(offspring2)
		}
	}

	return next, nil
}

func (d *Driver) buildResult(best *chromosome.Chromosome, genStats []stats.GenerationStats, generations int, cancelled bool, elapsed time.Duration) *stats.RunResult {
	result := &stats.RunResult{
		Stats:               genStats,
		Parameters:          d.cfg,
		GenerationsExecuted: generations,
		Elapsed:             elapsed,
		Cancelled:           cancelled,
	}

	if best == nil {
		return result
	}

	bestFitness, _ := best.Fitness()
	result.BestFitness = bestFitness

	result.Assignments = make([]stats.AssignmentResult, best.Len())
	for i := 0; i < best.Len(); i++ {
		studentID := d.dataset.StudentAt(i)
		projectID := best.At(i)

		rank, _ := d.dataset.RankOf(studentID, projectID)

		result.Assignments[i] = stats.AssignmentResult{
			StudentID: studentID,
			ProjectID: projectID,
			Rank:      rank,
		}
	}

	violations := d.checker.GetViolations(best)
	for _, v := range violations.GPA {
		result.UnresolvedStudents = append(result.UnresolvedStudents, v.StudentID)
	}

	return result
}

// isCancellation reports whether err is the errgroup join surfacing ctx's
// own cancellation rather than a genuine evaluation/repair failure, so the
// caller can stop cleanly and return the best-so-far result instead of
// treating it as fatal.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// converged reports whether the sliding window of the last recorded
// best-ever values has improved by less than the configured threshold in
// total.
func converged(records []stats.GenerationStats, window int, threshold float64) bool {
	if len(records) < window+1 {
		return false
	}

	recent := records[len(records)-1]
	before := records[len(records)-1-window]

	return recent.BestEver-before.BestEver < threshold
}
