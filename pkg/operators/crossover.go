package operators

import (
	"math/rand"

	"github.com/projectmatch/gaengine/pkg/chromosome"
)

// CrossoverMethod is a recombination strategy tag.
type CrossoverMethod int

const (
	Uniform CrossoverMethod = iota
	SinglePoint
	TwoPoint
)

// Crossover recombines two parent chromosomes into two fresh offspring.
type Crossover struct {
	Method CrossoverMethod
	Rate   float64 // probability crossover is applied at all; default 0.8
	Bias   float64 // Uniform only: P(offspring1 inherits parent1's gene); default 0.5
}

// NewCrossover returns a Crossover with its default rate (0.8) and bias (0.5).
func NewCrossover(method CrossoverMethod) *Crossover {
	return &Crossover{Method: method, Rate: 0.8, Bias: 0.5}
}

// Apply produces two offspring from two parents. With probability 1-Rate
// it returns deep copies of the parents unchanged.
func (cx *Crossover) Apply(rng *rand.Rand, parent1, parent2 *chromosome.Chromosome) (*chromosome.Chromosome, *chromosome.Chromosome) {
	if rng.Float64() >= cx.Rate {
		return parent1.Clone(), parent2.Clone()
	}

	switch cx.Method {
	case SinglePoint:
		return cx.singlePoint(rng, parent1, parent2)
	case TwoPoint:
		return cx.twoPoint(rng, parent1, parent2)
	default:
		return cx.uniform(rng, parent1, parent2)
	}
}

func (cx *Crossover) uniform(rng *rand.Rand, parent1, parent2 *chromosome.Chromosome) (*chromosome.Chromosome, *chromosome.Chromosome) {
	n := parent1.Len()
	bias := cx.Bias

	offspring1 := chromosome.New(n)
	offspring2 := chromosome.New(n)

	for i := 0; i < n; i++ {
		if rng.Float64() < bias {
			offspring1.Set(i, parent1.At(i))
			offspring2.Set(i, parent2.At(i))
		} else {
			offspring1.Set(i, parent2.At(i))
			offspring2.Set(i, parent1.At(i))
		}
	}

	return offspring1, offspring2
}

// singlePoint picks a cut point c uniformly in {1..N-1}, avoiding a
// no-op cut at 0 or N, and swaps the tail. A chromosome of length < 2 has
// no interior cut point, so it is cloned unchanged instead.
func (cx *Crossover) singlePoint(rng *rand.Rand, parent1, parent2 *chromosome.Chromosome) (*chromosome.Chromosome, *chromosome.Chromosome) {
	n := parent1.Len()
	if n < 2 {
		return parent1.Clone(), parent2.Clone()
	}

	cut := 1 + rng.Intn(n-1)

	offspring1 := chromosome.New(n)
	offspring2 := chromosome.New(n)

	for i := 0; i < n; i++ {
		if i < cut {
			offspring1.Set(i, parent1.At(i))
			offspring2.Set(i, parent2.At(i))
		} else {
			offspring1.Set(i, parent2.At(i))
			offspring2.Set(i, parent1.At(i))
		}
	}

	return offspring1, offspring2
}

// twoPoint picks two points a<=b in {0..N-1} and swaps the [a, b) segment.
func (cx *Crossover) twoPoint(rng *rand.Rand, parent1, parent2 *chromosome.Chromosome) (*chromosome.Chromosome, *chromosome.Chromosome) {
	n := parent1.Len()
	a := rng.Intn(n)
	b := rng.Intn(n)

	if a > b {
		a, b = b, a
	}

	offspring1 := chromosome.New(n)
	offspring2 := chromosome.New(n)

	for i := 0; i < n; i++ {
		if i >= a && i < b {
			offspring1.Set(i, parent2.At(i))
			offspring2.Set(i, parent1.At(i))
		} else {
			offspring1.Set(i, parent1.At(i))
			offspring2.Set(i, parent2.At(i))
		}
	}

	return offspring1, offspring2
}
