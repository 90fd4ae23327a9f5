package operators

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/chromosome"
)

// MutationMethod is a mutation strategy tag.
type MutationMethod int

const (
	Swap MutationMethod = iota
	RandomReset
	Scramble
	Inversion
)

// Mutator applies exactly one operator to a chromosome in place, with
// probability Rate, invalidating its fitness cache.
type Mutator struct {
	Method     MutationMethod
	Rate       float64 // default 0.02
	Candidates []uuid.UUID
}

// NewMutator returns a Mutator with the default rate (0.02).
func NewMutator(method MutationMethod, candidates []uuid.UUID) *Mutator {
	return &Mutator{Method: method, Rate: 0.02, Candidates: candidates}
}

// Apply mutates c in place with probability Rate.
func (m *Mutator) Apply(rng *rand.Rand, c *chromosome.Chromosome) {
	if rng.Float64() >= m.Rate {
		return
	}

	switch m.Method {
	case RandomReset:
		m.randomReset(rng, c)
	case Scramble:
		m.scramble(rng, c)
	case Inversion:
		m.inversion(rng, c)
	default:
		m.swap(rng, c)
	}
}

// swap exchanges two distinct uniformly-random positions. A no-op on a
// length-1 chromosome.
func (m *Mutator) swap(rng *rand.Rand, c *chromosome.Chromosome) {
	n := c.Len()
	if n < 2 {
		return
	}

	i := rng.Intn(n)
	j := rng.Intn(n)

	for j == i {
		j = rng.Intn(n)
	}

	c.Swap(i, j)
}

func (m *Mutator) randomReset(rng *rand.Rand, c *chromosome.Chromosome) {
	if len(m.Candidates) == 0 {
		return
	}

	i := rng.Intn(c.Len())
	c.Set(i, m.Candidates[rng.Intn(len(m.Candidates))])
}

// scramble Fisher-Yates shuffles the inclusive segment [a, b].
func (m *Mutator) scramble(rng *rand.Rand, c *chromosome.Chromosome) {
	n := c.Len()
	if n < 2 {
		return
	}

	a, b := segment(rng, n)

	for k := b; k > a; k-- {
		j := a + rng.Intn(k-a+1)
		c.Swap(k, j)
	}
}

// inversion reverses the inclusive segment [a, b].
func (m *Mutator) inversion(rng *rand.Rand, c *chromosome.Chromosome) {
	n := c.Len()
	if n < 2 {
		return
	}

	a, b := segment(rng, n)

	for a < b {
		c.Swap(a, b)
		a++
		b--
	}
}

func segment(rng *rand.Rand, n int) (int, int) {
	a := rng.Intn(n)
	b := rng.Intn(n)

	if a > b {
		a, b = b, a
	}

	return a, b
}

// PerGene performs independent Bernoulli trials at each position, each a
// random reset, and returns the count of mutated positions.
func (m *Mutator) PerGene(rng *rand.Rand, c *chromosome.Chromosome) int {
	if len(m.Candidates) == 0 {
		return 0
	}

	mutated := 0

	for i := 0; i < c.Len(); i++ {
		if rng.Float64() < m.Rate {
			c.Set(i, m.Candidates[rng.Intn(len(m.Candidates))])
			mutated++
		}
	}

	return mutated
}

// AdaptiveRate computes the effective mutation rate maxRate -
// (fitness/maxFitness)*(maxRate-minRate); a negative ratio is treated as 0, so the result is capped at maxRate.
func AdaptiveRate(fitness, maxFitness, minRate, maxRate float64) float64 {
	ratio := 0.0
	if maxFitness != 0 {
		ratio = fitness / maxFitness
	}

	if ratio < 0 {
		ratio = 0
	}

	return maxRate - ratio*(maxRate-minRate)
}
