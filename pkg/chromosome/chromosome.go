// Package chromosome defines the fixed-length assignment encoding the GA
// evolves, and the population container that holds a generation's worth of
// them. Every in-place write to a Chromosome invalidates its cached fitness
// and validity flags, so a stale cache can never be read back after a
// mutation.
package chromosome

import (
	"math/rand"

	"github.com/google/uuid"
)

// Chromosome is a candidate assignment: position i holds the project
// identity assigned to the i-th student under the dataset's fixed student
// ordering (model.Dataset.StudentAt). Fitness is a cache invalidated by any
// write to Assignments; Valid mirrors the constraint checker's last verdict
// and is likewise reset by every write.
type Chromosome struct {
	Assignments    []uuid.UUID
	fitness        float64
	fitnessComputed bool
	valid          bool
	validComputed  bool
}

// New builds a chromosome of the given length with every position zeroed
// (the nil UUID). Callers typically follow with RandomInit or explicit Set
// calls.
func New(length int) *Chromosome {
	return &Chromosome{Assignments: make([]uuid.UUID, length)}
}

// RandomInit fills every position independently with a uniformly random
// project identity drawn from candidates.
func RandomInit(rng *rand.Rand, length int, candidates []uuid.UUID) *Chromosome {
	c := New(length)
	for i := range c.Assignments {
		c.Assignments[i] = candidates[rng.Intn(len(candidates))]
	}

	return c
}

// Len returns the chromosome length N.
func (c *Chromosome) Len() int { return len(c.Assignments) }

// At returns the project identity assigned to position i.
func (c *Chromosome) At(i int) uuid.UUID { return c.Assignments[i] }

// Set writes a new project identity to position i and invalidates both
// caches.
func (c *Chromosome) Set(i int, projectID uuid.UUID) {
	c.Assignments[i] = projectID
	c.invalidate()
}

// Swap exchanges the assignments at i and j in place.
func (c *Chromosome) Swap(i, j int) {
	c.Assignments[i], c.Assignments[j] = c.Assignments[j], c.Assignments[i]
	c.invalidate()
}

func (c *Chromosome) invalidate() {
	c.fitness = 0
	c.fitnessComputed = false
	c.valid = false
	c.validComputed = false
}

// Fitness returns the cached fitness and whether it has been computed since
// the last mutation.
func (c *Chromosome) Fitness() (float64, bool) { return c.fitness, c.fitnessComputed }

// SetFitness records a freshly computed fitness value; called only by
// fitness.Evaluator.Evaluate.
func (c *Chromosome) SetFitness(value float64) {
	c.fitness = value
	c.fitnessComputed = true
}

// Valid returns the cached validity flag and whether it has been computed.
func (c *Chromosome) Valid() (bool, bool) { return c.valid, c.validComputed }

// SetValid records a freshly computed validity verdict; called only by
// constraint.Checker.CheckAll.
func (c *Chromosome) SetValid(ok bool) {
	c.valid = ok
	c.validComputed = true
}

// CountAt returns how many positions are mapped to projectID.
func (c *Chromosome) CountAt(projectID uuid.UUID) int {
	n := 0

	for _, pid := range c.Assignments {
		if pid == projectID {
			n++
		}
	}

	return n
}

// PositionsAt returns every position mapped to projectID, ascending.
func (c *Chromosome) PositionsAt(projectID uuid.UUID) []int {
	var positions []int

	for i, pid := range c.Assignments {
		if pid == projectID {
			positions = append(positions, i)
		}
	}

	return positions
}

// Clone returns an independent deep copy; the cached fitness and validity
// flags are carried over since the assignment vector is unchanged.
func (c *Chromosome) Clone() *Chromosome {
	clone := &Chromosome{
		Assignments:     make([]uuid.UUID, len(c.Assignments)),
		fitness:         c.fitness,
		fitnessComputed: c.fitnessComputed,
		valid:           c.valid,
		validComputed:   c.validComputed,
	}
	copy(clone.Assignments, c.Assignments)

	return clone
}

// Equal reports assignment-vector equality (ignores cached fitness/validity).
func (c *Chromosome) Equal(other *Chromosome) bool {
	if other == nil || len(c.Assignments) != len(other.Assignments) {
		return false
	}

	for i, pid := range c.Assignments {
		if other.Assignments[i] != pid {
			return false
		}
	}

	return true
}

// Less orders chromosomes by descending fitness, for use with sort.Slice;
// chromosomes whose fitness has not been computed sort as if fitness were 0.
func Less(a, b *Chromosome) bool {
	af, _ := a.Fitness()
	bf, _ := b.Fitness()

	return af > bf
}
