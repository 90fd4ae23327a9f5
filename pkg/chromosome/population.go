package chromosome

import (
	"math"
	"sort"
)

// Population is an ordered, lazily-sorted container of chromosomes. Any mutator clears the sorted flag; Sort sets it. Accessors that
// require order (Best, Worst, GetElite) force a sort first, the same
// encapsulation a lazy-sorted container calls for.
type Population struct {
	chromosomes []*Chromosome
	sorted      bool
}

// NewPopulation returns an empty population.
func NewPopulation() *Population {
	return &Population{}
}

// Append adds a chromosome and clears the sorted flag.
func (p *Population) Append(c *Chromosome) {
	p.chromosomes = append(p.chromosomes, c)
	p.sorted = false
}

// Get returns the chromosome at index i.
func (p *Population) Get(i int) *Chromosome { return p.chromosomes[i] }

// Set replaces the chromosome at index i and clears the sorted flag.
func (p *Population) Set(i int, c *Chromosome) {
	p.chromosomes[i] = c
	p.sorted = false
}

// Size returns the number of chromosomes.
func (p *Population) Size() int { return len(p.chromosomes) }

// Snapshot returns the current backing slice; callers must not mutate it
// through means other than the Population's own methods.
func (p *Population) Snapshot() []*Chromosome { return p.chromosomes }

// Sorted reports whether the population is known to be sorted descending
// by fitness.
func (p *Population) Sorted() bool { return p.sorted }

// Sort orders the population descending by fitness (ties keep their
// current relative order) and sets the sorted flag.
func (p *Population) Sort() {
	sort.SliceStable(p.chromosomes, func(i, j int) bool {
		return Less(p.chromosomes[i], p.chromosomes[j])
	})
	p.sorted = true
}

func (p *Population) ensureSorted() {
	if !p.sorted {
		p.Sort()
	}
}

// Best forces a sort and returns the fittest chromosome.
func (p *Population) Best() *Chromosome {
	p.ensureSorted()
	return p.chromosomes[0]
}

// Worst forces a sort and returns the least fit chromosome.
func (p *Population) Worst() *Chromosome {
	p.ensureSorted()
	return p.chromosomes[len(p.chromosomes)-1]
}

// GetElite forces a sort and returns deep copies of the top k chromosomes.
func (p *Population) GetElite(k int) []*Chromosome {
	p.ensureSorted()

	if k > len(p.chromosomes) {
		k = len(p.chromosomes)
	}

	elite := make([]*Chromosome, k)
	for i := 0; i < k; i++ {
		elite[i] = p.chromosomes[i].Clone()
	}

	return elite
}

// Stats holds the aggregate fitness statistics over a population.
type Stats struct {
	Mean   float64
	StdDev float64
}

// AggregateStats computes the mean and population standard deviation of
// fitness across all chromosomes. Chromosomes with an uncomputed fitness
// contribute 0.
func (p *Population) AggregateStats() Stats {
	n := len(p.chromosomes)
	if n == 0 {
		return Stats{}
	}

	sum := 0.0

	for _, c := range p.chromosomes {
		f, _ := c.Fitness()
		sum += f
	}

	mean := sum / float64(n)

	variance := 0.0
	for _, c := range p.chromosomes {
		f, _ := c.Fitness()
		diff := f - mean
		variance += diff * diff
	}
	variance /= float64(n)

	return Stats{Mean: mean, StdDev: math.Sqrt(variance)}
}

// CountValid returns how many chromosomes currently have their cached
// validity flag set to true. A chromosome whose validity has never been
// computed does not count.
func (p *Population) CountValid() int {
	n := 0

	for _, c := range p.chromosomes {
		if ok, computed := c.Valid(); computed && ok {
			n++
		}
	}

	return n
}

// Clear empties the population.
func (p *Population) Clear() {
	p.chromosomes = nil
	p.sorted = false
}

// ReplaceAll swaps in an entirely new backing slice.
func (p *Population) ReplaceAll(chromosomes []*Chromosome) {
	p.chromosomes = chromosomes
	p.sorted = false
}

// Trim forces a sort and drops the worst chromosomes until size <= target.
func (p *Population) Trim(target int) {
	if target >= len(p.chromosomes) {
		return
	}

	p.ensureSorted()
	p.chromosomes = p.chromosomes[:target]
}
