package operators

import "github.com/projectmatch/gaengine/pkg/chromosome"

// Elitism parameterizes unconditional carry-over of top chromosomes into
// the next generation.
type Elitism struct {
	Fraction   float64 // epsilon, default 0.05
	MinElite   int     // m, default 1
	MaxElite   int     // M, default 50
	UniqueOnly bool    // default true
}

// NewElitism returns an Elitism with its default parameters.
func NewElitism() *Elitism {
	return &Elitism{Fraction: 0.05, MinElite: 1, MaxElite: 50, UniqueOnly: true}
}

// Count computes k = clamp(round(epsilon*N), m, M), then min(k, N).
func (e *Elitism) Count(n int) int {
	k := int(e.Fraction*float64(n) + 0.5) // round-half-up

	if k < e.MinElite {
		k = e.MinElite
	}

	if k > e.MaxElite {
		k = e.MaxElite
	}

	if k > n {
		k = n
	}

	return k
}

// SelectElite sorts pop and copies the top k. When UniqueOnly is set, it
// walks the sorted population skipping chromosomes whose assignment vector
// structurally duplicates one already taken, until k unique elites are
// gathered or the population is exhausted.
func (e *Elitism) SelectElite(pop *chromosome.Population) []*chromosome.Chromosome {
	k := e.Count(pop.Size())

	if !e.UniqueOnly {
		return pop.GetElite(k)
	}

	pop.Sort()

	snapshot := pop.Snapshot()
	elite := make([]*chromosome.Chromosome, 0, k)

	for _, c := range snapshot {
		if len(elite) >= k {
			break
		}

		duplicate := false

		for _, taken := range elite {
			if taken.Equal(c) {
				duplicate = true
				break
			}
		}

		if !duplicate {
			elite = append(elite, c.Clone())
		}
	}

	return elite
}

// Apply sorts newPop and overwrites its worst len(elite) slots with deep
// copies of elite. The caller is
// responsible for verifying the invariant that the resulting best fitness
// is >= the previous generation's best.
func (e *Elitism) Apply(elite []*chromosome.Chromosome, newPop *chromosome.Population) {
	if len(elite) == 0 {
		return
	}

	newPop.Sort()

	snapshot := newPop.Snapshot()
	n := len(snapshot)

	for i, c := range elite {
		slot := n - len(elite) + i
		if slot < 0 {
			continue
		}

		newPop.Set(slot, c.Clone())
	}

	newPop.Sort()
}
