package chromosome

import (
	"testing"

	"github.com/google/uuid"
)

func chromosomeWithFitness(fitness float64) *Chromosome {
	c := New(1)
	c.Set(0, uuid.New())
	c.SetFitness(fitness)

	return c
}

func TestPopulationBestAndWorst(t *testing.T) {
	pop := NewPopulation()
	pop.Append(chromosomeWithFitness(3))
	pop.Append(chromosomeWithFitness(9))
	pop.Append(chromosomeWithFitness(1))

	best, _ := pop.Best().Fitness()
	if best != 9 {
		t.Errorf("expected best fitness 9, got %f", best)
	}

	worst, _ := pop.Worst().Fitness()
	if worst != 1 {
		t.Errorf("expected worst fitness 1, got %f", worst)
	}
}

func TestPopulationSortStability(t *testing.T) {
	pop := NewPopulation()

	a := chromosomeWithFitness(5)
	b := chromosomeWithFitness(5)
	c := chromosomeWithFitness(5)

	pop.Append(a)
	pop.Append(b)
	pop.Append(c)

	pop.Sort()

	snapshot := pop.Snapshot()
	if snapshot[0] != a || snapshot[1] != b || snapshot[2] != c {
		t.Error("expected stable sort to preserve insertion order among ties")
	}
}

func TestPopulationGetEliteReturnsDeepCopies(t *testing.T) {
	pop := NewPopulation()
	pop.Append(chromosomeWithFitness(10))
	pop.Append(chromosomeWithFitness(5))

	elite := pop.GetElite(1)
	if len(elite) != 1 {
		t.Fatalf("expected 1 elite, got %d", len(elite))
	}

	elite[0].SetFitness(-1)

	best, _ := pop.Best().Fitness()
	if best != 10 {
		t.Errorf("mutating elite copy affected population best fitness: got %f", best)
	}
}

func TestPopulationAggregateStats(t *testing.T) {
	pop := NewPopulation()
	pop.Append(chromosomeWithFitness(2))
	pop.Append(chromosomeWithFitness(4))
	pop.Append(chromosomeWithFitness(6))

	stats := pop.AggregateStats()
	if stats.Mean != 4 {
		t.Errorf("expected mean 4, got %f", stats.Mean)
	}

	if stats.StdDev <= 0 {
		t.Errorf("expected positive std dev for varying fitness, got %f", stats.StdDev)
	}
}

func TestPopulationCountValid(t *testing.T) {
	pop := NewPopulation()

	valid := New(1)
	valid.SetValid(true)
	pop.Append(valid)

	invalid := New(1)
	invalid.SetValid(false)
	pop.Append(invalid)

	unknown := New(1)
	pop.Append(unknown)

	if n := pop.CountValid(); n != 1 {
		t.Errorf("expected 1 valid chromosome, got %d", n)
	}
}

func TestPopulationTrimKeepsFittest(t *testing.T) {
	pop := NewPopulation()
	pop.Append(chromosomeWithFitness(1))
	pop.Append(chromosomeWithFitness(9))
	pop.Append(chromosomeWithFitness(5))

	pop.Trim(2)

	if pop.Size() != 2 {
		t.Fatalf("expected size 2 after trim, got %d", pop.Size())
	}

	best, _ := pop.Get(0).Fitness()
	if best != 9 {
		t.Errorf("expected fittest chromosome retained, got fitness %f", best)
	}
}

func TestPopulationSizeOne(t *testing.T) {
	pop := NewPopulation()
	pop.Append(chromosomeWithFitness(7))

	if pop.Best() != pop.Worst() {
		t.Error("expected a size-1 population's best and worst to be the same chromosome")
	}
}
