package operators

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/chromosome"
)

func parentPair(n int) (*chromosome.Chromosome, *chromosome.Chromosome, []uuid.UUID, []uuid.UUID) {
	idsA := make([]uuid.UUID, n)
	idsB := make([]uuid.UUID, n)

	parent1 := chromosome.New(n)
	parent2 := chromosome.New(n)

	for i := 0; i < n; i++ {
		idsA[i] = uuid.New()
		idsB[i] = uuid.New()
		parent1.Set(i, idsA[i])
		parent2.Set(i, idsB[i])
	}

	return parent1, parent2, idsA, idsB
}

func TestCrossoverRateZeroReturnsUnchangedClones(t *testing.T) {
	parent1, parent2, idsA, idsB := parentPair(5)

	cx := NewCrossover(Uniform)
	cx.Rate = 0

	rng := rand.New(rand.NewSource(1))
	offspring1, offspring2 := cx.Apply(rng, parent1, parent2)

	for i := 0; i < 5; i++ {
		if offspring1.At(i) != idsA[i] {
			t.Errorf("expected offspring1[%d] to equal parent1's gene when rate is 0", i)
		}

		if offspring2.At(i) != idsB[i] {
			t.Errorf("expected offspring2[%d] to equal parent2's gene when rate is 0", i)
		}
	}
}

func TestSinglePointCutNeverZeroOrN(t *testing.T) {
	parent1, parent2, idsA, idsB := parentPair(2)

	cx := NewCrossover(SinglePoint)
	cx.Rate = 1

	rng := rand.New(rand.NewSource(1))
	offspring1, offspring2 := cx.Apply(rng, parent1, parent2)

	// With n=2, the only valid cut is 1: offspring1 keeps parent1[0], takes parent2[1].
	if offspring1.At(0) != idsA[0] || offspring1.At(1) != idsB[1] {
		t.Error("expected single-point crossover with n=2 to cut at position 1")
	}

	if offspring2.At(0) != idsB[0] || offspring2.At(1) != idsA[1] {
		t.Error("expected single-point crossover's second offspring to mirror the swap")
	}
}

func TestSinglePointLengthOneClonesInsteadOfPanicking(t *testing.T) {
	parent1, parent2, idsA, idsB := parentPair(1)

	cx := NewCrossover(SinglePoint)
	cx.Rate = 1

	rng := rand.New(rand.NewSource(1))
	offspring1, offspring2 := cx.Apply(rng, parent1, parent2)

	if offspring1.At(0) != idsA[0] {
		t.Error("expected offspring1 to be an unchanged clone of parent1 when n=1")
	}

	if offspring2.At(0) != idsB[0] {
		t.Error("expected offspring2 to be an unchanged clone of parent2 when n=1")
	}
}

func TestTwoPointSwapsOnlyInnerSegment(t *testing.T) {
	parent1, parent2, idsA, _ := parentPair(4)

	cx := NewCrossover(TwoPoint)
	cx.Rate = 1

	rng := rand.New(rand.NewSource(2))
	offspring1, _ := cx.Apply(rng, parent1, parent2)

	changed := 0

	for i := 0; i < 4; i++ {
		if offspring1.At(i) != idsA[i] {
			changed++
		}
	}

	if changed == 4 {
		t.Error("expected two-point crossover to leave at least the endpoints untouched in expectation")
	}
}

func TestUniformCrossoverProducesNoNewIdentities(t *testing.T) {
	parent1, parent2, idsA, idsB := parentPair(6)

	cx := NewCrossover(Uniform)
	cx.Rate = 1

	rng := rand.New(rand.NewSource(3))
	offspring1, offspring2 := cx.Apply(rng, parent1, parent2)

	allowed := make(map[uuid.UUID]bool)
	for i := 0; i < 6; i++ {
		allowed[idsA[i]] = true
		allowed[idsB[i]] = true
	}

	for i := 0; i < 6; i++ {
		if !allowed[offspring1.At(i)] || !allowed[offspring2.At(i)] {
			t.Error("expected uniform crossover to only ever copy genes from the two parents")
		}
	}
}
