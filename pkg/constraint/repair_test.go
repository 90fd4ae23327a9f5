package constraint

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/chromosome"
	"github.com/projectmatch/gaengine/pkg/model"
)

func TestRepairResolvesPartnerSplit(t *testing.T) {
	s1 := model.Student{ID: uuid.New(), GPA: 3.0}
	s2 := model.Student{ID: uuid.New(), GPA: 3.0}
	s1.Partner = &s2.ID
	s2.Partner = &s1.ID

	p1 := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 2}
	p2 := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 2}

	ds, err := model.NewDataset([]model.Student{s1, s2}, []model.Project{p1, p2}, nil)
	if err != nil {
		t.Fatalf("unexpected dataset error: %v", err)
	}

	repairer := NewRepairer(ds)
	rng := rand.New(rand.NewSource(1))

	c := chromosome.New(2)
	c.Set(0, p1.ID)
	c.Set(1, p2.ID)

	repairer.Repair(rng, c)

	if c.At(0) != c.At(1) {
		t.Errorf("expected partners to be co-located after repair, got %s and %s", c.At(0), c.At(1))
	}
}

func TestRepairResolvesGPAViolationWhenEligibleProjectExists(t *testing.T) {
	s := model.Student{ID: uuid.New(), GPA: 1.0}

	tooHigh := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 1, RequiredGPA: 3.0}
	eligible := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 1, RequiredGPA: 0}

	ds, err := model.NewDataset([]model.Student{s}, []model.Project{tooHigh, eligible}, nil)
	if err != nil {
		t.Fatalf("unexpected dataset error: %v", err)
	}

	repairer := NewRepairer(ds)
	rng := rand.New(rand.NewSource(1))

	c := chromosome.New(1)
	c.Set(0, tooHigh.ID)

	repairer.Repair(rng, c)

	if c.At(0) != eligible.ID {
		t.Errorf("expected repair to move the student to the only eligible project, got %s", c.At(0))
	}
}

func TestRepairLeavesUnresolvableGPAViolationInPlace(t *testing.T) {
	s := model.Student{ID: uuid.New(), GPA: 1.0}

	tooHigh := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 1, RequiredGPA: 3.0}

	ds, err := model.NewDataset([]model.Student{s}, []model.Project{tooHigh}, nil)
	if err != nil {
		t.Fatalf("unexpected dataset error: %v", err)
	}

	repairer := NewRepairer(ds)
	rng := rand.New(rand.NewSource(1))

	c := chromosome.New(1)
	c.Set(0, tooHigh.ID)

	repairer.Repair(rng, c)

	if c.At(0) != tooHigh.ID {
		t.Error("expected repair to leave the only-possible assignment unchanged when no eligible project exists")
	}

	if ok, computed := c.Valid(); !computed || ok {
		t.Error("expected the cached validity flag to reflect the unresolved violation")
	}
}

func TestRepairRedistributesCapacityOverflow(t *testing.T) {
	s1 := model.Student{ID: uuid.New(), GPA: 3.0}
	s2 := model.Student{ID: uuid.New(), GPA: 3.0}

	p1 := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 1}
	p2 := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 1}

	ds, err := model.NewDataset([]model.Student{s1, s2}, []model.Project{p1, p2}, nil)
	if err != nil {
		t.Fatalf("unexpected dataset error: %v", err)
	}

	repairer := NewRepairer(ds)
	checker := New(ds)
	rng := rand.New(rand.NewSource(1))

	c := chromosome.New(2)
	c.Set(0, p1.ID)
	c.Set(1, p1.ID) // both students on p1, which has MaxCapacity 1

	repairer.Repair(rng, c)

	if !checker.CapacityOK(c) {
		t.Error("expected repair to resolve the capacity overflow")
	}
}

func TestRepairNeverErrorsOnAlreadyFeasibleChromosome(t *testing.T) {
	s := model.Student{ID: uuid.New(), GPA: 3.0}
	p := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 1}

	ds, err := model.NewDataset([]model.Student{s}, []model.Project{p}, nil)
	if err != nil {
		t.Fatalf("unexpected dataset error: %v", err)
	}

	repairer := NewRepairer(ds)
	rng := rand.New(rand.NewSource(1))

	c := chromosome.New(1)
	c.Set(0, p.ID)

	repairer.Repair(rng, c)

	if c.At(0) != p.ID {
		t.Error("expected repair to leave an already-feasible assignment unchanged")
	}
}
