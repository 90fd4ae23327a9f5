package constraint

import (
	"testing"

	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/chromosome"
	"github.com/projectmatch/gaengine/pkg/model"
)

func partneredDataset(t *testing.T) (*model.Dataset, model.Student, model.Student, model.Project, model.Project) {
	t.Helper()

	s1 := model.Student{ID: uuid.New(), GPA: 3.0}
	s2 := model.Student{ID: uuid.New(), GPA: 2.0}
	s1.Partner = &s2.ID
	s2.Partner = &s1.ID

	p1 := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 2, RequiredGPA: 0}
	p2 := model.Project{ID: uuid.New(), MinCapacity: 1, MaxCapacity: 2, RequiredGPA: 2.5}

	ds, err := model.NewDataset([]model.Student{s1, s2}, []model.Project{p1, p2}, nil)
	if err != nil {
		t.Fatalf("unexpected dataset error: %v", err)
	}

	return ds, s1, s2, p1, p2
}

func TestCheckAllDetectsEachViolationKind(t *testing.T) {
	ds, _, _, p1, p2 := partneredDataset(t)
	checker := New(ds)

	c := chromosome.New(2)
	c.Set(0, p1.ID)
	c.Set(1, p2.ID) // partner split, and s2's GPA 2.0 < p2's RequiredGPA 2.5

	if checker.CheckAll(c) {
		t.Error("expected CheckAll to report false for a chromosome with violations")
	}

	ok, computed := c.Valid()
	if !computed || ok {
		t.Error("expected validity cache to record false")
	}

	v := checker.GetViolations(c)
	if len(v.Partner) != 1 {
		t.Errorf("expected 1 partner violation, got %d", len(v.Partner))
	}

	if len(v.GPA) != 1 {
		t.Errorf("expected 1 GPA violation, got %d", len(v.GPA))
	}
}

func TestCheckAllAcceptsFeasibleAssignment(t *testing.T) {
	ds, _, _, p1, _ := partneredDataset(t)
	checker := New(ds)

	c := chromosome.New(2)
	c.Set(0, p1.ID)
	c.Set(1, p1.ID)

	if !checker.CheckAll(c) {
		t.Error("expected a co-located, GPA-satisfying, in-band assignment to be valid")
	}

	v := checker.GetViolations(c)
	if !v.Empty() {
		t.Errorf("expected no violations, got %+v", v)
	}
}

func TestCapacityViolationReportsUnderflow(t *testing.T) {
	s1 := model.Student{ID: uuid.New(), GPA: 3.0}

	p1 := model.Project{ID: uuid.New(), MinCapacity: 2, MaxCapacity: 3}

	ds, err := model.NewDataset([]model.Student{s1}, []model.Project{p1}, nil)
	if err != nil {
		t.Fatalf("unexpected dataset error: %v", err)
	}

	checker := New(ds)

	c := chromosome.New(1)
	c.Set(0, p1.ID)

	v := checker.GetViolations(c)
	if len(v.Capacity) != 1 || !v.Capacity[0].Underflow {
		t.Errorf("expected one underflow violation, got %+v", v.Capacity)
	}
}
