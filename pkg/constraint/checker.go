// Package constraint implements the three orthogonal feasibility predicates
// over a chromosome (capacity, GPA, partner co-location) and the best-effort
// deterministic-then-random repair procedure. A checker type holds a
// *model.Dataset and produces structured violation records, one list per
// predicate.
package constraint

import (
	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/chromosome"
	"github.com/projectmatch/gaengine/pkg/model"
)

// CapacityViolation records one project whose assigned count falls outside
// its [min, max] band.
type CapacityViolation struct {
	ProjectID uuid.UUID
	Actual    int
	Min       int
	Max       int
	Underflow bool
}

// GPAViolation records one student assigned to a project whose GPA floor
// they do not meet.
type GPAViolation struct {
	StudentID   uuid.UUID
	ProjectID   uuid.UUID
	GPA         float64
	RequiredGPA float64
}

// PartnerViolation records one partner pair assigned to different projects.
// Enumerated with i<j (by chromosome position) to avoid double-counting.
type PartnerViolation struct {
	StudentID  uuid.UUID
	PartnerID  uuid.UUID
	ProjectA   uuid.UUID
	ProjectB   uuid.UUID
}

// Violations bundles the three structured violation lists.
type Violations struct {
	Capacity []CapacityViolation
	GPA      []GPAViolation
	Partner  []PartnerViolation
}

// Empty reports whether no violation of any kind was found.
func (v Violations) Empty() bool {
	return len(v.Capacity) == 0 && len(v.GPA) == 0 && len(v.Partner) == 0
}

// Checker evaluates the capacity/GPA/partner predicates over a chromosome
// against one dataset.
type Checker struct {
	dataset *model.Dataset
}

// New builds a Checker bound to the given dataset.
func New(dataset *model.Dataset) *Checker {
	return &Checker{dataset: dataset}
}

// CheckAll runs every predicate, writes the resulting validity flag into
// the chromosome's cache, and returns it.
func (ch *Checker) CheckAll(c *chromosome.Chromosome) bool {
	ok := ch.CapacityOK(c) && ch.GPAOK(c) && ch.PartnerOK(c)
	c.SetValid(ok)

	return ok
}

// CapacityOK reports whether every project's assigned count lies within
// [min, max].
func (ch *Checker) CapacityOK(c *chromosome.Chromosome) bool {
	counts := ch.countsByProject(c)

	for _, p := range ch.dataset.Projects {
		n := counts[p.ID]
		if n < p.MinCapacity || n > p.MaxCapacity {
			return false
		}
	}

	return true
}

// GPAOK reports whether every assigned project's GPA floor is met.
func (ch *Checker) GPAOK(c *chromosome.Chromosome) bool {
	for i := 0; i < c.Len(); i++ {
		student := ch.dataset.StudentByPos(i)

		project, ok := ch.dataset.Project(c.At(i))
		if !ok {
			continue
		}

		if project.RequiredGPA > student.GPA {
			return false
		}
	}

	return true
}

// PartnerOK reports whether every partnered pair shares an assignment.
func (ch *Checker) PartnerOK(c *chromosome.Chromosome) bool {
	for i := 0; i < c.Len(); i++ {
		student := ch.dataset.StudentByPos(i)
		if student.Partner == nil {
			continue
		}

		j, ok := ch.dataset.PositionOf(*student.Partner)
		if !ok {
			continue
		}

		if c.At(i) != c.At(j) {
			return false
		}
	}

	return true
}

// GetViolations returns the structured violation lists.
func (ch *Checker) GetViolations(c *chromosome.Chromosome) Violations {
	var v Violations

	counts := ch.countsByProject(c)
	for _, p := range ch.dataset.Projects {
		n := counts[p.ID]
		if n < p.MinCapacity {
			v.Capacity = append(v.Capacity, CapacityViolation{ProjectID: p.ID, Actual: n, Min: p.MinCapacity, Max: p.MaxCapacity, Underflow: true})
		} else if n > p.MaxCapacity {
			v.Capacity = append(v.Capacity, CapacityViolation{ProjectID: p.ID, Actual: n, Min: p.MinCapacity, Max: p.MaxCapacity})
		}
	}

	for i := 0; i < c.Len(); i++ {
		student := ch.dataset.StudentByPos(i)

		project, ok := ch.dataset.Project(c.At(i))
		if !ok {
			continue
		}

		if project.RequiredGPA > student.GPA {
			v.GPA = append(v.GPA, GPAViolation{StudentID: student.ID, ProjectID: project.ID, GPA: student.GPA, RequiredGPA: project.RequiredGPA})
		}
	}

	for i := 0; i < c.Len(); i++ {
		student := ch.dataset.StudentByPos(i)
		if student.Partner == nil {
			continue
		}

		j, ok := ch.dataset.PositionOf(*student.Partner)
		if !ok || j <= i {
			continue
		}

		if c.At(i) != c.At(j) {
			v.Partner = append(v.Partner, PartnerViolation{
				StudentID: student.ID,
				PartnerID: *student.Partner,
				ProjectA:  c.At(i),
				ProjectB:  c.At(j),
			})
		}
	}

	return v
}

func (ch *Checker) countsByProject(c *chromosome.Chromosome) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int, c.Len())
	for i := 0; i < c.Len(); i++ {
		counts[c.At(i)]++
	}

	return counts
}
