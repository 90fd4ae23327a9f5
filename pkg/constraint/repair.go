package constraint

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/chromosome"
	"github.com/projectmatch/gaengine/pkg/model"
)

// Repairer applies the three-stage best-effort repair sequence — Partners,
// then GPA, then Capacity — in that order, because partner co-location may
// resolve a GPA violation incidentally, and GPA repair may shift counts that
// capacity repair must then correct. Repair never errors; it
// may leave residual violations, reflected later in fitness via penalties.
type Repairer struct {
	dataset *model.Dataset
	checker *Checker
}

// NewRepairer builds a Repairer bound to the given dataset.
func NewRepairer(dataset *model.Dataset) *Repairer {
	return &Repairer{dataset: dataset, checker: New(dataset)}
}

// Repair runs Partners -> GPA -> Capacity in place and refreshes the
// chromosome's validity cache.
func (r *Repairer) Repair(rng *rand.Rand, c *chromosome.Chromosome) {
	r.repairPartners(rng, c)
	r.repairGPA(rng, c)
	r.repairCapacity(rng, c)
	r.checker.CheckAll(c)
}

// eligibleProjects returns every project identity whose GPA floor gpa
// meets, in dataset catalog order.
func (r *Repairer) eligibleProjects(gpa float64) []uuid.UUID {
	var ids []uuid.UUID

	for _, p := range r.dataset.Projects {
		if p.RequiredGPA <= gpa {
			ids = append(ids, p.ID)
		}
	}

	return ids
}

// repairPartners resolves each differently-assigned partner pair. For i<j pairs whose assignments differ, prefer
// the project already held by the higher-GPA partner (ties -> i's
// project); if that project does not meet both GPAs, draw a uniformly
// random project meeting the lower of the two GPAs; if none exists, leave
// the pair unchanged.
func (r *Repairer) repairPartners(rng *rand.Rand, c *chromosome.Chromosome) {
	for i := 0; i < c.Len(); i++ {
		studentA := r.dataset.StudentByPos(i)
		if studentA.Partner == nil {
			continue
		}

		j, ok := r.dataset.PositionOf(*studentA.Partner)
		if !ok || j <= i {
			continue
		}

		studentB := r.dataset.StudentByPos(j)

		if c.At(i) == c.At(j) {
			continue
		}

		preferred := c.At(i)
		if studentB.GPA > studentA.GPA {
			preferred = c.At(j)
		}

		minGPA := studentA.GPA
		if studentB.GPA < minGPA {
			minGPA = studentB.GPA
		}

		if proj, ok := r.dataset.Project(preferred); ok && proj.RequiredGPA <= minGPA {
			c.Set(i, preferred)
			c.Set(j, preferred)

			continue
		}

		candidates := r.eligibleProjects(minGPA)
		if len(candidates) == 0 {
			continue // no project meets both GPAs: leave the pair unchanged
		}

		chosen := candidates[rng.Intn(len(candidates))]
		c.Set(i, chosen)
		c.Set(j, chosen)
	}
}

// repairGPA resolves each GPA violation by drawing a uniformly random
// project that meets the student's GPA, reassigning the partner to match if
// one exists. Positions with no eligible
// project are left unresolved.
func (r *Repairer) repairGPA(rng *rand.Rand, c *chromosome.Chromosome) {
	for i := 0; i < c.Len(); i++ {
		student := r.dataset.StudentByPos(i)

		project, ok := r.dataset.Project(c.At(i))
		if !ok || project.RequiredGPA <= student.GPA {
			continue
		}

		candidates := r.eligibleProjects(student.GPA)
		if len(candidates) == 0 {
			continue // unresolvable: fitness penalty will reflect it
		}

		chosen := candidates[rng.Intn(len(candidates))]
		c.Set(i, chosen)

		if student.Partner != nil {
			if j, ok := r.dataset.PositionOf(*student.Partner); ok {
				c.Set(j, chosen)
			}
		}
	}
}

// repairCapacity iterates up to 2N times moving students off overflowing
// projects, onto underflowing ones where possible and otherwise onto any
// GPA-eligible project below its max. It stops once no project overflows.
func (r *Repairer) repairCapacity(rng *rand.Rand, c *chromosome.Chromosome) {
	n := c.Len()

	for iter := 0; iter < 2*n; iter++ {
		counts := r.countsByProject(c)

		var overflow, underflow []uuid.UUID

		for _, p := range r.dataset.Projects {
			cnt := counts[p.ID]
			if cnt > p.MaxCapacity {
				overflow = append(overflow, p.ID)
			} else if cnt < p.MinCapacity {
				underflow = append(underflow, p.ID)
			}
		}

		if len(overflow) == 0 {
			return
		}

		source := overflow[0]
		if r.tryDeterministicMove(c, source, underflow) {
			continue
		}

		r.tryRandomMove(rng, c, source, counts)
	}
}

// tryDeterministicMove walks the overflowing project's assigned positions
// high-to-low, skipping partnered students, and moves the first movable
// position to any underflowing project meeting the student's GPA.
func (r *Repairer) tryDeterministicMove(c *chromosome.Chromosome, source uuid.UUID, underflow []uuid.UUID) bool {
	positions := c.PositionsAt(source)

	for i := len(positions) - 1; i >= 0; i-- {
		pos := positions[i]
		student := r.dataset.StudentByPos(pos)

		if student.Partner != nil {
			continue
		}

		for _, target := range underflow {
			proj, ok := r.dataset.Project(target)
			if !ok || proj.RequiredGPA > student.GPA {
				continue
			}

			c.Set(pos, target)

			return true
		}
	}

	return false
}

// tryRandomMove picks a random non-partnered position assigned to source
// and moves it to a uniformly random project meeting the student's GPA
// whose count is currently below its max capacity.
func (r *Repairer) tryRandomMove(rng *rand.Rand, c *chromosome.Chromosome, source uuid.UUID, counts map[uuid.UUID]int) {
	positions := c.PositionsAt(source)

	var movable []int

	for _, pos := range positions {
		if r.dataset.StudentByPos(pos).Partner == nil {
			movable = append(movable, pos)
		}
	}

	if len(movable) == 0 {
		return
	}

	pos := movable[rng.Intn(len(movable))]
	student := r.dataset.StudentByPos(pos)

	var candidates []uuid.UUID

	for _, p := range r.dataset.Projects {
		if p.RequiredGPA <= student.GPA && counts[p.ID] < p.MaxCapacity {
			candidates = append(candidates, p.ID)
		}
	}

	if len(candidates) == 0 {
		return
	}

	c.Set(pos, candidates[rng.Intn(len(candidates))])
}

func (r *Repairer) countsByProject(c *chromosome.Chromosome) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int, c.Len())
	for i := 0; i < c.Len(); i++ {
		counts[c.At(i)]++
	}

	return counts
}
