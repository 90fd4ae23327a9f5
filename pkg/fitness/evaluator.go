// Package fitness maps a chromosome to a scalar score: preference score
// minus weighted constraint penalties, computed by a weighted-sum-of
// -components evaluator fixed at construction to one dataset and one set
// of penalty weights.
package fitness

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/chromosome"
	"github.com/projectmatch/gaengine/pkg/model"
)

// Weights are the three penalty coefficients.
type Weights struct {
	Capacity float64 `json:"capacity"` // Wc, default 50
	GPA      float64 `json:"gpa"`      // Wg, default 30
	Partner  float64 `json:"partner"`  // Wp, default 40
}

// DefaultWeights returns the baseline penalty weights.
func DefaultWeights() Weights {
	return Weights{Capacity: 50, GPA: 30, Partner: 40}
}

// Breakdown is the four-component decomposition of a fitness value plus its
// total.
type Breakdown struct {
	PreferenceScore float64
	CapacityPenalty float64
	GPAPenalty      float64
	PartnerPenalty  float64
	Total           float64
}

// Evaluator is a pure function from chromosome to fitness, fixed at
// construction to one dataset and one set of penalty weights.
type Evaluator struct {
	dataset *model.Dataset
	weights Weights
}

// New builds an Evaluator over the given dataset and penalty weights.
func New(dataset *model.Dataset, weights Weights) *Evaluator {
	return &Evaluator{dataset: dataset, weights: weights}
}

// Evaluate computes fitness(c), writes it into the chromosome's cache, and
// returns it. The only precondition failure is a chromosome length
// mismatch against the dataset's student count.
func (e *Evaluator) Evaluate(c *chromosome.Chromosome) (float64, error) {
	b, err := e.Breakdown(c)
	if err != nil {
		return 0, err
	}

	c.SetFitness(b.Total)

	return b.Total, nil
}

// Breakdown computes the four fitness components and their total without
// requiring a cache write, so callers can inspect penalties independently.
func (e *Evaluator) Breakdown(c *chromosome.Chromosome) (Breakdown, error) {
	n := e.dataset.NumStudents()
	if c.Len() != n {
		return Breakdown{}, fmt.Errorf("fitness: chromosome length %d does not match student count %d", c.Len(), n)
	}

	pref := e.preferenceScore(c)
	capEx := e.capacityExcess(c)
	gpaV := float64(e.gpaViolationCount(c))
	partnerSplits := float64(e.partnerSplitCount(c))

	b := Breakdown{
		PreferenceScore: pref,
		CapacityPenalty: e.weights.Capacity * capEx,
		GPAPenalty:      e.weights.GPA * gpaV,
		PartnerPenalty:  e.weights.Partner * partnerSplits,
	}
	b.Total = b.PreferenceScore - b.CapacityPenalty - b.GPAPenalty - b.PartnerPenalty

	return b, nil
}

func (e *Evaluator) preferenceScore(c *chromosome.Chromosome) float64 {
	total := 0.0

	for i := 0; i < c.Len(); i++ {
		studentID := e.dataset.StudentAt(i)
		projectID := c.At(i)

		if rank, ok := e.dataset.RankOf(studentID, projectID); ok {
			total += model.RankWeight[rank]
		}
	}

	return total
}

// capacityExcess sums, over every project, the shortfall below MinCapacity
// plus the overflow above MaxCapacity.
func (e *Evaluator) capacityExcess(c *chromosome.Chromosome) float64 {
	counts := countsByProject(c)

	total := 0.0

	for _, p := range e.dataset.Projects {
		n := counts[p.ID]
		if p.MinCapacity > n {
			total += float64(p.MinCapacity - n)
		}

		if n > p.MaxCapacity {
			total += float64(n - p.MaxCapacity)
		}
	}

	return total
}

func (e *Evaluator) gpaViolationCount(c *chromosome.Chromosome) int {
	n := 0

	for i := 0; i < c.Len(); i++ {
		student := e.dataset.StudentByPos(i)

		project, ok := e.dataset.Project(c.At(i))
		if !ok {
			continue
		}

		if project.RequiredGPA > student.GPA {
			n++
		}
	}

	return n
}

// partnerSplitCount counts, over every ordered pair (i, j) with i<j where
// both students are partners, whether their current assignments differ
// (each pair counted exactly once).
func (e *Evaluator) partnerSplitCount(c *chromosome.Chromosome) int {
	n := 0

	for i := 0; i < c.Len(); i++ {
		studentA := e.dataset.StudentByPos(i)
		if studentA.Partner == nil {
			continue
		}

		j, ok := e.dataset.PositionOf(*studentA.Partner)
		if !ok || j <= i {
			continue
		}

		if c.At(i) != c.At(j) {
			n++
		}
	}

	return n
}

// RankHistogram returns a histogram indexed 0..5, where bucket r counts how
// many students are assigned a project that they ranked r (bucket 0 counts
// "not in preferences").
func (e *Evaluator) RankHistogram(c *chromosome.Chromosome) [6]int {
	var hist [6]int

	for i := 0; i < c.Len(); i++ {
		studentID := e.dataset.StudentAt(i)
		projectID := c.At(i)

		rank, ok := e.dataset.RankOf(studentID, projectID)
		if !ok {
			hist[0]++
			continue
		}

		hist[rank]++
	}

	return hist
}

func countsByProject(c *chromosome.Chromosome) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int, c.Len())
	for i := 0; i < c.Len(); i++ {
		counts[c.At(i)]++
	}

	return counts
}
