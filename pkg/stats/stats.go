// Package stats holds the per-generation aggregate record and the final
// run result the driver returns.
package stats

import (
	"time"

	"github.com/google/uuid"

	"github.com/projectmatch/gaengine/pkg/config"
)

// GenerationStats is one generation's aggregate snapshot. BestEver is
// monotone non-decreasing across a run.
type GenerationStats struct {
	Generation int
	Best       float64
	Average    float64
	Worst      float64
	StdDev     float64
	ValidCount int
	BestEver   float64
}

// AssignmentResult attributes one student's final project and the
// preference rank it represents (0 meaning "not in preferences").
type AssignmentResult struct {
	StudentID uuid.UUID
	ProjectID uuid.UUID
	Rank      int // 0 if the project was absent from the student's preferences
}

// RunResult is the GA driver's output: the final assignment, the full
// per-generation stats stream, and run-level metadata.
type RunResult struct {
	Assignments []AssignmentResult
	Stats       []GenerationStats
	Parameters  config.Config

	GenerationsExecuted int
	BestFitness         float64
	Elapsed             time.Duration

	// Cancelled is true when the run stopped due to a cooperative
	// cancellation signal rather than reaching a stop condition.
	Cancelled bool

	// UnresolvedStudents lists every student whose final assignment still
	// violates a GPA floor (the post-run advisory), whether or not an
	// eligible project existed for them.
	UnresolvedStudents []uuid.UUID
}
