// Package model holds the read-only input snapshot the GA core consumes:
// students, projects, and preferences, plus the fixed rank-weight table.
// Nothing in this package is ever mutated once a Dataset is built.
package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors surfaced during dataset construction and from operations
// that look up an unknown identity.
var (
	ErrUnknownStudent    = errors.New("model: unknown student identity")
	ErrUnknownProject    = errors.New("model: unknown project identity")
	ErrDuplicateStudent  = errors.New("model: duplicate student identity")
	ErrDuplicateProject  = errors.New("model: duplicate project identity")
	ErrDuplicateRank     = errors.New("model: duplicate preference rank for student")
	ErrDuplicateProjPref = errors.New("model: project appears more than once in a student's preferences")
	ErrInvalidRank       = errors.New("model: preference rank outside 1..5")
	ErrInvalidGPA        = errors.New("model: GPA outside [0.00, 4.00]")
	ErrInvalidCapacity   = errors.New("model: project capacity band invalid")
	ErrAsymmetricPartner = errors.New("model: partner pointer is not symmetric")
)

// RankWeight maps a preference rank (1..5) to its fixed fitness contribution.
// Rank 0 is reserved for "project absent from the student's preferences".
var RankWeight = [6]float64{0: 0, 1: 100, 2: 80, 3: 60, 4: 40, 5: 20}

// Student is a cohort member. Partner, if set, names another student; the
// relationship must be symmetric (A.Partner == B, B.Partner == A).
type Student struct {
	ID      uuid.UUID
	Label   string
	GPA     float64
	Partner *uuid.UUID
}

// Project is one catalog entry students may be assigned to.
type Project struct {
	ID          uuid.UUID
	Code        string
	Name        string
	MinCapacity int
	MaxCapacity int
	RequiredGPA float64
}

// Preference records that a student ranked a project at the given rank.
type Preference struct {
	StudentID uuid.UUID
	ProjectID uuid.UUID
	Rank      int
}

// Dataset is the immutable snapshot of Students, Projects, and Preferences
// for one GA run, plus the index tables the evaluator and repairer need.
// Construct it once via NewDataset; every field below is read-only for the
// lifetime of the run.
type Dataset struct {
	Students    []Student
	Projects    []Project
	Preferences []Preference

	projectByID map[uuid.UUID]*Project
	studentPos  map[uuid.UUID]int            // student identity -> chromosome position
	posStudent  []uuid.UUID                  // chromosome position -> student identity
	studentRank map[uuid.UUID]map[uuid.UUID]int // student -> project -> rank
}

// NewDataset validates the three input collections and builds the lookup
// tables the rest of the core relies on. Validation failures are data
// inconsistencies: the caller should fail fast before a run
// begins.
func NewDataset(students []Student, projects []Project, preferences []Preference) (*Dataset, error) {
	d := &Dataset{
		Students:    students,
		Projects:    projects,
		Preferences: preferences,
		projectByID: make(map[uuid.UUID]*Project, len(projects)),
		studentPos:  make(map[uuid.UUID]int, len(students)),
		posStudent:  make([]uuid.UUID, len(students)),
		studentRank: make(map[uuid.UUID]map[uuid.UUID]int, len(students)),
	}

	studentByID := make(map[uuid.UUID]*Student, len(students))
	for i := range students {
		s := &students[i]
		if _, dup := studentByID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStudent, s.ID)
		}
		studentByID[s.ID] = s

		if s.GPA < 0.0 || s.GPA > 4.0 {
			return nil, fmt.Errorf("%w: student %s has GPA %.2f", ErrInvalidGPA, s.ID, s.GPA)
		}

		d.studentPos[s.ID] = i
		d.posStudent[i] = s.ID
		d.studentRank[s.ID] = make(map[uuid.UUID]int)
	}

	for i := range projects {
		p := &projects[i]
		if _, dup := d.projectByID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProject, p.ID)
		}

		if p.MinCapacity < 1 || p.MaxCapacity < p.MinCapacity {
			return nil, fmt.Errorf("%w: project %s has min=%d max=%d", ErrInvalidCapacity, p.ID, p.MinCapacity, p.MaxCapacity)
		}

		d.projectByID[p.ID] = p
	}

	for _, pref := range preferences {
		if pref.Rank < 1 || pref.Rank > 5 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidRank, pref.Rank)
		}

		ranks, ok := d.studentRank[pref.StudentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStudent, pref.StudentID)
		}

		if _, ok := d.projectByID[pref.ProjectID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProject, pref.ProjectID)
		}

		for projectID, rank := range ranks {
			if rank == pref.Rank {
				return nil, fmt.Errorf("%w: student %s", ErrDuplicateRank, pref.StudentID)
			}

			if projectID == pref.ProjectID {
				return nil, fmt.Errorf("%w: student %s, project %s", ErrDuplicateProjPref, pref.StudentID, pref.ProjectID)
			}
		}

		ranks[pref.ProjectID] = pref.Rank
	}

	for _, s := range students {
		if s.Partner == nil {
			continue
		}

		partner, ok := studentByID[*s.Partner]
		if !ok {
			return nil, fmt.Errorf("%w: student %s points at unknown partner %s", ErrUnknownStudent, s.ID, *s.Partner)
		}

		if partner.Partner == nil || *partner.Partner != s.ID {
			return nil, fmt.Errorf("%w: %s -> %s", ErrAsymmetricPartner, s.ID, *s.Partner)
		}
	}

	return d, nil
}

// NumStudents is the fixed chromosome length N.
func (d *Dataset) NumStudents() int { return len(d.Students) }

// StudentAt returns the student identity holding chromosome position i.
func (d *Dataset) StudentAt(i int) uuid.UUID { return d.posStudent[i] }

// PositionOf returns the chromosome position for a student identity.
func (d *Dataset) PositionOf(studentID uuid.UUID) (int, bool) {
	pos, ok := d.studentPos[studentID]
	return pos, ok
}

// Project looks up a project record by identity.
func (d *Dataset) Project(id uuid.UUID) (*Project, bool) {
	p, ok := d.projectByID[id]
	return p, ok
}

// StudentByPos returns the student record at chromosome position i.
func (d *Dataset) StudentByPos(i int) *Student { return &d.Students[i] }

// RankOf returns the rank a student gave a project, or (0, false) if the
// project is absent from that student's preferences.
func (d *Dataset) RankOf(studentID, projectID uuid.UUID) (int, bool) {
	rank, ok := d.studentRank[studentID][projectID]
	return rank, ok
}

// ProjectIDs returns every candidate project identity, in catalog order.
func (d *Dataset) ProjectIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.Projects))
	for i, p := range d.Projects {
		ids[i] = p.ID
	}

	return ids
}
