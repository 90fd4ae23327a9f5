// Package config holds the GA driver's tunable parameters, their
// validation rules, and a set of named preset bundles (Default,
// LargeDatasetConfig-style scaling, Quick/HighQuality trade-offs), with a
// fail-fast Validate step ahead of any run.
package config

import (
	"errors"
	"fmt"
)

// Config holds every GA driver parameter.
type Config struct {
	PopulationSize int
	MaxGenerations int

	MutationRate  float64
	CrossoverRate float64

	ElitePercentage float64
	TournamentSize  int

	ConvergenceEnabled     bool
	ConvergenceGenerations int
	ConvergenceThreshold   float64

	TargetFitness *float64

	RepairEnabled bool

	Seed *int64

	// Penalty weights.
	Wc float64
	Wg float64
	Wp float64
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		PopulationSize:         200,
		MaxGenerations:         1000,
		MutationRate:           0.02,
		CrossoverRate:          0.8,
		ElitePercentage:        0.05,
		TournamentSize:         3,
		ConvergenceEnabled:     true,
		ConvergenceGenerations: 50,
		ConvergenceThreshold:   0.001,
		RepairEnabled:          true,
		Wc:                     50,
		Wg:                     30,
		Wp:                     40,
	}
}

// Small returns a fast, small-cohort preset.
func Small() Config {
	c := Default()
	c.PopulationSize = 50
	c.MaxGenerations = 300

	return c
}

// Medium returns the balanced preset used for day-to-day runs.
func Medium() Config {
	return Default()
}

// Large scales population and generations for large cohorts.
func Large() Config {
	c := Default()
	c.PopulationSize = 500
	c.MaxGenerations = 2000
	c.MutationRate = 0.01

	return c
}

// Quick sacrifices quality for turnaround time.
func Quick() Config {
	c := Default()
	c.PopulationSize = 50
	c.MaxGenerations = 100
	c.ConvergenceGenerations = 15

	return c
}

// HighQuality trades turnaround time for solution quality.
func HighQuality() Config {
	c := Default()
	c.PopulationSize = 400
	c.MaxGenerations = 3000
	c.ElitePercentage = 0.1
	c.ConvergenceGenerations = 150

	return c
}

// Validate checks every parameter bound, failing fast with a
// descriptive error.
func (c Config) Validate() error {
	if c.PopulationSize < 10 {
		return fmt.Errorf("config: population_size must be >= 10, got %d", c.PopulationSize)
	}

	if c.MaxGenerations < 1 {
		return fmt.Errorf("config: max_generations must be >= 1, got %d", c.MaxGenerations)
	}

	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("config: mutation_rate must be in [0,1], got %f", c.MutationRate)
	}

	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("config: crossover_rate must be in [0,1], got %f", c.CrossoverRate)
	}

	if c.ElitePercentage < 0 || c.ElitePercentage > 1 {
		return fmt.Errorf("config: elite_percentage must be in [0,1], got %f", c.ElitePercentage)
	}

	if c.TournamentSize < 2 {
		return fmt.Errorf("config: tournament_size must be >= 2, got %d", c.TournamentSize)
	}

	if c.ConvergenceEnabled && c.ConvergenceGenerations < 1 {
		return errors.New("config: convergence_generations must be >= 1 when convergence is enabled")
	}

	return nil
}
