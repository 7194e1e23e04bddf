// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mdhelgen/EvoDevo/graph"
	"github.com/mdhelgen/EvoDevo/integrate"
	"github.com/mdhelgen/EvoDevo/reactome"
)

// snapshotTrajectories copies every species' recorded trajectory, so
// a precise rerun (which shares the network's species state) can be
// reverted to the coarse run's output afterwards.
func snapshotTrajectories(net *reactome.Network) map[graph.NodeID][]float64 {
	snap := make(map[graph.NodeID][]float64)
	for _, s := range net.AllSpecies() {
		cp := make([]float64, len(s.Trajectory))
		copy(cp, s.Trajectory)
		snap[s.Node] = cp
	}
	return snap
}

func restoreTrajectories(net *reactome.Network, snap map[graph.NodeID][]float64) {
	for _, s := range net.AllSpecies() {
		s.Trajectory = snap[s.Node]
	}
}

// GenerationReport is handed to an Experiment's Observer after each
// scored generation.
type GenerationReport struct {
	Generation   int
	Best         *Cell
	Score        int
	PreciseScore int
	PreciseRan   bool

	// All is every cell integrated this generation, in population
	// order. Output adapters consult it for --outputall; the core
	// loop itself only ever acts on Best.
	All []*Cell
}

// Observer is notified once per scored generation; output adapters
// (GraphViz, gnuplot, CSV) are wired in at this seam rather than
// inside the loop itself, keeping the loop ignorant of external
// collaborators (see the external-interfaces design: "the core must
// not assume these exist").
type Observer func(GenerationReport)

// Experiment owns a population of cells and a generation budget.
type Experiment struct {
	Cfg   Config
	Cells []*Cell

	log zerolog.Logger
}

// NewExperiment builds a population of Cfg.Cells cells, each with an
// independent RNG stream derived from Cfg.Seed.
func NewExperiment(cfg Config, log zerolog.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cells := make([]*Cell, cfg.Cells)
	for i := range cells {
		cells[i] = NewCell(i, cfg.Limits, seedFor(cfg.Seed, i), log)
	}
	return &Experiment{Cfg: cfg, Cells: cells, log: log}, nil
}

// seedFor derives a per-cell seed from the experiment seed so runs
// are reproducible (the determinism property) while keeping every
// cell's stream independent. A zero experiment seed is propagated as
// zero to every cell, which time-seeds each one independently.
func seedFor(expSeed int64, cellID int) int64 {
	if expSeed == 0 {
		return 0
	}
	return expSeed*1_000_003 + int64(cellID)
}

// Run advances the population for Cfg.Generations generations,
// mutating every cell each generation and scoring (integrating) every
// Cfg.Interval generations. ctx is checked only between generations,
// never mid-integration, per the concurrency design note. obs, if
// non-nil, is called once per scored generation.
func (e *Experiment) Run(ctx context.Context, obs Observer) error {
	for gen := 1; gen <= e.Cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, c := range e.Cells {
			c.Mutate()
		}

		if gen%e.Cfg.Interval != 0 {
			continue
		}

		report, err := e.scoreGeneration(gen)
		if err != nil {
			return err
		}
		if obs != nil {
			obs(report)
		}
	}
	return nil
}

// scoreGeneration integrates every cell (deterministically unless
// Cfg.Stochastic is set) and returns a report naming the
// generation's best cell. If Cfg.Precise is set, the best cell is
// additionally re-integrated at the finer precise step/limit for a
// refined score, per the precise-rerun supplemental feature; this
// never changes which cell was selected as best.
func (e *Experiment) scoreGeneration(gen int) (GenerationReport, error) {
	var best *Cell
	bestScore := -1

	for _, c := range e.Cells {
		if err := e.integrate(c); err != nil {
			e.log.Error().Err(err).Int("cell", c.ID).Int("generation", gen).Msg("integration failed")
			continue
		}
		if s := c.Score(); s > bestScore {
			bestScore = s
			best = c
		}
	}
	if best == nil {
		return GenerationReport{}, newConfigErr("no cell integrated successfully this generation")
	}

	report := GenerationReport{Generation: gen, Best: best, Score: bestScore, All: e.Cells}

	if e.Cfg.Precise {
		coarse := snapshotTrajectories(best.Net)
		rk := integrate.NewRK4(best.Net, e.log)
		score, err := rk.IntegratePrecise(e.Cfg.PreciseStep, e.Cfg.PreciseLimit)
		if err != nil {
			e.log.Error().Err(err).Int("cell", best.ID).Msg("precise rerun failed")
		} else {
			report.PreciseScore = score
			report.PreciseRan = true
		}
		// The precise rerun shares the coarse run's species state; put
		// the coarse trajectories back so output adapters still see
		// what the generation's scoring interval actually integrated.
		restoreTrajectories(best.Net, coarse)
	}

	return report, nil
}

func (e *Experiment) integrate(c *Cell) error {
	if e.Cfg.Stochastic {
		g := integrate.NewGillespie(c.Net, c.rng, e.log)
		return g.Simulate(e.Cfg.RKLimit)
	}
	rk := integrate.NewRK4(c.Net, e.log)
	return rk.Integrate(e.Cfg.RKStep, e.Cfg.RKLimit)
}
