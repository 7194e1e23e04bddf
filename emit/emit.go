// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package emit holds the output adapters: GraphViz network images,
// gnuplot concentration plots, and CSV dumps of the best (or every)
// cell's network and trajectories each scored generation. Every
// adapter here is best-effort -- a failure is logged as an
// reactome.IoEmission and swallowed, never propagated into the
// population loop, mirroring Trace.h's own posture that a tracing or
// reporting sink going missing must never perturb the simulation it
// is reporting on.
package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mdhelgen/EvoDevo/cell"
)

// Emitter owns the output-tree root and which adapters are enabled.
// It is stateless between generations; every call derives its own
// paths from the generation report handed to it.
type Emitter struct {
	Cfg cell.Config
	PID int

	log zerolog.Logger
}

// NewEmitter returns an Emitter rooted at cfg.OutputPrefix/pid.
func NewEmitter(cfg cell.Config, pid int, log zerolog.Logger) *Emitter {
	return &Emitter{Cfg: cfg, PID: pid, log: log}
}

// Observer adapts the Emitter to cell.Observer, the seam the
// Experiment loop calls after every scored generation.
func (e *Emitter) Observer(r cell.GenerationReport) {
	targets := []*cell.Cell{r.Best}
	if e.Cfg.OutputAll {
		targets = r.All
	}
	for _, c := range targets {
		e.emitCell(r.Generation, c)
	}
}

func (e *Emitter) emitCell(gen int, c *cell.Cell) {
	dir := filepath.Join(e.Cfg.OutputPrefix, fmt.Sprintf("%d", e.PID), fmt.Sprintf("cell%d", c.ID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.log.Error().Err(err).Str("dir", dir).Msg("emit: could not create output directory")
		return
	}

	if e.Cfg.GraphViz {
		if err := e.graphvizPNG(dir, gen, c); err != nil {
			e.log.Error().Err(err).Int("cell", c.ID).Int("generation", gen).Msg("emit: graphviz rendering failed")
		}
	}
	if e.Cfg.Gnuplot {
		if err := e.gnuplotPNGs(dir, gen, c); err != nil {
			e.log.Error().Err(err).Int("cell", c.ID).Int("generation", gen).Msg("emit: gnuplot rendering failed")
		}
	}
	if e.Cfg.CSVData {
		if err := e.csvData(dir, gen, c); err != nil {
			e.log.Error().Err(err).Int("cell", c.ID).Int("generation", gen).Msg("emit: concentration CSV failed")
		}
	}
	if e.Cfg.CSVCell {
		if err := e.csvInteractions(dir, gen, c); err != nil {
			e.log.Error().Err(err).Int("cell", c.ID).Int("generation", gen).Msg("emit: interaction CSV failed")
		}
	}
}
