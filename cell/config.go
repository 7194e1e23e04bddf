// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cell owns the population loop: cells, each wrapping one
// reactome.Network, mutated every generation and scored at intervals.
// It mirrors rl/network.go's role in the teacher family -- the layer
// that assembles lower-level pieces (there, layers and projections;
// here, networks and integrators) into a runnable whole.
package cell

import (
	"github.com/mdhelgen/EvoDevo/reactome"
)

// Config bundles every knob the CLI exposes, following
// examples/bench/bench.go's ParamSets convention of a single
// flag-populated defaults struct handed to the run harness.
type Config struct {
	Cells       int
	Generations int
	Interval    int

	Limits reactome.Limits

	RKStep  float64
	RKLimit float64

	Deterministic bool
	Stochastic    bool

	Precise      bool
	PreciseStep  float64
	PreciseLimit float64

	Seed int64

	GraphViz     bool
	Gnuplot      bool
	OutputAll    bool
	CSVCell      bool
	CSVData      bool
	OutputPrefix string

	LogTrace string
}

// DefaultConfig returns a Config suitable for a short exploratory run.
func DefaultConfig() Config {
	return Config{
		Cells:         8,
		Generations:   100,
		Interval:      10,
		Limits:        reactome.DefaultLimits(),
		RKStep:        0.01,
		RKLimit:       20.0,
		Deterministic: true,
		PreciseStep:   0.001,
		PreciseLimit:  20.0,
		OutputPrefix:  "out",
	}
}

// Validate checks cross-field consistency beyond what Limits.Validate
// covers: a positive population and generation count, a usable RK
// step/limit pair, and at most one of Deterministic/Stochastic chosen
// (the zero value of both defaults to Deterministic at run time).
func (c Config) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if c.Cells <= 0 {
		return newConfigErr("cells must be positive")
	}
	if c.Generations <= 0 {
		return newConfigErr("generations must be positive")
	}
	if c.Interval <= 0 {
		return newConfigErr("interval must be positive")
	}
	if c.RKStep <= 0 || c.RKLimit < 0 {
		return newConfigErr("rkstep/rklimit out of range")
	}
	if c.Deterministic && c.Stochastic {
		return newConfigErr("deterministic and stochastic are mutually exclusive")
	}
	if c.Precise && c.PreciseStep <= 0 {
		return newConfigErr("precisestep must be positive when --precise is set")
	}
	return nil
}

func newConfigErr(msg string) error {
	return &reactome.Error{Kind: reactome.NumericDomain, Msg: msg}
}
