// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rng isolates the network and cell layers from any concrete
// random source, so an independent stream can be handed to every cell
// in a population (see the Concurrency & Resource Model design note)
// and so tests can substitute a deterministic source.
package rng

import (
	"math/rand"
	"time"
)

// Source is the uniform random surface the reactome and cell packages
// depend on. Nothing above this package ever calls math/rand directly.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Default wraps *rand.Rand to satisfy Source.
type Default struct {
	r *rand.Rand
}

// NewDefault returns a Source seeded with seed. A seed of 0 seeds from
// the current time, matching the CLI's --seed=0 convention.
func NewDefault(seed int64) *Default {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Default{r: rand.New(rand.NewSource(seed))}
}

func (d *Default) Float64() float64 { return d.r.Float64() }
func (d *Default) Intn(n int) int   { return d.r.Intn(n) }

// Range draws a float64 uniformly from [lo, hi).
func Range(s Source, lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}
