// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewExperimentValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cells = 0
	_, err := NewExperiment(cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestExperimentRunCallsObserverAtInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cells = 3
	cfg.Generations = 6
	cfg.Interval = 2
	cfg.RKLimit = 1.0
	cfg.Seed = 123

	exp, err := NewExperiment(cfg, zerolog.Nop())
	require.NoError(t, err)

	var reports []GenerationReport
	err = exp.Run(context.Background(), func(r GenerationReport) {
		reports = append(reports, r)
	})
	require.NoError(t, err)
	require.Len(t, reports, 3) // generations 2, 4, 6
	for _, r := range reports {
		require.NotNil(t, r.Best)
	}
}

func TestExperimentRunStopsOnCancelledContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cells = 2
	cfg.Generations = 100
	cfg.Interval = 1000

	exp, err := NewExperiment(cfg, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = exp.Run(ctx, nil)
	require.Error(t, err)
}

func TestExperimentIdenticalSeedIsDeterministic(t *testing.T) {
	runOnce := func() []GenerationReport {
		cfg := DefaultConfig()
		cfg.Cells = 4
		cfg.Generations = 10
		cfg.Interval = 2
		cfg.RKLimit = 1.0
		cfg.Seed = 7

		exp, err := NewExperiment(cfg, zerolog.Nop())
		require.NoError(t, err)

		var reports []GenerationReport
		err = exp.Run(context.Background(), func(r GenerationReport) {
			reports = append(reports, r)
		})
		require.NoError(t, err)
		return reports
	}

	a, b := runOnce(), runOnce()
	require.Len(t, a, len(b))
	for i := range a {
		require.Equal(t, a[i].Generation, b[i].Generation)
		require.Equal(t, a[i].Score, b[i].Score)
		require.Equal(t, a[i].Best.ID, b[i].Best.ID)
		require.Equal(t, a[i].Best.Generation, b[i].Best.Generation)
	}
}

func TestExperimentPreciseRerunPreservesCoarseTrajectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cells = 2
	cfg.Generations = 1
	cfg.Interval = 1
	cfg.RKStep = 0.1
	cfg.RKLimit = 1.0
	cfg.Precise = true
	cfg.PreciseStep = 0.01
	cfg.PreciseLimit = 1.0

	exp, err := NewExperiment(cfg, zerolog.Nop())
	require.NoError(t, err)

	var report GenerationReport
	err = exp.Run(context.Background(), func(r GenerationReport) {
		report = r
	})
	require.NoError(t, err)
	require.True(t, report.PreciseRan)

	// The coarse run takes ~10 steps (rklimit/rkstep); the precise run
	// takes ~100. Restoring the coarse trajectory afterwards means the
	// reported length stays in the coarse ballpark, not the fine one.
	for _, s := range report.Best.Net.AllSpecies() {
		require.Greater(t, len(s.Trajectory), 1)
		require.Less(t, len(s.Trajectory), 50)
	}
}
