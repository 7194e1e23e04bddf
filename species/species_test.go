// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package species

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const difTol = 1e-9

func TestNullValueIsZero(t *testing.T) {
	s := NewSpecies(Null, 0, 0, 5)
	require.InDelta(t, 0.0, s.Value(), difTol)
}

func TestDNAValueIsHistoneFactor(t *testing.T) {
	s := NewSpecies(DNA, 0, 0, 1)
	s.HistoneFactor = 1.5
	require.InDelta(t, 1.5, s.Value(), difTol)
}

func TestRKApproxStages(t *testing.T) {
	s := NewSpecies(Protein, 0, 0, 1.0)
	s.Accumulate(0, 2.0)
	require.InDelta(t, 1.0, s.RKApprox(0, 0.1), difTol)
	require.InDelta(t, 1.1, s.RKApprox(1, 0.1), difTol)
	s.Accumulate(1, 4.0)
	require.InDelta(t, 1.2, s.RKApprox(2, 0.1), difTol)
	s.Accumulate(2, 1.0)
	require.InDelta(t, 1.1, s.RKApprox(3, 0.1), difTol)
}

func TestRKApproxClampsNonNegative(t *testing.T) {
	s := NewSpecies(Protein, 0, 0, 0.0)
	s.Accumulate(0, -10.0)
	require.Equal(t, 0.0, s.RKApprox(1, 0.1))
}

func TestCommitUpdatesTrajectoryAndClamps(t *testing.T) {
	s := NewSpecies(Protein, 0, 0, 0.0)
	s.Accumulate(0, -100)
	s.Accumulate(1, -100)
	s.Accumulate(2, -100)
	s.Accumulate(3, -100)
	s.Commit(0.1)
	require.Equal(t, 0.0, s.Concentration)
	require.Equal(t, []float64{0.0}, s.Trajectory)
	require.Equal(t, [4]float64{}, s.k)
}

func TestOscillationCounting(t *testing.T) {
	s := NewSpecies(Protein, 0, 0, 0.0)
	// Manually drive commits through a rise, fall, rise pattern with
	// deltas well above directionEpsilon.
	steps := []float64{1, 1, -1, -1, 1, 1}
	for _, d := range steps {
		s.Accumulate(0, 6*d)
		s.Commit(1.0)
	}
	require.Equal(t, 2, s.OscillationCount)
}

func TestResetClearsState(t *testing.T) {
	s := NewSpecies(Protein, 0, 0, 3.0)
	s.Accumulate(0, 10)
	s.Commit(1.0)
	s.Reset()
	require.Equal(t, 3.0, s.Concentration)
	require.Equal(t, []float64{3.0}, s.Trajectory)
	require.Equal(t, 0, s.OscillationCount)
}

func TestShortName(t *testing.T) {
	s := NewSpecies(Complex, 0, 7, 0)
	require.Equal(t, "c7", s.ShortName())
}

func TestBound(t *testing.T) {
	s := NewSpecies(DNA, 0, 0, 0)
	require.False(t, s.Bound())
	s.PromoterArc = 4
	require.True(t, s.Bound())
}
