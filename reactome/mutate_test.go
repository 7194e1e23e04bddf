// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactome

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mdhelgen/EvoDevo/interaction"
	"github.com/mdhelgen/EvoDevo/species"
)

type seqRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *seqRNG) Float64() float64 {
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *seqRNG) Intn(n int) int {
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

func newTestNetwork() *Network {
	r := &seqRNG{floats: []float64{0.1, 0.9, 0.3, 0.7, 0.9, 0.1, 0.5, 0.6}, ints: []int{0, 1, 0, 1}}
	return New(DefaultLimits(), r, zerolog.Nop())
}

func TestAddBasicCreatesCassette(t *testing.T) {
	n := newTestNetwork()
	ok := n.AddBasic()
	require.True(t, ok)
	require.Len(t, n.dna, 1)
	require.Len(t, n.mrna, 1)
	require.Len(t, n.protein, 1)
	require.Len(t, n.transcription, 1)
	require.Len(t, n.translation, 1)
	require.Len(t, n.degradation, 3)
}

func TestAddBasicCapEnforced(t *testing.T) {
	n := newTestNetwork()
	n.limits.MaxBasic = 2
	for i := 0; i < 10; i++ {
		n.AddBasic()
	}
	require.Len(t, n.dna, 2)
}

func TestAddPTMDeclinesWithoutParent(t *testing.T) {
	n := newTestNetwork()
	ok := n.AddPTM()
	require.False(t, ok)
}

func TestAddPTMCreatesSiblingArcs(t *testing.T) {
	n := newTestNetwork()
	n.AddBasic()
	ok := n.AddPTM()
	require.True(t, ok)
	require.Len(t, n.ptmProtein, 1)
	require.Len(t, n.forwardPTM, 1)
	require.Len(t, n.reversePTM, 1)
	require.Len(t, n.degradation, 4)
}

func TestAddComplexPairsAreSymmetric(t *testing.T) {
	n := newTestNetwork()
	n.AddBasic()
	n.AddBasic()
	ok := n.AddComplex()
	require.True(t, ok)
	require.Len(t, n.complex, 1)

	fwd := n.forwardComplexation
	require.Len(t, fwd, 2)
	a := n.arcsByID[fwd[0]]
	b := n.arcsByID[fwd[1]]
	require.Equal(t, a.Arc, b.PairArc)
	require.Equal(t, b.Arc, a.PairArc)
	require.InDelta(t, a.Rate, b.Rate, 1e-12)

	rev := n.reverseComplexation
	ra := n.arcsByID[rev[0]]
	rb := n.arcsByID[rev[1]]
	require.Equal(t, ra.Arc, rb.PairArc)
	require.Equal(t, rb.Arc, ra.PairArc)
}

func TestAddComplexRejectsDuplicatePair(t *testing.T) {
	n := newTestNetwork()
	n.AddBasic()
	n.AddBasic()
	require.True(t, n.AddComplex())
	// The candidates are now both proteins and the new complex, but the
	// stub RNG's Intn sequence (0, 1, 0, 1, ...) only ever proposes
	// indices 0 and 1 -- the already complexed protein pair -- so every
	// attempt is rejected and the second call must decline.
	ok := n.AddComplex()
	require.False(t, ok)
}

func TestAddPromoterSetsKfGreaterThanKr(t *testing.T) {
	n := newTestNetwork()
	n.AddBasic()
	ok := n.AddPromoter()
	require.True(t, ok)
	require.Len(t, n.promoterBind, 1)
	pb := n.arcsByID[n.promoterBind[0]]
	require.Greater(t, pb.Kf, pb.Kr)
	require.True(t, n.speciesByID[n.dna[0]].Bound())
}

func TestPerturbForwardRateKeepsPairInSync(t *testing.T) {
	n := newTestNetwork()
	n.AddBasic()
	n.AddBasic()
	n.AddComplex()
	ok := n.PerturbForwardRate()
	require.True(t, ok)
	for _, arc := range n.forwardComplexation {
		i := n.arcsByID[arc]
		if i.Paired() {
			require.InDelta(t, i.Rate, n.arcsByID[i.PairArc].Rate, 1e-12)
		}
	}
}

func TestPerturbHistoneRange(t *testing.T) {
	n := newTestNetwork()
	n.AddBasic()
	ok := n.PerturbHistone()
	require.True(t, ok)
	h := n.speciesByID[n.dna[0]].HistoneFactor
	require.GreaterOrEqual(t, h, 0.0)
	require.LessOrEqual(t, h, 2.0)
}

func TestDegradationTargetsNull(t *testing.T) {
	n := newTestNetwork()
	n.AddBasic()
	for _, arc := range n.degradation {
		i := n.arcsByID[arc]
		require.Equal(t, interaction.Degradation, i.Kind)
		require.Equal(t, n.nullNode, n.g.Target(i.Arc))
	}
}

func TestNullSpeciesValueIsZero(t *testing.T) {
	n := newTestNetwork()
	require.Equal(t, species.Null, n.speciesByID[n.nullNode].Kind)
	require.Equal(t, 0.0, n.speciesByID[n.nullNode].Value())
}
