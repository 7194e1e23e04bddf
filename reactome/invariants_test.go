// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactome

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mdhelgen/EvoDevo/internal/rng"
	"github.com/mdhelgen/EvoDevo/interaction"
	"github.com/mdhelgen/EvoDevo/species"
)

// checkInvariants asserts the five structural invariants from the
// testable-properties list hold for n, regardless of the mutation
// sequence that produced it.
func checkInvariants(t *testing.T, n *Network) {
	t.Helper()

	for _, s := range n.AllSpecies() {
		if s.Kind == species.Null {
			continue
		}
		degradations := 0
		for _, arc := range n.g.OutArcs(s.Node) {
			i := n.arcsByID[arc]
			if i.Kind == interaction.Degradation {
				require.Equal(t, n.nullNode, n.g.Target(arc), "degradation must target Null")
				degradations++
			}
		}
		require.Equal(t, 1, degradations, "species %s must have exactly one degradation arc", s.ShortName())

		if s.Kind == species.DNA {
			if s.PromoterArc != species.NoArc {
				pb := n.arcsByID[s.PromoterArc]
				require.Equal(t, interaction.PromoterBind, pb.Kind)
				require.Equal(t, s.Node, n.g.Target(s.PromoterArc))
			}
		}
	}

	seenPairs := make(map[[2]int]bool)
	for _, cNode := range n.complex {
		c := n.speciesByID[cNode]
		key := pairKey(int(c.ComponentA), int(c.ComponentB))
		require.False(t, seenPairs[key], "duplicate complex component pair")
		seenPairs[key] = true

		var fwd, rev []*interaction.Interaction
		for _, arc := range n.g.InArcs(cNode) {
			i := n.arcsByID[arc]
			if i.Kind == interaction.ForwardComplexation {
				fwd = append(fwd, i)
			}
		}
		for _, arc := range n.g.OutArcs(cNode) {
			i := n.arcsByID[arc]
			if i.Kind == interaction.ReverseComplexation {
				rev = append(rev, i)
			}
		}
		require.Len(t, fwd, 2)
		require.Len(t, rev, 2)
		require.Equal(t, fwd[0].Arc, fwd[1].PairArc)
		require.Equal(t, fwd[1].Arc, fwd[0].PairArc)
		require.Equal(t, rev[0].Arc, rev[1].PairArc)
		require.Equal(t, rev[1].Arc, rev[0].PairArc)
		require.InDelta(t, fwd[0].Rate, fwd[1].Rate, 1e-12)
		require.InDelta(t, rev[0].Rate, rev[1].Rate, 1e-12)
	}

	for _, i := range n.AllInteractions() {
		if i.Kind == interaction.PromoterBind {
			// PromoterBind's Rate is derived as Kf - Kr, not sampled
			// directly from [minRate, maxRate]; Kf > Kr is its own
			// validity criterion (see invariant 5).
			require.Greater(t, i.Kf, i.Kr)
			require.GreaterOrEqual(t, i.Kf, n.limits.MinRate-1e-9)
			require.LessOrEqual(t, i.Kf, n.limits.MaxRate+1e-9)
			require.GreaterOrEqual(t, i.Kr, n.limits.MinRate-1e-9)
			require.LessOrEqual(t, i.Kr, n.limits.MaxRate+1e-9)
			continue
		}
		require.GreaterOrEqual(t, i.Rate, n.limits.MinRate-1e-9)
		require.LessOrEqual(t, i.Rate, n.limits.MaxRate+1e-9)
	}
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func TestInvariantsHoldAcrossRandomMutationSequences(t *testing.T) {
	ops := []func(*Network) bool{
		(*Network).AddBasic,
		(*Network).AddPTM,
		(*Network).AddComplex,
		(*Network).AddPromoter,
		(*Network).PerturbForwardRate,
		(*Network).PerturbReverseRate,
		(*Network).PerturbDegradationRate,
		(*Network).PerturbHistone,
	}
	for seed := int64(1); seed <= 5; seed++ {
		r := rng.NewDefault(seed)
		n := New(DefaultLimits(), r, zerolog.Nop())
		n.AddBasic()
		for step := 0; step < 200; step++ {
			ops[r.Intn(len(ops))](n)
		}
		checkInvariants(t, n)
	}
}
