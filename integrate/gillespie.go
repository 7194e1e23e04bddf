// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/mdhelgen/EvoDevo/graph"
	"github.com/mdhelgen/EvoDevo/interaction"
	"github.com/mdhelgen/EvoDevo/internal/rng"
	"github.com/mdhelgen/EvoDevo/reactome"
)

// TimeModel selects how Gillespie draws the inter-event time. See the
// design notes' open question on the source's uniform draw.
type TimeModel int

const (
	// GillespieUniformDt preserves the source's draw verbatim: a
	// uniform sample from [0, uniformDtBound), independent of the
	// total propensity. This is very likely a modelling bug relative
	// to the textbook algorithm, kept as the default because it is
	// what the original produces.
	GillespieUniformDt TimeModel = iota
	// GillespieExponentialDt draws -ln(u)/A, the textbook exponential
	// inter-event time for a total propensity A.
	GillespieExponentialDt
)

// uniformDtBound is the source's fixed upper bound for its uniform
// inter-event draw.
const uniformDtBound = 0.05

// MolarVolumeUnit converts between continuous concentration and
// discrete molecule count, following chem.CoToN/CoFmN's convention.
// Defaulting to 1 means counts and concentrations coincide unless a
// cell overrides it.
const defaultMolarVolumeUnit = 1.0

// Gillespie runs a discrete-event stochastic simulation over a
// reactome.Network's current arc set.
type Gillespie struct {
	Net             *reactome.Network
	Log             zerolog.Logger
	TimeModel       TimeModel
	MolarVolumeUnit float64
	RNG             rng.Source

	counts map[graph.NodeID]float64
}

// NewGillespie returns a simulator bound to net that draws event and
// time samples from r; the Experiment loop passes each cell's own
// stream so draws stay independent per cell.
func NewGillespie(net *reactome.Network, r rng.Source, log zerolog.Logger) *Gillespie {
	return &Gillespie{
		Net:             net,
		Log:             log,
		TimeModel:       GillespieUniformDt,
		MolarVolumeUnit: defaultMolarVolumeUnit,
		RNG:             r,
	}
}

func (g *Gillespie) coToN(conc float64) float64 { return math.Round(conc / g.MolarVolumeUnit) }
func (g *Gillespie) nToCo(n float64) float64    { return n * g.MolarVolumeUnit }

// Simulate resets every species, seeds discrete molecule counts from
// their initial concentrations, and runs events until t reaches limit.
// A network with zero total propensity (e.g. no arcs, or every rate
// zero) returns immediately after recording the seeded state.
func (g *Gillespie) Simulate(limit float64) error {
	if limit < 0 {
		return &reactome.Error{Kind: reactome.NumericDomain, Msg: "Gillespie limit must be non-negative"}
	}
	g.Net.ResetAll()
	g.counts = make(map[graph.NodeID]float64)
	for _, s := range g.Net.AllSpecies() {
		g.counts[s.Node] = g.coToN(s.Value())
	}

	arcs := g.Net.AllInteractions()
	t := 0.0
	for t < limit {
		total := 0.0
		propensities := make([]float64, len(arcs))
		for idx, i := range arcs {
			if !stochasticKind(i.Kind) {
				continue
			}
			src := g.Net.Source(i.Arc)
			p := i.Rate * g.counts[src]
			propensities[idx] = p
			total += p
		}
		if total <= 0 {
			break
		}

		dt := g.sampleDt(total)
		t += dt
		if t > limit {
			break
		}

		pick := g.RNG.Float64() * total
		var chosen *interaction.Interaction
		acc := 0.0
		for idx, i := range arcs {
			acc += propensities[idx]
			if acc >= pick {
				chosen = i
				break
			}
		}
		if chosen == nil {
			chosen = arcs[len(arcs)-1]
		}
		g.applyEvent(chosen)
	}
	return nil
}

func stochasticKind(k interaction.Kind) bool {
	switch k {
	case interaction.Transcription, interaction.Translation, interaction.Degradation,
		interaction.ForwardPTM, interaction.ReversePTM:
		return true
	default:
		return false
	}
}

func (g *Gillespie) sampleDt(total float64) float64 {
	switch g.TimeModel {
	case GillespieExponentialDt:
		u := g.RNG.Float64()
		for u == 0 {
			u = g.RNG.Float64()
		}
		return -math.Log(u) / total
	default:
		return g.RNG.Float64() * uniformDtBound
	}
}

func (g *Gillespie) applyEvent(i *interaction.Interaction) {
	src := g.Net.Source(i.Arc)
	tgt := g.Net.Target(i.Arc)

	switch i.Kind {
	case interaction.Transcription:
		g.counts[tgt]++
	case interaction.Translation, interaction.ForwardPTM, interaction.ReversePTM:
		g.counts[src]--
		g.counts[tgt]++
	case interaction.Degradation:
		g.counts[src]--
	}
	if g.counts[src] < 0 {
		g.counts[src] = 0
	}
	if g.counts[tgt] < 0 {
		g.counts[tgt] = 0
	}

	g.recordCount(src)
	g.recordCount(tgt)
}

func (g *Gillespie) recordCount(n graph.NodeID) {
	s := g.Net.Species(n)
	s.RecordPoint(g.nToCo(g.counts[n]))
}
