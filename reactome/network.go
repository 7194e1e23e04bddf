// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reactome owns the reaction graph and drives mutation,
// integration and scoring over it. It is the layer that binds the
// graph, species and interaction packages together, the way
// axon/prjn.go binds a projection's source and receiving layers.
package reactome

import (
	"github.com/rs/zerolog"

	"github.com/mdhelgen/EvoDevo/graph"
	"github.com/mdhelgen/EvoDevo/interaction"
	"github.com/mdhelgen/EvoDevo/internal/rng"
	"github.com/mdhelgen/EvoDevo/species"
)

// Limits bundles the numeric knobs every mutation operator and the
// integrators need: rate bounds, per-kind caps and defaults.
type Limits struct {
	MinRate, MaxRate     float64
	MaxBasic             int
	MaxPTM               int
	MaxComplex           int
	MaxPromoter          int
	InitialConcentration float64
	Hill                 int
}

// DefaultLimits mirrors the original default configuration: a
// generous rate band and small per-kind caps suitable for a handful
// of generations of exploration.
func DefaultLimits() Limits {
	return Limits{
		MinRate:              0.01,
		MaxRate:              1.0,
		MaxBasic:             4,
		MaxPTM:               4,
		MaxComplex:           4,
		MaxPromoter:          4,
		InitialConcentration: 1.0,
		Hill:                 2,
	}
}

// Network is a reaction graph plus its arena tables and per-kind
// index lists. It owns its RNG and logger; a Cell owns exactly one
// Network, never sharing it with another cell.
type Network struct {
	g            *graph.Graph
	speciesByID  map[graph.NodeID]*species.Species
	arcsByID     map[graph.ArcID]*interaction.Interaction
	limits       Limits
	rng          rng.Source
	log          zerolog.Logger
	nullNode     graph.NodeID
	nextDomainID int

	dna        []graph.NodeID
	mrna       []graph.NodeID
	protein    []graph.NodeID
	complex    []graph.NodeID
	ptmProtein []graph.NodeID

	transcription       []graph.ArcID
	translation         []graph.ArcID
	degradation         []graph.ArcID
	forwardComplexation []graph.ArcID
	reverseComplexation []graph.ArcID
	forwardPTM          []graph.ArcID
	reversePTM          []graph.ArcID
	promoterBind        []graph.ArcID
}

// New returns a network with a single Null species and no arcs.
func New(limits Limits, r rng.Source, log zerolog.Logger) *Network {
	n := &Network{
		g:           graph.New(),
		speciesByID: make(map[graph.NodeID]*species.Species),
		arcsByID:    make(map[graph.ArcID]*interaction.Interaction),
		limits:      limits,
		rng:         r,
		log:         log,
	}
	nullNode := n.g.AddNode()
	n.nullNode = nullNode
	n.speciesByID[nullNode] = species.NewSpecies(species.Null, nullNode, n.allocDomainID(), 0)
	return n
}

func (n *Network) allocDomainID() int {
	id := n.nextDomainID
	n.nextDomainID++
	return id
}

// --- interaction.Network surface ---

func (n *Network) Source(a graph.ArcID) graph.NodeID { return n.g.Source(a) }
func (n *Network) Target(a graph.ArcID) graph.NodeID { return n.g.Target(a) }

func (n *Network) RKApprox(node graph.NodeID, stage int, h float64) float64 {
	return n.speciesByID[node].RKApprox(stage, h)
}

func (n *Network) Interaction(a graph.ArcID) *interaction.Interaction { return n.arcsByID[a] }

// PromoterArc returns the arc currently bound to a DNA node, or
// interaction.NoArc if it is unbound or dna is not a DNA species.
func (n *Network) PromoterArc(dna graph.NodeID) graph.ArcID {
	s, ok := n.speciesByID[dna]
	if !ok || s.Kind != species.DNA {
		return interaction.NoArc
	}
	return s.PromoterArc
}

// --- accessors ---

// Species returns the species payload for node, or nil if unknown.
func (n *Network) Species(node graph.NodeID) *species.Species { return n.speciesByID[node] }

// AllSpecies returns every species in insertion order.
func (n *Network) AllSpecies() []*species.Species {
	ids := n.g.NodeIDs()
	out := make([]*species.Species, 0, len(ids))
	for _, id := range ids {
		out = append(out, n.speciesByID[id])
	}
	return out
}

// AllInteractions returns every interaction in insertion order.
func (n *Network) AllInteractions() []*interaction.Interaction {
	ids := n.g.Arcs()
	out := make([]*interaction.Interaction, 0, len(ids))
	for _, id := range ids {
		out = append(out, n.arcsByID[id])
	}
	return out
}

// NullNode returns the shared degradation sink.
func (n *Network) NullNode() graph.NodeID { return n.nullNode }

// Graph exposes the underlying graph, e.g. for the DOT emitter.
func (n *Network) Graph() *graph.Graph { return n.g }

// Limits returns the network's numeric knobs.
func (n *Network) Limits() Limits { return n.limits }

func (n *Network) addSpecies(kind species.Kind, id int) (graph.NodeID, *species.Species) {
	node := n.g.AddNode()
	s := species.NewSpecies(kind, node, id, n.limits.InitialConcentration)
	if kind == species.DNA {
		s.Hill = n.limits.Hill
	}
	n.speciesByID[node] = s
	return node, s
}

func (n *Network) addArc(kind interaction.Kind, from, to graph.NodeID, rate float64) *interaction.Interaction {
	arc := n.g.AddArc(from, to)
	i := interaction.New(kind, arc, rate)
	n.arcsByID[arc] = i
	return i
}

func (n *Network) addDegradation(target graph.NodeID) {
	i := n.addArc(interaction.Degradation, target, n.nullNode, n.randomRate())
	n.degradation = append(n.degradation, i.Arc)
}

func (n *Network) randomRate() float64 {
	return rng.Range(n.rng, n.limits.MinRate, n.limits.MaxRate)
}
