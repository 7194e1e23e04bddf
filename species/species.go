// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package species implements the molecular-species vertex payload:
// concentration state, RK4 staging buffers, trajectory recording and
// oscillation scoring. Species are held in an arena table keyed by
// graph.NodeID; the graph itself never sees this payload.
package species

import (
	"strconv"

	"github.com/mdhelgen/EvoDevo/graph"
)

// Kind tags which of the six molecular-species variants a Species is.
// This is the tagged-variant redesign called out in the design notes:
// a single switch on Kind replaces virtual dispatch and downcasts.
type Kind int

const (
	Null Kind = iota
	DNA
	MRNA
	Protein
	Complex
	PTMProtein
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case DNA:
		return "DNA"
	case MRNA:
		return "mRNA"
	case Protein:
		return "Protein"
	case Complex:
		return "Complex"
	case PTMProtein:
		return "PTMProtein"
	default:
		return "Unknown"
	}
}

// NoArc is the sentinel value for Species.PromoterArc when a DNA is
// unbound.
const NoArc graph.ArcID = -1

// directionEpsilon suppresses floating-point noise when deciding
// whether a trajectory changed direction between committed points.
const directionEpsilon = 1e-4

// Species is the vertex payload for one molecular species.
type Species struct {
	Kind Kind
	// ID is the domain identifier shared across one cassette's DNA,
	// mRNA and Protein triple (distinct from Node, the graph index).
	ID int
	// Node is this species' position in the owning graph's arena.
	Node graph.NodeID

	InitialConcentration float64
	Concentration        float64

	k [4]float64

	Trajectory       []float64
	currentDir       int
	OscillationCount int
	Minima           []float64
	Maxima           []float64

	// DNA-specific.
	PromoterArc   graph.ArcID
	Hill          int
	HistoneFactor float64

	// Complex-specific.
	ComponentA, ComponentB graph.NodeID

	// PTMProtein-specific: four independent modification slots.
	Modifications [4]int
}

// NewSpecies returns a Species of the given kind seeded at node n with
// initial concentration c. DNA-specific fields default to unbound
// (PromoterArc = NoArc) and HistoneFactor = 1 (neutral).
func NewSpecies(kind Kind, n graph.NodeID, id int, c float64) *Species {
	s := &Species{
		Kind:                 kind,
		ID:                   id,
		Node:                 n,
		InitialConcentration: c,
		Concentration:        c,
		PromoterArc:          NoArc,
		HistoneFactor:        1,
	}
	return s
}

// Value returns the quantity the integrator should treat as this
// species' current reading: concentration for most kinds, 0 for the
// Null sink, and the histone factor for DNA (its transcriptional
// availability, not a molecule count).
func (s *Species) Value() float64 {
	switch s.Kind {
	case Null:
		return 0
	case DNA:
		return s.HistoneFactor
	default:
		return s.Concentration
	}
}

// RKApprox returns the value the integrator should read at the given
// RK4 stage with step h. Stage 1 and 2 read the half-step estimate
// built from the previous stage's accumulated derivative; stage 3
// reads the full-step estimate. The result never goes negative.
func (s *Species) RKApprox(stage int, h float64) float64 {
	v := s.Value()
	switch stage {
	case 0:
		// v already holds Value().
	case 1:
		v += s.k[0] * h / 2
	case 2:
		v += s.k[1] * h / 2
	case 3:
		v += s.k[2] * h
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Accumulate adds delta into this stage's derivative accumulator.
func (s *Species) Accumulate(stage int, delta float64) {
	s.k[stage] += delta
}

// Commit applies the weighted RK4 average of the four stage
// derivatives, clamps to non-negative, appends the new value to the
// trajectory, updates oscillation bookkeeping, and zeroes the stage
// buffer for the next step. Null and DNA species still commit (DNA's
// Concentration field is otherwise unused, but keeping the same code
// path for every kind avoids a kind-conditional in the integrator).
func (s *Species) Commit(h float64) {
	delta := h / 6 * (s.k[0] + 2*s.k[1] + 2*s.k[2] + s.k[3])
	next := s.Concentration + delta
	if next < 0 {
		next = 0
	}
	s.RecordPoint(next)
	s.k = [4]float64{}
}

// RecordPoint appends next to the trajectory, updates direction and
// oscillation-count bookkeeping against the previous concentration,
// and sets Concentration to next. Used directly by Commit, and by the
// Gillespie simulator (which has no RK4 stage buffer to clear) to
// share the same scoring bookkeeping across both integrators.
func (s *Species) RecordPoint(next float64) {
	s.recordDirection(next)
	s.Concentration = next
	s.Trajectory = append(s.Trajectory, next)
}

func (s *Species) recordDirection(next float64) {
	diff := next - s.Concentration
	dir := 0
	switch {
	case diff > directionEpsilon:
		dir = 1
	case diff < -directionEpsilon:
		dir = -1
	}
	if dir == 0 {
		return
	}
	if s.currentDir != 0 && dir != s.currentDir {
		s.OscillationCount++
		if s.currentDir > 0 {
			s.Maxima = append(s.Maxima, s.Concentration)
		} else {
			s.Minima = append(s.Minima, s.Concentration)
		}
	}
	s.currentDir = dir
}

// Reset clears trajectory and staging state and reseeds Concentration
// from InitialConcentration, ready for a fresh integration run. The
// trajectory starts seeded with that single initial point, matching
// the integrator's t=0 state even before any step runs.
func (s *Species) Reset() {
	s.Concentration = s.InitialConcentration
	s.Trajectory = []float64{s.InitialConcentration}
	s.Minima = nil
	s.Maxima = nil
	s.currentDir = 0
	s.OscillationCount = 0
	s.k = [4]float64{}
}

// Score is this species' contribution to the network's fitness.
func (s *Species) Score() int { return s.OscillationCount }

// Bound reports whether this DNA species currently has a promoter
// bound to it.
func (s *Species) Bound() bool { return s.Kind == DNA && s.PromoterArc != NoArc }

// ShortName follows the original output naming convention: a
// single-letter (or "ptm") kind prefix followed by the domain ID.
func (s *Species) ShortName() string {
	prefix := map[Kind]string{
		Null:       "n",
		DNA:        "g",
		MRNA:       "m",
		Protein:    "p",
		Complex:    "c",
		PTMProtein: "ptm",
	}[s.Kind]
	return prefix + strconv.Itoa(s.ID)
}
