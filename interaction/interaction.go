// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interaction implements the kinetic-arc payload and its
// per-kind polymorphic derivative contribution. Interactions are held
// in an arena table keyed by graph.ArcID; the graph itself never sees
// this payload, mirroring the species package's separation.
//
// Dispatch is a tagged variant (Kind + a single Contribution switch)
// rather than an interface hierarchy with downcasts -- the
// re-architecture the design notes call out by name.
package interaction

import (
	"github.com/mdhelgen/EvoDevo/graph"
)

// Kind tags which of the eight kinetic-arc variants an Interaction is.
type Kind int

const (
	Transcription Kind = iota
	Translation
	Degradation
	ForwardComplexation
	ReverseComplexation
	ForwardPTM
	ReversePTM
	PromoterBind
)

func (k Kind) String() string {
	switch k {
	case Transcription:
		return "Transcription"
	case Translation:
		return "Translation"
	case Degradation:
		return "Degradation"
	case ForwardComplexation:
		return "ForwardComplexation"
	case ReverseComplexation:
		return "ReverseComplexation"
	case ForwardPTM:
		return "ForwardPTM"
	case ReversePTM:
		return "ReversePTM"
	case PromoterBind:
		return "PromoterBind"
	default:
		return "Unknown"
	}
}

// NoArc is the sentinel for Interaction.PairArc when an interaction
// has no paired sibling.
const NoArc graph.ArcID = -1

// BindMode distinguishes the two ways a PromoterBind can act on its
// DNA target.
type BindMode int

const (
	Repression BindMode = iota
	Activation
)

// Interaction is the arc payload for one kinetic interaction.
type Interaction struct {
	Kind Kind
	Arc  graph.ArcID

	Rate float64

	// PromoterBind-specific.
	Kf   float64
	Kr   float64
	Mode BindMode

	// ForwardComplexation / ReverseComplexation-specific: the sibling
	// arc attached to the other monomer of the same complex.
	PairArc graph.ArcID
}

// New returns an Interaction of the given kind on arc a with rate r.
func New(kind Kind, a graph.ArcID, rate float64) *Interaction {
	return &Interaction{Kind: kind, Arc: a, Rate: rate, PairArc: NoArc}
}

// NewPromoterBind returns a PromoterBind interaction. Rate is derived
// as Kf - Kr per the component design.
func NewPromoterBind(a graph.ArcID, kf, kr float64) *Interaction {
	return &Interaction{
		Kind:    PromoterBind,
		Arc:     a,
		Rate:    kf - kr,
		Kf:      kf,
		Kr:      kr,
		Mode:    Repression,
		PairArc: NoArc,
	}
}

// Paired reports whether this interaction has a sibling arc set.
func (i *Interaction) Paired() bool { return i.PairArc != NoArc }
