// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactome

import (
	"math"

	"github.com/mdhelgen/EvoDevo/interaction"
	"github.com/mdhelgen/EvoDevo/species"
)

// PromoterOccupancy is a read-only diagnostic (never consulted by the
// RK4 contribution table) reporting the Hill-cooperative fraction of
// a DNA's promoter left unoccupied by its repressor, at the DNA's
// current state: 1 / (1 + (kf/kr)*[regulator]^hill). An unbound DNA
// reports 1 (promoter entirely free).
func (n *Network) PromoterOccupancy(dna *species.Species) float64 {
	if dna.Kind != species.DNA || !dna.Bound() {
		return 1
	}
	pb := n.arcsByID[dna.PromoterArc]
	if pb == nil || pb.Kind != interaction.PromoterBind {
		return 1
	}
	regulator := n.speciesByID[n.g.Source(pb.Arc)]
	ratio := pb.Kf / pb.Kr
	return 1 / (1 + ratio*math.Pow(regulator.Value(), float64(dna.Hill)))
}
