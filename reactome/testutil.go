// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactome

import (
	"github.com/mdhelgen/EvoDevo/graph"
	"github.com/mdhelgen/EvoDevo/interaction"
	"github.com/mdhelgen/EvoDevo/species"
)

// TestInjectSpecies registers s at node n, bypassing the mutation
// operators. It exists so integrate and emit package tests can build
// a minimal hand-wired network (e.g. a single isolated interaction)
// without going through AddBasic's full cassette. Not for production
// use.
func (n *Network) TestInjectSpecies(node graph.NodeID, s *species.Species) {
	n.speciesByID[node] = s
}

// TestInjectInteraction registers i at arc a, bypassing the mutation
// operators. See TestInjectSpecies.
func (n *Network) TestInjectInteraction(arc graph.ArcID, i *interaction.Interaction) {
	n.arcsByID[arc] = i
}
