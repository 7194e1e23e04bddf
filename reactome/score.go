// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactome

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mdhelgen/EvoDevo/graph"
)

// BestSpeciesScore returns the maximum per-species oscillation count
// across the network, or 0 for a network with no species beyond Null.
func (n *Network) BestSpeciesScore() int {
	_, score := n.BestSpecies()
	return score
}

// BestSpecies returns the node and score of the highest-scoring
// species. Ties resolve to the first species in insertion order.
func (n *Network) BestSpecies() (graph.NodeID, int) {
	var bestNode graph.NodeID
	best := -1
	for _, id := range n.g.NodeIDs() {
		s := n.speciesByID[id]
		if sc := s.Score(); sc > best {
			best = sc
			bestNode = id
		}
	}
	if best < 0 {
		best = 0
	}
	return bestNode, best
}

// TrajectoryStats reports mean, standard deviation, min and max over a
// species' recorded trajectory, using gonum/stat. It returns all
// zeros for a species with an empty trajectory.
func (n *Network) TrajectoryStats(node graph.NodeID) (mean, stdev, min, max float64) {
	s := n.speciesByID[node]
	if len(s.Trajectory) == 0 {
		return 0, 0, 0, 0
	}
	mean, stdev = stat.MeanStdDev(s.Trajectory, nil)
	min, max = s.Trajectory[0], s.Trajectory[0]
	for _, v := range s.Trajectory[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return mean, stdev, min, max
}
