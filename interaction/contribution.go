// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interaction

import (
	"fmt"

	"github.com/mdhelgen/EvoDevo/graph"
)

// Network is the minimal surface Contribution needs from the owning
// reactome.Network: arc endpoints, RK4 stage reads, interaction
// lookups by arc, and a DNA's currently bound promoter arc. Defining
// it here (rather than importing reactome, which imports this
// package) keeps the dependency edge one-directional.
type Network interface {
	Source(a graph.ArcID) graph.NodeID
	Target(a graph.ArcID) graph.NodeID
	RKApprox(n graph.NodeID, stage int, h float64) float64
	Interaction(a graph.ArcID) *Interaction
	PromoterArc(dna graph.NodeID) graph.ArcID
}

// ShapeError reports that an interaction's contribution was asked to
// act on a node that is neither its source nor its target, or that an
// interaction's kind-specific preconditions were violated.
type ShapeError struct {
	Arc  graph.ArcID
	Kind Kind
	Node graph.NodeID
	Msg  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("interaction: arc %d (%s) node %d: %s", e.Arc, e.Kind, e.Node, e.Msg)
}

// Contribution computes this interaction's instantaneous
// rate-of-change contribution to node at the given RK4 stage, per the
// per-kind contribution table. node must be either the arc's source
// or target.
func (i *Interaction) Contribution(net Network, node graph.NodeID, stage int, h float64) (float64, error) {
	src := net.Source(i.Arc)
	tgt := net.Target(i.Arc)
	isSource := node == src
	isTarget := node == tgt
	if !isSource && !isTarget {
		return 0, &ShapeError{Arc: i.Arc, Kind: i.Kind, Node: node, Msg: "node is neither source nor target"}
	}

	switch i.Kind {
	case Transcription:
		if isSource {
			pbArc := net.PromoterArc(src)
			if pbArc == NoArc {
				return 0, nil
			}
			pb := net.Interaction(pbArc)
			if pb == nil {
				return 0, &ShapeError{Arc: i.Arc, Kind: i.Kind, Node: node, Msg: "DNA promoter arc not found"}
			}
			regulator := net.RKApprox(net.Source(pbArc), stage, h)
			dnaVal := net.RKApprox(src, stage, h)
			return -pb.Kf * dnaVal * regulator, nil
		}
		dnaVal := net.RKApprox(src, stage, h)
		return dnaVal * i.Rate, nil

	case Translation, ForwardPTM, ReversePTM:
		if isSource {
			return 0, nil
		}
		s := net.RKApprox(src, stage, h)
		return s * i.Rate, nil

	case Degradation:
		if isSource {
			s := net.RKApprox(src, stage, h)
			return -s * i.Rate, nil
		}
		return 0, nil

	case ForwardComplexation:
		if !i.Paired() {
			return 0, &ShapeError{Arc: i.Arc, Kind: i.Kind, Node: node, Msg: "missing pair arc"}
		}
		pair := net.Interaction(i.PairArc)
		s := net.RKApprox(src, stage, h)
		p := net.RKApprox(net.Source(pair.Arc), stage, h)
		if isSource {
			return -i.Rate * s * p, nil
		}
		return 0.5 * i.Rate * s * p, nil

	case ReverseComplexation:
		s := net.RKApprox(src, stage, h)
		if isSource {
			return -0.5 * i.Rate * s, nil
		}
		return i.Rate * s, nil

	case PromoterBind:
		if isSource {
			t := net.RKApprox(tgt, stage, h)
			return -t * i.Rate, nil
		}
		s := net.RKApprox(src, stage, h)
		return i.Kr * (1 - s), nil

	default:
		return 0, &ShapeError{Arc: i.Arc, Kind: i.Kind, Node: node, Msg: "unknown interaction kind"}
	}
}
