// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph implements the typed directed multigraph that
// underlies a reaction network. The graph owns no payload: nodes and
// arcs are opaque, never-reused identifiers into arena tables kept by
// the species and interaction packages. This mirrors the separation
// between a plain digraph and its side maps in DerivGraph -- a
// NodeMap and an ArcMap kept beside, not inside, the digraph.
//
// Graph additionally satisfies gonum.org/v1/gonum/graph's Node, Edge
// and Directed interfaces over the same arena, so the DOT encoder in
// the emit package can traverse it without a bespoke export step.
package graph

import (
	"fmt"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
)

// NodeID identifies a vertex. IDs are assigned sequentially starting
// at 0 and are never reused while the Graph exists.
type NodeID int64

// ArcID identifies a directed edge. IDs are assigned sequentially
// starting at 0 and are never reused while the Graph exists.
type ArcID int64

type arc struct {
	id     ArcID
	source NodeID
	target NodeID
}

// Graph is a directed multigraph: distinct arcs may share the same
// (source, target) pair. Node and arc identity is never reused.
type Graph struct {
	nodes []NodeID
	arcs  []arc

	out map[NodeID][]ArcID
	in  map[NodeID][]ArcID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		out: make(map[NodeID][]ArcID),
		in:  make(map[NodeID][]ArcID),
	}
}

// AddNode allocates and returns a new, unique NodeID.
func (g *Graph) AddNode() NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, id)
	return id
}

// AddArc allocates a new ArcID directed from -> to. Both endpoints
// must already exist; AddArc panics otherwise, since an arc to an
// unknown node is a programming error in every caller in this module,
// never a recoverable user-facing condition.
func (g *Graph) AddArc(from, to NodeID) ArcID {
	if !g.HasNode(from) || !g.HasNode(to) {
		panic(fmt.Sprintf("graph: AddArc endpoint out of range: %d -> %d", from, to))
	}
	id := ArcID(len(g.arcs))
	g.arcs = append(g.arcs, arc{id: id, source: from, target: to})
	g.out[from] = append(g.out[from], id)
	g.in[to] = append(g.in[to], id)
	return id
}

// HasNode reports whether id was allocated by this graph.
func (g *Graph) HasNode(id NodeID) bool {
	return id >= 0 && int64(id) < int64(len(g.nodes))
}

// HasArc reports whether id was allocated by this graph.
func (g *Graph) HasArc(id ArcID) bool {
	return id >= 0 && int64(id) < int64(len(g.arcs))
}

// Source returns the arc's source node.
func (g *Graph) Source(id ArcID) NodeID { return g.arcs[id].source }

// Target returns the arc's target node.
func (g *Graph) Target(id ArcID) NodeID { return g.arcs[id].target }

// OppositeNode returns the endpoint of id that is not n. ok is false
// if n is neither endpoint.
func (g *Graph) OppositeNode(id ArcID, n NodeID) (NodeID, bool) {
	a := g.arcs[id]
	switch n {
	case a.source:
		return a.target, true
	case a.target:
		return a.source, true
	default:
		return 0, false
	}
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []NodeID {
	out := make([]NodeID, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Arcs returns all arc IDs in insertion order.
func (g *Graph) Arcs() []ArcID {
	out := make([]ArcID, len(g.arcs))
	for i, a := range g.arcs {
		out[i] = a.id
	}
	return out
}

// NodeCount returns the number of nodes ever added.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// ArcCount returns the number of arcs ever added.
func (g *Graph) ArcCount() int { return len(g.arcs) }

// OutArcs returns the arcs leaving n, in insertion order.
func (g *Graph) OutArcs(n NodeID) []ArcID { return g.out[n] }

// InArcs returns the arcs entering n, in insertion order.
func (g *Graph) InArcs(n NodeID) []ArcID { return g.in[n] }

// --- gonum.org/v1/gonum/graph interfaces ---
//
// No interaction kind in this package ever produces two arcs sharing
// an ordered (from, to) pair, so this multigraph is also a faithful
// graph.Directed simple digraph; the rest of this module must keep
// holding ArcID as the only stable handle, never the (from, to) pair.

// simpleNode adapts a NodeID to gonum's graph.Node.
type simpleNode NodeID

func (n simpleNode) ID() int64 { return int64(n) }

// simpleEdge adapts an arc to gonum's graph.Edge.
type simpleEdge struct {
	from, to NodeID
}

func (e simpleEdge) From() gonumgraph.Node { return simpleNode(e.from) }
func (e simpleEdge) To() gonumgraph.Node   { return simpleNode(e.to) }
func (e simpleEdge) ReversedEdge() gonumgraph.Edge {
	return simpleEdge{from: e.to, to: e.from}
}

// Node implements gonum's graph.Directed.
func (g *Graph) Node(id int64) gonumgraph.Node {
	if !g.HasNode(NodeID(id)) {
		return nil
	}
	return simpleNode(id)
}

// Nodes implements gonum's graph.Directed.
func (g *Graph) Nodes() gonumgraph.Nodes {
	ns := make([]gonumgraph.Node, len(g.nodes))
	for i, id := range g.nodes {
		ns[i] = simpleNode(id)
	}
	return iterator.NewOrderedNodes(ns)
}

// From implements gonum's graph.Directed.
func (g *Graph) From(id int64) gonumgraph.Nodes {
	out := g.out[NodeID(id)]
	seen := make(map[NodeID]bool, len(out))
	var ns []gonumgraph.Node
	for _, a := range out {
		t := g.Target(a)
		if !seen[t] {
			seen[t] = true
			ns = append(ns, simpleNode(t))
		}
	}
	return iterator.NewOrderedNodes(ns)
}

// To implements gonum's graph.Directed.
func (g *Graph) To(id int64) gonumgraph.Nodes {
	in := g.in[NodeID(id)]
	seen := make(map[NodeID]bool, len(in))
	var ns []gonumgraph.Node
	for _, a := range in {
		s := g.Source(a)
		if !seen[s] {
			seen[s] = true
			ns = append(ns, simpleNode(s))
		}
	}
	return iterator.NewOrderedNodes(ns)
}

// HasEdgeBetween implements gonum's graph.Directed.
func (g *Graph) HasEdgeBetween(xid, yid int64) bool {
	return g.HasEdgeFromTo(xid, yid) || g.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo reports whether any arc runs uid -> vid.
func (g *Graph) HasEdgeFromTo(uid, vid int64) bool {
	for _, a := range g.out[NodeID(uid)] {
		if g.Target(a) == NodeID(vid) {
			return true
		}
	}
	return false
}

// Edge implements gonum's graph.Directed; when several arcs share the
// endpoints, the first in insertion order is returned, since gonum's
// simple-graph view has no notion of multiplicity.
func (g *Graph) Edge(uid, vid int64) gonumgraph.Edge {
	for _, a := range g.out[NodeID(uid)] {
		if g.Target(a) == NodeID(vid) {
			return simpleEdge{from: NodeID(uid), to: NodeID(vid)}
		}
	}
	return nil
}

