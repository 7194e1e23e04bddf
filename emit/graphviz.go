// Copyright (c) 2024, The EvoDevo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emit

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/iterator"

	"github.com/mdhelgen/EvoDevo/cell"
	"github.com/mdhelgen/EvoDevo/graph"
	"github.com/mdhelgen/EvoDevo/reactome"
)

// dotNode adapts one species to gonum's graph.Node, plus dot.Node and
// dot.Attributer so the rendering carries the species' short name and
// live concentration instead of a bare numeric id.
type dotNode struct {
	id  int64
	net *reactome.Network
}

func (n dotNode) ID() int64 { return n.id }

func (n dotNode) DOTID() string {
	s := n.net.Species(graph.NodeID(n.id))
	if s == nil {
		return fmt.Sprintf("n%d", n.id)
	}
	return s.ShortName()
}

func (n dotNode) Attributes() []encoding.Attribute {
	s := n.net.Species(graph.NodeID(n.id))
	if s == nil {
		return nil
	}
	label := fmt.Sprintf("%s\\n%.3g", s.ShortName(), s.Value())
	return []encoding.Attribute{{Key: "label", Value: fmt.Sprintf("%q", label)}}
}

// dotEdge adapts one interaction arc to gonum's graph.Edge plus
// dot.Attributer, labelling the edge with its kind.
type dotEdge struct {
	from, to int64
	arc      graph.ArcID
	net      *reactome.Network
}

func (e dotEdge) From() gonumgraph.Node { return dotNode{id: e.from, net: e.net} }
func (e dotEdge) To() gonumgraph.Node   { return dotNode{id: e.to, net: e.net} }
func (e dotEdge) ReversedEdge() gonumgraph.Edge {
	return dotEdge{from: e.to, to: e.from, arc: e.arc, net: e.net}
}

func (e dotEdge) Attributes() []encoding.Attribute {
	i := e.net.Interaction(e.arc)
	if i == nil {
		return nil
	}
	return []encoding.Attribute{{Key: "label", Value: fmt.Sprintf("%q", i.Kind.String())}}
}

// dotGraph wraps a *reactome.Network so gonum's dot encoder can walk
// the reaction network directly, without a bespoke export step, per
// the typed-graph package's own design note that the arena graph
// already satisfies gonum's Directed interface.
type dotGraph struct {
	net *reactome.Network
}

func (dg dotGraph) Node(id int64) gonumgraph.Node {
	if !dg.net.Graph().HasNode(graph.NodeID(id)) {
		return nil
	}
	return dotNode{id: id, net: dg.net}
}

func (dg dotGraph) Nodes() gonumgraph.Nodes {
	ids := dg.net.Graph().NodeIDs()
	ns := make([]gonumgraph.Node, len(ids))
	for i, id := range ids {
		ns[i] = dotNode{id: int64(id), net: dg.net}
	}
	return iterator.NewOrderedNodes(ns)
}

func (dg dotGraph) From(id int64) gonumgraph.Nodes {
	g := dg.net.Graph()
	out := g.OutArcs(graph.NodeID(id))
	seen := make(map[graph.NodeID]bool, len(out))
	var ns []gonumgraph.Node
	for _, a := range out {
		t := g.Target(a)
		if !seen[t] {
			seen[t] = true
			ns = append(ns, dotNode{id: int64(t), net: dg.net})
		}
	}
	return iterator.NewOrderedNodes(ns)
}

func (dg dotGraph) To(id int64) gonumgraph.Nodes {
	g := dg.net.Graph()
	in := g.InArcs(graph.NodeID(id))
	seen := make(map[graph.NodeID]bool, len(in))
	var ns []gonumgraph.Node
	for _, a := range in {
		s := g.Source(a)
		if !seen[s] {
			seen[s] = true
			ns = append(ns, dotNode{id: int64(s), net: dg.net})
		}
	}
	return iterator.NewOrderedNodes(ns)
}

func (dg dotGraph) HasEdgeBetween(xid, yid int64) bool {
	return dg.net.Graph().HasEdgeBetween(xid, yid)
}

func (dg dotGraph) HasEdgeFromTo(uid, vid int64) bool {
	return dg.net.Graph().HasEdgeFromTo(uid, vid)
}

func (dg dotGraph) Edge(uid, vid int64) gonumgraph.Edge {
	g := dg.net.Graph()
	for _, a := range g.OutArcs(graph.NodeID(uid)) {
		if g.Target(a) == graph.NodeID(vid) {
			return dotEdge{from: uid, to: vid, arc: a, net: dg.net}
		}
	}
	return nil
}

// graphvizPNG encodes c.Net to DOT text and pipes it through the
// external dot binary to produce Cell<c>Gen<g>.png. Per the external
// interfaces design, dot's absence is not an error: a failure to
// start or run it is reported as a soft IoEmission.
func (e *Emitter) graphvizPNG(dir string, gen int, c *cell.Cell) error {
	name := fmt.Sprintf("Cell%dGen%d", c.ID, gen)
	data, err := dot.Marshal(dotGraph{net: c.Net}, name, "", "  ")
	if err != nil {
		return &reactome.Error{Kind: reactome.IoEmission, Msg: "dot marshal failed", Cause: err}
	}

	out := filepath.Join(dir, name+".png")
	cmd := exec.Command("dot", "-Tpng", "-o", out)
	cmd.Stdin = bytes.NewReader(data)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &reactome.Error{Kind: reactome.IoEmission, Msg: "dot subprocess: " + stderr.String(), Cause: err}
	}
	return nil
}
