// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import "github.com/gogpu/fxchain/effect"

// Graph is the arena that owns every Node in an effect chain. The zero
// value is ready to use.
type Graph struct {
	nodes []*Node
}

// Len returns the number of nodes in the arena, including disabled ones.
func (g *Graph) Len() int { return len(g.nodes) }

// Node dereferences a handle. Panics if h is out of range.
func (g *Graph) Node(h NodeHandle) *Node {
	invariant(int(h) >= 0 && int(h) < len(g.nodes), "graph: node handle %d out of range", h)
	return g.nodes[h]
}

// Handles returns every handle currently in the arena, in allocation
// order.
func (g *Graph) Handles() []NodeHandle {
	out := make([]NodeHandle, len(g.nodes))
	for i := range g.nodes {
		out[i] = NodeHandle(i)
	}
	return out
}

func (g *Graph) addNode(eff effect.Effect) NodeHandle {
	g.nodes = append(g.nodes, newNode(eff))
	return NodeHandle(len(g.nodes) - 1)
}

// AddInput adds a zero-input effect (a texture source) to the graph.
func (g *Graph) AddInput(eff effect.Effect) NodeHandle {
	invariant(eff.NumInputs() == 0, "graph: AddInput effect %q declares %d inputs, want 0", eff.EffectTypeID(), eff.NumInputs())
	return g.addNode(eff)
}

// AddEffect adds eff to the graph, connected from parents in input
// order. len(parents) must equal eff.NumInputs().
func (g *Graph) AddEffect(eff effect.Effect, parents []NodeHandle) NodeHandle {
	invariant(len(parents) == eff.NumInputs(),
		"graph: AddEffect effect %q given %d parents, want %d", eff.EffectTypeID(), len(parents), eff.NumInputs())
	h := g.addNode(eff)
	for _, p := range parents {
		g.Connect(p, h)
	}
	return h
}

// NewDetachedNode adds eff to the arena with no edges at all. It exists
// for the repair planner, which splices a freshly-constructed conversion
// node into an existing edge via InsertBetween rather than connecting it
// through AddEffect.
func (g *Graph) NewDetachedNode(eff effect.Effect) NodeHandle {
	return g.addNode(eff)
}

// Connect appends an edge sender -> receiver to both sides' adjacency
// lists. It does not check or maintain input ordering invariants on its
// own; callers that need ordered inputs use AddEffect or InsertBetween.
func (g *Graph) Connect(sender, receiver NodeHandle) {
	s, r := g.Node(sender), g.Node(receiver)
	s.Outgoing = append(s.Outgoing, receiver)
	r.Incoming = append(r.Incoming, sender)
}

// ReplaceReceiver transfers all of oldReceiver's incoming edges to
// newReceiver, fixing up each sender's outgoing list to point at
// newReceiver instead. oldReceiver ends up with no incoming edges.
func (g *Graph) ReplaceReceiver(oldReceiver, newReceiver NodeHandle) {
	old, nw := g.Node(oldReceiver), g.Node(newReceiver)
	nw.Incoming = old.Incoming
	old.Incoming = nil
	for _, sender := range nw.Incoming {
		s := g.Node(sender)
		for i, out := range s.Outgoing {
			if out == oldReceiver {
				s.Outgoing[i] = newReceiver
			}
		}
	}
}

// ReplaceSender transfers all of oldSender's outgoing edges to
// newSender, fixing up each receiver's incoming list to point at
// newSender instead. oldSender ends up with no outgoing edges.
func (g *Graph) ReplaceSender(oldSender, newSender NodeHandle) {
	old, nw := g.Node(oldSender), g.Node(newSender)
	nw.Outgoing = old.Outgoing
	old.Outgoing = nil
	for _, receiver := range nw.Outgoing {
		r := g.Node(receiver)
		for i, in := range r.Incoming {
			if in == oldSender {
				r.Incoming[i] = newSender
			}
		}
	}
}

// InsertBetween replaces the single edge sender -> receiver with
// sender -> middle -> receiver. middle must have exactly one free input
// slot for this edge; after InsertBetween, middle.Incoming must have
// exactly middle.Effect.NumInputs() entries.
func (g *Graph) InsertBetween(sender, middle, receiver NodeHandle) {
	s, m, r := g.Node(sender), g.Node(middle), g.Node(receiver)
	for i, out := range s.Outgoing {
		if out == receiver {
			s.Outgoing[i] = middle
			m.Incoming = append(m.Incoming, sender)
		}
	}
	for i, in := range r.Incoming {
		if in == sender {
			r.Incoming[i] = middle
			m.Outgoing = append(m.Outgoing, receiver)
		}
	}
	invariant(len(m.Incoming) == m.Effect.NumInputs(),
		"graph: InsertBetween left middle node %q with %d inputs wired, want %d",
		m.Effect.EffectTypeID(), len(m.Incoming), m.Effect.NumInputs())
}

// FindTerminal returns the unique enabled node with no outgoing edges.
// Panics if there is not exactly one (the finalize-time invariant from
// spec.md section 3).
func (g *Graph) FindTerminal() NodeHandle {
	var found []NodeHandle
	for i, n := range g.nodes {
		if n.Disabled {
			continue
		}
		if len(n.Outgoing) == 0 {
			found = append(found, NodeHandle(i))
		}
	}
	invariant(len(found) == 1, "graph: expected exactly one terminal node, found %d", len(found))
	return found[0]
}
