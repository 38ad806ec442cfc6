// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"testing"

	"github.com/gogpu/fxchain/effect"
)

// fakeEffect is the minimal effect.Effect used across this package's
// tests: enough structure to wire into a graph, nothing more.
type fakeEffect struct {
	effect.BaseEffect
	id     string
	inputs int
}

func (f *fakeEffect) EffectTypeID() string          { return f.id }
func (f *fakeEffect) NumInputs() int                { return f.inputs }
func (f *fakeEffect) OutputFragmentShader() string  { return "" }

func TestAddInputRejectsNonZeroInputs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected AddInput to panic for an effect declaring inputs")
		}
	}()
	var g Graph
	g.AddInput(&fakeEffect{id: "bad", inputs: 1})
}

func TestHandlesStableAcrossInsertion(t *testing.T) {
	var g Graph
	a := g.AddInput(&fakeEffect{id: "a"})
	b := g.AddEffect(&fakeEffect{id: "b", inputs: 1}, []NodeHandle{a})

	if g.Node(a).Effect.EffectTypeID() != "a" {
		t.Fatalf("handle a no longer resolves to effect a")
	}
	if g.Node(b).Effect.EffectTypeID() != "b" {
		t.Fatalf("handle b no longer resolves to effect b")
	}
	if len(g.Node(a).Outgoing) != 1 || g.Node(a).Outgoing[0] != b {
		t.Fatalf("a.Outgoing = %v, want [%v]", g.Node(a).Outgoing, b)
	}
}

func TestFindTerminalRequiresExactlyOne(t *testing.T) {
	var g Graph
	a := g.AddInput(&fakeEffect{id: "a"})
	b := g.AddInput(&fakeEffect{id: "b"})

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected FindTerminal to panic with two terminals")
			}
		}()
		g.FindTerminal()
	}()

	g.AddEffect(&fakeEffect{id: "c", inputs: 2}, []NodeHandle{a, b})
	if term := g.FindTerminal(); g.Node(term).Effect.EffectTypeID() != "c" {
		t.Fatalf("FindTerminal = %q, want c", g.Node(term).Effect.EffectTypeID())
	}
}

func TestInsertBetween(t *testing.T) {
	var g Graph
	a := g.AddInput(&fakeEffect{id: "a"})
	b := g.AddEffect(&fakeEffect{id: "b", inputs: 1}, []NodeHandle{a})
	mid := g.NewDetachedNode(&fakeEffect{id: "mid", inputs: 1})

	g.InsertBetween(a, mid, b)

	if len(g.Node(a).Outgoing) != 1 || g.Node(a).Outgoing[0] != mid {
		t.Fatalf("a.Outgoing = %v, want [mid]", g.Node(a).Outgoing)
	}
	if len(g.Node(b).Incoming) != 1 || g.Node(b).Incoming[0] != mid {
		t.Fatalf("b.Incoming = %v, want [mid]", g.Node(b).Incoming)
	}
	if len(g.Node(mid).Incoming) != 1 || len(g.Node(mid).Outgoing) != 1 {
		t.Fatalf("mid not spliced correctly: incoming=%v outgoing=%v", g.Node(mid).Incoming, g.Node(mid).Outgoing)
	}
}

func TestTopologicalSortIsStableAndOrdered(t *testing.T) {
	var g Graph
	a := g.AddInput(&fakeEffect{id: "a"})
	b := g.AddInput(&fakeEffect{id: "b"})
	c := g.AddEffect(&fakeEffect{id: "c", inputs: 2}, []NodeHandle{a, b})

	first := g.TopologicalSort(c)
	second := g.TopologicalSort(c)

	if len(first) != 3 || first[len(first)-1] != c {
		t.Fatalf("TopologicalSort = %v, want 3 nodes ending at c", first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("TopologicalSort not stable: %v vs %v", first, second)
		}
	}
}

func TestTopologicalSortSkipsDisabled(t *testing.T) {
	var g Graph
	a := g.AddInput(&fakeEffect{id: "a"})
	b := g.AddEffect(&fakeEffect{id: "b", inputs: 1}, []NodeHandle{a})
	g.Node(a).Disabled = true

	order := g.TopologicalSort(b)
	for _, h := range order {
		if h == a {
			t.Fatalf("TopologicalSort included disabled node a: %v", order)
		}
	}
}
