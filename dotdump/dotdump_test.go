// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dotdump

import (
	"strings"
	"testing"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
)

type fakeEffect struct {
	effect.BaseEffect
	id     string
	inputs int
}

func (f *fakeEffect) EffectTypeID() string         { return f.id }
func (f *fakeEffect) NumInputs() int               { return f.inputs }
func (f *fakeEffect) OutputFragmentShader() string { return "" }

func TestDumpLabelsNodesAndOutputEdge(t *testing.T) {
	var g graph.Graph
	a := g.AddInput(&fakeEffect{id: "a"})
	_ = g.AddEffect(&fakeEffect{id: "b", inputs: 1}, []graph.NodeHandle{a})

	dot := Dump(&g, 0, nil)

	if !strings.Contains(dot, `label="a"`) || !strings.Contains(dot, `label="b"`) {
		t.Errorf("expected both node labels present, got:\n%s", dot)
	}
	if !strings.Contains(dot, "n0 -> n1") {
		t.Errorf("expected an edge from n0 to n1, got:\n%s", dot)
	}
	if !strings.Contains(dot, "n1 -> output") {
		t.Errorf("expected the terminal to connect to the synthetic output node, got:\n%s", dot)
	}
}

func TestDumpAnnotatesInvalidColorSpace(t *testing.T) {
	var g graph.Graph
	a := g.AddInput(&fakeEffect{id: "a"})
	g.Node(a).OutputColorSpace = effect.ColorSpaceInvalid

	dot := Dump(&g, a, nil)
	if !strings.Contains(dot, "spc[invalid]") {
		t.Errorf("expected spc[invalid] edge label for an unresolved color space, got:\n%s", dot)
	}
}

type recordingSink struct {
	steps  []int
	labels []string
	docs   []string
}

func (r *recordingSink) WriteDot(step int, label, dot string) error {
	r.steps = append(r.steps, step)
	r.labels = append(r.labels, label)
	r.docs = append(r.docs, dot)
	return nil
}

func TestSinkReceivesEachStep(t *testing.T) {
	var g graph.Graph
	g.AddInput(&fakeEffect{id: "a"})

	sink := &recordingSink{}
	sink.WriteDot(0, "start", Dump(&g, 0, nil))
	sink.WriteDot(1, "rewritten", Dump(&g, 0, nil))

	if len(sink.steps) != 2 || sink.labels[0] != "start" || sink.labels[1] != "rewritten" {
		t.Fatalf("unexpected sink recording: steps=%v labels=%v", sink.steps, sink.labels)
	}
}
