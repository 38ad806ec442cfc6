// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package partition

import (
	"testing"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
)

type fakeInput struct {
	effect.BaseEffect
	id            string
	w, h          int
	singleTexture bool
}

func (f *fakeInput) EffectTypeID() string         { return f.id }
func (f *fakeInput) NumInputs() int               { return 0 }
func (f *fakeInput) OutputFragmentShader() string { return "" }
func (f *fakeInput) IsSingleTexture() bool        { return f.singleTexture }
func (f *fakeInput) Width() int                   { return f.w }
func (f *fakeInput) Height() int                  { return f.h }
func (f *fakeInput) ColorSpace() effect.ColorSpace { return effect.ColorSpaceSRGB }
func (f *fakeInput) GammaCurve() effect.GammaCurve { return effect.GammaSRGB }
func (f *fakeInput) CanOutputLinearGamma() bool    { return false }
func (f *fakeInput) CanSupplyMipmaps() bool        { return false }

type fakeStage struct {
	effect.BaseEffect
	id          string
	bounce      bool
	changesSize bool
	newW, newH  int
	oneToOne    bool
}

func (f *fakeStage) EffectTypeID() string         { return f.id }
func (f *fakeStage) NumInputs() int               { return 1 }
func (f *fakeStage) OutputFragmentShader() string { return "" }
func (f *fakeStage) NeedsTextureBounce() bool     { return f.bounce }
func (f *fakeStage) ChangesOutputSize() bool      { return f.changesSize }
func (f *fakeStage) OutputSize(w, h int) (int, int) {
	if f.changesSize {
		return f.newW, f.newH
	}
	return w, h
}
func (f *fakeStage) OneToOneSampling() bool { return f.oneToOne }

// Scenario 3: fan-out without a bounce demand stays in one phase.
func TestFanOutNoBounceStaysOnePhase(t *testing.T) {
	var g graph.Graph
	a := g.AddInput(&fakeInput{id: "a", w: 64, h: 64, singleTexture: true})
	b := g.AddEffect(&fakeStage{id: "b", oneToOne: true}, []graph.NodeHandle{a})
	c := g.AddEffect(&fakeStage{id: "c", oneToOne: true}, []graph.NodeHandle{a})
	root := g.AddEffect(&fakeStage{id: "root", oneToOne: true}, []graph.NodeHandle{b})
	g.Connect(c, root) // give root a second consumer edge so c is reachable too
	_ = root

	p := NewPartitioner(&g)
	phase := p.ConstructPhase(b)
	found := false
	for _, h := range phase.Effects {
		if h == a {
			found = true
		}
	}
	if !found {
		t.Fatal("expected single-texture input a to be fused into b's phase, not cut")
	}
	if len(phase.Inputs) != 0 {
		t.Errorf("expected no input-phase cut for a single-texture fan-out source, got %d", len(phase.Inputs))
	}
}

// Scenario 4: fan-out where one consumer demands a bounce forces a as
// its own phase.
func TestFanOutWithBounceDemandCutsPhase(t *testing.T) {
	var g graph.Graph
	a := g.AddInput(&fakeInput{id: "a", w: 64, h: 64, singleTexture: true})
	b := g.AddEffect(&fakeStage{id: "b", oneToOne: true}, []graph.NodeHandle{a})
	c := g.AddEffect(&fakeStage{id: "c", bounce: true, oneToOne: true}, []graph.NodeHandle{a})

	p := NewPartitioner(&g)
	phaseB := p.ConstructPhase(b)
	phaseC := p.ConstructPhase(c)

	if len(phaseB.Inputs) != 1 || len(phaseC.Inputs) != 1 {
		t.Fatalf("expected both b and c to cut at a into an input phase, got b=%d c=%d", len(phaseB.Inputs), len(phaseC.Inputs))
	}
	if phaseB.Inputs[0] != phaseC.Inputs[0] {
		t.Error("expected a's phase to be memoized and shared between b and c")
	}
}

// Scenario 5: resize without one-to-one sampling forces a phase cut at
// the resize node.
func TestResizeWithoutOneToOneCutsPhase(t *testing.T) {
	var g graph.Graph
	a := g.AddInput(&fakeInput{id: "a", w: 100, h: 100, singleTexture: true})
	resize := g.AddEffect(&fakeStage{id: "resize", changesSize: true, newW: 200, newH: 200, oneToOne: false}, []graph.NodeHandle{a})
	blur := g.AddEffect(&fakeStage{id: "blur", oneToOne: false}, []graph.NodeHandle{resize})

	p := NewPartitioner(&g)
	phase := p.ConstructPhase(blur)

	if len(phase.Effects) != 1 || phase.Effects[0] != blur {
		t.Fatalf("expected blur's phase to contain only blur, got %v", phase.Effects)
	}
	if len(phase.Inputs) != 1 {
		t.Fatalf("expected a phase cut at resize, got %d input phases", len(phase.Inputs))
	}
	if phase.Inputs[0].OutputNode != resize {
		t.Errorf("expected the cut input phase to end at resize, got node %v", phase.Inputs[0].OutputNode)
	}
}

func TestSizeRectangleToFitGrowsToAspect(t *testing.T) {
	w, h := SizeRectangleToFit(100, 50, 16, 9)
	if w < 100 || h < 50 {
		t.Fatalf("SizeRectangleToFit(100,50,16,9) = (%d,%d), must only grow", w, h)
	}
	if w != 100 || h != 56 {
		t.Errorf("SizeRectangleToFit result (%d,%d), want (100,56): width kept, height 100*9/16 rounded down", w, h)
	}
}
