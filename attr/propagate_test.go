// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package attr

import (
	"testing"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
)

// fakeInput is a zero-input effect with a fixed declared format, used
// across this package's tests.
type fakeInput struct {
	effect.BaseEffect
	id       string
	space    effect.ColorSpace
	gamma    effect.GammaCurve
	handling effect.AlphaHandling
}

func (f *fakeInput) EffectTypeID() string                 { return f.id }
func (f *fakeInput) NumInputs() int                       { return 0 }
func (f *fakeInput) OutputFragmentShader() string         { return "" }
func (f *fakeInput) AlphaHandling() effect.AlphaHandling   { return f.handling }
func (f *fakeInput) Width() int                            { return 1 }
func (f *fakeInput) Height() int                           { return 1 }
func (f *fakeInput) ColorSpace() effect.ColorSpace          { return f.space }
func (f *fakeInput) GammaCurve() effect.GammaCurve          { return f.gamma }
func (f *fakeInput) CanOutputLinearGamma() bool             { return false }
func (f *fakeInput) CanSupplyMipmaps() bool                 { return false }

var _ effect.Input = (*fakeInput)(nil)

// fakeGeneral is a single/multi-input passthrough effect with a
// configurable AlphaHandling, for exercising alphaForGeneralEffect.
type fakeGeneral struct {
	effect.BaseEffect
	id       string
	inputs   int
	handling effect.AlphaHandling
}

func (f *fakeGeneral) EffectTypeID() string               { return f.id }
func (f *fakeGeneral) NumInputs() int                     { return f.inputs }
func (f *fakeGeneral) OutputFragmentShader() string       { return "" }
func (f *fakeGeneral) AlphaHandling() effect.AlphaHandling { return f.handling }

func TestPropagateColorAndGammaSeedsZeroInput(t *testing.T) {
	var g graph.Graph
	in := g.AddInput(&fakeInput{id: "in", space: effect.ColorSpaceSRGB, gamma: effect.GammaSRGB})

	PropagateColorAndGamma(&g, in)

	n := g.Node(in)
	if n.OutputColorSpace != effect.ColorSpaceSRGB {
		t.Errorf("OutputColorSpace = %v, want sRGB", n.OutputColorSpace)
	}
	if n.OutputGammaCurve != effect.GammaSRGB {
		t.Errorf("OutputGammaCurve = %v, want sRGB", n.OutputGammaCurve)
	}
}

func TestPropagateColorAndGammaDisagreementIsInvalid(t *testing.T) {
	var g graph.Graph
	a := g.AddInput(&fakeInput{id: "a", space: effect.ColorSpaceSRGB, gamma: effect.GammaSRGB})
	b := g.AddInput(&fakeInput{id: "b", space: effect.ColorSpaceRec601525, gamma: effect.GammaSRGB})
	c := g.AddEffect(&fakeGeneral{id: "c", inputs: 2, handling: effect.DontCareAlphaType}, []graph.NodeHandle{a, b})

	PropagateColorAndGamma(&g, c)

	if g.Node(c).OutputColorSpace != effect.ColorSpaceInvalid {
		t.Errorf("disagreeing inputs should propagate to ColorSpaceInvalid, got %v", g.Node(c).OutputColorSpace)
	}
}

func TestPropagateAlphaZeroInputPremultipliedRequiresLinearGamma(t *testing.T) {
	var g graph.Graph
	in := g.AddInput(&fakeInput{
		id: "in", space: effect.ColorSpaceSRGB, gamma: effect.GammaLinear,
		handling: effect.InputAndOutputPremultipliedAlpha,
	})
	PropagateColorAndGamma(&g, in)
	PropagateAlpha(&g, in)

	if g.Node(in).OutputAlphaType != effect.AlphaPremultiplied {
		t.Errorf("OutputAlphaType = %v, want premultiplied", g.Node(in).OutputAlphaType)
	}
}

func TestPropagateAlphaZeroInputAssertsLinearGamma(t *testing.T) {
	var g graph.Graph
	in := g.AddInput(&fakeInput{
		id: "in", space: effect.ColorSpaceSRGB, gamma: effect.GammaSRGB,
		handling: effect.InputAndOutputPremultipliedAlpha,
	})
	PropagateColorAndGamma(&g, in)

	defer func() {
		if recover() == nil {
			t.Fatal("expected PropagateAlpha to panic: premultiplied zero-input with non-linear gamma")
		}
	}()
	PropagateAlpha(&g, in)
}

func TestPropagateAlphaMixedPreAndPostIsInvalid(t *testing.T) {
	var g graph.Graph
	a := g.AddInput(&fakeInput{id: "a", gamma: effect.GammaLinear, handling: effect.InputAndOutputPremultipliedAlpha})
	b := g.AddInput(&fakeInput{id: "b", gamma: effect.GammaLinear, handling: effect.OutputPostmultipliedAlpha})
	c := g.AddEffect(&fakeGeneral{id: "c", inputs: 2, handling: effect.DontCareAlphaType}, []graph.NodeHandle{a, b})

	PropagateColorAndGamma(&g, c)
	PropagateAlpha(&g, c)

	if g.Node(c).OutputAlphaType != effect.AlphaInvalid {
		t.Errorf("mixed pre/post alpha should be INVALID, got %v", g.Node(c).OutputAlphaType)
	}
}
