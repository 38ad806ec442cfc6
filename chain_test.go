// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fxchain

import (
	"strings"
	"testing"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/gpupool"
	"github.com/gogpu/fxchain/gpupool/swpool"
)

// chainInput is a zero-input effect standing in for a real texture
// source across this file's tests; linear mirrors fakeInput's
// SetInt("output_linear_gamma", ...) override in the repair package so
// Finalize's ask-inputs pass can exercise it end to end.
type chainInput struct {
	effect.BaseEffect
	space    effect.ColorSpace
	gamma    effect.GammaCurve
	handling effect.AlphaHandling
	linear   bool
}

func (f *chainInput) EffectTypeID() string              { return "ChainTestInput" }
func (f *chainInput) NumInputs() int                     { return 0 }
func (f *chainInput) AlphaHandling() effect.AlphaHandling { return f.handling }
func (f *chainInput) OutputFragmentShader() string {
	return "vec4 FUNCNAME(vec2 tc) {\n\treturn vec4(0.5, 0.5, 0.5, 1.0);\n}\n"
}
func (f *chainInput) IsSingleTexture() bool        { return true }
func (f *chainInput) Width() int                   { return 64 }
func (f *chainInput) Height() int                  { return 64 }
func (f *chainInput) ColorSpace() effect.ColorSpace { return f.space }
func (f *chainInput) GammaCurve() effect.GammaCurve { return f.gamma }
func (f *chainInput) CanOutputLinearGamma() bool    { return f.linear }
func (f *chainInput) CanSupplyMipmaps() bool        { return false }
func (f *chainInput) SetInt(key string, value int) bool {
	if key == "output_linear_gamma" && f.linear {
		f.gamma = effect.GammaLinear
		return true
	}
	return false
}

var _ effect.Input = (*chainInput)(nil)

// chainLinearStage requires scene-linear light from its single input,
// passing it through unchanged once repair has guaranteed that.
type chainLinearStage struct {
	effect.BaseEffect
}

func (s *chainLinearStage) EffectTypeID() string   { return "ChainTestLinearStage" }
func (s *chainLinearStage) NumInputs() int         { return 1 }
func (s *chainLinearStage) NeedsLinearLight() bool { return true }
func (s *chainLinearStage) OutputFragmentShader() string {
	return "vec4 FUNCNAME(vec2 tc) {\n\treturn INPUT(tc);\n}\n"
}

func TestFinalizeIdentityPassthrough(t *testing.T) {
	c := NewChain(16, 9, swpool.New(), effect.PixelFormatRGBA)
	c.AddInput(&chainInput{space: effect.ColorSpaceSRGB, gamma: effect.GammaSRGB, handling: effect.OutputPostmultipliedAlpha})
	c.AddOutput(effect.ImageFormat{PixelFormat: effect.PixelFormatRGBA, ColorSpace: effect.ColorSpaceSRGB, GammaCurve: effect.GammaSRGB}, effect.OutputAlphaFormatPostmultiplied)

	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	phases := c.Phases()
	if len(phases) != 1 {
		t.Fatalf("len(Phases()) = %d, want 1 for an already-matching input", len(phases))
	}
	if len(phases[0].Effects) != 1 {
		t.Errorf("expected the single phase to contain only the input, got %d effects", len(phases[0].Effects))
	}
}

func TestFinalizeRequiresLinearLight(t *testing.T) {
	pool := swpool.New()
	c := NewChain(1, 1, pool, effect.PixelFormatRGBA)
	in := c.AddInput(&chainInput{space: effect.ColorSpaceSRGB, gamma: effect.GammaSRGB, handling: effect.OutputBlankAlpha, linear: true})
	c.AddEffect(&chainLinearStage{}, []int{in})
	c.AddOutput(effect.ImageFormat{PixelFormat: effect.PixelFormatRGBA, ColorSpace: effect.ColorSpaceSRGB, GammaCurve: effect.GammaSRGB}, effect.OutputAlphaFormatPostmultiplied)

	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	found := false
	for _, ph := range c.Phases() {
		src, ok := pool.Program(gpupool.ProgramHandle(ph.CompiledProgramHandle))
		if ok && strings.Contains(src.FragmentShader, "linear_to_srgb") {
			found = true
		}
	}
	if !found {
		t.Error("expected the output gamma repair to compress scene-linear light back to sRGB via linear_to_srgb")
	}
}

func TestFinalizeYCbCrPlanarOutputWithDither(t *testing.T) {
	pool := swpool.New()
	c := NewChain(4, 3, pool, effect.PixelFormatRGBA)
	c.AddInput(&chainInput{space: effect.ColorSpaceSRGB, gamma: effect.GammaSRGB, handling: effect.OutputPostmultipliedAlpha})
	c.AddYCbCrOutput(
		effect.ImageFormat{PixelFormat: effect.PixelFormatRGBA, ColorSpace: effect.ColorSpaceSRGB, GammaCurve: effect.GammaSRGB},
		effect.OutputAlphaFormatPostmultiplied,
		effect.YCbCrFormat{ChromaSubsamplingX: 1, ChromaSubsamplingY: 1, LumaCoefficients: [3]float64{0.2126, 0.7152, 0.0722}, FullRange: false, NumLevels: 256},
		effect.YCbCrOutputPlanar,
	)
	c.SetDitherBits(8)

	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	last := c.Phases()[len(c.Phases())-1]
	src, ok := pool.Program(gpupool.ProgramHandle(last.CompiledProgramHandle))
	if !ok {
		t.Fatal("expected the final phase's program to be recorded by the software pool")
	}
	if len(src.OutputNames) != 3 {
		t.Fatalf("OutputNames = %v, want 3 planar Y/Cb/Cr outputs", src.OutputNames)
	}
}

func TestFinalizeTwiceIsAContractViolation(t *testing.T) {
	c := NewChain(1, 1, swpool.New(), effect.PixelFormatRGBA)
	c.AddInput(&chainInput{space: effect.ColorSpaceSRGB, gamma: effect.GammaSRGB, handling: effect.OutputPostmultipliedAlpha})
	c.AddOutput(effect.ImageFormat{PixelFormat: effect.PixelFormatRGBA, ColorSpace: effect.ColorSpaceSRGB, GammaCurve: effect.GammaSRGB}, effect.OutputAlphaFormatPostmultiplied)

	if err := c.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a second Finalize call to panic with a ContractViolation")
		}
	}()
	c.Finalize()
}
