package main

import "github.com/gogpu/fxchain/effect"

// flatInput is a minimal zero-input effect standing in for a real
// texture source, just enough to drive the CLI demo: the compiler core
// ships no domain effects of its own (spec.md section 1 scopes those
// out), so every caller, including this demo, supplies its own.
type flatInput struct {
	effect.BaseEffect
	width, height int
}

func (f *flatInput) EffectTypeID() string       { return "DemoFlatInput" }
func (f *flatInput) NumInputs() int             { return 0 }
func (f *flatInput) AlphaHandling() effect.AlphaHandling {
	return effect.OutputPostmultipliedAlpha
}
func (f *flatInput) OutputFragmentShader() string {
	return "vec4 FUNCNAME(vec2 tc) {\n\treturn vec4(0.5, 0.5, 0.5, 1.0);\n}\n"
}
func (f *flatInput) IsSingleTexture() bool { return true }
func (f *flatInput) Width() int            { return f.width }
func (f *flatInput) Height() int           { return f.height }
func (f *flatInput) ColorSpace() effect.ColorSpace { return effect.ColorSpaceSRGB }
func (f *flatInput) GammaCurve() effect.GammaCurve { return effect.GammaSRGB }
func (f *flatInput) CanOutputLinearGamma() bool    { return false }
func (f *flatInput) CanSupplyMipmaps() bool        { return false }

var _ effect.Input = (*flatInput)(nil)

// linearLightEffect is a single-input effect that only exists to
// exercise the "needs linear light" repair path from the -needs-linear
// flag: the repair planner must insert (or ask the input to supply) a
// linear-gamma conversion upstream of it.
type linearLightEffect struct {
	effect.BaseEffect
}

func (e *linearLightEffect) EffectTypeID() string { return "DemoLinearLight" }
func (e *linearLightEffect) NumInputs() int       { return 1 }
func (e *linearLightEffect) NeedsLinearLight() bool { return true }
func (e *linearLightEffect) OutputFragmentShader() string {
	return "vec4 FUNCNAME(vec2 tc) {\n\treturn INPUT(tc);\n}\n"
}

var _ effect.Effect = (*linearLightEffect)(nil)
