// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package convert

import "github.com/gogpu/fxchain/effect"

// GammaExpansion decodes a non-linear input curve into scene-linear
// light. Repair always constructs one with a concrete Source; it never
// offers an "unset" curve the way SetInt("source_curve", ...) would
// imply, since the repair planner always knows the input's curve by the
// time it inserts one.
type GammaExpansion struct {
	effect.BaseEffect

	Source effect.GammaCurve
}

func NewGammaExpansion(source effect.GammaCurve) *GammaExpansion {
	return &GammaExpansion{Source: source}
}

func (g *GammaExpansion) EffectTypeID() string          { return effect.TypeIDGammaExpansion }
func (g *GammaExpansion) NumInputs() int                { return 1 }
func (g *GammaExpansion) NeedsLinearLight() bool        { return false }
func (g *GammaExpansion) OutputFragmentShader() string {
	switch g.Source {
	case effect.GammaSRGB:
		return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	x.rgb = PREFIX(srgb_to_linear)(x.rgb);
	return x;
}
`
	case effect.GammaRec601:
		return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	x.rgb = PREFIX(rec601_to_linear)(x.rgb);
	return x;
}
`
	default:
		return `
vec4 FUNCNAME(vec2 tc) {
	return INPUT(tc);
}
`
	}
}

// GammaCompression is the inverse of GammaExpansion: it encodes
// scene-linear light into a non-linear Destination curve, used both for
// internal repair (rare) and for the output finisher's mandatory final
// gamma stage.
type GammaCompression struct {
	effect.BaseEffect

	Destination effect.GammaCurve
}

func NewGammaCompression(destination effect.GammaCurve) *GammaCompression {
	return &GammaCompression{Destination: destination}
}

func (g *GammaCompression) EffectTypeID() string { return effect.TypeIDGammaCompression }
func (g *GammaCompression) NumInputs() int       { return 1 }

func (g *GammaCompression) OutputFragmentShader() string {
	switch g.Destination {
	case effect.GammaSRGB:
		return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	x.rgb = PREFIX(linear_to_srgb)(x.rgb);
	return x;
}
`
	case effect.GammaRec601:
		return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	x.rgb = PREFIX(linear_to_rec601)(x.rgb);
	return x;
}
`
	default:
		return `
vec4 FUNCNAME(vec2 tc) {
	return INPUT(tc);
}
`
	}
}
