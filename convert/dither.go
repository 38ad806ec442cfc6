// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package convert

import "github.com/gogpu/fxchain/effect"

// Dither adds pseudo-random noise, hashed from gl_FragCoord, before
// quantization to NumBits per channel, breaking up banding in the final
// output. It accepts output_width/output_height through SetInt, which
// the executor pushes into the final phase's output node every frame;
// the shader does not read them, so the noise does not depend on the
// destination resolution.
type Dither struct {
	effect.BaseEffect

	NumBits int

	width, height int32
}

func NewDither(numBits int) *Dither {
	return &Dither{NumBits: numBits}
}

func (d *Dither) EffectTypeID() string { return effect.TypeIDDither }
func (d *Dither) NumInputs() int       { return 1 }

// SetInt accepts "output_width" and "output_height", pushed once per
// frame by the executor before the terminal phase's draw call.
func (d *Dither) SetInt(key string, value int) bool {
	switch key {
	case "output_width":
		d.width = int32(value)
		return true
	case "output_height":
		d.height = int32(value)
		return true
	default:
		return false
	}
}

func (d *Dither) OutputFragmentShader() string {
	return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	float r = fract(sin(dot(gl_FragCoord.xy, vec2(12.9898, 78.233))) * 43758.5453);
	float scale = PREFIX(round_fac);
	x.rgb = floor(x.rgb * scale + r) / scale;
	return x;
}
`
}

func (d *Dither) Uniforms() *effect.Uniforms {
	roundFac := float32(int(1) << uint(d.NumBits))
	return &effect.Uniforms{
		Int: []effect.Uniform[int32]{
			{Name: "width", Value: &d.width, NumValues: 1},
			{Name: "height", Value: &d.height, NumValues: 1},
		},
		Float: []effect.Uniform[float32]{
			{Name: "round_fac", Value: &roundFac, NumValues: 1},
		},
	}
}
