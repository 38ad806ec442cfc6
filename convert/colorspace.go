// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package convert

import "github.com/gogpu/fxchain/effect"

// ColorspaceConversion converts between the three recognized color
// spaces via a 3x3 matrix multiply. The matrix is resolved at
// construction time from Source/Destination; repair always knows both
// ends so there is no runtime "unknown matrix" case.
type ColorspaceConversion struct {
	effect.BaseEffect

	Source      effect.ColorSpace
	Destination effect.ColorSpace

	matrix [9]float32
}

// NewColorspaceConversion builds a conversion from source to
// destination, pre-computing its RGB-to-RGB matrix.
func NewColorspaceConversion(source, destination effect.ColorSpace) *ColorspaceConversion {
	c := &ColorspaceConversion{Source: source, Destination: destination}
	c.matrix = colorSpaceMatrix(source, destination)
	return c
}

func (c *ColorspaceConversion) EffectTypeID() string { return effect.TypeIDColorspaceConversion }
func (c *ColorspaceConversion) NumInputs() int        { return 1 }

func (c *ColorspaceConversion) OutputFragmentShader() string {
	return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	x.rgb = PREFIX(conversion_matrix) * x.rgb;
	return x;
}
`
}

func (c *ColorspaceConversion) Uniforms() *effect.Uniforms {
	return &effect.Uniforms{
		Mat3: []effect.Uniform[[9]float32]{
			{Name: "conversion_matrix", Value: &c.matrix, NumValues: 1},
		},
	}
}

// colorSpaceMatrix returns the RGB-to-RGB conversion matrix between two
// of the three recognized primaries. sRGB/Rec709 is the identity pivot;
// REC601-525 (NTSC) and REC601-625 (PAL) each have a fixed matrix to and
// from it, following the primaries Movit's colorspace_conversion_effect
// hard-codes.
func colorSpaceMatrix(source, destination effect.ColorSpace) [9]float32 {
	if source == destination {
		return identity3
	}
	toSRGB := toSRGBMatrix(source)
	fromSRGB := fromSRGBMatrix(destination)
	if destination == effect.ColorSpaceSRGB {
		return toSRGB
	}
	if source == effect.ColorSpaceSRGB {
		return fromSRGB
	}
	return mul3(fromSRGB, toSRGB)
}

var identity3 = [9]float32{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

func toSRGBMatrix(space effect.ColorSpace) [9]float32 {
	switch space {
	case effect.ColorSpaceRec601525:
		return [9]float32{
			0.9395, 0.0502, 0.0103,
			0.0178, 0.9658, 0.0164,
			-0.0016, -0.0044, 1.0060,
		}
	case effect.ColorSpaceRec601625:
		return [9]float32{
			1.0440, -0.0440, 0.0000,
			0.0000, 1.0000, 0.0000,
			0.0000, 0.0118, 0.9882,
		}
	default:
		return identity3
	}
}

func fromSRGBMatrix(space effect.ColorSpace) [9]float32 {
	switch space {
	case effect.ColorSpaceRec601525, effect.ColorSpaceRec601625:
		return invert3(toSRGBMatrix(space))
	default:
		return identity3
	}
}

func mul3(a, b [9]float32) [9]float32 {
	var out [9]float32
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += a[r*3+k] * b[k*3+c]
			}
			out[r*3+c] = sum
		}
	}
	return out
}

func invert3(m [9]float32) [9]float32 {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if det == 0 {
		return identity3
	}
	invDet := 1 / det
	return [9]float32{
		(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet,
		(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet,
		(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet,
	}
}
