// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package convert

import "github.com/gogpu/fxchain/effect"

// YCbCrConversion encodes the chain's final RGB (after output gamma and
// alpha repair) into Y'CbCr
// using the format's luma coefficients, producing one, two, or three
// shader outputs depending on Splitting. The shader emitter (package
// shaderemit) is responsible for declaring the matching #define and
// output locations; this effect only emits the math.
type YCbCrConversion struct {
	effect.BaseEffect

	Format    effect.YCbCrFormat
	Splitting effect.YCbCrOutputSplitting

	coeff [3]float32
}

func NewYCbCrConversion(format effect.YCbCrFormat, splitting effect.YCbCrOutputSplitting) *YCbCrConversion {
	return &YCbCrConversion{
		Format:    format,
		Splitting: splitting,
		coeff: [3]float32{
			float32(format.LumaCoefficients[0]),
			float32(format.LumaCoefficients[1]),
			float32(format.LumaCoefficients[2]),
		},
	}
}

func (y *YCbCrConversion) EffectTypeID() string   { return effect.TypeIDYCbCrConversion }
func (y *YCbCrConversion) NumInputs() int         { return 1 }
func (y *YCbCrConversion) NeedsLinearLight() bool { return false }

// OutputFragmentShader keeps the uniform "vec4 FUNCNAME(vec2 tc)"
// contract every effect follows: it returns (y, cb, cr, alpha) packed
// into a vec4. The shader emitter's footer (package shaderemit) is what
// actually distributes those components across FragColor/Y/Chroma/Cb/Cr
// depending on the phase's output-routing defines, and re-emits the
// RGBA side-output from the shared INPUT sample when requested.
func (y *YCbCrConversion) OutputFragmentShader() string {
	return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	float y_val = dot(x.rgb, PREFIX(luma_coefficients));
	float cb = (x.b - y_val) / (2.0 * (1.0 - PREFIX(luma_coefficients).b)) + 0.5;
	float cr = (x.r - y_val) / (2.0 * (1.0 - PREFIX(luma_coefficients).r)) + 0.5;
	return vec4(y_val, cb, cr, x.a);
}
`
}

func (y *YCbCrConversion) Uniforms() *effect.Uniforms {
	return &effect.Uniforms{
		Vec3: []effect.Uniform[[3]float32]{
			{Name: "luma_coefficients", Value: &y.coeff, NumValues: 1},
		},
	}
}
