// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package convert

import "github.com/gogpu/fxchain/effect"

// AlphaMultiplication converts a postmultiplied input to premultiplied
// by scaling RGB by alpha.
type AlphaMultiplication struct {
	effect.BaseEffect
}

func NewAlphaMultiplication() *AlphaMultiplication { return &AlphaMultiplication{} }

func (a *AlphaMultiplication) EffectTypeID() string { return effect.TypeIDAlphaMultiplication }
func (a *AlphaMultiplication) NumInputs() int       { return 1 }

func (a *AlphaMultiplication) OutputFragmentShader() string {
	return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	x.rgb *= x.a;
	return x;
}
`
}

// AlphaDivision converts a premultiplied input to postmultiplied by
// dividing RGB by alpha, guarding against division by zero.
type AlphaDivision struct {
	effect.BaseEffect
}

func NewAlphaDivision() *AlphaDivision { return &AlphaDivision{} }

func (a *AlphaDivision) EffectTypeID() string { return effect.TypeIDAlphaDivision }
func (a *AlphaDivision) NumInputs() int       { return 1 }

func (a *AlphaDivision) OutputFragmentShader() string {
	return `
vec4 FUNCNAME(vec2 tc) {
	vec4 x = INPUT(tc);
	if (x.a > 0.0) {
		x.rgb /= x.a;
	}
	return x;
}
`
}
