// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

// Effect type identifiers recognized by the core compiler. These are the
// EffectTypeID() values returned by the built-in conversion effects in
// package convert; the attribute propagator and repair planner special
// case nodes whose effect reports one of these.
const (
	TypeIDColorspaceConversion = "ColorspaceConversionEffect"
	TypeIDGammaExpansion       = "GammaExpansionEffect"
	TypeIDGammaCompression     = "GammaCompressionEffect"
	TypeIDAlphaMultiplication  = "AlphaMultiplicationEffect"
	TypeIDAlphaDivision        = "AlphaDivisionEffect"
	TypeIDYCbCrConversion      = "YCbCrConversionEffect"
	TypeIDDither               = "DitherEffect"
)
