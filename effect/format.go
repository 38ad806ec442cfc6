// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

// PixelFormat is the channel layout of an image.
type PixelFormat int

const (
	PixelFormatRGB PixelFormat = iota
	PixelFormatRGBA
)

// ColorSpace is the chromaticity primaries of an image.
type ColorSpace int

const (
	ColorSpaceSRGB ColorSpace = iota
	ColorSpaceRec601525
	ColorSpaceRec601625
	// ColorSpaceInvalid marks a node whose inputs disagree on color space,
	// or that has not been propagated yet. Never a valid terminal value.
	ColorSpaceInvalid
)

// ColorSpaceRec709 is numerically identical to sRGB primaries.
const ColorSpaceRec709 = ColorSpaceSRGB

// GammaCurve is the transfer function applied to an image's samples.
type GammaCurve int

const (
	GammaLinear GammaCurve = iota
	GammaSRGB
	GammaRec601
	// GammaInvalid marks a node whose inputs disagree on gamma curve.
	GammaInvalid
)

// GammaRec709 shares Rec. 601's transfer function.
const GammaRec709 = GammaRec601

// ImageFormat describes the pixel layout and color encoding of an image
// entering or leaving the chain.
type ImageFormat struct {
	PixelFormat PixelFormat
	ColorSpace  ColorSpace
	GammaCurve  GammaCurve
}

// AlphaType is the pre/postmultiplication state of a node's output alpha.
type AlphaType int

const (
	AlphaBlank AlphaType = iota
	AlphaPremultiplied
	AlphaPostmultiplied
	// AlphaInvalid marks a node whose inputs disagree, or conflict with
	// what the node's effect requires. Never a valid terminal value.
	AlphaInvalid
)

// AlphaHandling declares how an effect relates its inputs' alpha to its
// output's alpha. Only zero-input effects may return OutputBlankAlpha or
// OutputPostmultipliedAlpha.
type AlphaHandling int

const (
	OutputBlankAlpha AlphaHandling = iota
	InputAndOutputPremultipliedAlpha
	InputPremultipliedAlphaKeepBlank
	OutputPostmultipliedAlpha
	DontCareAlphaType
)

// OutputAlphaFormat is the alpha convention a chain's output is rendered in.
type OutputAlphaFormat int

const (
	OutputAlphaFormatPremultiplied OutputAlphaFormat = iota
	OutputAlphaFormatPostmultiplied
)

// OutputOrigin selects which screen corner is the texture origin.
type OutputOrigin int

const (
	OutputOriginBottomLeft OutputOrigin = iota
	OutputOriginTopLeft
)

// YCbCrFormat describes a planar/interleaved Y'CbCr output encoding.
// Chroma subsampling is fixed at 1x1; see spec.md Non-goals.
type YCbCrFormat struct {
	ChromaSubsamplingX int
	ChromaSubsamplingY int
	LumaCoefficients   [3]float64 // Kr, Kg, Kb
	FullRange          bool
	NumLevels          int
}

// YCbCrOutputSplitting selects how Y'CbCr channels are assigned to
// fragment shader output locations.
type YCbCrOutputSplitting int

const (
	YCbCrOutputInterleaved YCbCrOutputSplitting = iota
	YCbCrOutputSplitYAndCbCr
	YCbCrOutputPlanar
)

// MipmapRequirement describes how a node relates to mipmap generation.
type MipmapRequirement int

const (
	MipmapNone MipmapRequirement = iota
	MipmapNeedsMipmaps
	MipmapCannotAcceptMipmaps
)
