// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

// Rewriter is the minimal view of the graph an Effect needs during its
// RewriteGraph hook: enough to add nodes and connect them, without
// exposing the rest of the compiler. The concrete type is
// *fxchain.Chain; it is expressed here as an interface so this package
// never imports the orchestrator.
type Rewriter interface {
	// AddEffect inserts eff into the graph with the given parent handles
	// (as opaque ints) and returns its new handle.
	AddEffect(eff Effect, parents []int) int
}

// Effect is the contract every node's underlying operation satisfies.
// Implementations are normally supplied by callers of the compiler; the
// seven conversion effects in package convert are the exception — the
// repair planner and output finisher construct them directly by type.
type Effect interface {
	// EffectTypeID is a stable identifier. A handful of values are
	// recognized by the core itself: ColorspaceConversionEffect,
	// GammaExpansionEffect, GammaCompressionEffect,
	// AlphaMultiplicationEffect, AlphaDivisionEffect.
	EffectTypeID() string

	// NumInputs is the number of ordered inputs this effect consumes.
	NumInputs() int

	// AlphaHandling declares how this effect relates input alpha to
	// output alpha. Only meaningful for NumInputs() == 0 effects when it
	// returns OutputBlankAlpha or OutputPostmultipliedAlpha.
	AlphaHandling() AlphaHandling

	// OutputFragmentShader returns GLSL/ESSL source containing a
	// FUNCNAME-named entry point and zero or more PREFIX(x) macro sites,
	// consuming INPUT (single input) or INPUT1..INPUTn (multiple inputs).
	OutputFragmentShader() string

	// Uniforms returns the typed uniform descriptors this effect wants
	// bound into its phase's program. May be called again after
	// OutputFragmentShader, since some effects register uniforms lazily
	// (e.g. arrays whose length is only known at finalize time).
	Uniforms() *Uniforms

	// Capability flags.
	NeedsTextureBounce() bool
	NeedsMipmaps() MipmapRequirement
	IsSingleTexture() bool
	ChangesOutputSize() bool
	// OutputSize computes this effect's actual (or, if
	// SetsVirtualOutputSize, virtual) output dimensions from its inputs'
	// agreed-upon size. Only consulted when ChangesOutputSize is true.
	OutputSize(inputWidth, inputHeight int) (width, height int)
	SetsVirtualOutputSize() bool
	OneToOneSampling() bool
	NeedsSRGBPrimaries() bool
	NeedsLinearLight() bool
	OverrideDisableBounce() bool

	// RewriteGraph lets an effect expand itself into a subgraph during
	// Chain.Finalize, before any propagation happens. Most effects leave
	// this empty.
	RewriteGraph(r Rewriter, self int)

	// SetInt pushes a configuration value through one of a small set of
	// recognized string keys ("needs_mipmaps", "output_linear_gamma",
	// "source_space", "destination_space", "source_curve",
	// "destination_curve", "num_bits", "output_width", "output_height").
	// Returns false if key is not recognized or value is out of range.
	SetInt(key string, value int) bool

	// SetGLState/ClearGLState push and release per-frame uniform state
	// immediately before and after the phase's draw call.
	SetGLState(programHandle uint64, effectID string, samplerNum *int)
	ClearGLState()
}

// Input is the subset of Effect that zero-input (texture-producing)
// effects additionally implement.
type Input interface {
	Effect

	Width() int
	Height() int
	ColorSpace() ColorSpace
	GammaCurve() GammaCurve
	CanOutputLinearGamma() bool
	CanSupplyMipmaps() bool
}

// BaseEffect is embedded by effect implementations to get sane defaults
// for every capability flag; implementations override only what they
// need, mirroring how most Movit effects only override a handful of the
// Effect virtuals.
type BaseEffect struct{}

func (BaseEffect) AlphaHandling() AlphaHandling      { return DontCareAlphaType }
func (BaseEffect) Uniforms() *Uniforms               { return &Uniforms{} }
func (BaseEffect) NeedsTextureBounce() bool          { return false }
func (BaseEffect) NeedsMipmaps() MipmapRequirement   { return MipmapNone }
func (BaseEffect) IsSingleTexture() bool             { return false }
func (BaseEffect) ChangesOutputSize() bool           { return false }
func (BaseEffect) OutputSize(w, h int) (int, int)    { return w, h }
func (BaseEffect) SetsVirtualOutputSize() bool       { return false }
func (BaseEffect) OneToOneSampling() bool            { return true }
func (BaseEffect) NeedsSRGBPrimaries() bool          { return false }
func (BaseEffect) NeedsLinearLight() bool            { return false }
func (BaseEffect) OverrideDisableBounce() bool       { return false }
func (BaseEffect) RewriteGraph(r Rewriter, self int) {}
func (BaseEffect) SetInt(key string, value int) bool { return false }
func (BaseEffect) SetGLState(programHandle uint64, effectID string, samplerNum *int) {
}
func (BaseEffect) ClearGLState() {}
