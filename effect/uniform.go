// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

// Uniform describes a single GLSL uniform an effect wants bound into its
// phase's program. T is one of bool, int32, float32, [2]float32,
// [3]float32, [4]float32, or [9]float32 (a row-major 3x3 matrix).
//
// Name is the identifier as it appears in the effect's own fragment
// shader text, before the shader emitter prefixes it with the effect's
// per-phase id (see shaderemit.RewritePrefix and CompilePhase).
type Uniform[T any] struct {
	Name string

	// Value is read each frame by the executor when pushing uniform data;
	// it is a pointer so effects can mutate it between frames without
	// re-registering the uniform.
	Value *T

	// NumValues is 1 for a scalar uniform, >1 for an array.
	NumValues int

	// The remaining fields are filled in by the shader emitter once the
	// phase's program has been compiled; effects should not set them.
	Prefix     string
	Location   int
	UBOOffset  int
	UBONumElem int
}

// UniformSampler2D is a texture-unit uniform; Value holds the currently
// bound texture unit index (GL_TEXTUREn - GL_TEXTURE0).
type UniformSampler2D = Uniform[int32]

// Uniforms is the full set of typed uniform descriptors an Effect may
// register. Array-valued uniforms reuse the scalar slices with
// NumValues > 1.
type Uniforms struct {
	Bool      []Uniform[bool]
	Int       []Uniform[int32]
	Float     []Uniform[float32]
	Vec2      []Uniform[[2]float32]
	Vec3      []Uniform[[3]float32]
	Vec4      []Uniform[[4]float32]
	Mat3      []Uniform[[9]float32]
	Sampler2D []UniformSampler2D
}
