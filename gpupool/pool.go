// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpupool

import (
	"time"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/shaderemit"
)

// TextureHandle, FBOHandle, and ProgramHandle are opaque identifiers a
// Pool hands back; fxchain never interprets their bit pattern.
type TextureHandle uint64
type FBOHandle uint64
type ProgramHandle uint64

// TextureDescriptor describes an intermediate texture fxchain wants
// allocated between two phases.
type TextureDescriptor struct {
	Width, Height int
	Format        effect.PixelFormat
	Mipmapped     bool
}

// UniformLocation describes where a named uniform lives once a program
// is linked: either a plain GL-style location, or an offset/size pair
// inside the program's packed uniform block.
type UniformLocation struct {
	Location   int
	UBOOffset  int
	UBONumElem int
}

// Pool is the GPU resource pool contract. Every method that can fail at
// the driver level returns an error rather than panicking — a program
// link failure or a uniform query failure is not a programmer-contract
// violation on fxchain's side (spec.md section 7).
type Pool interface {
	CreateTexture(desc TextureDescriptor) (TextureHandle, error)
	ReleaseTexture(TextureHandle)

	CreateFBO(color TextureHandle) (FBOHandle, error)
	ReleaseFBO(FBOHandle)

	// CompileProgram links a phase's emitted program source and returns
	// an opaque handle plus the vertex attribute locations for
	// "position" and "texcoord".
	CompileProgram(src *shaderemit.ProgramSource) (handle ProgramHandle, positionAttrib, texcoordAttrib int, err error)
	ReleaseProgram(ProgramHandle)

	GetUniformLocation(handle ProgramHandle, name string) (UniformLocation, bool)
	GetUniformBlockIndex(handle ProgramHandle, blockName string) (int, bool)
	GetUniformBlockDataSize(handle ProgramHandle, blockIndex int) int
	GetAttribLocation(handle ProgramHandle, name string) (int, bool)
}

// TimerQuery is an optional capability a Pool may implement (type-assert
// it) to support the phase-timing supplement (SPEC_FULL.md section 5
// item 1). A software pool with no real timer hardware simply does not
// implement it.
type TimerQuery interface {
	BeginPhaseTimer(FBOHandle)
	EndPhaseTimer(FBOHandle) (time.Duration, bool)
}
