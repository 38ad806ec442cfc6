// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fxchain compiles a graph of image-processing effects into a
// minimal sequence of fused GPU render passes ("phases"), the way
// Movit's EffectChain turns a tree of Effect objects into a handful of
// shader programs instead of one draw call per effect.
//
// A caller builds a graph with AddInput/AddEffect, declares one or more
// outputs with AddOutput/AddYCbCrOutput, then calls Finalize once. Finalize
// propagates color space, gamma curve, and alpha type through the graph,
// repairs whatever inconsistencies that propagation surfaces by splicing
// in conversion nodes, partitions the repaired graph into phases, and
// emits one shader program per phase. RenderToFBO then executes the
// compiled phases against a gpupool.Pool.
//
// Finalize panics with a ContractViolation if the graph is malformed —
// a missing AddOutput call, an attribute that cannot converge, a repair
// fixed point that does not settle within its iteration cap. These are
// programmer mistakes, not runtime conditions; a host embedding fxchain
// as a library should treat a panic from Finalize as a bug to fix, not
// something to retry. GPU driver failures (program link failure, a
// uniform query miss) are different: they come back as a plain error
// from Finalize or RenderToFBO, since a transient driver condition is
// not something the caller did wrong.
package fxchain
