// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package effect defines the contract every node in an fxchain graph
// satisfies: the Effect interface, the image-format and alpha-handling
// vocabulary the attribute propagator reasons about, and the typed
// uniform descriptors the shader emitter collects.
//
// Nothing in this package knows about the graph, propagation, repair,
// or partitioning; it is the narrow boundary between the compiler core
// and the (normally external) effect implementations.
package effect
