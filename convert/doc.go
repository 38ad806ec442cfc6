// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package convert implements the seven conversion effects the repair
// planner (package repair) and output finisher (fxchain.Chain) splice
// into a graph to correct a propagation INVALID or a capability
// mismatch: colorspace conversion, gamma expansion/compression, alpha
// multiplication/division, YCbCr conversion, and dither.
//
// These are the one exception to "effects are opaque" in spec.md's
// scope: the core constructs them directly by type because repair needs
// to set their source/destination parameters precisely.
package convert
