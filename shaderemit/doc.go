// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shaderemit implements the Shader Emitter: per-phase textual
// composition of effect fragment shaders into one compiled fragment +
// vertex program (spec.md section 4.5).
package shaderemit
