// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpupool declares the opaque GPU resource pool contract
// (spec.md section 1's "GPU resource pool" external collaborator):
// texture/FBO allocation, program compilation, and uniform
// introspection. fxchain's compiler never reaches into a concrete GPU
// API itself — every phase's compiled program and every intermediate
// texture is acquired through a Pool.
//
// Two concrete implementations live in subpackages: gpupool/native (a
// real GPU backend) and gpupool/swpool (a CPU reference pool used by
// the compiler's own tests).
package gpupool
