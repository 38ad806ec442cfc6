// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package swpool is a CPU reference gpupool.Pool, grounded on
// _examples/gogpu-gg/render.PixmapTarget's *image.RGBA-backed storage.
// It never touches a GPU device or compiles real shader text; it exists
// so fxchain's own tests can exercise a full compile without a
// gpucontext.DeviceProvider, and so a caller can introspect exactly
// which programs and textures the compiler asked it to create.
package swpool
