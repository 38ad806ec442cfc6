// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native is the production gpupool.Pool: it reaches the GPU
// through github.com/gogpu/gpucontext's DeviceProvider, compiles each
// phase's emitted shader text to SPIR-V via github.com/gogpu/naga, and
// links it into a github.com/gogpu/wgpu/hal render pipeline, caching by
// descriptor hash exactly the way
// _examples/gogpu-gg/backend/native/pipeline_cache_core.go caches its
// own render/compute pipelines.
package native
