// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dotdump emits Graphviz DOT snapshots of a graph mid-finalize,
// grounded on original_source's EffectChain::output_dot and
// output_dot_edge. The original writes directly to a fixed filename from
// inside finalize(); here that side effect is routed through an
// injectable Sink so the compiler's core stays free of file I/O, and a
// caller that does not want debug output at all can pass a nil Sink.
package dotdump
