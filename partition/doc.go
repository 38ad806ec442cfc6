// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package partition implements the Phase Partitioner: a depth-first
// slicing of the finalized graph into Phases, each a maximal set of
// effects fusable into one shader pass, subject to texture-bounce,
// mipmap, and resize constraints (spec.md section 4.4).
//
// A node's containing phase is tracked here, not on graph.Node, to
// avoid a graph -> partition import cycle (spec.md section 9: "Represent
// as handle+index rather than ownership"). Partitioner.NodePhases maps
// a node handle to the index (or indices, for a shared zero-input node)
// of the Phase(s) it appears in, within Partitioner.Phases.
package partition
