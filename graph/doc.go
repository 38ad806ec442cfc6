// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package graph implements the Graph Store component: the mutable
// node/edge model of an fxchain effect graph, its topological sort, and
// the node-mutation primitives the repair planner splices conversion
// nodes in with.
//
// Nodes are arena-allocated: a Graph owns a slice of *Node and hands out
// stable int handles (NodeHandle) rather than pointers, so the arena can
// grow without invalidating anything a caller is holding onto.
package graph
