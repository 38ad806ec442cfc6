// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package attr implements the Attribute Propagator: the passes that
// derive each graph node's output color space, gamma curve, and alpha
// type from its inputs, leaving unresolved nodes marked INVALID for the
// repair planner (package repair) to fix up.
//
// Every pass here is pure with respect to the graph's edges — it only
// writes the Output* fields on existing nodes, in topological order,
// skipping disabled nodes. None of these passes insert or remove nodes;
// that is repair's job.
package attr
