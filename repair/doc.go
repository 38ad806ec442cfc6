// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package repair implements the Repair Planner: an iterated fixed point
// that finds a node whose inputs violate its attribute requirements,
// splices in the minimal package convert conversion node to fix it, and
// re-runs attribute propagation, until no more violations remain or the
// iteration cap (spec.md section 4.3 / 9) is hit.
//
// Every exported function here handles exactly one of the three
// attribute domains (color space, alpha, gamma) and is meant to be
// called from fxchain.Chain.Finalize in the exact order spec.md section
// 4.3's "Finalize pipeline order" specifies; none of them is safe to
// call out of that order since later passes assume earlier ones already
// ran to a fixed point.
package repair

const maxIterations = 100
