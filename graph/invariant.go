// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import "github.com/gogpu/fxchain/internal/contract"

// Violation is the panic value for a programmer-contract violation
// against the graph store — the Go analogue of Movit's assert()/CHECK().
// It is an alias of contract.Violation so that a single type works at a
// recover() boundary regardless of which package raised it.
type Violation = contract.Violation

func invariant(cond bool, format string, args ...any) {
	contract.Assert(cond, format, args...)
}
