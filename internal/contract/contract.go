// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package contract provides the single panic type shared by every
// fxchain component for programmer-contract violations — the Go
// analogue of Movit's assert()/CHECK(). Every internal package calls
// Assert instead of rolling its own; fxchain.ContractViolation (root
// package) is an alias of Violation so callers that recover() at a
// library boundary only need to know one type.
package contract

import "fmt"

// Violation is the panic value raised by Assert.
type Violation struct {
	Msg string
}

func (v Violation) Error() string { return v.Msg }

// Assert panics with a Violation if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(Violation{Msg: fmt.Sprintf(format, args...)})
	}
}
