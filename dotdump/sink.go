// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dotdump

import (
	"fmt"
	"os"
)

// Sink receives one DOT document per rewrite step. step and label mirror
// the original's fixed filenames ("step0-start.dot", "step1-rewritten.dot",
// ...); a Sink is free to use them however it wants, including ignoring
// them entirely.
type Sink interface {
	WriteDot(step int, label string, dot string) error
}

// FileSink writes each document to "step<N>-<label>.dot" in Dir, exactly
// as EffectChain::output_dot names its files, except Dir lets a caller
// redirect the whole sequence somewhere other than the working directory.
type FileSink struct {
	Dir string
}

func (s FileSink) WriteDot(step int, label string, dot string) error {
	name := fmt.Sprintf("step%d-%s.dot", step, label)
	if s.Dir != "" {
		name = s.Dir + "/" + name
	}
	return os.WriteFile(name, []byte(dot), 0o644)
}
