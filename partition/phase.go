// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package partition

import (
	"time"

	"github.com/gogpu/fxchain/graph"
)

// Phase is one fused render pass: a maximal set of effects compiled
// into a single shader program.
type Phase struct {
	// Effects is the fused pass body, in topological order, ending at
	// OutputNode.
	Effects []graph.NodeHandle

	// Inputs is the ordered, deduplicated list of predecessor phases
	// this phase samples from as textures.
	Inputs []*Phase

	OutputNode graph.NodeHandle

	OutputWidth, OutputHeight               int
	VirtualOutputWidth, VirtualOutputHeight int

	// InputNeedsMipmaps is true if any effect in the phase needs
	// mipmaps; propagated to the phase's zero-input effects via
	// SetInt("needs_mipmaps", ...) by ConstructPhase, before size
	// inference runs.
	InputNeedsMipmaps bool

	// CompiledProgramHandle is filled in once shaderemit.CompilePhase's
	// output has been handed to a gpupool.Pool.
	CompiledProgramHandle uint64

	// TimeElapsedNS/NumMeasuredIterations are the phase-timing
	// supplement from SPEC_FULL.md section 5 item 1, populated by a
	// gpupool.Pool that implements the optional TimerQuery capability.
	TimeElapsedNS         time.Duration
	NumMeasuredIterations int
}

// Partitioner holds the state threaded through phase construction: the
// graph being partitioned, a per-terminal-node memo table (spec.md
// section 4.4's "Memoization: a map from terminal node -> phase"), and
// the node -> containing-phase back-reference used by debug dumps and
// tests.
type Partitioner struct {
	g    *graph.Graph
	memo map[graph.NodeHandle]*Phase

	// Phases lists every constructed Phase in completion order: an input
	// phase always appears before the phase that samples it.
	Phases []*Phase

	// NodePhases maps a node to the index (into Phases) of every phase
	// it appears in. Usually one entry; more than one only for a
	// zero-input node shared across phases to avoid a bounce.
	NodePhases map[graph.NodeHandle][]int
}

// NewPartitioner creates a Partitioner over g. Call ConstructPhase once,
// on the graph's terminal node, to populate Phases and NodePhases.
func NewPartitioner(g *graph.Graph) *Partitioner {
	return &Partitioner{
		g:          g,
		memo:       make(map[graph.NodeHandle]*Phase),
		NodePhases: make(map[graph.NodeHandle][]int),
	}
}

func (p *Partitioner) recordPhase(ph *Phase) int {
	idx := len(p.Phases)
	p.Phases = append(p.Phases, ph)
	for _, h := range ph.Effects {
		p.NodePhases[h] = append(p.NodePhases[h], idx)
	}
	return idx
}
