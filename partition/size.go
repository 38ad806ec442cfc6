// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package partition

import (
	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
)

// InferSizes runs size inference over every phase, in the order they
// were constructed (Partitioner.Phases) — which is always input-phases-
// before-dependents, so a phase can always read its input phases'
// already-computed output sizes. aspectNom/aspectDenom is the chain's
// configured nominal aspect ratio, used by FindOutputSize's fallback.
func (p *Partitioner) InferSizes(aspectNom, aspectDenom int) {
	for _, phase := range p.Phases {
		p.InformInputSizes(phase)
		p.FindOutputSize(phase, aspectNom, aspectDenom)
	}
}

// InformInputSizes runs the forward size-propagation rule (spec.md
// section 4.4, "Size inference per phase") over every node in phase, in
// the phase's own topological order: zero-input nodes take their size
// from the underlying Input; nodes at a phase boundary take their size
// from the predecessor phase's virtual (if set) or real output size;
// everything else inherits its inputs' common size, or 0x0 if they
// disagree, unless the effect declares ChangesOutputSize, in which case
// the effect itself is asked.
func (p *Partitioner) InformInputSizes(phase *Phase) {
	included := make(map[graph.NodeHandle]bool, len(phase.Effects))
	for _, h := range phase.Effects {
		included[h] = true
	}
	boundary := make(map[graph.NodeHandle]*Phase, len(phase.Inputs))
	for _, in := range phase.Inputs {
		boundary[in.OutputNode] = in
	}

	for _, h := range phase.Effects {
		n := p.g.Node(h)

		if len(n.Incoming) == 0 {
			in := n.Effect.(effect.Input)
			n.OutputWidth, n.OutputHeight = in.Width(), in.Height()
			continue
		}

		w, ht, agree := commonInputSize(p.g, n, included, boundary)
		if n.Effect.ChangesOutputSize() {
			n.OutputWidth, n.OutputHeight = n.Effect.OutputSize(w, ht)
			continue
		}
		if !agree {
			n.OutputWidth, n.OutputHeight = 0, 0
			continue
		}
		n.OutputWidth, n.OutputHeight = w, ht
	}
}

// commonInputSize returns the shared (width, height) of n's inputs, and
// whether they actually agree. A boundary input (a cut point feeding
// this phase from another phase) contributes its virtual output size if
// its effect set one, else its real output size.
func commonInputSize(g *graph.Graph, n *graph.Node, included map[graph.NodeHandle]bool, boundary map[graph.NodeHandle]*Phase) (width, height int, agree bool) {
	agree = true
	first := true
	for _, inHandle := range n.Incoming {
		iw, ih := inputSize(g, inHandle, included, boundary)
		if first {
			width, height = iw, ih
			first = false
			continue
		}
		if iw != width || ih != height {
			agree = false
		}
	}
	return width, height, agree
}

func inputSize(g *graph.Graph, h graph.NodeHandle, included map[graph.NodeHandle]bool, boundary map[graph.NodeHandle]*Phase) (int, int) {
	if included[h] {
		n := g.Node(h)
		return n.OutputWidth, n.OutputHeight
	}
	bp := boundary[h]
	if bp == nil {
		// Not in this phase and not a recorded boundary: can only happen
		// for a node whose phase hasn't been size-inferred yet, which
		// would be a bug in the Partitioner.Phases ordering.
		n := g.Node(h)
		return n.OutputWidth, n.OutputHeight
	}
	if g.Node(bp.OutputNode).Effect.SetsVirtualOutputSize() {
		return bp.VirtualOutputWidth, bp.VirtualOutputHeight
	}
	return bp.OutputWidth, bp.OutputHeight
}

// FindOutputSize computes phase's own output size (spec.md section 4.4,
// "Phase output size"): the terminal node's size if the forward pass
// above resolved it cleanly, else every one of the phase's true
// boundary-Phase inputs and zero-input leaf effects fitted to the
// aspect ratio and maxed element-wise, mirroring find_output_size's
// second loop nest rather than looking only at the terminal node's
// direct predecessors (a multi-input effect feeding terminal may have
// already collapsed its own size to 0x0 on the size-disagreement path
// in InformInputSizes, which would otherwise make the phase's output
// size wrongly zero for an ordinary fan-in composite).
func (p *Partitioner) FindOutputSize(phase *Phase, aspectNom, aspectDenom int) {
	terminal := p.g.Node(phase.OutputNode)

	if terminal.OutputWidth != 0 && terminal.OutputHeight != 0 {
		phase.OutputWidth, phase.OutputHeight = terminal.OutputWidth, terminal.OutputHeight
	} else {
		var w, h int
		for _, in := range phase.Inputs {
			fw, fh := SizeRectangleToFit(in.VirtualOutputWidth, in.VirtualOutputHeight, aspectNom, aspectDenom)
			if fw > w {
				w = fw
			}
			if fh > h {
				h = fh
			}
		}
		for _, eh := range phase.Effects {
			n := p.g.Node(eh)
			if len(n.Incoming) != 0 {
				continue
			}
			in := n.Effect.(effect.Input)
			fw, fh := SizeRectangleToFit(in.Width(), in.Height(), aspectNom, aspectDenom)
			if fw > w {
				w = fw
			}
			if fh > h {
				h = fh
			}
		}
		phase.OutputWidth, phase.OutputHeight = w, h
	}

	if terminal.Effect.SetsVirtualOutputSize() {
		phase.VirtualOutputWidth, phase.VirtualOutputHeight = terminal.OutputWidth, terminal.OutputHeight
	} else {
		phase.VirtualOutputWidth, phase.VirtualOutputHeight = phase.OutputWidth, phase.OutputHeight
	}
}

// SizeRectangleToFit scales (w, h) up to the smallest rectangle that
// both contains it and matches the nom:denom aspect ratio, growing
// whichever dimension is short. The grown dimension is computed with
// integer division and so rounded down, which makes the aspect match
// approximate. Both returned dimensions only ever grow
// relative to the input, which is what makes the phase-output
// element-wise maximum in FindOutputSize monotone.
func SizeRectangleToFit(w, h, nom, denom int) (int, int) {
	if w == 0 || h == 0 || nom == 0 || denom == 0 {
		return w, h
	}
	wFromH := h * nom / denom
	if wFromH >= w {
		return wFromH, h
	}
	hFromW := w * denom / nom
	return w, hFromW
}
