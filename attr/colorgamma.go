// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package attr

import (
	"github.com/gogpu/fxchain/convert"
	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
)

// PropagateColorAndGamma runs the color-space and gamma-curve
// propagation pass over every enabled node reachable from root, in
// topological order.
//
// Zero-input nodes copy their declared format straight from the
// underlying Input effect. Inner nodes inherit the shared value of
// their inputs, or fall back to INVALID if the inputs disagree.
// Colorspace-conversion and gamma-expansion/compression nodes are
// sentinels: their output attribute is fixed by the conversion they
// perform rather than inherited from their input, so this pass computes
// it directly from the effect instead of running the usual inheritance
// rule.
func PropagateColorAndGamma(g *graph.Graph, root graph.NodeHandle) {
	for _, h := range g.TopologicalSort(root) {
		n := g.Node(h)
		if n.Disabled {
			continue
		}
		propagateColorSpace(g, n)
		propagateGamma(g, n)
	}
}

func propagateColorSpace(g *graph.Graph, n *graph.Node) {
	if conv, ok := n.Effect.(*convert.ColorspaceConversion); ok {
		n.OutputColorSpace = conv.Destination
		return
	}
	if len(n.Incoming) == 0 {
		if in, ok := n.Effect.(effect.Input); ok {
			n.OutputColorSpace = in.ColorSpace()
		} else {
			n.OutputColorSpace = effect.ColorSpaceInvalid
		}
		return
	}
	n.OutputColorSpace = commonColorSpace(g, n.Incoming)
}

func commonColorSpace(g *graph.Graph, inputs []graph.NodeHandle) effect.ColorSpace {
	first := g.Node(inputs[0]).OutputColorSpace
	for _, h := range inputs[1:] {
		if g.Node(h).OutputColorSpace != first {
			return effect.ColorSpaceInvalid
		}
	}
	return first
}

func propagateGamma(g *graph.Graph, n *graph.Node) {
	if _, ok := n.Effect.(*convert.GammaExpansion); ok {
		n.OutputGammaCurve = effect.GammaLinear
		return
	}
	if comp, ok := n.Effect.(*convert.GammaCompression); ok {
		n.OutputGammaCurve = comp.Destination
		return
	}
	if len(n.Incoming) == 0 {
		if in, ok := n.Effect.(effect.Input); ok {
			n.OutputGammaCurve = in.GammaCurve()
		} else {
			n.OutputGammaCurve = effect.GammaInvalid
		}
		return
	}
	n.OutputGammaCurve = commonGamma(g, n.Incoming)
}

func commonGamma(g *graph.Graph, inputs []graph.NodeHandle) effect.GammaCurve {
	first := g.Node(inputs[0]).OutputGammaCurve
	for _, h := range inputs[1:] {
		if g.Node(h).OutputGammaCurve != first {
			return effect.GammaInvalid
		}
	}
	return first
}
