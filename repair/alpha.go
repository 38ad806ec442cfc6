// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package repair

import (
	"github.com/gogpu/fxchain/attr"
	"github.com/gogpu/fxchain/convert"
	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
	"github.com/gogpu/fxchain/internal/contract"
)

func desiredAlpha(n *graph.Node) effect.AlphaType {
	if n.Effect.EffectTypeID() == effect.TypeIDGammaCompression {
		return effect.AlphaPostmultiplied
	}
	return effect.AlphaPremultiplied
}

// FixInternalAlpha repeatedly finds a node with output_alpha_type ==
// INVALID and splices AlphaMultiplication/AlphaDivision nodes between it
// and whichever inputs disagree with its desired alpha type.
func FixInternalAlpha(g *graph.Graph, root graph.NodeHandle) {
	for iter := 0; ; iter++ {
		contract.Assert(iter < maxIterations, "repair: internal alpha fix did not converge within %d iterations", maxIterations)

		order := g.TopologicalSort(root)
		var offender *graph.Node
		var offenderHandle graph.NodeHandle
		for _, h := range order {
			n := g.Node(h)
			if n.OutputAlphaType == effect.AlphaInvalid {
				offender, offenderHandle = n, h
				break
			}
		}
		if offender == nil {
			return
		}

		contract.Assert(offender.Effect.EffectTypeID() != effect.TypeIDGammaExpansion,
			"repair: GammaExpansion cannot itself be alpha-repaired (premultiplied + nonlinear is meaningless)")

		want := desiredAlpha(offender)
		for _, inHandle := range offender.Incoming {
			in := g.Node(inHandle)
			if in.OutputAlphaType == want || in.OutputAlphaType == effect.AlphaBlank {
				continue
			}
			var conv effect.Effect
			if want == effect.AlphaPremultiplied {
				conv = convert.NewAlphaMultiplication()
			} else {
				conv = convert.NewAlphaDivision()
			}
			convHandle := g.NewDetachedNode(conv)
			g.InsertBetween(inHandle, convHandle, offenderHandle)
		}

		attr.PropagateAlpha(g, root)
	}
}

// FixOutputAlpha appends an AlphaMultiplication or AlphaDivision after
// the terminal node if its alpha does not match the requested output
// alpha format. A BLANK terminal alpha is left alone: there is no color
// to repremultiply.
func FixOutputAlpha(g *graph.Graph, terminal graph.NodeHandle, requested effect.OutputAlphaFormat) graph.NodeHandle {
	n := g.Node(terminal)
	if n.OutputAlphaType == effect.AlphaBlank {
		return terminal
	}

	var want effect.AlphaType
	if requested == effect.OutputAlphaFormatPremultiplied {
		want = effect.AlphaPremultiplied
	} else {
		want = effect.AlphaPostmultiplied
	}
	if n.OutputAlphaType == want {
		return terminal
	}

	var conv effect.Effect
	if want == effect.AlphaPremultiplied {
		conv = convert.NewAlphaMultiplication()
	} else {
		conv = convert.NewAlphaDivision()
	}
	newTerminal := g.AddEffect(conv, []graph.NodeHandle{terminal})
	g.Node(newTerminal).OutputAlphaType = want
	return newTerminal
}
