// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package attr

import (
	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
	"github.com/gogpu/fxchain/internal/contract"
)

// PropagateAlpha runs the alpha-type propagation pass over every
// enabled node reachable from root, in topological order.
func PropagateAlpha(g *graph.Graph, root graph.NodeHandle) {
	for _, h := range g.TopologicalSort(root) {
		n := g.Node(h)
		if n.Disabled {
			continue
		}
		n.OutputAlphaType = alphaForNode(g, n)
	}
}

func alphaForNode(g *graph.Graph, n *graph.Node) effect.AlphaType {
	if len(n.Incoming) == 0 {
		return alphaForZeroInput(n)
	}

	switch n.Effect.EffectTypeID() {
	case effect.TypeIDAlphaMultiplication:
		in := g.Node(n.Incoming[0]).OutputAlphaType
		contract.Assert(in == effect.AlphaPostmultiplied,
			"attr: AlphaMultiplication input alpha is %v, want postmultiplied", in)
		return effect.AlphaPremultiplied
	case effect.TypeIDAlphaDivision:
		in := g.Node(n.Incoming[0]).OutputAlphaType
		contract.Assert(in == effect.AlphaPremultiplied,
			"attr: AlphaDivision input alpha is %v, want premultiplied", in)
		return effect.AlphaPostmultiplied
	case effect.TypeIDGammaExpansion, effect.TypeIDGammaCompression:
		in := g.Node(n.Incoming[0]).OutputAlphaType
		switch in {
		case effect.AlphaBlank:
			return effect.AlphaBlank
		case effect.AlphaPostmultiplied:
			return effect.AlphaPostmultiplied
		default:
			return effect.AlphaInvalid
		}
	}

	return alphaForGeneralEffect(g, n)
}

func alphaForZeroInput(n *graph.Node) effect.AlphaType {
	switch n.Effect.AlphaHandling() {
	case effect.OutputBlankAlpha:
		return effect.AlphaBlank
	case effect.InputAndOutputPremultipliedAlpha:
		contract.Assert(n.OutputGammaCurve == effect.GammaLinear,
			"attr: zero-input effect %q declares premultiplied alpha but gamma is not linear", n.Effect.EffectTypeID())
		return effect.AlphaPremultiplied
	case effect.OutputPostmultipliedAlpha:
		return effect.AlphaPostmultiplied
	default:
		contract.Assert(false, "attr: zero-input effect %q has unsupported alpha handling %v", n.Effect.EffectTypeID(), n.Effect.AlphaHandling())
		return effect.AlphaInvalid
	}
}

func alphaForGeneralEffect(g *graph.Graph, n *graph.Node) effect.AlphaType {
	var anyInvalid, anyPre, anyPost bool
	for _, h := range n.Incoming {
		switch g.Node(h).OutputAlphaType {
		case effect.AlphaInvalid:
			anyInvalid = true
		case effect.AlphaPremultiplied:
			anyPre = true
		case effect.AlphaPostmultiplied:
			anyPost = true
		case effect.AlphaBlank:
			// ignored for classification
		}
	}

	if anyInvalid {
		return effect.AlphaInvalid
	}
	if anyPre && anyPost {
		return effect.AlphaInvalid
	}

	handling := n.Effect.AlphaHandling()
	requiresPremultiplied := handling == effect.InputAndOutputPremultipliedAlpha ||
		handling == effect.InputPremultipliedAlphaKeepBlank

	if requiresPremultiplied {
		if anyPost {
			return effect.AlphaInvalid
		}
		if !anyPre && !anyPost && handling == effect.InputPremultipliedAlphaKeepBlank {
			return effect.AlphaBlank
		}
		return effect.AlphaPremultiplied
	}

	// DONT_CARE and any other non-premultiplied-requiring declaration.
	switch {
	case anyPre:
		return effect.AlphaPremultiplied
	case anyPost:
		return effect.AlphaPostmultiplied
	default:
		return effect.AlphaBlank
	}
}
