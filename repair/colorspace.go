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

func needsColorspaceFix(n *graph.Node) bool {
	if n.OutputColorSpace == effect.ColorSpaceInvalid {
		return true
	}
	if n.Effect.NeedsSRGBPrimaries() && n.OutputColorSpace != effect.ColorSpaceSRGB {
		return true
	}
	return false
}

// FixInternalColorSpaces repeatedly finds a node that needs a colorspace
// fix and, for every input not already sRGB, splices a
// ColorspaceConversion(input space -> sRGB) between that input and the
// node, until the graph reaches a fixed point.
func FixInternalColorSpaces(g *graph.Graph, root graph.NodeHandle) {
	for iter := 0; ; iter++ {
		contract.Assert(iter < maxIterations, "repair: internal colorspace fix did not converge within %d iterations", maxIterations)

		order := g.TopologicalSort(root)
		var offender *graph.Node
		var offenderHandle graph.NodeHandle
		for _, h := range order {
			n := g.Node(h)
			if needsColorspaceFix(n) {
				offender, offenderHandle = n, h
				break
			}
		}
		if offender == nil {
			return
		}

		for _, inHandle := range offender.Incoming {
			in := g.Node(inHandle)
			if in.OutputColorSpace == effect.ColorSpaceSRGB {
				continue
			}
			conv := convert.NewColorspaceConversion(in.OutputColorSpace, effect.ColorSpaceSRGB)
			convHandle := g.NewDetachedNode(conv)
			g.InsertBetween(inHandle, convHandle, offenderHandle)
		}

		attr.PropagateColorAndGamma(g, root)
	}
}

// FixOutputColorSpace appends a ColorspaceConversion after the terminal
// node if its color space does not match requested.
func FixOutputColorSpace(g *graph.Graph, terminal graph.NodeHandle, requested effect.ColorSpace) graph.NodeHandle {
	n := g.Node(terminal)
	if n.OutputColorSpace == requested {
		return terminal
	}
	conv := convert.NewColorspaceConversion(n.OutputColorSpace, requested)
	newTerminal := g.AddEffect(conv, []graph.NodeHandle{terminal})
	g.Node(newTerminal).OutputColorSpace = requested
	return newTerminal
}
