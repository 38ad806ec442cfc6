// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fxchain

import (
	"github.com/gogpu/fxchain/convert"
	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
)

// appendYCbCrConversion and appendDither implement the last two steps of
// the output finisher (spec.md section 4.6): each appends a convert
// package node after the current terminal and copies the prior
// terminal's propagated color space, gamma curve, and alpha type onto
// it, since both conversions are transparent to those attributes.

func appendYCbCrConversion(g *graph.Graph, terminal graph.NodeHandle, format effect.YCbCrFormat, splitting effect.YCbCrOutputSplitting) graph.NodeHandle {
	prev := g.Node(terminal)
	conv := convert.NewYCbCrConversion(format, splitting)
	next := g.AddEffect(conv, []graph.NodeHandle{terminal})
	n := g.Node(next)
	n.OutputColorSpace = prev.OutputColorSpace
	n.OutputGammaCurve = prev.OutputGammaCurve
	n.OutputAlphaType = prev.OutputAlphaType
	return next
}

func appendDither(g *graph.Graph, terminal graph.NodeHandle, numBits int) graph.NodeHandle {
	prev := g.Node(terminal)
	conv := convert.NewDither(numBits)
	next := g.AddEffect(conv, []graph.NodeHandle{terminal})
	n := g.Node(next)
	n.OutputColorSpace = prev.OutputColorSpace
	n.OutputGammaCurve = prev.OutputGammaCurve
	n.OutputAlphaType = prev.OutputAlphaType
	return next
}
