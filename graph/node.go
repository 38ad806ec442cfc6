// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import "github.com/gogpu/fxchain/effect"

// NodeHandle is a stable index into a Graph's node arena. Handles count
// up from 0, so the zero value names the first node added;
// Graph.AddInput/AddEffect/etc. are the only way to obtain one.
type NodeHandle int

// Node is one vertex of the effect graph: an exclusive owner of an
// effect.Effect plus the attributes the attribute propagator, repair
// planner, and phase partitioner derive about it.
type Node struct {
	Effect effect.Effect

	// Incoming is ordered; Incoming[i] feeds input i of Effect.
	// Outgoing order carries no meaning.
	Incoming []NodeHandle
	Outgoing []NodeHandle

	Disabled bool

	OutputColorSpace effect.ColorSpace
	OutputGammaCurve effect.GammaCurve
	OutputAlphaType  effect.AlphaType

	NeedsMipmaps     bool
	OneToOneSampling bool
	OutputWidth      int
	OutputHeight     int

	// BoundSamplerNum is set at execute time by the phase executor; -1
	// means "not currently bound to a texture unit".
	BoundSamplerNum int
}

func newNode(eff effect.Effect) *Node {
	return &Node{
		Effect:           eff,
		OutputColorSpace: effect.ColorSpaceInvalid,
		OutputGammaCurve: effect.GammaInvalid,
		OutputAlphaType:  effect.AlphaInvalid,
		BoundSamplerNum:  -1,
	}
}
