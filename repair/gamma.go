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

func isGammaOffender(g *graph.Graph, h, terminal graph.NodeHandle, requested effect.GammaCurve) bool {
	n := g.Node(h)
	isTerminal := h == terminal

	if len(n.Incoming) == 0 {
		return isTerminal && n.OutputGammaCurve != requested && n.OutputGammaCurve != effect.GammaLinear
	}

	if n.Effect.EffectTypeID() == effect.TypeIDGammaCompression {
		return g.Node(n.Incoming[0]).OutputGammaCurve != effect.GammaLinear
	}

	if isTerminal && n.OutputGammaCurve != requested && n.OutputGammaCurve != effect.GammaLinear {
		return true
	}
	if n.OutputGammaCurve == effect.GammaInvalid {
		return true
	}
	if n.Effect.NeedsLinearLight() && n.OutputGammaCurve != effect.GammaLinear {
		return true
	}
	return false
}

// collectAskableInputs walks upstream from h through a chain of
// non-linear, non-GammaCompression nodes, collecting every zero-input
// node reached. ok is false if the walk hits a GammaCompression sink,
// meaning no amount of asking can fix this path — it needs an inserted
// GammaExpansion instead. A node already LINEAR ends the walk
// successfully with nothing to collect on that branch.
func collectAskableInputs(g *graph.Graph, h graph.NodeHandle) (inputs []graph.NodeHandle, ok bool) {
	n := g.Node(h)
	if n.OutputGammaCurve == effect.GammaLinear {
		return nil, true
	}
	if len(n.Incoming) == 0 {
		return []graph.NodeHandle{h}, true
	}
	if n.Effect.EffectTypeID() == effect.TypeIDGammaCompression {
		return nil, false
	}
	var all []graph.NodeHandle
	for _, in := range n.Incoming {
		sub, ok := collectAskableInputs(g, in)
		if !ok {
			return nil, false
		}
		all = append(all, sub...)
	}
	return all, true
}

// FixInternalGammaByAskingInputs is the first half of spec.md's
// two-phase gamma repair: for every node needing a gamma fix, it tries
// to resolve each non-linear input by asking the upstream Input
// effects, reachable without crossing an already-LINEAR boundary or a
// GammaCompression sink, to deliver linear output directly instead of
// inserting a conversion node. Resolves only what it safely can; leaves
// the rest for FixInternalGammaByInsertingNodes.
func FixInternalGammaByAskingInputs(g *graph.Graph, terminal graph.NodeHandle, requested effect.GammaCurve) {
	for iter := 0; ; iter++ {
		contract.Assert(iter < maxIterations, "repair: internal gamma ask-inputs pass did not converge within %d iterations", maxIterations)

		changed := false
		for _, h := range g.TopologicalSort(terminal) {
			if !isGammaOffender(g, h, terminal, requested) {
				continue
			}
			n := g.Node(h)
			for _, inHandle := range n.Incoming {
				if g.Node(inHandle).OutputGammaCurve == effect.GammaLinear {
					continue
				}
				asked, ok := collectAskableInputs(g, inHandle)
				if !ok || len(asked) == 0 {
					continue
				}
				if !allCanOutputLinear(g, asked) {
					continue
				}
				for _, a := range asked {
					ok2 := g.Node(a).Effect.SetInt("output_linear_gamma", 1)
					contract.Assert(ok2, "repair: input effect %q rejected output_linear_gamma", g.Node(a).Effect.EffectTypeID())
				}
				changed = true
			}
		}
		if !changed {
			return
		}
		attr.PropagateColorAndGamma(g, terminal)
	}
}

func allCanOutputLinear(g *graph.Graph, handles []graph.NodeHandle) bool {
	for _, h := range handles {
		in, ok := g.Node(h).Effect.(effect.Input)
		if !ok || !in.CanOutputLinearGamma() {
			return false
		}
	}
	return true
}

// FixInternalGammaByInsertingNodes is the second half of the two-phase
// gamma repair: for every node that still needs a gamma fix after
// asking, it splices a GammaExpansion(source=input's curve) for each
// non-linear input. The zero-input-terminal special case appends the
// GammaExpansion after the node instead of before, since a zero-input
// node has nothing upstream to splice into; in that case it returns the
// new terminal handle, otherwise it returns terminal unchanged.
func FixInternalGammaByInsertingNodes(g *graph.Graph, terminal graph.NodeHandle, requested effect.GammaCurve) graph.NodeHandle {
	for iter := 0; ; iter++ {
		contract.Assert(iter < maxIterations, "repair: internal gamma insert-nodes pass did not converge within %d iterations", maxIterations)

		var offenderHandle graph.NodeHandle
		found := false
		for _, h := range g.TopologicalSort(terminal) {
			if isGammaOffender(g, h, terminal, requested) {
				offenderHandle = h
				found = true
				break
			}
		}
		if !found {
			return terminal
		}

		offender := g.Node(offenderHandle)
		if len(offender.Incoming) == 0 {
			in, ok := offender.Effect.(effect.Input)
			contract.Assert(ok, "repair: zero-input terminal %q does not implement effect.Input", offender.Effect.EffectTypeID())
			exp := convert.NewGammaExpansion(in.GammaCurve())
			newHandle := g.AddEffect(exp, []graph.NodeHandle{offenderHandle})
			if offenderHandle == terminal {
				terminal = newHandle
			}
		} else {
			for _, inHandle := range offender.Incoming {
				if g.Node(inHandle).OutputGammaCurve == effect.GammaLinear {
					continue
				}
				exp := convert.NewGammaExpansion(g.Node(inHandle).OutputGammaCurve)
				convHandle := g.NewDetachedNode(exp)
				g.InsertBetween(inHandle, convHandle, offenderHandle)
			}
		}

		attr.PropagateColorAndGamma(g, terminal)
	}
}

// FixOutputGamma appends a GammaCompression after terminal if its gamma
// curve does not already match requested.
func FixOutputGamma(g *graph.Graph, terminal graph.NodeHandle, requested effect.GammaCurve) graph.NodeHandle {
	n := g.Node(terminal)
	if n.OutputGammaCurve == requested {
		return terminal
	}
	comp := convert.NewGammaCompression(requested)
	newTerminal := g.AddEffect(comp, []graph.NodeHandle{terminal})
	g.Node(newTerminal).OutputGammaCurve = requested
	return newTerminal
}
