// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package partition

import (
	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
)

// ConstructPhase builds (or returns the memoized) Phase rooted at
// output, per spec.md section 4.4: a depth-first walk using an explicit
// work stack for the phase body, recursing into ConstructPhase only
// when a cut is decided at an input.
func (p *Partitioner) ConstructPhase(output graph.NodeHandle) *Phase {
	if ph, ok := p.memo[output]; ok {
		return ph
	}

	p.g.Node(output).OneToOneSampling = p.g.Node(output).Effect.OneToOneSampling()

	phase := &Phase{OutputNode: output}
	included := make(map[graph.NodeHandle]bool)
	seenInputPhase := make(map[*Phase]bool)

	stack := []graph.NodeHandle{output}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := p.g.Node(h)

		if n.Effect.NeedsMipmaps() == effect.MipmapNeedsMipmaps {
			n.NeedsMipmaps = true
		}

		if included[h] {
			continue
		}
		included[h] = true

		for _, d := range n.Incoming {
			dNode := p.g.Node(d)

			// Propagate needs-mipmaps down the dependency chain regardless
			// of whether this edge ends up cut into its own phase: a
			// zero-input leaf's inability to supply mipmaps is handled as
			// its own cut reason in shouldCut, but an inner effect just
			// inherits the flag so its own deps get asked in turn.
			if n.NeedsMipmaps && len(dNode.Incoming) != 0 {
				dNode.NeedsMipmaps = true
			}

			if p.shouldCut(n, d) {
				inputPhase := p.ConstructPhase(d)
				if !seenInputPhase[inputPhase] {
					seenInputPhase[inputPhase] = true
					phase.Inputs = append(phase.Inputs, inputPhase)
				}
				continue
			}
			dNode.OneToOneSampling = n.OneToOneSampling && dNode.Effect.OneToOneSampling()
			stack = append(stack, d)
		}
	}

	phase.Effects = topoSortSubset(p.g, output, included)

	for _, h := range phase.Effects {
		if p.g.Node(h).NeedsMipmaps {
			phase.InputNeedsMipmaps = true
			break
		}
	}
	if phase.InputNeedsMipmaps {
		for _, h := range phase.Effects {
			n := p.g.Node(h)
			if len(n.Incoming) == 0 {
				n.Effect.SetInt("needs_mipmaps", 1)
			}
		}
	}

	p.memo[output] = phase
	p.recordPhase(phase)
	return phase
}

// shouldCut decides, for the edge n <- d (d feeds input d into n), the
// five OR-ed cut reasons of spec.md section 4.4.
func (p *Partitioner) shouldCut(n *graph.Node, d graph.NodeHandle) bool {
	dNode := p.g.Node(d)

	// 1. Texture bounce required.
	if n.Effect.NeedsTextureBounce() && !dNode.Effect.IsSingleTexture() && !dNode.Effect.OverrideDisableBounce() {
		return true
	}

	// 2. Mipmap propagation.
	if n.NeedsMipmaps {
		if len(dNode.Incoming) == 0 {
			in, ok := dNode.Effect.(effect.Input)
			if !ok || !in.CanSupplyMipmaps() {
				return true
			}
		}
	}

	// 3. Fan-out.
	if consumerCount(dNode) > 1 {
		if !dNode.Effect.IsSingleTexture() {
			return true
		}
		if anyConsumerNeedsBounce(p.g, d) {
			return true
		}
	}

	// 4. Virtual output size.
	if dNode.Effect.SetsVirtualOutputSize() {
		return true
	}

	// 5. Resize without one-to-one sampling.
	if dNode.Effect.ChangesOutputSize() && !n.OneToOneSampling {
		return true
	}

	return false
}

func consumerCount(n *graph.Node) int {
	seen := make(map[graph.NodeHandle]bool, len(n.Outgoing))
	for _, h := range n.Outgoing {
		seen[h] = true
	}
	return len(seen)
}

func anyConsumerNeedsBounce(g *graph.Graph, d graph.NodeHandle) bool {
	dNode := g.Node(d)
	seen := make(map[graph.NodeHandle]bool)
	for _, consumer := range dNode.Outgoing {
		if seen[consumer] {
			continue
		}
		seen[consumer] = true
		if g.Node(consumer).Effect.NeedsTextureBounce() {
			return true
		}
	}
	return false
}

// topoSortSubset orders the nodes in include (all reachable backward
// from root through edges that stay inside include) so that every node
// appears after its in-phase inputs. Edges leaving include (phase cut
// points) are not followed — the node on the far side belongs to a
// different, already-recorded Phase.
func topoSortSubset(g *graph.Graph, root graph.NodeHandle, include map[graph.NodeHandle]bool) []graph.NodeHandle {
	visited := make(map[graph.NodeHandle]bool, len(include))
	order := make([]graph.NodeHandle, 0, len(include))

	var visit func(h graph.NodeHandle)
	visit = func(h graph.NodeHandle) {
		if visited[h] {
			return
		}
		visited[h] = true
		for _, in := range g.Node(h).Incoming {
			if include[in] {
				visit(in)
			}
		}
		order = append(order, h)
	}
	visit(root)
	return order
}
