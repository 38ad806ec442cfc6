// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

// TopologicalSort returns every enabled node reachable from root by
// walking Incoming edges backward, ordered so that a node always appears
// after all of its inputs. Disabled nodes are skipped entirely, as if
// they and their edges did not exist.
//
// The order is a post-order DFS reversed, matching Movit's stable
// topological_sort: for a given graph and root the result is always the
// same sequence, which matters because phase construction and shader
// emission key off this order for reproducible output.
func (g *Graph) TopologicalSort(root NodeHandle) []NodeHandle {
	visited := make(map[NodeHandle]bool)
	var finished []NodeHandle

	var visit func(h NodeHandle)
	visit = func(h NodeHandle) {
		if visited[h] {
			return
		}
		visited[h] = true
		n := g.Node(h)
		if n.Disabled {
			return
		}
		for _, in := range n.Incoming {
			if !g.Node(in).Disabled {
				visit(in)
			}
		}
		finished = append(finished, h)
	}
	visit(root)
	return finished
}
