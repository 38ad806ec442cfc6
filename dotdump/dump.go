// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dotdump

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
	"github.com/gogpu/fxchain/partition"
)

var nodeTmpl = template.Must(template.New("node").Parse(
	`  n{{.ID}} [label="{{.Label}}"{{if .Filled}} style="filled" fillcolor="/accent8/{{.FillColor}}"{{end}}];
`))

var edgeTmpl = template.Must(template.New("edge").Parse(
	`  {{.From}} -> {{.To}}{{if .Label}} [label="{{.Label}}"]{{end}};
`))

type nodeData struct {
	ID        int
	Label     string
	Filled    bool
	FillColor int
}

type edgeData struct {
	From, To, Label string
}

// Dump renders g, optionally annotated by a Partitioner's phase
// membership, as a single Graphviz digraph document — the Go analogue of
// EffectChain::output_dot. part may be nil for the early rewrite steps
// that run before partitioning.
func Dump(g *graph.Graph, root graph.NodeHandle, part *partition.Partitioner) string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("  output [shape=box label=\"(output)\"];\n")

	for _, h := range g.Handles() {
		n := g.Node(h)

		data := nodeData{ID: int(h), Label: n.Effect.EffectTypeID()}
		if part != nil {
			if phases := part.NodePhases[h]; len(phases) == 1 {
				data.Filled = true
				data.FillColor = (phases[0] % 8) + 1
			} else if len(phases) > 1 {
				data.Filled = true
				data.FillColor = (phases[0] % 8) + 1
				data.Label += " [in multiple phases]"
			}
		}
		nodeTmpl.Execute(&b, data)

		fromID := nodeID(h)
		for _, out := range n.Outgoing {
			edgeTmpl.Execute(&b, edgeData{
				From:  fromID,
				To:    nodeID(out),
				Label: edgeLabel(n, g.Node(out)),
			})
		}
		if len(n.Outgoing) == 0 && !n.Disabled {
			edgeTmpl.Execute(&b, edgeData{
				From:  fromID,
				To:    "output",
				Label: edgeLabel(n, nil),
			})
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeID(h graph.NodeHandle) string {
	return "n" + strconv.Itoa(int(h))
}

// edgeLabel mirrors EffectChain::get_labels_for_edge: to is nil for the
// synthetic edge into the chain's virtual "output" node.
func edgeLabel(from, to *graph.Node) string {
	var labels []string

	if to != nil && to.Effect.NeedsTextureBounce() {
		labels = append(labels, "needs_bounce")
	}
	if from.Effect.ChangesOutputSize() {
		labels = append(labels, "resize")
	}

	switch from.OutputColorSpace {
	case effect.ColorSpaceInvalid:
		labels = append(labels, "spc[invalid]")
	case effect.ColorSpaceRec601525:
		labels = append(labels, "spc[rec601-525]")
	case effect.ColorSpaceRec601625:
		labels = append(labels, "spc[rec601-625]")
	}

	switch from.OutputGammaCurve {
	case effect.GammaInvalid:
		labels = append(labels, "gamma[invalid]")
	case effect.GammaSRGB:
		labels = append(labels, "gamma[sRGB]")
	case effect.GammaRec601:
		labels = append(labels, "gamma[rec601/709]")
	}

	switch from.OutputAlphaType {
	case effect.AlphaInvalid:
		labels = append(labels, "alpha[invalid]")
	case effect.AlphaBlank:
		labels = append(labels, "alpha[blank]")
	case effect.AlphaPostmultiplied:
		labels = append(labels, "alpha[postmult]")
	}

	return strings.Join(labels, ", ")
}
