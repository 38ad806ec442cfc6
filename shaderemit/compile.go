// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaderemit

import (
	"fmt"
	"strings"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/graph"
	"github.com/gogpu/fxchain/internal/contract"
	"github.com/gogpu/fxchain/partition"
)

// ProgramSource is the textual output of CompilePhase: enough for a
// gpupool.Pool to compile, link, and introspect a phase's program.
type ProgramSource struct {
	FragmentShader string
	VertexShader   string

	// OutputNames is the set of fragment shader output locations this
	// phase writes, in declaration order: {"FragColor"},
	// {"Y", "Chroma"}, or {"Y", "Cb", "Cr"}, optionally with "RGBA"
	// appended.
	OutputNames []string

	// Uniforms is every effect's registered uniform, name-prefixed by
	// its owning effect's per-phase id (e.g. "eff2_strength"). Samplers
	// for phase inputs are included alongside effect samplers.
	Uniforms effect.Uniforms
}

// YCbCrOutput configures output routing for the final phase when the
// chain has a YCbCr output attached.
type YCbCrOutput struct {
	Splitting effect.YCbCrOutputSplitting
	AlsoRGBA  bool
}

// Options configures one CompilePhase call.
type Options struct {
	IsFinalPhase bool
	YCbCr        *YCbCrOutput
	FlipOrigin   bool
}

const fragmentHeaderPrelude = "#version 310 es\nprecision highp float;\n"

// CompilePhase implements spec.md section 4.5: header, input samplers,
// effect IDs, per-effect fragment composition with PREFIX rewriting,
// terminal binding, output routing, footer, and uniform collection.
func CompilePhase(g *graph.Graph, phase *partition.Phase, opts Options) *ProgramSource {
	var header, body strings.Builder
	header.WriteString(fragmentHeaderPrelude)

	if opts.IsFinalPhase && opts.YCbCr != nil && opts.YCbCr.AlsoRGBA {
		header.WriteString("#define YCBCR_ALSO_OUTPUT_RGBA 1\n")
	}

	nodeID := make(map[graph.NodeHandle]string, len(phase.Effects))
	for k, h := range phase.Effects {
		nodeID[h] = fmt.Sprintf("eff%d", k)
	}

	boundaryIndex := make(map[graph.NodeHandle]int, len(phase.Inputs))
	for i, in := range phase.Inputs {
		boundaryIndex[in.OutputNode] = i
	}

	var uniforms effect.Uniforms

	for i := range phase.Inputs {
		fmt.Fprintf(&header, "uniform sampler2D tex_in%d;\n", i)
		fmt.Fprintf(&header, "vec4 in%d(vec2 tc) { return texture(tex_in%d, tc); }\n", i, i)
		var unit int32
		uniforms.Sampler2D = append(uniforms.Sampler2D, effect.UniformSampler2D{
			Name: fmt.Sprintf("tex_in%d", i), Value: &unit, NumValues: 1,
		})
	}

	argRef := func(d graph.NodeHandle) string {
		if id, ok := nodeID[d]; ok {
			return id
		}
		if i, ok := boundaryIndex[d]; ok {
			return fmt.Sprintf("in%d", i)
		}
		contract.Assert(false, "shaderemit: input node %d is neither in-phase nor a recorded phase input", d)
		return ""
	}

	for _, h := range phase.Effects {
		n := g.Node(h)
		id := nodeID[h]
		eff := n.Effect

		switch len(n.Incoming) {
		case 0:
			// no INPUT macro: the effect samples its own bound texture.
		case 1:
			fmt.Fprintf(&body, "#define INPUT %s\n", argRef(n.Incoming[0]))
		default:
			for i, d := range n.Incoming {
				fmt.Fprintf(&body, "#define INPUT%d %s\n", i+1, argRef(d))
			}
		}
		fmt.Fprintf(&body, "#define FUNCNAME %s\n", id)

		body.WriteString(RewritePrefix(eff.OutputFragmentShader(), id))

		switch len(n.Incoming) {
		case 1:
			body.WriteString("#undef INPUT\n")
		default:
			for i := range n.Incoming {
				fmt.Fprintf(&body, "#undef INPUT%d\n", i+1)
			}
		}
		body.WriteString("#undef FUNCNAME\n")

		collectUniforms(&uniforms, eff.Uniforms(), id)
	}

	terminalID := nodeID[phase.OutputNode]
	fmt.Fprintf(&body, "#define INPUT %s\n", terminalID)

	outputNames := outputRouting(&header, opts)

	emitUniformBlock(&header, &uniforms)

	body.WriteString(footerTemplate)

	return &ProgramSource{
		FragmentShader: header.String() + body.String(),
		VertexShader:   vertexShaderSource(opts.FlipOrigin),
		OutputNames:    outputNames,
		Uniforms:       uniforms,
	}
}

func outputRouting(header *strings.Builder, opts Options) []string {
	if !opts.IsFinalPhase || opts.YCbCr == nil {
		return []string{"FragColor"}
	}
	switch opts.YCbCr.Splitting {
	case effect.YCbCrOutputPlanar:
		header.WriteString("#define YCBCR_OUTPUT_PLANAR 1\n")
		if opts.YCbCr.AlsoRGBA {
			return []string{"Y", "Cb", "Cr", "RGBA"}
		}
		return []string{"Y", "Cb", "Cr"}
	case effect.YCbCrOutputSplitYAndCbCr:
		header.WriteString("#define YCBCR_OUTPUT_SPLIT_Y_AND_CBCR 1\n")
		if opts.YCbCr.AlsoRGBA {
			return []string{"Y", "Chroma", "RGBA"}
		}
		return []string{"Y", "Chroma"}
	default:
		if opts.YCbCr.AlsoRGBA {
			return []string{"FragColor", "RGBA"}
		}
		return []string{"FragColor"}
	}
}

const footerTemplate = `
in vec2 tc;

void main() {
	vec4 result = INPUT(tc);
#if defined(YCBCR_OUTPUT_PLANAR)
	Y = vec4(result.r, result.r, result.r, 1.0);
	Cb = vec4(result.g, result.g, result.g, 1.0);
	Cr = vec4(result.b, result.b, result.b, 1.0);
#elif defined(YCBCR_OUTPUT_SPLIT_Y_AND_CBCR)
	Y = vec4(result.r, result.r, result.r, 1.0);
	Chroma = vec4(result.g, result.b, 0.0, 1.0);
#else
	FragColor = result;
#endif
#if defined(YCBCR_ALSO_OUTPUT_RGBA)
	RGBA = result;
#endif
}
#undef INPUT
`

// emitUniformBlock declares every non-sampler uniform inside a single
// packed block named FxChainUniforms (spec.md section 4.5 point 8 calls
// this MovitUniforms; the rename is cosmetic, the packed-layout
// mechanics are the same). Samplers are declared separately, outside
// the block, since a sampler can never live inside a uniform block.
func emitUniformBlock(header *strings.Builder, u *effect.Uniforms) {
	for _, s := range u.Sampler2D {
		if s.Prefix == "" {
			continue // phase-input samplers are already declared above.
		}
		fmt.Fprintf(header, "uniform sampler2D %s;\n", s.Name)
	}

	header.WriteString("layout(std140) uniform FxChainUniforms {\n")
	for _, x := range u.Bool {
		fmt.Fprintf(header, "\tbool %s;\n", x.Name)
	}
	for _, x := range u.Int {
		fmt.Fprintf(header, "\tint %s;\n", x.Name)
	}
	for _, x := range u.Float {
		fmt.Fprintf(header, "\tfloat %s;\n", x.Name)
	}
	for _, x := range u.Vec2 {
		fmt.Fprintf(header, "\tvec2 %s;\n", x.Name)
	}
	for _, x := range u.Vec3 {
		fmt.Fprintf(header, "\tvec3 %s;\n", x.Name)
	}
	for _, x := range u.Vec4 {
		fmt.Fprintf(header, "\tvec4 %s;\n", x.Name)
	}
	for _, x := range u.Mat3 {
		fmt.Fprintf(header, "\tmat3 %s;\n", x.Name)
	}
	header.WriteString("};\n")
}

func collectUniforms(dst, src *effect.Uniforms, prefix string) {
	if src == nil {
		return
	}
	for _, u := range src.Bool {
		u.Name, u.Prefix = prefix+"_"+u.Name, prefix
		dst.Bool = append(dst.Bool, u)
	}
	for _, u := range src.Int {
		u.Name, u.Prefix = prefix+"_"+u.Name, prefix
		dst.Int = append(dst.Int, u)
	}
	for _, u := range src.Float {
		u.Name, u.Prefix = prefix+"_"+u.Name, prefix
		dst.Float = append(dst.Float, u)
	}
	for _, u := range src.Vec2 {
		u.Name, u.Prefix = prefix+"_"+u.Name, prefix
		dst.Vec2 = append(dst.Vec2, u)
	}
	for _, u := range src.Vec3 {
		u.Name, u.Prefix = prefix+"_"+u.Name, prefix
		dst.Vec3 = append(dst.Vec3, u)
	}
	for _, u := range src.Vec4 {
		u.Name, u.Prefix = prefix+"_"+u.Name, prefix
		dst.Vec4 = append(dst.Vec4, u)
	}
	for _, u := range src.Mat3 {
		u.Name, u.Prefix = prefix+"_"+u.Name, prefix
		dst.Mat3 = append(dst.Mat3, u)
	}
	for _, u := range src.Sampler2D {
		u.Name, u.Prefix = prefix+"_"+u.Name, prefix
		dst.Sampler2D = append(dst.Sampler2D, u)
	}
}
