// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fxchain

import (
	"fmt"

	"github.com/gogpu/fxchain/attr"
	"github.com/gogpu/fxchain/dotdump"
	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/gpupool"
	"github.com/gogpu/fxchain/graph"
	"github.com/gogpu/fxchain/internal/contract"
	"github.com/gogpu/fxchain/partition"
	"github.com/gogpu/fxchain/repair"
	"github.com/gogpu/fxchain/shaderemit"
)

// ContractViolation is the panic value raised whenever fxchain detects a
// programmer mistake (a malformed graph, a post-finalize mutation, an
// attribute that never resolved out of INVALID). It is an alias of
// contract.Violation so every internal package shares one panic type; a
// caller that wants to recover() at a library boundary only needs to
// know about this one.
type ContractViolation = contract.Violation

// Verbosity gates fxchain's own trace logging and whether a configured
// dotdump.Sink fires during Finalize — the Go analogue of Movit's
// movit_debug_level.
type Verbosity int

const (
	// VerbositySilent emits nothing and never calls the dump sink.
	VerbositySilent Verbosity = iota
	// VerbosityDebug logs one line per finalize step and fires the dump
	// sink, if one is configured, after every step.
	VerbosityDebug
)

// Chain compiles and executes a graph of effects. The zero value is not
// usable; construct one with NewChain.
type Chain struct {
	g    graph.Graph
	pool gpupool.Pool

	aspectNom, aspectDenom int
	intermediateFormat     effect.PixelFormat

	hasRGBAOutput  bool
	rgbaFormat     effect.ImageFormat
	rgbaAlpha      effect.OutputAlphaFormat
	hasYCbCrOutput bool
	ycbcrFormat    effect.ImageFormat
	ycbcrAlpha     effect.OutputAlphaFormat
	ycbcr          effect.YCbCrFormat
	ycbcrSplitting effect.YCbCrOutputSplitting

	ditherBits int
	origin     effect.OutputOrigin

	dumpSink  dotdump.Sink
	verbosity Verbosity

	finalized bool
	terminal  graph.NodeHandle
	part      *partition.Partitioner

	timingEnabled bool
}

// NewChain creates a chain with the given nominal aspect ratio and
// intermediate render format. pool may be nil at construction time and
// set later via SetPool, which must happen before Finalize. Finalize
// compiles phase programs only when a pool is set, and RenderToFBO
// requires a non-nil pool.
func NewChain(aspectNom, aspectDenom int, pool gpupool.Pool, intermediateFormat effect.PixelFormat) *Chain {
	contract.Assert(aspectNom > 0 && aspectDenom > 0, "fxchain: NewChain aspect ratio %d:%d must be positive", aspectNom, aspectDenom)
	return &Chain{
		pool:               pool,
		aspectNom:          aspectNom,
		aspectDenom:        aspectDenom,
		intermediateFormat: intermediateFormat,
		ditherBits:         0,
		origin:             effect.OutputOriginBottomLeft,
	}
}

// SetPool attaches (or replaces) the GPU resource pool used by
// RenderToFBO. Calling it after Finalize is a contract violation.
func (c *Chain) SetPool(pool gpupool.Pool) {
	contract.Assert(!c.finalized, "fxchain: SetPool called after Finalize")
	c.pool = pool
}

// SetDumpSink configures where Finalize's per-step Graphviz DOT
// snapshots go. A nil sink (the default) disables dumping regardless of
// verbosity.
func (c *Chain) SetDumpSink(sink dotdump.Sink) {
	c.dumpSink = sink
}

// SetVerbosity sets the trace-logging level. See Verbosity.
func (c *Chain) SetVerbosity(v Verbosity) {
	c.verbosity = v
}

// AddInput adds a zero-input effect (a texture source) to the graph.
// The returned handle is a plain int (rather than graph.NodeHandle) so
// that Chain's own AddEffect signature can double as the
// effect.Rewriter implementation effects call from RewriteGraph.
func (c *Chain) AddInput(in effect.Input) int {
	contract.Assert(!c.finalized, "fxchain: AddInput called after Finalize")
	return int(c.g.AddInput(in))
}

// AddEffect adds eff to the graph, wired from parents in input order.
// It also implements effect.Rewriter, so an effect's RewriteGraph hook
// calls this same method (through the Rewriter it's given) to expand
// itself into a subgraph during Finalize.
func (c *Chain) AddEffect(eff effect.Effect, parents []int) int {
	contract.Assert(!c.finalized, "fxchain: AddEffect called after Finalize")
	h := make([]graph.NodeHandle, len(parents))
	for i, p := range parents {
		h[i] = graph.NodeHandle(p)
	}
	return int(c.g.AddEffect(eff, h))
}

// AddOutput declares an RGBA output with the given format and alpha
// convention. Both AddOutput and AddYCbCrOutput may be called on the
// same chain (spec.md section 6).
func (c *Chain) AddOutput(format effect.ImageFormat, alpha effect.OutputAlphaFormat) {
	contract.Assert(!c.finalized, "fxchain: AddOutput called after Finalize")
	c.hasRGBAOutput = true
	c.rgbaFormat = format
	c.rgbaAlpha = alpha
}

// AddYCbCrOutput declares a Y'CbCr output. Chroma subsampling is fixed
// at 1x1 (spec.md Non-goals).
func (c *Chain) AddYCbCrOutput(format effect.ImageFormat, alpha effect.OutputAlphaFormat, ycbcr effect.YCbCrFormat, splitting effect.YCbCrOutputSplitting) {
	contract.Assert(!c.finalized, "fxchain: AddYCbCrOutput called after Finalize")
	contract.Assert(ycbcr.ChromaSubsamplingX == 1 && ycbcr.ChromaSubsamplingY == 1,
		"fxchain: chroma subsampling %dx%d unsupported, only 1x1", ycbcr.ChromaSubsamplingX, ycbcr.ChromaSubsamplingY)
	c.hasYCbCrOutput = true
	c.ycbcrFormat = format
	c.ycbcrAlpha = alpha
	c.ycbcr = ycbcr
	c.ycbcrSplitting = splitting
}

// SetDitherBits sets the number of bits of noise dithering applied to
// the final output. 0 disables dithering.
func (c *Chain) SetDitherBits(n int) {
	contract.Assert(!c.finalized, "fxchain: SetDitherBits called after Finalize")
	c.ditherBits = n
}

// SetOutputOrigin selects which screen corner the rendered texture
// treats as its origin.
func (c *Chain) SetOutputOrigin(origin effect.OutputOrigin) {
	contract.Assert(!c.finalized, "fxchain: SetOutputOrigin called after Finalize")
	c.origin = origin
}

// EnablePhaseTiming turns on per-phase GPU timer queries during
// RenderToFBO, if the configured pool implements gpupool.TimerQuery.
// Calling it against a pool that does not is harmless: the queries are
// simply never populated.
func (c *Chain) EnablePhaseTiming() {
	c.timingEnabled = true
	if c.part != nil {
		for _, ph := range c.part.Phases {
			ph.TimeElapsedNS = 0
			ph.NumMeasuredIterations = 0
		}
	}
}

// PrintPhaseTiming logs a per-phase timing report at Info level,
// mirroring EffectChain::print_phase_timing's content: one line per
// phase giving its average time across measured iterations and the
// effect IDs it fused, followed by a total line.
func (c *Chain) PrintPhaseTiming() {
	contract.Assert(c.finalized, "fxchain: PrintPhaseTiming called before Finalize")
	var total float64
	for i, ph := range c.part.Phases {
		ms := phaseAverageMS(ph)
		total += ms
		ids := make([]string, len(ph.Effects))
		for j, h := range ph.Effects {
			ids[j] = c.g.Node(h).Effect.EffectTypeID()
		}
		Logger().Info("fxchain: phase timing", "phase", i, "ms", ms, "effects", ids)
	}
	Logger().Info("fxchain: phase timing total", "ms", total)
}

func phaseAverageMS(ph *partition.Phase) float64 {
	if ph.NumMeasuredIterations == 0 {
		return 0
	}
	return float64(ph.TimeElapsedNS.Microseconds()) / 1000.0 / float64(ph.NumMeasuredIterations)
}

func (c *Chain) dump(step int, label string, terminal graph.NodeHandle) {
	if c.verbosity < VerbosityDebug {
		return
	}
	Logger().Debug("fxchain: finalize step", "step", step, "label", label)
	if c.dumpSink == nil {
		return
	}
	dot := dotdump.Dump(&c.g, terminal, c.part)
	if err := c.dumpSink.WriteDot(step, label, dot); err != nil {
		Logger().Warn("fxchain: dump sink error", "step", step, "err", err)
	}
}

// Finalize runs the full compile pipeline: graph rewriting, attribute
// propagation, repair, output finishing, and phase partitioning. It
// panics with a ContractViolation if the graph is malformed or an
// attribute never resolves out of INVALID; it returns a non-nil error
// if the configured pool reports a driver-level failure while compiling
// a phase's program. Finalize must be called exactly once.
func (c *Chain) Finalize() error {
	contract.Assert(!c.finalized, "fxchain: Finalize called twice")
	contract.Assert(c.hasRGBAOutput || c.hasYCbCrOutput, "fxchain: Finalize called with no output declared")

	terminal := c.g.FindTerminal()
	c.dump(0, "start", terminal)

	// 1. Per-node rewrite_graph hook: effects may expand themselves into
	// subgraphs before anything else runs.
	for i := 0; i < c.g.Len(); i++ {
		c.g.Node(graph.NodeHandle(i)).Effect.RewriteGraph(c, i)
	}
	terminal = c.g.FindTerminal()
	c.dump(1, "rewritten", terminal)

	// 2-3. Seed zero-input attributes and propagate color+gamma, then
	// alpha, then color+gamma again. PropagateColorAndGamma seeds a
	// zero-input node's format straight from its Input, so a single pass
	// here both seeds and propagates; PropagateAlpha must run after it
	// because a zero-input effect declaring premultiplied alpha asserts
	// its gamma is already known to be linear (attr.alphaForZeroInput).
	attr.PropagateColorAndGamma(&c.g, terminal)
	c.dump(2, "input-colorspace", terminal)

	attr.PropagateAlpha(&c.g, terminal)
	c.dump(3, "propagated-alpha", terminal)

	attr.PropagateColorAndGamma(&c.g, terminal)
	c.dump(4, "propagated-all", terminal)

	// 4. Repair internal color; internal alpha; output color; output
	// alpha.
	repair.FixInternalColorSpaces(&c.g, terminal)
	repair.FixInternalAlpha(&c.g, terminal)
	terminal = repair.FixOutputColorSpace(&c.g, terminal, c.requestedColorSpace())
	c.dump(7, "output-colorspacefix", terminal)
	terminal = repair.FixOutputAlpha(&c.g, terminal, c.requestedAlphaFormat())
	c.dump(8, "output-alphafix", terminal)

	// 5. Repair internal gamma (ask inputs, then insert), then output
	// gamma.
	requestedGamma := c.requestedGammaCurve()
	repair.FixInternalGammaByAskingInputs(&c.g, terminal, requestedGamma)
	terminal = repair.FixInternalGammaByInsertingNodes(&c.g, terminal, requestedGamma)
	terminal = repair.FixOutputGamma(&c.g, terminal, requestedGamma)
	c.dump(11, "output-gammafix", terminal)

	// 6. Output-stage repair can re-introduce alpha INVALIDs: propagate
	// and repair internal alpha once more.
	attr.PropagateAlpha(&c.g, terminal)
	c.dump(12, "output-alpha-propagated", terminal)
	repair.FixInternalAlpha(&c.g, terminal)
	c.dump(14, "output-alpha-fixed", terminal)

	// 7. Same for gamma: the alpha repair above may have spliced nodes
	// that need their own gamma repair.
	repair.FixInternalGammaByAskingInputs(&c.g, terminal, requestedGamma)
	terminal = repair.FixInternalGammaByInsertingNodes(&c.g, terminal, requestedGamma)
	c.dump(17, "before-ycbcr", terminal)

	// 8. Output finisher: YCbCr conversion, then dither.
	if c.hasYCbCrOutput {
		terminal = appendYCbCrConversion(&c.g, terminal, c.ycbcr, c.ycbcrSplitting)
	}
	c.dump(18, "before-dither", terminal)
	if c.ditherBits > 0 {
		terminal = appendDither(&c.g, terminal, c.ditherBits)
	}
	c.dump(19, "final", terminal)

	c.terminal = terminal
	c.part = partition.NewPartitioner(&c.g)
	c.part.ConstructPhase(terminal)
	c.part.InferSizes(c.aspectNom, c.aspectDenom)
	c.dump(20, "split-to-phases", terminal)

	if c.pool != nil {
		flipOrigin := c.origin == effect.OutputOriginTopLeft
		for i, ph := range c.part.Phases {
			isFinal := i == len(c.part.Phases)-1
			opts := shaderemit.Options{IsFinalPhase: isFinal, FlipOrigin: flipOrigin && isFinal}
			if isFinal && c.hasYCbCrOutput {
				opts.YCbCr = &shaderemit.YCbCrOutput{Splitting: c.ycbcrSplitting, AlsoRGBA: c.hasRGBAOutput}
			}
			src := shaderemit.CompilePhase(&c.g, ph, opts)
			handle, _, _, err := c.pool.CompileProgram(src)
			if err != nil {
				return fmt.Errorf("fxchain: compiling phase %d: %w", i, err)
			}
			ph.CompiledProgramHandle = uint64(handle)
		}
	}

	c.finalized = true
	return nil
}

func (c *Chain) requestedColorSpace() effect.ColorSpace {
	if c.hasRGBAOutput {
		return c.rgbaFormat.ColorSpace
	}
	return c.ycbcrFormat.ColorSpace
}

func (c *Chain) requestedGammaCurve() effect.GammaCurve {
	if c.hasRGBAOutput {
		return c.rgbaFormat.GammaCurve
	}
	return c.ycbcrFormat.GammaCurve
}

func (c *Chain) requestedAlphaFormat() effect.OutputAlphaFormat {
	if c.hasRGBAOutput {
		return c.rgbaAlpha
	}
	return c.ycbcrAlpha
}

// Phases returns the compiled phase list. Valid only after Finalize.
func (c *Chain) Phases() []*partition.Phase {
	contract.Assert(c.finalized, "fxchain: Phases called before Finalize")
	return c.part.Phases
}

var _ effect.Rewriter = (*Chain)(nil)
