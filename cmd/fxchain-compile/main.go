// Command fxchain-compile builds a tiny effect chain from flags,
// finalizes it against the software reference pool, and prints the
// resulting phase breakdown and, optionally, the fragment and vertex
// shader source for each phase.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gogpu/fxchain"
	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/gpupool"
	"github.com/gogpu/fxchain/gpupool/swpool"
	"github.com/gogpu/fxchain/shaderemit"
)

func main() {
	var (
		width      = flag.Int("width", 640, "input width")
		height     = flag.Int("height", 480, "input height")
		linear     = flag.Bool("needs-linear", false, "insert a demo effect requiring linear light")
		ditherBits = flag.Int("dither-bits", 0, "dither bit depth, 0 disables")
		printSrc   = flag.Bool("print-shaders", false, "print each phase's fragment and vertex shaders")
		verbose    = flag.Bool("v", false, "enable fxchain trace logging")
	)
	flag.Parse()

	pool := swpool.New()
	chain := fxchain.NewChain(16, 9, pool, effect.PixelFormatRGBA)
	if *verbose {
		chain.SetVerbosity(fxchain.VerbosityDebug)
	}

	in := chain.AddInput(&flatInput{width: *width, height: *height})
	terminal := in
	if *linear {
		terminal = chain.AddEffect(&linearLightEffect{}, []int{terminal})
	}

	chain.AddOutput(effect.ImageFormat{
		PixelFormat: effect.PixelFormatRGBA,
		ColorSpace:  effect.ColorSpaceSRGB,
		GammaCurve:  effect.GammaSRGB,
	}, effect.OutputAlphaFormatPostmultiplied)
	chain.SetDitherBits(*ditherBits)

	if err := chain.Finalize(); err != nil {
		log.Fatalf("fxchain-compile: finalize: %v", err)
	}
	_ = terminal

	phases := chain.Phases()
	fmt.Fprintf(os.Stdout, "compiled %d phase(s)\n", len(phases))
	for i, ph := range phases {
		fmt.Fprintf(os.Stdout, "phase %d: %d effect(s), output %dx%d, %d input phase(s)\n",
			i, len(ph.Effects), ph.OutputWidth, ph.OutputHeight, len(ph.Inputs))
		if *printSrc {
			if src, ok := pool.Program(gpupool.ProgramHandle(ph.CompiledProgramHandle)); ok {
				printShader(src)
			}
		}
	}
}

func printShader(src *shaderemit.ProgramSource) {
	fmt.Println("--- fragment ---")
	fmt.Println(src.FragmentShader)
	fmt.Println("--- vertex ---")
	fmt.Println(src.VertexShader)
}
