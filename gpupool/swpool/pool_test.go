// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package swpool

import (
	"testing"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/gpupool"
	"github.com/gogpu/fxchain/shaderemit"
)

func TestCreateAndReleaseTextureUpdatesStats(t *testing.T) {
	p := New()
	h, err := p.CreateTexture(gpupool.TextureDescriptor{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	img, ok := p.Image(h)
	if !ok || img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Fatalf("Image(%v) = %v, %v, want a 16x16 image", h, img, ok)
	}

	p.ReleaseTexture(h)
	if _, ok := p.Image(h); ok {
		t.Fatal("expected texture to be gone after ReleaseTexture")
	}

	allocs, releases, _ := p.Stats()
	if allocs != 1 || releases != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", allocs, releases)
	}
}

func TestCreateFBORequiresKnownTexture(t *testing.T) {
	p := New()
	if _, err := p.CreateFBO(gpupool.TextureHandle(999)); err != ErrUnknownTexture {
		t.Fatalf("CreateFBO on an unknown texture = %v, want ErrUnknownTexture", err)
	}
}

func TestCompileProgramDedupesBySource(t *testing.T) {
	p := New()
	src := &shaderemit.ProgramSource{FragmentShader: "void main() {}", VertexShader: "void main() {}"}

	h1, pos1, tc1, err := p.CompileProgram(src)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	h2, pos2, tc2, err := p.CompileProgram(src)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	if h1 != h2 || pos1 != pos2 || tc1 != tc2 {
		t.Errorf("identical source compiled twice produced different results: (%v,%d,%d) vs (%v,%d,%d)", h1, pos1, tc1, h2, pos2, tc2)
	}

	_, _, compiles := p.Stats()
	if compiles != 1 {
		t.Errorf("programCompiles = %d, want 1 (deduped)", compiles)
	}
}

func TestGetUniformBlockDataSizeSumsFields(t *testing.T) {
	p := New()
	var i int32
	var v [2]float32
	src := &shaderemit.ProgramSource{
		Uniforms: effect.Uniforms{
			Int:  []effect.Uniform[int32]{{Name: "n", Value: &i, NumValues: 1}},
			Vec2: []effect.Uniform[[2]float32]{{Name: "offset", Value: &v, NumValues: 1}},
		},
	}
	h, _, _, err := p.CompileProgram(src)
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	idx, ok := p.GetUniformBlockIndex(h, "FxChainUniforms")
	if !ok || idx != 0 {
		t.Fatalf("GetUniformBlockIndex = (%d, %v), want (0, true)", idx, ok)
	}
	size := p.GetUniformBlockDataSize(h, idx)
	if size != 4+8 {
		t.Errorf("GetUniformBlockDataSize = %d, want %d", size, 4+8)
	}
}

func TestGetAttribLocationFixedConvention(t *testing.T) {
	p := New()
	h, _, _, _ := p.CompileProgram(&shaderemit.ProgramSource{})
	if loc, ok := p.GetAttribLocation(h, "position"); !ok || loc != 0 {
		t.Errorf("position attrib = (%d, %v), want (0, true)", loc, ok)
	}
	if loc, ok := p.GetAttribLocation(h, "texcoord"); !ok || loc != 1 {
		t.Errorf("texcoord attrib = (%d, %v), want (1, true)", loc, ok)
	}
	if _, ok := p.GetAttribLocation(h, "bogus"); ok {
		t.Error("expected an unrecognized attrib name to report not found")
	}
}
