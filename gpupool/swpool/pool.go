// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package swpool

import (
	"errors"
	"hash/fnv"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/fxchain/gpupool"
	"github.com/gogpu/fxchain/shaderemit"
)

var (
	ErrUnknownTexture = errors.New("swpool: unknown texture handle")
	ErrUnknownProgram = errors.New("swpool: unknown program handle")
)

// texture is an *image.RGBA-backed stand-in for a GPU texture, mirroring
// how render.PixmapTarget wraps an *image.RGBA for CPU-only access.
type texture struct {
	img       *image.RGBA
	mipmapped bool
}

// program records a compiled phase's source without ever invoking a real
// shader compiler, so a test can assert on exactly what fxchain emitted.
type program struct {
	handle gpupool.ProgramHandle
	src    *shaderemit.ProgramSource
}

// Pool is a CPU reference gpupool.Pool. It allocates *image.RGBA buffers
// for textures and records, rather than compiles, program source — tests
// use Program and Image to inspect what the compiler produced.
type Pool struct {
	mu sync.Mutex

	textures map[gpupool.TextureHandle]*texture
	fbos     map[gpupool.FBOHandle]gpupool.TextureHandle
	programs map[gpupool.ProgramHandle]*program

	nextTexture uint64
	nextFBO     uint64

	textureAllocs, textureReleases int
	programCompiles                int
}

// New creates an empty software pool.
func New() *Pool {
	return &Pool{
		textures: make(map[gpupool.TextureHandle]*texture),
		fbos:     make(map[gpupool.FBOHandle]gpupool.TextureHandle),
		programs: make(map[gpupool.ProgramHandle]*program),
	}
}

func (p *Pool) CreateTexture(desc gpupool.TextureDescriptor) (gpupool.TextureHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, desc.Width, desc.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	p.nextTexture++
	h := gpupool.TextureHandle(p.nextTexture)
	p.textures[h] = &texture{
		img:       img,
		mipmapped: desc.Mipmapped,
	}
	p.textureAllocs++
	return h, nil
}

func (p *Pool) ReleaseTexture(h gpupool.TextureHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.textures[h]; ok {
		delete(p.textures, h)
		p.textureReleases++
	}
}

func (p *Pool) CreateFBO(color gpupool.TextureHandle) (gpupool.FBOHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.textures[color]; !ok {
		return 0, ErrUnknownTexture
	}
	p.nextFBO++
	h := gpupool.FBOHandle(p.nextFBO)
	p.fbos[h] = color
	return h, nil
}

func (p *Pool) ReleaseFBO(h gpupool.FBOHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.fbos, h)
}

// CompileProgram never touches a real compiler; it hashes src the same
// way native.Pool does, so a test exercising both pools against the same
// emitted source sees the same cache key, then stores src for later
// inspection via Program. The vertex attribute locations match the
// fixed 0/1 convention native.Pool also uses.
func (p *Pool) CompileProgram(src *shaderemit.ProgramSource) (gpupool.ProgramHandle, int, int, error) {
	key := hashProgramSource(src)

	p.mu.Lock()
	defer p.mu.Unlock()

	h := gpupool.ProgramHandle(key)
	if _, ok := p.programs[h]; !ok {
		p.programs[h] = &program{handle: h, src: src}
		p.programCompiles++
	}
	return h, 0, 1, nil
}

func (p *Pool) ReleaseProgram(h gpupool.ProgramHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.programs, h)
}

func (p *Pool) GetUniformLocation(h gpupool.ProgramHandle, name string) (gpupool.UniformLocation, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.programs[h]; !ok {
		return gpupool.UniformLocation{}, false
	}
	return gpupool.UniformLocation{Location: int(hashString(name) % 4096)}, true
}

func (p *Pool) GetUniformBlockIndex(h gpupool.ProgramHandle, blockName string) (int, bool) {
	p.mu.Lock()
	_, ok := p.programs[h]
	p.mu.Unlock()
	if !ok || blockName != "FxChainUniforms" {
		return 0, false
	}
	return 0, true
}

func (p *Pool) GetUniformBlockDataSize(h gpupool.ProgramHandle, blockIndex int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	prog, ok := p.programs[h]
	if !ok {
		return 0
	}
	u := &prog.src.Uniforms
	return len(u.Bool)*4 + len(u.Int)*4 + len(u.Float)*4 + len(u.Vec2)*8 +
		len(u.Vec3)*16 + len(u.Vec4)*16 + len(u.Mat3)*48
}

func (p *Pool) GetAttribLocation(h gpupool.ProgramHandle, name string) (int, bool) {
	p.mu.Lock()
	_, ok := p.programs[h]
	p.mu.Unlock()
	if !ok {
		return 0, false
	}
	switch name {
	case "position":
		return 0, true
	case "texcoord":
		return 1, true
	}
	return 0, false
}

// Image returns the *image.RGBA backing an allocated texture, for a test
// to inspect the pixels a render pass wrote.
func (p *Pool) Image(h gpupool.TextureHandle) (*image.RGBA, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.textures[h]
	if !ok {
		return nil, false
	}
	return t.img, true
}

// Program returns the recorded source for a compiled program, for a test
// to assert on the shader text fxchain emitted.
func (p *Pool) Program(h gpupool.ProgramHandle) (*shaderemit.ProgramSource, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prog, ok := p.programs[h]
	if !ok {
		return nil, false
	}
	return prog.src, true
}

// Stats reports the raw allocation counters a test can assert against.
func (p *Pool) Stats() (textureAllocs, textureReleases, programCompiles int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.textureAllocs, p.textureReleases, p.programCompiles
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

func hashProgramSource(src *shaderemit.ProgramSource) uint64 {
	h := fnv.New64a()
	h.Write([]byte(src.FragmentShader))
	h.Write([]byte(src.VertexShader))
	return h.Sum64()
}

var _ gpupool.Pool = (*Pool)(nil)
