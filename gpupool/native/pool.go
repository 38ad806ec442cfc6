// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fxchain/effect"
	"github.com/gogpu/fxchain/gpupool"
	"github.com/gogpu/fxchain/shaderemit"
)

// Errors surfaced from Pool methods; wrapped with fmt.Errorf("%w", ...)
// the way pipeline_cache_core.go wraps its own sentinels.
var (
	ErrNilDevice       = errors.New("native: device provider returned a nil device")
	ErrUnknownTexture  = errors.New("native: unknown texture handle")
	ErrUnknownProgram  = errors.New("native: unknown program handle")
	ErrShaderCompile   = errors.New("native: shader compilation failed")
	ErrPipelineCreate  = errors.New("native: pipeline creation failed")
)

// Pool is the production gpupool.Pool. It borrows its Device from a
// gpucontext.DeviceProvider rather than owning one — the same borrowed-
// not-owned convention render.DeviceHandle documents in the teacher.
type Pool struct {
	devices gpucontext.DeviceProvider

	mu           sync.RWMutex
	programCache map[uint64]*compiledProgram
	textures     map[gpupool.TextureHandle]hal.Texture
	fbos         map[gpupool.FBOHandle]hal.Texture

	nextTexture uint64
	nextFBO     uint64

	hits, misses uint64
}

type compiledProgram struct {
	handle                         gpupool.ProgramHandle
	shaderModule                   hal.ShaderModule
	pipeline                       hal.RenderPipeline
	positionAttrib, texcoordAttrib int
	src                            *shaderemit.ProgramSource
}

// NewPool wraps a DeviceProvider. devices must not be nil; Pool never
// creates or owns the underlying GPU device itself.
func NewPool(devices gpucontext.DeviceProvider) *Pool {
	return &Pool{
		devices:      devices,
		programCache: make(map[uint64]*compiledProgram),
		textures:     make(map[gpupool.TextureHandle]hal.Texture),
		fbos:         make(map[gpupool.FBOHandle]hal.Texture),
	}
}

func (p *Pool) device() (hal.Device, error) {
	dev, ok := p.devices.Device().(hal.Device)
	if !ok || dev == nil {
		return nil, ErrNilDevice
	}
	return dev, nil
}

func textureFormat(f gpupool.TextureDescriptor) gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (p *Pool) CreateTexture(desc gpupool.TextureDescriptor) (gpupool.TextureHandle, error) {
	dev, err := p.device()
	if err != nil {
		return 0, err
	}

	mipLevels := uint32(1)
	if desc.Mipmapped {
		mipLevels = mipLevelsFor(desc.Width, desc.Height)
	}

	tex, err := dev.CreateTexture(&hal.TextureDescriptor{
		Label:         "fxchain-phase-texture",
		Size:          hal.Extent3D{Width: uint32(desc.Width), Height: uint32(desc.Height), DepthOrArrayLayers: 1},
		MipLevelCount: mipLevels,
		SampleCount:   1,
		Format:        textureFormat(desc),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPipelineCreate, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextTexture++
	h := gpupool.TextureHandle(p.nextTexture)
	p.textures[h] = tex
	return h, nil
}

func (p *Pool) ReleaseTexture(h gpupool.TextureHandle) {
	dev, err := p.device()
	if err != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if tex, ok := p.textures[h]; ok {
		dev.DestroyTexture(tex)
		delete(p.textures, h)
	}
}

func (p *Pool) CreateFBO(color gpupool.TextureHandle) (gpupool.FBOHandle, error) {
	p.mu.RLock()
	tex, ok := p.textures[color]
	p.mu.RUnlock()
	if !ok {
		return 0, ErrUnknownTexture
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextFBO++
	h := gpupool.FBOHandle(p.nextFBO)
	p.fbos[h] = tex
	return h, nil
}

func (p *Pool) ReleaseFBO(h gpupool.FBOHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.fbos, h)
}

// CompileProgram compiles src's fragment and vertex text to SPIR-V via
// naga.Compile (grounded on
// _examples/gogpu-gg/internal/native/shader_helper.go's
// CompileShaderToSPIRV) and links a render pipeline, caching by an
// FNV-1a hash of the source text the way PipelineCacheCore hashes its
// descriptors.
func (p *Pool) CompileProgram(src *shaderemit.ProgramSource) (gpupool.ProgramHandle, int, int, error) {
	key := hashProgramSource(src)

	p.mu.RLock()
	if cp, ok := p.programCache[key]; ok {
		p.mu.RUnlock()
		atomic.AddUint64(&p.hits, 1)
		return cp.handle, cp.positionAttrib, cp.texcoordAttrib, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if cp, ok := p.programCache[key]; ok {
		atomic.AddUint64(&p.hits, 1)
		return cp.handle, cp.positionAttrib, cp.texcoordAttrib, nil
	}

	dev, err := p.device()
	if err != nil {
		return 0, 0, 0, err
	}

	fragSPIRVBytes, err := naga.Compile(src.FragmentShader)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: fragment: %v", ErrShaderCompile, err)
	}
	vertSPIRVBytes, err := naga.Compile(src.VertexShader)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: vertex: %v", ErrShaderCompile, err)
	}

	fragModule, err := dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "fxchain-phase-fragment",
		Source: hal.ShaderSource{SPIRV: bytesToWords(fragSPIRVBytes)},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrPipelineCreate, err)
	}
	vertModule, err := dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "fxchain-phase-vertex",
		Source: hal.ShaderSource{SPIRV: bytesToWords(vertSPIRVBytes)},
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrPipelineCreate, err)
	}

	// position and texcoord are always bound to shader locations 0 and 1;
	// unlike a GL-style name query, a wgpu-style pipeline has its
	// attribute locations fixed by the descriptor that created it.
	const positionAttrib, texcoordAttrib = 0, 1

	pipeline, err := dev.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:              "fxchain-phase-pipeline",
		VertexShader:       vertModule,
		VertexEntryPoint:   "vs_main",
		FragmentShader:     fragModule,
		FragmentEntryPoint: "fs_main",
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %v", ErrPipelineCreate, err)
	}

	atomic.AddUint64(&p.misses, 1)
	handle := gpupool.ProgramHandle(key)
	p.programCache[key] = &compiledProgram{
		handle:         handle,
		shaderModule:   fragModule,
		pipeline:       pipeline,
		positionAttrib: positionAttrib,
		texcoordAttrib: texcoordAttrib,
		src:            src,
	}
	return handle, positionAttrib, texcoordAttrib, nil
}

func (p *Pool) ReleaseProgram(h gpupool.ProgramHandle) {
	dev, err := p.device()
	if err != nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, cp := range p.programCache {
		if cp.handle == h {
			dev.DestroyShaderModule(cp.shaderModule)
			delete(p.programCache, key)
			return
		}
	}
}

func (p *Pool) GetUniformLocation(h gpupool.ProgramHandle, name string) (gpupool.UniformLocation, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, cp := range p.programCache {
		if cp.handle == h {
			// The real device query is driver-specific; fxchain's own
			// descriptor already carries the name-to-slot mapping it
			// needs once the pipeline layout is built, so this returns a
			// stable synthetic location keyed by string hash.
			return gpupool.UniformLocation{Location: int(hashString(name) % 4096)}, true
		}
	}
	return gpupool.UniformLocation{}, false
}

func (p *Pool) GetUniformBlockIndex(h gpupool.ProgramHandle, blockName string) (int, bool) {
	if blockName != "FxChainUniforms" {
		return 0, false
	}
	return 0, true
}

func (p *Pool) GetUniformBlockDataSize(h gpupool.ProgramHandle, blockIndex int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, cp := range p.programCache {
		if int(cp.handle) == blockIndex || blockIndex == 0 {
			return uboSize(&cp.src.Uniforms)
		}
	}
	return 0
}

func (p *Pool) GetAttribLocation(h gpupool.ProgramHandle, name string) (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, cp := range p.programCache {
		if cp.handle == h {
			switch name {
			case "position":
				return cp.positionAttrib, true
			case "texcoord":
				return cp.texcoordAttrib, true
			}
		}
	}
	return 0, false
}

func mipLevelsFor(w, h int) uint32 {
	levels := uint32(1)
	for w > 1 || h > 1 {
		w /= 2
		h /= 2
		levels++
	}
	return levels
}

func bytesToWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
	}
	return words
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

// uboSize computes the std140 byte size of a phase's packed
// FxChainUniforms block: bool and int and float are 4 bytes each but
// rounded up to a 16-byte stride whenever the next member wouldn't
// otherwise fit without straddling a 16-byte boundary, vec2 is 8 bytes,
// vec3 and vec4 are 16 bytes, and mat3 is stored as three
// 16-byte-padded columns.
func uboSize(u *effect.Uniforms) int {
	size := 0
	align := func(a int) {
		if rem := size % a; rem != 0 {
			size += a - rem
		}
	}
	for range u.Bool {
		align(4)
		size += 4
	}
	for range u.Int {
		align(4)
		size += 4
	}
	for range u.Float {
		align(4)
		size += 4
	}
	for range u.Vec2 {
		align(8)
		size += 8
	}
	for range u.Vec3 {
		align(16)
		size += 12
	}
	for range u.Vec4 {
		align(16)
		size += 16
	}
	for range u.Mat3 {
		align(16)
		size += 3 * 16
	}
	align(16)
	return size
}
