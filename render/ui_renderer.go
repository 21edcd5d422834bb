// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/rayview/ui"
)

// uiVertexStride is the byte size of one ui.Vertex on the GPU:
//
//	pos   (vec2<f32>)   = 8 bytes (location 0)
//	uv    (vec2<f32>)   = 8 bytes (location 1)
//	color (unorm8x4)    = 4 bytes (location 2)
const uiVertexStride = 20

// screenUniformSize holds the screen size in points plus padding.
const screenUniformSize = 16

// Initial buffer capacities. Buffers grow to the next power of two.
const (
	minVertexBufferSize = 4096 * uiVertexStride
	minIndexBufferSize  = 8192 * 4
)

// gpuTexture is one UI texture with the bind group that samples it.
type gpuTexture struct {
	texture gpucore.TextureID
	view    gpucore.TextureViewID
	group   gpucore.BindGroupID
	width   uint32
	height  uint32
}

// uiDraw is one indexed draw prepared for the current frame.
type uiDraw struct {
	scissor    [4]uint32
	texture    ui.TextureID
	firstIndex uint32
	indexCount uint32
	baseVertex int32
}

// UIRenderer draws tessellated UI meshes. It owns a cache of GPU textures
// keyed by ui.TextureID and grows its vertex and index buffers on demand.
//
// Frame protocol: UpdateTexture for every delta, Prepare, then Record
// inside the render pass, then FreeTexture after submission.
type UIRenderer struct {
	dev gpucore.Device

	shader        gpucore.ShaderModuleID
	globalsLayout gpucore.BindGroupLayoutID
	textureLayout gpucore.BindGroupLayoutID
	pipeLayout    gpucore.PipelineLayoutID
	pipeline      gpucore.RenderPipelineID

	uniform gpucore.BufferID
	sampler gpucore.SamplerID
	globals gpucore.BindGroupID

	vertexBuf gpucore.BufferID
	vertexCap uint64
	indexBuf  gpucore.BufferID
	indexCap  uint64

	textures map[ui.TextureID]*gpuTexture

	draws    []uiDraw
	vertices []byte
	indices  []byte
	missing  []ui.TextureID
}

// NewUIRenderer builds the UI pipeline for targets of the given format.
func NewUIRenderer(dev gpucore.Device, format gputypes.TextureFormat) (*UIRenderer, error) {
	fragment := "fs_main_gamma"
	if format.IsSrgb() {
		fragment = "fs_main_linear"
	}
	if err := ValidateWGSL(uiShaderSource, "vs_main", fragment); err != nil {
		return nil, err
	}

	r := &UIRenderer{
		dev:      dev,
		textures: make(map[ui.TextureID]*gpuTexture),
	}
	if err := r.createPipeline(format, fragment); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *UIRenderer) createPipeline(format gputypes.TextureFormat, fragment string) error {
	var err error
	r.shader, err = r.dev.CreateShaderModule("UI Shader", uiShaderSource)
	if err != nil {
		return fmt.Errorf("render: create ui shader: %w", err)
	}

	// Group 0: screen uniform + sampler, shared by all draws.
	// Group 1: the texture of the draw.
	r.globalsLayout, err = r.dev.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{
		Label: "UI globals layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create ui globals layout: %w", err)
	}
	r.textureLayout, err = r.dev.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{
		Label: "UI texture layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create ui texture layout: %w", err)
	}

	r.pipeLayout, err = r.dev.CreatePipelineLayout("UI Pipeline Layout",
		[]gpucore.BindGroupLayoutID{r.globalsLayout, r.textureLayout})
	if err != nil {
		return fmt.Errorf("render: create ui pipeline layout: %w", err)
	}

	premul := gputypes.BlendStatePremultiplied()
	r.pipeline, err = r.dev.CreateRenderPipeline(&gpucore.RenderPipelineDesc{
		Label:         "UI Pipeline",
		Layout:        r.pipeLayout,
		Module:        r.shader,
		VertexEntry:   "vs_main",
		FragmentEntry: fragment,
		VertexBuffers: []gputypes.VertexBufferLayout{uiVertexLayout()},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Target: gputypes.ColorTargetState{
			Format:    format,
			Blend:     &premul,
			WriteMask: gputypes.ColorWriteMaskAll,
		},
	})
	if err != nil {
		return fmt.Errorf("render: create ui pipeline: %w", err)
	}

	r.uniform, err = r.dev.CreateBuffer("UI screen uniform", screenUniformSize,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("render: create ui uniform: %w", err)
	}
	r.sampler, err = r.dev.CreateSampler(&gpucore.SamplerDesc{
		Label:        "UI sampler",
		AddressMode:  gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("render: create ui sampler: %w", err)
	}
	r.globals, err = r.dev.CreateBindGroup(&gpucore.BindGroupDesc{
		Label:  "UI globals",
		Layout: r.globalsLayout,
		Entries: []gpucore.BindGroupEntry{
			{Binding: 0, Buffer: r.uniform, Size: screenUniformSize},
			{Binding: 1, Sampler: r.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create ui globals: %w", err)
	}
	return nil
}

func uiVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: uiVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			{Format: gputypes.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
		},
	}
}

// === Textures ===

// UpdateTexture applies one texture delta. A whole delta creates the
// texture, replacing it when the size changed; a partial delta writes a
// sub-region of an existing texture.
func (r *UIRenderer) UpdateTexture(id ui.TextureID, d ui.ImageDelta) error {
	img := d.Image
	if img.Width <= 0 || img.Height <= 0 {
		return nil
	}
	w, h := uint32(img.Width), uint32(img.Height)

	tex := r.textures[id]
	var x, y uint32
	if d.IsWhole() {
		if tex == nil || tex.width != w || tex.height != h {
			var err error
			if tex, err = r.createTexture(id, w, h); err != nil {
				return err
			}
		}
	} else {
		if tex == nil {
			return fmt.Errorf("%w: partial update of %v", ErrUnknownTexture, id)
		}
		x, y = uint32(d.Pos[0]), uint32(d.Pos[1])
	}

	region := gpucore.TextureRegion{X: x, Y: y, Width: w, Height: h, BytesPerRow: w * 4}
	if err := r.dev.WriteTexture(tex.texture, region, img.Bytes()); err != nil {
		return fmt.Errorf("render: write texture %v: %w", id, err)
	}
	rayview.Logger().Debug("render: texture update", "id", id.String(), "whole", d.IsWhole(), "w", w, "h", h)
	return nil
}

func (r *UIRenderer) createTexture(id ui.TextureID, w, h uint32) (*gpuTexture, error) {
	r.FreeTexture(id)

	label := "UI texture " + id.String()
	t := &gpuTexture{width: w, height: h}
	var err error
	t.texture, err = r.dev.CreateTexture(&gpucore.TextureDesc{
		Label:  label,
		Width:  w,
		Height: h,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create texture %v: %w", id, err)
	}
	t.view, err = r.dev.CreateTextureView(t.texture)
	if err != nil {
		r.destroyTexture(t)
		return nil, fmt.Errorf("render: create view of %v: %w", id, err)
	}
	t.group, err = r.dev.CreateBindGroup(&gpucore.BindGroupDesc{
		Label:   label,
		Layout:  r.textureLayout,
		Entries: []gpucore.BindGroupEntry{{Binding: 0, TextureView: t.view}},
	})
	if err != nil {
		r.destroyTexture(t)
		return nil, fmt.Errorf("render: bind texture %v: %w", id, err)
	}
	r.textures[id] = t
	return t, nil
}

// FreeTexture releases the texture and its bind group. Unknown IDs are
// ignored.
func (r *UIRenderer) FreeTexture(id ui.TextureID) {
	if t, ok := r.textures[id]; ok {
		delete(r.textures, id)
		r.destroyTexture(t)
	}
}

func (r *UIRenderer) destroyTexture(t *gpuTexture) {
	if t.group != gpucore.InvalidID {
		r.dev.DestroyBindGroup(t.group)
	}
	if t.view != gpucore.InvalidID {
		r.dev.DestroyTextureView(t.view)
	}
	if t.texture != gpucore.InvalidID {
		r.dev.DestroyTexture(t.texture)
	}
}

// TextureCount returns the number of cached textures.
func (r *UIRenderer) TextureCount() int {
	return len(r.textures)
}

// === Frame ===

// Prepare uploads the screen size, vertices and indices of prims and
// computes the draws of the frame. It must run before the render pass
// begins. Primitives whose clip rectangle falls outside the target are
// dropped, and so are primitives naming a texture the renderer does not
// have; Missing lists those textures.
func (r *UIRenderer) Prepare(prims []ui.ClippedPrimitive, width, height uint32, pixelsPerPoint float32) error {
	r.draws = r.draws[:0]
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	r.missing = r.missing[:0]
	if width == 0 || height == 0 {
		return nil
	}
	if pixelsPerPoint <= 0 {
		pixelsPerPoint = 1
	}

	var vertexCount, indexCount uint32
	for _, p := range prims {
		m := p.Mesh
		if m == nil || m.IsEmpty() {
			continue
		}
		if _, ok := r.textures[m.Texture]; !ok {
			if !slices.Contains(r.missing, m.Texture) {
				r.missing = append(r.missing, m.Texture)
			}
			continue
		}
		scissor, ok := scissorRect(p.ClipRect, width, height, pixelsPerPoint)
		if !ok {
			continue
		}
		r.draws = append(r.draws, uiDraw{
			scissor:    scissor,
			texture:    m.Texture,
			firstIndex: indexCount,
			indexCount: uint32(len(m.Indices)),
			baseVertex: int32(vertexCount),
		})
		r.vertices = appendVertices(r.vertices, m.Vertices)
		r.indices = appendIndices(r.indices, m.Indices)
		vertexCount += uint32(len(m.Vertices))
		indexCount += uint32(len(m.Indices))
	}

	var uniform [screenUniformSize]byte
	binary.LittleEndian.PutUint32(uniform[0:], math.Float32bits(float32(width)/pixelsPerPoint))
	binary.LittleEndian.PutUint32(uniform[4:], math.Float32bits(float32(height)/pixelsPerPoint))
	if err := r.dev.WriteBuffer(r.uniform, 0, uniform[:]); err != nil {
		return fmt.Errorf("render: write ui uniform: %w", err)
	}
	if len(r.draws) == 0 {
		return nil
	}

	var err error
	r.vertexBuf, r.vertexCap, err = r.ensureBuffer(r.vertexBuf, r.vertexCap, uint64(len(r.vertices)),
		minVertexBufferSize, "UI vertex buffer", gputypes.BufferUsageVertex)
	if err != nil {
		return err
	}
	r.indexBuf, r.indexCap, err = r.ensureBuffer(r.indexBuf, r.indexCap, uint64(len(r.indices)),
		minIndexBufferSize, "UI index buffer", gputypes.BufferUsageIndex)
	if err != nil {
		return err
	}
	if err := r.dev.WriteBuffer(r.vertexBuf, 0, r.vertices); err != nil {
		return fmt.Errorf("render: write ui vertices: %w", err)
	}
	if err := r.dev.WriteBuffer(r.indexBuf, 0, r.indices); err != nil {
		return fmt.Errorf("render: write ui indices: %w", err)
	}
	rayview.Logger().Debug("render: ui prepared",
		"draws", len(r.draws), "vertices", vertexCount, "indices", indexCount)
	return nil
}

// ensureBuffer returns a buffer of at least need bytes, replacing buf when
// it is too small.
func (r *UIRenderer) ensureBuffer(buf gpucore.BufferID, capacity, need, minSize uint64,
	label string, usage gputypes.BufferUsage) (gpucore.BufferID, uint64, error) {
	if buf != gpucore.InvalidID && need <= capacity {
		return buf, capacity, nil
	}
	size := nextPowerOfTwo(max(need, minSize))
	nb, err := r.dev.CreateBuffer(label, size, usage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return buf, capacity, fmt.Errorf("render: grow %s to %d: %w", label, size, err)
	}
	if buf != gpucore.InvalidID {
		r.dev.DestroyBuffer(buf)
	}
	rayview.Logger().Debug("render: buffer grown", "label", label, "size", size)
	return nb, size, nil
}

// Record issues the prepared draws into pass.
func (r *UIRenderer) Record(pass gpucore.RenderPassEncoder) {
	if len(r.draws) == 0 {
		return
	}
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.globals)
	pass.SetVertexBuffer(0, r.vertexBuf, 0)
	pass.SetIndexBuffer(r.indexBuf, gputypes.IndexFormatUint32, 0)
	for _, d := range r.draws {
		tex := r.textures[d.texture]
		if tex == nil {
			continue
		}
		pass.SetScissorRect(d.scissor[0], d.scissor[1], d.scissor[2], d.scissor[3])
		pass.SetBindGroup(1, tex.group)
		pass.DrawIndexed(d.indexCount, 1, d.firstIndex, d.baseVertex, 0)
	}
}

// DrawCount returns the number of draws prepared for the current frame.
func (r *UIRenderer) DrawCount() int {
	return len(r.draws)
}

// Missing returns the textures named by primitives that the last Prepare
// skipped.
func (r *UIRenderer) Missing() []ui.TextureID {
	return r.missing
}

// Reset drops the prepared draws, e.g. for a frame without UI output.
func (r *UIRenderer) Reset() {
	r.draws = r.draws[:0]
	r.missing = r.missing[:0]
}

// Release destroys every GPU object the renderer owns.
func (r *UIRenderer) Release() {
	for id := range r.textures {
		r.FreeTexture(id)
	}
	if r.indexBuf != gpucore.InvalidID {
		r.dev.DestroyBuffer(r.indexBuf)
	}
	if r.vertexBuf != gpucore.InvalidID {
		r.dev.DestroyBuffer(r.vertexBuf)
	}
	if r.globals != gpucore.InvalidID {
		r.dev.DestroyBindGroup(r.globals)
	}
	if r.sampler != gpucore.InvalidID {
		r.dev.DestroySampler(r.sampler)
	}
	if r.uniform != gpucore.InvalidID {
		r.dev.DestroyBuffer(r.uniform)
	}
	if r.pipeline != gpucore.InvalidID {
		r.dev.DestroyRenderPipeline(r.pipeline)
	}
	if r.pipeLayout != gpucore.InvalidID {
		r.dev.DestroyPipelineLayout(r.pipeLayout)
	}
	if r.textureLayout != gpucore.InvalidID {
		r.dev.DestroyBindGroupLayout(r.textureLayout)
	}
	if r.globalsLayout != gpucore.InvalidID {
		r.dev.DestroyBindGroupLayout(r.globalsLayout)
	}
	if r.shader != gpucore.InvalidID {
		r.dev.DestroyShaderModule(r.shader)
	}
	*r = UIRenderer{dev: r.dev, textures: r.textures}
}

// scissorRect converts a clip rectangle in points to whole pixels clamped
// to the target. ok is false when nothing remains.
func scissorRect(clip ui.Rect, width, height uint32, ppp float32) (rect [4]uint32, ok bool) {
	clamp := func(v float32, hi uint32) uint32 {
		v = float32(math.Round(float64(v * ppp)))
		if v <= 0 {
			return 0
		}
		if v >= float32(hi) {
			return hi
		}
		return uint32(v)
	}
	x0, y0 := clamp(clip.Min.X, width), clamp(clip.Min.Y, height)
	x1, y1 := clamp(clip.Max.X, width), clamp(clip.Max.Y, height)
	if x1 <= x0 || y1 <= y0 {
		return rect, false
	}
	return [4]uint32{x0, y0, x1 - x0, y1 - y0}, true
}

func appendVertices(dst []byte, vs []ui.Vertex) []byte {
	var b [uiVertexStride]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v.Pos.X))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Pos.Y))
		binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.UV.X))
		binary.LittleEndian.PutUint32(b[12:], math.Float32bits(v.UV.Y))
		copy(b[16:], v.Color[:])
		dst = append(dst, b[:]...)
	}
	return dst
}

func appendIndices(dst []byte, is []uint32) []byte {
	for _, i := range is {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

func nextPowerOfTwo(v uint64) uint64 {
	p := uint64(1)
	for p < v {
		p <<= 1
	}
	return p
}
