package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/wgpu"
)

// Device is a gpucore.Device backed by a wgpu device. Backend objects are
// kept in ID tables and released through the Destroy methods.
type Device struct {
	dev   *wgpu.Device
	queue *wgpu.Queue

	shaders   gpucore.Table[gpucore.ShaderModuleID, *wgpu.ShaderModule]
	layouts   gpucore.Table[gpucore.BindGroupLayoutID, *wgpu.BindGroupLayout]
	playouts  gpucore.Table[gpucore.PipelineLayoutID, *wgpu.PipelineLayout]
	pipelines gpucore.Table[gpucore.RenderPipelineID, *wgpu.RenderPipeline]
	groups    gpucore.Table[gpucore.BindGroupID, *wgpu.BindGroup]
	buffers   gpucore.Table[gpucore.BufferID, *wgpu.Buffer]
	textures  gpucore.Table[gpucore.TextureID, *wgpu.Texture]
	views     gpucore.Table[gpucore.TextureViewID, *wgpu.TextureView]
	samplers  gpucore.Table[gpucore.SamplerID, *wgpu.Sampler]

	released bool
}

var _ gpucore.Device = (*Device)(nil)

func newDevice(d *wgpu.Device) *Device {
	return &Device{dev: d, queue: d.Queue()}
}

// === Shaders and Pipelines ===

// CreateShaderModule compiles WGSL source.
func (d *Device) CreateShaderModule(label, wgsl string) (gpucore.ShaderModuleID, error) {
	m, err := d.dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{Label: label, WGSL: wgsl})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: shader module %q: %w", label, mapError(err))
	}
	return d.shaders.Insert(m), nil
}

// DestroyShaderModule releases a shader module.
func (d *Device) DestroyShaderModule(id gpucore.ShaderModuleID) {
	if m, ok := d.shaders.Remove(id); ok {
		m.Release()
	}
}

func (d *Device) CreateBindGroupLayout(desc *gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	l, err := d.dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: desc.Entries,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: bind group layout %q: %w", desc.Label, mapError(err))
	}
	return d.layouts.Insert(l), nil
}

func (d *Device) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {
	if l, ok := d.layouts.Remove(id); ok {
		l.Release()
	}
}

func (d *Device) CreatePipelineLayout(label string, layouts []gpucore.BindGroupLayoutID) (gpucore.PipelineLayoutID, error) {
	native := make([]*wgpu.BindGroupLayout, 0, len(layouts))
	for _, id := range layouts {
		l, ok := d.layouts.Get(id)
		if !ok {
			return gpucore.InvalidID, fmt.Errorf("native: pipeline layout %q: bind group layout %d: %w", label, id, gpucore.ErrInvalidID)
		}
		native = append(native, l)
	}
	pl, err := d.dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: native,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: pipeline layout %q: %w", label, mapError(err))
	}
	return d.playouts.Insert(pl), nil
}

func (d *Device) DestroyPipelineLayout(id gpucore.PipelineLayoutID) {
	if pl, ok := d.playouts.Remove(id); ok {
		pl.Release()
	}
}

func (d *Device) CreateRenderPipeline(desc *gpucore.RenderPipelineDesc) (gpucore.RenderPipelineID, error) {
	layout, ok := d.playouts.Get(desc.Layout)
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("native: render pipeline %q: layout: %w", desc.Label, gpucore.ErrInvalidID)
	}
	module, ok := d.shaders.Get(desc.Module)
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("native: render pipeline %q: module: %w", desc.Label, gpucore.ErrInvalidID)
	}
	p, err := d.dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: desc.VertexEntry,
			Buffers:    desc.VertexBuffers,
		},
		Primitive:   desc.Primitive,
		Multisample: desc.Multisample,
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: desc.FragmentEntry,
			Targets:    []gputypes.ColorTargetState{desc.Target},
		},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: render pipeline %q: %w", desc.Label, mapError(err))
	}
	return d.pipelines.Insert(p), nil
}

func (d *Device) DestroyRenderPipeline(id gpucore.RenderPipelineID) {
	if p, ok := d.pipelines.Remove(id); ok {
		p.Release()
	}
}

// CreateBindGroup resolves every entry to a live resource before creating
// the group.
func (d *Device) CreateBindGroup(desc *gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	layout, ok := d.layouts.Get(desc.Layout)
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("native: bind group %q: layout: %w", desc.Label, gpucore.ErrInvalidID)
	}
	entries := make([]wgpu.BindGroupEntry, 0, len(desc.Entries))
	for _, e := range desc.Entries {
		entry := wgpu.BindGroupEntry{Binding: e.Binding, Offset: e.Offset, Size: e.Size}
		switch {
		case e.Buffer != gpucore.InvalidID:
			entry.Buffer, ok = d.buffers.Get(e.Buffer)
		case e.Sampler != gpucore.InvalidID:
			entry.Sampler, ok = d.samplers.Get(e.Sampler)
		case e.TextureView != gpucore.InvalidID:
			entry.TextureView, ok = d.views.Get(e.TextureView)
		default:
			ok = false
		}
		if !ok {
			return gpucore.InvalidID, fmt.Errorf("native: bind group %q: binding %d: %w", desc.Label, e.Binding, gpucore.ErrInvalidID)
		}
		entries = append(entries, entry)
	}
	g, err := d.dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: bind group %q: %w", desc.Label, mapError(err))
	}
	return d.groups.Insert(g), nil
}

func (d *Device) DestroyBindGroup(id gpucore.BindGroupID) {
	if g, ok := d.groups.Remove(id); ok {
		g.Release()
	}
}

// === Buffers ===

func (d *Device) CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (gpucore.BufferID, error) {
	b, err := d.dev.CreateBuffer(&wgpu.BufferDescriptor{Label: label, Size: size, Usage: usage})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: buffer %q: %w", label, mapError(err))
	}
	return d.buffers.Insert(b), nil
}

func (d *Device) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	b, ok := d.buffers.Get(id)
	if !ok {
		return fmt.Errorf("native: write buffer %d: %w", id, gpucore.ErrInvalidID)
	}
	return mapError(d.queue.WriteBuffer(b, offset, data))
}

func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	if b, ok := d.buffers.Remove(id); ok {
		b.Release()
	}
}

// === Textures ===

// CreateTexture creates a 2D texture with one mip level.
func (d *Device) CreateTexture(desc *gpucore.TextureDesc) (gpucore.TextureID, error) {
	t, err := d.dev.CreateTexture(&wgpu.TextureDescriptor{
		Label:         desc.Label,
		Size:          wgpu.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: texture %q: %w", desc.Label, mapError(err))
	}
	return d.textures.Insert(t), nil
}

func (d *Device) WriteTexture(id gpucore.TextureID, region gpucore.TextureRegion, data []byte) error {
	t, ok := d.textures.Get(id)
	if !ok {
		return fmt.Errorf("native: write texture %d: %w", id, gpucore.ErrInvalidID)
	}
	err := d.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture: t,
			Origin:  wgpu.Origin3D{X: region.X, Y: region.Y},
			Aspect:  gputypes.TextureAspectAll,
		},
		data,
		&wgpu.ImageDataLayout{BytesPerRow: region.BytesPerRow, RowsPerImage: region.Height},
		&wgpu.Extent3D{Width: region.Width, Height: region.Height, DepthOrArrayLayers: 1},
	)
	return mapError(err)
}

func (d *Device) CreateTextureView(id gpucore.TextureID) (gpucore.TextureViewID, error) {
	t, ok := d.textures.Get(id)
	if !ok {
		return gpucore.InvalidID, fmt.Errorf("native: texture view: texture %d: %w", id, gpucore.ErrInvalidID)
	}
	v, err := d.dev.CreateTextureView(t, &wgpu.TextureViewDescriptor{
		Format:          t.Format(),
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: texture view: %w", mapError(err))
	}
	return d.views.Insert(v), nil
}

func (d *Device) DestroyTextureView(id gpucore.TextureViewID) {
	if v, ok := d.views.Remove(id); ok {
		v.Release()
	}
}

func (d *Device) DestroyTexture(id gpucore.TextureID) {
	if t, ok := d.textures.Remove(id); ok {
		t.Release()
	}
}

func (d *Device) CreateSampler(desc *gpucore.SamplerDesc) (gpucore.SamplerID, error) {
	s, err := d.dev.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressMode,
		AddressModeV: desc.AddressMode,
		AddressModeW: desc.AddressMode,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("native: sampler %q: %w", desc.Label, mapError(err))
	}
	return d.samplers.Insert(s), nil
}

func (d *Device) DestroySampler(id gpucore.SamplerID) {
	if s, ok := d.samplers.Remove(id); ok {
		s.Release()
	}
}

// === Commands ===

func (d *Device) CreateCommandEncoder(label string) (gpucore.CommandEncoder, error) {
	e, err := d.dev.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("native: command encoder %q: %w", label, mapError(err))
	}
	return &commandEncoder{dev: d, enc: e, label: label}, nil
}

func (d *Device) Submit(cmd gpucore.CommandBuffer) error {
	cb, ok := cmd.(*commandBuffer)
	if !ok {
		return fmt.Errorf("native: submit: foreign command buffer %T", cmd)
	}
	if _, err := d.queue.Submit(cb.buf); err != nil {
		return fmt.Errorf("native: submit %q: %w", cb.label, mapError(err))
	}
	return nil
}

func (d *Device) WaitIdle() error {
	return mapError(d.dev.WaitIdle())
}

// Release destroys every live resource and then the device.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true
	if err := d.dev.WaitIdle(); err != nil {
		rayview.Logger().Warn("native: wait idle before release", "err", err)
	}
	d.groups.Each(func(id gpucore.BindGroupID, _ *wgpu.BindGroup) { d.DestroyBindGroup(id) })
	d.pipelines.Each(func(id gpucore.RenderPipelineID, _ *wgpu.RenderPipeline) { d.DestroyRenderPipeline(id) })
	d.playouts.Each(func(id gpucore.PipelineLayoutID, _ *wgpu.PipelineLayout) { d.DestroyPipelineLayout(id) })
	d.layouts.Each(func(id gpucore.BindGroupLayoutID, _ *wgpu.BindGroupLayout) { d.DestroyBindGroupLayout(id) })
	d.shaders.Each(func(id gpucore.ShaderModuleID, _ *wgpu.ShaderModule) { d.DestroyShaderModule(id) })
	d.views.Each(func(id gpucore.TextureViewID, _ *wgpu.TextureView) { d.DestroyTextureView(id) })
	d.textures.Each(func(id gpucore.TextureID, _ *wgpu.Texture) { d.DestroyTexture(id) })
	d.samplers.Each(func(id gpucore.SamplerID, _ *wgpu.Sampler) { d.DestroySampler(id) })
	d.buffers.Each(func(id gpucore.BufferID, _ *wgpu.Buffer) { d.DestroyBuffer(id) })
	d.dev.Release()
}
