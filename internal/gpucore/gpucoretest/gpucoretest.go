// Package gpucoretest provides recording fakes of the gpucore interfaces
// for tests that must not touch a real GPU.
package gpucoretest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
)

// Log is an ordered record of GPU calls shared between fakes.
type Log struct {
	Calls []string
}

func (l *Log) add(format string, args ...any) {
	if l == nil {
		return
	}
	l.Calls = append(l.Calls, fmt.Sprintf(format, args...))
}

// Index returns the position of the first call with the given prefix, or -1.
func (l *Log) Index(prefix string) int {
	for i, c := range l.Calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

// LastIndex returns the position of the last call with the given prefix, or -1.
func (l *Log) LastIndex(prefix string) int {
	for i := len(l.Calls) - 1; i >= 0; i-- {
		if strings.HasPrefix(l.Calls[i], prefix) {
			return i
		}
	}
	return -1
}

// Count returns the number of calls with the given prefix.
func (l *Log) Count(prefix string) int {
	n := 0
	for _, c := range l.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Reset clears the log.
func (l *Log) Reset() {
	l.Calls = l.Calls[:0]
}

// Texture is the fake backing store of a texture.
type Texture struct {
	Desc   gpucore.TextureDesc
	Writes []gpucore.TextureRegion
}

// Buffer is the fake backing store of a buffer.
type Buffer struct {
	Label string
	Size  uint64
	Usage gputypes.BufferUsage
	Data  []byte
}

// Device is a recording gpucore.Device.
type Device struct {
	Log *Log

	// Fail injects an error into the named method, e.g. "CreateRenderPipeline".
	Fail map[string]error

	Shaders   gpucore.Table[gpucore.ShaderModuleID, string]
	Layouts   gpucore.Table[gpucore.BindGroupLayoutID, gpucore.BindGroupLayoutDesc]
	PLayouts  gpucore.Table[gpucore.PipelineLayoutID, []gpucore.BindGroupLayoutID]
	Pipelines gpucore.Table[gpucore.RenderPipelineID, gpucore.RenderPipelineDesc]
	Groups    gpucore.Table[gpucore.BindGroupID, gpucore.BindGroupDesc]
	Buffers   gpucore.Table[gpucore.BufferID, *Buffer]
	Textures  gpucore.Table[gpucore.TextureID, *Texture]
	Views     gpucore.Table[gpucore.TextureViewID, gpucore.TextureID]
	Samplers  gpucore.Table[gpucore.SamplerID, gpucore.SamplerDesc]

	// Submitted holds the labels of submitted command buffers.
	Submitted []string

	Released bool
}

var _ gpucore.Device = (*Device)(nil)

// NewDevice returns a device that records into log. A nil log gets a new one.
func NewDevice(log *Log) *Device {
	if log == nil {
		log = &Log{}
	}
	return &Device{Log: log}
}

func (d *Device) fail(method string) error {
	if err, ok := d.Fail[method]; ok {
		d.Log.add("%s!", method)
		return err
	}
	return nil
}

// Live returns the number of live resources of every kind.
func (d *Device) Live() int {
	return d.Shaders.Len() + d.Layouts.Len() + d.PLayouts.Len() + d.Pipelines.Len() +
		d.Groups.Len() + d.Buffers.Len() + d.Textures.Len() + d.Views.Len() + d.Samplers.Len()
}

func (d *Device) CreateShaderModule(label, wgsl string) (gpucore.ShaderModuleID, error) {
	if err := d.fail("CreateShaderModule"); err != nil {
		return gpucore.InvalidID, err
	}
	d.Log.add("CreateShaderModule %s", label)
	return d.Shaders.Insert(wgsl), nil
}

func (d *Device) DestroyShaderModule(id gpucore.ShaderModuleID) {
	d.Shaders.Remove(id)
}

func (d *Device) CreateBindGroupLayout(desc *gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	if err := d.fail("CreateBindGroupLayout"); err != nil {
		return gpucore.InvalidID, err
	}
	d.Log.add("CreateBindGroupLayout %s entries=%d", desc.Label, len(desc.Entries))
	return d.Layouts.Insert(*desc), nil
}

func (d *Device) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {
	d.Layouts.Remove(id)
}

func (d *Device) CreatePipelineLayout(label string, layouts []gpucore.BindGroupLayoutID) (gpucore.PipelineLayoutID, error) {
	if err := d.fail("CreatePipelineLayout"); err != nil {
		return gpucore.InvalidID, err
	}
	for _, l := range layouts {
		if _, ok := d.Layouts.Get(l); !ok {
			return gpucore.InvalidID, gpucore.ErrInvalidID
		}
	}
	d.Log.add("CreatePipelineLayout %s", label)
	return d.PLayouts.Insert(slices.Clone(layouts)), nil
}

func (d *Device) DestroyPipelineLayout(id gpucore.PipelineLayoutID) {
	d.PLayouts.Remove(id)
}

func (d *Device) CreateRenderPipeline(desc *gpucore.RenderPipelineDesc) (gpucore.RenderPipelineID, error) {
	if err := d.fail("CreateRenderPipeline"); err != nil {
		return gpucore.InvalidID, err
	}
	if _, ok := d.Shaders.Get(desc.Module); !ok {
		return gpucore.InvalidID, gpucore.ErrInvalidID
	}
	d.Log.add("CreateRenderPipeline %s", desc.Label)
	return d.Pipelines.Insert(*desc), nil
}

func (d *Device) DestroyRenderPipeline(id gpucore.RenderPipelineID) {
	d.Pipelines.Remove(id)
}

func (d *Device) CreateBindGroup(desc *gpucore.BindGroupDesc) (gpucore.BindGroupID, error) {
	if err := d.fail("CreateBindGroup"); err != nil {
		return gpucore.InvalidID, err
	}
	if _, ok := d.Layouts.Get(desc.Layout); !ok {
		return gpucore.InvalidID, gpucore.ErrInvalidID
	}
	d.Log.add("CreateBindGroup %s", desc.Label)
	return d.Groups.Insert(*desc), nil
}

func (d *Device) DestroyBindGroup(id gpucore.BindGroupID) {
	d.Groups.Remove(id)
}

func (d *Device) CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (gpucore.BufferID, error) {
	if err := d.fail("CreateBuffer"); err != nil {
		return gpucore.InvalidID, err
	}
	d.Log.add("CreateBuffer %s size=%d", label, size)
	return d.Buffers.Insert(&Buffer{Label: label, Size: size, Usage: usage}), nil
}

func (d *Device) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	if err := d.fail("WriteBuffer"); err != nil {
		return err
	}
	b, ok := d.Buffers.Get(id)
	if !ok {
		return gpucore.ErrInvalidID
	}
	if offset+uint64(len(data)) > b.Size {
		return fmt.Errorf("gpucoretest: write of %d bytes at %d overflows %s (%d)", len(data), offset, b.Label, b.Size)
	}
	d.Log.add("WriteBuffer %s len=%d", b.Label, len(data))
	b.Data = append(b.Data[:0], data...)
	return nil
}

func (d *Device) DestroyBuffer(id gpucore.BufferID) {
	d.Buffers.Remove(id)
}

func (d *Device) CreateTexture(desc *gpucore.TextureDesc) (gpucore.TextureID, error) {
	if err := d.fail("CreateTexture"); err != nil {
		return gpucore.InvalidID, err
	}
	d.Log.add("CreateTexture %s %dx%d", desc.Label, desc.Width, desc.Height)
	return d.Textures.Insert(&Texture{Desc: *desc}), nil
}

func (d *Device) WriteTexture(id gpucore.TextureID, region gpucore.TextureRegion, data []byte) error {
	if err := d.fail("WriteTexture"); err != nil {
		return err
	}
	tex, ok := d.Textures.Get(id)
	if !ok {
		return gpucore.ErrInvalidID
	}
	if region.X+region.Width > tex.Desc.Width || region.Y+region.Height > tex.Desc.Height {
		return fmt.Errorf("gpucoretest: region %+v outside %dx%d texture", region, tex.Desc.Width, tex.Desc.Height)
	}
	if uint64(len(data)) < uint64(region.BytesPerRow)*uint64(region.Height) {
		return fmt.Errorf("gpucoretest: %d bytes too short for region %+v", len(data), region)
	}
	d.Log.add("WriteTexture %s %d,%d %dx%d", tex.Desc.Label, region.X, region.Y, region.Width, region.Height)
	tex.Writes = append(tex.Writes, region)
	return nil
}

func (d *Device) CreateTextureView(id gpucore.TextureID) (gpucore.TextureViewID, error) {
	if err := d.fail("CreateTextureView"); err != nil {
		return gpucore.InvalidID, err
	}
	if _, ok := d.Textures.Get(id); !ok {
		return gpucore.InvalidID, gpucore.ErrInvalidID
	}
	return d.Views.Insert(id), nil
}

func (d *Device) DestroyTextureView(id gpucore.TextureViewID) {
	d.Views.Remove(id)
}

func (d *Device) DestroyTexture(id gpucore.TextureID) {
	if tex, ok := d.Textures.Remove(id); ok {
		d.Log.add("DestroyTexture %s", tex.Desc.Label)
	}
}

func (d *Device) CreateSampler(desc *gpucore.SamplerDesc) (gpucore.SamplerID, error) {
	if err := d.fail("CreateSampler"); err != nil {
		return gpucore.InvalidID, err
	}
	return d.Samplers.Insert(*desc), nil
}

func (d *Device) DestroySampler(id gpucore.SamplerID) {
	d.Samplers.Remove(id)
}

func (d *Device) CreateCommandEncoder(label string) (gpucore.CommandEncoder, error) {
	if err := d.fail("CreateCommandEncoder"); err != nil {
		return nil, err
	}
	d.Log.add("CreateCommandEncoder %s", label)
	return &CommandEncoder{dev: d, label: label}, nil
}

func (d *Device) Submit(cmd gpucore.CommandBuffer) error {
	if err := d.fail("Submit"); err != nil {
		return err
	}
	d.Log.add("Submit %s", cmd.Label())
	d.Submitted = append(d.Submitted, cmd.Label())
	return nil
}

func (d *Device) WaitIdle() error {
	d.Log.add("WaitIdle")
	return nil
}

func (d *Device) Release() {
	d.Log.add("ReleaseDevice")
	d.Released = true
}

// CommandEncoder is a recording gpucore.CommandEncoder.
type CommandEncoder struct {
	dev      *Device
	label    string
	open     bool
	finished bool
}

func (e *CommandEncoder) BeginRenderPass(desc *gpucore.RenderPassDesc) (gpucore.RenderPassEncoder, error) {
	if err := e.dev.fail("BeginRenderPass"); err != nil {
		return nil, err
	}
	if e.open || e.finished {
		return nil, fmt.Errorf("gpucoretest: encoder %s is busy", e.label)
	}
	if _, ok := e.dev.Views.Get(desc.Color.View); !ok {
		return nil, gpucore.ErrInvalidID
	}
	c := desc.Color.ClearValue
	e.dev.Log.add("BeginRenderPass %s clear=(%g,%g,%g,%g)", desc.Label, c.R, c.G, c.B, c.A)
	e.open = true
	return &RenderPass{enc: e}, nil
}

func (e *CommandEncoder) Finish() (gpucore.CommandBuffer, error) {
	if e.open {
		return nil, fmt.Errorf("gpucoretest: encoder %s has an open pass", e.label)
	}
	e.finished = true
	e.dev.Log.add("Finish %s", e.label)
	return commandBuffer(e.label), nil
}

type commandBuffer string

func (c commandBuffer) Label() string { return string(c) }

// RenderPass is a recording gpucore.RenderPassEncoder.
type RenderPass struct {
	enc   *CommandEncoder
	ended bool
}

func (p *RenderPass) log(format string, args ...any) {
	if p.ended {
		p.enc.dev.Log.add("AfterEnd "+format, args...)
		return
	}
	p.enc.dev.Log.add(format, args...)
}

func (p *RenderPass) SetPipeline(id gpucore.RenderPipelineID) {
	desc, _ := p.enc.dev.Pipelines.Get(id)
	p.log("SetPipeline %s", desc.Label)
}

func (p *RenderPass) SetBindGroup(index uint32, id gpucore.BindGroupID) {
	desc, _ := p.enc.dev.Groups.Get(id)
	p.log("SetBindGroup %d %s", index, desc.Label)
}

func (p *RenderPass) SetVertexBuffer(slot uint32, id gpucore.BufferID, offset uint64) {
	p.log("SetVertexBuffer %d", slot)
}

func (p *RenderPass) SetIndexBuffer(id gpucore.BufferID, format gputypes.IndexFormat, offset uint64) {
	p.log("SetIndexBuffer")
}

func (p *RenderPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	p.log("SetViewport %g,%g %gx%g", x, y, width, height)
}

func (p *RenderPass) SetScissorRect(x, y, width, height uint32) {
	p.log("SetScissorRect %d,%d %dx%d", x, y, width, height)
}

func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.log("Draw %d %d %d %d", vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *RenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.log("DrawIndexed %d %d %d %d", indexCount, instanceCount, firstIndex, baseVertex)
}

func (p *RenderPass) End() error {
	if p.ended {
		return fmt.Errorf("gpucoretest: pass already ended")
	}
	p.ended = true
	p.enc.open = false
	p.enc.dev.Log.add("EndPass")
	return nil
}
