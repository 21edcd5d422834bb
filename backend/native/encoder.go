package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/wgpu"
)

type commandEncoder struct {
	dev   *Device
	enc   *wgpu.CommandEncoder
	label string
}

func (e *commandEncoder) BeginRenderPass(desc *gpucore.RenderPassDesc) (gpucore.RenderPassEncoder, error) {
	view, ok := e.dev.views.Get(desc.Color.View)
	if !ok {
		return nil, fmt.Errorf("native: render pass %q: view %d: %w", desc.Label, desc.Color.View, gpucore.ErrInvalidID)
	}
	p, err := e.enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     desc.Color.LoadOp,
			StoreOp:    desc.Color.StoreOp,
			ClearValue: desc.Color.ClearValue,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("native: render pass %q: %w", desc.Label, mapError(err))
	}
	return &renderPass{dev: e.dev, pass: p}, nil
}

func (e *commandEncoder) Finish() (gpucore.CommandBuffer, error) {
	buf, err := e.enc.Finish()
	if err != nil {
		return nil, fmt.Errorf("native: finish %q: %w", e.label, mapError(err))
	}
	return &commandBuffer{buf: buf, label: e.label}, nil
}

type commandBuffer struct {
	buf   *wgpu.CommandBuffer
	label string
}

func (c *commandBuffer) Label() string { return c.label }

// renderPass resolves IDs to backend objects. Unknown IDs are dropped; the
// wgpu draw-state validation then reports the missing binding at End.
type renderPass struct {
	dev  *Device
	pass *wgpu.RenderPassEncoder
}

func (p *renderPass) SetPipeline(id gpucore.RenderPipelineID) {
	if pl, ok := p.dev.pipelines.Get(id); ok {
		p.pass.SetPipeline(pl)
	}
}

func (p *renderPass) SetBindGroup(index uint32, id gpucore.BindGroupID) {
	if g, ok := p.dev.groups.Get(id); ok {
		p.pass.SetBindGroup(index, g, nil)
	}
}

func (p *renderPass) SetVertexBuffer(slot uint32, id gpucore.BufferID, offset uint64) {
	if b, ok := p.dev.buffers.Get(id); ok {
		p.pass.SetVertexBuffer(slot, b, offset)
	}
}

func (p *renderPass) SetIndexBuffer(id gpucore.BufferID, format gputypes.IndexFormat, offset uint64) {
	if b, ok := p.dev.buffers.Get(id); ok {
		p.pass.SetIndexBuffer(b, format, offset)
	}
}

func (p *renderPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	p.pass.SetViewport(x, y, width, height, minDepth, maxDepth)
}

func (p *renderPass) SetScissorRect(x, y, width, height uint32) {
	p.pass.SetScissorRect(x, y, width, height)
}

func (p *renderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *renderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *renderPass) End() error {
	return mapError(p.pass.End())
}
