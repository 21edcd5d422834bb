// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
)

// basePipeline is the full-screen pass drawn first every frame. Its bind
// group layout is empty; it exists so that content can be bound later
// without changing the pass.
type basePipeline struct {
	shader     gpucore.ShaderModuleID
	layout     gpucore.BindGroupLayoutID
	group      gpucore.BindGroupID
	pipeLayout gpucore.PipelineLayoutID
	pipeline   gpucore.RenderPipelineID
}

func newBasePipeline(dev gpucore.Device, format gputypes.TextureFormat, src string) (*basePipeline, error) {
	if err := ValidateWGSL(src, VertexEntry, FragmentEntry); err != nil {
		return nil, err
	}

	p := &basePipeline{}
	if err := p.create(dev, format, src); err != nil {
		p.release(dev)
		return nil, err
	}
	return p, nil
}

func (p *basePipeline) create(dev gpucore.Device, format gputypes.TextureFormat, src string) error {
	var err error
	p.shader, err = dev.CreateShaderModule("Screen Shader", src)
	if err != nil {
		return fmt.Errorf("render: create screen shader: %w", err)
	}

	p.layout, err = dev.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{
		Label: "Screen bind group layout",
	})
	if err != nil {
		return fmt.Errorf("render: create screen bind group layout: %w", err)
	}

	p.group, err = dev.CreateBindGroup(&gpucore.BindGroupDesc{
		Label:  "Screen bind group",
		Layout: p.layout,
	})
	if err != nil {
		return fmt.Errorf("render: create screen bind group: %w", err)
	}

	p.pipeLayout, err = dev.CreatePipelineLayout("Screen Pipeline Layout", []gpucore.BindGroupLayoutID{p.layout})
	if err != nil {
		return fmt.Errorf("render: create screen pipeline layout: %w", err)
	}

	replace := gputypes.BlendStateReplace()
	p.pipeline, err = dev.CreateRenderPipeline(&gpucore.RenderPipelineDesc{
		Label:         "Screen Pipeline",
		Layout:        p.pipeLayout,
		Module:        p.shader,
		VertexEntry:   VertexEntry,
		FragmentEntry: FragmentEntry,
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Target: gputypes.ColorTargetState{
			Format:    format,
			Blend:     &replace,
			WriteMask: gputypes.ColorWriteMaskAll,
		},
	})
	if err != nil {
		return fmt.Errorf("render: create screen pipeline: %w", err)
	}
	return nil
}

// record draws the full-screen quad.
func (p *basePipeline) record(pass gpucore.RenderPassEncoder) {
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.group)
	pass.Draw(6, 1, 0, 0)
}

// release destroys the GPU objects in reverse creation order. Missing
// objects are skipped, so a partially built pipeline can be released.
func (p *basePipeline) release(dev gpucore.Device) {
	if p.pipeline != gpucore.InvalidID {
		dev.DestroyRenderPipeline(p.pipeline)
	}
	if p.pipeLayout != gpucore.InvalidID {
		dev.DestroyPipelineLayout(p.pipeLayout)
	}
	if p.group != gpucore.InvalidID {
		dev.DestroyBindGroup(p.group)
	}
	if p.layout != gpucore.InvalidID {
		dev.DestroyBindGroupLayout(p.layout)
	}
	if p.shader != gpucore.InvalidID {
		dev.DestroyShaderModule(p.shader)
	}
	*p = basePipeline{}
}
