package gpucore

import "github.com/gogpu/gputypes"

// Device abstracts a logical GPU device and its queue.
//
// This interface is the seam between frame orchestration and the GPU API.
// The native backend implements it over gogpu/wgpu; tests implement it with
// recording fakes.
//
// Resource lifecycle:
//   - Resources are created via Create* methods and identified by opaque IDs
//   - Resources must be explicitly destroyed via Destroy* methods
//   - Destroying an unknown or already destroyed ID is a no-op
//   - IDs are never reused within one Device
//
// A Device is driven from a single goroutine.
type Device interface {
	// === Shaders and pipelines ===

	// CreateShaderModule compiles a shader module from WGSL source.
	CreateShaderModule(label, wgsl string) (ShaderModuleID, error)

	// DestroyShaderModule releases a shader module.
	DestroyShaderModule(id ShaderModuleID)

	// CreateBindGroupLayout creates a bind group layout.
	CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error)

	// DestroyBindGroupLayout releases a bind group layout.
	DestroyBindGroupLayout(id BindGroupLayoutID)

	// CreatePipelineLayout combines bind group layouts, in group order.
	CreatePipelineLayout(label string, layouts []BindGroupLayoutID) (PipelineLayoutID, error)

	// DestroyPipelineLayout releases a pipeline layout.
	DestroyPipelineLayout(id PipelineLayoutID)

	// CreateRenderPipeline creates a render pipeline.
	CreateRenderPipeline(desc *RenderPipelineDesc) (RenderPipelineID, error)

	// DestroyRenderPipeline releases a render pipeline.
	DestroyRenderPipeline(id RenderPipelineID)

	// CreateBindGroup binds resources to a layout.
	CreateBindGroup(desc *BindGroupDesc) (BindGroupID, error)

	// DestroyBindGroup releases a bind group.
	DestroyBindGroup(id BindGroupID)

	// === Buffers ===

	// CreateBuffer creates a buffer of size bytes.
	CreateBuffer(label string, size uint64, usage gputypes.BufferUsage) (BufferID, error)

	// WriteBuffer stages data for upload at offset. The write is ordered
	// before any command buffer submitted afterwards.
	WriteBuffer(id BufferID, offset uint64, data []byte) error

	// DestroyBuffer releases a buffer.
	DestroyBuffer(id BufferID)

	// === Textures and samplers ===

	// CreateTexture creates a 2D texture.
	CreateTexture(desc *TextureDesc) (TextureID, error)

	// WriteTexture uploads tightly packed texel rows into region.
	WriteTexture(id TextureID, region TextureRegion, data []byte) error

	// CreateTextureView creates a default view of a texture.
	CreateTextureView(id TextureID) (TextureViewID, error)

	// DestroyTextureView releases a texture view.
	DestroyTextureView(id TextureViewID)

	// DestroyTexture releases a texture.
	DestroyTexture(id TextureID)

	// CreateSampler creates a sampler.
	CreateSampler(desc *SamplerDesc) (SamplerID, error)

	// DestroySampler releases a sampler.
	DestroySampler(id SamplerID)

	// === Command recording and submission ===

	// CreateCommandEncoder starts recording a command buffer.
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Submit hands a finished command buffer to the queue. It returns
	// without waiting for the GPU.
	Submit(cmd CommandBuffer) error

	// WaitIdle blocks until all submitted work has completed.
	WaitIdle() error

	// Release destroys the device. Resources still alive are released with it.
	Release()
}

// CommandEncoder records commands into a command buffer.
//
// Usage:
//  1. Obtain an encoder from Device.CreateCommandEncoder()
//  2. Record one or more render passes
//  3. Call Finish() and pass the result to Device.Submit()
//
// The encoder is single-use.
type CommandEncoder interface {
	// BeginRenderPass begins a render pass. The pass must be ended before
	// the encoder records anything else.
	BeginRenderPass(desc *RenderPassDesc) (RenderPassEncoder, error)

	// Finish completes recording.
	Finish() (CommandBuffer, error)
}

// CommandBuffer is a finished, submittable list of commands.
type CommandBuffer interface {
	// Label returns the debug label given to the encoder.
	Label() string
}

// RenderPassEncoder records render commands within a render pass.
//
// RenderPassEncoder is NOT safe for concurrent use. Bindings set on the pass
// refer to resources whose contents were uploaded before the pass began.
type RenderPassEncoder interface {
	// SetPipeline sets the active render pipeline.
	SetPipeline(id RenderPipelineID)

	// SetBindGroup sets a bind group at index.
	SetBindGroup(index uint32, id BindGroupID)

	// SetVertexBuffer binds a vertex buffer to a slot.
	SetVertexBuffer(slot uint32, id BufferID, offset uint64)

	// SetIndexBuffer binds the index buffer.
	SetIndexBuffer(id BufferID, format gputypes.IndexFormat, offset uint64)

	// SetViewport sets the viewport transformation.
	SetViewport(x, y, width, height, minDepth, maxDepth float32)

	// SetScissorRect restricts rasterization to a rectangle in pixels.
	SetScissorRect(x, y, width, height uint32)

	// Draw draws primitives.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	// DrawIndexed draws indexed primitives.
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)

	// End finishes the pass. After End the encoder cannot be used again.
	End() error
}
