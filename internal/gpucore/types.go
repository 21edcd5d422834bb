package gpucore

import "github.com/gogpu/gputypes"

// Resource identifiers. IDs are opaque handles owned by a Device.
// The zero value of every ID type is invalid.
type (
	ShaderModuleID    uint64
	BindGroupLayoutID uint64
	PipelineLayoutID  uint64
	RenderPipelineID  uint64
	BindGroupID       uint64
	BufferID          uint64
	TextureID         uint64
	TextureViewID     uint64
	SamplerID         uint64
)

// InvalidID is the zero handle shared by all ID types.
const InvalidID = 0

// NativeHandle carries the platform window handles a surface is created from.
//
//   - X11: Display is the Display*, Window is the X11 window ID
//   - Wayland: Display is the wl_display*, Window is the wl_surface*
//   - Windows: Display is the HINSTANCE (may be 0), Window is the HWND
//   - macOS: Window is a CAMetalLayer*
type NativeHandle struct {
	Display uintptr
	Window  uintptr
}

// IsZero reports whether the handle carries no window.
func (h NativeHandle) IsZero() bool {
	return h.Window == 0
}

// BindGroupLayoutDesc describes a bind group layout.
// An empty Entries slice is valid and describes a layout with no bindings.
type BindGroupLayoutDesc struct {
	Label   string
	Entries []gputypes.BindGroupLayoutEntry
}

// BindGroupEntry binds one resource. Exactly one of Buffer, Sampler or
// TextureView is set.
type BindGroupEntry struct {
	Binding     uint32
	Buffer      BufferID
	Offset      uint64
	Size        uint64
	Sampler     SamplerID
	TextureView TextureViewID
}

// BindGroupDesc describes a bind group.
type BindGroupDesc struct {
	Label   string
	Layout  BindGroupLayoutID
	Entries []BindGroupEntry
}

// RenderPipelineDesc describes a render pipeline with one color target.
type RenderPipelineDesc struct {
	Label         string
	Layout        PipelineLayoutID
	Module        ShaderModuleID
	VertexEntry   string
	FragmentEntry string
	VertexBuffers []gputypes.VertexBufferLayout
	Primitive     gputypes.PrimitiveState
	Multisample   gputypes.MultisampleState
	Target        gputypes.ColorTargetState
}

// TextureDesc describes a 2D texture with a single mip level.
type TextureDesc struct {
	Label  string
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
	Usage  gputypes.TextureUsage
}

// TextureRegion selects the rectangle a WriteTexture call fills.
// Data rows are tightly packed: BytesPerRow is Width times the texel size.
type TextureRegion struct {
	X, Y          uint32
	Width, Height uint32
	BytesPerRow   uint32
}

// SamplerDesc describes a sampler.
type SamplerDesc struct {
	Label        string
	AddressMode  gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
}

// ColorAttachment describes the single color attachment of a render pass.
type ColorAttachment struct {
	View       TextureViewID
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}

// RenderPassDesc describes a render pass.
type RenderPassDesc struct {
	Label string
	Color ColorAttachment
}

// SurfaceCapabilities lists what an adapter supports for a surface.
type SurfaceCapabilities struct {
	Formats      []gputypes.TextureFormat
	PresentModes []gputypes.PresentMode
	AlphaModes   []gputypes.CompositeAlphaMode
}

// SurfaceConfig is applied to a surface by Surface.Configure.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	Usage       gputypes.TextureUsage
	PresentMode gputypes.PresentMode
	AlphaMode   gputypes.CompositeAlphaMode

	// MaxFramesInFlight is the submitted-but-not-presented frame budget.
	MaxFramesInFlight uint32
}

// AdapterOptions selects an adapter.
type AdapterOptions struct {
	PowerPreference   gputypes.PowerPreference
	ForceFallback     bool
	CompatibleSurface Surface
}

// AdapterInfo describes a physical adapter.
type AdapterInfo struct {
	Name       string
	Backend    gputypes.Backend
	DeviceType gputypes.DeviceType
	Driver     string
}
