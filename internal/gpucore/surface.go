package gpucore

// Instance is the entry point of a GPU API: it creates surfaces and
// enumerates adapters.
type Instance interface {
	// CreateSurface creates a presentation surface for a native window.
	CreateSurface(handle NativeHandle) (Surface, error)

	// RequestAdapter selects an adapter. It returns an error when no
	// adapter matches the options.
	RequestAdapter(opts *AdapterOptions) (Adapter, error)

	// Release destroys the instance.
	Release()
}

// Adapter is a physical GPU.
type Adapter interface {
	// Info describes the adapter.
	Info() AdapterInfo

	// SurfaceCapabilities reports the formats and modes this adapter
	// supports for s. It returns nil if s is incompatible.
	SurfaceCapabilities(s Surface) *SurfaceCapabilities

	// RequestDevice opens a logical device with its queue.
	RequestDevice(label string) (Device, error)

	// Release destroys the adapter.
	Release()
}

// Surface is the swap chain of a window.
type Surface interface {
	// Configure (re)applies cfg. It must be called before the first
	// Acquire and after every size change.
	Configure(dev Device, cfg *SurfaceConfig) error

	// Acquire returns the next presentable frame. Failures wrap one of
	// ErrSurfaceLost, ErrSurfaceOutdated, ErrTimeout or ErrOutOfMemory.
	// suboptimal reports that the surface still works but should be
	// reconfigured.
	Acquire() (frame SurfaceFrame, suboptimal bool, err error)

	// Unconfigure detaches the surface from its device.
	Unconfigure()

	// Release destroys the surface.
	Release()
}

// SurfaceFrame is one acquired swap chain image.
type SurfaceFrame interface {
	// View returns the render attachment view of the image. The view is
	// valid until Present or Discard.
	View() TextureViewID

	// Present queues the image for display.
	Present() error

	// Discard returns the image without presenting it.
	Discard()
}
