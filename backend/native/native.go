package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/backend"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/wgpu"

	_ "github.com/gogpu/wgpu/hal/allbackends"
)

// init registers the native backend on package import.
func init() {
	backend.Register(backend.BackendNative, func(backends gputypes.Backends) (gpucore.Instance, error) {
		return NewInstance(backends)
	})
	rayview.RegisterLoggerSink(wgpu.SetLogger)
}

// Instance is a gpucore.Instance backed by a wgpu instance.
type Instance struct {
	inst *wgpu.Instance
}

var _ gpucore.Instance = (*Instance)(nil)

// NewInstance creates a wgpu instance restricted to backends.
func NewInstance(backends gputypes.Backends) (*Instance, error) {
	if backends == gputypes.BackendsNone {
		backends = gputypes.BackendsAll
	}
	inst, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: backends})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}
	return &Instance{inst: inst}, nil
}

// CreateSurface creates a surface for a native window.
func (i *Instance) CreateSurface(handle gpucore.NativeHandle) (gpucore.Surface, error) {
	if handle.IsZero() {
		return nil, fmt.Errorf("native: create surface: empty window handle")
	}
	s, err := i.inst.CreateSurface(handle.Display, handle.Window)
	if err != nil {
		return nil, fmt.Errorf("native: create surface: %w", mapError(err))
	}
	return &Surface{surface: s}, nil
}

// RequestAdapter selects an adapter.
func (i *Instance) RequestAdapter(opts *gpucore.AdapterOptions) (gpucore.Adapter, error) {
	var wopts *wgpu.RequestAdapterOptions
	if opts != nil {
		wopts = &wgpu.RequestAdapterOptions{
			PowerPreference:      opts.PowerPreference,
			ForceFallbackAdapter: opts.ForceFallback,
		}
		if s, ok := opts.CompatibleSurface.(*Surface); ok && s != nil {
			wopts.CompatibleSurface = s.surface
		}
	}
	a, err := i.inst.RequestAdapter(wopts)
	if err != nil {
		return nil, fmt.Errorf("native: request adapter: %w", mapError(err))
	}
	return &Adapter{adapter: a}, nil
}

// Release destroys the instance.
func (i *Instance) Release() {
	i.inst.Release()
}

// Adapter is a gpucore.Adapter backed by a wgpu adapter.
type Adapter struct {
	adapter *wgpu.Adapter
}

var _ gpucore.Adapter = (*Adapter)(nil)

// Info describes the adapter.
func (a *Adapter) Info() gpucore.AdapterInfo {
	info := a.adapter.Info()
	return gpucore.AdapterInfo{
		Name:       info.Name,
		Backend:    info.Backend,
		DeviceType: info.DeviceType,
		Driver:     info.Driver,
	}
}

// SurfaceCapabilities reports what the adapter supports for s.
func (a *Adapter) SurfaceCapabilities(s gpucore.Surface) *gpucore.SurfaceCapabilities {
	ns, ok := s.(*Surface)
	if !ok || ns == nil {
		return nil
	}
	caps := a.adapter.GetSurfaceCapabilities(ns.surface)
	if caps == nil {
		return nil
	}
	return &gpucore.SurfaceCapabilities{
		Formats:      caps.Formats,
		PresentModes: caps.PresentModes,
		AlphaModes:   caps.AlphaModes,
	}
}

// RequestDevice opens a logical device.
func (a *Adapter) RequestDevice(label string) (gpucore.Device, error) {
	d, err := a.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          label,
		RequiredLimits: wgpu.DefaultLimits(),
	})
	if err != nil {
		return nil, fmt.Errorf("native: request device: %w", mapError(err))
	}
	return newDevice(d), nil
}

// Release destroys the adapter.
func (a *Adapter) Release() {
	a.adapter.Release()
}
