package gpucoretest

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
)

// Instance is a fake gpucore.Instance. Adapters are looked up by power
// preference; a missing entry makes RequestAdapter fail.
type Instance struct {
	Log      *Log
	Adapters map[gputypes.PowerPreference]*Adapter

	// SurfaceErr, if set, is returned by CreateSurface.
	SurfaceErr error

	Requests []gpucore.AdapterOptions
	Surface  *Surface
	Released bool
}

var _ gpucore.Instance = (*Instance)(nil)

func (i *Instance) CreateSurface(handle gpucore.NativeHandle) (gpucore.Surface, error) {
	if i.SurfaceErr != nil {
		return nil, i.SurfaceErr
	}
	i.Log.add("CreateSurface")
	if i.Surface == nil {
		i.Surface = &Surface{Log: i.Log}
	}
	i.Surface.Handle = handle
	return i.Surface, nil
}

func (i *Instance) RequestAdapter(opts *gpucore.AdapterOptions) (gpucore.Adapter, error) {
	i.Requests = append(i.Requests, *opts)
	i.Log.add("RequestAdapter %d", opts.PowerPreference)
	a, ok := i.Adapters[opts.PowerPreference]
	if !ok {
		return nil, gpucore.ErrNoAdapter
	}
	return a, nil
}

func (i *Instance) Release() {
	i.Released = true
}

// Adapter is a fake gpucore.Adapter.
type Adapter struct {
	InfoValue gpucore.AdapterInfo
	Caps      *gpucore.SurfaceCapabilities
	Device    *Device
	DeviceErr error
	Released  bool
}

var _ gpucore.Adapter = (*Adapter)(nil)

func (a *Adapter) Info() gpucore.AdapterInfo { return a.InfoValue }

func (a *Adapter) SurfaceCapabilities(gpucore.Surface) *gpucore.SurfaceCapabilities {
	return a.Caps
}

func (a *Adapter) RequestDevice(label string) (gpucore.Device, error) {
	if a.DeviceErr != nil {
		return nil, a.DeviceErr
	}
	if a.Device == nil {
		a.Device = NewDevice(nil)
	}
	return a.Device, nil
}

func (a *Adapter) Release() { a.Released = true }

// Surface is a fake gpucore.Surface. Errors queued in AcquireErrs are
// returned by successive Acquire calls; a nil entry or an empty queue
// yields a frame.
type Surface struct {
	Log    *Log
	Handle gpucore.NativeHandle

	AcquireErrs  []error
	ConfigureErr error
	Suboptimal   bool

	Configs      []gpucore.SurfaceConfig
	Acquired     int
	Presented    int
	Discarded    int
	Unconfigured bool
	Released     bool

	dev *Device
}

var _ gpucore.Surface = (*Surface)(nil)

// Current returns the last applied configuration.
func (s *Surface) Current() gpucore.SurfaceConfig {
	if len(s.Configs) == 0 {
		return gpucore.SurfaceConfig{}
	}
	return s.Configs[len(s.Configs)-1]
}

func (s *Surface) Configure(dev gpucore.Device, cfg *gpucore.SurfaceConfig) error {
	if s.ConfigureErr != nil {
		return s.ConfigureErr
	}
	fd, ok := dev.(*Device)
	if !ok {
		return fmt.Errorf("gpucoretest: surface needs a fake device, got %T", dev)
	}
	s.dev = fd
	s.Configs = append(s.Configs, *cfg)
	s.Log.add("Configure %dx%d", cfg.Width, cfg.Height)
	return nil
}

func (s *Surface) Acquire() (gpucore.SurfaceFrame, bool, error) {
	if len(s.AcquireErrs) > 0 {
		err := s.AcquireErrs[0]
		s.AcquireErrs = s.AcquireErrs[1:]
		if err != nil {
			s.Log.add("Acquire!")
			return nil, false, err
		}
	}
	if s.dev == nil {
		return nil, false, fmt.Errorf("gpucoretest: acquire before configure")
	}
	cfg := s.Current()
	tex := s.dev.Textures.Insert(&Texture{Desc: gpucore.TextureDesc{
		Label:  "swapchain",
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: cfg.Format,
		Usage:  gputypes.TextureUsageRenderAttachment,
	}})
	view := s.dev.Views.Insert(tex)
	s.Acquired++
	s.Log.add("Acquire %dx%d", cfg.Width, cfg.Height)
	return &Frame{surface: s, tex: tex, view: view}, s.Suboptimal, nil
}

func (s *Surface) Unconfigure() { s.Unconfigured = true }

func (s *Surface) Release() {
	s.Log.add("ReleaseSurface")
	s.Released = true
}

// Frame is a fake gpucore.SurfaceFrame.
type Frame struct {
	surface *Surface
	tex     gpucore.TextureID
	view    gpucore.TextureViewID
	done    bool
}

func (f *Frame) View() gpucore.TextureViewID { return f.view }

func (f *Frame) Present() error {
	if f.done {
		return fmt.Errorf("gpucoretest: frame already returned")
	}
	f.done = true
	f.surface.Presented++
	f.surface.Log.add("Present")
	f.release()
	return nil
}

func (f *Frame) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.surface.Discarded++
	f.surface.Log.add("Discard")
	f.release()
}

func (f *Frame) release() {
	f.surface.dev.Views.Remove(f.view)
	f.surface.dev.Textures.Remove(f.tex)
}

// NewInstance returns an instance with one high performance adapter that
// supports caps and records into a shared log.
func NewInstance(caps *gpucore.SurfaceCapabilities) (*Instance, *Log) {
	log := &Log{}
	adapter := &Adapter{
		InfoValue: gpucore.AdapterInfo{
			Name:       "Fake Discrete GPU",
			Backend:    gputypes.BackendVulkan,
			DeviceType: gputypes.DeviceTypeDiscreteGPU,
		},
		Caps:   caps,
		Device: NewDevice(log),
	}
	return &Instance{
		Log: log,
		Adapters: map[gputypes.PowerPreference]*Adapter{
			gputypes.PowerPreferenceHighPerformance: adapter,
		},
	}, log
}

// DefaultCaps returns capabilities with a linear and an sRGB format.
func DefaultCaps() *gpucore.SurfaceCapabilities {
	return &gpucore.SurfaceCapabilities{
		Formats: []gputypes.TextureFormat{
			gputypes.TextureFormatBGRA8Unorm,
			gputypes.TextureFormatBGRA8UnormSrgb,
		},
		PresentModes: []gputypes.PresentMode{gputypes.PresentModeFifo, gputypes.PresentModeMailbox},
		AlphaModes:   []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModeOpaque},
	}
}
