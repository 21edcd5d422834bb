package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/wgpu"
)

// Surface is a gpucore.Surface backed by a wgpu surface.
type Surface struct {
	surface *wgpu.Surface
	dev     *Device
	format  gputypes.TextureFormat
}

var _ gpucore.Surface = (*Surface)(nil)

// Configure applies cfg. MaxFramesInFlight is enforced by the wgpu swap
// chain itself and is not forwarded.
func (s *Surface) Configure(dev gpucore.Device, cfg *gpucore.SurfaceConfig) error {
	d, ok := dev.(*Device)
	if !ok {
		return fmt.Errorf("native: configure: foreign device %T", dev)
	}
	err := s.surface.Configure(d.dev, &wgpu.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       cfg.Usage,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
	if err != nil {
		return fmt.Errorf("native: configure %dx%d: %w", cfg.Width, cfg.Height, mapError(err))
	}
	s.dev = d
	s.format = cfg.Format
	return nil
}

// Acquire returns the next swap chain image. Its view is registered with
// the device until the frame is presented or discarded.
func (s *Surface) Acquire() (gpucore.SurfaceFrame, bool, error) {
	if s.dev == nil {
		return nil, false, fmt.Errorf("native: acquire: %w", gpucore.ErrSurfaceLost)
	}
	tex, suboptimal, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, false, mapError(err)
	}
	view, err := tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           "swapchain view",
		Format:          s.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		s.surface.DiscardTexture()
		return nil, false, fmt.Errorf("native: swapchain view: %w", mapError(err))
	}
	return &frame{
		surface: s,
		tex:     tex,
		view:    view,
		id:      s.dev.views.Insert(view),
	}, suboptimal, nil
}

// Unconfigure detaches the surface from its device.
func (s *Surface) Unconfigure() {
	s.surface.Unconfigure()
	s.dev = nil
}

// Release destroys the surface.
func (s *Surface) Release() {
	s.surface.Release()
}

type frame struct {
	surface *Surface
	tex     *wgpu.SurfaceTexture
	view    *wgpu.TextureView
	id      gpucore.TextureViewID
	done    bool
}

func (f *frame) View() gpucore.TextureViewID { return f.id }

func (f *frame) Present() error {
	if f.done {
		return fmt.Errorf("native: present: frame already returned")
	}
	f.done = true
	f.dropView()
	return mapError(f.surface.surface.Present(f.tex))
}

func (f *frame) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.dropView()
	f.surface.surface.DiscardTexture()
}

func (f *frame) dropView() {
	if f.surface.dev != nil {
		f.surface.dev.views.Remove(f.id)
	}
	f.view.Release()
}
