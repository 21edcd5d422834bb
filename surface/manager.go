// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/internal/gpucore"
)

// Manager owns the adapter, device and surface of one window.
//
// Manager is not safe for concurrent use. All methods must be called from
// the frame loop thread.
type Manager struct {
	surface gpucore.Surface
	adapter gpucore.Adapter
	device  gpucore.Device
	info    gpucore.AdapterInfo
	config  Config

	released bool
}

// New negotiates an adapter and a device for the window identified by
// handle and configures its surface at width x height. Sizes below one are
// clamped to one.
//
// The returned error is fatal: no rendering is possible without a surface.
func New(ctx context.Context, inst gpucore.Instance, handle gpucore.NativeHandle, width, height int, opts ...Option) (*Manager, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	surf, err := inst.CreateSurface(handle)
	if err != nil {
		return nil, fmt.Errorf("surface: create: %w", err)
	}
	m := &Manager{surface: surf}
	if err := m.init(ctx, inst, &o, width, height); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

func (m *Manager) init(ctx context.Context, inst gpucore.Instance, o *options, width, height int) error {
	first := o.power
	adapter, err := inst.RequestAdapter(&gpucore.AdapterOptions{
		PowerPreference:   first,
		CompatibleSurface: m.surface,
	})
	if err != nil {
		rayview.Logger().Debug("preferred adapter unavailable, falling back",
			"preference", first, "err", err)
		adapter, err = inst.RequestAdapter(&gpucore.AdapterOptions{
			PowerPreference:   gputypes.PowerPreferenceNone,
			CompatibleSurface: m.surface,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNoAdapter, err)
		}
	}
	m.adapter = adapter
	m.info = adapter.Info()

	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := adapter.RequestDevice(o.label)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	m.device = device

	if err := ctx.Err(); err != nil {
		return err
	}

	caps := adapter.SurfaceCapabilities(m.surface)
	if caps == nil {
		return fmt.Errorf("%w: adapter %q cannot present to this surface", ErrNoAdapter, m.info.Name)
	}
	format, err := SelectFormat(caps.Formats)
	if err != nil {
		return err
	}

	m.config = Config{
		Width:             clampSize(width),
		Height:            clampSize(height),
		Format:            format,
		PresentMode:       selectPresentMode(o.presentModes, caps.PresentModes),
		AlphaMode:         selectAlphaMode(caps.AlphaModes),
		MaxFramesInFlight: MaxFramesInFlight,
	}
	if err := m.apply(); err != nil {
		return err
	}

	rayview.Logger().Info("surface configured",
		"adapter", m.info.Name,
		"backend", m.info.Backend,
		"type", m.info.DeviceType,
		"format", m.config.Format,
		"present", m.config.PresentMode,
		"width", m.config.Width,
		"height", m.config.Height)
	return nil
}

func (m *Manager) apply() error {
	if err := m.surface.Configure(m.device, m.config.toCore()); err != nil {
		return fmt.Errorf("surface: configure %dx%d: %w", m.config.Width, m.config.Height, err)
	}
	return nil
}

// Acquire returns the next frame target. On failure the error is an
// *AcquireError whose Kind selects the recovery.
func (m *Manager) Acquire() (*FrameTarget, error) {
	if m.released {
		return nil, &AcquireError{Kind: KindLost, Err: ErrReleased}
	}
	frame, suboptimal, err := m.surface.Acquire()
	if err != nil {
		return nil, &AcquireError{Kind: Classify(err), Err: err}
	}
	if suboptimal {
		rayview.Logger().Debug("suboptimal surface texture",
			"width", m.config.Width, "height", m.config.Height)
	}
	return NewFrameTarget(frame, m.config.Width, m.config.Height), nil
}

// Reconfigure applies a new size. A zero width or height is ignored, which
// happens while a window is minimized.
func (m *Manager) Reconfigure(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	if m.released {
		return ErrReleased
	}
	m.config.Width = width
	m.config.Height = height
	if err := m.apply(); err != nil {
		return err
	}
	rayview.Logger().Debug("surface reconfigured", "width", width, "height", height)
	return nil
}

// Size returns the configured surface size in pixels.
func (m *Manager) Size() (width, height uint32) {
	return m.config.Width, m.config.Height
}

// Format returns the surface texture format.
func (m *Manager) Format() gputypes.TextureFormat {
	return m.config.Format
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Device returns the device the surface is configured with.
func (m *Manager) Device() gpucore.Device {
	return m.device
}

// AdapterInfo describes the selected adapter.
func (m *Manager) AdapterInfo() gpucore.AdapterInfo {
	return m.info
}

// Release unconfigures and releases the surface, then the device and the
// adapter. It is safe to call more than once.
func (m *Manager) Release() {
	if m.released {
		return
	}
	m.released = true
	if m.surface != nil {
		if m.device != nil {
			m.surface.Unconfigure()
		}
		m.surface.Release()
	}
	if m.device != nil {
		m.device.Release()
	}
	if m.adapter != nil {
		m.adapter.Release()
	}
	rayview.Logger().Debug("surface manager released")
}
