// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/rayview/internal/gpucore/gpucoretest"
)

var testHandle = gpucore.NativeHandle{Display: 1, Window: 2}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *gpucoretest.Instance, *gpucoretest.Log) {
	t.Helper()
	inst, log := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
	m, err := New(context.Background(), inst, testHandle, 800, 600, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, inst, log
}

func TestNewConfiguresSurface(t *testing.T) {
	m, inst, _ := newTestManager(t)
	defer m.Release()

	if inst.Surface.Handle != testHandle {
		t.Errorf("surface handle = %+v, want %+v", inst.Surface.Handle, testHandle)
	}
	if len(inst.Requests) != 1 {
		t.Fatalf("adapter requests = %d, want 1", len(inst.Requests))
	}
	if got := inst.Requests[0].PowerPreference; got != gputypes.PowerPreferenceHighPerformance {
		t.Errorf("first request preference = %v, want HighPerformance", got)
	}
	if inst.Requests[0].CompatibleSurface == nil {
		t.Error("adapter request has no compatible surface")
	}

	cfg := inst.Surface.Current()
	want := gpucore.SurfaceConfig{
		Width:             800,
		Height:            600,
		Format:            gputypes.TextureFormatBGRA8UnormSrgb,
		Usage:             gputypes.TextureUsageRenderAttachment,
		PresentMode:       gputypes.PresentModeFifo,
		AlphaMode:         gputypes.CompositeAlphaModeOpaque,
		MaxFramesInFlight: 2,
	}
	if cfg != want {
		t.Errorf("configured %+v, want %+v", cfg, want)
	}
	if m.Format() != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("Format() = %v", m.Format())
	}
	if m.AdapterInfo().Name != "Fake Discrete GPU" {
		t.Errorf("AdapterInfo().Name = %q", m.AdapterInfo().Name)
	}
}

func TestNewFallsBackToAnyAdapter(t *testing.T) {
	inst, _ := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
	a := inst.Adapters[gputypes.PowerPreferenceHighPerformance]
	delete(inst.Adapters, gputypes.PowerPreferenceHighPerformance)
	inst.Adapters[gputypes.PowerPreferenceNone] = a

	m, err := New(context.Background(), inst, testHandle, 640, 480)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Release()

	if len(inst.Requests) != 2 {
		t.Fatalf("adapter requests = %d, want 2", len(inst.Requests))
	}
	if got := inst.Requests[1].PowerPreference; got != gputypes.PowerPreferenceNone {
		t.Errorf("fallback preference = %v, want None", got)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(inst *gpucoretest.Instance)
		want  error
	}{
		{
			name: "no adapter",
			setup: func(inst *gpucoretest.Instance) {
				inst.Adapters = nil
			},
			want: ErrNoAdapter,
		},
		{
			name: "no device",
			setup: func(inst *gpucoretest.Instance) {
				a := inst.Adapters[gputypes.PowerPreferenceHighPerformance]
				a.Device = nil
				a.DeviceErr = errors.New("device lost")
			},
			want: ErrNoDevice,
		},
		{
			name: "no formats",
			setup: func(inst *gpucoretest.Instance) {
				inst.Adapters[gputypes.PowerPreferenceHighPerformance].Caps.Formats = nil
			},
			want: ErrNoFormat,
		},
		{
			name: "incompatible surface",
			setup: func(inst *gpucoretest.Instance) {
				inst.Adapters[gputypes.PowerPreferenceHighPerformance].Caps = nil
			},
			want: ErrNoAdapter,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, _ := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
			tt.setup(inst)
			m, err := New(context.Background(), inst, testHandle, 800, 600)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New error = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Error("New returned a manager on error")
			}
			if inst.Surface == nil || !inst.Surface.Released {
				t.Error("surface was not released after failure")
			}
		})
	}
}

func TestNewCanceled(t *testing.T) {
	inst, _ := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(ctx, inst, testHandle, 800, 600); !errors.Is(err, context.Canceled) {
		t.Fatalf("New error = %v, want context.Canceled", err)
	}
	a := inst.Adapters[gputypes.PowerPreferenceHighPerformance]
	if !a.Released {
		t.Error("adapter was not released")
	}
}

func TestNewClampsSize(t *testing.T) {
	inst, _ := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
	m, err := New(context.Background(), inst, testHandle, 0, -5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Release()
	if w, h := m.Size(); w != 1 || h != 1 {
		t.Errorf("Size() = %dx%d, want 1x1", w, h)
	}
}

func TestNewPresentModes(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want gputypes.PresentMode
	}{
		{"default", nil, gputypes.PresentModeFifo},
		{"mailbox supported", []Option{WithPresentModes(gputypes.PresentModeMailbox, gputypes.PresentModeFifo)}, gputypes.PresentModeMailbox},
		{"immediate unsupported", []Option{WithPresentModes(gputypes.PresentModeImmediate)}, gputypes.PresentModeFifo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, inst, _ := newTestManager(t, tt.opts...)
			defer m.Release()
			if got := inst.Surface.Current().PresentMode; got != tt.want {
				t.Errorf("present mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLowPower(t *testing.T) {
	inst, _ := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
	inst.Adapters[gputypes.PowerPreferenceLowPower] = inst.Adapters[gputypes.PowerPreferenceHighPerformance]
	m, err := New(context.Background(), inst, testHandle, 800, 600, WithPowerPreference(gputypes.PowerPreferenceLowPower))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Release()
	if got := inst.Requests[0].PowerPreference; got != gputypes.PowerPreferenceLowPower {
		t.Errorf("first request preference = %v, want LowPower", got)
	}
}

func TestNewPowerPreferenceNoneKeepsDefault(t *testing.T) {
	inst, _ := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
	m, err := New(context.Background(), inst, testHandle, 800, 600, WithPowerPreference(gputypes.PowerPreferenceNone))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Release()
	if got := inst.Requests[0].PowerPreference; got != gputypes.PowerPreferenceHighPerformance {
		t.Errorf("first request preference = %v, want HighPerformance", got)
	}
}

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []gputypes.TextureFormat
		want    gputypes.TextureFormat
		wantErr bool
	}{
		{"srgb second", []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb}, gputypes.TextureFormatBGRA8UnormSrgb, false},
		{"first srgb wins", []gputypes.TextureFormat{gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb}, gputypes.TextureFormatRGBA8UnormSrgb, false},
		{"no srgb", []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm}, gputypes.TextureFormatRGBA8Unorm, false},
		{"empty", nil, gputypes.TextureFormatUndefined, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectFormat(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SelectFormat = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReconfigure(t *testing.T) {
	m, inst, _ := newTestManager(t)
	defer m.Release()

	tests := []struct {
		w, h         uint32
		wantW, wantH uint32
		configs      int
	}{
		{1024, 768, 1024, 768, 2},
		{0, 768, 1024, 768, 2},
		{1024, 0, 1024, 768, 2},
		{0, 0, 1024, 768, 2},
		{1024, 768, 1024, 768, 3},
		{320, 200, 320, 200, 4},
	}
	for _, tt := range tests {
		if err := m.Reconfigure(tt.w, tt.h); err != nil {
			t.Fatalf("Reconfigure(%d, %d): %v", tt.w, tt.h, err)
		}
		if w, h := m.Size(); w != tt.wantW || h != tt.wantH {
			t.Errorf("after Reconfigure(%d, %d) Size() = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
		if got := len(inst.Surface.Configs); got != tt.configs {
			t.Errorf("after Reconfigure(%d, %d) configs = %d, want %d", tt.w, tt.h, got, tt.configs)
		}
	}
	cur := inst.Surface.Current()
	if cur.Format != m.Format() || cur.MaxFramesInFlight != MaxFramesInFlight {
		t.Errorf("reconfigure changed format or frame budget: %+v", cur)
	}
}

func TestReconfigureBackendError(t *testing.T) {
	m, inst, _ := newTestManager(t)
	defer m.Release()
	inst.Surface.ConfigureErr = errors.New("rejected")
	if err := m.Reconfigure(10, 10); err == nil {
		t.Fatal("Reconfigure succeeded with a rejecting backend")
	}
}

func TestReleaseOrder(t *testing.T) {
	m, inst, log := newTestManager(t)
	m.Release()
	m.Release()

	surf := log.Index("ReleaseSurface")
	dev := log.Index("ReleaseDevice")
	if surf < 0 || dev < 0 || surf > dev {
		t.Errorf("release order: surface at %d, device at %d", surf, dev)
	}
	if log.Count("ReleaseDevice") != 1 {
		t.Errorf("device released %d times", log.Count("ReleaseDevice"))
	}
	if !inst.Surface.Unconfigured {
		t.Error("surface was not unconfigured")
	}
	if !inst.Adapters[gputypes.PowerPreferenceHighPerformance].Released {
		t.Error("adapter was not released")
	}
	if err := m.Reconfigure(5, 5); !errors.Is(err, ErrReleased) {
		t.Errorf("Reconfigure after Release = %v, want ErrReleased", err)
	}
}
