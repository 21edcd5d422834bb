// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
)

// MaxFramesInFlight is the number of frames that may be submitted but not
// yet presented.
const MaxFramesInFlight = 2

// Config is the presentation configuration of a surface.
type Config struct {
	Width             uint32
	Height            uint32
	Format            gputypes.TextureFormat
	PresentMode       gputypes.PresentMode
	AlphaMode         gputypes.CompositeAlphaMode
	MaxFramesInFlight uint32
}

func (c Config) toCore() *gpucore.SurfaceConfig {
	return &gpucore.SurfaceConfig{
		Width:             c.Width,
		Height:            c.Height,
		Format:            c.Format,
		Usage:             gputypes.TextureUsageRenderAttachment,
		PresentMode:       c.PresentMode,
		AlphaMode:         c.AlphaMode,
		MaxFramesInFlight: c.MaxFramesInFlight,
	}
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	presentModes []gputypes.PresentMode
	power        gputypes.PowerPreference
	label        string
}

func defaultOptions() options {
	return options{
		presentModes: []gputypes.PresentMode{gputypes.PresentModeFifo},
		power:        gputypes.PowerPreferenceHighPerformance,
		label:        "rayview device",
	}
}

// WithPresentModes sets the present modes in order of preference. The
// first one the surface supports is used. Fifo is always supported and is
// the fallback.
func WithPresentModes(modes ...gputypes.PresentMode) Option {
	return func(o *options) {
		if len(modes) > 0 {
			o.presentModes = modes
		}
	}
}

// WithPowerPreference sets the adapter preference of the first request.
// PowerPreferenceNone keeps the default, high performance.
func WithPowerPreference(pref gputypes.PowerPreference) Option {
	return func(o *options) {
		if pref != gputypes.PowerPreferenceNone {
			o.power = pref
		}
	}
}

// SelectFormat returns the first sRGB format in formats, or the first
// format when none is sRGB.
func SelectFormat(formats []gputypes.TextureFormat) (gputypes.TextureFormat, error) {
	for _, f := range formats {
		if f.IsSrgb() {
			return f, nil
		}
	}
	if len(formats) == 0 {
		return gputypes.TextureFormatUndefined, ErrNoFormat
	}
	return formats[0], nil
}

// selectPresentMode returns the first preferred mode that is supported,
// or Fifo.
func selectPresentMode(preferred, supported []gputypes.PresentMode) gputypes.PresentMode {
	for _, p := range preferred {
		for _, s := range supported {
			if p == s {
				return p
			}
		}
	}
	return gputypes.PresentModeFifo
}

// selectAlphaMode returns the first advertised alpha mode, or Auto.
func selectAlphaMode(supported []gputypes.CompositeAlphaMode) gputypes.CompositeAlphaMode {
	if len(supported) == 0 {
		return gputypes.CompositeAlphaModeAuto
	}
	return supported[0]
}

func clampSize(v int) uint32 {
	if v < 1 {
		return 1
	}
	return uint32(v)
}
