// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rayview

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Configuration errors.
var (
	// ErrInvalidSize is returned when the window width or height is not positive.
	ErrInvalidSize = errors.New("rayview: window size must be positive")

	// ErrUnknownBackend is returned for a backend name that is not recognized.
	ErrUnknownBackend = errors.New("rayview: unknown backend")

	// ErrUnknownLogLevel is returned for a log level name that is not recognized.
	ErrUnknownLogLevel = errors.New("rayview: unknown log level")

	// ErrInvalidUIScale is returned when the UI scale is outside (0, 4].
	ErrInvalidUIScale = errors.New("rayview: ui scale must be in (0, 4]")
)

// DefaultTitle is the window title used when none is configured.
const DefaultTitle = "Rays do be going brrrrr"

// MaxFramesInFlight bounds the number of submitted but not yet presented
// frames. The presentation layer blocks acquisition beyond this budget.
const MaxFramesInFlight = 2

// Config holds the host configuration. The zero value is not valid;
// use NewConfig or LoadConfig.
type Config struct {
	// Title is the window title.
	Title string `toml:"title"`

	// Width and Height are the initial window size in screen coordinates.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// VSync selects Fifo presentation. When false the surface prefers
	// Mailbox and falls back to Fifo.
	VSync bool `toml:"vsync"`

	// Backend names the GPU API: "all", "vulkan", "metal", "dx12" or "gl".
	Backend string `toml:"backend"`

	// LowPower requests the low power adapter first instead of the
	// high performance one.
	LowPower bool `toml:"low_power"`

	// LogLevel is one of "debug", "info", "warn", "error" or "off".
	LogLevel string `toml:"log_level"`

	// ShaderPath, if set, replaces the embedded screen shader with the file
	// contents and reloads it when the file changes.
	ShaderPath string `toml:"shader_path"`

	// UIScale multiplies the window scale factor for the overlay.
	UIScale float64 `toml:"ui_scale"`
}

// Option configures a Config.
//
// Example:
//
//	cfg := rayview.NewConfig(
//	    rayview.WithSize(1280, 720),
//	    rayview.WithVSync(false),
//	)
type Option func(*Config)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Title:    DefaultTitle,
		Width:    800,
		Height:   600,
		VSync:    true,
		Backend:  "all",
		LogLevel: "info",
		UIScale:  1,
	}
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithSize sets the initial window size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithVSync enables or disables vertical sync.
func WithVSync(on bool) Option {
	return func(c *Config) {
		c.VSync = on
	}
}

// WithBackend selects the GPU API by name.
func WithBackend(name string) Option {
	return func(c *Config) {
		c.Backend = name
	}
}

// WithLowPower prefers the low power adapter.
func WithLowPower(on bool) Option {
	return func(c *Config) {
		c.LowPower = on
	}
}

// WithLogLevel sets the log level name.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithShaderPath sets a WGSL file that overrides the embedded screen shader.
func WithShaderPath(path string) Option {
	return func(c *Config) {
		c.ShaderPath = path
	}
}

// WithUIScale sets the overlay scale multiplier.
func WithUIScale(scale float64) Option {
	return func(c *Config) {
		c.UIScale = scale
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if _, err := c.Backends(); err != nil {
		return err
	}
	if _, _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", err, c.LogLevel)
	}
	if c.UIScale <= 0 || c.UIScale > 4 {
		return fmt.Errorf("%w: %g", ErrInvalidUIScale, c.UIScale)
	}
	return nil
}

// Backends converts the backend name into a gputypes backend mask.
func (c Config) Backends() (gputypes.Backends, error) {
	switch c.Backend {
	case "", "all":
		return gputypes.BackendsAll, nil
	case "primary":
		return gputypes.BackendsPrimary, nil
	case "vulkan":
		return gputypes.BackendsVulkan, nil
	case "metal":
		return gputypes.BackendsMetal, nil
	case "dx12":
		return gputypes.BackendsDX12, nil
	case "gl":
		return gputypes.BackendsGL, nil
	default:
		return gputypes.BackendsNone, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
}

// PresentModes returns the present modes to try, in order of preference.
func (c Config) PresentModes() []gputypes.PresentMode {
	if c.VSync {
		return []gputypes.PresentMode{gputypes.PresentModeFifo}
	}
	return []gputypes.PresentMode{
		gputypes.PresentModeMailbox,
		gputypes.PresentModeImmediate,
		gputypes.PresentModeFifo,
	}
}

// PowerPreference returns the adapter preference tried first.
func (c Config) PowerPreference() gputypes.PowerPreference {
	if c.LowPower {
		return gputypes.PowerPreferenceLowPower
	}
	return gputypes.PowerPreferenceHighPerformance
}
