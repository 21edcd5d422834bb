package rayview

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", cfg.Title, DefaultTitle)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithTitle("viewer"),
		WithSize(1024, 768),
		WithVSync(false),
		WithBackend("vulkan"),
		WithLowPower(true),
		WithLogLevel("debug"),
		WithShaderPath("screen.wgsl"),
		WithUIScale(1.5),
	)
	want := Config{
		Title:      "viewer",
		Width:      1024,
		Height:     768,
		VSync:      false,
		Backend:    "vulkan",
		LowPower:   true,
		LogLevel:   "debug",
		ShaderPath: "screen.wgsl",
		UIScale:    1.5,
	}
	if cfg != want {
		t.Errorf("NewConfig() = %+v, want %+v", cfg, want)
	}
	if cfg.PowerPreference() != gputypes.PowerPreferenceLowPower {
		t.Error("LowPower should select the low power preference")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"zero width", WithSize(0, 600), ErrInvalidSize},
		{"negative height", WithSize(800, -1), ErrInvalidSize},
		{"bad backend", WithBackend("glide"), ErrUnknownBackend},
		{"bad log level", WithLogLevel("chatty"), ErrUnknownLogLevel},
		{"zero scale", WithUIScale(0), ErrInvalidUIScale},
		{"huge scale", WithUIScale(8), ErrInvalidUIScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opt).Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigBackends(t *testing.T) {
	tests := []struct {
		name string
		want gputypes.Backends
	}{
		{"all", gputypes.BackendsAll},
		{"", gputypes.BackendsAll},
		{"primary", gputypes.BackendsPrimary},
		{"vulkan", gputypes.BackendsVulkan},
		{"metal", gputypes.BackendsMetal},
		{"dx12", gputypes.BackendsDX12},
		{"gl", gputypes.BackendsGL},
	}
	for _, tt := range tests {
		got, err := NewConfig(WithBackend(tt.name)).Backends()
		if err != nil {
			t.Fatalf("Backends(%q) error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Backends(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestConfigPresentModes(t *testing.T) {
	vsync := NewConfig(WithVSync(true)).PresentModes()
	if len(vsync) != 1 || vsync[0] != gputypes.PresentModeFifo {
		t.Errorf("vsync modes = %v, want [Fifo]", vsync)
	}
	free := NewConfig(WithVSync(false)).PresentModes()
	if free[0] != gputypes.PresentModeMailbox || free[len(free)-1] != gputypes.PresentModeFifo {
		t.Errorf("no-vsync modes = %v, want Mailbox first and Fifo last", free)
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
title = "viewer"
width = 1280
height = 720
vsync = false
backend = "metal"
`)
	cfg, err := ParseConfig(data, DefaultConfig())
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.Title != "viewer" || cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.VSync {
		t.Error("vsync should be false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", `colour = "red"`},
		{"wrong type", `width = "wide"`},
		{"invalid value", `width = 0`},
		{"syntax", `title = `},
	}
	base := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data), base)
			if err == nil {
				t.Fatal("ParseConfig() error = nil, want error")
			}
			if cfg != base {
				t.Error("ParseConfig() should return base on error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rayview.toml")

	cfg := NewConfig(WithSize(640, 480), WithBackend("gl"))
	data, err := cfg.EncodeTOML()
	if err != nil {
		t.Fatalf("EncodeTOML() error: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if got != cfg {
		t.Errorf("LoadConfig() = %+v, want %+v", got, cfg)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml"), DefaultConfig()); err == nil {
		t.Error("LoadConfig() on a missing file should fail")
	}
}
