// Package rayview is an interactive graphics host built on the pure Go
// WebGPU stack.
//
// # Overview
//
// rayview owns a native window, a GPU presentation surface and a per-frame
// render pipeline that composites a full-screen shader pass with an
// immediate-mode UI overlay. The root package holds the shared
// configuration and logger. The frame orchestration lives in sub-packages:
//
//   - surface: presentation surface lifecycle (create, acquire, reconfigure)
//   - render: the overlay compositor (base pipeline, UI renderer, frame pass)
//   - ui: a small immediate-mode UI library (menu bar, buttons, text)
//   - app: the UI adapter, command dispatch and the frame loop controller
//   - window: the GLFW window and event source
//   - event: the window events shared by window and app
//   - backend/native: the gogpu/wgpu implementation of internal/gpucore
//
// # Logging
//
// rayview is silent by default. Call SetLogger to enable output:
//
//	rayview.SetLogger(slog.Default())
//
// # Configuration
//
// Config is built from defaults, functional options and an optional TOML
// file:
//
//	cfg, err := rayview.LoadConfig("rayview.toml", rayview.NewConfig(rayview.WithVSync(false)))
package rayview
