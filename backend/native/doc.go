// Package native implements gpucore over the pure Go WebGPU stack
// (github.com/gogpu/wgpu) with its Vulkan, Metal, DX12 and GLES HALs.
//
// Importing the package registers the "native" backend:
//
//	import _ "github.com/gogpu/rayview/backend/native"
//
// The package logger is forwarded to wgpu, so HAL diagnostics appear in
// the same slog stream as the rest of the program.
package native
