// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build (linux && wayland) || (freebsd && wayland)

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/rayview/internal/gpucore"
)

// NativeHandle returns the Wayland display and surface.
func (w *Window) NativeHandle() (gpucore.NativeHandle, error) {
	if w.closed {
		return gpucore.NativeHandle{}, ErrClosed
	}
	return gpucore.NativeHandle{
		Display: uintptr(unsafe.Pointer(glfw.GetWaylandDisplay())),
		Window:  uintptr(unsafe.Pointer(w.glw.GetWaylandWindow())),
	}, nil
}
