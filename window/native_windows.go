// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package window

import (
	"unsafe"

	"github.com/gogpu/rayview/internal/gpucore"
)

// NativeHandle returns the HWND of the window.
func (w *Window) NativeHandle() (gpucore.NativeHandle, error) {
	if w.closed {
		return gpucore.NativeHandle{}, ErrClosed
	}
	return gpucore.NativeHandle{
		Window: uintptr(unsafe.Pointer(w.glw.GetWin32Window())),
	}, nil
}
