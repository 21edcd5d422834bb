// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build darwin

package window

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
	"github.com/gogpu/rayview/internal/gpucore"
)

const quartzCore = "/System/Library/Frameworks/QuartzCore.framework/QuartzCore"

var (
	quartzOnce sync.Once
	quartzErr  error

	selContentView     = objc.RegisterName("contentView")
	selSetWantsLayer   = objc.RegisterName("setWantsLayer:")
	selLayer           = objc.RegisterName("layer")
	selSetLayer        = objc.RegisterName("setLayer:")
	selSetContentScale = objc.RegisterName("setContentsScale:")
)

func loadQuartzCore() error {
	quartzOnce.Do(func() {
		_, quartzErr = purego.Dlopen(quartzCore, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	})
	return quartzErr
}

// NativeHandle attaches a CAMetalLayer to the content view of the window
// and returns it. Repeated calls return the same layer.
func (w *Window) NativeHandle() (gpucore.NativeHandle, error) {
	if w.closed {
		return gpucore.NativeHandle{}, ErrClosed
	}
	if err := loadQuartzCore(); err != nil {
		return gpucore.NativeHandle{}, fmt.Errorf("window: load QuartzCore: %w", err)
	}
	nsWindow := objc.ID(uintptr(w.glw.GetCocoaWindow()))
	if nsWindow == 0 {
		return gpucore.NativeHandle{}, fmt.Errorf("window: no NSWindow")
	}
	view := nsWindow.Send(selContentView)

	layer := view.Send(selLayer)
	metalClass := objc.GetClass("CAMetalLayer")
	if layer == 0 || layer.Class() != metalClass {
		layer = objc.ID(metalClass).Send(selLayer)
		view.Send(selSetWantsLayer, true)
		view.Send(selSetLayer, layer)
	}
	layer.Send(selSetContentScale, w.ScaleFactor())
	return gpucore.NativeHandle{Window: uintptr(layer)}, nil
}
