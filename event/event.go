// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package event defines the window events consumed by the frame loop.
//
// The types are free of any windowing library so that the frame loop and
// its tests do not link against GLFW. Package window produces them.
package event

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Event is one window event. The concrete types are the structs of this
// package.
type Event interface {
	isEvent()
}

// CloseRequested reports that the user asked to close the window.
type CloseRequested struct{}

// RedrawRequested asks for one frame. Repeated redraw requests made before
// the event is delivered collapse into one.
type RedrawRequested struct{}

// Resized reports a new framebuffer size in pixels. Either dimension may
// be zero while the window is minimized.
type Resized struct {
	Width, Height int
}

// ScaleChanged reports a new content scale (pixels per logical point).
type ScaleChanged struct {
	Scale float64
}

// Keyboard reports a key press, repeat or release.
type Keyboard struct {
	Key     gpucontext.Key
	Pressed bool
	Repeat  bool
	Mods    gpucontext.Modifiers
}

// Text carries one typed character.
type Text struct {
	Rune rune
}

// Pointer carries a pointer move, button, enter or leave. Positions are in
// logical points.
type Pointer struct {
	gpucontext.PointerEvent
}

// Scroll carries a wheel or trackpad scroll. Positions and deltas are in
// logical points.
type Scroll struct {
	gpucontext.ScrollEvent
}

func (CloseRequested) isEvent()  {}
func (RedrawRequested) isEvent() {}
func (Resized) isEvent()         {}
func (ScaleChanged) isEvent()    {}
func (Keyboard) isEvent()        {}
func (Text) isEvent()            {}
func (Pointer) isEvent()         {}
func (Scroll) isEvent()          {}

// IsInput reports whether ev is user input as opposed to a window
// lifecycle event.
func IsInput(ev Event) bool {
	switch ev.(type) {
	case Keyboard, Text, Pointer, Scroll:
		return true
	default:
		return false
	}
}

// Name returns a short name of the event type for logging.
func Name(ev Event) string {
	switch ev.(type) {
	case CloseRequested:
		return "CloseRequested"
	case RedrawRequested:
		return "RedrawRequested"
	case Resized:
		return "Resized"
	case ScaleChanged:
		return "ScaleChanged"
	case Keyboard:
		return "Keyboard"
	case Text:
		return "Text"
	case Pointer:
		return "Pointer"
	case Scroll:
		return "Scroll"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
