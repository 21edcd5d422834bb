// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "github.com/gogpu/gpucontext"

// PointerButton identifies a mouse button.
type PointerButton int

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle
)

// Event is one input event. The concrete types are the *Event structs of
// this package.
type Event interface {
	isEvent()
}

// PointerMovedEvent reports a new pointer position in points.
type PointerMovedEvent struct {
	Pos Pos2
}

// PointerButtonEvent reports a button press or release.
type PointerButtonEvent struct {
	Pos       Pos2
	Button    PointerButton
	Pressed   bool
	Modifiers gpucontext.Modifiers
}

// PointerGoneEvent reports that the pointer left the window.
type PointerGoneEvent struct{}

// ScrollEvent reports a scroll delta in points.
type ScrollEvent struct {
	Delta Vec2
}

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Key       gpucontext.Key
	Pressed   bool
	Modifiers gpucontext.Modifiers
}

// TextEvent carries typed text.
type TextEvent struct {
	Text string
}

func (PointerMovedEvent) isEvent()  {}
func (PointerButtonEvent) isEvent() {}
func (PointerGoneEvent) isEvent()   {}
func (ScrollEvent) isEvent()        {}
func (KeyEvent) isEvent()           {}
func (TextEvent) isEvent()          {}

// RawInput is the input of one frame.
type RawInput struct {
	// ScreenRect is the drawable area in points.
	ScreenRect Rect

	// PixelsPerPoint is the display scale factor. Zero means 1.
	PixelsPerPoint float32

	// Events are the events since the previous frame, in arrival order.
	Events []Event
}

// frameInput is the per-frame summary of RawInput that widgets query.
type frameInput struct {
	screen Rect

	pointer    Pos2
	hasPointer bool

	// primaryDown is the button state at the end of the frame.
	primaryDown bool
	// pressed and released record edges of the primary button.
	pressed  bool
	released bool
	// releasePos is where the primary button was released.
	releasePos Pos2

	scroll Vec2

	keysPressed []gpucontext.Key
}

func (in *frameInput) keyPressed(k gpucontext.Key) bool {
	for _, p := range in.keysPressed {
		if p == k {
			return true
		}
	}
	return false
}

// interacted reports whether this frame carried any input that can change
// the UI.
func (in *frameInput) interacted() bool {
	return in.pressed || in.released || len(in.keysPressed) > 0
}
