// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/rayview/event"
)

// InputManager tracks scene input: held keys and buttons, the pointer
// position and the scroll accumulated since it was last taken. It only
// sees events the overlay did not consume.
type InputManager struct {
	keys    map[gpucontext.Key]bool
	buttons map[gpucontext.Button]bool
	mods    gpucontext.Modifiers

	pointerX, pointerY float64
	hasPointer         bool

	scrollX, scrollY float64
}

// NewInputManager returns an empty InputManager.
func NewInputManager() *InputManager {
	return &InputManager{
		keys:    make(map[gpucontext.Key]bool),
		buttons: make(map[gpucontext.Button]bool),
	}
}

// Handle records ev and reports whether it was an input event.
func (m *InputManager) Handle(ev event.Event) bool {
	switch ev := ev.(type) {
	case event.Keyboard:
		m.mods = ev.Mods
		if ev.Pressed {
			m.keys[ev.Key] = true
		} else {
			delete(m.keys, ev.Key)
		}
	case event.Text:
	case event.Pointer:
		m.mods = ev.Modifiers
		switch ev.Type {
		case gpucontext.PointerLeave, gpucontext.PointerCancel:
			m.hasPointer = false
			if ev.Type == gpucontext.PointerCancel {
				clear(m.buttons)
			}
			return true
		case gpucontext.PointerDown:
			m.buttons[ev.Button] = true
		case gpucontext.PointerUp:
			delete(m.buttons, ev.Button)
		}
		m.pointerX, m.pointerY = ev.X, ev.Y
		m.hasPointer = true
	case event.Scroll:
		m.mods = ev.Modifiers
		m.scrollX += ev.DeltaX
		m.scrollY += ev.DeltaY
	default:
		return false
	}
	return true
}

// IsKeyDown reports whether k is held.
func (m *InputManager) IsKeyDown(k gpucontext.Key) bool {
	return m.keys[k]
}

// IsButtonDown reports whether b is held.
func (m *InputManager) IsButtonDown(b gpucontext.Button) bool {
	return m.buttons[b]
}

// Pointer returns the last pointer position in logical points. ok is false
// while the pointer is outside the window.
func (m *InputManager) Pointer() (x, y float64, ok bool) {
	return m.pointerX, m.pointerY, m.hasPointer
}

// Modifiers returns the modifier keys of the last event.
func (m *InputManager) Modifiers() gpucontext.Modifiers {
	return m.mods
}

// TakeScroll returns the scroll accumulated since the last call and resets
// it.
func (m *InputManager) TakeScroll() (dx, dy float64) {
	dx, dy = m.scrollX, m.scrollY
	m.scrollX, m.scrollY = 0, 0
	return dx, dy
}

// Reset forgets all held keys and buttons, e.g. when the window loses
// focus.
func (m *InputManager) Reset() {
	clear(m.keys)
	clear(m.buttons)
	m.mods = 0
	m.scrollX, m.scrollY = 0, 0
}
