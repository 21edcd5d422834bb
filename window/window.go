// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/event"
)

// ErrClosed is returned by operations on a closed window.
var ErrClosed = errors.New("window: closed")

// mousePointerID is the pointer id of the system mouse.
const mousePointerID = 1

// Window is a GLFW window without a client API, ready for a WebGPU
// surface. It queues its input as event.Event values.
//
// All methods except RequestRedraw must be called on the main thread.
type Window struct {
	glw *glfw.Window
	q   eventQueue

	fullscreen bool
	windowed   struct{ x, y, width, height int }

	cursors map[glfw.StandardCursor]*glfw.Cursor
	cursor  gpucontext.CursorShape

	// Pointer state in logical points.
	x, y    float64
	buttons gpucontext.Buttons
	mods    gpucontext.Modifiers

	closed bool
}

var (
	_ gpucontext.WindowProvider   = (*Window)(nil)
	_ gpucontext.PlatformProvider = (*Window)(nil)
)

// Init initializes GLFW. It must be called on the main thread, which must
// be locked with runtime.LockOSThread.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: glfw init: %w", err)
	}
	return nil
}

// Terminate destroys any remaining windows and shuts GLFW down.
func Terminate() {
	glfw.Terminate()
}

// New creates a visible, resizable window of width x height screen
// coordinates. Init must have been called.
func New(title string, width, height int) (*Window, error) {
	if title == "" {
		title = rayview.DefaultTitle
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	glw, err := glfw.CreateWindow(max(width, 1), max(height, 1), title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window: create: %w", err)
	}
	w := &Window{
		glw:     glw,
		cursors: make(map[glfw.StandardCursor]*glfw.Cursor),
	}

	glw.SetCloseCallback(w.onClose)
	glw.SetFramebufferSizeCallback(w.onFramebufferSize)
	glw.SetContentScaleCallback(w.onContentScale)
	glw.SetRefreshCallback(w.onRefresh)
	glw.SetKeyCallback(w.onKey)
	glw.SetCharCallback(w.onChar)
	glw.SetCursorPosCallback(w.onCursorPos)
	glw.SetCursorEnterCallback(w.onCursorEnter)
	glw.SetMouseButtonCallback(w.onMouseButton)
	glw.SetScrollCallback(w.onScroll)

	fw, fh := glw.GetFramebufferSize()
	rayview.Logger().Info("window created",
		"title", title, "width", fw, "height", fh, "scale", w.ScaleFactor())
	return w, nil
}

// NextEvent returns the next event. Queued input comes first, then a
// pending redraw. With nothing pending it blocks in glfw.WaitEvents until
// an event arrives or ctx is done.
func (w *Window) NextEvent(ctx context.Context) (event.Event, error) {
	stop := context.AfterFunc(ctx, glfw.PostEmptyEvent)
	defer stop()

	polled := false
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if w.closed {
			return nil, ErrClosed
		}
		if len(w.q.events) == 0 && !polled {
			glfw.PollEvents()
			polled = true
		}
		if ev, ok := w.q.pop(); ok {
			return ev, nil
		}
		glfw.WaitEvents()
	}
}

// RequestRedraw asks for one RedrawRequested event. Requests made before
// the event is delivered collapse into one. It is safe to call from any
// goroutine.
func (w *Window) RequestRedraw() {
	if w.q.requestRedraw() {
		glfw.PostEmptyEvent()
	}
}

// Size returns the client area size in logical points.
func (w *Window) Size() (width, height int) {
	fw, fh := w.FramebufferSize()
	s := w.ScaleFactor()
	return int(math.Round(float64(fw) / s)), int(math.Round(float64(fh) / s))
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	if w.closed {
		return 0, 0
	}
	return w.glw.GetFramebufferSize()
}

// ScaleFactor returns the content scale, the number of pixels per logical
// point.
func (w *Window) ScaleFactor() float64 {
	if w.closed {
		return 1
	}
	sx, _ := w.glw.GetContentScale()
	if sx <= 0 {
		return 1
	}
	return float64(sx)
}

// IsFullscreen reports whether the window covers the primary monitor.
func (w *Window) IsFullscreen() bool {
	return w.fullscreen
}

// SetFullscreen switches to the video mode of the primary monitor, or back
// to the position and size the window had before.
func (w *Window) SetFullscreen(fullscreen bool) {
	if w.closed || fullscreen == w.fullscreen {
		return
	}
	if fullscreen {
		mon := glfw.GetPrimaryMonitor()
		if mon == nil {
			rayview.Logger().Warn("fullscreen unavailable: no primary monitor")
			return
		}
		mode := mon.GetVideoMode()
		w.windowed.x, w.windowed.y = w.glw.GetPos()
		w.windowed.width, w.windowed.height = w.glw.GetSize()
		w.glw.SetMonitor(mon, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		r := w.windowed
		w.glw.SetMonitor(nil, r.x, r.y, r.width, r.height, 0)
	}
	w.fullscreen = fullscreen
}

// SetCursor changes the cursor shape. CursorNone hides the cursor.
func (w *Window) SetCursor(shape gpucontext.CursorShape) {
	if w.closed || shape == w.cursor {
		return
	}
	w.cursor = shape
	if shape == gpucontext.CursorNone {
		w.glw.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		return
	}
	w.glw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	std := standardCursor(shape)
	c, ok := w.cursors[std]
	if !ok {
		c = glfw.CreateStandardCursor(std)
		w.cursors[std] = c
	}
	w.glw.SetCursor(c)
}

// ClipboardRead returns the clipboard text.
func (w *Window) ClipboardRead() (string, error) {
	if w.closed {
		return "", ErrClosed
	}
	return w.glw.GetClipboardString(), nil
}

// ClipboardWrite sets the clipboard text.
func (w *Window) ClipboardWrite(text string) error {
	if w.closed {
		return ErrClosed
	}
	w.glw.SetClipboardString(text)
	return nil
}

func (w *Window) DarkMode() bool     { return false }
func (w *Window) ReduceMotion() bool { return false }
func (w *Window) HighContrast() bool { return false }
func (w *Window) FontScale() float32 { return 1 }

func (w *Window) SubpixelLayout() gpucontext.SubpixelLayout {
	return gpucontext.SubpixelNone
}

// Close destroys the window. Later calls do nothing.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	for _, c := range w.cursors {
		c.Destroy()
	}
	clear(w.cursors)
	w.glw.Destroy()
}

func timestamp() time.Duration {
	return time.Duration(glfw.GetTime() * float64(time.Second))
}

func (w *Window) onClose(*glfw.Window) {
	w.glw.SetShouldClose(false)
	w.q.push(event.CloseRequested{})
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.q.push(event.Resized{Width: width, Height: height})
}

func (w *Window) onContentScale(_ *glfw.Window, x, _ float32) {
	w.q.push(event.ScaleChanged{Scale: float64(x)})
}

func (w *Window) onRefresh(*glfw.Window) {
	w.q.requestRedraw()
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	w.mods = mapMods(mods)
	w.q.push(event.Keyboard{
		Key:     mapKey(key),
		Pressed: action != glfw.Release,
		Repeat:  action == glfw.Repeat,
		Mods:    w.mods,
	})
}

func (w *Window) onChar(_ *glfw.Window, r rune) {
	w.q.push(event.Text{Rune: r})
}

func (w *Window) logical(x, y float64) (float64, float64) {
	ww, _ := w.glw.GetSize()
	fw, _ := w.glw.GetFramebufferSize()
	return toLogical(x, y, ww, fw, w.ScaleFactor())
}

func (w *Window) pointer(typ gpucontext.PointerEventType, button gpucontext.Button) event.Pointer {
	pe := gpucontext.PointerEvent{
		Type:        typ,
		PointerID:   mousePointerID,
		X:           w.x,
		Y:           w.y,
		PointerType: gpucontext.PointerTypeMouse,
		IsPrimary:   true,
		Button:      button,
		Buttons:     w.buttons,
		Modifiers:   w.mods,
		Timestamp:   timestamp(),
	}
	if w.buttons != 0 {
		pe.Pressure = 0.5
	}
	return event.Pointer{PointerEvent: pe}
}

func (w *Window) onCursorPos(_ *glfw.Window, x, y float64) {
	w.x, w.y = w.logical(x, y)
	w.q.push(w.pointer(gpucontext.PointerMove, gpucontext.ButtonNone))
}

func (w *Window) onCursorEnter(gw *glfw.Window, entered bool) {
	if entered {
		w.x, w.y = w.logical(gw.GetCursorPos())
		w.q.push(w.pointer(gpucontext.PointerEnter, gpucontext.ButtonNone))
		return
	}
	w.q.push(w.pointer(gpucontext.PointerLeave, gpucontext.ButtonNone))
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, bit := mapButton(button)
	if b == gpucontext.ButtonNone {
		return
	}
	w.mods = mapMods(mods)
	typ := gpucontext.PointerUp
	if action == glfw.Press {
		typ = gpucontext.PointerDown
		w.buttons |= bit
	} else {
		w.buttons &^= bit
	}
	w.q.push(w.pointer(typ, b))
}

func (w *Window) onScroll(_ *glfw.Window, xoff, yoff float64) {
	w.q.push(event.Scroll{ScrollEvent: gpucontext.ScrollEvent{
		X:         w.x,
		Y:         w.y,
		DeltaX:    -xoff,
		DeltaY:    -yoff,
		DeltaMode: gpucontext.ScrollDeltaLine,
		Modifiers: w.mods,
		Timestamp: timestamp(),
	}})
}
