// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/rayview/event"
	"github.com/gogpu/rayview/ui"
)

func newTestAdapter(t *testing.T, win *fakeWindow, opts ...AdapterOption) (*UIAdapter, *AppState) {
	t.Helper()
	state := &AppState{}
	a, err := NewUIAdapter(win, state, opts...)
	if err != nil {
		t.Fatalf("NewUIAdapter: %v", err)
	}
	return a, state
}

// clickAt sends a primary click at a position in logical points and runs
// a UI frame.
func clickAt(a *UIAdapter, p ui.Pos2) {
	a.HandleWindowEvent(pointer(gpucontext.PointerDown, float64(p.X), float64(p.Y)))
	a.HandleWindowEvent(pointer(gpucontext.PointerUp, float64(p.X), float64(p.Y)))
	a.Update()
}

// labelRect returns the rectangle of the text shape labelled text in the
// last output, in points.
func labelRect(t *testing.T, a *UIAdapter, text string) ui.Rect {
	t.Helper()
	if a.out == nil {
		t.Fatalf("no output to find %q in", text)
	}
	for _, cs := range a.out.Shapes {
		if ts, ok := cs.Shape.(ui.TextShape); ok && ts.Galley != nil && ts.Galley.Text == text {
			return ui.Rect{Min: ts.Pos, Max: ts.Pos.Add(ts.Galley.Size)}
		}
	}
	t.Fatalf("%q not laid out", text)
	return ui.Rect{}
}

// labelCenter returns the center of the text labelled text.
func labelCenter(t *testing.T, a *UIAdapter, text string) ui.Pos2 {
	t.Helper()
	return labelRect(t, a, text).Center()
}

// titleBar returns the smallest panel-filled rectangle around the title of
// a window.
func titleBar(t *testing.T, a *UIAdapter, title string) ui.Rect {
	t.Helper()
	at := labelCenter(t, a, title)
	fill := a.ctx.Style().Visuals.PanelFill
	var bar ui.Rect
	for _, cs := range a.out.Shapes {
		rs, ok := cs.Shape.(ui.RectShape)
		if !ok || rs.Fill != fill || !rs.Rect.Contains(at) {
			continue
		}
		if bar.IsEmpty() || rs.Rect.Width()*rs.Rect.Height() < bar.Width()*bar.Height() {
			bar = rs.Rect
		}
	}
	if bar.IsEmpty() {
		t.Fatalf("no title bar around %q", title)
	}
	return bar
}

// choose opens menu title and clicks item.
func choose(t *testing.T, a *UIAdapter, title, item string) {
	t.Helper()
	clickAt(a, labelCenter(t, a, title))
	if !a.ctx.IsMenuOpen() {
		t.Fatalf("menu %q did not open", title)
	}
	clickAt(a, labelCenter(t, a, item))
}

func TestUIAdapterTakeOutputOnce(t *testing.T) {
	a, _ := newTestAdapter(t, newFakeWindow())

	if _, ok := a.TakeOutput(); ok {
		t.Fatal("output before the first Update")
	}
	a.Update()
	out, ok := a.TakeOutput()
	if !ok || out == nil {
		t.Fatal("no output after Update")
	}
	if len(out.Shapes) == 0 {
		t.Error("menu bar produced no shapes")
	}
	if len(out.TexturesDelta.Set) == 0 || !out.TexturesDelta.Set[0].Delta.IsWhole() {
		t.Error("first output should upload the whole font atlas")
	}
	if _, ok := a.TakeOutput(); ok {
		t.Error("output returned twice")
	}
}

func TestUIAdapterUntakenOutputKeepsTextureChanges(t *testing.T) {
	a, _ := newTestAdapter(t, newFakeWindow())
	a.Update()
	a.Update()

	out, ok := a.TakeOutput()
	if !ok {
		t.Fatal("no output")
	}
	if len(out.TexturesDelta.Set) == 0 {
		t.Fatal("texture changes of the replaced output were lost")
	}
	if first := out.TexturesDelta.Set[0]; first.ID != ui.FontTexture || !first.Delta.IsWhole() {
		t.Errorf("first update = %v whole=%v, want the whole font atlas", first.ID, first.Delta.IsWhole())
	}
}

func TestUIAdapterScreenInPoints(t *testing.T) {
	tests := []struct {
		name     string
		scale    float64
		uiScale  float64
		wantPPP  float32
		wantSize ui.Vec2
	}{
		{"unscaled", 1, 1, 1, ui.Vec2{X: 800, Y: 600}},
		{"hidpi", 2, 1, 2, ui.Vec2{X: 400, Y: 300}},
		{"ui scale", 1, 2, 2, ui.Vec2{X: 400, Y: 300}},
		{"zero scale", 0, 1, 1, ui.Vec2{X: 800, Y: 600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := newFakeWindow()
			win.scale = tt.scale
			a, _ := newTestAdapter(t, win, WithUIScale(tt.uiScale))
			a.Update()
			out, _ := a.TakeOutput()
			if out.PixelsPerPoint != tt.wantPPP {
				t.Errorf("PixelsPerPoint = %v, want %v", out.PixelsPerPoint, tt.wantPPP)
			}
			if got := a.ctx.ScreenRect().Size(); got != tt.wantSize {
				t.Errorf("screen = %v, want %v", got, tt.wantSize)
			}
		})
	}
}

func TestUIAdapterConsumed(t *testing.T) {
	a, _ := newTestAdapter(t, newFakeWindow())
	a.Update()
	file := labelCenter(t, a, "File")

	tests := []struct {
		name string
		ev   event.Event
		want EventResponse
	}{
		{"move over menu bar", pointer(gpucontext.PointerMove, float64(file.X), float64(file.Y)), EventResponse{Consumed: true, RepaintRequested: true}},
		{"move over scene", pointer(gpucontext.PointerMove, 400, 400), EventResponse{RepaintRequested: true}},
		{"leave", pointer(gpucontext.PointerLeave, 0, 0), EventResponse{RepaintRequested: true}},
		{"scroll over scene", event.Scroll{ScrollEvent: gpucontext.ScrollEvent{X: 400, Y: 400, DeltaY: 3}}, EventResponse{RepaintRequested: true}},
		{"key without menu", event.Keyboard{Key: gpucontext.KeyW, Pressed: true}, EventResponse{RepaintRequested: true}},
		{"text without menu", event.Text{Rune: 'w'}, EventResponse{RepaintRequested: true}},
		{"resize", event.Resized{Width: 640, Height: 480}, EventResponse{RepaintRequested: true}},
		{"scale", event.ScaleChanged{Scale: 2}, EventResponse{RepaintRequested: true}},
		{"close", event.CloseRequested{}, EventResponse{}},
		{"redraw", event.RedrawRequested{}, EventResponse{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.HandleWindowEvent(tt.ev); got != tt.want {
				t.Errorf("HandleWindowEvent = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUIAdapterOpenMenuTakesKeyboard(t *testing.T) {
	a, _ := newTestAdapter(t, newFakeWindow())
	a.Update()
	clickAt(a, labelCenter(t, a, "File"))

	if r := a.HandleWindowEvent(event.Keyboard{Key: gpucontext.KeyEscape, Pressed: true}); !r.Consumed {
		t.Error("an open menu should consume keys")
	}
	if r := a.HandleWindowEvent(pointer(gpucontext.PointerMove, 700, 500)); !r.Consumed {
		t.Error("an open menu should consume the pointer anywhere")
	}
	a.Update()
	if a.ctx.IsMenuOpen() {
		t.Error("Escape did not close the menu")
	}
}

func TestUIAdapterQuit(t *testing.T) {
	a, state := newTestAdapter(t, newFakeWindow())
	a.Update()
	choose(t, a, "File", "Quit")
	if !state.QuitRequested {
		t.Error("File > Quit did not request exit")
	}
}

func TestUIAdapterFullscreenToggle(t *testing.T) {
	win := newFakeWindow()
	a, _ := newTestAdapter(t, win)
	a.Update()

	choose(t, a, "Window", "Enter Fullscreen")
	if !win.fullscreen {
		t.Fatal("Enter Fullscreen did not switch the window")
	}
	out, _ := a.TakeOutput()
	if !out.NeedsRepaint {
		t.Error("a fired command should request a repaint")
	}

	choose(t, a, "Window", "Exit Fullscreen")
	if win.fullscreen {
		t.Error("Exit Fullscreen did not restore the window")
	}
}

func TestUIAdapterModelSettings(t *testing.T) {
	a, state := newTestAdapter(t, newFakeWindow())
	a.Update()

	choose(t, a, "View", "Model Settings")
	if !state.ModelSettingsOpen {
		t.Fatal("View > Model Settings did not open the panel")
	}
	a.Update()
	w := titleBar(t, a, "Model Settings")
	clickAt(a, ui.Pos2{X: w.Max.X - 4, Y: w.Min.Y + 4})
	if state.ModelSettingsOpen {
		t.Error("close button did not close the panel")
	}
}

func TestUIAdapterPointerInPoints(t *testing.T) {
	a, _ := newTestAdapter(t, newFakeWindow(), WithUIScale(2))
	a.Update()

	// Label rects are in points; with a UI scale of 2 each point spans two
	// logical units.
	file := labelCenter(t, a, "File")
	clickAt(a, ui.Pos2{X: file.X * 2, Y: file.Y * 2})
	if !a.ctx.IsMenuOpen() {
		t.Error("click at the scaled menu position did not open it")
	}
}

func TestUIAdapterSetsCursor(t *testing.T) {
	win := newFakeWindow()
	a, _ := newTestAdapter(t, win)
	a.Update()
	if win.cursorSets != 0 {
		t.Errorf("cursor set %d times for the default shape", win.cursorSets)
	}

	file := labelCenter(t, a, "File")
	a.HandleWindowEvent(pointer(gpucontext.PointerMove, float64(file.X), float64(file.Y)))
	a.Update()
	if win.cursor != gpucontext.CursorPointer {
		t.Errorf("cursor = %v, want pointer over a button", win.cursor)
	}

	a.Update()
	if win.cursorSets != 1 {
		t.Errorf("cursor set %d times, want 1", win.cursorSets)
	}
}

func TestWithUIScaleIgnoresInvalid(t *testing.T) {
	for _, s := range []float64{0, -1, 5} {
		a, _ := newTestAdapter(t, newFakeWindow(), WithUIScale(s))
		if a.scale != 1 {
			t.Errorf("WithUIScale(%v): scale = %v, want 1", s, a.scale)
		}
	}
}
