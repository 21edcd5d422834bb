// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/rayview/event"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/rayview/internal/gpucore/gpucoretest"
	"github.com/gogpu/rayview/render"
	"github.com/gogpu/rayview/surface"
	"github.com/gogpu/rayview/ui"
)

// fakeWindow satisfies Window, UIWindow and cursorSetter.
type fakeWindow struct {
	width, height int
	scale         float64
	fullscreen    bool

	redraws    int
	cursor     gpucontext.CursorShape
	cursorSets int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{width: 800, height: 600, scale: 1}
}

func (w *fakeWindow) FramebufferSize() (int, int)   { return w.width, w.height }
func (w *fakeWindow) ScaleFactor() float64          { return w.scale }
func (w *fakeWindow) RequestRedraw()                { w.redraws++ }
func (w *fakeWindow) IsFullscreen() bool            { return w.fullscreen }
func (w *fakeWindow) SetFullscreen(fullscreen bool) { w.fullscreen = fullscreen }

func (w *fakeWindow) SetCursor(shape gpucontext.CursorShape) {
	w.cursor = shape
	w.cursorSets++
}

// fakeUI returns a fixed response and hands out a fresh output per Update.
type fakeUI struct {
	resp     EventResponse
	seen     []event.Event
	updates  int
	onUpdate func()
	repaint  bool
	invalid  int

	out *ui.FullOutput
}

func (f *fakeUI) HandleWindowEvent(ev event.Event) EventResponse {
	f.seen = append(f.seen, ev)
	return f.resp
}

func (f *fakeUI) Update() {
	f.updates++
	if f.onUpdate != nil {
		f.onUpdate()
	}
	f.out = &ui.FullOutput{PixelsPerPoint: 1, NeedsRepaint: f.repaint}
}

func (f *fakeUI) InvalidateTextures() { f.invalid++ }

func (f *fakeUI) TakeOutput() (*ui.FullOutput, bool) {
	out := f.out
	f.out = nil
	return out, out != nil
}

// fakeCompositor presents every target unless err is set. With lost set
// it presents and reports lost UI textures.
type fakeCompositor struct {
	err        error
	lost       bool
	outs       []*ui.FullOutput
	rebuilt    []string
	rebuildErr error
}

func (f *fakeCompositor) Pass(target render.Target, out *ui.FullOutput) error {
	f.outs = append(f.outs, out)
	if f.err != nil {
		target.Discard()
		return f.err
	}
	if err := target.Present(); err != nil {
		return err
	}
	if f.lost {
		return render.ErrTexturesLost
	}
	return nil
}

func (f *fakeCompositor) Rebuild(src string) error {
	f.rebuilt = append(f.rebuilt, src)
	return f.rebuildErr
}

// fakeSource replays events, then reports errSourceDone.
type fakeSource struct {
	events []event.Event
}

var errSourceDone = errors.New("source drained")

func (s *fakeSource) NextEvent(ctx context.Context) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.events) == 0 {
		return nil, errSourceDone
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

// fakeShaders publishes queued sources one per Take.
type fakeShaders struct {
	queue []string
}

func (s *fakeShaders) Take() (string, bool) {
	if len(s.queue) == 0 {
		return "", false
	}
	src := s.queue[0]
	s.queue = s.queue[1:]
	return src, true
}

type controllerFixture struct {
	ctrl    *Controller
	win     *fakeWindow
	ui      *fakeUI
	comp    *fakeCompositor
	state   *AppState
	surface *gpucoretest.Surface
	manager *surface.Manager
	log     *gpucoretest.Log
}

func newControllerFixture(t *testing.T, opts ...ControllerOption) *controllerFixture {
	t.Helper()
	inst, log := gpucoretest.NewInstance(gpucoretest.DefaultCaps())
	m, err := surface.New(context.Background(), inst, gpucore.NativeHandle{Window: 1}, 800, 600)
	if err != nil {
		t.Fatalf("surface.New: %v", err)
	}
	t.Cleanup(m.Release)

	f := &controllerFixture{
		win:     newFakeWindow(),
		ui:      &fakeUI{},
		comp:    &fakeCompositor{},
		state:   &AppState{},
		surface: inst.Surface,
		manager: m,
		log:     log,
	}
	f.ctrl = NewController(f.win, m, f.comp, f.ui, f.state, opts...)
	return f
}

// pointer builds a primary-button pointer event at a logical position.
func pointer(typ gpucontext.PointerEventType, x, y float64) event.Pointer {
	return event.Pointer{PointerEvent: gpucontext.PointerEvent{
		Type:        typ,
		X:           x,
		Y:           y,
		Button:      gpucontext.ButtonLeft,
		PointerType: gpucontext.PointerTypeMouse,
		IsPrimary:   true,
	}}
}
