// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/event"
	"github.com/gogpu/rayview/ui"
)

// scrollLinePoints converts line based scroll deltas to points.
const scrollLinePoints = 20

// EventResponse tells the controller what the UI did with a window event.
type EventResponse struct {
	// Consumed means the event belongs to the overlay and must not reach
	// the scene input.
	Consumed bool

	// RepaintRequested asks for a redraw.
	RepaintRequested bool
}

// UIWindow is the window the adapter reads geometry from and applies
// commands to. Pointer positions in events are in logical points; the
// framebuffer size is in pixels.
type UIWindow interface {
	FullscreenWindow
	FramebufferSize() (width, height int)
	ScaleFactor() float64
}

// cursorSetter is implemented by windows that can change the cursor shape.
type cursorSetter interface {
	SetCursor(shape gpucontext.CursorShape)
}

// AdapterOption configures a UIAdapter.
type AdapterOption func(*adapterOptions)

type adapterOptions struct {
	scale float64
	ui    []ui.Option
}

// WithUIScale multiplies the window scale factor for the overlay.
// Values outside (0, 4] are ignored.
func WithUIScale(scale float64) AdapterOption {
	return func(o *adapterOptions) {
		if scale > 0 && scale <= 4 {
			o.scale = scale
		}
	}
}

// WithUIOptions passes options to the UI context.
func WithUIOptions(opts ...ui.Option) AdapterOption {
	return func(o *adapterOptions) {
		o.ui = append(o.ui, opts...)
	}
}

// UIAdapter connects the window to the immediate-mode UI. It buffers
// translated window events, runs one UI frame per Update, and holds the
// resulting output until the compositor takes it.
//
// UIAdapter is not safe for concurrent use.
type UIAdapter struct {
	win   UIWindow
	state *AppState
	ctx   *ui.Context
	scale float64

	events []ui.Event
	cmds   []Command
	out    *ui.FullOutput
	cursor gpucontext.CursorShape
}

// NewUIAdapter returns an adapter for win that applies menu commands to
// state.
func NewUIAdapter(win UIWindow, state *AppState, opts ...AdapterOption) (*UIAdapter, error) {
	o := adapterOptions{scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, err := ui.NewContext(o.ui...)
	if err != nil {
		return nil, err
	}
	return &UIAdapter{
		win:   win,
		state: state,
		ctx:   ctx,
		scale: o.scale,
	}, nil
}

// pixelsPerPoint returns the size of one UI point in framebuffer pixels.
func (a *UIAdapter) pixelsPerPoint() float32 {
	s := a.win.ScaleFactor()
	if s <= 0 {
		s = 1
	}
	return float32(s * a.scale)
}

// toPoints converts a window position in logical points to UI points.
func (a *UIAdapter) toPoints(x, y float64) ui.Pos2 {
	return ui.Pos2{X: float32(x / a.scale), Y: float32(y / a.scale)}
}

// HandleWindowEvent offers ev to the UI. Input events are buffered for the
// next Update. Lifecycle events are never consumed.
func (a *UIAdapter) HandleWindowEvent(ev event.Event) EventResponse {
	switch ev := ev.(type) {
	case event.Resized, event.ScaleChanged:
		return EventResponse{RepaintRequested: true}
	case event.Pointer:
		return a.handlePointer(ev.PointerEvent)
	case event.Scroll:
		pos := a.toPoints(ev.X, ev.Y)
		delta := ui.Vec2{X: float32(ev.DeltaX / a.scale), Y: float32(ev.DeltaY / a.scale)}
		if ev.DeltaMode == gpucontext.ScrollDeltaLine {
			delta = ui.Vec2{X: float32(ev.DeltaX) * scrollLinePoints, Y: float32(ev.DeltaY) * scrollLinePoints}
		}
		a.events = append(a.events, ui.ScrollEvent{Delta: delta})
		return EventResponse{Consumed: a.ctx.WantsPointerAt(pos), RepaintRequested: true}
	case event.Keyboard:
		a.events = append(a.events, ui.KeyEvent{Key: ev.Key, Pressed: ev.Pressed, Modifiers: ev.Mods})
		return EventResponse{Consumed: a.ctx.WantsKeyboard(), RepaintRequested: true}
	case event.Text:
		a.events = append(a.events, ui.TextEvent{Text: string(ev.Rune)})
		return EventResponse{Consumed: a.ctx.WantsKeyboard(), RepaintRequested: true}
	default:
		return EventResponse{}
	}
}

func (a *UIAdapter) handlePointer(pe gpucontext.PointerEvent) EventResponse {
	pos := a.toPoints(pe.X, pe.Y)
	switch pe.Type {
	case gpucontext.PointerLeave, gpucontext.PointerCancel:
		a.events = append(a.events, ui.PointerGoneEvent{})
		return EventResponse{RepaintRequested: true}
	case gpucontext.PointerDown, gpucontext.PointerUp:
		if b, ok := pointerButton(pe.Button); ok {
			a.events = append(a.events, ui.PointerButtonEvent{
				Pos:       pos,
				Button:    b,
				Pressed:   pe.Type == gpucontext.PointerDown,
				Modifiers: pe.Modifiers,
			})
		} else {
			a.events = append(a.events, ui.PointerMovedEvent{Pos: pos})
		}
	default:
		a.events = append(a.events, ui.PointerMovedEvent{Pos: pos})
	}
	return EventResponse{Consumed: a.ctx.WantsPointerAt(pos), RepaintRequested: true}
}

func pointerButton(b gpucontext.Button) (ui.PointerButton, bool) {
	switch b {
	case gpucontext.ButtonLeft:
		return ui.PointerPrimary, true
	case gpucontext.ButtonRight:
		return ui.PointerSecondary, true
	case gpucontext.ButtonMiddle:
		return ui.PointerMiddle, true
	default:
		return 0, false
	}
}

// Update runs one UI frame over the buffered events, applies the commands
// it fired and stores its output. An output that was not taken yet is
// replaced, but its texture changes are carried over so that none is lost.
func (a *UIAdapter) Update() {
	w, h := a.win.FramebufferSize()
	ppp := a.pixelsPerPoint()
	raw := ui.RawInput{
		ScreenRect:     ui.Rect{Max: ui.Pos2{X: float32(w) / ppp, Y: float32(h) / ppp}},
		PixelsPerPoint: ppp,
		Events:         a.events,
	}
	a.cmds = a.cmds[:0]
	out := a.ctx.Run(raw, a.build)
	a.events = a.events[:0]

	if len(a.cmds) > 0 {
		ApplyCommands(a.state, a.win, a.cmds)
		out.NeedsRepaint = true
	}

	if a.out != nil {
		merged := a.out.TexturesDelta
		merged.Append(out.TexturesDelta)
		out.TexturesDelta = merged
		rayview.Logger().Debug("ui: replaced untaken output", "texture_updates", len(merged.Set))
	}
	a.out = &out

	if cs, ok := a.win.(cursorSetter); ok && out.Cursor != a.cursor {
		cs.SetCursor(out.Cursor)
		a.cursor = out.Cursor
	}
}

func (a *UIAdapter) build(c *ui.Context) {
	c.MenuBar(func(bar *ui.Ui) {
		bar.Menu("File", func(m *ui.Ui) {
			if m.Button("Quit").Clicked {
				a.cmds = append(a.cmds, CmdQuit)
			}
		})
		bar.Menu("Window", func(m *ui.Ui) {
			label := "Enter Fullscreen"
			if a.win.IsFullscreen() {
				label = "Exit Fullscreen"
			}
			if m.Button(label).Clicked {
				a.cmds = append(a.cmds, CmdToggleFullscreen)
			}
		})
		bar.Menu("View", func(m *ui.Ui) {
			if m.Button("Model Settings").Clicked {
				a.cmds = append(a.cmds, CmdModelSettings)
			}
		})
	})

	open := a.state.ModelSettingsOpen
	c.Window("Model Settings", &open, func(u *ui.Ui) {
		u.Label("No model loaded.")
	})
	if a.state.ModelSettingsOpen && !open {
		a.cmds = append(a.cmds, CmdModelSettings)
	}
}

// TakeOutput returns the output of the last Update once. Later calls
// return nil, false until the next Update.
func (a *UIAdapter) TakeOutput() (*ui.FullOutput, bool) {
	out := a.out
	a.out = nil
	return out, out != nil
}

// InvalidateTextures makes the next Update send every UI texture whole.
func (a *UIAdapter) InvalidateTextures() {
	a.ctx.InvalidateTextures()
}

// Release drops buffered events and any output that was not taken.
func (a *UIAdapter) Release() {
	a.events = nil
	a.cmds = nil
	a.out = nil
}
