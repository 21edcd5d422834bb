// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/event"
	"github.com/gogpu/rayview/render"
	"github.com/gogpu/rayview/surface"
	"github.com/gogpu/rayview/ui"
)

// State is the state of the frame loop.
type State int

const (
	// StateIdle waits for the next event.
	StateIdle State = iota

	// StateResizing reconfigures the surface.
	StateResizing

	// StateRendering runs a UI frame and renders it.
	StateRendering

	// StateExiting is final: no further frames are rendered.
	StateExiting
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateResizing:
		return "Resizing"
	case StateRendering:
		return "Rendering"
	case StateExiting:
		return "Exiting"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Window is the window the controller reads its size from and asks for
// redraws.
type Window interface {
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)

	// RequestRedraw asks for one RedrawRequested event. Repeated requests
	// before delivery collapse into one.
	RequestRedraw()
}

// SurfaceManager acquires frames and follows the window size.
type SurfaceManager interface {
	Acquire() (*surface.FrameTarget, error)
	Reconfigure(width, height uint32) error
}

// Compositor renders one frame into an acquired target.
type Compositor interface {
	Pass(target render.Target, out *ui.FullOutput) error
	Rebuild(src string) error
}

// UI is the overlay seen by the controller.
type UI interface {
	HandleWindowEvent(ev event.Event) EventResponse
	Update()
	TakeOutput() (*ui.FullOutput, bool)

	// InvalidateTextures makes the next output carry every UI texture
	// as a whole update.
	InvalidateTextures()
}

// EventSource delivers window events in order. NextEvent blocks until an
// event is available or ctx is done.
type EventSource interface {
	NextEvent(ctx context.Context) (event.Event, error)
}

// ShaderSource publishes replacement shader source. Take returns the
// newest source once.
type ShaderSource interface {
	Take() (src string, ok bool)
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithShaderSource rebuilds the base pipeline from src before a frame
// whenever it has new source.
func WithShaderSource(src ShaderSource) ControllerOption {
	return func(c *Controller) {
		c.shaders = src
	}
}

// WithInputManager routes unconsumed input to m instead of a private
// InputManager.
func WithInputManager(m *InputManager) ControllerOption {
	return func(c *Controller) {
		if m != nil {
			c.input = m
		}
	}
}

// Controller is the frame loop state machine.
//
// Controller is not safe for concurrent use. Run and HandleEvent must be
// called from the goroutine that owns the window.
type Controller struct {
	win     Window
	surface SurfaceManager
	comp    Compositor
	ui      UI
	app     *AppState
	input   *InputManager
	shaders ShaderSource

	state State

	// lastWidth and lastHeight are the last nonzero framebuffer size.
	lastWidth, lastHeight uint32

	frames  uint64
	exitErr error
}

// NewController returns a controller in StateIdle.
func NewController(win Window, sm SurfaceManager, comp Compositor, u UI, state *AppState, opts ...ControllerOption) *Controller {
	c := &Controller{
		win:     win,
		surface: sm,
		comp:    comp,
		ui:      u,
		app:     state,
		input:   NewInputManager(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if w, h := win.FramebufferSize(); w > 0 && h > 0 {
		c.lastWidth, c.lastHeight = uint32(w), uint32(h)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Frames returns the number of frames passed to the compositor without
// error.
func (c *Controller) Frames() uint64 {
	return c.frames
}

// Input returns the manager that receives unconsumed input.
func (c *Controller) Input() *InputManager {
	return c.input
}

// Err returns the error that made the loop exit, if any.
func (c *Controller) Err() error {
	return c.exitErr
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	rayview.Logger().Debug("frame loop", "from", c.state, "to", s)
	c.state = s
}

// HandleEvent dispatches one event. The UI sees every event first. Once
// the controller is exiting, HandleEvent does nothing.
func (c *Controller) HandleEvent(ev event.Event) {
	if c.state == StateExiting {
		return
	}

	resp := c.ui.HandleWindowEvent(ev)
	if resp.RepaintRequested {
		c.win.RequestRedraw()
	}

	switch ev := ev.(type) {
	case event.CloseRequested:
		rayview.Logger().Info("close requested")
		c.setState(StateExiting)
	case event.Resized:
		c.resize(ev.Width, ev.Height)
	case event.RedrawRequested:
		c.redraw()
	default:
		if !resp.Consumed && event.IsInput(ev) {
			c.input.Handle(ev)
		}
	}
}

func (c *Controller) resize(width, height int) {
	c.setState(StateResizing)
	if width > 0 && height > 0 {
		c.lastWidth, c.lastHeight = uint32(width), uint32(height)
		if err := c.surface.Reconfigure(uint32(width), uint32(height)); err != nil {
			rayview.Logger().Warn("surface reconfigure failed", "width", width, "height", height, "err", err)
		}
	}
	c.win.RequestRedraw()
	c.setState(StateIdle)
}

// currentSize returns the window size, or the last nonzero size while the
// window reports an empty framebuffer.
func (c *Controller) currentSize() (width, height uint32) {
	if w, h := c.win.FramebufferSize(); w > 0 && h > 0 {
		return uint32(w), uint32(h)
	}
	return c.lastWidth, c.lastHeight
}

func (c *Controller) redraw() {
	c.setState(StateRendering)

	if c.shaders != nil {
		if src, ok := c.shaders.Take(); ok {
			if err := c.comp.Rebuild(src); err != nil {
				rayview.Logger().Warn("shader reload failed, keeping the previous pipeline", "err", err)
			} else {
				rayview.Logger().Info("shader reloaded")
			}
		}
	}

	c.ui.Update()
	if c.app != nil && c.app.QuitRequested {
		c.setState(StateExiting)
		return
	}

	target, err := c.surface.Acquire()
	if err != nil {
		c.recover(err)
		return
	}

	out, _ := c.ui.TakeOutput()
	repaint := out != nil && out.NeedsRepaint
	switch err := c.comp.Pass(target, out); {
	case err == nil:
		c.frames++
	case errors.Is(err, render.ErrTexturesLost):
		// Presented without part of the UI.
		rayview.Logger().Warn("ui textures lost, sending them again", "err", err)
		c.ui.InvalidateTextures()
		c.frames++
		repaint = true
	default:
		rayview.Logger().Warn("frame dropped", "err", err)
	}
	if repaint {
		c.win.RequestRedraw()
	}
	c.setState(StateIdle)
}

// recover applies the recovery action of an acquisition failure.
func (c *Controller) recover(err error) {
	kind := surface.Classify(err)
	var ae *surface.AcquireError
	if errors.As(err, &ae) {
		kind = ae.Kind
	}

	switch kind.Action() {
	case surface.ActionReconfigure:
		c.setState(StateResizing)
		w, h := c.currentSize()
		rayview.Logger().Warn("surface needs reconfiguration", "kind", kind, "width", w, "height", h)
		if err := c.surface.Reconfigure(w, h); err != nil {
			rayview.Logger().Warn("surface reconfigure failed", "err", err)
		}
		c.win.RequestRedraw()
	case surface.ActionExit:
		rayview.Logger().Error("surface acquisition failed, exiting", "kind", kind, "err", err)
		c.exitErr = fmt.Errorf("%w: %w", ErrOutOfMemory, err)
		c.setState(StateExiting)
		return
	case surface.ActionSkip:
	}
	c.setState(StateIdle)
}

// Run pumps events from src until the controller exits or ctx is done. It
// returns ctx.Err() on cancellation and an error wrapping ErrOutOfMemory
// when the device ran out of memory.
func (c *Controller) Run(ctx context.Context, src EventSource) error {
	for c.state != StateExiting {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := src.NextEvent(ctx)
		if err != nil {
			return err
		}
		c.HandleEvent(ev)
	}
	return c.exitErr
}
