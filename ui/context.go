// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"github.com/gogpu/gpucontext"
	"golang.org/x/image/font/gofont/goregular"
)

// Layer orders shapes: later layers are drawn on top and take pointer
// input first.
type Layer int

const (
	LayerBackground Layer = iota
	LayerWindow
	LayerPopup
	layerCount
)

// FullOutput is everything a frame produced.
type FullOutput struct {
	// Shapes are in paint order, in points.
	Shapes []ClippedShape

	// TexturesDelta must be applied around painting Shapes.
	TexturesDelta TexturesDelta

	// PixelsPerPoint is the scale the shapes were laid out for.
	PixelsPerPoint float32

	// NeedsRepaint asks for another frame even without new input, e.g.
	// after a menu changed its size.
	NeedsRepaint bool

	// Cursor is the cursor shape the UI wants.
	Cursor gpucontext.CursorShape
}

// area is a region that owns pointer input on its layer.
type area struct {
	rect  Rect
	layer Layer
}

// Option configures a Context.
type Option func(*contextOptions)

type contextOptions struct {
	font  []byte
	style Style
}

// WithFont sets the TrueType font. The default is Go Regular.
func WithFont(ttf []byte) Option {
	return func(o *contextOptions) {
		o.font = ttf
	}
}

// WithStyle sets the widget style.
func WithStyle(s Style) Option {
	return func(o *contextOptions) {
		o.style = s
	}
}

// Context holds the UI state that survives between frames.
//
// Context is not safe for concurrent use.
type Context struct {
	style Style
	text  *textLayouter

	// Pointer state carried across frames.
	pointer     Pos2
	hasPointer  bool
	primaryDown bool
	pressPos    Pos2

	// Widget memory.
	openMenu   string
	menuWidths map[string]float32
	windowPos  map[string]Pos2
	prevAreas  []area
	contentTop float32

	// Per-frame state.
	in      frameInput
	ppp     float32
	layers  [layerCount][]ClippedShape
	areas   []area
	menuHit bool
	repaint bool
	cursor  gpucontext.CursorShape
}

// NewContext returns a Context. It fails only if the font cannot be parsed.
func NewContext(opts ...Option) (*Context, error) {
	o := contextOptions{font: goregular.TTF, style: DefaultStyle()}
	for _, opt := range opts {
		opt(&o)
	}
	text, err := newTextLayouter(o.font)
	if err != nil {
		return nil, err
	}
	return &Context{
		style:      o.style,
		text:       text,
		menuWidths: make(map[string]float32),
		windowPos:  make(map[string]Pos2),
		ppp:        1,
	}, nil
}

// Style returns the style. Changes apply from the next widget on.
func (c *Context) Style() *Style {
	return &c.style
}

// Run runs one frame: it consumes the input, calls build once and returns
// what to paint.
func (c *Context) Run(in RawInput, build func(*Context)) FullOutput {
	c.beginFrame(in)
	if build != nil {
		build(c)
	}
	return c.endFrame()
}

func (c *Context) beginFrame(raw RawInput) {
	c.ppp = raw.PixelsPerPoint
	if c.ppp <= 0 {
		c.ppp = 1
	}
	c.text.beginFrame(c.ppp)

	c.in = frameInput{screen: raw.ScreenRect}
	for _, ev := range raw.Events {
		switch ev := ev.(type) {
		case PointerMovedEvent:
			c.pointer = ev.Pos
			c.hasPointer = true
		case PointerButtonEvent:
			c.pointer = ev.Pos
			c.hasPointer = true
			if ev.Button != PointerPrimary {
				continue
			}
			if ev.Pressed {
				c.in.pressed = true
				c.primaryDown = true
				c.pressPos = ev.Pos
			} else {
				c.in.released = true
				c.in.releasePos = ev.Pos
				c.primaryDown = false
			}
		case PointerGoneEvent:
			c.hasPointer = false
		case ScrollEvent:
			c.in.scroll = c.in.scroll.Add(ev.Delta)
		case KeyEvent:
			if ev.Pressed {
				c.in.keysPressed = append(c.in.keysPressed, ev.Key)
			}
		}
	}
	c.in.pointer = c.pointer
	c.in.hasPointer = c.hasPointer
	c.in.primaryDown = c.primaryDown

	for i := range c.layers {
		c.layers[i] = c.layers[i][:0]
	}
	c.areas = c.areas[:0]
	c.menuHit = false
	c.repaint = false
	c.cursor = gpucontext.CursorDefault
	c.contentTop = c.in.screen.Min.Y
}

func (c *Context) endFrame() FullOutput {
	if c.openMenu != "" && c.in.interacted() {
		if (c.in.released && !c.menuHit) || c.in.keyPressed(gpucontext.KeyEscape) {
			c.openMenu = ""
			c.repaint = true
		}
	}
	c.prevAreas = append(c.prevAreas[:0], c.areas...)

	var n int
	for _, l := range c.layers {
		n += len(l)
	}
	shapes := make([]ClippedShape, 0, n)
	for _, l := range c.layers {
		shapes = append(shapes, l...)
	}

	out := FullOutput{
		Shapes:         shapes,
		PixelsPerPoint: c.ppp,
		NeedsRepaint:   c.repaint,
		Cursor:         c.cursor,
	}
	if d, ok := c.text.atlas.takeDelta(); ok {
		out.TexturesDelta.Set = append(out.TexturesDelta.Set, TextureUpdate{ID: FontTexture, Delta: d})
	}
	c.text.endFrame()
	return out
}

// InvalidateTextures makes the next frame carry every texture of the
// context as a whole update. Call it when the renderer lost a texture.
func (c *Context) InvalidateTextures() {
	c.text.atlas.Invalidate()
}

// WantsPointerAt reports whether a pointer event at p belongs to the UI:
// p is over a UI area of the last frame, or a menu is open and will close
// on the next click.
func (c *Context) WantsPointerAt(p Pos2) bool {
	if c.openMenu != "" {
		return true
	}
	for _, a := range c.prevAreas {
		if a.rect.Contains(p) {
			return true
		}
	}
	return false
}

// WantsKeyboard reports whether the UI uses keyboard input. An open menu
// takes Escape.
func (c *Context) WantsKeyboard() bool {
	return c.openMenu != ""
}

// IsMenuOpen reports whether any menu is open.
func (c *Context) IsMenuOpen() bool {
	return c.openMenu != ""
}

// ScreenRect returns the drawable area of the current frame in points.
func (c *Context) ScreenRect() Rect {
	return c.in.screen
}

// PixelsPerPoint returns the scale of the current frame.
func (c *Context) PixelsPerPoint() float32 {
	return c.ppp
}

// RequestRepaint asks for another frame.
func (c *Context) RequestRepaint() {
	c.repaint = true
}

func (c *Context) add(layer Layer, clip Rect, s Shape) {
	c.layers[layer] = append(c.layers[layer], ClippedShape{ClipRect: clip, Shape: s})
}

// reserve adds a placeholder shape and returns its index, so that a
// background can be painted below content whose size is not known yet.
func (c *Context) reserve(layer Layer, clip Rect) int {
	c.layers[layer] = append(c.layers[layer], ClippedShape{ClipRect: clip, Shape: RectShape{}})
	return len(c.layers[layer]) - 1
}

func (c *Context) fill(layer Layer, index int, s Shape) {
	c.layers[layer][index].Shape = s
}

// occluded reports whether p was covered by an area above layer in the
// last frame.
func (c *Context) occluded(p Pos2, layer Layer) bool {
	for _, a := range c.prevAreas {
		if a.layer > layer && a.rect.Contains(p) {
			return true
		}
	}
	return false
}

// interact computes the response of a widget covering rect.
func (c *Context) interact(rect Rect, layer Layer) Response {
	r := Response{Rect: rect}
	if c.in.hasPointer && rect.Contains(c.in.pointer) && !c.occluded(c.in.pointer, layer) {
		r.Hovered = true
		c.cursor = gpucontext.CursorPointer
	}
	if c.in.released && rect.Contains(c.in.releasePos) && rect.Contains(c.pressPos) &&
		!c.occluded(c.in.releasePos, layer) {
		r.Clicked = true
	}
	return r
}

func (c *Context) lineHeight() float32 {
	return c.text.layout(" ", c.style.TextSize).Size.Y
}
