// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// Response tells what the user did with a widget this frame.
type Response struct {
	Rect    Rect
	Hovered bool
	Clicked bool
}

// Ui places widgets one after another inside a panel, window or popup.
type Ui struct {
	ctx   *Context
	layer Layer
	clip  Rect

	cursor     Pos2
	horizontal bool
	// itemWidth is the minimum width of items in a vertical layout.
	itemWidth float32

	menuBar bool
	menu    bool

	// naturalWidth is the widest item as measured without itemWidth.
	naturalWidth float32
	bounds       Rect
}

// Context returns the context the Ui belongs to.
func (u *Ui) Context() *Context {
	return u.ctx
}

func (u *Ui) allocate(size Vec2) Rect {
	r := RectFromMinSize(u.cursor, size)
	sp := u.ctx.style.ItemSpacing
	if u.horizontal {
		u.cursor.X += size.X + sp.X
	} else {
		u.cursor.Y += size.Y + sp.Y
	}
	u.bounds = u.bounds.Union(r)
	return r
}

func (u *Ui) itemSize(natural Vec2) Vec2 {
	u.naturalWidth = max(u.naturalWidth, natural.X)
	if !u.horizontal {
		natural.X = max(natural.X, u.itemWidth)
	}
	return natural
}

// Label shows text.
func (u *Ui) Label(text string) Response {
	c := u.ctx
	g := c.text.layout(text, c.style.TextSize)
	pad := Vec2{0, c.style.ButtonPadding.Y}
	rect := u.allocate(u.itemSize(g.Size.Add(pad.Scale(2))))
	c.add(u.layer, u.clip, TextShape{Pos: rect.Min.Add(pad), Galley: g, Color: c.style.Visuals.Text})
	return Response{Rect: rect}
}

// Button shows a clickable button. Inside a menu a click also closes the
// menu.
func (u *Ui) Button(text string) Response {
	resp := u.button(text, false)
	if u.menu && resp.Clicked {
		u.ctx.openMenu = ""
		u.ctx.repaint = true
	}
	return resp
}

func (u *Ui) button(text string, selected bool) Response {
	c := u.ctx
	v := &c.style.Visuals
	g := c.text.layout(text, c.style.TextSize)
	pad := c.style.ButtonPadding
	rect := u.allocate(u.itemSize(g.Size.Add(pad.Scale(2))))
	resp := c.interact(rect, u.layer)

	flat := u.menu || u.menuBar
	switch {
	case selected:
		c.add(u.layer, u.clip, RectShape{Rect: rect, Fill: v.ActiveFill})
	case resp.Hovered:
		c.add(u.layer, u.clip, RectShape{Rect: rect, Fill: v.HoverFill})
	case !flat:
		c.add(u.layer, u.clip, RectShape{Rect: rect, Fill: v.ButtonFill, Stroke: v.Border})
	}
	color := v.Text
	if resp.Hovered || selected {
		color = v.TextStrong
	}
	textPos := Pos2{rect.Min.X + pad.X, rect.Min.Y + (rect.Height()-g.Size.Y)/2}
	c.add(u.layer, u.clip, TextShape{Pos: textPos, Galley: g, Color: color})
	return resp
}

// Separator draws a line across the layout.
func (u *Ui) Separator() {
	c := u.ctx
	sp := c.style.ItemSpacing
	if u.horizontal {
		h := c.lineHeight() + 2*c.style.ButtonPadding.Y
		r := u.allocate(Vec2{1, h})
		c.add(u.layer, u.clip, LineShape{A: Pos2{r.Min.X, r.Min.Y}, B: Pos2{r.Min.X, r.Max.Y}, Stroke: c.style.Visuals.Border})
		return
	}
	w := max(u.itemWidth, u.naturalWidth)
	r := u.allocate(Vec2{w, sp.Y})
	y := r.Min.Y + r.Height()/2
	c.add(u.layer, u.clip, LineShape{A: Pos2{r.Min.X, y}, B: Pos2{r.Min.X + w, y}, Stroke: c.style.Visuals.Border})
}

// Menu shows a menu button that opens a popup filled by add. While any
// menu of the bar is open, hovering another menu button switches to it.
func (u *Ui) Menu(title string, add func(*Ui)) Response {
	c := u.ctx
	id := "menu:" + title
	open := c.openMenu == id
	resp := u.button(title, open)
	switch {
	case resp.Clicked:
		if open {
			c.openMenu = ""
		} else {
			c.openMenu = id
		}
		c.repaint = true
	case resp.Hovered && c.openMenu != "" && !open && u.menuBar:
		c.openMenu = id
		c.repaint = true
	}
	if c.in.released && resp.Rect.Contains(c.in.releasePos) {
		c.menuHit = true
	}
	if c.openMenu == id {
		c.popup(id, Pos2{resp.Rect.Min.X, resp.Rect.Max.Y}, add)
	}
	return resp
}

// popup draws a menu body below the button. Its width is the widest item
// of the previous frame, so items are laid out once per frame and a
// change of width requests another frame.
func (c *Context) popup(id string, at Pos2, add func(*Ui)) {
	pad := c.style.WindowPadding / 2
	width := max(c.menuWidths[id], c.style.MenuMinWidth)
	clip := c.in.screen
	bg := c.reserve(LayerPopup, clip)

	u := &Ui{
		ctx:       c,
		layer:     LayerPopup,
		clip:      clip,
		cursor:    at.Add(Vec2{pad, pad}),
		itemWidth: width,
		menu:      true,
	}
	if add != nil {
		add(u)
	}
	if u.naturalWidth > width {
		c.repaint = true
	}
	c.menuWidths[id] = u.naturalWidth

	bottom := at.Y + pad
	if !u.bounds.IsEmpty() {
		bottom = u.bounds.Max.Y
	}
	frame := Rect{
		Min: at,
		Max: Pos2{at.X + max(width, u.naturalWidth) + 2*pad, bottom + pad},
	}
	c.fill(LayerPopup, bg, RectShape{Rect: frame, Fill: c.style.Visuals.PopupFill, Stroke: c.style.Visuals.Border})
	c.areas = append(c.areas, area{rect: frame, layer: LayerPopup})
	if c.in.released && frame.Contains(c.in.releasePos) {
		c.menuHit = true
	}
}

// MenuBar shows a bar across the top of the screen. Content placed after
// it starts below the bar.
func (c *Context) MenuBar(add func(*Ui)) Response {
	screen := c.in.screen
	pad := c.style.ItemSpacing
	h := c.lineHeight() + 2*c.style.ButtonPadding.Y + 2*pad.Y
	bar := Rect{Min: Pos2{screen.Min.X, c.contentTop}, Max: Pos2{screen.Max.X, c.contentTop + h}}

	c.add(LayerBackground, screen, RectShape{Rect: bar, Fill: c.style.Visuals.PanelFill})
	c.add(LayerBackground, screen, LineShape{
		A:      Pos2{bar.Min.X, bar.Max.Y},
		B:      Pos2{bar.Max.X, bar.Max.Y},
		Stroke: c.style.Visuals.Border,
	})
	c.areas = append(c.areas, area{rect: bar, layer: LayerBackground})

	u := &Ui{
		ctx:        c,
		layer:      LayerBackground,
		clip:       bar,
		cursor:     bar.Min.Add(pad),
		horizontal: true,
		menuBar:    true,
	}
	if add != nil {
		add(u)
	}
	c.contentTop = bar.Max.Y
	return Response{Rect: bar, Hovered: c.in.hasPointer && bar.Contains(c.in.pointer)}
}

// Window shows a floating window with a title bar. If open is not nil the
// window has a close button that sets *open to false, and nothing is shown
// while *open is false.
func (c *Context) Window(title string, open *bool, add func(*Ui)) Response {
	if open != nil && !*open {
		return Response{}
	}
	st := &c.style
	v := &st.Visuals
	pad := st.WindowPadding
	pos, ok := c.windowPos[title]
	if !ok {
		pos = Pos2{c.in.screen.Min.X + 4*pad, c.contentTop + 4*pad}
		c.windowPos[title] = pos
	}
	clip := c.in.screen
	bg := c.reserve(LayerWindow, clip)

	rowH := c.lineHeight() + 2*st.ButtonPadding.Y
	titleBar := Rect{Min: pos, Max: Pos2{pos.X + st.WindowWidth, pos.Y + rowH}}
	c.add(LayerWindow, clip, RectShape{Rect: titleBar, Fill: v.PanelFill})
	g := c.text.layout(title, st.TextSize)
	c.add(LayerWindow, clip, TextShape{
		Pos:    Pos2{titleBar.Min.X + pad, titleBar.Min.Y + (rowH-g.Size.Y)/2},
		Galley: g,
		Color:  v.TextStrong,
	})

	if open != nil {
		closeRect := Rect{Min: Pos2{titleBar.Max.X - rowH, titleBar.Min.Y}, Max: titleBar.Max}
		resp := c.interact(closeRect, LayerWindow)
		if resp.Hovered {
			c.add(LayerWindow, clip, RectShape{Rect: closeRect, Fill: v.HoverFill})
		}
		cross := closeRect.Shrink2(Vec2{rowH / 3, rowH / 3})
		stroke := Stroke{Width: 1.5, Color: v.Text}
		c.add(LayerWindow, clip, LineShape{A: cross.Min, B: cross.Max, Stroke: stroke})
		c.add(LayerWindow, clip, LineShape{A: Pos2{cross.Min.X, cross.Max.Y}, B: Pos2{cross.Max.X, cross.Min.Y}, Stroke: stroke})
		if resp.Clicked {
			*open = false
			c.repaint = true
		}
	}

	body := Rect{
		Min: Pos2{pos.X, titleBar.Max.Y},
		Max: Pos2{titleBar.Max.X, c.in.screen.Max.Y},
	}
	u := &Ui{
		ctx:    c,
		layer:  LayerWindow,
		clip:   body.Intersect(clip),
		cursor: body.Min.Add(Vec2{pad, pad}),
	}
	if add != nil {
		add(u)
	}
	bottom := body.Min.Y + 3*pad
	if !u.bounds.IsEmpty() {
		bottom = max(bottom, u.bounds.Max.Y+pad)
	}
	frame := Rect{Min: pos, Max: Pos2{titleBar.Max.X, bottom}}
	c.fill(LayerWindow, bg, RectShape{Rect: frame, Fill: v.WindowFill, Stroke: v.Border})
	c.areas = append(c.areas, area{rect: frame, layer: LayerWindow})

	return Response{Rect: frame, Hovered: c.in.hasPointer && frame.Contains(c.in.pointer)}
}
