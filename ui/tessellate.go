// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// Tessellate converts shapes into meshes. Consecutive shapes that share a
// clip rectangle are merged into one mesh. pixelsPerPoint is used to keep
// hairline strokes at least one physical pixel wide.
func Tessellate(shapes []ClippedShape, pixelsPerPoint float32) []ClippedPrimitive {
	if pixelsPerPoint <= 0 {
		pixelsPerPoint = 1
	}
	t := tessellator{minWidth: 1 / pixelsPerPoint}

	var out []ClippedPrimitive
	var cur *ClippedPrimitive
	for _, cs := range shapes {
		clip := cs.ClipRect
		if clip.IsEmpty() {
			continue
		}
		if cur == nil || cur.ClipRect != clip {
			if cur != nil && !cur.Mesh.IsEmpty() {
				out = append(out, *cur)
			}
			cur = &ClippedPrimitive{ClipRect: clip, Mesh: &Mesh{Texture: FontTexture}}
		}
		t.shape(cur.Mesh, cs.Shape)
	}
	if cur != nil && !cur.Mesh.IsEmpty() {
		out = append(out, *cur)
	}
	return out
}

type tessellator struct {
	minWidth float32
}

func (t *tessellator) shape(m *Mesh, s Shape) {
	switch s := s.(type) {
	case RectShape:
		t.rect(m, s)
	case LineShape:
		t.line(m, s.A, s.B, s.Stroke)
	case TextShape:
		t.text(m, s)
	}
}

func (t *tessellator) rect(m *Mesh, s RectShape) {
	if s.Rect.IsEmpty() {
		return
	}
	white := Rect{Min: whiteUV, Max: whiteUV}
	if !s.Fill.IsTransparent() {
		m.AddRectWithUV(s.Rect, white, s.Fill)
	}
	if s.Stroke.Width <= 0 || s.Stroke.Color.IsTransparent() {
		return
	}
	w := max(s.Stroke.Width, t.minWidth)
	r := s.Rect
	edges := [4]Rect{
		{Min: r.Min, Max: Pos2{r.Max.X, r.Min.Y + w}},
		{Min: Pos2{r.Min.X, r.Max.Y - w}, Max: r.Max},
		{Min: Pos2{r.Min.X, r.Min.Y + w}, Max: Pos2{r.Min.X + w, r.Max.Y - w}},
		{Min: Pos2{r.Max.X - w, r.Min.Y + w}, Max: Pos2{r.Max.X, r.Max.Y - w}},
	}
	for _, e := range edges {
		if !e.IsEmpty() {
			m.AddRectWithUV(e, white, s.Stroke.Color)
		}
	}
}

func (t *tessellator) line(m *Mesh, a, b Pos2, stroke Stroke) {
	if stroke.Width <= 0 || stroke.Color.IsTransparent() {
		return
	}
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	half := max(stroke.Width, t.minWidth) / 2
	n := Vec2{-d.Y / l * half, d.X / l * half}
	m.AddQuad(
		a.Add(n), b.Add(n),
		b.Add(n.Scale(-1)), a.Add(n.Scale(-1)),
		whiteUV, stroke.Color)
}

func (t *tessellator) text(m *Mesh, s TextShape) {
	if s.Galley == nil || s.Color.IsTransparent() {
		return
	}
	off := Vec2{s.Pos.X, s.Pos.Y}
	for _, g := range s.Galley.Glyphs {
		rect := Rect{Min: g.Rect.Min.Add(off), Max: g.Rect.Max.Add(off)}
		m.AddRectWithUV(rect, g.UV, s.Color)
	}
}
