// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// AtlasSize is the width and height of the font atlas in texels.
const AtlasSize = 1024

// whiteUV samples the white block reserved at the atlas origin.
var whiteUV = Pos2{1.0 / AtlasSize, 1.0 / AtlasSize}

// ErrAtlasFull is returned when a glyph no longer fits in the atlas.
var ErrAtlasFull = errors.New("ui: font atlas full")

// glyphKey identifies a rasterized glyph: glyph index and pixel size in
// quarter pixels.
type glyphKey struct {
	gid  sfnt.GlyphIndex
	size uint32
}

// atlasGlyph is a glyph placed in the atlas. Bounds are in pixels relative
// to the pen position on the baseline.
type atlasGlyph struct {
	bounds image.Rectangle
	uv     Rect
}

// FontAtlas rasterizes glyphs into one RGBA texture and tracks the region
// that changed since the last delta.
type FontAtlas struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	image  ImageData
	alloc  *shelfAllocator
	glyphs map[glyphKey]atlasGlyph

	dirty image.Rectangle
	// sent is false until the whole atlas has been delivered once.
	sent bool
}

// NewFontAtlas returns an atlas for the TrueType font data.
func NewFontAtlas(ttf []byte) (*FontAtlas, error) {
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("ui: parse font: %w", err)
	}
	a := &FontAtlas{
		font:   f,
		image:  NewImageData(AtlasSize, AtlasSize),
		alloc:  newShelfAllocator(AtlasSize, AtlasSize, 1),
		glyphs: make(map[glyphKey]atlasGlyph),
	}
	a.reserveWhite()
	return a, nil
}

func (a *FontAtlas) reserveWhite() {
	x, y, _ := a.alloc.allocate(2, 2)
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			a.image.Pixels[(y+dy)*AtlasSize+x+dx] = White
		}
	}
	a.markDirty(image.Rect(x, y, x+2, y+2))
}

func (a *FontAtlas) markDirty(r image.Rectangle) {
	a.dirty = a.dirty.Union(r)
}

// glyph returns the atlas entry of gid at sizePx pixels per em,
// rasterizing it on first use.
func (a *FontAtlas) glyph(gid sfnt.GlyphIndex, sizePx float32) (atlasGlyph, error) {
	key := glyphKey{gid: gid, size: uint32(math.Round(float64(sizePx) * 4))}
	if g, ok := a.glyphs[key]; ok {
		return g, nil
	}
	ppem := fixed.Int26_6(key.size * 16) // quarter pixels to 26.6
	segs, err := a.font.LoadGlyph(&a.buf, gid, ppem, nil)
	if err != nil {
		return atlasGlyph{}, fmt.Errorf("ui: load glyph %d: %w", gid, err)
	}
	if len(segs) == 0 {
		// Whitespace has an advance but no outline.
		a.glyphs[key] = atlasGlyph{}
		return atlasGlyph{}, nil
	}

	fb := segs.Bounds()
	bounds := image.Rect(fb.Min.X.Floor(), fb.Min.Y.Floor(), fb.Max.X.Ceil(), fb.Max.Y.Ceil())
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		a.glyphs[key] = atlasGlyph{}
		return atlasGlyph{}, nil
	}

	x, y, ok := a.alloc.allocate(w, h)
	if !ok {
		return atlasGlyph{}, ErrAtlasFull
	}

	mask := rasterize(segs, bounds)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := mask.Pix[row*mask.Stride+col]
			a.image.Pixels[(y+row)*AtlasSize+x+col] = Color32{c, c, c, c}
		}
	}
	a.markDirty(image.Rect(x, y, x+w, y+h))

	g := atlasGlyph{
		bounds: bounds,
		uv: Rect{
			Min: Pos2{float32(x) / AtlasSize, float32(y) / AtlasSize},
			Max: Pos2{float32(x+w) / AtlasSize, float32(y+h) / AtlasSize},
		},
	}
	a.glyphs[key] = g
	return g, nil
}

// rasterize fills the outline into an alpha mask covering bounds.
func rasterize(segs sfnt.Segments, bounds image.Rectangle) *image.Alpha {
	ox := float32(bounds.Min.X)
	oy := float32(bounds.Min.Y)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - ox, float32(p.Y)/64 - oy
	}

	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			r.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			r.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	r.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// takeDelta returns the atlas changes since the previous call. The first
// delta carries the whole atlas; later ones carry the dirty region only.
func (a *FontAtlas) takeDelta() (ImageDelta, bool) {
	if !a.sent {
		a.sent = true
		a.dirty = image.Rectangle{}
		return ImageDelta{Image: a.image.SubImage(0, 0, AtlasSize, AtlasSize)}, true
	}
	if a.dirty.Empty() {
		return ImageDelta{}, false
	}
	d := a.dirty
	a.dirty = image.Rectangle{}
	return ImageDelta{
		Image: a.image.SubImage(d.Min.X, d.Min.Y, d.Dx(), d.Dy()),
		Pos:   &[2]int{d.Min.X, d.Min.Y},
	}, true
}

// Invalidate schedules a full upload of the atlas without dropping any
// glyph. It is used when the renderer lost the texture.
func (a *FontAtlas) Invalidate() {
	a.sent = false
}

// Clear drops every glyph and schedules a full upload. It is used when the
// pixel scale changes.
func (a *FontAtlas) Clear() {
	clear(a.image.Pixels)
	clear(a.glyphs)
	a.alloc.reset()
	a.reserveWhite()
	a.sent = false
}
