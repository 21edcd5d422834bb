// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func newTestAtlas(t *testing.T) *FontAtlas {
	t.Helper()
	a, err := NewFontAtlas(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontAtlas: %v", err)
	}
	return a
}

func glyphIndex(t *testing.T, a *FontAtlas, r rune) sfnt.GlyphIndex {
	t.Helper()
	gid, err := a.font.GlyphIndex(&a.buf, r)
	if err != nil || gid == 0 {
		t.Fatalf("GlyphIndex(%q) = %d, %v", r, gid, err)
	}
	return gid
}

func TestFontAtlasFirstDeltaIsWhole(t *testing.T) {
	a := newTestAtlas(t)

	d, ok := a.takeDelta()
	if !ok {
		t.Fatal("first takeDelta returned nothing")
	}
	if !d.IsWhole() {
		t.Error("first delta should replace the whole texture")
	}
	if d.Image.Width != AtlasSize || d.Image.Height != AtlasSize {
		t.Errorf("size = %dx%d, want %dx%d", d.Image.Width, d.Image.Height, AtlasSize, AtlasSize)
	}
	if d.Image.Pixels[0] != White {
		t.Errorf("texel (0,0) = %v, want white", d.Image.Pixels[0])
	}
	if _, ok := a.takeDelta(); ok {
		t.Error("second takeDelta should be empty")
	}
}

func TestFontAtlasGlyphProducesPartialDelta(t *testing.T) {
	a := newTestAtlas(t)
	a.takeDelta()

	g, err := a.glyph(glyphIndex(t, a, 'A'), 20)
	if err != nil {
		t.Fatalf("glyph: %v", err)
	}
	if g.bounds.Empty() {
		t.Fatal("glyph 'A' has empty bounds")
	}
	if g.bounds.Max.Y > 1 || g.bounds.Min.Y >= 0 {
		t.Errorf("bounds %v should sit above the baseline", g.bounds)
	}

	d, ok := a.takeDelta()
	if !ok {
		t.Fatal("no delta after rasterizing a glyph")
	}
	if d.IsWhole() {
		t.Fatal("delta should be partial")
	}
	if d.Image.Width != g.bounds.Dx() || d.Image.Height != g.bounds.Dy() {
		t.Errorf("delta size = %dx%d, want %dx%d", d.Image.Width, d.Image.Height, g.bounds.Dx(), g.bounds.Dy())
	}
	var covered bool
	for _, p := range d.Image.Pixels {
		if p[3] > 0 {
			covered = true
			break
		}
	}
	if !covered {
		t.Error("rasterized glyph has no coverage")
	}

	again, err := a.glyph(glyphIndex(t, a, 'A'), 20)
	if err != nil || again != g {
		t.Errorf("cached glyph = %+v, %v; want %+v", again, err, g)
	}
	if _, ok := a.takeDelta(); ok {
		t.Error("cached glyph should not produce a delta")
	}
}

func TestFontAtlasSpaceHasNoOutline(t *testing.T) {
	a := newTestAtlas(t)
	g, err := a.glyph(glyphIndex(t, a, ' '), 20)
	if err != nil {
		t.Fatalf("glyph: %v", err)
	}
	if !g.bounds.Empty() {
		t.Errorf("space bounds = %v, want empty", g.bounds)
	}
}

func TestFontAtlasClearResendsWhole(t *testing.T) {
	a := newTestAtlas(t)
	a.takeDelta()
	if _, err := a.glyph(glyphIndex(t, a, 'B'), 16); err != nil {
		t.Fatal(err)
	}
	a.Clear()

	d, ok := a.takeDelta()
	if !ok || !d.IsWhole() {
		t.Fatalf("after Clear: ok=%v whole=%v, want a whole delta", ok, d.IsWhole())
	}
	if len(a.glyphs) != 0 {
		t.Errorf("glyphs = %d, want 0", len(a.glyphs))
	}
	if d.Image.Pixels[0] != White {
		t.Error("white block missing after Clear")
	}
}

func TestFontAtlasInvalidateKeepsGlyphs(t *testing.T) {
	a := newTestAtlas(t)
	a.takeDelta()
	if _, err := a.glyph(glyphIndex(t, a, 'B'), 16); err != nil {
		t.Fatal(err)
	}
	glyphs := len(a.glyphs)
	a.Invalidate()

	d, ok := a.takeDelta()
	if !ok || !d.IsWhole() {
		t.Fatalf("after Invalidate: ok=%v whole=%v, want a whole delta", ok, d.IsWhole())
	}
	if len(a.glyphs) != glyphs {
		t.Errorf("glyphs = %d, want %d", len(a.glyphs), glyphs)
	}
	if _, ok := a.takeDelta(); ok {
		t.Error("second delta after the whole upload should be empty")
	}
}
