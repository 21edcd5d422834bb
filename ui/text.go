// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/rayview"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Galley is one shaped line of text ready to draw.
type Galley struct {
	Text string

	// Size is the extent of the line in points.
	Size Vec2

	// Glyphs are positioned relative to the top-left corner of the galley.
	Glyphs []GlyphQuad
}

// GlyphQuad is one glyph: where it goes, in points, and where it is in the
// font atlas.
type GlyphQuad struct {
	Rect Rect
	UV   Rect
}

type galleyKey struct {
	text string
	size float32
}

type cachedGalley struct {
	galley *Galley
	frame  uint64
}

// textLayouter shapes strings with HarfBuzz and places their glyphs in the
// atlas. Galleys are cached per text and size until unused for a frame.
type textLayouter struct {
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	atlas  *FontAtlas
	lang   language.Language

	ppp   float32
	frame uint64
	cache map[galleyKey]cachedGalley
}

func newTextLayouter(ttf []byte) (*textLayouter, error) {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("ui: parse font for shaping: %w", err)
	}
	atlas, err := NewFontAtlas(ttf)
	if err != nil {
		return nil, err
	}
	return &textLayouter{
		face:  face,
		atlas: atlas,
		lang:  language.NewLanguage("en"),
		ppp:   1,
		cache: make(map[galleyKey]cachedGalley),
	}, nil
}

// beginFrame sets the pixel scale. A new scale invalidates every glyph.
func (l *textLayouter) beginFrame(ppp float32) {
	l.frame++
	if ppp != l.ppp {
		l.ppp = ppp
		l.atlas.Clear()
		clear(l.cache)
	}
}

// endFrame drops galleys that were not used this frame.
func (l *textLayouter) endFrame() {
	for k, c := range l.cache {
		if c.frame != l.frame {
			delete(l.cache, k)
		}
	}
}

// layout shapes text at size points.
func (l *textLayouter) layout(text string, size float32) *Galley {
	key := galleyKey{text: text, size: size}
	if c, ok := l.cache[key]; ok {
		c.frame = l.frame
		l.cache[key] = c
		return c.galley
	}
	g := l.shape(text, size)
	l.cache[key] = cachedGalley{galley: g, frame: l.frame}
	return g
}

func (l *textLayouter) shape(text string, size float32) *Galley {
	px := size * l.ppp
	runes := []rune(text)
	script := language.Latin
	for _, r := range runes {
		if r != ' ' {
			script = language.LookupScript(r)
			break
		}
	}
	out := l.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      l.face,
		Size:      fixed.Int26_6(px * 64),
		Script:    script,
		Language:  l.lang,
	})

	ascent := fixedToFloat(out.LineBounds.Ascent)
	height := fixedToFloat(out.LineBounds.LineThickness())
	baseline := float32(math.Round(float64(ascent)))

	g := &Galley{Text: text}
	var pen float32
	for _, sg := range out.Glyphs {
		if sg.GlyphID <= math.MaxUint16 {
			l.placeGlyph(g, sfnt.GlyphIndex(sg.GlyphID), px,
				pen+fixedToFloat(sg.XOffset), baseline-fixedToFloat(sg.YOffset))
		}
		pen += fixedToFloat(sg.Advance)
	}
	g.Size = Vec2{pen / l.ppp, height / l.ppp}
	return g
}

func (l *textLayouter) placeGlyph(g *Galley, gid sfnt.GlyphIndex, px, x, y float32) {
	ag, err := l.atlas.glyph(gid, px)
	if err != nil {
		rayview.Logger().Debug("ui: glyph dropped", "glyph", gid, "px", px, "err", err)
		return
	}
	if ag.bounds.Empty() {
		return
	}
	ox := float32(math.Round(float64(x)))
	lo := Pos2{(ox + float32(ag.bounds.Min.X)) / l.ppp, (y + float32(ag.bounds.Min.Y)) / l.ppp}
	hi := Pos2{(ox + float32(ag.bounds.Max.X)) / l.ppp, (y + float32(ag.bounds.Max.Y)) / l.ppp}
	g.Glyphs = append(g.Glyphs, GlyphQuad{Rect: Rect{Min: lo, Max: hi}, UV: ag.uv})
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
