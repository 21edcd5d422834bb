// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"math"
	"testing"
)

var screen = Rect{Min: Pos2{0, 0}, Max: Pos2{800, 600}}

func TestTessellateRect(t *testing.T) {
	tests := []struct {
		name  string
		shape RectShape
		quads int
	}{
		{"fill", RectShape{Rect: Rect{Max: Pos2{10, 10}}, Fill: White}, 1},
		{"fill and stroke", RectShape{Rect: Rect{Max: Pos2{10, 10}}, Fill: White, Stroke: Stroke{Width: 1, Color: Black}}, 5},
		{"stroke only", RectShape{Rect: Rect{Max: Pos2{10, 10}}, Stroke: Stroke{Width: 1, Color: Black}}, 4},
		{"invisible", RectShape{Rect: Rect{Max: Pos2{10, 10}}}, 0},
		{"empty rect", RectShape{Fill: White}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prims := Tessellate([]ClippedShape{{ClipRect: screen, Shape: tt.shape}}, 1)
			var quads int
			for _, p := range prims {
				quads += len(p.Mesh.Indices) / 6
			}
			if quads != tt.quads {
				t.Errorf("quads = %d, want %d", quads, tt.quads)
			}
		})
	}
}

func TestTessellateUntexturedSamplesWhite(t *testing.T) {
	prims := Tessellate([]ClippedShape{
		{ClipRect: screen, Shape: RectShape{Rect: Rect{Max: Pos2{4, 4}}, Fill: Gray(10)}},
		{ClipRect: screen, Shape: LineShape{A: Pos2{0, 0}, B: Pos2{5, 0}, Stroke: Stroke{Width: 1, Color: White}}},
	}, 1)
	if len(prims) != 1 {
		t.Fatalf("primitives = %d, want 1", len(prims))
	}
	for i, v := range prims[0].Mesh.Vertices {
		if v.UV != whiteUV {
			t.Errorf("vertex %d UV = %v, want %v", i, v.UV, whiteUV)
		}
	}
	if prims[0].Mesh.Texture != FontTexture {
		t.Errorf("texture = %v, want font", prims[0].Mesh.Texture)
	}
}

func TestTessellateGroupsByClip(t *testing.T) {
	a := Rect{Max: Pos2{100, 100}}
	b := Rect{Min: Pos2{100, 0}, Max: Pos2{200, 100}}
	fill := func(clip Rect) ClippedShape {
		return ClippedShape{ClipRect: clip, Shape: RectShape{Rect: clip, Fill: White}}
	}

	prims := Tessellate([]ClippedShape{fill(a), fill(a), fill(b), fill(a), fill(Rect{})}, 1)
	if len(prims) != 3 {
		t.Fatalf("primitives = %d, want 3", len(prims))
	}
	want := []struct {
		clip  Rect
		quads int
	}{{a, 2}, {b, 1}, {a, 1}}
	for i, w := range want {
		if prims[i].ClipRect != w.clip {
			t.Errorf("primitive %d clip = %v, want %v", i, prims[i].ClipRect, w.clip)
		}
		if got := len(prims[i].Mesh.Indices) / 6; got != w.quads {
			t.Errorf("primitive %d quads = %d, want %d", i, got, w.quads)
		}
	}
}

func TestTessellateHairlineKeepsOnePixel(t *testing.T) {
	line := LineShape{A: Pos2{0, 10}, B: Pos2{10, 10}, Stroke: Stroke{Width: 0.1, Color: White}}
	for _, ppp := range []float32{1, 2} {
		prims := Tessellate([]ClippedShape{{ClipRect: screen, Shape: line}}, ppp)
		if len(prims) != 1 {
			t.Fatalf("ppp %v: primitives = %d, want 1", ppp, len(prims))
		}
		v := prims[0].Mesh.Vertices
		width := v[0].Pos.Y - v[3].Pos.Y
		if got, want := float32(math.Abs(float64(width))), 1/ppp; math.Abs(float64(got-want)) > 1e-5 {
			t.Errorf("ppp %v: width = %v points, want %v", ppp, got, want)
		}
	}
}

func TestTessellateTextOffsetsGlyphs(t *testing.T) {
	g := &Galley{Glyphs: []GlyphQuad{{
		Rect: Rect{Min: Pos2{1, 2}, Max: Pos2{5, 10}},
		UV:   Rect{Min: Pos2{0.5, 0.5}, Max: Pos2{0.6, 0.6}},
	}}}
	prims := Tessellate([]ClippedShape{{ClipRect: screen, Shape: TextShape{Pos: Pos2{100, 50}, Galley: g, Color: White}}}, 1)
	if len(prims) != 1 || len(prims[0].Mesh.Vertices) != 4 {
		t.Fatalf("unexpected tessellation %+v", prims)
	}
	v := prims[0].Mesh.Vertices
	if v[0].Pos != (Pos2{101, 52}) || v[3].Pos != (Pos2{105, 60}) {
		t.Errorf("glyph quad = %v..%v, want (101,52)..(105,60)", v[0].Pos, v[3].Pos)
	}
	if v[0].UV != (Pos2{0.5, 0.5}) {
		t.Errorf("UV = %v, want (0.5,0.5)", v[0].UV)
	}
}
