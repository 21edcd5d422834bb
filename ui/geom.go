// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "math"

// Pos2 is a position in points.
type Pos2 struct {
	X, Y float32
}

// Vec2 is a 2D vector in points.
type Vec2 struct {
	X, Y float32
}

// Add returns p translated by v.
func (p Pos2) Add(v Vec2) Pos2 {
	return Pos2{p.X + v.X, p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Pos2) Sub(q Pos2) Vec2 {
	return Vec2{p.X - q.X, p.Y - q.Y}
}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Rect is an axis-aligned rectangle. Max is exclusive.
type Rect struct {
	Min, Max Pos2
}

// RectFromMinSize returns the rectangle at min with the given size.
func RectFromMinSize(min Pos2, size Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// RectEverything is larger than any screen.
var RectEverything = Rect{
	Min: Pos2{-math.MaxFloat32, -math.MaxFloat32},
	Max: Pos2{math.MaxFloat32, math.MaxFloat32},
}

// Width returns the width of r.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the height of r.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Size returns the size of r.
func (r Rect) Size() Vec2 { return Vec2{r.Width(), r.Height()} }

// Center returns the center of r.
func (r Rect) Center() Pos2 {
	return Pos2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool {
	return !(r.Max.X > r.Min.X && r.Max.Y > r.Min.Y)
}

// Contains reports whether p is inside r.
func (r Rect) Contains(p Pos2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the largest rectangle contained by both r and s. The
// result may be empty.
func (r Rect) Intersect(s Rect) Rect {
	return Rect{
		Min: Pos2{max(r.Min.X, s.Min.X), max(r.Min.Y, s.Min.Y)},
		Max: Pos2{min(r.Max.X, s.Max.X), min(r.Max.Y, s.Max.Y)},
	}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rect{
		Min: Pos2{min(r.Min.X, s.Min.X), min(r.Min.Y, s.Min.Y)},
		Max: Pos2{max(r.Max.X, s.Max.X), max(r.Max.Y, s.Max.Y)},
	}
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float32) Rect {
	return Rect{
		Min: Pos2{r.Min.X - d, r.Min.Y - d},
		Max: Pos2{r.Max.X + d, r.Max.Y + d},
	}
}

// Shrink2 shrinks r by v.X horizontally and v.Y vertically on each side.
func (r Rect) Shrink2(v Vec2) Rect {
	return Rect{
		Min: Pos2{r.Min.X + v.X, r.Min.Y + v.Y},
		Max: Pos2{r.Max.X - v.X, r.Max.Y - v.Y},
	}
}

// Color32 is an 8-bit sRGBA color with premultiplied alpha.
type Color32 [4]uint8

// Common colors.
var (
	Transparent = Color32{0, 0, 0, 0}
	Black       = Color32{0, 0, 0, 255}
	White       = Color32{255, 255, 255, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color32 {
	return Color32{r, g, b, 255}
}

// Gray returns an opaque gray of luminance l.
func Gray(l uint8) Color32 {
	return Color32{l, l, l, 255}
}

// RGBAUnmultiplied premultiplies r, g and b by a.
func RGBAUnmultiplied(r, g, b, a uint8) Color32 {
	mul := func(c uint8) uint8 {
		return uint8((uint32(c)*uint32(a) + 127) / 255)
	}
	return Color32{mul(r), mul(g), mul(b), a}
}

// A returns the alpha component.
func (c Color32) A() uint8 { return c[3] }

// IsTransparent reports whether c has no coverage.
func (c Color32) IsTransparent() bool { return c == Transparent }
