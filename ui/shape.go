// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// Stroke is an outline style. A zero Width draws nothing.
type Stroke struct {
	Width float32
	Color Color32
}

// Shape is something the tessellator can turn into triangles.
type Shape interface {
	isShape()
}

// RectShape is a filled and optionally outlined rectangle.
type RectShape struct {
	Rect   Rect
	Fill   Color32
	Stroke Stroke
}

// LineShape is a straight line segment.
type LineShape struct {
	A, B   Pos2
	Stroke Stroke
}

// TextShape draws a laid out galley with its top-left corner at Pos.
type TextShape struct {
	Pos    Pos2
	Galley *Galley
	Color  Color32
}

func (RectShape) isShape() {}
func (LineShape) isShape() {}
func (TextShape) isShape() {}

// ClippedShape is a shape with the rectangle it is clipped to.
type ClippedShape struct {
	ClipRect Rect
	Shape    Shape
}
