// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// Vertex is one mesh vertex. Pos is in points, UV is normalized texture
// coordinates and Color is premultiplied sRGBA.
type Vertex struct {
	Pos   Pos2
	UV    Pos2
	Color Color32
}

// Mesh is an indexed triangle list over one texture.
type Mesh struct {
	Indices  []uint32
	Vertices []Vertex
	Texture  TextureID
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// AddRectWithUV appends a quad covering rect that samples uv.
func (m *Mesh) AddRectWithUV(rect, uv Rect, color Color32) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: rect.Min, UV: uv.Min, Color: color},
		Vertex{Pos: Pos2{rect.Max.X, rect.Min.Y}, UV: Pos2{uv.Max.X, uv.Min.Y}, Color: color},
		Vertex{Pos: Pos2{rect.Min.X, rect.Max.Y}, UV: Pos2{uv.Min.X, uv.Max.Y}, Color: color},
		Vertex{Pos: rect.Max, UV: uv.Max, Color: color},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+1, base+3)
}

// AddQuad appends the convex quad a b c d (in order) with a solid color.
func (m *Mesh) AddQuad(a, b, c, d Pos2, uv Pos2, color Color32) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: a, UV: uv, Color: color},
		Vertex{Pos: b, UV: uv, Color: color},
		Vertex{Pos: c, UV: uv, Color: color},
		Vertex{Pos: d, UV: uv, Color: color},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// ClippedPrimitive is a mesh with the rectangle, in points, it is clipped to.
type ClippedPrimitive struct {
	ClipRect Rect
	Mesh     *Mesh
}
