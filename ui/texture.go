// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "fmt"

// TextureID names a texture managed by the UI. The font atlas is always
// FontTexture.
type TextureID uint64

// FontTexture is the font atlas texture. It also holds the white texel
// that untextured shapes sample.
const FontTexture TextureID = 0

// ImageData is an RGBA image with premultiplied alpha.
type ImageData struct {
	Width, Height int
	Pixels        []Color32
}

// NewImageData returns a transparent image.
func NewImageData(width, height int) ImageData {
	return ImageData{Width: width, Height: height, Pixels: make([]Color32, width*height)}
}

// Bytes returns the pixels as tightly packed RGBA bytes.
func (img ImageData) Bytes() []byte {
	out := make([]byte, 0, len(img.Pixels)*4)
	for _, p := range img.Pixels {
		out = append(out, p[0], p[1], p[2], p[3])
	}
	return out
}

// SubImage copies the w x h region at (x, y).
func (img ImageData) SubImage(x, y, w, h int) ImageData {
	sub := NewImageData(w, h)
	for row := 0; row < h; row++ {
		src := (y+row)*img.Width + x
		copy(sub.Pixels[row*w:(row+1)*w], img.Pixels[src:src+w])
	}
	return sub
}

// ImageDelta is a change to one texture.
type ImageDelta struct {
	Image ImageData

	// Pos is the top-left corner of a partial update. A nil Pos replaces
	// the whole texture, possibly with a new size.
	Pos *[2]int
}

// IsWhole reports whether the delta replaces the whole texture.
func (d ImageDelta) IsWhole() bool { return d.Pos == nil }

// TextureUpdate pairs a delta with its texture.
type TextureUpdate struct {
	ID    TextureID
	Delta ImageDelta
}

// TexturesDelta lists the texture changes of one frame. Set is applied
// before drawing, Free after.
type TexturesDelta struct {
	Set  []TextureUpdate
	Free []TextureID
}

// IsEmpty reports whether there is nothing to apply.
func (d *TexturesDelta) IsEmpty() bool {
	return len(d.Set) == 0 && len(d.Free) == 0
}

// Append adds the changes of other after those of d.
func (d *TexturesDelta) Append(other TexturesDelta) {
	d.Set = append(d.Set, other.Set...)
	d.Free = append(d.Free, other.Free...)
}

func (id TextureID) String() string {
	if id == FontTexture {
		return "font"
	}
	return fmt.Sprintf("user:%d", uint64(id))
}
