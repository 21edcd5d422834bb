// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// shelfAllocator packs rectangles into horizontal shelves. Each shelf is as
// tall as the tallest item placed on it; items go left to right until the
// shelf is full, then a new shelf starts below.
type shelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf
}

type shelf struct {
	y      int // top of the shelf
	height int // tallest item so far
	x      int // next free column
}

func newShelfAllocator(width, height, padding int) *shelfAllocator {
	return &shelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate returns the top-left corner of a free w x h region.
func (a *shelfAllocator) allocate(w, h int) (x, y int, ok bool) {
	pw := w + a.padding
	ph := h + a.padding
	if pw > a.width {
		return -1, -1, false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+pw > a.width {
			continue
		}
		if h > s.height {
			// Only the last shelf can grow, and only into free space.
			if i != len(a.shelves)-1 || s.y+ph > a.height {
				continue
			}
			s.height = h
		}
		x, y = s.x, s.y
		s.x += pw
		return x, y, true
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height + a.padding
	}
	if newY+ph > a.height {
		return -1, -1, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: pw})
	return 0, newY, true
}

func (a *shelfAllocator) reset() {
	a.shelves = a.shelves[:0]
}
