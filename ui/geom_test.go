// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "testing"

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := Rect{Min: Pos2{0, 0}, Max: Pos2{10, 5}}
	tests := []struct {
		p    Pos2
		want bool
	}{
		{Pos2{0, 0}, true},
		{Pos2{9.9, 4.9}, true},
		{Pos2{10, 2}, false},
		{Pos2{2, 5}, false},
		{Pos2{-1, 2}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectIntersectUnion(t *testing.T) {
	a := Rect{Min: Pos2{0, 0}, Max: Pos2{10, 10}}
	b := Rect{Min: Pos2{5, 5}, Max: Pos2{20, 20}}

	if got, want := a.Intersect(b), (Rect{Min: Pos2{5, 5}, Max: Pos2{10, 10}}); got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	if got, want := a.Union(b), (Rect{Min: Pos2{0, 0}, Max: Pos2{20, 20}}); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %v, want %v", got, a)
	}

	far := Rect{Min: Pos2{30, 30}, Max: Pos2{40, 40}}
	if !a.Intersect(far).IsEmpty() {
		t.Error("disjoint intersection should be empty")
	}
}

func TestColor32Premultiplies(t *testing.T) {
	c := RGBAUnmultiplied(255, 128, 0, 128)
	if c[3] != 128 {
		t.Fatalf("alpha = %d, want 128", c[3])
	}
	if c[0] != 128 {
		t.Errorf("red = %d, want 128", c[0])
	}
	if c[2] != 0 {
		t.Errorf("blue = %d, want 0", c[2])
	}
	if !Transparent.IsTransparent() || Black.IsTransparent() {
		t.Error("IsTransparent mismatch")
	}
}
