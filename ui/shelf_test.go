// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "testing"

func TestShelfAllocatorPacksLeftToRight(t *testing.T) {
	a := newShelfAllocator(100, 100, 1)

	x, y, ok := a.allocate(10, 10)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first = (%d, %d, %v), want (0, 0, true)", x, y, ok)
	}
	x, y, ok = a.allocate(10, 8)
	if !ok || x != 11 || y != 0 {
		t.Fatalf("second = (%d, %d, %v), want (11, 0, true)", x, y, ok)
	}
}

func TestShelfAllocatorStartsNewShelf(t *testing.T) {
	a := newShelfAllocator(30, 100, 0)
	a.allocate(20, 10)
	x, y, ok := a.allocate(20, 10)
	if !ok || x != 0 || y != 10 {
		t.Fatalf("got (%d, %d, %v), want (0, 10, true)", x, y, ok)
	}
}

func TestShelfAllocatorFull(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"too wide", 101, 1},
		{"too tall", 1, 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newShelfAllocator(100, 100, 0)
			if _, _, ok := a.allocate(tt.w, tt.h); ok {
				t.Error("allocation should fail")
			}
		})
	}

	a := newShelfAllocator(10, 10, 0)
	if _, _, ok := a.allocate(10, 10); !ok {
		t.Fatal("exact fit should succeed")
	}
	if _, _, ok := a.allocate(1, 1); ok {
		t.Error("allocation in a full atlas should fail")
	}
	a.reset()
	if _, _, ok := a.allocate(1, 1); !ok {
		t.Error("allocation after reset should succeed")
	}
}
