// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/rayview/internal/gpucore"
)

// Kind classifies a frame acquisition failure.
type Kind int

const (
	// KindLost means the surface was lost and must be reconfigured.
	KindLost Kind = iota

	// KindOutdated means the surface no longer matches the window.
	KindOutdated

	// KindTimeout means no image became available in time.
	KindTimeout

	// KindOutOfMemory means the device ran out of memory.
	KindOutOfMemory
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindLost:
		return "Lost"
	case KindOutdated:
		return "Outdated"
	case KindTimeout:
		return "Timeout"
	case KindOutOfMemory:
		return "OutOfMemory"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Action is the recovery the frame loop takes for a Kind.
type Action int

const (
	// ActionReconfigure reconfigures the surface at the current window
	// size and skips the frame.
	ActionReconfigure Action = iota

	// ActionSkip drops the frame without any state change.
	ActionSkip

	// ActionExit stops the frame loop.
	ActionExit
)

// String returns the string representation of Action.
func (a Action) String() string {
	switch a {
	case ActionReconfigure:
		return "Reconfigure"
	case ActionSkip:
		return "Skip"
	case ActionExit:
		return "Exit"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// Action returns the recovery action for k.
func (k Kind) Action() Action {
	switch k {
	case KindLost, KindOutdated:
		return ActionReconfigure
	case KindTimeout:
		return ActionSkip
	case KindOutOfMemory:
		return ActionExit
	default:
		return ActionReconfigure
	}
}

// AcquireError is returned by Manager.Acquire.
type AcquireError struct {
	Kind Kind
	Err  error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("surface: acquire failed (%s): %v", e.Kind, e.Err)
}

func (e *AcquireError) Unwrap() error { return e.Err }

// Classify maps a backend acquisition error to a Kind. Errors that match
// none of the gpucore sentinels are treated as a lost surface, so that the
// frame loop always recovers by reconfiguring.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, gpucore.ErrOutOfMemory):
		return KindOutOfMemory
	case errors.Is(err, gpucore.ErrTimeout):
		return KindTimeout
	case errors.Is(err, gpucore.ErrSurfaceOutdated):
		return KindOutdated
	default:
		return KindLost
	}
}

// FrameTarget is one acquired presentable image. It is consumed by exactly
// one render pass and must be either presented or discarded.
type FrameTarget struct {
	frame  gpucore.SurfaceFrame
	width  uint32
	height uint32
	done   bool
}

// NewFrameTarget wraps an acquired frame of the given size.
func NewFrameTarget(frame gpucore.SurfaceFrame, width, height uint32) *FrameTarget {
	return &FrameTarget{frame: frame, width: width, height: height}
}

// View returns the render attachment view of the image.
func (t *FrameTarget) View() gpucore.TextureViewID {
	return t.frame.View()
}

// Size returns the image size in pixels.
func (t *FrameTarget) Size() (width, height uint32) {
	return t.width, t.height
}

// Present queues the image for display. A target can be presented once.
func (t *FrameTarget) Present() error {
	if t.done {
		return ErrTargetConsumed
	}
	t.done = true
	if err := t.frame.Present(); err != nil {
		return fmt.Errorf("surface: present: %w", err)
	}
	return nil
}

// Discard returns the image without presenting it. Discarding a consumed
// target is a no-op.
func (t *FrameTarget) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.frame.Discard()
}
