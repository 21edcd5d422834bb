// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrInvalidShader is returned when WGSL fails naga validation or lacks
	// a required entry point.
	ErrInvalidShader = errors.New("render: invalid shader")

	// ErrUnknownTexture is returned when a mesh or a partial texture update
	// names a texture that was never created.
	ErrUnknownTexture = errors.New("render: unknown texture")

	// ErrTexturesLost is returned by Pass when the frame was presented
	// without some UI textures: an upload failed or a mesh named a texture
	// the renderer does not have. The UI must send those textures again
	// as whole updates.
	ErrTexturesLost = errors.New("render: ui textures lost")

	// ErrReleased is returned by a compositor after Release.
	ErrReleased = errors.New("render: compositor released")
)
