// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "errors"

var (
	// ErrNoAdapter is returned when neither a high performance nor a
	// fallback adapter can drive the surface.
	ErrNoAdapter = errors.New("surface: no compatible adapter")

	// ErrNoDevice is returned when the adapter refuses to open a device.
	ErrNoDevice = errors.New("surface: failed to create device")

	// ErrNoFormat is returned when the surface advertises no formats.
	ErrNoFormat = errors.New("surface: no supported surface format")

	// ErrTargetConsumed is returned when a FrameTarget is presented twice.
	ErrTargetConsumed = errors.New("surface: frame target already consumed")

	// ErrReleased is returned by operations on a released Manager.
	ErrReleased = errors.New("surface: manager released")
)
