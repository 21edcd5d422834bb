// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface manages the GPU presentation surface of a window.
//
// A Manager owns the adapter, device and swap chain surface of one window
// together with the current presentation configuration (size, format,
// present mode, alpha mode and in-flight frame budget). It exposes three
// operations to the frame loop:
//
//   - New negotiates an adapter and device and configures the surface
//   - Acquire returns the next FrameTarget or a classified AcquireError
//   - Reconfigure applies a new size, ignoring zero dimensions
//
// # Acquisition failures
//
// Every acquisition failure is classified into one of four kinds, and each
// kind maps to exactly one recovery action:
//
//	KindLost        -> ActionReconfigure
//	KindOutdated    -> ActionReconfigure
//	KindTimeout     -> ActionSkip
//	KindOutOfMemory -> ActionExit
//
// # Usage
//
//	m, err := surface.New(ctx, instance, handle, w, h)
//	if err != nil {
//	    log.Fatal(err) // no adapter or device: unrecoverable
//	}
//	defer m.Release()
//
//	target, err := m.Acquire()
//	var aerr *surface.AcquireError
//	if errors.As(err, &aerr) && aerr.Kind.Action() == surface.ActionReconfigure {
//	    fw, fh := win.FramebufferSize()
//	    m.Reconfigure(uint32(fw), uint32(fh))
//	}
package surface
