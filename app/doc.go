// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package app drives the viewer: it turns window events into frames.
//
// # Overview
//
// The frame loop is a small state machine owned by [Controller]. It pulls
// one [event.Event] at a time from an [EventSource] and dispatches it:
//
//   - every event is first offered to the [UIAdapter], which decides
//     whether the overlay consumes it and whether it needs a repaint;
//   - a resize reconfigures the surface and requests a redraw;
//   - a redraw runs one UI frame, acquires the next surface image, and
//     hands it to the overlay compositor, which presents it;
//   - input the overlay did not consume goes to the [InputManager].
//
// Acquisition failures are recovered according to their kind: a lost or
// outdated surface is reconfigured, a timeout drops the frame, and out of
// memory stops the loop with an error wrapping [ErrOutOfMemory].
//
// # Commands
//
// Menu items never act on the window directly. They produce [Command]
// values that [ApplyCommands] applies after the UI frame, against the
// [AppState] and the window.
//
// # Threading
//
// Everything runs on the loop goroutine. The only other goroutine is the
// optional [ShaderWatcher], which publishes new shader source for the loop
// to pick up on its next redraw.
package app
