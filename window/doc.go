// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window opens the viewer window with GLFW and turns its
// callbacks into event.Event values.
//
// The window has no client API; rendering goes through a WebGPU surface
// created from [Window.NativeHandle]:
//
//   - X11: the Display* and the Window id
//   - Wayland (build tag wayland): the wl_display* and the wl_surface*
//   - Windows: the HWND
//   - macOS: a CAMetalLayer attached to the content view
//
// GLFW requires the main thread. Call [Init], [New] and every Window
// method except [Window.RequestRedraw] from a goroutine locked with
// runtime.LockOSThread, and call [Terminate] last.
//
// [Window.NextEvent] returns queued input in arrival order and delivers a
// pending redraw after it, so that one frame reflects all input received
// before it. Redraw requests coalesce: any number of requests before the
// next RedrawRequested yield one event.
package window
