// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render composites a frame: a full-screen base pass followed by
// the UI overlay, recorded into one render pass on the acquired surface
// texture.
//
// # Frame protocol
//
// Compositor.Pass runs the steps of a frame in a fixed order:
//
//  1. apply UI texture updates and upload vertices, indices and the
//     screen uniform;
//  2. begin "Render Pass" with a black clear;
//  3. draw the base pipeline (six vertices, no buffers);
//  4. draw the UI meshes, one scissored DrawIndexed per clip rectangle;
//  5. end, finish, submit and present;
//  6. free the UI textures the frame released.
//
// Uploads never happen while the pass is open.
//
// # Shaders
//
// Both shaders are embedded WGSL validated with naga before the device
// sees them. The base shader can be replaced with WithShaderSource or, at
// run time, with Compositor.Rebuild; a shader that fails validation never
// replaces a working pipeline.
//
// # Usage
//
//	comp, err := render.NewCompositor(mgr.Device(), mgr.Format())
//	if err != nil {
//		return err
//	}
//	defer comp.Release()
//
//	target, err := mgr.Acquire()
//	if err == nil {
//		err = comp.Pass(target, out)
//	}
package render
