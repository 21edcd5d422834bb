// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ui is a small immediate-mode user interface library.
//
// Each frame the host collects window input into a RawInput and calls
// Context.Run with a build function. The build function declares widgets
// (menu bars, menus, buttons, labels, windows); their responses are
// available immediately, so a click is handled in the same call that
// draws the button:
//
//	out := ctx.Run(input, func(c *ui.Context) {
//		c.MenuBar(func(bar *ui.Ui) {
//			bar.Menu("File", func(m *ui.Ui) {
//				if m.Button("Quit").Clicked {
//					quit = true
//				}
//			})
//		})
//	})
//
// Run returns a FullOutput holding the shapes to draw and the changes to
// the font atlas texture. Tessellate turns the shapes into indexed
// triangle meshes in points, one mesh per clip rectangle.
//
// Text is shaped with HarfBuzz (go-text/typesetting) and rasterized from
// Go Regular outlines into a single RGBA atlas that also holds a white
// texel, so every mesh samples the same texture.
package ui
