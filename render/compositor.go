// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/internal/gpucore"
	"github.com/gogpu/rayview/ui"
)

// Target is the texture a pass renders into. *surface.FrameTarget
// implements it. Exactly one of Present or Discard is called per target.
type Target interface {
	View() gpucore.TextureViewID
	Size() (width, height uint32)
	Present() error
	Discard()
}

// Stats counts what the compositor did.
type Stats struct {
	// Frames is the number of presented frames.
	Frames uint64
	// UIDraws is the number of UI draws of the last frame.
	UIDraws int
	// Textures is the number of cached UI textures.
	Textures int
}

// Option configures a Compositor.
type Option func(*options)

type options struct {
	shaderSource string
}

// WithShaderSource replaces the built-in WGSL of the full-screen pass. The
// source must declare vs_main and fs_main.
func WithShaderSource(src string) Option {
	return func(o *options) {
		o.shaderSource = src
	}
}

// Compositor renders one frame: the full-screen base pass, then the UI on
// top, in a single render pass.
//
// Compositor is not safe for concurrent use.
type Compositor struct {
	dev    gpucore.Device
	format gputypes.TextureFormat

	base *basePipeline
	ui   *UIRenderer

	stats    Stats
	released bool
}

// NewCompositor builds the base pipeline and the UI renderer for targets
// of the given format.
func NewCompositor(dev gpucore.Device, format gputypes.TextureFormat, opts ...Option) (*Compositor, error) {
	o := options{shaderSource: screenShaderSource}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := newBasePipeline(dev, format, o.shaderSource)
	if err != nil {
		return nil, err
	}
	uiRenderer, err := NewUIRenderer(dev, format)
	if err != nil {
		base.release(dev)
		return nil, err
	}
	rayview.Logger().Info("render: pipelines built", "format", format.String())
	return &Compositor{dev: dev, format: format, base: base, ui: uiRenderer}, nil
}

// Pass renders and presents one frame into target. out may be nil, in
// which case only the base pass is drawn.
//
// Texture updates and buffer uploads happen before the render pass
// begins; textures listed in out.TexturesDelta.Free are released after
// submission. A UI failure never blocks the base pass: the frame is
// presented without the affected UI draws and Pass returns an error
// wrapping ErrTexturesLost when textures must be sent again. If the pass
// itself fails before presenting, the target is discarded.
func (c *Compositor) Pass(target Target, out *ui.FullOutput) error {
	if c.released {
		target.Discard()
		return ErrReleased
	}
	if out != nil {
		defer c.free(out.TexturesDelta.Free)
	}

	lost := c.prepareUI(target, out)
	if err := c.encode(target); err != nil {
		target.Discard()
		return err
	}
	if err := target.Present(); err != nil {
		return fmt.Errorf("render: present: %w", err)
	}
	c.stats.Frames++
	return lost
}

// prepareUI applies the texture updates of out and uploads its meshes. It
// returns an error wrapping ErrTexturesLost when a texture is missing.
func (c *Compositor) prepareUI(target Target, out *ui.FullOutput) error {
	c.ui.Reset()
	if out == nil {
		return nil
	}
	var lost []error
	for _, u := range out.TexturesDelta.Set {
		if err := c.ui.UpdateTexture(u.ID, u.Delta); err != nil {
			rayview.Logger().Warn("render: texture update failed", "id", u.ID.String(), "err", err)
			// The contents are stale; drop the texture until it is sent whole.
			c.ui.FreeTexture(u.ID)
			lost = append(lost, err)
		}
	}

	width, height := target.Size()
	prims := ui.Tessellate(out.Shapes, out.PixelsPerPoint)
	if err := c.ui.Prepare(prims, width, height, out.PixelsPerPoint); err != nil {
		rayview.Logger().Warn("render: ui skipped", "err", err)
		c.ui.Reset()
	}
	if missing := c.ui.Missing(); len(missing) > 0 {
		rayview.Logger().Warn("render: ui meshes without texture skipped", "textures", len(missing))
		lost = append(lost, fmt.Errorf("%w: %v", ErrUnknownTexture, missing))
	}
	if len(lost) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTexturesLost, errors.Join(lost...))
}

func (c *Compositor) encode(target Target) error {
	enc, err := c.dev.CreateCommandEncoder("Render Encoder")
	if err != nil {
		return fmt.Errorf("render: create encoder: %w", err)
	}
	pass, err := enc.BeginRenderPass(&gpucore.RenderPassDesc{
		Label: "Render Pass",
		Color: gpucore.ColorAttachment{
			View:       target.View(),
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("render: begin pass: %w", err)
	}
	c.base.record(pass)
	c.ui.Record(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("render: end pass: %w", err)
	}

	cmd, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("render: finish: %w", err)
	}
	if err := c.dev.Submit(cmd); err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	c.stats.UIDraws = c.ui.DrawCount()
	return nil
}

func (c *Compositor) free(ids []ui.TextureID) {
	for _, id := range ids {
		c.ui.FreeTexture(id)
	}
}

// Rebuild validates src and swaps in a new base pipeline built from it.
// On error the current pipeline stays in place.
func (c *Compositor) Rebuild(src string) error {
	if c.released {
		return ErrReleased
	}
	base, err := newBasePipeline(c.dev, c.format, src)
	if err != nil {
		return err
	}
	c.base.release(c.dev)
	c.base = base
	rayview.Logger().Info("render: base pipeline rebuilt")
	return nil
}

// Stats returns the counters.
func (c *Compositor) Stats() Stats {
	s := c.stats
	if c.ui != nil {
		s.Textures = c.ui.TextureCount()
	}
	return s
}

// Release destroys the UI renderer, then the base pipeline. It is safe to
// call more than once.
func (c *Compositor) Release() {
	if c.released {
		return
	}
	c.released = true
	c.ui.Release()
	c.base.release(c.dev)
}
