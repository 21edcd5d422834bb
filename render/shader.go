// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

//go:embed shaders/screen.wgsl
var screenShaderSource string

//go:embed shaders/ui.wgsl
var uiShaderSource string

// Entry points of the base shader. A replacement shader must declare both.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// ScreenShaderSource returns the built-in WGSL of the full-screen pass.
func ScreenShaderSource() string {
	return screenShaderSource
}

// ValidateWGSL parses, lowers and validates src with naga and checks that
// it declares vertexEntry as a vertex stage and fragmentEntry as a fragment
// stage. The returned error wraps ErrInvalidShader.
func ValidateWGSL(src, vertexEntry, fragmentEntry string) error {
	ast, err := naga.Parse(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w (%d problems)", ErrInvalidShader, &problems[0], len(problems))
	}

	for _, want := range []struct {
		name  string
		stage ir.ShaderStage
	}{
		{vertexEntry, ir.StageVertex},
		{fragmentEntry, ir.StageFragment},
	} {
		if !hasEntryPoint(module, want.name, want.stage) {
			return fmt.Errorf("%w: missing entry point %q", ErrInvalidShader, want.name)
		}
	}
	return nil
}

func hasEntryPoint(m *ir.Module, name string, stage ir.ShaderStage) bool {
	for _, ep := range m.EntryPoints {
		if ep.Name == name && ep.Stage == stage {
			return true
		}
	}
	return false
}
