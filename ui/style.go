// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// Style controls sizes and colors of widgets. All lengths are in points.
type Style struct {
	TextSize      float32
	ButtonPadding Vec2
	ItemSpacing   Vec2
	WindowPadding float32
	WindowWidth   float32
	MenuMinWidth  float32
	Visuals       Visuals
}

// Visuals is the color scheme.
type Visuals struct {
	Text       Color32
	TextStrong Color32
	PanelFill  Color32
	WindowFill Color32
	PopupFill  Color32
	ButtonFill Color32
	HoverFill  Color32
	ActiveFill Color32
	Border     Stroke
}

// DefaultStyle returns a dark style.
func DefaultStyle() Style {
	return Style{
		TextSize:      14,
		ButtonPadding: Vec2{6, 3},
		ItemSpacing:   Vec2{4, 2},
		WindowPadding: 8,
		WindowWidth:   260,
		MenuMinWidth:  120,
		Visuals: Visuals{
			Text:       Gray(200),
			TextStrong: White,
			PanelFill:  Gray(27),
			WindowFill: Gray(32),
			PopupFill:  Gray(38),
			ButtonFill: Gray(48),
			HoverFill:  Gray(70),
			ActiveFill: Gray(90),
			Border:     Stroke{Width: 1, Color: Gray(60)},
		},
	}
}
