// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"fmt"

	"github.com/gogpu/rayview"
)

// Command is an action requested by the menu.
type Command int

const (
	// CmdToggleFullscreen switches the window between fullscreen and
	// windowed.
	CmdToggleFullscreen Command = iota

	// CmdModelSettings shows or hides the model settings panel.
	CmdModelSettings

	// CmdQuit stops the frame loop.
	CmdQuit
)

// String returns the string representation of Command.
func (c Command) String() string {
	switch c {
	case CmdToggleFullscreen:
		return "ToggleFullscreen"
	case CmdModelSettings:
		return "ModelSettings"
	case CmdQuit:
		return "Quit"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// AppState is the application state the menu acts on.
type AppState struct {
	// ModelSettingsOpen shows the model settings panel.
	ModelSettingsOpen bool

	// QuitRequested is set by CmdQuit. The controller exits once it sees it.
	QuitRequested bool
}

// FullscreenWindow is the part of the window commands act on.
type FullscreenWindow interface {
	IsFullscreen() bool
	SetFullscreen(fullscreen bool)
}

// ApplyCommands applies cmds in order. It is the only place where menu
// commands change state.
func ApplyCommands(state *AppState, win FullscreenWindow, cmds []Command) {
	for _, cmd := range cmds {
		switch cmd {
		case CmdToggleFullscreen:
			fs := !win.IsFullscreen()
			win.SetFullscreen(fs)
			rayview.Logger().Info("fullscreen toggled", "fullscreen", fs)
		case CmdModelSettings:
			state.ModelSettingsOpen = !state.ModelSettingsOpen
			rayview.Logger().Info("model settings toggled", "open", state.ModelSettingsOpen)
		case CmdQuit:
			state.QuitRequested = true
			rayview.Logger().Info("quit requested")
		default:
			rayview.Logger().Warn("unknown command", "command", cmd)
		}
	}
}
