// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Submit        key.Binding
	NextLens      key.Binding
	PrevLens      key.Binding
	CloseLens     key.Binding
	FocusUp       key.Binding
	FocusDown     key.Binding
	ToggleConf    key.Binding
	ToggleSources key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	Reset         key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		NextLens: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next lens"),
		),
		PrevLens: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev lens"),
		),
		CloseLens: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close lens"),
		),
		FocusUp: key.NewBinding(
			key.WithKeys("ctrl+up", "alt+up", "alt+k"),
			key.WithHelp("C-↑", "previous answer"),
		),
		FocusDown: key.NewBinding(
			key.WithKeys("ctrl+down", "alt+down", "alt+j"),
			key.WithHelp("C-↓", "next answer"),
		),
		ToggleConf: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("M-c", "confidence"),
		),
		ToggleSources: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("M-s", "sources"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "new conversation"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextLens, k.ToggleConf, k.ToggleSources, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Reset, k.Help, k.Quit},
		{k.NextLens, k.PrevLens, k.CloseLens},
		{k.FocusUp, k.FocusDown, k.ToggleConf, k.ToggleSources},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
	}
}
