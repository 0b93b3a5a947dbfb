// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen chat view for the michael TUI.
//
// The Model owns a session.Session. Pressing Enter calls Session.Begin
// from the Update loop, runs the request in a tea.Cmd, and settles the
// reply when the responseMsg comes back, so every state mutation happens
// on the event loop.
//
// # Key Types
//
//   - Model: Bubble Tea model for splash + chat surface
//   - Options: Session, theme and rendering switches
//   - KeyMap: Keyboard bindings with help text
//   - ConfigReloadedMsg: Delivered when the config file changes
//
// # Usage
//
//	m := chat.New(chat.Options{Session: sess, Theme: theme, Splash: true})
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package chat
