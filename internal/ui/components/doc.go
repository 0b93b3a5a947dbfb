// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the michael TUI.
//
// Stateful pieces (Splash, Typing) follow the Bubble Tea Init/Update/View
// shape. Message rendering is a set of pure functions over a model.Message
// and a PanelState, so the chat view decides which panels are open.
//
// # Key Types
//
//   - Splash: Branding screen with a dismiss timer
//   - Typing: "Michael is thinking" indicator
//   - PanelState: Which lens/confidence/sources panels are expanded
//   - MessageRenderer: Bubble plus panels for one message
//
// # Usage
//
//	r := components.NewMessageRenderer(theme)
//	out := r.Render(msg, state, width, focused)
package components
