// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the michael TUI.
//
// The palette is a dark "glass" look: near-black surfaces, soft white text
// and low-contrast borders. All colours are lipgloss.AdaptiveColor so a
// light terminal still gets readable output.
//
// # Key Types
//
//   - Theme: Every lipgloss style used by components and the chat view
//   - Timing: Splash and typing-indicator timings
//
// # Usage
//
//	theme := styles.NewTheme("auto")
//	fmt.Println(theme.Title.Render("Michael"))
package styles
