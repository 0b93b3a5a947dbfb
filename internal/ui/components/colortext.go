// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/michael-tui/internal/highlight"
)

// ColorText renders text with colour words in their own colour. Plain runs
// use base. When enabled is false the whole text uses base.
func ColorText(text string, base lipgloss.Style, enabled bool) string {
	if !enabled {
		return base.Render(text)
	}
	var b strings.Builder
	for _, seg := range highlight.Segments(text) {
		if seg.Colored() {
			b.WriteString(base.Foreground(lipgloss.Color(seg.Color)).Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}
	return b.String()
}
