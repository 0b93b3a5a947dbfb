// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/michael-tui/internal/ui/styles"
)

// EmptyHint is shown on the chat surface before the first message.
const EmptyHint = "ask anything · four perspectives"

// QuickAsks are the suggested first questions.
var QuickAsks = []string{
	"Why is the sky blue?",
	"What is consciousness?",
	"Why do we dream?",
	"What happens when we die?",
	"Is time real?",
}

// QuickAsk returns the suggestion numbered key ("1".."5").
func QuickAsk(key string) (string, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return "", false
	}
	i := int(key[0] - '1')
	if i >= len(QuickAsks) {
		return "", false
	}
	return QuickAsks[i], true
}

// RenderEmptyState draws the hint and numbered suggestions. selected is the
// highlighted suggestion, or -1.
func RenderEmptyState(theme *styles.Theme, width, selected int) string {
	var rows []string
	rows = append(rows, theme.EmptyHint.Render(EmptyHint), "")

	var pills []string
	for i, q := range QuickAsks {
		style := theme.QuickAsk
		if i == selected {
			style = style.Foreground(styles.Accent).Bold(true)
		}
		pills = append(pills, theme.QuickKey.Render(fmt.Sprintf("alt+%d", i+1))+" "+style.Render(q))
	}
	rows = append(rows, strings.Join(pills, "\n"))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...))
}
