// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/michael-tui/internal/ui/styles"
)

// TypingLabel follows the pulsing dots while a reply is outstanding.
const TypingLabel = "Michael is thinking"

// Typing is the indicator shown while the session is loading.
type Typing struct {
	spinner spinner.Model
	theme   *styles.Theme
}

// NewTyping creates the indicator.
func NewTyping(theme *styles.Theme) Typing {
	sp := spinner.New()
	sp.Spinner = styles.TypingSpinner
	sp.Style = theme.Typing
	return Typing{spinner: sp, theme: theme}
}

// Tick starts the animation.
func (t Typing) Tick() tea.Cmd {
	return t.spinner.Tick
}

// Update advances the animation.
func (t Typing) Update(msg tea.Msg) (Typing, tea.Cmd) {
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator.
func (t Typing) View() string {
	return t.spinner.View() + " " + t.theme.Typing.Render(TypingLabel)
}
