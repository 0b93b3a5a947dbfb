// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/michael-tui/internal/ui/components"
	"github.com/jeranaias/michael-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.SplashVisible() {
		return m.splash.View()
	}
	if !m.ready {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatusLine(),
		m.renderInput(),
		m.renderHelp(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.Header.Render("Michael")
	tagline := m.theme.Tagline.Render(" " + components.SplashSubtitle)

	right := ""
	if n := m.sess.Len(); n > 0 {
		right = m.theme.StatusBar.Render(fmt.Sprintf("%d messages", n))
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(tagline) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + tagline + strings.Repeat(" ", gap) + right
}

// renderStatusLine shows the typing indicator or the current notice.
func (m Model) renderStatusLine() string {
	switch {
	case m.sess.IsLoading():
		return m.typing.View()
	case m.notice != "" && m.noticeErr:
		return m.theme.Error.Render(util.Truncate(m.notice, m.width))
	case m.notice != "":
		return m.theme.StatusBar.Render(util.Truncate(m.notice, m.width))
	default:
		return ""
	}
}

func (m Model) renderInput() string {
	style := m.theme.Input
	if m.sess.IsLoading() {
		style = m.theme.InputDim
	}
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	return style.Width(width).Render(m.input.View())
}

func (m Model) renderHelp() string {
	m.help.Width = m.width
	return m.theme.Help.Render(m.help.View(m.keys))
}

// renderMessages draws the conversation, or the empty state.
func (m Model) renderMessages() (string, map[string]int) {
	msgs := m.sess.Messages()
	if len(msgs) == 0 {
		return "\n" + components.RenderEmptyState(m.theme, m.width, m.quickSel), nil
	}

	offsets := make(map[string]int, len(msgs))
	var sb strings.Builder
	line := 0
	for i, msg := range msgs {
		if i > 0 {
			sb.WriteString("\n\n")
			line += 2
		}
		offsets[msg.ID] = line
		rendered := m.renderer.Render(msg, m.panels[msg.ID], m.width, msg.ID == m.focusID)
		sb.WriteString(rendered)
		line += lipgloss.Height(rendered) - 1
	}
	return sb.String(), offsets
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes the viewport to the space left by the fixed rows.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.input.Width = m.width - 8

	fixed := lipgloss.Height(m.renderHeader()) +
		1 + // status line
		lipgloss.Height(m.renderInput()) +
		lipgloss.Height(m.renderHelp())

	h := m.height - fixed
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.refresh()
}

// refresh re-renders the conversation into the viewport.
func (m *Model) refresh() {
	content, offsets := m.renderMessages()
	m.offsets = offsets
	m.viewport.SetContent(content)
}

// scrollToFocus brings the focused message into view.
func (m *Model) scrollToFocus() {
	if line, ok := m.offsets[m.focusID]; ok {
		m.viewport.SetYOffset(line)
	}
}
