// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/michael-tui/internal/model"
	"github.com/jeranaias/michael-tui/internal/ui/styles"
	"github.com/jeranaias/michael-tui/internal/util"
)

// Toggle labels.
const (
	ShowConfidenceLabel = "Show confidence"
	HideConfidenceLabel = "Hide confidence"
	ConfidentLabel      = "Confident"
	UncertainLabel      = "Uncertain"
)

// =============================================================================
// MESSAGE RENDERER
// =============================================================================

// MessageRenderer draws message bubbles and their panels.
type MessageRenderer struct {
	theme *styles.Theme

	// Colors enables colour-word highlighting.
	Colors bool
	// Hyperlinks wraps clickable sources in OSC-8 links.
	Hyperlinks bool
}

// NewMessageRenderer creates a renderer with highlighting and links on.
func NewMessageRenderer(theme *styles.Theme) *MessageRenderer {
	return &MessageRenderer{theme: theme, Colors: true, Hyperlinks: true}
}

// BubbleWidth returns the bubble width for a window of the given width.
func BubbleWidth(width int) int {
	w := width * 4 / 5
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Render draws msg for a window of the given width. focused marks the
// assistant message that keyboard panel toggles apply to.
func (r *MessageRenderer) Render(msg *model.Message, state PanelState, width int, focused bool) string {
	bw := BubbleWidth(width)
	inner := bw - 4

	if msg.IsUser() {
		body := ColorText(msg.Text, lipgloss.NewStyle().Foreground(styles.TextPrimary), r.Colors)
		bubble := r.theme.UserBubble.Width(bw).Render(wrap(body, inner))
		label := r.theme.RoleLabel.Render(msg.Role.DisplayName())
		return lipgloss.PlaceHorizontal(width, lipgloss.Right,
			lipgloss.JoinVertical(lipgloss.Right, label, bubble))
	}

	style := r.theme.AssistantBubble
	switch {
	case msg.Failed:
		style = r.theme.ErrorBubble
	case focused:
		style = r.theme.FocusedBubble
	}

	var parts []string
	if msg.Failed {
		parts = append(parts, r.theme.Error.Render(wrap(msg.Text, inner)))
	} else {
		parts = append(parts, wrap(ColorText(msg.Text, lipgloss.NewStyle().Foreground(styles.TextPrimary), r.Colors), inner))
	}
	if tabs := r.RenderLensTabs(msg, state, inner); tabs != "" {
		parts = append(parts, "", tabs)
	}
	if conf := r.RenderConfidence(msg, state, inner); conf != "" {
		parts = append(parts, "", conf)
	}
	if src := r.RenderSources(msg, state, inner); src != "" {
		parts = append(parts, "", src)
	}

	label := r.theme.RoleLabel.Render(msg.Role.DisplayName())
	bubble := style.Width(bw).Render(strings.Join(parts, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// RenderLensTabs draws the tab row and, when a tab is open, its text.
// It returns "" when the message has no non-blank lens.
func (r *MessageRenderer) RenderLensTabs(msg *model.Message, state PanelState, width int) string {
	if !msg.HasLenses() {
		return ""
	}

	var tabs []string
	for _, lens := range msg.Lenses.Available() {
		style := r.theme.LensTab
		if state.LensOpen && state.Lens == lens {
			style = r.theme.LensTabActive
		}
		tabs = append(tabs, style.Render(lens.Label()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	if !state.LensOpen {
		return row
	}
	text := strings.TrimSpace(msg.Lenses.Get(state.Lens))
	if text == "" {
		return row
	}
	body := ColorText(text, lipgloss.NewStyle().Foreground(styles.TextSecondary), r.Colors)
	return row + "\n" + r.theme.LensBody.Render(wrap(body, width-2))
}

// RenderConfidence draws the confidence toggle and, when open, both lists.
// It returns "" when the message carries no claims.
func (r *MessageRenderer) RenderConfidence(msg *model.Message, state PanelState, width int) string {
	if !msg.HasConfidence() {
		return ""
	}
	if !state.ShowConfidence {
		return r.theme.Toggle.Render(ShowConfidenceLabel)
	}

	lines := []string{r.theme.Toggle.Render(HideConfidenceLabel)}
	section := func(title string, header lipgloss.Style, claims []string) {
		if len(claims) == 0 {
			return
		}
		lines = append(lines, header.Render(title))
		for _, c := range claims {
			lines = append(lines, r.theme.Claim.Render(wrap("• "+c, width-2)))
		}
	}
	section(ConfidentLabel, r.theme.ConfidentHeader, msg.Confidence.Confident)
	section(UncertainLabel, r.theme.UncertainHeader, msg.Confidence.Uncertain)
	return strings.Join(lines, "\n")
}

// SourcesLabel returns the pill text, e.g. "1 source" or "3 sources".
func SourcesLabel(n int) string {
	if n == 1 {
		return "1 source"
	}
	return fmt.Sprintf("%d sources", n)
}

// RenderSources draws the sources pill and, when open, the list. Sources
// without a URL are shown dimmed and are not links. It returns "" when the
// message cites nothing.
func (r *MessageRenderer) RenderSources(msg *model.Message, state PanelState, width int) string {
	if !msg.HasSources() {
		return ""
	}
	pill := r.theme.Pill.Render(SourcesLabel(len(msg.Sources)))
	if !state.ShowSources {
		return pill
	}

	lines := []string{pill}
	for _, s := range msg.Sources {
		title := util.Truncate(s.Title, width-2)
		if !s.Clickable() {
			lines = append(lines, "  "+r.theme.SourcePlain.Render(title))
			continue
		}
		rendered := r.theme.SourceLink.Render(title)
		if r.Hyperlinks {
			rendered = termenv.Hyperlink(s.URL, rendered)
		}
		lines = append(lines, "  "+rendered)
	}
	return strings.Join(lines, "\n")
}

// wrap soft-wraps already styled text to width cells.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
