// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles used across the TUI.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Splash
	Title   lipgloss.Style
	Tagline lipgloss.Style

	// Chat surface
	Panel     lipgloss.Style
	Header    lipgloss.Style
	EmptyHint lipgloss.Style
	QuickAsk  lipgloss.Style
	QuickKey  lipgloss.Style

	// Bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorBubble     lipgloss.Style
	FocusedBubble   lipgloss.Style
	RoleLabel       lipgloss.Style

	// Lens tabs
	LensTab       lipgloss.Style
	LensTabActive lipgloss.Style
	LensBody      lipgloss.Style

	// Confidence and sources
	Toggle          lipgloss.Style
	ConfidentHeader lipgloss.Style
	UncertainHeader lipgloss.Style
	Claim           lipgloss.Style
	Pill            lipgloss.Style
	SourceLink      lipgloss.Style
	SourcePlain     lipgloss.Style

	// Input and status
	Input     lipgloss.Style
	InputDim  lipgloss.Style
	Typing    lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
}

// NewTheme creates a theme. mode is "dark", "light" or "auto" (detect).
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		Padding(0, 2)

	t.Tagline = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.EmptyHint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	t.QuickAsk = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceElevated).
		Padding(0, 1)

	t.QuickKey = lipgloss.NewStyle().
		Foreground(TextDim)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocus).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	t.ErrorBubble = t.AssistantBubble.
		Foreground(Error).
		BorderForeground(Error)

	t.FocusedBubble = t.AssistantBubble.
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Accent)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	t.LensTab = lipgloss.NewStyle().
		Foreground(TextDim).
		Padding(0, 1)

	t.LensTabActive = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true).
		Underline(true).
		Padding(0, 1)

	t.LensBody = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	t.Toggle = lipgloss.NewStyle().
		Foreground(TextDim).
		Underline(true)

	t.ConfidentHeader = lipgloss.NewStyle().
		Foreground(Confident).
		Bold(true)

	t.UncertainHeader = lipgloss.NewStyle().
		Foreground(Uncertain).
		Bold(true)

	t.Claim = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	t.Pill = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceElevated).
		Padding(0, 1)

	t.SourceLink = lipgloss.NewStyle().
		Foreground(Link).
		Underline(true)

	t.SourcePlain = lipgloss.NewStyle().
		Foreground(TextDim)

	t.Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocus).
		Padding(0, 1)

	t.InputDim = t.Input.
		BorderForeground(Border)

	t.Typing = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextDim)

	t.Help = lipgloss.NewStyle().
		Foreground(TextDim)

	t.Error = lipgloss.NewStyle().
		Foreground(Error)
}

// Color wraps a hex string for use in a style.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}
