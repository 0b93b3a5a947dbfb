// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/michael-tui/internal/ui/styles"
)

// Splash text.
const (
	SplashTitle    = "Michael"
	SplashTagline  = "truth-anchored thought engine"
	SplashSubtitle = "four lenses · one question"
)

// SplashDoneMsg is sent when the splash timer expires.
type SplashDoneMsg struct{}

// splashFrameMsg advances the tagline reveal.
type splashFrameMsg struct{}

// =============================================================================
// SPLASH MODEL
// =============================================================================

// Splash is the branding screen shown before the chat surface.
type Splash struct {
	duration time.Duration
	frame    int
	done     bool

	width  int
	height int

	theme *styles.Theme
}

// NewSplash creates a splash that dismisses itself after duration.
func NewSplash(theme *styles.Theme, duration time.Duration) Splash {
	return Splash{duration: duration, theme: theme}
}

// SetSize updates the dimensions.
func (s *Splash) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Done reports whether the splash has been dismissed.
func (s Splash) Done() bool {
	return s.done
}

// Dismiss hides the splash immediately.
func (s *Splash) Dismiss() {
	s.done = true
}

// Init starts the dismiss timer and the reveal animation.
func (s Splash) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(s.duration, func(time.Time) tea.Msg { return SplashDoneMsg{} }),
		tea.Tick(styles.SplashFrame, func(time.Time) tea.Msg { return splashFrameMsg{} }),
	)
}

// Update handles messages.
func (s Splash) Update(msg tea.Msg) (Splash, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case SplashDoneMsg:
		s.done = true
	case splashFrameMsg:
		if s.done || s.frame >= styles.SplashFadeSteps {
			return s, nil
		}
		s.frame++
		return s, tea.Tick(styles.SplashFrame, func(time.Time) tea.Msg { return splashFrameMsg{} })
	case tea.KeyMsg:
		s.done = true
	}
	return s, nil
}

// View renders the splash centred in the window.
func (s Splash) View() string {
	width, height := s.width, s.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.theme.Title.Render(SplashTitle),
		"",
		s.theme.Tagline.Render(styles.RevealTagline(SplashTagline, s.frame, styles.SplashFadeSteps)),
		s.theme.Tagline.Render(styles.RevealTagline(SplashSubtitle, s.frame, styles.SplashFadeSteps)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
