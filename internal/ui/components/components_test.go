// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/michael-tui/internal/model"
	"github.com/jeranaias/michael-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

func richMessage() *model.Message {
	return model.NewAssistantMessage("m1", "The sky is blue.",
		model.Lenses{Physics: "Rayleigh scattering.", Human: "Wonder."},
		model.Confidence{Confident: []string{"short wavelengths scatter"}, Uncertain: []string{"why it moves us"}},
		[]model.Source{{Title: "Rayleigh 1871", URL: "https://example.org/r"}, {Title: "Lecture notes"}},
	)
}

// =============================================================================
// PANEL STATE TESTS
// =============================================================================

func TestPanelState_ToggleLens(t *testing.T) {
	var p PanelState

	p = p.ToggleLens(model.LensMath)
	assert.True(t, p.LensOpen)
	assert.Equal(t, model.LensMath, p.Lens)

	p = p.ToggleLens(model.LensHuman)
	assert.True(t, p.LensOpen)
	assert.Equal(t, model.LensHuman, p.Lens)

	p = p.ToggleLens(model.LensHuman)
	assert.False(t, p.LensOpen, "selecting the active tab collapses it")
}

func TestPanelState_CycleLensSkipsBlank(t *testing.T) {
	msg := richMessage()
	var p PanelState

	p = p.CycleLens(msg, 1)
	assert.Equal(t, model.LensPhysics, p.Lens)
	p = p.CycleLens(msg, 1)
	assert.Equal(t, model.LensHuman, p.Lens)
	p = p.CycleLens(msg, 1)
	assert.Equal(t, model.LensPhysics, p.Lens, "wraps around")

	var back PanelState
	back = back.CycleLens(msg, -1)
	assert.Equal(t, model.LensHuman, back.Lens)
}

func TestPanelState_CycleLensNoLenses(t *testing.T) {
	msg := model.NewErrorMessage("e", "Connection error: x")
	p := PanelState{}.CycleLens(msg, 1)
	assert.False(t, p.LensOpen)
}

// =============================================================================
// MESSAGE RENDER TESTS
// =============================================================================

func TestRender_CollapsedPanels(t *testing.T) {
	r := NewMessageRenderer(testTheme())
	out := r.Render(richMessage(), PanelState{}, 80, false)

	assert.Contains(t, out, "The sky is")
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "Human")
	assert.NotContains(t, out, "Math", "blank lenses have no tab")
	assert.NotContains(t, out, "Rayleigh scattering.")
	assert.Contains(t, out, ShowConfidenceLabel)
	assert.Contains(t, out, "2 sources")
	assert.NotContains(t, out, "Lecture notes")
}

func TestRender_ExpandedPanels(t *testing.T) {
	r := NewMessageRenderer(testTheme())
	r.Hyperlinks = false
	state := PanelState{Lens: model.LensPhysics, LensOpen: true, ShowConfidence: true, ShowSources: true}

	out := r.Render(richMessage(), state, 100, true)

	assert.Contains(t, out, "Rayleigh scattering.")
	assert.Contains(t, out, HideConfidenceLabel)
	assert.Contains(t, out, ConfidentLabel)
	assert.Contains(t, out, UncertainLabel)
	assert.Contains(t, out, "why it moves us")
	assert.Contains(t, out, "Rayleigh 1871")
	assert.Contains(t, out, "Lecture notes")
}

func TestRender_NoAnnotationsHidesPanels(t *testing.T) {
	r := NewMessageRenderer(testTheme())
	msg := model.NewAssistantMessage("m", "plain", model.Lenses{}, model.Confidence{}, nil)

	out := r.Render(msg, PanelState{}, 80, false)

	assert.NotContains(t, out, ShowConfidenceLabel)
	assert.NotContains(t, out, "source")
	assert.NotContains(t, out, "Physics")
}

func TestRender_UserAndError(t *testing.T) {
	r := NewMessageRenderer(testTheme())

	user := r.Render(model.NewUserMessage("u", "Why is the sky blue?"), PanelState{}, 80, false)
	assert.Contains(t, user, "You")
	assert.Contains(t, user, "Why is the sky")

	failed := r.Render(model.NewErrorMessage("e", "Connection error: refused"), PanelState{}, 80, false)
	assert.Contains(t, failed, "Connection error")
	assert.Contains(t, failed, "Michael")
}

func TestSourcesLabel(t *testing.T) {
	assert.Equal(t, "1 source", SourcesLabel(1))
	assert.Equal(t, "3 sources", SourcesLabel(3))
}

func TestColorText_PreservesText(t *testing.T) {
	out := ColorText("red and blue", lipgloss.NewStyle(), true)
	assert.Contains(t, out, "red")
	assert.Contains(t, out, "blue")
	assert.Equal(t, "red and blue", ColorText("red and blue", lipgloss.NewStyle(), false))
}

// =============================================================================
// SPLASH AND QUICK ASK TESTS
// =============================================================================

func TestSplash_DismissOnTimerOrKey(t *testing.T) {
	s := NewSplash(testTheme(), 10*time.Millisecond)
	require.NotNil(t, s.Init())
	assert.False(t, s.Done())

	s, _ = s.Update(SplashDoneMsg{})
	assert.True(t, s.Done())

	s2 := NewSplash(testTheme(), time.Hour)
	s2, _ = s2.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, s2.Done())
}

func TestSplash_View(t *testing.T) {
	s := NewSplash(testTheme(), time.Second)
	s.SetSize(60, 12)
	for i := 0; i < styles.SplashFadeSteps; i++ {
		s, _ = s.Update(splashFrameMsg{})
	}

	view := s.View()
	assert.Contains(t, view, SplashTitle)
	assert.Contains(t, view, SplashTagline)
	assert.Contains(t, view, SplashSubtitle)
}

func TestQuickAsk(t *testing.T) {
	q, ok := QuickAsk("1")
	assert.True(t, ok)
	assert.Equal(t, "Why is the sky blue?", q)

	_, ok = QuickAsk("9")
	assert.False(t, ok)
	_, ok = QuickAsk("x")
	assert.False(t, ok)

	out := RenderEmptyState(testTheme(), 80, 0)
	assert.Contains(t, out, EmptyHint)
	assert.Equal(t, len(QuickAsks), strings.Count(out, "?"))
}

func TestTyping_View(t *testing.T) {
	typing := NewTyping(testTheme())
	assert.Contains(t, typing.View(), TypingLabel)
	assert.NotNil(t, typing.Tick())
}
