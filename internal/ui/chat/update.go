// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/michael-tui/internal/api"
	"github.com/jeranaias/michael-tui/internal/model"
	"github.com/jeranaias/michael-tui/internal/ui/components"
	"github.com/jeranaias/michael-tui/internal/ui/styles"
)

// BusyNotice is shown when Enter is pressed while a reply is outstanding.
const BusyNotice = "Michael is still answering..."

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.splash.SetSize(msg.Width, msg.Height)
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if m.SplashVisible() {
			if key.Matches(msg, m.keys.Quit) {
				m.quitting = true
				return m, tea.Quit
			}
			// The key that dismisses the splash is still handled below.
			m.splash.Dismiss()
		}
		return m.handleKey(msg)

	case responseMsg:
		return m.handleResponse(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("Export failed: %v", msg.err), true)
		} else {
			m.setNotice("Exported to "+msg.path, false)
		}
		m.layout()
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		m.layout()
		return m, waitForReload(m.reloads)

	case spinner.TickMsg:
		if !m.sess.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.typing, cmd = m.typing.Update(msg)
		return m, cmd
	}

	if m.SplashVisible() {
		var cmd tea.Cmd
		m.splash, cmd = m.splash.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes a key press. Panel keys without a modifier only apply
// while the input is empty so they never swallow typed text.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputEmpty := m.input.Value() == ""
	empty := m.sess.Len() == 0

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.toggleHelp()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.resetConversation()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.FocusUp):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.FocusDown):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.ToggleConf):
		m.updatePanels(components.PanelState.ToggleConfidence)
		return m, nil

	case key.Matches(msg, m.keys.ToggleSources):
		m.updatePanels(components.PanelState.ToggleSources)
		return m, nil

	case key.Matches(msg, m.keys.NextLens), key.Matches(msg, m.keys.PrevLens):
		dir := 1
		if key.Matches(msg, m.keys.PrevLens) {
			dir = -1
		}
		if empty {
			m.cycleQuickAsk(dir)
		} else {
			m.cycleLens(dir)
		}
		return m, nil

	case key.Matches(msg, m.keys.CloseLens):
		m.quickSel = -1
		m.updatePanels(func(p components.PanelState) components.PanelState {
			p.LensOpen = false
			return p
		})
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	if inputEmpty && msg.Type == tea.KeyRunes {
		s := string(msg.Runes)
		if empty {
			// Plain digits are text unless a suggestion is highlighted.
			if msg.Alt || m.quickSel >= 0 {
				if q, ok := components.QuickAsk(s); ok {
					return m.send(q)
				}
			}
		} else if m.focusID != "" {
			switch s {
			case "c":
				m.updatePanels(components.PanelState.ToggleConfidence)
				return m, nil
			case "s":
				m.updatePanels(components.PanelState.ToggleSources)
				return m, nil
			}
		}
	}

	if inputEmpty && !empty && m.focusID != "" {
		switch msg.Type {
		case tea.KeyLeft:
			m.cycleLens(-1)
			return m, nil
		case tea.KeyRight:
			m.cycleLens(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles Enter: a command, a question, the selected quick-ask, or
// toggling the focused lens.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())

	if text == "" {
		if m.sess.Len() == 0 && m.quickSel >= 0 && m.quickSel < len(components.QuickAsks) {
			return m.send(components.QuickAsks[m.quickSel])
		}
		m.toggleFocusedLens()
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		m.input.Reset()
		return m.handleCommand(text)
	}

	return m.send(text)
}

// send starts a request. The user message appears before the reply.
// While a reply is outstanding nothing is sent and the input is kept.
func (m Model) send(text string) (tea.Model, tea.Cmd) {
	if m.sess.IsLoading() {
		m.setNotice(BusyNotice, false)
		return m, nil
	}
	m.input.Reset()
	m.quickSel = -1
	m.clearNotice()

	p := m.sess.Begin(text)
	m.logger.Debug().Str("message", p.UserMessage.ID).Msg("sending question")

	m.refresh()
	m.viewport.GotoBottom()
	return m, tea.Batch(sendCmd(m.ctx, p, m.sess.Sender()), m.typing.Tick())
}

// handleResponse settles a finished request and focuses the reply.
func (m Model) handleResponse(msg responseMsg) (tea.Model, tea.Cmd) {
	reply := m.sess.Settle(msg.outcome)
	if reply != nil && reply.IsAssistant() {
		m.focusID = reply.ID
	}
	m.refresh()
	m.viewport.GotoBottom()
	return m, nil
}

// applyConfig swaps the sender and rebuilds styles from a reloaded config.
func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("config reload failed")
		m.setNotice(fmt.Sprintf("Config reload failed: %v", msg.Err), true)
		return
	}
	cfg := msg.Config
	if cfg == nil {
		return
	}

	client := api.NewClient(cfg.API.BaseURL).
		WithTimeout(cfg.API.Timeout.Duration).
		WithLogger(m.logger)
	m.sess.SetSender(client)

	m.theme = styles.NewTheme(cfg.UI.Theme)
	renderer := components.NewMessageRenderer(m.theme)
	renderer.Colors = cfg.UI.HighlightColors
	renderer.Hyperlinks = cfg.UI.Hyperlinks
	m.renderer = renderer
	m.typing = components.NewTyping(m.theme)

	m.logger.Info().Str("api_url", cfg.API.BaseURL).Msg("config reloaded")
	m.setNotice("Config reloaded", false)
}

// =============================================================================
// FOCUS AND PANELS
// =============================================================================

// assistantIDs lists assistant message IDs in conversation order.
func (m Model) assistantIDs() []string {
	var ids []string
	for _, msg := range m.sess.Messages() {
		if msg.IsAssistant() {
			ids = append(ids, msg.ID)
		}
	}
	return ids
}

// moveFocus moves focus across assistant messages, clamping at the ends.
func (m *Model) moveFocus(dir int) {
	ids := m.assistantIDs()
	if len(ids) == 0 {
		return
	}

	idx := -1
	for i, id := range ids {
		if id == m.focusID {
			idx = i
			break
		}
	}

	switch {
	case idx < 0:
		idx = len(ids) - 1
	default:
		idx += dir
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ids) {
		idx = len(ids) - 1
	}

	m.focusID = ids[idx]
	m.refresh()
	m.scrollToFocus()
}

// focused returns the focused assistant message, if any.
func (m Model) focused() *model.Message {
	if m.focusID == "" {
		return nil
	}
	return m.sess.Find(m.focusID)
}

// updatePanels applies fn to the focused message's panel state.
func (m *Model) updatePanels(fn func(components.PanelState) components.PanelState) {
	msg := m.focused()
	if msg == nil || msg.Failed {
		return
	}
	m.panels[msg.ID] = fn(m.panels[msg.ID])
	m.refresh()
}

func (m *Model) cycleLens(dir int) {
	msg := m.focused()
	if msg == nil {
		return
	}
	m.updatePanels(func(p components.PanelState) components.PanelState {
		return p.CycleLens(msg, dir)
	})
}

// toggleFocusedLens opens the focused message's current tab, or closes it.
func (m *Model) toggleFocusedLens() {
	msg := m.focused()
	if msg == nil || !msg.HasLenses() {
		return
	}
	state := m.panels[msg.ID]
	if state.LensOpen {
		state.LensOpen = false
	} else if strings.TrimSpace(msg.Lenses.Get(state.Lens)) != "" {
		state = state.ToggleLens(state.Lens)
	} else {
		state = state.CycleLens(msg, 1)
	}
	m.panels[msg.ID] = state
	m.refresh()
}

func (m *Model) cycleQuickAsk(dir int) {
	n := len(components.QuickAsks)
	switch {
	case m.quickSel < 0 && dir > 0:
		m.quickSel = 0
	case m.quickSel < 0:
		m.quickSel = n - 1
	default:
		m.quickSel = (m.quickSel + dir + n) % n
	}
	m.refresh()
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) resetConversation() {
	m.sess.Reset()
	m.panels = make(map[string]components.PanelState)
	m.focusID = ""
	m.quickSel = -1
	m.setNotice("New conversation", false)
	m.layout()
}

func (m *Model) toggleHelp() {
	m.showHelp = !m.showHelp
	m.help.ShowAll = m.showHelp
	m.layout()
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeErr = false
}
