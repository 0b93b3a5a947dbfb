// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/michael-tui/internal/config"
	"github.com/jeranaias/michael-tui/internal/session"
)

// responseMsg carries a settled request back to the Update loop.
type responseMsg struct {
	outcome session.Outcome
}

// exportDoneMsg reports the result of /export.
type exportDoneMsg struct {
	path string
	err  error
}

// ConfigReloadedMsg is delivered when the config file changes on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// sendCmd runs p on a worker goroutine.
func sendCmd(ctx context.Context, p *session.Pending, sender session.Sender) tea.Cmd {
	return func() tea.Msg {
		return responseMsg{outcome: p.Run(ctx, sender)}
	}
}

// waitForReload blocks until the next config reload is available.
func waitForReload(ch <-chan ConfigReloadedMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
