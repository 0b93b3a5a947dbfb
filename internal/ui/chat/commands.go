// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/michael-tui/internal/export"
	"github.com/jeranaias/michael-tui/internal/model"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// Command describes a slash command for /help.
type Command struct {
	Name  string
	Args  string
	Usage string
}

// Commands lists the slash commands understood by the chat view.
var Commands = []Command{
	{Name: "/reset", Usage: "start a new conversation"},
	{Name: "/export", Args: "<path>", Usage: "save the conversation (.md, .json, .yaml)"},
	{Name: "/help", Usage: "toggle key help"},
	{Name: "/quit", Usage: "exit"},
}

// handleCommand runs a typed slash command.
func (m Model) handleCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}

	switch strings.ToLower(fields[0]) {
	case "/reset", "/clear", "/new":
		m.resetConversation()
		return m, nil

	case "/export":
		if len(fields) < 2 {
			m.setNotice("Usage: /export <path>", true)
			return m, nil
		}
		if m.sess.Len() == 0 {
			m.setNotice("Nothing to export yet", true)
			return m, nil
		}
		path := strings.Join(fields[1:], " ")
		if m.exportDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(m.exportDir, path)
		}
		m.setNotice("Exporting...", false)
		return m, exportCmd(path, m.sess.Snapshot())

	case "/help", "/?":
		m.toggleHelp()
		return m, nil

	case "/quit", "/exit", "/q":
		m.quitting = true
		return m, tea.Quit

	default:
		m.setNotice("Unknown command "+fields[0]+" (try /help)", true)
		return m, nil
	}
}

// exportCmd writes snap off the Update loop.
func exportCmd(path string, snap model.Snapshot) tea.Cmd {
	return func() tea.Msg {
		written, err := export.ToFile(path, snap, nil)
		return exportDoneMsg{path: written, err: err}
	}
}
