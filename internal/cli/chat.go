// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/michael-tui/internal/config"
	"github.com/jeranaias/michael-tui/internal/export"
	"github.com/jeranaias/michael-tui/internal/session"
	"github.com/jeranaias/michael-tui/internal/ui/components"
	"github.com/jeranaias/michael-tui/internal/util"
)

// ChatPrompt is shown before each line of input.
const ChatPrompt = "you › "

func newChatCmd(g *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-mode chat session",
		Long: `Start an interactive line-mode chat. Answers continue the same
conversation until /reset.

Commands:
  /help              Show available commands
  /reset, /clear     Start a new conversation
  /export <path>     Save the conversation (.md, .json, .yaml)
  /history           List the conversation so far
  /quit, /q          Exit (Ctrl+D also exits)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.LoadConfig()
			if err != nil {
				return err
			}
			logger := g.Logger(cfg, cmd.ErrOrStderr())
			if !g.Debug {
				logger = logger.Level(zerolog.ErrorLevel)
			}

			historyFile, err := config.HistoryPath()
			if err != nil {
				return err
			}
			input := NewChatCLI(historyFile)
			defer input.Close()

			out := cmd.OutOrStdout()
			colors := ColorsEnabled(g.NoColor, out)
			repl := &REPL{
				Session: session.New(g.Client(cfg, logger), session.WithLogger(logger)),
				Input:   input,
				Out:     out,
				Printer: NewPrinter(out, PrinterOptions{
					Colors:   colors,
					Markdown: true,
					Theme:    cfg.UI.Theme,
					Width:    TerminalWidth(out),
				}),
			}
			return repl.Run(cmd.Context())
		},
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader reads one line of input.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// ChatCLI provides line editing and persistent history on a terminal.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a line editor and loads historyFile.
func NewChatCLI(historyFile string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line; non-blank input is added to history.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists history with owner-only permissions.
func (c *ChatCLI) SaveHistory() error {
	var buf bytes.Buffer
	if _, err := c.line.WriteHistory(&buf); err != nil {
		return err
	}
	return util.AtomicWriteFile(c.historyFile, buf.Bytes(), 0600)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	_ = c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// REPL runs a line-mode conversation over a session.
type REPL struct {
	Session *session.Session
	Input   LineReader
	Printer *Printer
	Out     io.Writer
}

// Run reads and answers lines until EOF, Ctrl+C at the prompt, or /quit.
// Ctrl+C while waiting for an answer cancels only that request.
func (r *REPL) Run(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	r.Printer.PrintInfo("Michael · four lenses on any question. /help for commands, Ctrl+D to exit.")
	for {
		line, err := r.Input.Prompt(ChatPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.Out)
			r.Printer.PrintInfo("Goodbye.")
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "/"):
			if quit := r.handleCommand(line); quit {
				return nil
			}
		default:
			r.ask(ctx, line)
		}
	}
}

func (r *REPL) ask(ctx context.Context, text string) {
	reqCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	r.Printer.PrintInfo(components.TypingLabel + "...")
	reply, _ := r.Session.Send(reqCtx, text)
	fmt.Fprintln(r.Out)
	r.Printer.PrintReply(reply, AllSections)
	fmt.Fprintln(r.Out)
}

// handleCommand runs a slash command and reports whether to exit.
func (r *REPL) handleCommand(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit", "/q":
		r.Printer.PrintInfo("Goodbye.")
		return true

	case "/help", "/h", "/?":
		fmt.Fprint(r.Out, replHelp)

	case "/reset", "/clear", "/c":
		r.Session.Reset()
		r.Printer.PrintInfo("New conversation.")

	case "/history":
		msgs := r.Session.Messages()
		if len(msgs) == 0 {
			r.Printer.PrintInfo("No messages yet.")
			return false
		}
		for i, m := range msgs {
			first, _, _ := strings.Cut(m.Text, "\n")
			fmt.Fprintf(r.Out, "%3d. %-8s %s\n", i+1, m.Role.DisplayName(), util.Truncate(first, 70))
		}

	case "/export":
		if len(fields) < 2 {
			r.Printer.PrintError("Usage: /export <path>")
			return false
		}
		path, err := export.ToFile(strings.Join(fields[1:], " "), r.Session.Snapshot(), nil)
		if err != nil {
			r.Printer.PrintError("Export failed: " + err.Error())
			return false
		}
		r.Printer.PrintInfo("Exported to " + path)

	default:
		r.Printer.PrintError("Unknown command " + fields[0] + " (try /help)")
	}
	return false
}

const replHelp = `Commands:
  /help              Show this help
  /reset, /clear     Start a new conversation
  /export <path>     Save the conversation (.md, .json, .yaml)
  /history           List the conversation so far
  /quit, /q          Exit
`
