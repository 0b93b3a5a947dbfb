// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/michael-tui/internal/session"
)

// AskOptions are the flags of the ask command.
type AskOptions struct {
	JSON  bool
	Raw   bool
	Plain bool
}

func newAskCmd(g *GlobalFlags) *cobra.Command {
	opts := &AskOptions{}
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a single question and print the answer",
		Example: `  michael ask "Why is the sky blue?"
  michael ask --json What is consciousness
  michael ask --raw Is time real | less -R`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunAsk(cmd.Context(), g, opts, strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print a JSON envelope with the decoded response")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print the decoded response as highlighted JSON")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Plain text without Markdown rendering or colours")
	cmd.MarkFlagsMutuallyExclusive("json", "raw")
	return cmd
}

// RunAsk sends one question without continuation and prints the reply.
func RunAsk(ctx context.Context, g *GlobalFlags, opts *AskOptions, question string, out, errOut io.Writer) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return errors.New("question is empty")
	}

	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	logger := g.Logger(cfg, errOut)
	if !g.Debug {
		logger = logger.Level(zerolog.ErrorLevel)
	}
	client := g.Client(cfg, logger)

	sess := session.New(client, session.WithLogger(logger))
	pending := sess.Begin(question)
	outcome := pending.Run(ctx, client)
	reply := sess.Settle(outcome)

	switch {
	case opts.JSON:
		resp := NewJSONResponse("ask", outcome.Response)
		if outcome.Err != nil {
			resp = NewJSONErrorResponse("ask", outcome.Err)
		}
		if err := resp.Write(out); err != nil {
			return err
		}
		return outcome.Err

	case outcome.Err != nil:
		return errors.New(reply.Text)

	case opts.Raw:
		data, err := json.MarshalIndent(outcome.Response, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, HighlightJSON(string(data), ColorsEnabled(g.NoColor, out)))
		return nil
	}

	colors := !opts.Plain && ColorsEnabled(g.NoColor, out)
	printer := NewPrinter(out, PrinterOptions{
		Colors:   colors,
		Markdown: !opts.Plain,
		Theme:    cfg.UI.Theme,
		Width:    TerminalWidth(out),
	})
	printer.PrintReply(reply, AllSections)
	return nil
}
