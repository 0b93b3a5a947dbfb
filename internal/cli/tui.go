// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/michael-tui/internal/config"
	"github.com/jeranaias/michael-tui/internal/logging"
	"github.com/jeranaias/michael-tui/internal/session"
	"github.com/jeranaias/michael-tui/internal/ui/chat"
	"github.com/jeranaias/michael-tui/internal/ui/styles"
)

func newTUICmd(g *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen chat (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}
}

// runTUI starts the Bubble Tea program. Logs go to the configured file
// since the terminal belongs to the UI.
func runTUI(cmd *cobra.Command, g *GlobalFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}

	logger := zerolog.Nop()
	if cfg.Log.File != "" {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = logging.New(logging.Config{Level: cfg.Log.Level, Output: f})
	}
	logger.Info().Str("api_url", cfg.API.BaseURL).Str("version", Version).Msg("starting tui")

	sess := session.New(g.Client(cfg, logger), session.WithLogger(logging.WithComponent(logger, "session")))
	theme := styles.NewTheme(cfg.UI.Theme)

	reloads := make(chan chat.ConfigReloadedMsg, 1)
	if path, err := g.ResolvedConfigPath(); err == nil {
		err = config.Watch(ctx, path, func(c *config.Config, err error) {
			if c != nil {
				g.applyOverrides(c)
			}
			select {
			case reloads <- chat.ConfigReloadedMsg{Config: c, Err: err}:
			case <-ctx.Done():
			}
		})
		if err != nil {
			logger.Warn().Err(err).Msg("config watcher disabled")
		}
	}

	model := chat.New(chat.Options{
		Session:        sess,
		Theme:          theme,
		Splash:         cfg.UI.Splash,
		SplashDuration: cfg.UI.SplashDuration.Duration,
		Colors:         cfg.UI.HighlightColors,
		Hyperlinks:     cfg.UI.Hyperlinks,
		Context:        ctx,
		Reloads:        reloads,
		Logger:         logging.WithComponent(logger, "ui"),
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
