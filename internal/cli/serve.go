// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/michael-tui/internal/engine"
	"github.com/jeranaias/michael-tui/internal/logging"
	"github.com/jeranaias/michael-tui/internal/server"
)

// ServeOptions are the flags of the serve command.
type ServeOptions struct {
	Addr  string
	Model string
}

func newServeCmd(g *GlobalFlags) *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development backend (POST /chat, GET /health)",
		Long: `Run the chat backend locally. Answers are produced by a two-stage
pipeline on the OpenAI Responses API; OPENAI_API_KEY must be set in the
environment or in .env.`,
		Example: `  michael serve
  michael serve --addr :9000 --model gpt-4o-mini`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.LoadConfig()
			if err != nil {
				return err
			}
			if opts.Addr != "" {
				cfg.Server.Addr = opts.Addr
			}
			if opts.Model != "" {
				cfg.Server.Model = opts.Model
			}

			logger := g.Logger(cfg, cmd.ErrOrStderr())
			if cfg.Server.OpenAIKey == "" {
				logger.Warn().Msg("OPENAI_API_KEY is not set; /chat will answer 500 until it is")
			}

			responder := engine.NewOpenAIResponder(cfg.Server.OpenAIKey, cfg.Server.Model, cfg.Server.OpenAIBaseURL)
			pipeline := engine.NewPipeline(responder, logging.WithComponent(logger, "engine"))
			srv := server.New(pipeline, server.ConfigFrom(cfg.Server), logging.WithComponent(logger, "server"))

			logger.Info().
				Str("addr", srv.Addr()).
				Str("model", responder.Model()).
				Strs("allowed_origins", cfg.Server.AllowedOrigins).
				Msg("backend listening")
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from config, :8000)")
	cmd.Flags().StringVar(&opts.Model, "model", "", "OpenAI model (default from config, "+engine.DefaultModel+")")
	return cmd
}
