// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeranaias/michael-tui/internal/api"
	"github.com/jeranaias/michael-tui/internal/config"
	"github.com/jeranaias/michael-tui/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigPath string
	APIURL     string
	Debug      bool
	NoColor    bool
}

// AddFlags registers the global flags on flags.
func (g *GlobalFlags) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&g.ConfigPath, "config", "", "Config file (default ~/.michael/config.toml)")
	flags.StringVar(&g.APIURL, "api-url", "", "Backend base URL (overrides config and MICHAEL_API_URL)")
	flags.BoolVar(&g.Debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&g.NoColor, "no-color", false, "Disable coloured output")
}

// LoadConfig loads .env, the config file and the flag overrides.
func (g *GlobalFlags) LoadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return nil, err
	}
	g.applyOverrides(cfg)
	return cfg, nil
}

func (g *GlobalFlags) applyOverrides(cfg *config.Config) {
	if g.APIURL != "" {
		cfg.API.BaseURL = g.APIURL
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if g.NoColor {
		cfg.UI.HighlightColors = false
	}
}

// ResolvedConfigPath returns --config or the default path.
func (g *GlobalFlags) ResolvedConfigPath() (string, error) {
	if g.ConfigPath != "" {
		return g.ConfigPath, nil
	}
	return config.Path()
}

// Logger builds a console logger writing to w. Terminals get pretty output.
func (g *GlobalFlags) Logger(cfg *config.Config, w io.Writer) zerolog.Logger {
	return logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty || IsTerminal(w),
		NoColor: g.NoColor || !ColorsEnabled(false, w),
		Output:  w,
	})
}

// Client builds an API client from cfg.
func (g *GlobalFlags) Client(cfg *config.Config, logger zerolog.Logger) *api.Client {
	return api.NewClient(cfg.API.BaseURL).
		WithTimeout(cfg.API.Timeout.Duration).
		WithLogger(logging.WithComponent(logger, "api"))
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the command tree. Running it without a subcommand
// opens the TUI.
func NewRootCmd() *cobra.Command {
	g := &GlobalFlags{}

	root := &cobra.Command{
		Use:   "michael",
		Short: "Michael - four lenses on any question",
		Long: `Michael answers a question through four lenses (physics, math, human and
contemplative) with a confidence assessment and sources.

Run without arguments to open the full-screen chat.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
	}
	g.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newTUICmd(g),
		newAskCmd(g),
		newChatCmd(g),
		newServeCmd(g),
		newDoctorCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("michael version %s\n", Version)
			cmd.Printf("Git commit: %s\n", GitCommit)
			cmd.Printf("Build date: %s\n", BuildDate)
		},
	}
}
