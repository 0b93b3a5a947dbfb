// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jeranaias/michael-tui/internal/config"
	"github.com/jeranaias/michael-tui/internal/util"
)

// HealthTimeout bounds the backend ping.
const HealthTimeout = 5 * time.Second

// ErrChecksFailed is returned when at least one check fails.
var ErrChecksFailed = errors.New("one or more checks failed")

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus is the outcome of a single check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarn
	CheckFail
)

// String returns the string representation of the check status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "Pass"
	case CheckWarn:
		return "Warn"
	case CheckFail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// Symbol returns the bracketed marker printed before a check.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return "[OK]"
	case CheckWarn:
		return "[!!]"
	default:
		return "[FAIL]"
	}
}

// HealthCheck is one line of the doctor report.
type HealthCheck struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"-"`
	State   string      `json:"status"`
	Message string      `json:"message"`
	Fix     string      `json:"fix,omitempty"`
}

// =============================================================================
// DOCTOR COMMAND
// =============================================================================

func newDoctorCmd(g *GlobalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"diag"},
		Short:   "Check the configuration and the backend",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := RunChecks(cmd.Context(), g)
			if asJSON {
				var err error
				resp := NewJSONResponse("doctor", checks)
				if failed(checks) {
					err = ErrChecksFailed
					resp = NewJSONErrorResponse("doctor", err)
					resp.Data = checks
				}
				if werr := resp.Write(cmd.OutOrStdout()); werr != nil {
					return werr
				}
				return err
			}
			printChecks(cmd.OutOrStdout(), checks, ColorsEnabled(g.NoColor, cmd.OutOrStdout()))
			if failed(checks) {
				return ErrChecksFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

// RunChecks runs every check in order. A config that fails to load skips
// the backend ping.
func RunChecks(ctx context.Context, g *GlobalFlags) []HealthCheck {
	if ctx == nil {
		ctx = context.Background()
	}
	var checks []HealthCheck

	path, err := g.ResolvedConfigPath()
	if err != nil {
		return append(checks, check("Config", CheckFail, err.Error(), "set MICHAEL_HOME or pass --config"))
	}
	cfg, err := g.LoadConfig()
	if err != nil {
		return append(checks, check("Config", CheckFail, err.Error(), "michael config show"))
	}
	if _, statErr := os.Stat(path); statErr != nil {
		checks = append(checks, check("Config", CheckPass, "using defaults ("+path+" not found)", ""))
	} else {
		checks = append(checks, check("Config", CheckPass, path, ""))
	}

	checks = append(checks, check("API URL", CheckPass, cfg.API.BaseURL, ""))

	pingCtx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()
	start := time.Now()
	health, err := g.Client(cfg, g.Logger(cfg, io.Discard)).Health(pingCtx)
	switch {
	case err != nil:
		checks = append(checks, check("Backend", CheckFail, util.Truncate(err.Error(), 120),
			"start it with: michael serve"))
	case health.Status != "ok":
		checks = append(checks, check("Backend", CheckWarn, "status "+health.Status, ""))
	default:
		checks = append(checks, check("Backend", CheckPass,
			fmt.Sprintf("healthy (%s)", time.Since(start).Round(time.Millisecond)), ""))
	}

	if cfg.Server.OpenAIKey == "" {
		checks = append(checks, check("OpenAI key", CheckWarn, "OPENAI_API_KEY not set",
			"only needed for michael serve"))
	} else {
		checks = append(checks, check("OpenAI key", CheckPass, "set", ""))
	}

	if hist, err := config.HistoryPath(); err == nil {
		checks = append(checks, check("History", CheckPass, hist, ""))
	}
	return checks
}

func check(name string, status CheckStatus, msg, fix string) HealthCheck {
	return HealthCheck{Name: name, Status: status, State: status.String(), Message: msg, Fix: fix}
}

func failed(checks []HealthCheck) bool {
	for _, c := range checks {
		if c.Status == CheckFail {
			return true
		}
	}
	return false
}

func printChecks(w io.Writer, checks []HealthCheck, colors bool) {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(ColorProfile(colors)))
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	pass := r.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	warn := r.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	fail := r.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	fix := r.NewStyle().Italic(true).Foreground(lipgloss.Color("245")).PaddingLeft(2)
	dim := r.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Fprintln(w, title.Render("Michael Doctor"))
	fmt.Fprintln(w)

	var nPass, nWarn, nFail int
	for _, c := range checks {
		style := pass
		switch c.Status {
		case CheckPass:
			nPass++
		case CheckWarn:
			nWarn++
			style = warn
		default:
			nFail++
			style = fail
		}
		fmt.Fprintf(w, "%s %s: %s\n", style.Render(c.Status.Symbol()), util.PadRight(c.Name, 10), c.Message)
		if c.Fix != "" && c.Status != CheckPass {
			fmt.Fprintln(w, fix.Render("-> "+c.Fix))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, dim.Render(fmt.Sprintf("%d passed, %d warnings, %d failed", nPass, nWarn, nFail)))
}
