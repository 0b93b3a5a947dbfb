// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		logged  []string
		dropped []string
	}{
		{"trace", []string{"trace-msg", "debug-msg", "info-msg"}, nil},
		{"debug", []string{"debug-msg", "info-msg"}, []string{"trace-msg"}},
		{"info", []string{"info-msg", "warn-msg"}, []string{"debug-msg"}},
		{"warn", []string{"warn-msg"}, []string{"info-msg"}},
		{"error", []string{"error-msg"}, []string{"warn-msg"}},
		{"bogus", []string{"info-msg"}, []string{"debug-msg"}},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tc.level, Output: &buf})

			logger.Trace().Msg("trace-msg")
			logger.Debug().Msg("debug-msg")
			logger.Info().Msg("info-msg")
			logger.Warn().Msg("warn-msg")
			logger.Error().Msg("error-msg")

			out := buf.String()
			for _, want := range tc.logged {
				assert.Contains(t, out, want)
			}
			for _, not := range tc.dropped {
				assert.NotContains(t, out, not)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.True(t, ValidLevel("Debug"))
	assert.False(t, ValidLevel("loud"))
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "session")

	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"session"`)
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Pretty: true, NoColor: true, Output: &buf})

	logger.Info().Msg("pretty message")

	assert.Contains(t, buf.String(), "pretty message")
}

func TestOpenFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "michael.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}
