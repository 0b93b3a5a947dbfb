// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/michael-tui/internal/model"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		ID:                 "conv_test",
		CreatedAt:          time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		ExportedAt:         time.Date(2025, 1, 2, 4, 0, 0, 0, time.UTC),
		PreviousResponseID: "resp_7",
		Messages: []*model.Message{
			model.NewUserMessage("m1", "Why is the sky blue?"),
			model.NewAssistantMessage("m2", "Rayleigh scattering.",
				model.Lenses{Physics: "Short wavelengths scatter more.", Contemplative: "Look up."},
				model.Confidence{Confident: []string{"scattering"}, Uncertain: []string{"beauty"}},
				[]model.Source{{Title: "Rayleigh [1871]", URL: "https://example.org/r"}, {Title: "Notes"}}),
			model.NewErrorMessage("m3", "Connection error: refused"),
		},
	}
}

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter(nil).Export(sampleSnapshot())
	require.NoError(t, err)
	md := string(out)

	assert.Contains(t, md, "conversation: conv_test")
	assert.Contains(t, md, "previous_response_id: resp_7")
	assert.Contains(t, md, "## You\n\nWhy is the sky blue?")
	assert.Contains(t, md, "## Michael\n\nRayleigh scattering.")
	assert.Contains(t, md, "### Physics")
	assert.NotContains(t, md, "### Math", "blank lenses are skipped")
	assert.Contains(t, md, "**Uncertain**")
	assert.Contains(t, md, `- [Rayleigh \[1871\]](https://example.org/r)`)
	assert.Contains(t, md, "- Notes\n")
	assert.Contains(t, md, "## Michael (error)")
}

func TestMarkdownExporter_NoMetadata(t *testing.T) {
	out, err := NewMarkdownExporter(&Options{}).Export(sampleSnapshot())
	require.NoError(t, err)
	assert.NotContains(t, string(out), "---\n")
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleSnapshot())
	require.NoError(t, err)

	var decoded model.Snapshot
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Len(t, decoded.Messages, 3)
	assert.Equal(t, "resp_7", decoded.PreviousResponseID)
}

func TestYAMLExporter(t *testing.T) {
	out, err := NewYAMLExporter().Export(sampleSnapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "conv_test", decoded["id"])
	assert.Len(t, decoded["messages"], 3)
}

func TestEmptyConversation(t *testing.T) {
	for _, e := range []Exporter{NewMarkdownExporter(nil), NewJSONExporter(), NewYAMLExporter()} {
		_, err := e.Export(model.Snapshot{})
		assert.ErrorIs(t, err, ErrEmptyConversation)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		err  bool
	}{
		{"chat.md", ".md", false},
		{"chat", ".md", false},
		{"chat.JSON", ".json", false},
		{"chat.yml", ".yaml", false},
		{"chat.pdf", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			e, err := ForPath(tc.path, nil)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.ext, e.FileExtension())
		})
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()

	path, err := ToFile(filepath.Join(dir, "transcript"), sampleSnapshot(), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transcript.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Conversation with Michael")

	_, err = ToFile(filepath.Join(dir, "x.json"), model.Snapshot{}, nil)
	assert.ErrorIs(t, err, ErrEmptyConversation)
}
