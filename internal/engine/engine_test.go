// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/michael-tui/internal/model"
)

// =============================================================================
// FACT SPINE
// =============================================================================

func TestParseFactSpine(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		fact    string
		sources []model.Source
	}{
		{
			name: "no marker",
			raw:  "Just facts.",
			fact: "Just facts.",
		},
		{
			name: "sources split",
			raw:  "Light scatters.\n---SOURCES---\n[{\"title\":\"Rayleigh\",\"url\":\"https://x.org\"},{\"title\":\"Notes\"}]",
			fact: "Light scatters.",
			sources: []model.Source{
				{Title: "Rayleigh", URL: "https://x.org"},
				{Title: "Notes"},
			},
		},
		{
			name: "malformed array",
			raw:  "Facts.\n---SOURCES---\n[{broken",
			fact: "Facts.",
		},
		{
			name:    "non-object entries skipped",
			raw:     "Facts.\n---SOURCES---\n[\"x\", 3, {\"title\":\"Kept\",\"url\":\"\"}]",
			fact:    "Facts.",
			sources: []model.Source{{Title: "Kept"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fact, sources := ParseFactSpine(tc.raw)
			assert.Equal(t, tc.fact, fact)
			if len(tc.sources) == 0 {
				assert.Empty(t, sources)
			} else {
				assert.Equal(t, tc.sources, sources)
			}
		})
	}
}

// =============================================================================
// SYNTHESIS
// =============================================================================

const validSynthesis = `{"main_text":"Blue light scatters most.","lenses":{"physics":"P","math":"M","human":"H","contemplative":"C"},"confidence":{"confident":["a"],"uncertain":["b"]}}`

func TestParseSynthesis(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		s := ParseSynthesis(validSynthesis)
		assert.True(t, s.Parsed)
		assert.Equal(t, "Blue light scatters most.", s.MainText)
		assert.Equal(t, "C", s.Lenses.Contemplative)
		assert.Equal(t, []string{"b"}, s.Confidence.Uncertain)
	})

	t.Run("fenced", func(t *testing.T) {
		s := ParseSynthesis("```json\n" + validSynthesis + "\n```")
		assert.True(t, s.Parsed)
		assert.Equal(t, "P", s.Lenses.Physics)
	})

	t.Run("embedded in prose", func(t *testing.T) {
		s := ParseSynthesis("Here you go: " + validSynthesis + " hope that helps {")
		assert.True(t, s.Parsed)
		assert.Equal(t, "Blue light scatters most.", s.MainText)
	})

	t.Run("skips objects without main_text", func(t *testing.T) {
		s := ParseSynthesis(`note {"x": "{"} then {"main_text": "found"}`)
		assert.True(t, s.Parsed)
		assert.Equal(t, "found", s.MainText)
	})

	t.Run("fallback to first line", func(t *testing.T) {
		s := ParseSynthesis("{not json\nThe sky is blue because of scattering.\nMore.")
		assert.False(t, s.Parsed)
		assert.Equal(t, "The sky is blue because of scattering.", s.MainText)
		assert.Equal(t, []string{FallbackUncertain}, s.Confidence.Uncertain)
		assert.True(t, s.Lenses.IsEmpty())
	})

	t.Run("fallback text", func(t *testing.T) {
		s := ParseSynthesis("{{{")
		assert.Equal(t, FallbackMainText, s.MainText)
	})
}

// =============================================================================
// PIPELINE
// =============================================================================

type call struct {
	instructions string
	input        string
	previousID   *string
}

type scriptedResponder struct {
	calls   []call
	replies []string
	err     error
}

func (r *scriptedResponder) Respond(_ context.Context, instructions, input string, previousID *string) (string, string, error) {
	r.calls = append(r.calls, call{instructions, input, previousID})
	if r.err != nil {
		return "", "", r.err
	}
	n := len(r.calls)
	return "resp_" + string(rune('0'+n)), r.replies[n-1], nil
}

func TestPipeline_Generate(t *testing.T) {
	responder := &scriptedResponder{replies: []string{
		"Scattering.\n---SOURCES---\n[{\"title\":\"Rayleigh\",\"url\":\"https://x.org\"}]",
		validSynthesis,
	}}
	p := NewPipeline(responder, zerolog.Nop())

	prev := "resp_prev"
	resp, err := p.Generate(context.Background(), "Why is the sky blue?", &prev)
	require.NoError(t, err)

	require.Len(t, responder.calls, 2)
	assert.Equal(t, FactSpineInstructions, responder.calls[0].instructions)
	assert.Equal(t, "Why is the sky blue?", responder.calls[0].input)
	assert.Equal(t, &prev, responder.calls[0].previousID)

	assert.Equal(t, SynthesisInput("Why is the sky blue?", "Scattering."), responder.calls[1].input)
	require.NotNil(t, responder.calls[1].previousID)
	assert.Equal(t, "resp_1", *responder.calls[1].previousID)

	assert.Equal(t, "resp_2", resp.ResponseID)
	assert.Equal(t, "Blue light scatters most.", resp.MainText)
	assert.Equal(t, []model.Source{{Title: "Rayleigh", URL: "https://x.org"}}, resp.Sources)
}

func TestPipeline_EmptyCollectionsAreNotNil(t *testing.T) {
	responder := &scriptedResponder{replies: []string{"Facts.", `{"main_text":"ok"}`}}
	resp, err := NewPipeline(responder, zerolog.Nop()).Generate(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.NotNil(t, resp.Sources)
	assert.NotNil(t, resp.Confidence.Confident)
	assert.NotNil(t, resp.Confidence.Uncertain)
	assert.Nil(t, responder.calls[0].previousID)
}

func TestPipeline_Error(t *testing.T) {
	responder := &scriptedResponder{err: errors.New("quota exceeded")}
	_, err := NewPipeline(responder, zerolog.Nop()).Generate(context.Background(), "q", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestOpenAIResponder_MissingKey(t *testing.T) {
	r := NewOpenAIResponder("", "", "")
	assert.Equal(t, DefaultModel, r.Model())

	_, _, err := r.Respond(context.Background(), "i", "x", nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
