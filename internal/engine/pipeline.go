// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/michael-tui/internal/api"
	"github.com/jeranaias/michael-tui/internal/model"
)

// Pipeline runs the fact spine and synthesis stages.
type Pipeline struct {
	responder Responder
	logger    zerolog.Logger
}

// NewPipeline creates a pipeline over responder.
func NewPipeline(responder Responder, logger zerolog.Logger) *Pipeline {
	return &Pipeline{responder: responder, logger: logger}
}

// Generate answers userText. previousResponseID chains the fact spine call
// to the prior turn; the returned ResponseID is the synthesis call's ID.
func (p *Pipeline) Generate(ctx context.Context, userText string, previousResponseID *string) (*api.ChatResponse, error) {
	if p.responder == nil {
		return nil, errors.New("no responder configured")
	}
	start := time.Now()

	factID, factRaw, err := p.responder.Respond(ctx, FactSpineInstructions, userText, previousResponseID)
	if err != nil {
		return nil, fmt.Errorf("fact spine: %w", err)
	}
	fact, sources := ParseFactSpine(factRaw)

	p.logger.Debug().
		Str("response_id", factID).
		Int("sources", len(sources)).
		Dur("elapsed", time.Since(start)).
		Msg("fact spine ready")

	synthID, synthRaw, err := p.responder.Respond(ctx, SynthesisInstructions, SynthesisInput(userText, fact), &factID)
	if err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}
	synth := ParseSynthesis(strings.TrimSpace(synthRaw))
	if !synth.Parsed {
		p.logger.Warn().Str("response_id", synthID).Msg("synthesis reply was not valid JSON, using fallback")
	}

	if sources == nil {
		sources = []model.Source{}
	}
	if synth.Confidence.Confident == nil {
		synth.Confidence.Confident = []string{}
	}
	if synth.Confidence.Uncertain == nil {
		synth.Confidence.Uncertain = []string{}
	}

	p.logger.Info().
		Str("response_id", synthID).
		Dur("elapsed", time.Since(start)).
		Msg("answer generated")

	return &api.ChatResponse{
		ResponseID: synthID,
		MainText:   synth.MainText,
		Lenses:     synth.Lenses,
		Confidence: synth.Confidence,
		Sources:    sources,
	}, nil
}
