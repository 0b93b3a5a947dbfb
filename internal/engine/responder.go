// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// ErrMissingAPIKey is returned on first use when no API key is set.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set in environment or .env")

// Responder performs a single model call. previousID chains the call to an
// earlier response when non-nil.
type Responder interface {
	Respond(ctx context.Context, instructions, input string, previousID *string) (id, text string, err error)
}

// =============================================================================
// OPENAI RESPONDER
// =============================================================================

// OpenAIResponder implements Responder with the OpenAI Responses API. The
// client is created on first use so a missing key only fails requests,
// not startup.
type OpenAIResponder struct {
	apiKey  string
	model   string
	baseURL string

	once    sync.Once
	client  *openai.Client
	initErr error
}

// NewOpenAIResponder creates a responder. An empty model selects
// DefaultModel; an empty baseURL targets the public API.
func NewOpenAIResponder(apiKey, model, baseURL string) *OpenAIResponder {
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIResponder{apiKey: apiKey, model: model, baseURL: baseURL}
}

// Model returns the configured model name.
func (r *OpenAIResponder) Model() string {
	return r.model
}

func (r *OpenAIResponder) getClient() (*openai.Client, error) {
	r.once.Do(func() {
		if r.apiKey == "" {
			r.initErr = ErrMissingAPIKey
			return
		}
		opts := []option.RequestOption{option.WithAPIKey(r.apiKey)}
		if r.baseURL != "" {
			opts = append(opts, option.WithBaseURL(r.baseURL))
		}
		client := openai.NewClient(opts...)
		r.client = &client
	})
	return r.client, r.initErr
}

// Respond sends instructions and input as one Responses call.
func (r *OpenAIResponder) Respond(ctx context.Context, instructions, input string, previousID *string) (string, string, error) {
	client, err := r.getClient()
	if err != nil {
		return "", "", err
	}

	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(r.model),
		Instructions: openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(input),
		},
	}
	if previousID != nil && *previousID != "" {
		params.PreviousResponseID = openai.String(*previousID)
	}

	resp, err := client.Responses.New(ctx, params)
	if err != nil {
		return "", "", fmt.Errorf("responses request failed: %w", err)
	}
	return resp.ID, resp.OutputText(), nil
}
