// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/jeranaias/michael-tui/internal/model"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	UserText           string  `json:"user_text"`
	PreviousResponseID *string `json:"previous_response_id"`
}

// ChatResponse is a decoded and normalized /chat reply. Lenses, Confidence
// and Sources are always populated, possibly with empty values.
type ChatResponse struct {
	ResponseID string           `json:"response_id"`
	MainText   string           `json:"main_text"`
	Lenses     model.Lenses     `json:"lenses"`
	Confidence model.Confidence `json:"confidence"`
	Sources    []model.Source   `json:"sources"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// wireResponse mirrors the JSON shape with pointers so that absent fields
// can be told apart from empty ones.
type wireResponse struct {
	ResponseID *string         `json:"response_id"`
	MainText   *string         `json:"main_text"`
	Lenses     *wireLenses     `json:"lenses"`
	Confidence *wireConfidence `json:"confidence"`
	Sources    []wireSource    `json:"sources"`
}

type wireLenses struct {
	Physics       string `json:"physics"`
	Math          string `json:"math"`
	Human         string `json:"human"`
	Contemplative string `json:"contemplative"`
}

type wireConfidence struct {
	Confident []string `json:"confident"`
	Uncertain []string `json:"uncertain"`
}

type wireSource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DecodeChatResponse validates body against the /chat response schema.
// response_id and main_text are required strings; lenses, confidence and
// sources are optional but must have the right shape when present.
func DecodeChatResponse(body []byte) (*ChatResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &FormatError{Reason: "empty body"}
	}
	if trimmed[0] != '{' {
		return nil, &FormatError{Reason: "expected a JSON object"}
	}

	var wire wireResponse
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(&wire); err != nil {
		return nil, formatErrorFrom(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &FormatError{Reason: "trailing data after JSON object"}
	}

	if wire.ResponseID == nil {
		return nil, &FormatError{Field: "response_id", Reason: "missing"}
	}
	if wire.MainText == nil {
		return nil, &FormatError{Field: "main_text", Reason: "missing"}
	}

	resp := &ChatResponse{
		ResponseID: *wire.ResponseID,
		MainText:   *wire.MainText,
		Sources:    make([]model.Source, 0, len(wire.Sources)),
	}
	if wire.Lenses != nil {
		resp.Lenses = model.Lenses(*wire.Lenses)
	}
	if wire.Confidence != nil {
		resp.Confidence = model.Confidence(*wire.Confidence)
	}
	if resp.Confidence.Confident == nil {
		resp.Confidence.Confident = []string{}
	}
	if resp.Confidence.Uncertain == nil {
		resp.Confidence.Uncertain = []string{}
	}
	for _, s := range wire.Sources {
		resp.Sources = append(resp.Sources, model.Source(s))
	}
	return resp, nil
}

func formatErrorFrom(err error) *FormatError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "(root)"
		}
		return &FormatError{
			Field:  field,
			Reason: "expected " + typeErr.Type.String() + ", got " + typeErr.Value,
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &FormatError{Reason: "malformed JSON: " + syntaxErr.Error()}
	}
	return &FormatError{Reason: strings.TrimPrefix(err.Error(), "json: ")}
}
