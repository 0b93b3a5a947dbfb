// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine produces four-lens answers for the development backend.
//
// Every question runs through two model calls. The fact spine stage asks
// for a grounded summary followed by a "---SOURCES---" line and a JSON
// array of sources. The synthesis stage receives the question and the fact
// spine and answers with a JSON object holding main_text, the four lenses
// and a confidence assessment. Both parsers degrade instead of failing so
// a malformed model reply still yields a displayable answer.
//
// # Key Types
//
//   - Responder: One instruction-plus-input model call
//   - OpenAIResponder: Responder backed by the OpenAI Responses API
//   - Pipeline: Runs both stages and builds an api.ChatResponse
//
// # Usage
//
//	responder := engine.NewOpenAIResponder(key, "gpt-4o", "")
//	pipeline := engine.NewPipeline(responder, logger)
//	resp, err := pipeline.Generate(ctx, "Why is the sky blue?", nil)
package engine
