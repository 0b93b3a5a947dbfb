// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the development backend HTTP server.
//
// It speaks the same wire contract the chat client uses:
//
//	POST /chat    {"user_text": "...", "previous_response_id": null}
//	GET  /health  {"status": "ok"}
//
// Answers come from a Generator, normally an engine.Pipeline.
//
// # Middleware
//
// Requests pass through, in order:
//   - Panic recovery with stack logging
//   - Request IDs (X-Request-ID, generated with google/uuid when absent)
//   - Structured access logging with zerolog
//   - CORS from the allowed origin list
//   - Per-client-IP token bucket rate limiting (golang.org/x/time/rate)
//
// # Usage
//
//	srv := server.New(pipeline, server.ConfigFrom(cfg.Server), logger)
//	err := srv.ListenAndServe(ctx)
package server
