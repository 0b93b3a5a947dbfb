// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the client for Michael's /chat endpoint.
//
// One user turn is one JSON POST. The response is decoded against a strict
// schema; optional sections that are absent are normalized to empty values.
//
// # Key Types
//
//   - Client: HTTP client for /chat and /health
//   - ChatRequest / ChatResponse: Wire types
//   - ServerError: Non-2xx response (status + body)
//   - FormatError: Response body did not match the expected shape
//   - NetworkError: No response was received
//
// # Usage
//
//	client := api.NewClient("http://localhost:8000")
//	resp, err := client.SendMessage(ctx, "Why is the sky blue?", nil)
//	if err != nil {
//	    return err
//	}
//	next, err := client.SendMessage(ctx, "And sunsets?", &resp.ResponseID)
package api
