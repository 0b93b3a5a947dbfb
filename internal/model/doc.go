// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the domain types shared by the API client, the
// session, the terminal UI and the exporters.
//
// # Key Types
//
//   - Conversation: Append-only message list plus the continuation token
//   - Message: Single immutable message with optional lenses, confidence and sources
//   - Lenses: The four perspectives (physics, math, human, contemplative)
//   - IDGenerator: Source of per-session unique message IDs
//
// # Usage
//
// Create a conversation and append messages:
//
//	ids := model.NewSequenceGenerator(nil)
//	conv := model.NewConversation()
//	conv.Append(model.NewUserMessage(ids.Next(), "Why is the sky blue?"))
//
// Thread the continuation token:
//
//	conv.SetToken(resp.ResponseID)
//	next := conv.Token() // passed as previous_response_id
package model
