// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the state of one conversation with Michael.
//
// A send is a two-phase transition. Begin records the user message and
// marks the session loading; the returned Pending performs the network call
// without touching session state; Settle appends the reply (or a synthesized
// error message) and clears the loading flag. Interactive front ends run
// Pending.Run on a worker and call Settle from their event loop; the REPL
// and one-shot commands use Send, which does all three in order.
//
// # Key Types
//
//   - Session: Messages, loading flag and continuation token
//   - Sender: Anything that can deliver a user turn (api.Client)
//   - Pending: A user turn that has been recorded but not answered
//   - Outcome: The result of running a Pending
//
// # Usage
//
//	s := session.New(api.NewClient(baseURL))
//	reply, err := s.Send(ctx, "Why is the sky blue?")
//	// reply is always non-nil; err is informational
//
// Split across an event loop:
//
//	p := s.Begin(text)
//	go func() { results <- p.Run(ctx, client) }()
//	...
//	s.Settle(<-results)
package session
