// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the michael command line.
//
// Running michael with no arguments opens the full-screen chat. The other
// commands cover one-shot questions, a line-mode REPL, the development
// backend and configuration housekeeping.
//
// # Commands
//
//   - tui: Full-screen chat (default)
//   - ask: One-shot question, rendered or as JSON
//   - chat: Line-mode REPL with history
//   - serve: Development backend (POST /chat, GET /health)
//   - doctor: Config summary and backend health check
//   - config: path, show, get, set and keys
//   - version: Build information
//
// # Global Flags
//
//	--config PATH    Config file (default ~/.michael/config.toml)
//	--api-url URL    Backend base URL, overrides config and environment
//	--debug          Debug logging
//	--no-color       Disable colours
//
// # Usage
//
//	os.Exit(cli.Execute())
package cli
