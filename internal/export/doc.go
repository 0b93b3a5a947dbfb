// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversation transcripts to files.
//
// Export only happens on an explicit user command; sessions are otherwise
// kept in memory.
//
// # Supported Formats
//
//   - Markdown (.md): YAML front matter plus one section per message
//   - JSON (.json): The snapshot, indented
//   - YAML (.yaml, .yml): The snapshot as YAML
//
// # Usage
//
//	path, err := export.ToFile("chat.md", sess.Snapshot(), nil)
package export
