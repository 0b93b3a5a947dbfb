// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the CLI, TUI and exporters.
//
// # Key Functions
//
//   - AtomicWriteFile: Crash-safe file writing with fsync
//   - Truncate: Display-width aware truncation with an ellipsis
//   - PadRight: Display-width aware padding
//
// # Usage
//
//	title := util.Truncate(source.Title, 40)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
