// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jeranaias/michael-tui/internal/model"
	"github.com/jeranaias/michael-tui/internal/util"
)

// ErrEmptyConversation is returned when there is nothing to export.
var ErrEmptyConversation = errors.New("conversation has no messages")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a conversation snapshot into a file format.
type Exporter interface {
	// Export renders the snapshot.
	Export(snap model.Snapshot) ([]byte, error)

	// FileExtension returns the extension including the dot (e.g. ".md").
	FileExtension() string

	// MimeType returns the MIME type of the output.
	MimeType() string
}

// Options configures export behavior.
type Options struct {
	// IncludeMetadata adds front matter / header information.
	IncludeMetadata bool

	// IncludeTimestamps adds per-message times to Markdown output.
	IncludeTimestamps bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeMetadata:   true,
		IncludeTimestamps: false,
	}
}

// ForFormat returns the exporter for a format name ("markdown", "md",
// "json", "yaml", "yml").
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(), nil
	case "yaml", "yml":
		return NewYAMLExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (use md, json or yaml)", format)
	}
}

// ForPath picks an exporter from the file extension; no extension means
// Markdown.
func ForPath(path string, opts *Options) (Exporter, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return NewMarkdownExporter(opts), nil
	}
	return ForFormat(ext, opts)
}

// ToFile exports snap to path, choosing the format from the extension and
// appending ".md" when there is none. The written path is returned.
func ToFile(path string, snap model.Snapshot, opts *Options) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("export path is empty")
	}
	if len(snap.Messages) == 0 {
		return "", ErrEmptyConversation
	}

	exporter, err := ForPath(path, opts)
	if err != nil {
		return "", err
	}
	if filepath.Ext(path) == "" {
		path += exporter.FileExtension()
	}

	content, err := exporter.Export(snap)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}
