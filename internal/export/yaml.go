// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/michael-tui/internal/model"
)

// YAMLExporter exports the snapshot as YAML.
type YAMLExporter struct{}

// NewYAMLExporter creates a new YAML exporter.
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Export converts a snapshot to YAML.
func (e *YAMLExporter) Export(snap model.Snapshot) ([]byte, error) {
	if len(snap.Messages) == 0 {
		return nil, ErrEmptyConversation
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileExtension returns ".yaml".
func (e *YAMLExporter) FileExtension() string {
	return ".yaml"
}

// MimeType returns the YAML MIME type.
func (e *YAMLExporter) MimeType() string {
	return "application/yaml"
}
