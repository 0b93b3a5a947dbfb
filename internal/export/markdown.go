// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeranaias/michael-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

type frontMatter struct {
	Conversation       string `yaml:"conversation"`
	Created            string `yaml:"created"`
	Exported           string `yaml:"exported"`
	Messages           int    `yaml:"messages"`
	PreviousResponseID string `yaml:"previous_response_id,omitempty"`
	Generator          string `yaml:"generator"`
}

// Export converts a snapshot to Markdown.
func (e *MarkdownExporter) Export(snap model.Snapshot) ([]byte, error) {
	if len(snap.Messages) == 0 {
		return nil, ErrEmptyConversation
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		meta, err := yaml.Marshal(frontMatter{
			Conversation:       snap.ID,
			Created:            snap.CreatedAt.Format(time.RFC3339),
			Exported:           snap.ExportedAt.Format(time.RFC3339),
			Messages:           len(snap.Messages),
			PreviousResponseID: snap.PreviousResponseID,
			Generator:          "michael",
		})
		if err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(meta)
		sb.WriteString("---\n\n")
	}

	sb.WriteString("# Conversation with Michael\n\n")

	for _, msg := range snap.Messages {
		e.writeMessage(&sb, msg)
	}
	return []byte(sb.String()), nil
}

func (e *MarkdownExporter) writeMessage(sb *strings.Builder, msg *model.Message) {
	heading := msg.Role.DisplayName()
	if msg.Failed {
		heading += " (error)"
	}
	if e.options.IncludeTimestamps && !msg.CreatedAt.IsZero() {
		heading += " · " + msg.CreatedAt.Format("15:04:05")
	}
	fmt.Fprintf(sb, "## %s\n\n%s\n\n", heading, strings.TrimSpace(msg.Text))

	if msg.HasLenses() {
		for _, lens := range msg.Lenses.Available() {
			fmt.Fprintf(sb, "### %s\n\n%s\n\n", lens.Label(), strings.TrimSpace(msg.Lenses.Get(lens)))
		}
	}

	if msg.HasConfidence() {
		sb.WriteString("### Confidence\n\n")
		writeClaims(sb, "Confident", msg.Confidence.Confident)
		writeClaims(sb, "Uncertain", msg.Confidence.Uncertain)
	}

	if msg.HasSources() {
		sb.WriteString("### Sources\n\n")
		for _, s := range msg.Sources {
			if s.Clickable() {
				fmt.Fprintf(sb, "- [%s](%s)\n", escapeMarkdown(s.Title), s.URL)
			} else {
				fmt.Fprintf(sb, "- %s\n", escapeMarkdown(s.Title))
			}
		}
		sb.WriteString("\n")
	}
}

func writeClaims(sb *strings.Builder, title string, claims []string) {
	if len(claims) == 0 {
		return
	}
	fmt.Fprintf(sb, "**%s**\n\n", title)
	for _, c := range claims {
		fmt.Fprintf(sb, "- %s\n", c)
	}
	sb.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the Markdown MIME type.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}
