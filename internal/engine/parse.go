// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"encoding/json"
	"strings"

	"github.com/jeranaias/michael-tui/internal/model"
)

// Fallback text used when the synthesis reply cannot be structured.
const (
	FallbackMainText  = "I couldn't structure that response clearly. Please try again."
	FallbackUncertain = "Response could not be parsed into structured format."
)

// =============================================================================
// FACT SPINE
// =============================================================================

// ParseFactSpine splits raw at the first SourcesMarker. The text before it
// is the fact spine; the text after it is decoded as a JSON array of
// sources. A malformed array yields no sources and non-object entries are
// skipped. Without a marker the whole reply is the fact spine.
func ParseFactSpine(raw string) (string, []model.Source) {
	before, after, found := strings.Cut(raw, SourcesMarker)
	if !found {
		return raw, nil
	}

	fact := strings.TrimSpace(before)

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(after)), &entries); err != nil {
		return fact, nil
	}

	sources := make([]model.Source, 0, len(entries))
	for _, e := range entries {
		var fields map[string]any
		if err := json.Unmarshal(e, &fields); err != nil || fields == nil {
			continue
		}
		title, _ := fields["title"].(string)
		url, _ := fields["url"].(string)
		sources = append(sources, model.Source{Title: title, URL: url})
	}
	return fact, sources
}

// =============================================================================
// SYNTHESIS
// =============================================================================

// Synthesis is the structured stage B answer.
type Synthesis struct {
	MainText   string           `json:"main_text"`
	Lenses     model.Lenses     `json:"lenses"`
	Confidence model.Confidence `json:"confidence"`

	// Parsed is false when the fallback was used.
	Parsed bool `json:"-"`
}

// ParseSynthesis extracts the synthesis object from raw. It strips code
// fence lines and decodes the rest as JSON. Failing that it looks for the
// first balanced {...} object with a string main_text. As a last resort
// the first non-empty line not starting with "{" becomes the main text and
// the confidence notes that parsing failed.
func ParseSynthesis(raw string) Synthesis {
	text := stripFences(strings.TrimSpace(raw))

	if s, ok := decodeSynthesis(text, false); ok {
		return s
	}

	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end := matchBrace(text, start); end > start {
			if s, ok := decodeSynthesis(text[start:end+1], true); ok {
				return s
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	return fallbackSynthesis(text)
}

// stripFences drops ``` lines when the reply is wrapped in a code fence.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "```") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

// decodeSynthesis decodes one JSON object. requireMain demands a string
// main_text field.
func decodeSynthesis(text string, requireMain bool) (Synthesis, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil || probe == nil {
		return Synthesis{}, false
	}
	if requireMain {
		var main string
		if err := json.Unmarshal(probe["main_text"], &main); err != nil {
			return Synthesis{}, false
		}
	}

	var s Synthesis
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return Synthesis{}, false
	}
	s.Parsed = true
	return s, true
}

// matchBrace returns the index of the brace closing text[start], skipping
// braces inside JSON strings, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func fallbackSynthesis(text string) Synthesis {
	main := FallbackMainText
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" && !strings.HasPrefix(l, "{") {
			main = l
			break
		}
	}
	return Synthesis{
		MainText: main,
		Confidence: model.Confidence{
			Confident: []string{},
			Uncertain: []string{FallbackUncertain},
		},
	}
}
