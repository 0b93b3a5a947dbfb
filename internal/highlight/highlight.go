// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package highlight tags colour words in text so they can be rendered in
// their own colour.
//
// Matching is whole-word and case-insensitive against a fixed vocabulary.
// Output segments concatenate back to the input exactly.
//
// # Usage
//
//	for _, seg := range highlight.Segments("the sky is blue") {
//	    if seg.Colored() {
//	        // render seg.Text in seg.Color
//	    }
//	}
package highlight

import (
	"regexp"
	"sort"
	"strings"
)

// Palette maps lowercase colour names to display colours.
var Palette = map[string]string{
	"red":        "#FF8A8A",
	"orange":     "#FFB87A",
	"yellow":     "#FFE57A",
	"green":      "#8AE6A2",
	"blue":       "#8AC4FF",
	"purple":     "#C48AFF",
	"violet":     "#C48AFF",
	"pink":       "#FFB3D9",
	"cyan":       "#8AE8E8",
	"teal":       "#7AD4C8",
	"magenta":    "#FF8AD8",
	"indigo":     "#A08AFF",
	"gold":       "#FFD97A",
	"silver":     "#C8D0D8",
	"white":      "#E8E8E8",
	"black":      "#8A8A8A",
	"brown":      "#C4A882",
	"gray":       "#B0B0B0",
	"grey":       "#B0B0B0",
	"crimson":    "#FF7A8A",
	"scarlet":    "#FF7A6E",
	"maroon":     "#CC8A8A",
	"navy":       "#8A9ECC",
	"turquoise":  "#7AD8D0",
	"coral":      "#FF9E8A",
	"salmon":     "#FFA08A",
	"lavender":   "#C8A8FF",
	"amber":      "#FFCC6E",
	"lime":       "#B8E87A",
	"olive":      "#B8C88A",
	"aqua":       "#8AE8E8",
	"rose":       "#FFA0B8",
	"peach":      "#FFCCA8",
	"mint":       "#8AE8C0",
	"ivory":      "#E8E0D0",
	"beige":      "#D8C8A8",
	"tan":        "#D8C0A0",
	"chartreuse": "#C0E87A",
	"plum":       "#D08ACA",
	"mauve":      "#D8A0CC",
	"lilac":      "#CCA8E0",
}

var colorWord = compile()

func compile() *regexp.Regexp {
	names := Names()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Segment is a run of text, optionally tagged with a colour.
type Segment struct {
	Text  string
	Color string
}

// Colored reports whether the segment carries a colour.
func (s Segment) Colored() bool {
	return s.Color != ""
}

// Names returns the vocabulary in sorted order.
func Names() []string {
	names := make([]string, 0, len(Palette))
	for n := range Palette {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the colour for word, ignoring case.
func Lookup(word string) (string, bool) {
	c, ok := Palette[strings.ToLower(word)]
	return c, ok
}

// Segments splits text into plain and coloured runs, left to right.
// Empty plain runs are omitted; empty input yields no segments.
func Segments(text string) []Segment {
	matches := colorWord.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return nil
		}
		return []Segment{{Text: text}}
	}

	segs := make([]Segment, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segs = append(segs, Segment{Text: text[last:m[0]]})
		}
		word := text[m[0]:m[1]]
		color, _ := Lookup(word)
		segs = append(segs, Segment{Text: word, Color: color})
		last = m[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Text: text[last:]})
	}
	return segs
}

// HasColors reports whether text contains any colour word.
func HasColors(text string) bool {
	return colorWord.MatchString(text)
}
