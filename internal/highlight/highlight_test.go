// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colored(segs []Segment) []string {
	var out []string
	for _, s := range segs {
		if s.Colored() {
			out = append(out, s.Text)
		}
	}
	return out
}

func join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestSegments_SkyAndGrass(t *testing.T) {
	text := "the sky is blue and the grass is green"
	segs := Segments(text)

	require.Equal(t, []Segment{
		{Text: "the sky is "},
		{Text: "blue", Color: "#8AC4FF"},
		{Text: " and the grass is "},
		{Text: "green", Color: "#8AE6A2"},
	}, segs)
	assert.Equal(t, text, join(segs))
}

func TestSegments_WholeWordCaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"capitalised", "Indigo dye", []string{"Indigo"}},
		{"upper", "RED alert", []string{"RED"}},
		{"not inside word", "indigotic reddish bluest", nil},
		{"punctuation boundary", "(teal), mauve.", []string{"teal", "mauve"}},
		{"repeated", "red red RED", []string{"red", "red", "RED"}},
		{"no colours", "nothing here", nil},
		{"prefix word", "tangent tan", []string{"tan"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			segs := Segments(tc.text)
			assert.Equal(t, tc.want, colored(segs))
			assert.Equal(t, tc.text, join(segs))
		})
	}
}

func TestSegments_RepeatedWordsAreSeparate(t *testing.T) {
	segs := Segments("red red")
	require.Len(t, segs, 3)
	assert.Equal(t, " ", segs[1].Text)
	assert.False(t, segs[1].Colored())
}

func TestSegments_Empty(t *testing.T) {
	assert.Empty(t, Segments(""))
}

func TestSegments_OnlyColour(t *testing.T) {
	assert.Equal(t, []Segment{{Text: "Lilac", Color: "#CCA8E0"}}, Segments("Lilac"))
}

func TestPalette(t *testing.T) {
	assert.Len(t, Palette, 41)
	for name, color := range Palette {
		assert.Equal(t, strings.ToLower(name), name)
		assert.Regexp(t, `^#[0-9A-F]{6}$`, color)
	}

	c, ok := Lookup("GREY")
	assert.True(t, ok)
	assert.Equal(t, Palette["gray"], c)

	names := Names()
	assert.Equal(t, "amber", names[0])
	assert.True(t, HasColors("a crimson tide"))
	assert.False(t, HasColors("crimsonish"))
}
