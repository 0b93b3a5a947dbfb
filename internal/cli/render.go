// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/michael-tui/internal/model"
	"github.com/jeranaias/michael-tui/internal/ui/components"
	"github.com/jeranaias/michael-tui/internal/ui/styles"
)

// =============================================================================
// PRINTER
// =============================================================================

// Printer writes replies for line-mode output.
type Printer struct {
	w      io.Writer
	colors bool
	width  int
	md     *glamour.TermRenderer

	title     lipgloss.Style
	heading   lipgloss.Style
	body      lipgloss.Style
	dim       lipgloss.Style
	confident lipgloss.Style
	uncertain lipgloss.Style
	link      lipgloss.Style
	errStyle  lipgloss.Style
}

// PrinterOptions configures a Printer.
type PrinterOptions struct {
	// Colors enables ANSI styling, Markdown rendering and hyperlinks.
	Colors bool
	// Markdown renders main text with glamour. Ignored without Colors.
	Markdown bool
	// Theme is "dark", "light" or "auto".
	Theme string
	// Width wraps output; 0 means DefaultTerminalWidth.
	Width int
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer, opts PrinterOptions) *Printer {
	width := opts.Width
	if width <= 0 {
		width = DefaultTerminalWidth
	}

	r := lipgloss.NewRenderer(w, termenv.WithProfile(ColorProfile(opts.Colors)))
	p := &Printer{
		w:         w,
		colors:    opts.Colors,
		width:     width,
		title:     r.NewStyle().Bold(true).Foreground(styles.Accent),
		heading:   r.NewStyle().Bold(true).Foreground(styles.TextSecondary),
		body:      r.NewStyle().Width(width - 2).PaddingLeft(2),
		dim:       r.NewStyle().Foreground(styles.TextDim),
		confident: r.NewStyle().Bold(true).Foreground(styles.Confident),
		uncertain: r.NewStyle().Bold(true).Foreground(styles.Uncertain),
		link:      r.NewStyle().Foreground(styles.Link).Underline(true),
		errStyle:  r.NewStyle().Foreground(styles.Error),
	}

	if opts.Colors && opts.Markdown {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(markdownStyle(opts.Theme)),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			p.md = md
		}
	}
	return p
}

func markdownStyle(theme string) string {
	switch theme {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// ReplySections selects what PrintReply shows beyond the main text.
type ReplySections struct {
	Lenses     bool
	Confidence bool
	Sources    bool
}

// AllSections shows everything.
var AllSections = ReplySections{Lenses: true, Confidence: true, Sources: true}

// PrintReply writes an assistant message.
func (p *Printer) PrintReply(msg *model.Message, sections ReplySections) {
	if msg.Failed {
		fmt.Fprintln(p.w, p.errStyle.Render(msg.Text))
		return
	}

	fmt.Fprintln(p.w, p.title.Render(msg.Role.DisplayName()))
	fmt.Fprintln(p.w, p.renderMain(msg.Text))

	if sections.Lenses && msg.HasLenses() {
		for _, lens := range msg.Lenses.Available() {
			fmt.Fprintln(p.w)
			fmt.Fprintln(p.w, p.heading.Render(lens.Label()))
			fmt.Fprintln(p.w, p.body.Render(msg.Lenses.Get(lens)))
		}
	}

	if sections.Confidence && msg.HasConfidence() {
		fmt.Fprintln(p.w)
		p.printClaims(components.ConfidentLabel, p.confident, msg.Confidence.Confident)
		p.printClaims(components.UncertainLabel, p.uncertain, msg.Confidence.Uncertain)
	}

	if sections.Sources && msg.HasSources() {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, p.heading.Render(fmt.Sprintf("Sources (%d)", len(msg.Sources))))
		for i, s := range msg.Sources {
			fmt.Fprintf(p.w, "  %d. %s\n", i+1, p.renderSource(s))
		}
	}
}

func (p *Printer) renderMain(text string) string {
	if p.md != nil {
		if out, err := p.md.Render(text); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return lipgloss.NewStyle().Width(p.width).Render(text)
}

func (p *Printer) printClaims(title string, style lipgloss.Style, claims []string) {
	if len(claims) == 0 {
		return
	}
	fmt.Fprintln(p.w, style.Render(title))
	for _, c := range claims {
		fmt.Fprintln(p.w, p.body.Render("• "+c))
	}
}

func (p *Printer) renderSource(s model.Source) string {
	if !s.Clickable() {
		return p.dim.Render(s.Title)
	}
	if p.colors {
		return termenv.Hyperlink(s.URL, p.link.Render(s.Title))
	}
	return s.Title + " <" + s.URL + ">"
}

// PrintError writes an error line.
func (p *Printer) PrintError(text string) {
	fmt.Fprintln(p.w, p.errStyle.Render(text))
}

// PrintInfo writes a dim status line.
func (p *Printer) PrintInfo(text string) {
	fmt.Fprintln(p.w, p.dim.Render(text))
}

// =============================================================================
// JSON HIGHLIGHTING
// =============================================================================

// HighlightJSON colours src for a terminal. It returns src unchanged when
// colors is false or highlighting fails.
func HighlightJSON(src string, colors bool) string {
	if !colors {
		return src
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return buf.String()
}
