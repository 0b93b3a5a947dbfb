// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/michael-tui/internal/session"
	"github.com/jeranaias/michael-tui/internal/ui/components"
	"github.com/jeranaias/michael-tui/internal/ui/styles"
)

// InputCharLimit caps the length of a typed question.
const InputCharLimit = 2000

// InputPlaceholder is shown in the empty input.
const InputPlaceholder = "Ask Michael anything..."

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a chat Model.
type Options struct {
	// Session is required.
	Session *session.Session

	// Theme defaults to styles.NewTheme("auto").
	Theme *styles.Theme

	// Splash shows the branding screen first.
	Splash         bool
	SplashDuration time.Duration

	// Colors enables colour-word highlighting in message text.
	Colors bool
	// Hyperlinks renders sources with OSC-8 links.
	Hyperlinks bool

	// ExportDir is where relative /export paths are resolved. Empty means
	// the working directory.
	ExportDir string

	// Context bounds in-flight requests. Defaults to context.Background().
	Context context.Context

	// Reloads delivers config changes; may be nil.
	Reloads <-chan ConfigReloadedMsg

	Logger zerolog.Logger
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the splash and chat surface.
type Model struct {
	sess *session.Session
	ctx  context.Context

	// Styling
	theme    *styles.Theme
	renderer *components.MessageRenderer

	// Dimensions
	width  int
	height int
	ready  bool

	// UI Components
	splash     components.Splash
	showSplash bool
	typing     components.Typing
	viewport   viewport.Model
	input      textinput.Model
	help       help.Model
	keys       KeyMap
	showHelp   bool

	// Panel state per assistant message ID.
	panels  map[string]components.PanelState
	focusID string
	offsets map[string]int

	// Highlighted quick-ask on the empty surface, or -1.
	quickSel int

	// One-line notice under the messages.
	notice    string
	noticeErr bool

	exportDir string
	reloads   <-chan ConfigReloadedMsg
	logger    zerolog.Logger
	quitting  bool
}

// New creates a chat model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	duration := opts.SplashDuration
	if duration <= 0 {
		duration = styles.SplashDuration
	}

	renderer := components.NewMessageRenderer(theme)
	renderer.Colors = opts.Colors
	renderer.Hyperlinks = opts.Hyperlinks

	input := textinput.New()
	input.Placeholder = InputPlaceholder
	input.CharLimit = InputCharLimit
	input.Prompt = "› "
	input.Focus()

	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{}

	return Model{
		sess:       opts.Session,
		ctx:        ctx,
		theme:      theme,
		renderer:   renderer,
		splash:     components.NewSplash(theme, duration),
		showSplash: opts.Splash,
		typing:     components.NewTyping(theme),
		viewport:   vp,
		input:      input,
		help:       help.New(),
		keys:       DefaultKeyMap(),
		panels:     make(map[string]components.PanelState),
		quickSel:   -1,
		exportDir:  opts.ExportDir,
		reloads:    opts.Reloads,
		logger:     opts.Logger,
	}
}

// Init starts the splash timer, the cursor blink and the reload watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, waitForReload(m.reloads)}
	if m.showSplash {
		cmds = append(cmds, m.splash.Init())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Session returns the underlying session.
func (m Model) Session() *session.Session {
	return m.sess
}

// SplashVisible reports whether the splash is on screen.
func (m Model) SplashVisible() bool {
	return m.showSplash && !m.splash.Done()
}

// FocusedID returns the ID of the focused assistant message, or "".
func (m Model) FocusedID() string {
	return m.focusID
}

// Panels returns the panel state of the given message.
func (m Model) Panels(id string) components.PanelState {
	return m.panels[id]
}

// Notice returns the current notice line.
func (m Model) Notice() string {
	return m.notice
}

// InputValue returns the text in the input.
func (m Model) InputValue() string {
	return m.input.Value()
}
