package main

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/wordly/internal/lexicon"
	"github.com/zam-dot/wordly/internal/session"
)

// ============================================================================
// MESSAGE TYPES FOR ASYNC OPERATIONS
// ============================================================================

// lookupDoneMsg carries a finished lookup back into the update loop.
type lookupDoneMsg struct {
	result session.Result
}

// audioMsg reports whether the pronunciation could be handed to a player.
type audioMsg struct {
	url string
	err error
}

// ============================================================================
// RENDER STATE
// ============================================================================

// screen records what the controller asked to show. The model draws from
// it, so every controller call is followed by refresh.
type screen struct {
	word      lexicon.Model
	hasWord   bool
	errMsg    string
	favorites []string
	dark      bool
}

var _ session.Renderer = (*screen)(nil)

func (s *screen) ShowError(message string) {
	s.hasWord = false
	s.word = lexicon.Model{}
	s.errMsg = message
}

func (s *screen) Clear() {
	s.hasWord = false
	s.word = lexicon.Model{}
	s.errMsg = ""
}

func (s *screen) ShowWord(m lexicon.Model) {
	s.word = m
	s.hasWord = true
	s.errMsg = ""
}

func (s *screen) ShowFavorites(words []string) { s.favorites = words }

func (s *screen) ApplyTheme(dark bool) { s.dark = dark }

// ============================================================================
// MAIN APPLICATION MODEL
// ============================================================================

type focus int

const (
	focusInput focus = iota
	focusFavorites
	focusWord
)

const (
	headerHeight   = 3 // title, input, blank line
	footerHeight   = 2 // status bar, help
	favoritesWidth = 26
)

type model struct {
	ctx    context.Context
	ctrl   *session.Controller
	screen *screen
	log    *slog.Logger
	// play starts the pronunciation player for a URL.
	play func(url string) tea.Cmd

	input     textinput.Model
	viewport  viewport.Model
	favorites list.Model
	help      help.Model
	keys      keyMap
	styles    styles

	focus    focus
	ready    bool
	width    int
	maxWidth int
	pending  string // word being looked up
	content  string

	status      string
	statusIsErr bool
}

// newModel wires a model to a controller whose renderer is scr.
func newModel(ctx context.Context, ctrl *session.Controller, scr *screen, cfg UIConfig, logger *slog.Logger) *model {
	ti := textinput.New()
	ti.Placeholder = "Enter a word..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "> "
	ti.Focus()

	m := &model{
		ctx:       ctx,
		ctrl:      ctrl,
		screen:    scr,
		log:       logger.With("component", "tui"),
		play:      playAudio,
		input:     ti,
		favorites: newFavoritesList(),
		help:      help.New(),
		keys:      newKeyMap(),
		focus:     focusInput,
		maxWidth:  cfg.Width,
	}
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

// refresh re-reads the screen state into the widgets.
func (m *model) refresh() {
	m.styles = newStyles(m.screen.dark)
	m.input.PromptStyle = m.styles.prompt
	m.input.TextStyle = m.styles.input

	m.favorites.SetItems(favoriteItems(m.screen.favorites))
	m.favorites.Styles.Title = m.styles.title

	m.content = m.renderContent()
	if m.ready {
		m.viewport.SetContent(m.content)
	}
}

func (m *model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

func (m *model) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// lookupCmd runs the request off the update loop.
func (m *model) lookupCmd(req session.Request) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return lookupDoneMsg{result: ctrl.Fetch(ctx, req)}
	}
}
