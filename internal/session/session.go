// Package session drives one user's lookups and favorite actions.
//
// A Controller is not safe for concurrent use. It is meant to be driven from
// a single event loop; only Fetch may run elsewhere, since it touches nothing
// but the Lookup.
package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/zam-dot/wordly/internal/lexicon"
	"github.com/zam-dot/wordly/internal/theme"
)

// Lookup fetches the record for a word. It fails with ErrNotFound when the
// service has no match and with a *TransportError otherwise.
type Lookup interface {
	Lookup(ctx context.Context, word string) (lexicon.Record, error)
}

// Renderer is the display sink.
type Renderer interface {
	ShowError(message string)
	Clear()
	ShowWord(model lexicon.Model)
	ShowFavorites(words []string)
	ApplyTheme(dark bool)
}

// Favorites is the saved-word registry the controller writes to.
type Favorites interface {
	Load(ctx context.Context) []string
	List() []string
	Contains(word string) bool
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
}

// ThemeStore is the persisted light/dark preference. Apply hands the
// current value to anything with an ApplyTheme method, Renderer included.
type ThemeStore interface {
	Apply(ctx context.Context, a theme.Applier)
	Toggle(ctx context.Context) (bool, error)
}

// State is where the controller is in the lookup cycle.
type State int

const (
	Idle State = iota
	Searching
	Displaying
	Failed
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Displaying:
		return "displaying"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Request is one submitted lookup. Tokens increase with every submit.
type Request struct {
	Token uint64
	Word  string
}

// Result is the outcome of fetching a Request.
type Result struct {
	Request
	Record lexicon.Record
	Err    error
}

type Controller struct {
	lookup    Lookup
	favorites Favorites
	theme     ThemeStore
	renderer  Renderer
	log       *slog.Logger

	state       State
	currentWord string
	current     lexicon.Model
	latest      uint64
}

func New(lookup Lookup, favorites Favorites, theme ThemeStore, renderer Renderer, logger *slog.Logger) *Controller {
	return &Controller{
		lookup:    lookup,
		favorites: favorites,
		theme:     theme,
		renderer:  renderer,
		log:       logger.With("component", "session"),
	}
}

// Start loads persisted state and pushes it to the renderer.
func (c *Controller) Start(ctx context.Context) {
	c.renderer.ShowFavorites(c.favorites.Load(ctx))
	c.theme.Apply(ctx, c.renderer)
}

// Submit begins a lookup for input. Blank input is ignored and reported
// with ok == false. The display is cleared before the request is issued.
func (c *Controller) Submit(input string) (req Request, ok bool) {
	word := strings.TrimSpace(input)
	if word == "" {
		return Request{}, false
	}

	c.renderer.Clear()
	c.currentWord = ""
	c.current = lexicon.Model{}
	c.latest++
	c.state = Searching
	c.log.Debug("lookup submitted", slog.String("word", word), slog.Uint64("token", c.latest))
	return Request{Token: c.latest, Word: word}, true
}

// Fetch performs the lookup for req. It does not touch controller state.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	rec, err := c.lookup.Lookup(ctx, req.Word)
	return Result{Request: req, Record: rec, Err: err}
}

// Complete applies a fetched result. Results for anything but the most
// recent request are dropped; it reports whether res was applied.
func (c *Controller) Complete(res Result) bool {
	if res.Token != c.latest {
		c.log.Debug("dropping stale lookup",
			slog.String("word", res.Word),
			slog.Uint64("token", res.Token),
			slog.Uint64("latest", c.latest))
		return false
	}

	if res.Err != nil {
		c.state = Failed
		c.currentWord = ""
		c.current = lexicon.Model{}
		c.log.Info("lookup failed", slog.String("word", res.Word), slog.String("error", res.Err.Error()))
		c.renderer.ShowError(UserMessage(res.Err))
		return true
	}

	c.state = Displaying
	c.currentWord = res.Record.Word
	c.current = lexicon.Project(res.Record)
	c.renderer.ShowWord(c.current)
	return true
}

// Search runs a whole lookup cycle synchronously and returns the lookup error.
func (c *Controller) Search(ctx context.Context, input string) error {
	req, ok := c.Submit(input)
	if !ok {
		return nil
	}
	res := c.Fetch(ctx, req)
	c.Complete(res)
	return res.Err
}

// SaveCurrent adds the displayed word to favorites. It does nothing unless
// the last lookup succeeded.
func (c *Controller) SaveCurrent(ctx context.Context) error {
	if c.currentWord == "" {
		return nil
	}
	err := c.favorites.Add(ctx, c.currentWord)
	c.renderer.ShowFavorites(c.favorites.List())
	return err
}

// RemoveFavorite drops word from favorites and re-lists them.
func (c *Controller) RemoveFavorite(ctx context.Context, word string) error {
	err := c.favorites.Remove(ctx, word)
	c.renderer.ShowFavorites(c.favorites.List())
	return err
}

// ToggleTheme flips and re-applies the theme.
func (c *Controller) ToggleTheme(ctx context.Context) error {
	_, err := c.theme.Toggle(ctx)
	c.theme.Apply(ctx, c.renderer)
	return err
}

func (c *Controller) State() State { return c.state }

// CurrentWord is the word of the last successful lookup, or "".
func (c *Controller) CurrentWord() string { return c.currentWord }

// Current returns the displayed model, if any.
func (c *Controller) Current() (lexicon.Model, bool) {
	return c.current, c.state == Displaying
}

// IsFavorite reports whether the displayed word is saved.
func (c *Controller) IsFavorite() bool {
	return c.currentWord != "" && c.favorites.Contains(c.currentWord)
}
