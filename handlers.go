package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/wordly/internal/session"
	"github.com/zam-dot/wordly/internal/storage"
)

const statusNotPersisted = "Storage unavailable: favorites and theme will not persist this session"

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case lookupDoneMsg:
		return m.handleLookupDone(msg)
	case audioMsg:
		return m.handleAudio(msg)
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Handle key messages
func (m *model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typed characters belong to the search box.
	if m.focus == focusInput && msg.Type == tea.KeyRunes {
		return m.updateInput(msg)
	}

	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit) && m.focus != focusInput:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		return m.handleSave()
	case key.Matches(msg, m.keys.Theme):
		return m.handleThemeToggle()
	case key.Matches(msg, m.keys.Play):
		return m.handlePlay()
	case key.Matches(msg, m.keys.Focus):
		return m.handleFocusSwitch(msg.String() == "shift+tab")
	case key.Matches(msg, m.keys.Help) && m.focus != focusInput:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.focus {
	case focusFavorites:
		return m.handleFavoritesKey(msg)
	case focusWord:
		return m.handleWordKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m *model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		return m.handleSubmit(m.input.Value())
	case key.Matches(msg, m.keys.Back):
		if m.input.Value() != "" {
			m.input.SetValue("")
			return m, nil
		}
		return m, tea.Quit
	}
	return m.updateInput(msg)
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		word, ok := m.selectedFavorite()
		if !ok {
			return m, nil
		}
		m.input.SetValue(word)
		return m.handleSubmit(word)
	case key.Matches(msg, m.keys.Remove):
		return m.handleRemove()
	case key.Matches(msg, m.keys.Back):
		m.setFocus(focusInput)
		return m, nil
	}

	var cmd tea.Cmd
	m.favorites, cmd = m.favorites.Update(msg)
	return m, cmd
}

func (m *model) handleWordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.setFocus(focusInput)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Command handlers
func (m *model) handleSubmit(input string) (tea.Model, tea.Cmd) {
	req, ok := m.ctrl.Submit(input)
	if !ok {
		return m, nil
	}

	m.pending = req.Word
	m.setStatus("", false)
	m.refresh()
	if m.ready {
		m.viewport.GotoTop()
	}
	return m, m.lookupCmd(req)
}

func (m *model) handleSave() (tea.Model, tea.Cmd) {
	word := m.ctrl.CurrentWord()
	if word == "" {
		m.setStatus("Nothing to save: look up a word first", false)
		return m, nil
	}

	err := m.ctrl.SaveCurrent(m.ctx)
	m.refresh()
	if err != nil {
		m.storageFailed("save favorite", err)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("★ Saved %q", word), false)
	return m, nil
}

func (m *model) handleRemove() (tea.Model, tea.Cmd) {
	word, ok := m.selectedFavorite()
	if !ok {
		return m, nil
	}

	err := m.ctrl.RemoveFavorite(m.ctx, word)
	m.refresh()
	if err != nil {
		m.storageFailed("remove favorite", err)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Removed %q", word), false)
	return m, nil
}

func (m *model) handleThemeToggle() (tea.Model, tea.Cmd) {
	err := m.ctrl.ToggleTheme(m.ctx)
	m.refresh()
	if err != nil {
		m.storageFailed("save theme", err)
	}
	return m, nil
}

func (m *model) handlePlay() (tea.Model, tea.Cmd) {
	current, ok := m.ctrl.Current()
	if !ok || current.AudioURL == "" {
		m.setStatus("No pronunciation available", false)
		return m, nil
	}
	m.setStatus("🔊 Playing pronunciation...", false)
	return m, m.play(current.AudioURL)
}

func (m *model) handleFocusSwitch(backwards bool) (tea.Model, tea.Cmd) {
	order := []focus{focusInput, focusWord, focusFavorites}
	step := 1
	if backwards {
		step = len(order) - 1
	}
	next := order[0]
	for i, f := range order {
		if f == m.focus {
			next = order[(i+step)%len(order)]
			break
		}
	}
	m.setFocus(next)
	return m, nil
}

// storageFailed reports a write that did not reach storage. The change
// itself still applies for the rest of the session.
func (m *model) storageFailed(op string, err error) {
	m.log.Warn("storage write failed", slog.String("op", op), slog.String("error", err.Error()))
	if errors.Is(err, storage.ErrUnavailable) {
		m.setStatus(statusNotPersisted, true)
		return
	}
	m.setStatus(err.Error(), true)
}

// Message handlers
func (m *model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width

	favWidth := favoritesWidth
	if msg.Width < 3*favoritesWidth {
		favWidth = max(msg.Width/3, 12)
	}
	// Two bordered panes and the document margin take six columns.
	vpWidth := max(msg.Width-favWidth-6, 10)
	bodyHeight := max(msg.Height-headerHeight-footerHeight-2, 3)

	if !m.ready {
		m.viewport = viewport.New(vpWidth, bodyHeight)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = bodyHeight
	}
	m.favorites.SetSize(favWidth, bodyHeight)
	m.input.Width = max(msg.Width-6, 10)

	m.refresh()
	return m, nil
}

func (m *model) handleLookupDone(msg lookupDoneMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Complete(msg.result) {
		return m, nil
	}

	m.pending = ""
	m.refresh()
	if m.ready {
		m.viewport.GotoTop()
	}
	if msg.result.Err != nil {
		m.setStatus(session.UserMessage(msg.result.Err), true)
	} else {
		m.setStatus("", false)
	}
	return m, nil
}

func (m *model) handleAudio(msg audioMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("pronunciation playback failed", slog.String("url", msg.url), slog.String("error", msg.err.Error()))
		m.setStatus("Could not play pronunciation", true)
	}
	return m, nil
}
