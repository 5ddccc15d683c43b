package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/zam-dot/wordly/internal/session"
	"github.com/zam-dot/wordly/internal/theme"
)

const welcomeText = `# wordly

Type a word and press **enter** to look it up.

* **ctrl+s** saves the word to your favorites
* **tab** moves between the search box, the definition and favorites
* **ctrl+t** switches between light and dark
`

// renderWithStyle renders markdown with a standard glamour style, wrapped at width.
func renderWithStyle(markdown, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

func (m *model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.title.Render("📖 wordly"),
		m.input.View(),
	)
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.paneStyle(focusWord).Render(m.viewport.View()),
		m.paneStyle(focusFavorites).Render(m.favorites.View()),
	)

	return m.styles.doc.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		body,
		m.statusView(),
		m.help.View(m.keys),
	))
}

func (m *model) paneStyle(f focus) lipgloss.Style {
	if m.focus == f {
		return m.styles.paneFocus
	}
	return m.styles.pane
}

// renderContent builds the word pane for the current screen state.
func (m *model) renderContent() string {
	switch {
	case m.ctrl.State() == session.Searching:
		return m.styles.message.Render(fmt.Sprintf("🔄 Looking up %q...", m.pending))
	case m.screen.errMsg != "":
		return m.renderMarkdown(fmt.Sprintf("## ❌ %s\n\nCheck the spelling or try another word.", m.screen.errMsg))
	case m.screen.hasWord:
		return m.renderMarkdown(m.screen.word.Markdown(m.ctrl.IsFavorite()))
	default:
		return m.renderMarkdown(welcomeText)
	}
}

func (m *model) renderMarkdown(md string) string {
	styled, err := renderWithStyle(md, m.styles.glamour, m.wrapWidth())
	if err != nil {
		m.log.Debug("markdown render failed", "error", err)
		return md
	}
	return styled
}

// wrapWidth is the word pane width, capped at the configured maximum.
func (m *model) wrapWidth() int {
	width := m.maxWidth
	if m.ready && m.viewport.Width > 0 && m.viewport.Width < width {
		width = m.viewport.Width
	}
	return max(width-2, 10)
}

func (m *model) statusView() string {
	style := m.styles.status
	if m.statusIsErr {
		style = m.styles.statusErr
	}

	text := m.status
	if text == "" {
		parts := []string{m.ctrl.State().String()}
		if word := m.ctrl.CurrentWord(); word != "" {
			parts = append(parts, word)
		}
		parts = append(parts,
			fmt.Sprintf("%d favorites", len(m.screen.favorites)),
			theme.FromBool(m.screen.dark).String()+" theme",
		)
		text = strings.Join(parts, " | ")
	}

	return style.Width(max(m.width-2, 0)).Render(text)
}
