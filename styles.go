package main

import "github.com/charmbracelet/lipgloss"

// styles is one complete look for the UI. There are two: light and dark.
type styles struct {
	// glamour is the standard glamour style name for the word card.
	glamour string

	doc       lipgloss.Style
	title     lipgloss.Style
	prompt    lipgloss.Style
	input     lipgloss.Style
	pane      lipgloss.Style
	paneFocus lipgloss.Style
	status    lipgloss.Style
	statusErr lipgloss.Style
	message   lipgloss.Style
}

// Lip Gloss 256-color codes:
//
// "63"  purple      titles
// "205" pink        prompt
// "203" red-orange  errors
// "241" dark gray   status text
// "236" very dark   dark status background
// "254" near white  light status background
func newStyles(dark bool) styles {
	s := styles{
		glamour: "light",
		doc:     lipgloss.NewStyle().Margin(0, 1),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")),
		message: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("244")),
	}
	s.input = lipgloss.NewStyle().Foreground(lipgloss.Color("235"))
	s.paneFocus = s.pane.BorderForeground(lipgloss.Color("63"))
	s.status = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("254")).
		Padding(0, 1)

	if dark {
		s.glamour = "dark"
		s.input = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
		s.pane = s.pane.BorderForeground(lipgloss.Color("240"))
		s.paneFocus = s.pane.BorderForeground(lipgloss.Color("205"))
		s.status = s.status.Background(lipgloss.Color("236"))
	}

	s.statusErr = s.status.Foreground(lipgloss.Color("203")).Bold(true)
	return s
}
