package lexicon

import (
	"fmt"
	"strings"
)

// Markdown lays the model out as a card for a markdown renderer.
func (m Model) Markdown(favorite bool) string {
	var b strings.Builder

	title := m.Title
	if favorite {
		title += " ★"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if m.PhoneticText != "" {
		fmt.Fprintf(&b, "*%s*\n\n", m.PhoneticText)
	}

	b.WriteString("## Definitions\n\n")
	if len(m.Definitions) == 0 {
		b.WriteString("No definitions available.\n\n")
	}
	for _, d := range m.Definitions {
		fmt.Fprintf(&b, "**%s**: %s\n", d.POS, d.Text)
		if d.Example != "" {
			fmt.Fprintf(&b, "\n*Example:* %s\n", d.Example)
		}
		b.WriteString("\n")
	}

	if len(m.Synonyms) > 0 {
		fmt.Fprintf(&b, "**Synonyms:** %s\n\n", strings.Join(m.Synonyms, ", "))
	}
	if m.AudioURL != "" {
		b.WriteString("🔊 Pronunciation available\n")
	}
	return b.String()
}
