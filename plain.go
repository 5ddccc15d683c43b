package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/zam-dot/wordly/internal/lexicon"
	"github.com/zam-dot/wordly/internal/session"
)

// plainRenderer prints one lookup to a writer. Used by -define.
type plainRenderer struct {
	w     io.Writer
	width int
	style string
	// noColor keeps the "notty" style regardless of the stored theme.
	noColor bool
}

var _ session.Renderer = (*plainRenderer)(nil)

func newPlainRenderer(w io.Writer, width int) *plainRenderer {
	r := &plainRenderer{w: w, width: width, style: "light"}
	if !isTerminal(w) {
		r.style = "notty"
		r.noColor = true
	}
	return r
}

func (r *plainRenderer) ShowError(message string) {
	fmt.Fprintln(r.w, message)
}

func (r *plainRenderer) Clear() {}

func (r *plainRenderer) ShowWord(m lexicon.Model) {
	md := m.Markdown(false)
	out, err := renderWithStyle(md, r.style, r.width)
	if err != nil {
		out = md + "\n"
	}
	fmt.Fprint(r.w, out)
}

func (r *plainRenderer) ShowFavorites([]string) {}

func (r *plainRenderer) ApplyTheme(dark bool) {
	if r.noColor {
		return
	}
	r.style = "light"
	if dark {
		r.style = "dark"
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
