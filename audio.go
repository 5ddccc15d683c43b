package main

import (
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
)

// openerCommand builds the platform command that opens url in the
// default handler, which plays audio files.
func openerCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// playAudio hands url to the system opener without waiting for playback.
func playAudio(url string) tea.Cmd {
	return func() tea.Msg {
		cmd := openerCommand(runtime.GOOS, url)
		if err := cmd.Start(); err != nil {
			return audioMsg{url: url, err: err}
		}
		go func() { _ = cmd.Wait() }()
		return audioMsg{url: url}
	}
}
