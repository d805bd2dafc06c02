package ui

import (
	"io"

	"emperror.dev/errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

func init() {
	// the launcher's chatter would land on top of the TUI
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// URLOpener opens a URL outside the terminal
type URLOpener func(url string) error

// DefaultURLOpener hands the URL to the system browser
func DefaultURLOpener(url string) error {
	return errors.Wrapf(browser.OpenURL(url), "open %s", url)
}

func openURLCmd(open URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		return browserMsg{url: url, err: open(url)}
	}
}
