package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// viewState represents the currently active view.
type viewState int

const (
	viewRecords viewState = iota
	viewResults
	viewSettings
)

var viewNames = []string{"Records", "Results", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// recordsChangedMsg is sent after every mutation of the record store so the
// derived views can be rebuilt.
type recordsChangedMsg struct{}

type exportDoneMsg struct {
	paths []string
}

// --- Helpers ---

func notify(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func notifyErr(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

func recordsChanged() tea.Msg { return recordsChangedMsg{} }

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
