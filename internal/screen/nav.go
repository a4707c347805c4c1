package screen

import (
	"errors"

	tea "charm.land/bubbletea/v2"
)

var errExportUnavailable = errors.New("export is not configured")

// ShowQuizMsg asks the app to show the question screen in place of the
// active screen.
type ShowQuizMsg struct{}

// ShowResultsMsg asks the app to show the results screen in place of the
// active screen.
type ShowResultsMsg struct{}

// ShowHistoryMsg asks the app to push the attempt history screen.
type ShowHistoryMsg struct{}

// ExportFunc writes the current answers somewhere and returns where.
type ExportFunc func() (string, error)

// ExportedMsg reports the outcome of an export.
type ExportedMsg struct {
	Path string
	Err  error
}

// ExportCmd runs fn off the update loop. A nil fn reports an error.
func ExportCmd(fn ExportFunc) tea.Cmd {
	return func() tea.Msg {
		if fn == nil {
			return ExportedMsg{Err: errExportUnavailable}
		}
		path, err := fn()
		return ExportedMsg{Path: path, Err: err}
	}
}

// Emit wraps msg in a command.
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
