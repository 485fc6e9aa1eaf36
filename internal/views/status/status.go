// Package status renders the one-line session/stream status bar.
package status

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sessiondeck/sessiondeck/internal/client"
	"github.com/sessiondeck/sessiondeck/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	SessionID   string
	StreamState client.StreamState
	Width       int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	switch m.StreamState {
	case client.StateOpen:
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● streaming")
	case client.StateConnecting:
		connStr = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("◌ connecting")
	case client.StateError:
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ stream error")
	default:
		connStr = theme.StyleDimmed.Render("○ no stream")
	}

	session := "session: none"
	if m.SessionID != "" {
		session = "session: " + m.SessionID
	}

	bar := theme.StyleHeader.Render(" sessiondeck ") + "  " +
		lipgloss.NewStyle().Foreground(theme.ColorAccent).Render(session) + "  " + connStr
	return lipgloss.NewStyle().Width(width).Render(bar)
}
