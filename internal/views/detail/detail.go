// Package detail renders a single event payload as a markdown overlay.
package detail

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sessiondeck/sessiondeck/internal/theme"
)

const minWidth = 40

var stylePanel = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.ColorBorder).
	Padding(0, 1)

// Model holds the state for the detail overlay.
type Model struct {
	Text  string
	Width int
}

// View renders the payload through glamour. Render errors fall back to the
// raw text so the overlay never goes blank.
func (m Model) View() string {
	width := m.Width
	if width < minWidth {
		width = minWidth
	}

	body := m.Text
	if body == "" {
		body = "_nothing to show_"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err == nil {
		if rendered, rerr := renderer.Render(body); rerr == nil {
			body = rendered
		}
	}

	title := theme.StyleHeader.Render("event detail")
	footer := theme.StyleDimmed.Render("esc: close")
	return stylePanel.Width(width).Render(title + "\n" + body + "\n" + footer)
}
