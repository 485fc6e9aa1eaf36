// Package theme provides the Lip Gloss color palette and reusable styles
// for the sessiondeck TUI. It is a leaf package with no internal imports
// to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Base palette.
var (
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorAccent  = lipgloss.Color("#3b82f6")
	ColorDimmed  = lipgloss.Color("#4b5563")
	ColorBright  = lipgloss.Color("#e5e7eb")
	ColorBorder  = lipgloss.Color("#374151")
)

// Shared styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorDanger)
)

// KindColor maps an event log kind to its display color.
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "err":
		return ColorDanger
	case "sys":
		return ColorAccent
	default:
		return ColorBright
	}
}
