// Package eventlog provides the scrollable append-only session event log.
package eventlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sessiondeck/sessiondeck/internal/theme"
)

const maxEntries = 500

// Entry is a single log line.
type Entry struct {
	Time    time.Time
	Kind    string // "data", "err", "sys"
	Message string
}

// Model holds event log state.
type Model struct {
	Entries []Entry
	Offset  int // scroll offset (from bottom)
}

// New creates an empty log.
func New() Model {
	return Model{}
}

// Add appends a log entry and caps the buffer.
func (m *Model) Add(kind, message string) {
	m.Entries = append(m.Entries, Entry{
		Time:    time.Now(),
		Kind:    kind,
		Message: message,
	})
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
	// Reset scroll to bottom on new entry.
	m.Offset = 0
}

// Latest returns the newest entry of the given kind, or nil.
func (m *Model) Latest(kind string) *Entry {
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].Kind == kind {
			return &m.Entries[i]
		}
	}
	return nil
}

// ScrollUp moves the viewport up.
func (m *Model) ScrollUp(n int) {
	m.Offset += n
	max := len(m.Entries) - 1
	if max < 0 {
		max = 0
	}
	if m.Offset > max {
		m.Offset = max
	}
}

// ScrollDown moves the viewport down.
func (m *Model) ScrollDown(n int) {
	m.Offset -= n
	if m.Offset < 0 {
		m.Offset = 0
	}
}

// View renders the last `height` visible entries.
func (m Model) View(width, height int) string {
	if height < 1 {
		height = 1
	}
	if len(m.Entries) == 0 {
		return theme.StyleDimmed.Render("  no events yet")
	}

	end := len(m.Entries) - m.Offset
	if end < 1 {
		end = 1
	}
	start := end - height
	if start < 0 {
		start = 0
	}

	var lines []string
	for _, e := range m.Entries[start:end] {
		ts := theme.StyleDimmed.Render(e.Time.Format("15:04:05"))
		kind := lipgloss.NewStyle().Foreground(theme.KindColor(e.Kind)).Render(fmt.Sprintf("%-4s", e.Kind))
		msg := e.Message
		if r := []rune(msg); width > 16 && len(r) > width-16 {
			msg = string(r[:width-17]) + "…"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", ts, kind, msg))
	}
	return strings.Join(lines, "\n")
}
