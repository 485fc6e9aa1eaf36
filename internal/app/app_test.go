package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sessiondeck/sessiondeck/internal/client"
)

func testModel() Model {
	m := New(nil, nil, nil, true)
	m.width = 80
	m.height = 24
	return m
}

func TestInitialView(t *testing.T) {
	m := testModel()
	v := m.View()
	if !strings.Contains(v, "session: none") {
		t.Errorf("initial view should show no session, got %q", v)
	}
	if !strings.Contains(v, "no events yet") {
		t.Errorf("initial view should show empty log, got %q", v)
	}
}

func TestStreamEventAppendsToLog(t *testing.T) {
	m := testModel()
	next, cmd := m.Update(streamEventMsg{Event: client.Event{Kind: client.EventData, Text: "payload"}})
	m = next.(Model)

	if len(m.log.Entries) != 1 || m.log.Entries[0].Message != "payload" {
		t.Errorf("log = %+v, want one payload entry", m.log.Entries)
	}
	if cmd == nil {
		t.Error("expected the model to re-arm the event wait")
	}
}

func TestStreamErrorLogged(t *testing.T) {
	m := testModel()
	next, _ := m.Update(streamEventMsg{Event: client.Event{Kind: client.EventError}})
	m = next.(Model)

	if len(m.log.Entries) != 1 || m.log.Entries[0].Kind != "err" {
		t.Errorf("log = %+v, want one err entry", m.log.Entries)
	}
}

func TestSessionCreatedUpdatesStatus(t *testing.T) {
	m := testModel()
	next, _ := m.Update(sessionCreatedMsg{ID: "abc123"})
	m = next.(Model)

	if m.statusBar.SessionID != "abc123" {
		t.Errorf("status session = %q, want abc123", m.statusBar.SessionID)
	}
	if !strings.Contains(m.View(), "abc123") {
		t.Error("view should display the session id")
	}
}

func TestSessionErrorLogged(t *testing.T) {
	m := testModel()
	next, _ := m.Update(sessionErrorMsg{Err: errors.New("connection refused")})
	m = next.(Model)

	if len(m.log.Entries) != 1 || m.log.Entries[0].Kind != "err" {
		t.Errorf("log = %+v, want one err entry", m.log.Entries)
	}
}

func TestSubmitErrorVisibility(t *testing.T) {
	tests := []struct {
		name    string
		show    bool
		wantLog int
	}{
		{"surfaced", true, 1},
		{"suppressed", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil, nil, nil, tt.show)
			next, _ := m.Update(submitResultMsg{Kind: "message", Result: client.Submitted, Err: errors.New("502")})
			m = next.(Model)
			if len(m.log.Entries) != tt.wantLog {
				t.Errorf("log entries = %d, want %d", len(m.log.Entries), tt.wantLog)
			}
		})
	}
}

func TestSkippedSubmissionStaysSilent(t *testing.T) {
	m := testModel()
	next, _ := m.Update(submitResultMsg{Kind: "message", Result: client.Skipped})
	m = next.(Model)
	if len(m.log.Entries) != 0 {
		t.Errorf("log = %+v, want empty for a skipped submission", m.log.Entries)
	}
}

func TestEnterClearsComposerOnDispatch(t *testing.T) {
	m := testModel()
	m.composer.SetValue("hi there")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.composer.Value() != "" {
		t.Errorf("composer = %q, want cleared on dispatch", m.composer.Value())
	}
	if cmd == nil {
		t.Error("expected a submit command")
	}
}

func TestTypingReachesComposer(t *testing.T) {
	m := testModel()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	m = next.(Model)
	if m.composer.Value() != "h" {
		t.Errorf("composer = %q, want h", m.composer.Value())
	}
}

func TestDetailOverlay(t *testing.T) {
	m := testModel()
	next, _ := m.Update(streamEventMsg{Event: client.Event{Kind: client.EventData, Text: "**bold**"}})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)
	if !m.showDetail {
		t.Fatal("ctrl+d should open the detail overlay")
	}
	if m.detail.Text != "**bold**" {
		t.Errorf("detail text = %q, want latest data payload", m.detail.Text)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.showDetail {
		t.Error("esc should close the detail overlay")
	}
}

func TestQuitKey(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should produce a command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("ctrl+c command = %v, want tea.Quit", msg)
	}
}

func TestScrollKeys(t *testing.T) {
	m := testModel()
	for i := 0; i < 20; i++ {
		next, _ := m.Update(streamEventMsg{Event: client.Event{Kind: client.EventData, Text: "x"}})
		m = next.(Model)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	m = next.(Model)
	if m.log.Offset != 5 {
		t.Errorf("offset = %d, want 5 after pgup", m.log.Offset)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m = next.(Model)
	if m.log.Offset != 0 {
		t.Errorf("offset = %d, want 0 after pgdown", m.log.Offset)
	}
}
