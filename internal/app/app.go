// Package app holds the root Bubble Tea model for the sessiondeck TUI.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sessiondeck/sessiondeck/internal/client"
	"github.com/sessiondeck/sessiondeck/internal/theme"
	"github.com/sessiondeck/sessiondeck/internal/views/detail"
	"github.com/sessiondeck/sessiondeck/internal/views/eventlog"
	"github.com/sessiondeck/sessiondeck/internal/views/status"
)

// --- Messages ---

// streamEventMsg delivers one stream notification to the UI.
type streamEventMsg struct{ Event client.Event }

// sessionCreatedMsg is sent when a create resolves successfully.
type sessionCreatedMsg struct{ ID string }

// sessionErrorMsg is sent when a create fails.
type sessionErrorMsg struct{ Err error }

// submitResultMsg reports the outcome of a message/event submission.
type submitResultMsg struct {
	Kind   string // "message" or "event"
	Result client.SubmitResult
	Err    error
}

// Model is the root Bubble Tea model.
type Model struct {
	ctrl   *client.Controller
	stream *client.Stream
	events <-chan client.Event

	keys   KeyMap
	width  int
	height int

	composer  textinput.Model
	log       eventlog.Model
	statusBar status.Model
	detail    detail.Model

	showDetail       bool
	showSubmitErrors bool
}

// New creates the root model. events carries stream notifications from the
// observer goroutine into the UI loop.
func New(ctrl *client.Controller, stream *client.Stream, events <-chan client.Event, showSubmitErrors bool) Model {
	composer := textinput.New()
	composer.Prompt = "> "
	composer.Placeholder = "type a message"
	composer.Focus()

	return Model{
		ctrl:             ctrl,
		stream:           stream,
		events:           events,
		keys:             DefaultKeyMap(),
		composer:         composer,
		log:              eventlog.New(),
		statusBar:        status.New(),
		showSubmitErrors: showSubmitErrors,
	}
}

// Init creates the first session and starts draining stream events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent(), m.createSession())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.stream != nil {
		m.statusBar.StreamState = m.stream.State()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.detail.Width = msg.Width - 4
		m.composer.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case streamEventMsg:
		switch msg.Event.Kind {
		case client.EventData:
			m.log.Add("data", msg.Event.Text)
		case client.EventError:
			m.log.Add("err", "stream error")
		}
		return m, m.waitForEvent()

	case sessionCreatedMsg:
		m.statusBar.SessionID = msg.ID
		m.log.Add("sys", "session "+msg.ID+" created")
		return m, nil

	case sessionErrorMsg:
		m.log.Add("err", msg.Err.Error())
		return m, nil

	case submitResultMsg:
		if msg.Err != nil && m.showSubmitErrors {
			m.log.Add("err", fmt.Sprintf("%s submission failed: %v", msg.Kind, msg.Err))
		}
		// Skipped submissions stay silent.
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDetail {
		if key.Matches(msg, m.keys.Escape) {
			m.showDetail = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		// Stream teardown happens in main after the program exits; doing
		// it here would race the event drain this loop provides.
		return m, tea.Quit

	case key.Matches(msg, m.keys.NewSession):
		return m, m.createSession()

	case key.Matches(msg, m.keys.Send):
		content := m.composer.Value()
		m.composer.SetValue("") // cleared on dispatch, not on completion
		return m, m.submit("message", content)

	case key.Matches(msg, m.keys.SendEvent):
		content := m.composer.Value()
		m.composer.SetValue("")
		return m, m.submit("event", content)

	case key.Matches(msg, m.keys.Detail):
		m.detail.Text = ""
		if e := m.log.Latest("data"); e != nil {
			m.detail.Text = e.Message
		}
		m.showDetail = true
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.log.ScrollUp(5)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.log.ScrollDown(5)
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showDetail {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.statusBar.View(),
			m.detail.View(),
		)
	}

	logHeight := m.height - 4
	sections := []string{
		m.statusBar.View(),
		m.log.View(m.width, logHeight),
		m.composer.View(),
		theme.StyleDimmed.Render("  enter:send  ctrl+e:event  ctrl+n:new session  ctrl+d:detail  pgup/pgdn:scroll  ctrl+c:quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// --- Commands ---

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		ev, ok := <-events
		if !ok {
			return nil
		}
		return streamEventMsg{Event: ev}
	}
}

func (m Model) createSession() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		if ctrl == nil {
			return nil
		}
		id, err := ctrl.CreateSession(context.Background())
		if err != nil {
			return sessionErrorMsg{Err: err}
		}
		return sessionCreatedMsg{ID: id}
	}
}

func (m Model) submit(kind, content string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		if ctrl == nil {
			return nil
		}
		var (
			res client.SubmitResult
			err error
		)
		if kind == "event" {
			res, err = ctrl.SendEvent(context.Background(), content)
		} else {
			res, err = ctrl.SendMessage(context.Background(), content)
		}
		return submitResultMsg{Kind: kind, Result: res, Err: err}
	}
}
