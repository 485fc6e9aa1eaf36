package client

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// maxLineSize bounds a single pushed line. Payloads are event JSON, well
// under this, but assistant text can run long.
const maxLineSize = 1 << 20

// StreamState tracks where the connection is in its lifecycle.
type StreamState int

const (
	StateUnbound StreamState = iota
	StateConnecting
	StateOpen
	StateError
)

func (s StreamState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateError:
		return "error"
	default:
		return "unbound"
	}
}

// Stream maintains at most one live connection to a session's event
// endpoint and forwards every pushed line to its observer, in receipt
// order. Rebinding tears the old connection down completely before the new
// one is dialed, so an observer never sees a stale session's events after
// Bind returns.
//
// Connection faults surface as EventError notifications only; they never
// unbind the session. After a fault the stream redials the same session at
// a fixed interval (no backoff), matching what a browser-side push
// transport would do on its own. retry <= 0 disables redialing.
type Stream struct {
	baseURL  string
	token    string
	retry    time.Duration
	observer func(Event)
	client   *http.Client

	bindMu sync.Mutex // serialises Bind/Close

	mu        sync.Mutex
	sessionID string
	state     StreamState
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewStream creates an unbound stream. observer is invoked from the read
// goroutine; it must not block for long or delivery of later events stalls.
func NewStream(baseURL, token string, retry time.Duration, observer func(Event)) *Stream {
	return &Stream{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		retry:    retry,
		observer: observer,
		client:   &http.Client{}, // no timeout: the connection is long-lived
	}
}

// Bind points the stream at a session's event endpoint. An empty id is a
// no-op. Any prior connection is closed and its reader fully drained
// before the new dial starts.
func (s *Stream) Bind(sessionID string) {
	if sessionID == "" {
		return
	}
	s.bindMu.Lock()
	defer s.bindMu.Unlock()

	s.teardown()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.mu.Lock()
	s.sessionID = sessionID
	s.state = StateConnecting
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go s.run(ctx, sessionID, done)
}

// Close drops the connection, if any, and returns the stream to unbound.
func (s *Stream) Close() {
	s.bindMu.Lock()
	defer s.bindMu.Unlock()

	s.teardown()
	s.mu.Lock()
	s.sessionID = ""
	s.state = StateUnbound
	s.mu.Unlock()
}

// SessionID returns the id of the currently bound session, or "".
func (s *Stream) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// State reports the connection lifecycle state.
func (s *Stream) State() StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// teardown cancels the active reader and waits for it to exit. Callers hold
// bindMu.
func (s *Stream) teardown() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

// run dials, consumes, and redials until the context is cancelled.
func (s *Stream) run(ctx context.Context, sessionID string, done chan struct{}) {
	defer close(done)
	for {
		err := s.consume(ctx, sessionID)
		if ctx.Err() != nil {
			return
		}
		s.setState(StateError)
		s.observer(Event{Kind: EventError})
		if s.retry <= 0 {
			return
		}
		log.Printf("stream error: %v (retry in %v)", err, s.retry)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.retry):
		}
	}
}

// consume holds one connection open and forwards its lines until the server
// ends the stream, the connection faults, or ctx is cancelled.
func (s *Stream) consume(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/sessions/"+sessionID+"/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("stream: status %d", resp.StatusCode)
	}

	s.setState(StateOpen)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		payload, ok := strings.CutPrefix(line, "data:")
		if !ok {
			// Non-data fields (event:, id:, retry:) carry framing, not payload.
			if strings.Contains(line, ":") {
				continue
			}
			payload = line
		}
		s.observer(Event{Kind: EventData, Text: strings.TrimPrefix(payload, " ")})
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("stream: server closed connection")
}

func (s *Stream) setState(state StreamState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
