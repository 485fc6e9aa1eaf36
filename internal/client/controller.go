package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrSessionCreation wraps any failure to obtain a session id from the
// server: network errors, non-2xx statuses, and unparseable bodies.
var ErrSessionCreation = errors.New("session creation failed")

// Controller owns the current session id and issues all outbound requests
// against it. A single Controller instance guards its state with a mutex, so
// it is safe to call from concurrent tea.Cmd goroutines.
type Controller struct {
	baseURL string
	token   string
	stream  *Stream
	client  *http.Client

	mu      sync.Mutex
	current string

	// rebindMu keeps the store-id-then-rebind pair atomic when two creates
	// race, so the stream always targets the id that won.
	rebindMu sync.Mutex
}

// NewController creates a controller targeting the given base URL
// (e.g. "http://127.0.0.1:8080"). stream may be nil if no live event
// stream is wanted; otherwise each successful create rebinds it.
func NewController(baseURL, token string, stream *Stream) *Controller {
	return &Controller{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		stream:  stream,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Current returns the session id all sends currently target, or "" if no
// session has been created yet.
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CreateSession asks the server for a new session and makes it current,
// superseding any previous one and rebinding the event stream. On failure
// the previous session stays current and no rebind happens. Two overlapping
// calls are not serialised: whichever response resolves last wins.
func (c *Controller) CreateSession(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrSessionCreation, resp.StatusCode, string(body))
	}
	var created sessionCreated
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: decode body: %v", ErrSessionCreation, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: response carried no id", ErrSessionCreation)
	}

	c.rebindMu.Lock()
	defer c.rebindMu.Unlock()
	c.mu.Lock()
	c.current = created.ID
	c.mu.Unlock()

	if c.stream != nil {
		c.stream.Bind(created.ID)
	}
	return created.ID, nil
}

// SendMessage submits a user chat message to the current session. It skips
// without touching the network when no session is current or content trims
// to nothing. A dispatch failure is returned to the caller; whether it is
// shown anywhere is the caller's policy.
func (c *Controller) SendMessage(ctx context.Context, content string) (SubmitResult, error) {
	id := c.Current()
	if id == "" || strings.TrimSpace(content) == "" {
		return Skipped, nil
	}
	err := c.post(ctx, "/sessions/"+id+"/messages", MessagePayload{Role: "user", Content: content})
	return Submitted, err
}

// SendEvent submits a free-form event to the current session. Same skip and
// failure contract as SendMessage.
func (c *Controller) SendEvent(ctx context.Context, message string) (SubmitResult, error) {
	id := c.Current()
	if id == "" || strings.TrimSpace(message) == "" {
		return Skipped, nil
	}
	err := c.post(ctx, "/sessions/"+id+"/events", EventPayload{Message: message})
	return Submitted, err
}

func (c *Controller) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}

func (c *Controller) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
