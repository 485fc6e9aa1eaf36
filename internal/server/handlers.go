package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sessiondeck/sessiondeck/internal/session"
)

const keepaliveInterval = 15 * time.Second

// --- Sessions ---

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Create(r.Context())
	if err != nil {
		s.log.Error("create session", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	s.log.Info("session created", "id", sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		s.log.Error("get session", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// --- Submission ---

type messageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type eventRequest struct {
	Message string `json:"message"`
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.requireSession(w, r, id) {
		return
	}
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}

	if err := s.store.AddMessage(r.Context(), id, req.Role, req.Content); err != nil {
		s.log.Error("store message", "session", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to store message")
		return
	}
	s.publish(id, map[string]string{
		"type":    "message",
		"role":    req.Role,
		"content": req.Content,
	})
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.requireSession(w, r, id) {
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	s.publish(id, map[string]string{
		"type":    "event",
		"message": req.Message,
	})
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.requireSession(w, r, id) {
		return
	}
	msgs, err := s.store.ListMessages(r.Context(), id)
	if err != nil {
		s.log.Error("list messages", "session", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if msgs == nil {
		msgs = []session.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// --- SSE stream ---

func (s *Server) handleSessionStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.requireSession(w, r, id) {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ch, cancel := s.broker.Subscribe(id)
	defer cancel()
	s.log.Info("stream opened", "session", id)
	defer s.log.Info("stream closed", "session", id)

	// Comment line so proxies commit to the stream before the first event.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case msg, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// requireSession 404s unknown ids. Streams and submissions are only valid
// against sessions the server actually assigned.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request, id string) bool {
	_, err := s.store.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return false
	}
	if err != nil {
		s.log.Error("lookup session", "session", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return false
	}
	return true
}

func (s *Server) publish(sessionID string, payload map[string]string) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("marshal event", "session", sessionID, "err", err)
		return
	}
	s.broker.Publish(sessionID, string(data))
}
