// Package server implements the sessiondeck HTTP API: session creation,
// message/event submission, and SSE streaming of session events.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sessiondeck/sessiondeck/internal/broker"
	"github.com/sessiondeck/sessiondeck/internal/session"
)

// Server is the HTTP API server. Session records live in the store; live
// event delivery goes through the broker.
type Server struct {
	mux     *http.ServeMux
	store   *session.Store
	broker  *broker.Broker
	log     *slog.Logger
	started time.Time
}

// New creates a server with all routes registered.
func New(store *session.Store, b *broker.Broker, log *slog.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		store:   store,
		broker:  b,
		log:     log,
		started: time.Now(),
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// CORS for browser-resident clients during local development.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	s.mux.HandleFunc("GET /sessions/{id}/messages", s.handleListMessages)
	s.mux.HandleFunc("POST /sessions/{id}/messages", s.handlePostMessage)
	s.mux.HandleFunc("GET /sessions/{id}/events", s.handleSessionStream)
	s.mux.HandleFunc("POST /sessions/{id}/events", s.handlePostEvent)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
