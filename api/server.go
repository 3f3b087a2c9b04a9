// Package api serves the soundscape's control surface over HTTP:
// health and state queries, validated event submission, and a
// server-sent-events stream of world/audio snapshots. It sits entirely
// in the control domain; nothing here touches the audio thread.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/veiltone/ambientd/run"
	"github.com/veiltone/ambientd/world"
)

// Cadence of snapshot events on /stream.
const streamInterval = 100 * time.Millisecond

// Server exposes the control surface. Events is the inbound channel to
// the world task; Hub supplies the latest world/audio pair and update
// notifications.
type Server struct {
	Events chan<- world.Event
	Hub    *run.Hub
	TickHz float64
	Log    *slog.Logger

	limiter *RateLimiter
}

// NewServer wires the control surface. A nil logger falls back to
// slog.Default().
func NewServer(events chan<- world.Event, hub *run.Hub, tickHz float64, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		Events:  events,
		Hub:     hub,
		TickHz:  tickHz,
		Log:     log,
		limiter: NewRateLimiter(120, time.Minute),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("POST /event", rateLimit(s.limiter, s.handleEvent))
	mux.HandleFunc("GET /stream", s.handleStream)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "ok")
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.Hub.Latest())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	ev, err := req.toEvent()
	if err != nil {
		if errors.Is(err, errUnknownRequest) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	select {
	case s.Events <- ev:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "event sent")
	case <-r.Context().Done():
		http.Error(w, "client went away", http.StatusServiceUnavailable)
	case <-time.After(time.Second):
		http.Error(w, "event queue unavailable", http.StatusServiceUnavailable)
	}
}

// handleStream pushes SSE frames: one hello on connect, then a
// snapshot every streamInterval until the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sessionID := uuid.NewString()
	writeSSE(w, "hello", envelope{
		Version: schemaVersion,
		Payload: helloPayload{
			SessionID:     sessionID,
			SchemaVersion: schemaVersion,
			TickRateHz:    s.TickHz,
		},
	})
	flusher.Flush()

	s.Log.Info("stream client connected", "session_id", sessionID)

	updates, cancel := s.Hub.Subscribe()
	defer cancel()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	latest := s.Hub.Latest()
	for {
		select {
		case u := <-updates:
			latest = u
		case <-ticker.C:
			writeSSE(w, "snapshot", envelope{Version: schemaVersion, Payload: latest})
			flusher.Flush()
		case <-r.Context().Done():
			s.Log.Info("stream client disconnected", "session_id", sessionID)
			return
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "encoding failed", http.StatusInternalServerError)
	}
}
