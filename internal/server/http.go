// Package server is the thin HTTP/websocket adapter in front of the
// game engine. The engine never depends on it; everything here
// translates requests into the narrow engine interface and pushes
// session events back out.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine"
	"spaceship-server/internal/version"
	"spaceship-server/pkg/api"
	"spaceship-server/pkg/logger"
)

// Server drives the engine's tick cadence and serves the public API.
type Server struct {
	Engine *engine.Service
	Hub    *Hub
	Port   string

	stop chan struct{}
}

func New(eng *engine.Service, hub *Hub, port string) *Server {
	return &Server{
		Engine: eng,
		Hub:    hub,
		Port:   port,
		stop:   make(chan struct{}),
	}
}

// Run starts the tick driver and the HTTP server. Blocks.
func (s *Server) Run() error {
	go s.tickLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/sessions/create", enableCORS(s.handleCreate))
	mux.HandleFunc("/sessions/join", enableCORS(s.handleJoin))
	mux.HandleFunc("/sessions/action", enableCORS(s.handleAction))
	mux.HandleFunc("/sessions/admin", enableCORS(s.handleAdmin))
	mux.HandleFunc("/sessions/view", enableCORS(s.handleView))
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	logger.Log.Infof("Spaceship server running on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, mux)
}

// Shutdown stops the tick driver.
func (s *Server) Shutdown() {
	close(s.stop)
}

// tickLoop is the external cadence driving every session's tick.
func (s *Server) tickLoop() {
	ticker := time.NewTicker(domain.TickIntervalMs * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Engine.TickAll()
		case <-s.stop:
			return
		}
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

type createRequest struct {
	AdminID string               `json:"adminId"`
	Config  domain.SessionConfig `json:"config"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.Engine.CreateSession(req.AdminID, req.Config)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"sessionId": sess.ID(), "code": sess.Code()})
}

type joinRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if !decode(w, r, &req) {
		return
	}
	token, playerID, err := s.Engine.JoinSession(req.Code, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"token": token, "playerId": playerID})
}

type actionRequest struct {
	SessionID string          `json:"sessionId"`
	Token     string          `json:"token"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if !decode(w, r, &req) {
		return
	}
	err := s.Engine.SubmitAction(req.SessionID, req.Token, api.ActionKind(req.Kind), req.Payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"queued": true})
}

type adminRequest struct {
	SessionID string          `json:"sessionId"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if !decode(w, r, &req) {
		return
	}
	if err := s.Engine.AdminAction(req.SessionID, api.AdminKind(req.Kind), req.Payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"queued": true})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := s.Engine.View(r.URL.Query().Get("sessionId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Log.WithError(err).Warn("failed to write health response")
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"version": version.String()})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("failed to encode response")
	}
}

// writeError maps domain validation errors onto HTTP statuses so no
// rejected action fails silently.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrSessionFull),
		errors.Is(err, domain.ErrWrongPhase),
		errors.Is(err, domain.ErrNoPlayers),
		errors.Is(err, domain.ErrUnknownAction):
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); encErr != nil {
		logger.Log.WithError(encErr).Warn("failed to encode error response")
	}
}
