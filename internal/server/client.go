package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"spaceship-server/internal/domain"
	"spaceship-server/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWS upgrades the connection and streams session events to the
// client until it disconnects. Push-only; commands go over HTTP.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if _, err := s.Engine.View(sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("websocket upgrade failed")
		return
	}

	events := s.Hub.Subscribe(sessionID)
	go s.writePump(conn, sessionID, events)
	go s.readPump(conn, sessionID, events)
}

// writePump forwards events and keeps the connection alive with pings.
func (s *Server) writePump(conn *websocket.Conn, sessionID string, events chan domain.Event) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("websocket close")
		}
	}()

	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(e); err != nil {
				logger.Log.WithError(err).Debug("websocket write failed")
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames and unsubscribes on disconnect.
func (s *Server) readPump(conn *websocket.Conn, sessionID string, events chan domain.Event) {
	defer s.Hub.Unsubscribe(sessionID, events)

	conn.SetReadLimit(512)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
