package server

import (
	"sync"

	"spaceship-server/internal/domain"
)

// Hub fans session events out to subscribed websocket clients. It
// implements domain.EventSink; Publish never blocks, slow subscribers
// drop events.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string][]chan domain.Event // session id -> channels
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string][]chan domain.Event)}
}

// Subscribe opens a personal event channel for one session.
func (h *Hub) Subscribe(sessionID string) chan domain.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan domain.Event, 32)
	h.subscribers[sessionID] = append(h.subscribers[sessionID], ch)
	return ch
}

// Unsubscribe closes and removes a previously subscribed channel.
func (h *Hub) Unsubscribe(sessionID string, ch chan domain.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subscribers[sessionID]
	for i, c := range subs {
		if c == ch {
			h.subscribers[sessionID] = append(subs[:i], subs[i+1:]...)
			close(c)
			break
		}
	}
	if len(h.subscribers[sessionID]) == 0 {
		delete(h.subscribers, sessionID)
	}
}

// Publish delivers an event to every subscriber of its session.
func (h *Hub) Publish(e domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers[e.SessionID] {
		select {
		case ch <- e:
		default:
		}
	}
}
