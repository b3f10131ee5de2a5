// Package store holds the process-wide session index. It is the only
// shared mutable state outside the sessions themselves; every map
// mutation goes through one lock so create, join and delete stay
// atomic across the id, code and token indexes.
package store

import (
	"errors"
	"sync"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine"
)

var ErrCodeTaken = errors.New("store: join code already in use")

// tokenRef resolves a player token to its session and player.
type tokenRef struct {
	sessionID string
	playerID  string
}

// InMemorySessionStore implements engine.SessionStore with plain maps
// behind a single RWMutex.
type InMemorySessionStore struct {
	mu      sync.RWMutex
	byID    map[string]*engine.Session
	byCode  map[string]string // join code -> session id
	byToken map[string]tokenRef
}

// NewInMemorySessionStore returns an empty store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		byID:    make(map[string]*engine.Session),
		byCode:  make(map[string]string),
		byToken: make(map[string]tokenRef),
	}
}

func (r *InMemorySessionStore) Create(s *engine.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byCode[s.Code()]; taken {
		return ErrCodeTaken
	}
	r.byID[s.ID()] = s
	r.byCode[s.Code()] = s.ID()
	return nil
}

func (r *InMemorySessionStore) ByID(id string) (*engine.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

func (r *InMemorySessionStore) ByCode(code string) (*engine.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCode[code]
	if !ok {
		return nil, false
	}
	s, ok := r.byID[id]
	return s, ok
}

func (r *InMemorySessionStore) ByToken(token string) (*engine.Session, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ref, ok := r.byToken[token]
	if !ok {
		return nil, "", false
	}
	s, ok := r.byID[ref.sessionID]
	if !ok {
		return nil, "", false
	}
	return s, ref.playerID, true
}

func (r *InMemorySessionStore) BindToken(token, sessionID, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	r.byToken[token] = tokenRef{sessionID: sessionID, playerID: playerID}
	return nil
}

// Delete removes a session from all three indexes in one critical
// section and returns it for teardown.
func (r *InMemorySessionStore) Delete(id string) (*engine.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	delete(r.byCode, s.Code())
	for token, ref := range r.byToken {
		if ref.sessionID == id {
			delete(r.byToken, token)
		}
	}
	return s, true
}

func (r *InMemorySessionStore) All() []*engine.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*engine.Session, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out
}
