package handlers

import (
	"encoding/json"
	"math/rand"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/systems"
)

// Context passes the session state to a handler. Handlers run inside
// the owning session's tick, so no extra locking is needed; they
// mutate the aggregate directly or request effects via Sched.
type Context struct {
	Session *domain.GameSession
	Actor   *domain.Player // nil for admin commands
	Rng     *rand.Rand
	Sched   systems.Scheduler
	Emit    func(domain.Event)
}

// Result is the outcome of one handled command. Handlers do not write
// to session logs directly; they return data and the engine routes it.
type Result struct {
	Msg     string // log text
	MsgType string // INFO, COMBAT, CLUE, ERROR
	Data    any    // handler-specific payload (shot result, clue outcome)
}

// HandlerFunc is the contract for any queued command.
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)
