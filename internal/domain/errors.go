package domain

import "errors"

// Validation failures. Rejected synchronously, no state is mutated.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session is full")
	ErrInvalidToken    = errors.New("invalid player token")
	ErrWrongPhase      = errors.New("action not allowed in current phase")
	ErrNoPlayers       = errors.New("cannot start without players")
	ErrUnknownAction   = errors.New("unknown action kind")
)
