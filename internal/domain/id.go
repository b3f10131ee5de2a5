package domain

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh uuid for sessions, players and monsters.
func NewID() string {
	return uuid.NewString()
}

// Join codes skip ambiguous characters (0/O, 1/I).
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewJoinCode generates a short human-typable session code from the
// given rng (seeded per service, so codes are reproducible in tests).
func NewJoinCode(rng *rand.Rand) string {
	var b strings.Builder
	for i := 0; i < JoinCodeLength; i++ {
		b.WriteByte(joinCodeAlphabet[rng.Intn(len(joinCodeAlphabet))])
	}
	return b.String()
}
