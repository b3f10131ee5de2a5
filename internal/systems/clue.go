package systems

import (
	"strings"

	"spaceship-server/pkg/balance"
)

// ValidateClueAnswer checks a submitted decode against the room's
// answer. Comparison ignores case and surrounding whitespace.
func ValidateClueAnswer(clue balance.Clue, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(clue.Answer))
}
