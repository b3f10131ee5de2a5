package systems

import (
	"testing"

	"spaceship-server/pkg/balance"
)

func TestValidateClueAnswer(t *testing.T) {
	clue := balance.Clue{Cipher: balance.CipherReverse, Encoded: "YABDNATS", Answer: "STANDBY"}

	cases := []struct {
		in   string
		want bool
	}{
		{"STANDBY", true},
		{"standby", true},
		{"  Standby  ", true},
		{"STAND BY", false},
		{"", false},
		{"OXYGEN", false},
	}
	for _, c := range cases {
		if got := ValidateClueAnswer(clue, c.in); got != c.want {
			t.Errorf("ValidateClueAnswer(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
