package balance

import "spaceship-server/internal/domain"

// CipherKind names the encoding of a room clue.
type CipherKind string

const (
	CipherCaesar  CipherKind = "CAESAR"
	CipherReverse CipherKind = "REVERSE"
	CipherMorse   CipherKind = "MORSE"
	CipherNumeric CipherKind = "NUMERIC"
	CipherAnagram CipherKind = "ANAGRAM"
)

// Clue is the encoded puzzle gating progression out of a room.
type Clue struct {
	Cipher  CipherKind
	Encoded string
	Answer  string
	Hard    bool // hard clues get the larger attempt budget
}

// MaxAttempts is the per-clue submission cap before the answer is
// revealed and forced progression is allowed.
func (c Clue) MaxAttempts() int {
	if c.Hard {
		return domain.MaxHardClueAttempts
	}
	return domain.MaxClueAttempts
}

// SpawnWave is one scheduled monster wave of a room.
type SpawnWave struct {
	Type    domain.MonsterType
	Tier    int // 0 = sample from the session's tier weights
	Count   int
	DelayMs int64
	// MinDifficulty gates optional waves; empty means always.
	MinDifficulty domain.Difficulty
}

// RoomConfig is the static definition of one campaign room.
type RoomConfig struct {
	ID            string
	Name          string
	Waves         []SpawnWave
	Clue          Clue
	OxygenReward  int64 // ms added on clearing the room
	BossEncounter bool  // final rooms spawn the configured boss
}

// rooms is the ordered campaign. Read-only at runtime.
var rooms = []RoomConfig{
	{
		ID:   "cargo_hold",
		Name: "Cargo Hold",
		Waves: []SpawnWave{
			{Type: domain.MonsterCrawler, Tier: 1, Count: 3, DelayMs: 0},
			{Type: domain.MonsterCrawler, Tier: 0, Count: 2, DelayMs: 8000},
		},
		Clue:         Clue{Cipher: CipherReverse, Encoded: "YBDNATS", Answer: "STANDBY"},
		OxygenReward: 90 * 1000,
	},
	{
		ID:   "hydroponics",
		Name: "Hydroponics Bay",
		Waves: []SpawnWave{
			{Type: domain.MonsterSlime, Tier: 2, Count: 2, DelayMs: 0},
			{Type: domain.MonsterCrawler, Tier: 0, Count: 3, DelayMs: 6000},
			{Type: domain.MonsterSpitter, Tier: 2, Count: 1, DelayMs: 12000, MinDifficulty: domain.DifficultyHard},
		},
		Clue:         Clue{Cipher: CipherCaesar, Encoded: "RABJHQ", Answer: "OXYGEN"},
		OxygenReward: 120 * 1000,
	},
	{
		ID:   "engine_room",
		Name: "Engine Room",
		Waves: []SpawnWave{
			{Type: domain.MonsterBrute, Tier: 3, Count: 1, DelayMs: 0},
			{Type: domain.MonsterSpitter, Tier: 0, Count: 2, DelayMs: 5000},
			{Type: domain.MonsterSentinel, Tier: 3, Count: 1, DelayMs: 10000, MinDifficulty: domain.DifficultyNightmare},
		},
		Clue:         Clue{Cipher: CipherNumeric, Encoded: "20-8-18-21-19-20", Answer: "THRUST"},
		OxygenReward: 150 * 1000,
	},
	{
		ID:   "medbay",
		Name: "Medical Bay",
		Waves: []SpawnWave{
			{Type: domain.MonsterLurker, Tier: 3, Count: 2, DelayMs: 0},
			{Type: domain.MonsterSlime, Tier: 0, Count: 2, DelayMs: 7000},
			{Type: domain.MonsterSentinel, Tier: 4, Count: 1, DelayMs: 14000, MinDifficulty: domain.DifficultyHard},
		},
		Clue:         Clue{Cipher: CipherAnagram, Encoded: "TEDANITO", Answer: "ANTIDOTE", Hard: true},
		OxygenReward: 150 * 1000,
	},
	{
		ID:   "bridge",
		Name: "The Bridge",
		Waves: []SpawnWave{
			{Type: domain.MonsterCrawler, Tier: 0, Count: 4, DelayMs: 0},
		},
		Clue:          Clue{Cipher: CipherMorse, Encoded: ". ... -.-. .- .--. .", Answer: "ESCAPE", Hard: true},
		OxygenReward:  0,
		BossEncounter: true,
	},
}

// Rooms returns the ordered campaign rooms.
func Rooms() []RoomConfig {
	return rooms
}

// RoomCount is the campaign length.
func RoomCount() int {
	return len(rooms)
}

// RoomAt returns the room at the given campaign index.
// Out-of-range indices are a programming error; callers must have
// already transitioned to VICTORY past the last room.
func RoomAt(index int) RoomConfig {
	return rooms[index]
}
