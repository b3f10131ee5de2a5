package api

import "encoding/json"

// --- CLIENT -> SERVER ---

// ActionKind names a queued player action.
type ActionKind string

const (
	ActionMove       ActionKind = "move"
	ActionShoot      ActionKind = "shoot"
	ActionReload     ActionKind = "reload"
	ActionSubmitClue ActionKind = "submit_clue"
)

// AdminKind names an admin command.
type AdminKind string

const (
	AdminStart        AdminKind = "start"
	AdminPause        AdminKind = "pause"
	AdminResume       AdminKind = "resume"
	AdminSkipRoom     AdminKind = "skip_room"
	AdminForceVictory AdminKind = "force_victory"
	AdminForceDefeat  AdminKind = "force_defeat"
	AdminAdjustOxygen AdminKind = "adjust_oxygen"
	AdminDelete       AdminKind = "delete"
)

// ClientCommand is the root object for every message from a client.
type ClientCommand struct {
	// Token is the player token handed out at join time.
	Token string `json:"token,omitempty"`

	// Action is the action kind to perform.
	Action string `json:"action"`

	// Payload structure depends on Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// MovePayload repositions the player. Coordinates are absolute and
// clamped to the arena server-side.
type MovePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ShootPayload aims one shot at an arena point.
type ShootPayload struct {
	AimX float64 `json:"aimX"`
	AimY float64 `json:"aimY"`
}

// CluePayload submits a decoded answer. Force requests progression
// after the answer has been revealed.
type CluePayload struct {
	Answer string `json:"answer"`
	Force  bool   `json:"force,omitempty"`
}

// AdjustOxygenPayload shifts the remaining oxygen by a signed delta.
type AdjustOxygenPayload struct {
	DeltaMs int64 `json:"deltaMs"`
}

// --- SERVER -> CLIENT ---

// SessionView is the full per-session snapshot pushed to clients.
type SessionView struct {
	ID                string        `json:"id"`
	Code              string        `json:"code"`
	Phase             string        `json:"phase"`
	Paused            bool          `json:"paused"`
	OxygenRemainingMs int64         `json:"oxygenRemainingMs"`
	CurrentRoomIndex  int           `json:"currentRoomIndex"`
	CompletedRooms    []string      `json:"completedRooms"`
	TotalKills        int           `json:"totalKills"`
	Players           []PlayerView  `json:"players"`
	Monsters          []MonsterView `json:"monsters"`
}

// PlayerView is the client-facing projection of one player.
type PlayerView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Index      int     `json:"index"`
	Status     string  `json:"status"`
	Health     float64 `json:"health"`
	Ammo       int     `json:"ammo"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	TotalKills int     `json:"totalKills"`
	Accuracy   float64 `json:"accuracy"`
}

// MonsterView is the client-facing projection of one monster.
type MonsterView struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Tier      int     `json:"tier"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	IsBoss    bool    `json:"isBoss,omitempty"`
	BossPhase int     `json:"bossPhase,omitempty"`
}
