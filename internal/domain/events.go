package domain

// EventKind tags a session event published to external collaborators
// (logging, telemetry, push transport).
type EventKind string

const (
	EventVictory       EventKind = "victory"
	EventDefeat        EventKind = "defeat"
	EventDeleted       EventKind = "deleted"
	EventRoomCleared   EventKind = "room_cleared"
	EventMonsterKilled EventKind = "monster_killed"
)

// Event is one session lifecycle notification.
type Event struct {
	Kind      EventKind `json:"kind"`
	SessionID string    `json:"sessionId"`
	RoomIndex int       `json:"roomIndex,omitempty"`
	MonsterID string    `json:"monsterId,omitempty"`
	PlayerID  string    `json:"playerId,omitempty"`
	TickMs    int64     `json:"tickMs"`
}

// EventSink receives session events. Implementations must not block.
type EventSink interface {
	Publish(Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Publish(Event) {}
