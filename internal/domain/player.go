package domain

// PlayerStatus is the lifecycle state of one crew member.
type PlayerStatus string

const (
	PlayerJoined  PlayerStatus = "JOINED"
	PlayerAlive   PlayerStatus = "ALIVE"
	PlayerDead    PlayerStatus = "DEAD"
	PlayerEscaped PlayerStatus = "ESCAPED"
)

// Player is one crew member in a session. Players are never removed
// once created; death and escape are status transitions.
type Player struct {
	ID    string `json:"id" msgpack:"id"`
	Token string `json:"-" msgpack:"token"`
	Name  string `json:"name" msgpack:"name"`
	Index int    `json:"index" msgpack:"index"`

	Status PlayerStatus `json:"status" msgpack:"status"`
	Health float64      `json:"health" msgpack:"health"`
	Ammo   int          `json:"ammo" msgpack:"ammo"`

	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`

	// StunnedMs is the remaining crowd-control window; a stunned
	// player's movement actions are dropped.
	StunnedMs int64 `json:"stunnedMs,omitempty" msgpack:"stunnedMs"`

	KillsByTier map[int]int `json:"killsByTier" msgpack:"killsByTier"`
	TotalKills  int         `json:"totalKills" msgpack:"totalKills"`
	ShotsFired  int         `json:"shotsFired" msgpack:"shotsFired"`
	ShotsHit    int         `json:"shotsHit" msgpack:"shotsHit"`
	Accuracy    float64     `json:"accuracy" msgpack:"accuracy"`
	DamageDealt float64     `json:"damageDealt" msgpack:"damageDealt"`

	TimeAliveMs int64 `json:"timeAliveMs" msgpack:"timeAliveMs"`
}

// NewPlayer creates a player in the JOINED state at the given seat index.
func NewPlayer(name string, index int) *Player {
	return &Player{
		ID:          NewID(),
		Token:       NewID(),
		Name:        name,
		Index:       index,
		Status:      PlayerJoined,
		Health:      MaxPlayerHealth,
		Ammo:        MaxAmmo,
		X:           ArenaWidth / 2,
		Y:           ArenaHeight / 2,
		KillsByTier: make(map[int]int),
	}
}

// RecomputeAccuracy keeps the derived accuracy stat in sync with the
// shot counters. Zero when no shots were fired.
func (p *Player) RecomputeAccuracy() {
	if p.ShotsFired == 0 {
		p.Accuracy = 0
		return
	}
	p.Accuracy = float64(p.ShotsHit) / float64(p.ShotsFired) * 100
}

// RecordKill credits a kill of a monster of the given tier.
func (p *Player) RecordKill(tier int) {
	p.KillsByTier[tier]++
	p.TotalKills++
}

// IsAlive reports whether the player can act and be targeted.
func (p *Player) IsAlive() bool {
	return p.Status == PlayerAlive
}
