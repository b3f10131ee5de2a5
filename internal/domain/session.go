package domain

// Phase is the top-level session lifecycle state.
type Phase string

const (
	PhaseSetup        Phase = "SETUP"
	PhaseRoomClearing Phase = "ROOM_CLEARING"
	PhaseClueDecoding Phase = "CLUE_DECODING"
	PhaseVictory      Phase = "VICTORY"
	PhaseDefeat       Phase = "DEFEAT"
)

// Terminal reports whether no further gameplay mutation is allowed.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Difficulty selects the difficulty multiplier row and gates optional
// spawn waves.
type Difficulty string

const (
	DifficultyNormal    Difficulty = "NORMAL"
	DifficultyHard      Difficulty = "HARD"
	DifficultyNightmare Difficulty = "NIGHTMARE"
	DifficultyExtreme   Difficulty = "EXTREME"
)

// BossPolicyAuto selects the boss archetype from the difficulty table
// instead of an explicit admin choice.
const BossPolicyAuto = "AUTO"

// StatMultipliers are admin-configured scaling knobs applied on top of
// the tier and difficulty tables.
type StatMultipliers struct {
	Health float64 `json:"health" msgpack:"health"`
	Damage float64 `json:"damage" msgpack:"damage"`
	Speed  float64 `json:"speed" msgpack:"speed"`
}

// Normalized returns the multipliers with zero values replaced by 1,
// so a zero-valued config behaves as "no scaling".
func (m StatMultipliers) Normalized() StatMultipliers {
	out := m
	if out.Health == 0 {
		out.Health = 1
	}
	if out.Damage == 0 {
		out.Damage = 1
	}
	if out.Speed == 0 {
		out.Speed = 1
	}
	return out
}

// SessionConfig is the admin-chosen configuration, fixed at creation.
type SessionConfig struct {
	Difficulty     Difficulty      `json:"difficulty" msgpack:"difficulty"`
	OxygenMs       int64           `json:"oxygenMs" msgpack:"oxygenMs"`
	MaxPlayers     int             `json:"maxPlayers" msgpack:"maxPlayers"`
	MaxMonsterTier int             `json:"maxMonsterTier" msgpack:"maxMonsterTier"`
	TierWeights    map[int]float64 `json:"tierWeights" msgpack:"tierWeights"`
	Multipliers    StatMultipliers `json:"multipliers" msgpack:"multipliers"`
	// BossType is either a MonsterType name or BossPolicyAuto.
	BossType string `json:"bossType" msgpack:"bossType"`
}

// WithDefaults fills unset fields with the standard campaign values.
func (c SessionConfig) WithDefaults() SessionConfig {
	out := c
	if out.Difficulty == "" {
		out.Difficulty = DifficultyNormal
	}
	if out.OxygenMs <= 0 {
		out.OxygenMs = DefaultOxygenMs
	}
	if out.MaxPlayers <= 0 {
		out.MaxPlayers = DefaultMaxPlayers
	}
	if out.MaxMonsterTier <= 0 || out.MaxMonsterTier > 5 {
		out.MaxMonsterTier = 5
	}
	if len(out.TierWeights) == 0 {
		out.TierWeights = map[int]float64{1: 40, 2: 30, 3: 20, 4: 10}
	}
	if out.BossType == "" {
		out.BossType = BossPolicyAuto
	}
	out.Multipliers = out.Multipliers.Normalized()
	return out
}

// RoomStats are the per-room combat statistics, reset on room entry.
type RoomStats struct {
	KillsByTier map[int]int `json:"killsByTier" msgpack:"killsByTier"`
	ShotsFired  int         `json:"shotsFired" msgpack:"shotsFired"`
	ShotsHit    int         `json:"shotsHit" msgpack:"shotsHit"`
}

// NewRoomStats returns an empty stats block.
func NewRoomStats() RoomStats {
	return RoomStats{KillsByTier: make(map[int]int)}
}

// RoomProgress tracks the campaign position.
type RoomProgress struct {
	CurrentRoomIndex int      `json:"currentRoomIndex" msgpack:"currentRoomIndex"`
	Completed        []string `json:"completed" msgpack:"completed"`
	ClueAttempts     int      `json:"clueAttempts" msgpack:"clueAttempts"`
	ClueRevealed     bool     `json:"clueRevealed" msgpack:"clueRevealed"`
}

// GameSession is the aggregate root of one running game. It owns all
// players and monsters exclusively; it is only ever mutated by the
// engine's tick and action-application step.
type GameSession struct {
	ID      string        `json:"id" msgpack:"id"`
	Code    string        `json:"code" msgpack:"code"`
	AdminID string        `json:"adminId" msgpack:"adminId"`
	Config  SessionConfig `json:"config" msgpack:"config"`

	Players  []*Player        `json:"players" msgpack:"players"`
	Monsters []*ActiveMonster `json:"monsters" msgpack:"monsters"`

	Phase    Phase        `json:"phase" msgpack:"phase"`
	Paused   bool         `json:"paused" msgpack:"paused"`
	Progress RoomProgress `json:"progress" msgpack:"progress"`
	Stats    RoomStats    `json:"stats" msgpack:"stats"`

	OxygenRemainingMs int64 `json:"oxygenRemainingMs" msgpack:"oxygenRemainingMs"`
	TotalKills        int   `json:"totalKills" msgpack:"totalKills"`
	CurrentTickMs     int64 `json:"currentTickMs" msgpack:"currentTickMs"`
	CreatedAtMs       int64 `json:"createdAtMs" msgpack:"createdAtMs"`
	FinishedAtMs      int64 `json:"finishedAtMs,omitempty" msgpack:"finishedAtMs"`

	// One AI state per active monster, rebuilt on restore.
	AIStates map[string]*MonsterAIState `json:"-" msgpack:"-"`
}

// NewGameSession creates a session in SETUP with a full oxygen budget.
func NewGameSession(adminID, code string, cfg SessionConfig) *GameSession {
	cfg = cfg.WithDefaults()
	return &GameSession{
		ID:                NewID(),
		Code:              code,
		AdminID:           adminID,
		Config:            cfg,
		Phase:             PhaseSetup,
		Stats:             NewRoomStats(),
		OxygenRemainingMs: cfg.OxygenMs,
		AIStates:          make(map[string]*MonsterAIState),
	}
}

// AddPlayer seats a new player. Fails when the session is full or has
// already left SETUP.
func (s *GameSession) AddPlayer(name string) (*Player, error) {
	if s.Phase != PhaseSetup {
		return nil, ErrWrongPhase
	}
	if len(s.Players) >= s.Config.MaxPlayers {
		return nil, ErrSessionFull
	}
	p := NewPlayer(name, len(s.Players))
	s.Players = append(s.Players, p)
	return p, nil
}

// PlayerByID returns the player with the given id, or nil.
func (s *GameSession) PlayerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AlivePlayers returns the players that can still act.
func (s *GameSession) AlivePlayers() []*Player {
	var out []*Player
	for _, p := range s.Players {
		if p.IsAlive() {
			out = append(out, p)
		}
	}
	return out
}

// AddMonster registers a monster together with its AI state, keeping
// the one-monster-one-state invariant.
func (s *GameSession) AddMonster(m *ActiveMonster) {
	s.Monsters = append(s.Monsters, m)
	s.AIStates[m.ID] = NewMonsterAIState()
}

// RemoveMonster drops a monster and its AI state. Returns false if the
// id was not present.
func (s *GameSession) RemoveMonster(id string) bool {
	for i, m := range s.Monsters {
		if m.ID == id {
			s.Monsters = append(s.Monsters[:i], s.Monsters[i+1:]...)
			delete(s.AIStates, id)
			return true
		}
	}
	return false
}

// MonsterByID returns the monster with the given id, or nil.
func (s *GameSession) MonsterByID(id string) *ActiveMonster {
	for _, m := range s.Monsters {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// ForceVictory moves the session to the VICTORY terminal phase and
// marks surviving players as escaped.
func (s *GameSession) ForceVictory() {
	if s.Phase.Terminal() {
		return
	}
	s.Phase = PhaseVictory
	s.FinishedAtMs = s.CurrentTickMs
	for _, p := range s.Players {
		if p.IsAlive() {
			p.Status = PlayerEscaped
		}
	}
}

// ForceDefeat moves the session to the DEFEAT terminal phase.
func (s *GameSession) ForceDefeat() {
	if s.Phase.Terminal() {
		return
	}
	s.Phase = PhaseDefeat
	s.FinishedAtMs = s.CurrentTickMs
}
