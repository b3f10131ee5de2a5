package domain

// MonsterType is one of the seven creature archetypes.
type MonsterType string

const (
	MonsterCrawler  MonsterType = "CRAWLER"  // melee pack hunter
	MonsterBrute    MonsterType = "BRUTE"    // charging bruiser
	MonsterSpitter  MonsterType = "SPITTER"  // ranged, keeps a standoff band
	MonsterSlime    MonsterType = "SLIME"    // slow engulfer, crowd control
	MonsterSentinel MonsterType = "SENTINEL" // armored, calls reinforcements
	MonsterLurker   MonsterType = "LURKER"   // regenerating stalker
	MonsterVoidmaw  MonsterType = "VOIDMAW"  // apex boss, teleports
)

// MonsterTypes lists all archetypes in a stable order.
var MonsterTypes = []MonsterType{
	MonsterCrawler, MonsterBrute, MonsterSpitter, MonsterSlime,
	MonsterSentinel, MonsterLurker, MonsterVoidmaw,
}

// ActiveMonster is a live creature owned by a session's monster list.
// Removed on death or room/session reset.
type ActiveMonster struct {
	ID   string      `json:"id" msgpack:"id"`
	Type MonsterType `json:"type" msgpack:"type"`
	Tier int         `json:"tier" msgpack:"tier"`

	Health    float64 `json:"health" msgpack:"health"`
	MaxHealth float64 `json:"maxHealth" msgpack:"maxHealth"`

	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
	VX float64 `json:"vx" msgpack:"vx"`
	VY float64 `json:"vy" msgpack:"vy"`

	AttackCooldownMs int64 `json:"attackCooldownMs" msgpack:"attackCooldownMs"`

	IsBoss        bool `json:"isBoss" msgpack:"isBoss"`
	BossPhase     int  `json:"bossPhase,omitempty" msgpack:"bossPhase"`
	MaxBossPhases int  `json:"maxBossPhases,omitempty" msgpack:"maxBossPhases"`

	// Transient status effects, tracked as remaining milliseconds.
	StunnedMs      int64 `json:"stunnedMs,omitempty" msgpack:"stunnedMs"`
	SlowedMs       int64 `json:"slowedMs,omitempty" msgpack:"slowedMs"`
	InvulnerableMs int64 `json:"invulnerableMs,omitempty" msgpack:"invulnerableMs"`
	Regenerating   bool  `json:"regenerating,omitempty" msgpack:"regenerating"`
}

// AdvanceBossPhase moves the boss to the phase implied by its current
// health fraction. Phases only move forward and never exceed
// MaxBossPhases. Returns true if the phase changed.
func (m *ActiveMonster) AdvanceBossPhase() bool {
	if !m.IsBoss || m.MaxHealth <= 0 {
		return false
	}
	frac := m.Health / m.MaxHealth
	want := 1
	for _, threshold := range BossPhaseThresholds {
		if frac <= threshold {
			want++
		}
	}
	if want > m.MaxBossPhases {
		want = m.MaxBossPhases
	}
	if want <= m.BossPhase {
		return false
	}
	m.BossPhase = want
	return true
}

// AIBehavior is the per-monster decision state.
type AIBehavior string

const (
	AIIdle      AIBehavior = "IDLE"
	AIChasing   AIBehavior = "CHASING"
	AIAttacking AIBehavior = "ATTACKING"
	AIStunned   AIBehavior = "STUNNED"
	AIDead      AIBehavior = "DEAD"
)

// MonsterAIState is the runtime behavior state for one ActiveMonster.
// It lives beside the monster, not inside it, and is not part of the
// persisted snapshot; restore rebuilds it from scratch.
type MonsterAIState struct {
	State             AIBehavior
	TargetPlayerID    string // lookup key, never an owning reference
	CooldownMs        int64
	SpecialCooldownMs int64
	DesiredVX         float64
	DesiredVY         float64
}

// NewMonsterAIState returns the initial idle state.
func NewMonsterAIState() *MonsterAIState {
	return &MonsterAIState{State: AIIdle}
}

// TickCooldowns decrements both timers by elapsed, clamped at zero.
func (st *MonsterAIState) TickCooldowns(elapsedMs int64) {
	st.CooldownMs -= elapsedMs
	if st.CooldownMs < 0 {
		st.CooldownMs = 0
	}
	st.SpecialCooldownMs -= elapsedMs
	if st.SpecialCooldownMs < 0 {
		st.SpecialCooldownMs = 0
	}
}
