package domain

// EffectKind identifies a scheduled future effect consumed inside the
// owning session's tick. Effects replace fire-and-forget timers so a
// monster's death or session teardown cancels them deterministically.
type EffectKind string

const (
	// EffectSpawnWave spawns one configured monster wave of the
	// current room. Owned by the session's spawner, not a monster.
	EffectSpawnWave EffectKind = "spawn_wave"
	// EffectBurstShot fires one shot of a scheduled multi-shot burst.
	EffectBurstShot EffectKind = "burst_shot"
	// EffectComboHit lands one hit of a melee multi-hit combo.
	EffectComboHit EffectKind = "combo_hit"
	// EffectAreaSlam resolves a delayed area attack at a fixed point.
	EffectAreaSlam EffectKind = "area_slam"
	// EffectSummon spawns lesser monsters around the owner.
	EffectSummon EffectKind = "summon"
	// EffectZone damages every player standing inside a zone.
	EffectZone EffectKind = "zone"
)

// SpawnOwner marks spawner-owned scheduler entries. Room transitions
// cancel by this owner; monster deaths never do.
const SpawnOwner = "spawner"

// Effect is one queued, cancellable future event. OwnerID ties it to
// the monster (or spawner) whose removal must cancel it.
type Effect struct {
	Kind    EffectKind
	OwnerID string

	// Burst / combo / zone fields.
	TargetPlayerID string
	Damage         float64
	Remaining      int   // shots or hits left after this one
	IntervalMs     int64 // spacing for the rescheduled remainder

	// Area fields.
	X      float64
	Y      float64
	Radius float64
	StunMs int64

	// Spawn / summon fields.
	WaveIndex   int
	RoomIndex   int
	SummonType  MonsterType
	SummonTier  int
	SummonCount int
}
