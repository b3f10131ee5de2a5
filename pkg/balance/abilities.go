package balance

import "spaceship-server/internal/domain"

// MoveKind is the archetype movement rule interpreted by the AI.
type MoveKind string

const (
	MoveApproach MoveKind = "approach" // close to attack range
	MoveCharge   MoveKind = "charge"   // approach at a burst multiplier
	MoveStandoff MoveKind = "standoff" // hold a min/max distance band
	MoveCreep    MoveKind = "creep"    // slow relentless approach
	MoveTeleport MoveKind = "teleport" // reposition in jumps, no walking
)

// Behavior holds the per-archetype movement and range parameters.
type Behavior struct {
	Move        MoveKind
	AttackRange float64
	StandoffMin float64
	StandoffMax float64
	ChargeMult  float64 // speed multiplier while closing (charge types)
	BlinkEvery  int64   // teleport interval in ms (teleport types)
}

var behaviors = map[domain.MonsterType]Behavior{
	domain.MonsterCrawler:  {Move: MoveApproach, AttackRange: 40},
	domain.MonsterBrute:    {Move: MoveCharge, AttackRange: 50, ChargeMult: 1.8},
	domain.MonsterSpitter:  {Move: MoveStandoff, AttackRange: 320, StandoffMin: 180, StandoffMax: 320},
	domain.MonsterSlime:    {Move: MoveCreep, AttackRange: 55},
	domain.MonsterSentinel: {Move: MoveApproach, AttackRange: 50},
	domain.MonsterLurker:   {Move: MoveApproach, AttackRange: 45},
	domain.MonsterVoidmaw:  {Move: MoveTeleport, AttackRange: 360, BlinkEvery: 4000},
}

// BehaviorFor returns the movement contract for an archetype.
// Unknown type is a programming error.
func BehaviorFor(mtype domain.MonsterType) Behavior {
	b, ok := behaviors[mtype]
	if !ok {
		panic("balance: no behavior for monster type " + string(mtype))
	}
	return b
}

// AbilityKind selects the executor branch in the AI engine.
type AbilityKind string

const (
	AbilityStrike      AbilityKind = "strike"       // single-target melee
	AbilityCombo       AbilityKind = "combo"        // scheduled multi-hit melee
	AbilitySlam        AbilityKind = "slam"         // delayed area attack
	AbilityShot        AbilityKind = "shot"         // single ranged hit
	AbilityMultiShot   AbilityKind = "multi_shot"   // scheduled shot burst
	AbilityEngulf      AbilityKind = "engulf"       // melee hit that stuns
	AbilityAbsorb      AbilityKind = "absorb"       // consume lesser monsters to heal
	AbilityReinforce   AbilityKind = "reinforce"    // summon same-type adds
	AbilitySummon      AbilityKind = "summon"       // summon configured minions
	AbilityMultiStrike AbilityKind = "multi_strike" // hit every player in radius
	AbilityNova        AbilityKind = "nova"         // teleport-in AOE burst
	AbilityZone        AbilityKind = "zone"         // repeating damage zone
	AbilityShield      AbilityKind = "shield"       // invulnerability window
)

// Ability is one row of the behavior table. DamageMult scales the
// monster's resolved Damage stat; cooldowns are shared per slot
// (basic attack cooldown vs the special-ability cooldown).
type Ability struct {
	Kind       AbilityKind
	Special    bool // uses the special-ability cooldown slot
	MinTier    int  // 0 = any tier
	Phase      int  // 0 = any phase; bosses dispatch by exact phase
	DamageMult float64
	Radius     float64
	CooldownMs int64
	Shots      int   // multi-shot / combo hit count
	IntervalMs int64 // spacing between burst steps
	StunMs     int64
	KnockbackU float64 // knockback distance in units
	HealPct    float64 // absorb heal, percent of max health per victim

	SummonType  domain.MonsterType
	SummonTier  int
	SummonCount int

	DurationMs int64 // shield/zone lifetime
}

// abilityTable maps each archetype to its full kit. Tier escalation
// and boss phases are plain data here; the AI engine interprets rows
// generically instead of branching per archetype.
var abilityTable = map[domain.MonsterType][]Ability{
	domain.MonsterCrawler: {
		{Kind: AbilityStrike, DamageMult: 1.0},
		{Kind: AbilityCombo, Special: true, MinTier: 3, DamageMult: 0.6, Shots: 3, IntervalMs: 300, CooldownMs: 6000},
	},
	domain.MonsterBrute: {
		{Kind: AbilityStrike, DamageMult: 1.0, KnockbackU: 30},
		{Kind: AbilitySlam, Special: true, MinTier: 3, DamageMult: 1.4, Radius: 120, IntervalMs: 700, CooldownMs: 8000},
		{Kind: AbilityCombo, Special: true, MinTier: 5, DamageMult: 0.8, Shots: 3, IntervalMs: 350, CooldownMs: 9000},
	},
	domain.MonsterSpitter: {
		{Kind: AbilityShot, DamageMult: 1.0},
		{Kind: AbilityMultiShot, Special: true, MinTier: 3, DamageMult: 0.7, Shots: 3, IntervalMs: 300, CooldownMs: 7000},
		{Kind: AbilitySummon, Special: true, MinTier: 5, CooldownMs: 12000, SummonType: domain.MonsterCrawler, SummonTier: 1, SummonCount: 2},
	},
	domain.MonsterSlime: {
		{Kind: AbilityStrike, DamageMult: 1.0},
		{Kind: AbilityEngulf, Special: true, MinTier: 3, DamageMult: 1.2, StunMs: 1500, CooldownMs: 8000},
		{Kind: AbilityAbsorb, Special: true, MinTier: 5, Radius: 150, HealPct: domain.AbsorbHealPct, CooldownMs: 10000},
	},
	domain.MonsterSentinel: {
		{Kind: AbilityStrike, DamageMult: 1.0},
		{Kind: AbilityReinforce, Special: true, MinTier: 3, CooldownMs: 12000, SummonType: domain.MonsterSentinel, SummonTier: 1, SummonCount: 2},
	},
	domain.MonsterLurker: {
		{Kind: AbilityStrike, DamageMult: 1.0},
		{Kind: AbilityMultiStrike, Special: true, MinTier: 4, DamageMult: 0.8, Radius: 140, CooldownMs: 9000},
	},
	// The apex boss has no tier kit: its abilities are keyed to the
	// active boss phase and nothing else.
	domain.MonsterVoidmaw: {
		{Kind: AbilityShot, DamageMult: 1.0},
		{Kind: AbilityNova, Special: true, Phase: 1, DamageMult: 1.2, Radius: 200, CooldownMs: 9000},
		{Kind: AbilitySummon, Special: true, Phase: 2, CooldownMs: 11000, SummonType: domain.MonsterLurker, SummonTier: 2, SummonCount: 2},
		{Kind: AbilityZone, Special: true, Phase: 3, DamageMult: 0.5, Radius: 180, Shots: 4, IntervalMs: 1000, CooldownMs: 12000},
		{Kind: AbilityShield, Special: true, Phase: 4, DurationMs: 3000, CooldownMs: 15000},
	},
}

// AbilitiesFor returns the ability rows eligible for a monster's type,
// tier and boss phase. Non-special basic attacks always pass the phase
// filter; specials on a boss are phase-keyed (Phase == bossPhase),
// everything else is tier-gated.
func AbilitiesFor(m *domain.ActiveMonster) []Ability {
	rows, ok := abilityTable[m.Type]
	if !ok {
		panic("balance: no abilities for monster type " + string(m.Type))
	}
	var out []Ability
	for _, a := range rows {
		if a.MinTier > 0 && m.Tier < a.MinTier {
			continue
		}
		if a.Phase > 0 {
			if !m.IsBoss || m.BossPhase != a.Phase {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}
