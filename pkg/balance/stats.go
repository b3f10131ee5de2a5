// Package balance holds the static tuning data for the spaceship
// exploration mode: archetype base stats, tier and difficulty scaling,
// the (type, tier, phase) ability table and the room campaign. All of
// it is read-only at runtime.
package balance

import (
	"fmt"

	"spaceship-server/internal/domain"
)

// Stats are the resolved combat numbers for one monster instance.
type Stats struct {
	Health           float64
	Damage           float64
	Speed            float64 // units per second
	Size             float64
	AttackCooldownMs int64
}

// baseStats is the archetype row before any scaling.
var baseStats = map[domain.MonsterType]Stats{
	domain.MonsterCrawler:  {Health: 50, Damage: 8, Speed: 90, Size: 24, AttackCooldownMs: 1200},
	domain.MonsterBrute:    {Health: 120, Damage: 18, Speed: 70, Size: 40, AttackCooldownMs: 2000},
	domain.MonsterSpitter:  {Health: 60, Damage: 10, Speed: 80, Size: 28, AttackCooldownMs: 1800},
	domain.MonsterSlime:    {Health: 150, Damage: 14, Speed: 35, Size: 48, AttackCooldownMs: 2400},
	domain.MonsterSentinel: {Health: 180, Damage: 15, Speed: 55, Size: 44, AttackCooldownMs: 2200},
	domain.MonsterLurker:   {Health: 90, Damage: 12, Speed: 85, Size: 30, AttackCooldownMs: 1600},
	domain.MonsterVoidmaw:  {Health: 400, Damage: 25, Speed: 0, Size: 64, AttackCooldownMs: 2600},
}

// tierMultipliers scale health/damage/speed/size per tier (rows 1..5).
var tierMultipliers = map[int]struct {
	Health, Damage, Speed, Size float64
}{
	1: {1.0, 1.0, 1.0, 1.0},
	2: {1.6, 1.3, 1.05, 1.1},
	3: {2.5, 1.7, 1.1, 1.25},
	4: {4.0, 2.2, 1.15, 1.4},
	5: {6.5, 3.0, 1.2, 1.6},
}

// difficultyMultipliers scale health/damage/speed per difficulty.
var difficultyMultipliers = map[domain.Difficulty]struct {
	Health, Damage, Speed float64
}{
	domain.DifficultyNormal:    {1.0, 1.0, 1.0},
	domain.DifficultyHard:      {1.4, 1.25, 1.05},
	domain.DifficultyNightmare: {1.9, 1.6, 1.1},
	domain.DifficultyExtreme:   {2.6, 2.1, 1.2},
}

// ComputeStats resolves the final stats for a (type, tier) pair under
// the given difficulty and admin multipliers. Tier, difficulty and
// admin scaling stack multiplicatively. Unknown type or tier is a
// programming error and panics.
func ComputeStats(mtype domain.MonsterType, tier int, diff domain.Difficulty, mults domain.StatMultipliers) Stats {
	base, ok := baseStats[mtype]
	if !ok {
		panic(fmt.Sprintf("balance: unknown monster type %q", mtype))
	}
	tm, ok := tierMultipliers[tier]
	if !ok {
		panic(fmt.Sprintf("balance: unknown tier %d", tier))
	}
	dm, ok := difficultyMultipliers[diff]
	if !ok {
		panic(fmt.Sprintf("balance: unknown difficulty %q", diff))
	}
	mults = mults.Normalized()

	return Stats{
		Health:           base.Health * tm.Health * dm.Health * mults.Health,
		Damage:           base.Damage * tm.Damage * dm.Damage * mults.Damage,
		Speed:            base.Speed * tm.Speed * dm.Speed * mults.Speed,
		Size:             base.Size * tm.Size,
		AttackCooldownMs: base.AttackCooldownMs,
	}
}

// bossesByDifficulty backs the AUTO boss-selection policy.
var bossesByDifficulty = map[domain.Difficulty]domain.MonsterType{
	domain.DifficultyNormal:    domain.MonsterBrute,
	domain.DifficultyHard:      domain.MonsterSlime,
	domain.DifficultyNightmare: domain.MonsterLurker,
	domain.DifficultyExtreme:   domain.MonsterVoidmaw,
}

// bossPhasesByDifficulty sets how many phases the final boss cycles.
var bossPhasesByDifficulty = map[domain.Difficulty]int{
	domain.DifficultyNormal:    2,
	domain.DifficultyHard:      3,
	domain.DifficultyNightmare: 3,
	domain.DifficultyExtreme:   4,
}

// SelectBoss resolves the boss archetype and phase count for a config.
// An explicit BossType wins; AUTO falls back to the difficulty table.
func SelectBoss(cfg domain.SessionConfig) (domain.MonsterType, int) {
	phases := bossPhasesByDifficulty[cfg.Difficulty]
	if phases == 0 {
		phases = 3
	}
	if cfg.BossType != domain.BossPolicyAuto {
		return domain.MonsterType(cfg.BossType), phases
	}
	boss, ok := bossesByDifficulty[cfg.Difficulty]
	if !ok {
		boss = domain.MonsterBrute
	}
	return boss, phases
}
