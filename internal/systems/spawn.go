package systems

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"spaceship-server/internal/domain"
	"spaceship-server/pkg/balance"
	"spaceship-server/pkg/logger"
)

// Scheduler queues future effects on the owning session's tick clock.
// The engine's per-session scheduler implements it.
type Scheduler interface {
	Schedule(delayMs int64, eff domain.Effect)
	CancelOwner(ownerID string)
}

// bossWaveIndex marks the synthetic boss spawn entry of a boss room.
const bossWaveIndex = -1

var difficultyRank = map[domain.Difficulty]int{
	domain.DifficultyNormal:    0,
	domain.DifficultyHard:      1,
	domain.DifficultyNightmare: 2,
	domain.DifficultyExtreme:   3,
}

// ScheduleRoom queues every spawn wave of a room, gated by the session
// difficulty. Boss rooms additionally queue the boss encounter.
func ScheduleRoom(s *domain.GameSession, sched Scheduler, roomIndex int) {
	room := balance.RoomAt(roomIndex)
	for i, wave := range room.Waves {
		if wave.MinDifficulty != "" && difficultyRank[s.Config.Difficulty] < difficultyRank[wave.MinDifficulty] {
			continue
		}
		sched.Schedule(wave.DelayMs, domain.Effect{
			Kind:      domain.EffectSpawnWave,
			OwnerID:   domain.SpawnOwner,
			RoomIndex: roomIndex,
			WaveIndex: i,
		})
	}
	if room.BossEncounter {
		sched.Schedule(3000, domain.Effect{
			Kind:      domain.EffectSpawnWave,
			OwnerID:   domain.SpawnOwner,
			RoomIndex: roomIndex,
			WaveIndex: bossWaveIndex,
		})
	}
}

// SpawnWaveNow materializes one scheduled wave into live monsters.
func SpawnWaveNow(s *domain.GameSession, roomIndex, waveIndex int, rng *rand.Rand) {
	if waveIndex == bossWaveIndex {
		spawnBoss(s, rng)
		return
	}
	room := balance.RoomAt(roomIndex)
	wave := room.Waves[waveIndex]
	for n := 0; n < wave.Count; n++ {
		tier := wave.Tier
		if tier == 0 {
			tier = SampleTier(s.Config, rng)
		}
		s.AddMonster(NewMonster(wave.Type, tier, s.Config, rng))
	}
	logger.Log.WithFields(logrus.Fields{
		"component":  "spawner",
		"session_id": s.ID,
		"room":       room.ID,
		"wave":       waveIndex,
		"count":      wave.Count,
	}).Debug("Wave spawned")
}

// SampleTier picks a tier from the configured weight distribution.
// Weights need not sum to 100; they are normalized over the tiers
// allowed by MaxMonsterTier.
func SampleTier(cfg domain.SessionConfig, rng *rand.Rand) int {
	total := 0.0
	for tier, w := range cfg.TierWeights {
		if tier >= 1 && tier <= cfg.MaxMonsterTier && w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 1
	}
	roll := rng.Float64() * total
	for tier := 1; tier <= cfg.MaxMonsterTier; tier++ {
		w := cfg.TierWeights[tier]
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return tier
		}
	}
	return 1
}

// NewMonster creates a live monster of the given type and tier with
// stats resolved from the balance tables, placed on a random arena
// edge.
func NewMonster(mtype domain.MonsterType, tier int, cfg domain.SessionConfig, rng *rand.Rand) *domain.ActiveMonster {
	stats := balance.ComputeStats(mtype, tier, cfg.Difficulty, cfg.Multipliers)
	x, y := edgePosition(rng)
	return &domain.ActiveMonster{
		ID:           domain.NewID(),
		Type:         mtype,
		Tier:         tier,
		Health:       stats.Health,
		MaxHealth:    stats.Health,
		X:            x,
		Y:            y,
		Regenerating: mtype == domain.MonsterLurker,
	}
}

func spawnBoss(s *domain.GameSession, rng *rand.Rand) {
	bossType, phases := balance.SelectBoss(s.Config)
	boss := NewMonster(bossType, 5, s.Config, rng)
	boss.IsBoss = true
	boss.BossPhase = 1
	boss.MaxBossPhases = phases
	s.AddMonster(boss)

	logger.Log.WithFields(logrus.Fields{
		"component":  "spawner",
		"session_id": s.ID,
		"boss":       bossType,
		"phases":     phases,
	}).Info("Boss encounter started")
}

// edgePosition picks a random point on the arena border so monsters
// enter from the walls rather than on top of the crew.
func edgePosition(rng *rand.Rand) (float64, float64) {
	switch rng.Intn(4) {
	case 0:
		return rng.Float64() * domain.ArenaWidth, 0
	case 1:
		return rng.Float64() * domain.ArenaWidth, domain.ArenaHeight
	case 2:
		return 0, rng.Float64() * domain.ArenaHeight
	default:
		return domain.ArenaWidth, rng.Float64() * domain.ArenaHeight
	}
}
