package systems

import (
	"math"
	"math/rand"

	"spaceship-server/internal/domain"
)

// ExecuteEffect runs one due scheduler entry inside the owning
// session's tick. Effects whose owner or target has since died are
// dropped silently; cancellation on owner removal is the scheduler's
// job, this is the second line of defense for in-flight entries.
func ExecuteEffect(s *domain.GameSession, eff domain.Effect, rng *rand.Rand, sched Scheduler) {
	switch eff.Kind {
	case domain.EffectSpawnWave:
		SpawnWaveNow(s, eff.RoomIndex, eff.WaveIndex, rng)

	case domain.EffectBurstShot, domain.EffectComboHit:
		target := s.PlayerByID(eff.TargetPlayerID)
		if target == nil || !target.IsAlive() {
			return
		}
		ApplyDamage(s, target, eff.Damage)
		if eff.Remaining > 0 {
			next := eff
			next.Remaining--
			sched.Schedule(eff.IntervalMs, next)
		}

	case domain.EffectAreaSlam:
		for _, p := range s.AlivePlayers() {
			if math.Hypot(p.X-eff.X, p.Y-eff.Y) <= eff.Radius {
				ApplyDamage(s, p, eff.Damage)
				if eff.StunMs > 0 {
					p.StunnedMs = eff.StunMs
				}
			}
		}

	case domain.EffectZone:
		for _, p := range s.AlivePlayers() {
			if math.Hypot(p.X-eff.X, p.Y-eff.Y) <= eff.Radius {
				ApplyDamage(s, p, eff.Damage)
			}
		}
		if eff.Remaining > 0 {
			next := eff
			next.Remaining--
			sched.Schedule(eff.IntervalMs, next)
		}

	case domain.EffectSummon:
		owner := s.MonsterByID(eff.OwnerID)
		if owner == nil {
			return
		}
		for n := 0; n < eff.SummonCount; n++ {
			minion := NewMonster(eff.SummonType, eff.SummonTier, s.Config, rng)
			// Summons appear beside their summoner, not at the walls.
			minion.X = clamp(owner.X+float64(rng.Intn(120)-60), 0, domain.ArenaWidth)
			minion.Y = clamp(owner.Y+float64(rng.Intn(120)-60), 0, domain.ArenaHeight)
			s.AddMonster(minion)
		}
	}
}
