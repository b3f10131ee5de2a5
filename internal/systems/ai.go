package systems

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"spaceship-server/internal/domain"
	"spaceship-server/pkg/balance"
	"spaceship-server/pkg/logger"
)

// StepMonster advances one monster's AI by elapsed milliseconds.
// Returns true when the monster died this step and was removed.
// A fault in one monster's step must never take down the tick; the
// caller wraps this in a recover and moves on to the next monster.
func StepMonster(s *domain.GameSession, m *domain.ActiveMonster, elapsedMs int64, rng *rand.Rand, sched Scheduler) bool {
	st := s.AIStates[m.ID]
	if st == nil {
		// Orphaned monster; restore repair path creates states, so
		// this indicates a bug upstream.
		st = domain.NewMonsterAIState()
		s.AIStates[m.ID] = st
	}

	// 1. Timers.
	st.TickCooldowns(elapsedMs)
	m.AttackCooldownMs = clampMs(m.AttackCooldownMs - elapsedMs)
	m.StunnedMs = clampMs(m.StunnedMs - elapsedMs)
	m.SlowedMs = clampMs(m.SlowedMs - elapsedMs)
	m.InvulnerableMs = clampMs(m.InvulnerableMs - elapsedMs)

	// 2. Death.
	if m.Health <= 0 {
		st.State = domain.AIDead
		sched.CancelOwner(m.ID)
		s.RemoveMonster(m.ID)
		return true
	}

	stats := balance.ComputeStats(m.Type, m.Tier, s.Config.Difficulty, s.Config.Multipliers)

	// 3. Boss phase transition, forward only.
	if m.IsBoss && m.AdvanceBossPhase() {
		// A new phase unlocks a new ability row; let it fire soon.
		st.SpecialCooldownMs = 0
		logger.Log.WithFields(logrus.Fields{
			"component":  "ai",
			"session_id": s.ID,
			"monster_id": m.ID,
			"phase":      m.BossPhase,
		}).Info("Boss phase advanced")
	}

	// 4. Passive effects.
	if m.Regenerating {
		m.Health += m.MaxHealth * domain.RegenPerTickPct / 100
		if m.Health > m.MaxHealth {
			m.Health = m.MaxHealth
		}
	}
	if m.StunnedMs > 0 {
		st.State = domain.AIStunned
		m.VX, m.VY = 0, 0
		return false
	}

	// 5. Targeting.
	target := currentTarget(s, st)
	if target == nil {
		target = nearestAlivePlayer(s, m)
		if target == nil {
			st.State = domain.AIIdle
			st.TargetPlayerID = ""
			m.VX, m.VY = 0, 0
			return false
		}
		st.TargetPlayerID = target.ID
	}

	// 6. Type-specific behavior through the shared ability table.
	behavior := balance.BehaviorFor(m.Type)
	dist := math.Hypot(target.X-m.X, target.Y-m.Y)

	steer(m, st, behavior, stats, target, dist)
	act(s, m, st, behavior, stats, target, dist, rng, sched)

	// 7. Integrate and clamp.
	speedScale := 1.0
	if m.SlowedMs > 0 {
		speedScale = 0.5
	}
	dt := float64(elapsedMs) / 1000
	m.X = clamp(m.X+m.VX*speedScale*dt, 0, domain.ArenaWidth)
	m.Y = clamp(m.Y+m.VY*speedScale*dt, 0, domain.ArenaHeight)
	return false
}

func currentTarget(s *domain.GameSession, st *domain.MonsterAIState) *domain.Player {
	if st.TargetPlayerID == "" {
		return nil
	}
	p := s.PlayerByID(st.TargetPlayerID)
	if p == nil || !p.IsAlive() {
		return nil
	}
	return p
}

// nearestAlivePlayer picks the closest living player by Euclidean
// distance, ties broken by the lowest seat index.
func nearestAlivePlayer(s *domain.GameSession, m *domain.ActiveMonster) *domain.Player {
	var best *domain.Player
	bestDist := math.Inf(1)
	for _, p := range s.Players {
		if !p.IsAlive() {
			continue
		}
		d := math.Hypot(p.X-m.X, p.Y-m.Y)
		if d < bestDist || (d == bestDist && best != nil && p.Index < best.Index) {
			best = p
			bestDist = d
		}
	}
	return best
}

// steer sets the monster's velocity from its movement rule.
func steer(m *domain.ActiveMonster, st *domain.MonsterAIState, b balance.Behavior, stats balance.Stats, target *domain.Player, dist float64) {
	dirX, dirY := 0.0, 0.0
	if dist > 0 {
		dirX = (target.X - m.X) / dist
		dirY = (target.Y - m.Y) / dist
	}

	switch b.Move {
	case balance.MoveApproach, balance.MoveCreep:
		if dist > b.AttackRange {
			st.State = domain.AIChasing
			m.VX, m.VY = dirX*stats.Speed, dirY*stats.Speed
		} else {
			st.State = domain.AIAttacking
			m.VX, m.VY = 0, 0
		}
	case balance.MoveCharge:
		if dist > b.AttackRange {
			st.State = domain.AIChasing
			m.VX, m.VY = dirX*stats.Speed*b.ChargeMult, dirY*stats.Speed*b.ChargeMult
		} else {
			st.State = domain.AIAttacking
			m.VX, m.VY = 0, 0
		}
	case balance.MoveStandoff:
		switch {
		case dist < b.StandoffMin:
			st.State = domain.AIChasing
			m.VX, m.VY = -dirX*stats.Speed, -dirY*stats.Speed
		case dist > b.StandoffMax:
			st.State = domain.AIChasing
			m.VX, m.VY = dirX*stats.Speed, dirY*stats.Speed
		default:
			st.State = domain.AIAttacking
			m.VX, m.VY = 0, 0
		}
	case balance.MoveTeleport:
		// No walking. Blink to a point near the target when the
		// generic cooldown runs out.
		m.VX, m.VY = 0, 0
		st.State = domain.AIAttacking
		if st.CooldownMs == 0 {
			blink(m, target)
			st.CooldownMs = b.BlinkEvery
		}
	}
	st.DesiredVX, st.DesiredVY = m.VX, m.VY
}

func blink(m *domain.ActiveMonster, target *domain.Player) {
	angle := math.Atan2(m.Y-target.Y, m.X-target.X) + math.Pi/2
	m.X = clamp(target.X+math.Cos(angle)*250, 0, domain.ArenaWidth)
	m.Y = clamp(target.Y+math.Sin(angle)*250, 0, domain.ArenaHeight)
}

// act fires the basic attack when in range and off cooldown, and
// dispatches one eligible special from the ability table when the
// shared special cooldown has expired.
func act(s *domain.GameSession, m *domain.ActiveMonster, st *domain.MonsterAIState, b balance.Behavior, stats balance.Stats, target *domain.Player, dist float64, rng *rand.Rand, sched Scheduler) {
	abilities := balance.AbilitiesFor(m)

	var basic *balance.Ability
	var specials []balance.Ability
	for i := range abilities {
		if abilities[i].Special {
			specials = append(specials, abilities[i])
		} else if basic == nil {
			basic = &abilities[i]
		}
	}

	if basic != nil && dist <= b.AttackRange && m.AttackCooldownMs == 0 {
		execute(s, m, *basic, stats, target, rng, sched)
		m.AttackCooldownMs = stats.AttackCooldownMs
	}

	if len(specials) > 0 && st.SpecialCooldownMs == 0 && dist <= specialRange(b) {
		chosen := specials[rng.Intn(len(specials))]
		execute(s, m, chosen, stats, target, rng, sched)
		st.SpecialCooldownMs = chosen.CooldownMs
	}
}

// specialRange gives melee types a little reach on their specials so
// area attacks trigger before perfect contact.
func specialRange(b balance.Behavior) float64 {
	if b.AttackRange < 150 {
		return b.AttackRange * 3
	}
	return b.AttackRange
}

// execute interprets one ability row. Multi-step rows become queued
// scheduler effects owned by the monster so its death cancels them.
func execute(s *domain.GameSession, m *domain.ActiveMonster, a balance.Ability, stats balance.Stats, target *domain.Player, rng *rand.Rand, sched Scheduler) {
	damage := stats.Damage * a.DamageMult

	switch a.Kind {
	case balance.AbilityStrike:
		ApplyDamage(s, target, damage)
		if a.KnockbackU > 0 {
			KnockbackPlayer(target, m.X, m.Y, a.KnockbackU)
		}

	case balance.AbilityShot:
		ApplyDamage(s, target, damage)

	case balance.AbilityEngulf:
		ApplyDamage(s, target, damage)
		target.StunnedMs = a.StunMs

	case balance.AbilityCombo:
		sched.Schedule(a.IntervalMs, domain.Effect{
			Kind:           domain.EffectComboHit,
			OwnerID:        m.ID,
			TargetPlayerID: target.ID,
			Damage:         damage,
			Remaining:      a.Shots - 1,
			IntervalMs:     a.IntervalMs,
		})

	case balance.AbilityMultiShot:
		sched.Schedule(a.IntervalMs, domain.Effect{
			Kind:           domain.EffectBurstShot,
			OwnerID:        m.ID,
			TargetPlayerID: target.ID,
			Damage:         damage,
			Remaining:      a.Shots - 1,
			IntervalMs:     a.IntervalMs,
		})

	case balance.AbilitySlam:
		// Telegraphed at the target's current position; dodgeable.
		sched.Schedule(a.IntervalMs, domain.Effect{
			Kind:    domain.EffectAreaSlam,
			OwnerID: m.ID,
			X:       target.X,
			Y:       target.Y,
			Radius:  a.Radius,
			Damage:  damage,
			StunMs:  a.StunMs,
		})

	case balance.AbilityAbsorb:
		absorb(s, m, a, sched)

	case balance.AbilityReinforce, balance.AbilitySummon:
		sched.Schedule(500, domain.Effect{
			Kind:        domain.EffectSummon,
			OwnerID:     m.ID,
			SummonType:  a.SummonType,
			SummonTier:  a.SummonTier,
			SummonCount: a.SummonCount,
		})

	case balance.AbilityMultiStrike:
		for _, p := range s.AlivePlayers() {
			if math.Hypot(p.X-m.X, p.Y-m.Y) <= a.Radius {
				ApplyDamage(s, p, damage)
			}
		}

	case balance.AbilityNova:
		blink(m, target)
		for _, p := range s.AlivePlayers() {
			if math.Hypot(p.X-m.X, p.Y-m.Y) <= a.Radius {
				ApplyDamage(s, p, damage)
			}
		}

	case balance.AbilityZone:
		sched.Schedule(a.IntervalMs, domain.Effect{
			Kind:       domain.EffectZone,
			OwnerID:    m.ID,
			X:          target.X,
			Y:          target.Y,
			Radius:     a.Radius,
			Damage:     damage,
			Remaining:  a.Shots - 1,
			IntervalMs: a.IntervalMs,
		})

	case balance.AbilityShield:
		m.InvulnerableMs = a.DurationMs
	}
}

// absorb consumes lesser non-boss monsters around a boss slime,
// healing it per victim. Absorbed monsters vanish without kill credit.
func absorb(s *domain.GameSession, m *domain.ActiveMonster, a balance.Ability, sched Scheduler) {
	var victims []string
	for _, other := range s.Monsters {
		if other.ID == m.ID || other.IsBoss || other.Tier >= m.Tier {
			continue
		}
		if math.Hypot(other.X-m.X, other.Y-m.Y) <= a.Radius {
			victims = append(victims, other.ID)
		}
	}
	for _, id := range victims {
		sched.CancelOwner(id)
		s.RemoveMonster(id)
		m.Health += m.MaxHealth * a.HealPct / 100
	}
	if m.Health > m.MaxHealth {
		m.Health = m.MaxHealth
	}
}

func clampMs(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
