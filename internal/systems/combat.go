package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"spaceship-server/internal/domain"
	"spaceship-server/pkg/logger"
)

// ShotResult is the outcome of one resolved shot.
type ShotResult struct {
	Hit             bool    `json:"hit"`
	Damage          float64 `json:"damage"`
	KilledMonsterID string  `json:"killedMonsterId,omitempty"`
	KilledTier      int     `json:"killedTier,omitempty"`
	OutOfAmmo       bool    `json:"outOfAmmo,omitempty"`
}

// ResolveShot resolves one shot from a player at an aim point.
// Without ammo the shot is a no-op that still signals the caller; it
// costs neither ammo nor a shot-fired increment. A shot hits the first
// monster in list order whose position lies within the hit radius of
// the aim point.
func ResolveShot(s *domain.GameSession, shooter *domain.Player, aimX, aimY float64) ShotResult {
	if shooter.Ammo <= 0 {
		return ShotResult{OutOfAmmo: true}
	}

	shooter.Ammo--
	shooter.ShotsFired++
	s.Stats.ShotsFired++

	for _, m := range s.Monsters {
		if math.Hypot(m.X-aimX, m.Y-aimY) > domain.ShotHitRadius {
			continue
		}

		damage := domain.ShotBaseDamage
		if m.Type == domain.MonsterSentinel && isFrontalHit(m, shooter.X, shooter.Y) {
			damage *= domain.ArmorFrontalCut
		}
		// An invulnerable target takes nothing; the shot still landed,
		// but the result and the damage stats reflect the zero.
		if m.InvulnerableMs > 0 {
			damage = 0
		}

		shooter.ShotsHit++
		s.Stats.ShotsHit++
		shooter.DamageDealt += damage
		shooter.RecomputeAccuracy()

		res := ShotResult{Hit: true, Damage: damage}
		if DamageMonster(s, m, damage, shooter) {
			res.KilledMonsterID = m.ID
			res.KilledTier = m.Tier
		}
		return res
	}

	shooter.RecomputeAccuracy()
	return ShotResult{}
}

// DamageMonster applies damage to a monster and handles death
// bookkeeping: removal from the session list, session and room kill
// counters, and the killer's per-tier credit. Returns true on a kill.
// Invulnerable monsters shrug the hit off entirely.
func DamageMonster(s *domain.GameSession, m *domain.ActiveMonster, amount float64, killer *domain.Player) bool {
	if m.InvulnerableMs > 0 {
		return false
	}
	m.Health -= amount
	if m.Health > 0 {
		return false
	}

	s.RemoveMonster(m.ID)
	s.TotalKills++
	s.Stats.KillsByTier[m.Tier]++
	if killer != nil {
		killer.RecordKill(m.Tier)
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "combat",
		"session_id": s.ID,
		"monster_id": m.ID,
		"type":       m.Type,
		"tier":       m.Tier,
	}).Debug("Monster killed")
	return true
}

// ApplyDamage is the single authority for player health mutation.
// Monster AI requests damage through here instead of touching players
// it does not own. Returns true if the player died from this hit.
func ApplyDamage(s *domain.GameSession, p *domain.Player, amount float64) bool {
	if !p.IsAlive() {
		return false
	}
	p.Health -= amount
	if p.Health > 0 {
		return false
	}
	p.Health = 0
	p.Status = domain.PlayerDead

	logger.Log.WithFields(logrus.Fields{
		"component":  "combat",
		"session_id": s.ID,
		"player_id":  p.ID,
	}).Info("Player died")
	return true
}

// KnockbackPlayer pushes a player away from a source point, clamped
// to the arena.
func KnockbackPlayer(p *domain.Player, fromX, fromY, units float64) {
	dx, dy := p.X-fromX, p.Y-fromY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	p.X = clamp(p.X+dx/dist*units, 0, domain.ArenaWidth)
	p.Y = clamp(p.Y+dy/dist*units, 0, domain.ArenaHeight)
}

// isFrontalHit reports whether a shot from (fromX, fromY) lands on the
// monster's frontal arc. Facing follows the movement vector; a
// stationary monster guards all directions.
func isFrontalHit(m *domain.ActiveMonster, fromX, fromY float64) bool {
	if m.VX == 0 && m.VY == 0 {
		return true
	}
	return (fromX-m.X)*m.VX+(fromY-m.Y)*m.VY > 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
