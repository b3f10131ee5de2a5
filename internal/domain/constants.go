package domain

// Arena bounds. The exploration deck is a flat plane; positions are
// clamped here for players and monsters alike.
const (
	ArenaWidth  = 1000.0
	ArenaHeight = 1000.0
)

// Combat tuning.
const (
	ShotBaseDamage  = 25.0
	ShotHitRadius   = 30.0
	MaxAmmo         = 30
	MaxPlayerHealth = 100.0
	ArmorFrontalCut = 0.5 // damage multiplier on a SENTINEL's frontal arc
	RegenPerTickPct = 0.5 // percent of max health restored per regen tick
	AbsorbHealPct   = 15.0
)

// Session tuning.
const (
	TickIntervalMs      = 250
	DefaultMaxPlayers   = 4
	DefaultOxygenMs     = 15 * 60 * 1000
	MaxClueAttempts     = 3
	MaxHardClueAttempts = 5
	JoinCodeLength      = 6
)

// Boss phase thresholds as fractions of max health. Dropping at or
// below threshold N puts the boss into phase N+2 (phases start at 1).
var BossPhaseThresholds = []float64{0.66, 0.50, 0.33, 0.20}
