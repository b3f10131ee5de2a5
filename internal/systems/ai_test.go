package systems

import (
	"math/rand"
	"testing"

	"spaceship-server/internal/domain"
	"spaceship-server/pkg/balance"
)

func newAISession() (*domain.GameSession, *domain.Player, *rand.Rand) {
	s := domain.NewGameSession("admin", "ABC123", domain.SessionConfig{})
	p, _ := s.AddPlayer("Nova")
	p.Status = domain.PlayerAlive
	return s, p, rand.New(rand.NewSource(1))
}

func TestStepMonsterTargetsNearestAlivePlayer(t *testing.T) {
	s, near, rng := newAISession()
	far, _ := s.AddPlayer("Rix")
	far.Status = domain.PlayerAlive

	near.X, near.Y = 400, 400
	far.X, far.Y = 900, 900

	m := addCrawler(s, "c1", 350, 350)
	sched := &recordingScheduler{}

	StepMonster(s, m, 250, rng, sched)

	st := s.AIStates["c1"]
	if st.TargetPlayerID != near.ID {
		t.Errorf("Expected the nearer player targeted, got %q", st.TargetPlayerID)
	}
	if st.State != domain.AIChasing {
		t.Errorf("Expected CHASING out of attack range, got %s", st.State)
	}
	if m.VX <= 0 || m.VY <= 0 {
		t.Errorf("Velocity should point toward the target, got (%v, %v)", m.VX, m.VY)
	}
}

func TestStepMonsterRetargetsWhenTargetDies(t *testing.T) {
	s, first, rng := newAISession()
	second, _ := s.AddPlayer("Rix")
	second.Status = domain.PlayerAlive
	second.X, second.Y = 100, 100

	m := addCrawler(s, "c1", 300, 300)
	sched := &recordingScheduler{}

	StepMonster(s, m, 250, rng, sched)
	if s.AIStates["c1"].TargetPlayerID != first.ID {
		t.Fatalf("Expected initial target %q", first.ID)
	}

	first.Status = domain.PlayerDead
	StepMonster(s, m, 250, rng, sched)

	if s.AIStates["c1"].TargetPlayerID != second.ID {
		t.Errorf("Expected retarget to the survivor, got %q", s.AIStates["c1"].TargetPlayerID)
	}
}

func TestStepMonsterIdlesWithNoLivingPlayers(t *testing.T) {
	s, p, rng := newAISession()
	p.Status = domain.PlayerDead

	m := addCrawler(s, "c1", 300, 300)
	m.VX, m.VY = 10, 10
	sched := &recordingScheduler{}

	StepMonster(s, m, 250, rng, sched)

	st := s.AIStates["c1"]
	if st.State != domain.AIIdle || st.TargetPlayerID != "" {
		t.Errorf("Expected idle with no target, got %s %q", st.State, st.TargetPlayerID)
	}
	if m.VX != 0 || m.VY != 0 {
		t.Errorf("Idle monsters must stop, got (%v, %v)", m.VX, m.VY)
	}
}

func TestStepMonsterStunFreezesMovement(t *testing.T) {
	s, _, rng := newAISession()
	m := addCrawler(s, "c1", 300, 300)
	m.StunnedMs = 1000
	m.VX, m.VY = 50, 50
	sched := &recordingScheduler{}

	StepMonster(s, m, 250, rng, sched)

	if s.AIStates["c1"].State != domain.AIStunned {
		t.Errorf("Expected STUNNED, got %s", s.AIStates["c1"].State)
	}
	if m.VX != 0 || m.VY != 0 {
		t.Errorf("Stunned monsters must not move, got (%v, %v)", m.VX, m.VY)
	}
	if m.StunnedMs != 750 {
		t.Errorf("Stun timer should tick down, got %d", m.StunnedMs)
	}
}

func TestStepMonsterRemovesDeadAndCancelsEffects(t *testing.T) {
	s, _, rng := newAISession()
	m := addCrawler(s, "c1", 300, 300)
	m.Health = 0
	sched := &recordingScheduler{}
	sched.Schedule(500, domain.Effect{Kind: domain.EffectComboHit, OwnerID: "c1"})

	removed := StepMonster(s, m, 250, rng, sched)

	if !removed {
		t.Fatal("Expected death removal")
	}
	if s.MonsterByID("c1") != nil {
		t.Error("Dead monster still in the session list")
	}
	if sched.ownedBy("c1") != 0 {
		t.Error("Death must cancel the monster's scheduled effects")
	}
}

func TestStepMonsterBasicAttackRespectsCooldown(t *testing.T) {
	s, p, rng := newAISession()
	p.X, p.Y = 300, 300
	m := addCrawler(s, "c1", 310, 300) // within crawler attack range 40
	sched := &recordingScheduler{}

	// Push the special out of the way so only the strike fires.
	s.AIStates["c1"].SpecialCooldownMs = 60000

	StepMonster(s, m, 250, rng, sched)
	if p.Health != 92 { // crawler base damage 8
		t.Fatalf("Expected 8 damage strike, got health %v", p.Health)
	}
	if m.AttackCooldownMs != 1200 {
		t.Errorf("Strike must arm the cooldown, got %d", m.AttackCooldownMs)
	}

	StepMonster(s, m, 250, rng, sched)
	if p.Health != 92 {
		t.Errorf("No second strike while on cooldown, got health %v", p.Health)
	}
}

func TestStepMonsterRegenHealsToCap(t *testing.T) {
	s, _, rng := newAISession()
	m := &domain.ActiveMonster{
		ID: "l1", Type: domain.MonsterLurker, Tier: 1,
		Health: 89.9, MaxHealth: 90, X: 0, Y: 0,
		Regenerating: true,
	}
	s.AddMonster(m)
	sched := &recordingScheduler{}

	StepMonster(s, m, 250, rng, sched)

	if m.Health != 90 {
		t.Errorf("Regen must clamp at max health, got %v", m.Health)
	}
}

func TestStepMonsterBossPhaseResetsSpecialCooldown(t *testing.T) {
	s, _, rng := newAISession()
	boss := &domain.ActiveMonster{
		ID: "b1", Type: domain.MonsterVoidmaw, Tier: 5,
		Health: 400, MaxHealth: 400, X: 0, Y: 0,
		IsBoss: true, BossPhase: 1, MaxBossPhases: 4,
	}
	s.AddMonster(boss)
	st := s.AIStates["b1"]
	st.SpecialCooldownMs = 9000
	sched := &recordingScheduler{}

	boss.Health = 240 // 60%: crosses the first threshold
	StepMonster(s, boss, 250, rng, sched)

	if boss.BossPhase != 2 {
		t.Fatalf("Expected phase 2, got %d", boss.BossPhase)
	}
	// A fresh phase lets the new ability fire promptly. The player is
	// still out of special range this step, so the reset sticks.
	if st.SpecialCooldownMs != 0 {
		t.Errorf("Phase change should reset the special cooldown, got %d", st.SpecialCooldownMs)
	}
}

func TestVoidmawBlinksInsteadOfWalking(t *testing.T) {
	s, p, rng := newAISession()
	p.X, p.Y = 500, 500
	boss := &domain.ActiveMonster{
		ID: "b1", Type: domain.MonsterVoidmaw, Tier: 5,
		Health: 400, MaxHealth: 400, X: 0, Y: 0,
		IsBoss: true, BossPhase: 1, MaxBossPhases: 4,
	}
	s.AddMonster(boss)
	sched := &recordingScheduler{}

	StepMonster(s, boss, 250, rng, sched)

	if boss.VX != 0 || boss.VY != 0 {
		t.Errorf("The voidmaw never walks, got velocity (%v, %v)", boss.VX, boss.VY)
	}
	if boss.X == 0 && boss.Y == 0 {
		t.Error("Expected an immediate blink toward the target")
	}
	if s.AIStates["b1"].CooldownMs == 0 {
		t.Error("Blink must arm the teleport cooldown")
	}
}

func TestAbsorbConsumesLesserMonsters(t *testing.T) {
	s, _, _ := newAISession()
	slime := &domain.ActiveMonster{
		ID: "s1", Type: domain.MonsterSlime, Tier: 5,
		Health: 500, MaxHealth: 1000, X: 500, Y: 500,
	}
	s.AddMonster(slime)
	addCrawler(s, "c1", 520, 500) // in radius, lesser tier
	addCrawler(s, "c2", 900, 900) // out of radius
	sched := &recordingScheduler{}
	sched.Schedule(500, domain.Effect{Kind: domain.EffectComboHit, OwnerID: "c1"})

	killsBefore := s.TotalKills
	absorb(s, slime, absorbRow(t), sched)

	if s.MonsterByID("c1") != nil {
		t.Error("In-radius lesser monster should be absorbed")
	}
	if s.MonsterByID("c2") == nil {
		t.Error("Out-of-radius monster must survive")
	}
	if slime.Health != 500+1000*domain.AbsorbHealPct/100 {
		t.Errorf("Expected one heal tick of %v%%, got %v", domain.AbsorbHealPct, slime.Health)
	}
	if s.TotalKills != killsBefore {
		t.Error("Absorption grants no kill credit")
	}
	if sched.ownedBy("c1") != 0 {
		t.Error("Absorbed monster's effects must be cancelled")
	}
}

// absorbRow pulls the slime's absorb ability out of its kit.
func absorbRow(t *testing.T) balance.Ability {
	t.Helper()
	m := &domain.ActiveMonster{Type: domain.MonsterSlime, Tier: 5}
	for _, a := range balance.AbilitiesFor(m) {
		if a.Kind == balance.AbilityAbsorb {
			return a
		}
	}
	t.Fatal("Slime kit is missing the absorb row")
	return balance.Ability{}
}
