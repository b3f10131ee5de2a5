package domain

import "testing"

func newTestBoss(maxPhases int) *ActiveMonster {
	return &ActiveMonster{
		ID: "boss", Type: MonsterVoidmaw, Tier: 5,
		Health: 400, MaxHealth: 400,
		IsBoss: true, BossPhase: 1, MaxBossPhases: maxPhases,
	}
}

func TestAdvanceBossPhaseAtThreshold(t *testing.T) {
	boss := newTestBoss(4)

	boss.Health = 400 * 0.60
	if !boss.AdvanceBossPhase() {
		t.Fatal("Expected phase change at 60% health")
	}
	if boss.BossPhase != 2 {
		t.Errorf("Expected phase 2, got %d", boss.BossPhase)
	}

	// Same health again: no repeated trigger.
	if boss.AdvanceBossPhase() {
		t.Error("Phase must not re-advance without a health change")
	}
}

func TestAdvanceBossPhaseSkipsIntermediatePhases(t *testing.T) {
	// A burst from full health to 10% jumps straight to the final
	// phase rather than walking each threshold.
	boss := newTestBoss(4)
	boss.Health = 40

	if !boss.AdvanceBossPhase() {
		t.Fatal("Expected phase change at 10% health")
	}
	if boss.BossPhase != 4 {
		t.Errorf("Expected direct jump to phase 4, got %d", boss.BossPhase)
	}
}

func TestAdvanceBossPhaseClampsToMax(t *testing.T) {
	boss := newTestBoss(2)
	boss.Health = 1 // deep in what would be phase 5 territory

	boss.AdvanceBossPhase()
	if boss.BossPhase != 2 {
		t.Errorf("Phase must clamp at MaxBossPhases=2, got %d", boss.BossPhase)
	}
}

func TestAdvanceBossPhaseNeverMovesBackward(t *testing.T) {
	boss := newTestBoss(4)
	boss.Health = 100
	boss.AdvanceBossPhase()
	reached := boss.BossPhase

	// Healing (absorb, regen) must not revert the phase.
	boss.Health = 390
	if boss.AdvanceBossPhase() {
		t.Error("Healing must not trigger a phase change")
	}
	if boss.BossPhase != reached {
		t.Errorf("Phase moved backward: %d -> %d", reached, boss.BossPhase)
	}
}

func TestAdvanceBossPhaseIgnoresRegularMonsters(t *testing.T) {
	m := &ActiveMonster{Type: MonsterCrawler, Tier: 1, Health: 5, MaxHealth: 50}
	if m.AdvanceBossPhase() {
		t.Error("Non-boss monsters have no phases")
	}
}

func TestTickCooldownsClampAtZero(t *testing.T) {
	st := &MonsterAIState{CooldownMs: 100, SpecialCooldownMs: 500}
	st.TickCooldowns(250)

	if st.CooldownMs != 0 {
		t.Errorf("Expected cooldown clamped to 0, got %d", st.CooldownMs)
	}
	if st.SpecialCooldownMs != 250 {
		t.Errorf("Expected special cooldown 250, got %d", st.SpecialCooldownMs)
	}
}
