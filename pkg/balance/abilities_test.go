package balance

import (
	"testing"

	"spaceship-server/internal/domain"
)

func TestAbilitiesForTierGating(t *testing.T) {
	low := &domain.ActiveMonster{Type: domain.MonsterCrawler, Tier: 1}
	if got := AbilitiesFor(low); len(got) != 1 || got[0].Kind != AbilityStrike {
		t.Errorf("Tier 1 crawler should only have its strike, got %+v", got)
	}

	high := &domain.ActiveMonster{Type: domain.MonsterCrawler, Tier: 3}
	got := AbilitiesFor(high)
	if len(got) != 2 {
		t.Fatalf("Tier 3 crawler should unlock the combo, got %+v", got)
	}
	if got[1].Kind != AbilityCombo || !got[1].Special {
		t.Errorf("Expected special combo row, got %+v", got[1])
	}
}

func TestAbilitiesForBossPhaseKeying(t *testing.T) {
	boss := &domain.ActiveMonster{
		Type: domain.MonsterVoidmaw, Tier: 5,
		IsBoss: true, BossPhase: 2, MaxBossPhases: 4,
	}
	got := AbilitiesFor(boss)

	if len(got) != 2 {
		t.Fatalf("Phase 2 boss should have basic shot plus the phase ability, got %+v", got)
	}
	if got[0].Kind != AbilityShot {
		t.Errorf("Expected phase-independent basic shot, got %+v", got[0])
	}
	if got[1].Kind != AbilitySummon {
		t.Errorf("Phase 2 should key the summon, got %+v", got[1])
	}

	boss.BossPhase = 4
	got = AbilitiesFor(boss)
	if len(got) != 2 || got[1].Kind != AbilityShield {
		t.Errorf("Phase 4 should key the shield, got %+v", got)
	}
}

func TestPhaseKeyedRowsNeverFireOffBoss(t *testing.T) {
	// A non-boss voidmaw (explicit admin spawn) must not see the
	// phase-keyed kit.
	m := &domain.ActiveMonster{Type: domain.MonsterVoidmaw, Tier: 5}
	got := AbilitiesFor(m)
	if len(got) != 1 || got[0].Kind != AbilityShot {
		t.Errorf("Non-boss voidmaw should only keep the basic shot, got %+v", got)
	}
}

func TestBehaviorForKnownTypes(t *testing.T) {
	for _, mtype := range domain.MonsterTypes {
		b := BehaviorFor(mtype)
		if b.AttackRange <= 0 {
			t.Errorf("%s: attack range must be positive, got %v", mtype, b.AttackRange)
		}
	}

	assertPanics(t, "unknown behavior", func() { BehaviorFor("GOBLIN") })
}

func TestEveryArchetypeHasABasicAttack(t *testing.T) {
	for _, mtype := range domain.MonsterTypes {
		m := &domain.ActiveMonster{Type: mtype, Tier: 1}
		found := false
		for _, a := range AbilitiesFor(m) {
			if !a.Special {
				found = true
			}
		}
		if !found {
			t.Errorf("%s has no non-special basic attack at tier 1", mtype)
		}
	}
}
