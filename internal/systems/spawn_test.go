package systems

import (
	"math/rand"
	"testing"

	"spaceship-server/internal/domain"
)

// recordingScheduler captures scheduled effects for assertions.
type recordingScheduler struct {
	entries []scheduledEntry
}

type scheduledEntry struct {
	delayMs int64
	eff     domain.Effect
}

func (r *recordingScheduler) Schedule(delayMs int64, eff domain.Effect) {
	r.entries = append(r.entries, scheduledEntry{delayMs: delayMs, eff: eff})
}

func (r *recordingScheduler) CancelOwner(ownerID string) {
	var kept []scheduledEntry
	for _, e := range r.entries {
		if e.eff.OwnerID != ownerID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

func (r *recordingScheduler) ownedBy(ownerID string) int {
	n := 0
	for _, e := range r.entries {
		if e.eff.OwnerID == ownerID {
			n++
		}
	}
	return n
}

func newSpawnSession(diff domain.Difficulty) *domain.GameSession {
	return domain.NewGameSession("admin", "ABC123", domain.SessionConfig{Difficulty: diff})
}

func TestScheduleRoomGatesWavesByDifficulty(t *testing.T) {
	// Room 1 (hydroponics) has two base waves plus one HARD-gated.
	normal := newSpawnSession(domain.DifficultyNormal)
	sched := &recordingScheduler{}
	ScheduleRoom(normal, sched, 1)
	if len(sched.entries) != 2 {
		t.Errorf("NORMAL should skip the gated wave, got %d entries", len(sched.entries))
	}

	hard := newSpawnSession(domain.DifficultyHard)
	sched = &recordingScheduler{}
	ScheduleRoom(hard, sched, 1)
	if len(sched.entries) != 3 {
		t.Errorf("HARD should include the gated wave, got %d entries", len(sched.entries))
	}

	for _, e := range sched.entries {
		if e.eff.OwnerID != domain.SpawnOwner {
			t.Errorf("Spawn waves must be spawner-owned, got %q", e.eff.OwnerID)
		}
	}
}

func TestScheduleRoomQueuesBossEncounter(t *testing.T) {
	s := newSpawnSession(domain.DifficultyNormal)
	sched := &recordingScheduler{}

	ScheduleRoom(s, sched, 4) // the bridge

	found := false
	for _, e := range sched.entries {
		if e.eff.WaveIndex == bossWaveIndex {
			found = true
		}
	}
	if !found {
		t.Error("Boss room must queue the boss encounter entry")
	}
}

func TestSpawnWaveNowBoss(t *testing.T) {
	s := newSpawnSession(domain.DifficultyExtreme)
	rng := rand.New(rand.NewSource(1))

	SpawnWaveNow(s, 4, bossWaveIndex, rng)

	if len(s.Monsters) != 1 {
		t.Fatalf("Expected exactly the boss, got %d monsters", len(s.Monsters))
	}
	boss := s.Monsters[0]
	if !boss.IsBoss || boss.Type != domain.MonsterVoidmaw || boss.Tier != 5 {
		t.Errorf("EXTREME boss should be a tier-5 VOIDMAW, got %+v", boss)
	}
	if boss.BossPhase != 1 || boss.MaxBossPhases != 4 {
		t.Errorf("Expected phase 1 of 4, got %d of %d", boss.BossPhase, boss.MaxBossPhases)
	}
}

func TestSpawnWaveNowFixedWave(t *testing.T) {
	s := newSpawnSession(domain.DifficultyNormal)
	rng := rand.New(rand.NewSource(1))

	SpawnWaveNow(s, 0, 0, rng) // cargo hold: 3 tier-1 crawlers

	if len(s.Monsters) != 3 {
		t.Fatalf("Expected 3 crawlers, got %d", len(s.Monsters))
	}
	for _, m := range s.Monsters {
		if m.Type != domain.MonsterCrawler || m.Tier != 1 {
			t.Errorf("Expected tier-1 crawler, got %s tier %d", m.Type, m.Tier)
		}
		if m.Health != 50 {
			t.Errorf("Expected base health 50 on NORMAL, got %v", m.Health)
		}
		if s.AIStates[m.ID] == nil {
			t.Errorf("Spawned monster %s lacks an AI state", m.ID)
		}
	}
}

func TestSampleTierRespectsCap(t *testing.T) {
	cfg := domain.SessionConfig{
		MaxMonsterTier: 2,
		TierWeights:    map[int]float64{1: 10, 2: 10, 3: 1000, 4: 1000},
	}.WithDefaults()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		tier := SampleTier(cfg, rng)
		if tier < 1 || tier > 2 {
			t.Fatalf("Sampled tier %d outside the cap", tier)
		}
	}
}

func TestSampleTierDegenerateWeights(t *testing.T) {
	cfg := domain.SessionConfig{
		MaxMonsterTier: 5,
		TierWeights:    map[int]float64{1: 0, 2: 0},
	}
	rng := rand.New(rand.NewSource(7))

	if tier := SampleTier(cfg, rng); tier != 1 {
		t.Errorf("All-zero weights fall back to tier 1, got %d", tier)
	}
}

func TestNewMonsterSpawnsOnArenaEdge(t *testing.T) {
	cfg := domain.SessionConfig{}.WithDefaults()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		m := NewMonster(domain.MonsterCrawler, 1, cfg, rng)
		onEdge := m.X == 0 || m.X == domain.ArenaWidth || m.Y == 0 || m.Y == domain.ArenaHeight
		if !onEdge {
			t.Fatalf("Monster spawned off the edge at (%v, %v)", m.X, m.Y)
		}
	}
}

func TestNewMonsterLurkerRegenerates(t *testing.T) {
	cfg := domain.SessionConfig{}.WithDefaults()
	rng := rand.New(rand.NewSource(3))

	if m := NewMonster(domain.MonsterLurker, 1, cfg, rng); !m.Regenerating {
		t.Error("Lurkers regenerate from birth")
	}
	if m := NewMonster(domain.MonsterCrawler, 1, cfg, rng); m.Regenerating {
		t.Error("Crawlers do not regenerate")
	}
}
