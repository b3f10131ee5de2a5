package actions

import (
	"math/rand"
	"testing"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine/handlers"
	"spaceship-server/internal/systems"
	"spaceship-server/pkg/api"
)

type nopScheduler struct{}

func (nopScheduler) Schedule(int64, domain.Effect) {}
func (nopScheduler) CancelOwner(string)            {}

func newHandlerContext() (handlers.Context, *domain.Player) {
	s := domain.NewGameSession("admin", "ABC123", domain.SessionConfig{})
	p, _ := s.AddPlayer("Nova")
	p.Status = domain.PlayerAlive
	return handlers.Context{
		Session: s,
		Actor:   p,
		Rng:     rand.New(rand.NewSource(1)),
		Sched:   nopScheduler{},
		Emit:    func(domain.Event) {},
	}, p
}

func TestHandleMoveClampsToArena(t *testing.T) {
	ctx, p := newHandlerContext()

	if _, err := HandleMove(ctx, api.MovePayload{X: 5000, Y: 200}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.X != domain.ArenaWidth || p.Y != 200 {
		t.Errorf("Expected clamp to the wall, got (%v, %v)", p.X, p.Y)
	}
}

func TestHandleMoveRejectsDeadAndStunned(t *testing.T) {
	ctx, p := newHandlerContext()
	origX := p.X

	p.Status = domain.PlayerDead
	res, err := HandleMove(ctx, api.MovePayload{X: 100, Y: 100})
	if err != nil || res.MsgType != "ERROR" {
		t.Errorf("Dead players cannot move, got %+v, %v", res, err)
	}
	if p.X != origX {
		t.Error("Dead player's position changed")
	}

	p.Status = domain.PlayerAlive
	p.StunnedMs = 500
	res, _ = HandleMove(ctx, api.MovePayload{X: 100, Y: 100})
	if res.MsgType != "ERROR" || p.X != origX {
		t.Error("Stunned players lose the move action")
	}
}

func TestHandleShootEmitsKillEvent(t *testing.T) {
	ctx, p := newHandlerContext()
	ctx.Session.AddMonster(&domain.ActiveMonster{
		ID: "c1", Type: domain.MonsterCrawler, Tier: 1,
		Health: 20, MaxHealth: 50, X: 300, Y: 300,
	})

	var events []domain.Event
	ctx.Emit = func(e domain.Event) { events = append(events, e) }

	res, err := HandleShoot(ctx, api.ShootPayload{AimX: 300, AimY: 300})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	shot, ok := res.Data.(systems.ShotResult)
	if !ok {
		t.Fatal("Shot result missing from the handler data")
	}
	if shot.KilledMonsterID != "c1" {
		t.Errorf("Expected kill of c1, got %+v", shot)
	}
	if len(events) != 1 || events[0].Kind != domain.EventMonsterKilled {
		t.Fatalf("Expected one monster_killed event, got %+v", events)
	}
	if events[0].MonsterID != "c1" || events[0].PlayerID != p.ID {
		t.Errorf("Event attribution wrong: %+v", events[0])
	}
}

func TestHandleReloadRefillsAmmo(t *testing.T) {
	ctx, p := newHandlerContext()
	p.Ammo = 0

	if _, err := HandleReload(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Ammo != domain.MaxAmmo {
		t.Errorf("Expected a full magazine, got %d", p.Ammo)
	}
}
