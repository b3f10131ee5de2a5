package actions

import (
	"fmt"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine/handlers"
	"spaceship-server/internal/systems"
	"spaceship-server/pkg/api"
)

// HandleShoot resolves one shot through the combat system and emits
// a kill event when a monster drops.
func HandleShoot(ctx handlers.Context, p api.ShootPayload) (handlers.Result, error) {
	actor := ctx.Actor
	if !actor.IsAlive() {
		return handlers.Result{Msg: "You cannot shoot.", MsgType: "ERROR"}, nil
	}

	res := systems.ResolveShot(ctx.Session, actor, p.AimX, p.AimY)
	if res.OutOfAmmo {
		return handlers.Result{Msg: "Out of ammo.", MsgType: "COMBAT", Data: res}, nil
	}

	if res.KilledMonsterID != "" {
		// Kills cancel the victim's pending scheduled effects.
		ctx.Sched.CancelOwner(res.KilledMonsterID)
		ctx.Emit(domain.Event{
			Kind:      domain.EventMonsterKilled,
			SessionID: ctx.Session.ID,
			MonsterID: res.KilledMonsterID,
			PlayerID:  actor.ID,
			TickMs:    ctx.Session.CurrentTickMs,
		})
		return handlers.Result{
			Msg:     fmt.Sprintf("%s killed a tier-%d monster.", actor.Name, res.KilledTier),
			MsgType: "COMBAT",
			Data:    res,
		}, nil
	}

	return handlers.Result{Data: res}, nil
}

// HandleReload refills the player's ammo.
func HandleReload(ctx handlers.Context) (handlers.Result, error) {
	actor := ctx.Actor
	if !actor.IsAlive() {
		return handlers.Result{Msg: "You cannot reload.", MsgType: "ERROR"}, nil
	}
	actor.Ammo = domain.MaxAmmo
	return handlers.Result{Msg: "Reloaded.", MsgType: "COMBAT"}, nil
}
