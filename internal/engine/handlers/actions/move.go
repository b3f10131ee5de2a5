package actions

import (
	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine/handlers"
	"spaceship-server/pkg/api"
)

// HandleMove repositions the acting player, clamped to the arena.
// Dead players cannot move; stunned players lose the action.
func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	actor := ctx.Actor
	if !actor.IsAlive() {
		return handlers.Result{Msg: "You are in no state to move.", MsgType: "ERROR"}, nil
	}
	if actor.StunnedMs > 0 {
		return handlers.Result{Msg: "You are stunned.", MsgType: "ERROR"}, nil
	}

	actor.X = clamp(p.X, 0, domain.ArenaWidth)
	actor.Y = clamp(p.Y, 0, domain.ArenaHeight)
	return handlers.Result{}, nil
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
