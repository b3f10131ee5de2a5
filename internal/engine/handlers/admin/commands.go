// Package admin holds the privileged session commands. They travel
// through the same per-session action queue as player actions, so
// admin mutations are serialized with gameplay.
package admin

import (
	"fmt"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine/handlers"
	"spaceship-server/internal/systems"
	"spaceship-server/pkg/api"
)

// HandleStart begins the game: players come alive, the first room's
// waves are scheduled and the oxygen countdown starts running.
func HandleStart(ctx handlers.Context) (handlers.Result, error) {
	if err := systems.StartGame(ctx.Session, ctx.Sched); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: "Game started.", MsgType: "INFO"}, nil
}

// HandlePause freezes the session: ticks are ignored and oxygen stops
// draining until resume.
func HandlePause(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Session.Phase.Terminal() {
		return handlers.Result{}, domain.ErrWrongPhase
	}
	ctx.Session.Paused = true
	return handlers.Result{Msg: "Session paused.", MsgType: "INFO"}, nil
}

// HandleResume unfreezes a paused session.
func HandleResume(ctx handlers.Context) (handlers.Result, error) {
	ctx.Session.Paused = false
	return handlers.Result{Msg: "Session resumed.", MsgType: "INFO"}, nil
}

// HandleSkipRoom force-completes the current room, monsters and all.
func HandleSkipRoom(ctx handlers.Context) (handlers.Result, error) {
	out, err := systems.SkipRoom(ctx.Session, ctx.Sched, ctx.Emit)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: "Room skipped.", MsgType: "INFO", Data: out}, nil
}

// HandleForceVictory ends the session in victory.
func HandleForceVictory(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Session.Phase.Terminal() {
		return handlers.Result{}, domain.ErrWrongPhase
	}
	ctx.Session.ForceVictory()
	ctx.Emit(domain.Event{Kind: domain.EventVictory, SessionID: ctx.Session.ID, TickMs: ctx.Session.CurrentTickMs})
	return handlers.Result{Msg: "Victory forced.", MsgType: "INFO"}, nil
}

// HandleForceDefeat ends the session in defeat.
func HandleForceDefeat(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Session.Phase.Terminal() {
		return handlers.Result{}, domain.ErrWrongPhase
	}
	ctx.Session.ForceDefeat()
	ctx.Emit(domain.Event{Kind: domain.EventDefeat, SessionID: ctx.Session.ID, TickMs: ctx.Session.CurrentTickMs})
	return handlers.Result{Msg: "Defeat forced.", MsgType: "INFO"}, nil
}

// HandleAdjustOxygen shifts the remaining oxygen by a signed delta.
// Rewards already have no upper cap, so neither does this; a negative
// delta below zero lets the next tick resolve the defeat.
func HandleAdjustOxygen(ctx handlers.Context, p api.AdjustOxygenPayload) (handlers.Result, error) {
	if ctx.Session.Phase.Terminal() {
		return handlers.Result{}, domain.ErrWrongPhase
	}
	ctx.Session.OxygenRemainingMs += p.DeltaMs
	return handlers.Result{
		Msg:     fmt.Sprintf("Oxygen adjusted by %dms.", p.DeltaMs),
		MsgType: "INFO",
	}, nil
}
