package actions

import (
	"fmt"

	"spaceship-server/internal/engine/handlers"
	"spaceship-server/internal/systems"
	"spaceship-server/pkg/api"
)

// HandleSubmitClue runs one decode attempt against the current room's
// clue.
func HandleSubmitClue(ctx handlers.Context, p api.CluePayload) (handlers.Result, error) {
	out, err := systems.SubmitClue(ctx.Session, p.Answer, p.Force, ctx.Sched, ctx.Emit)
	if err != nil {
		return handlers.Result{}, err
	}

	switch {
	case out.Victory:
		return handlers.Result{Msg: "Final lock released. The crew escapes!", MsgType: "CLUE", Data: out}, nil
	case out.RoomAdvanced:
		return handlers.Result{Msg: "Correct. The bulkhead opens.", MsgType: "CLUE", Data: out}, nil
	case out.RevealedAnswer != "":
		return handlers.Result{
			Msg:     fmt.Sprintf("Attempts exhausted. The answer was %q.", out.RevealedAnswer),
			MsgType: "CLUE",
			Data:    out,
		}, nil
	default:
		return handlers.Result{
			Msg:     fmt.Sprintf("Wrong answer. %d attempts left.", out.AttemptsLeft),
			MsgType: "CLUE",
			Data:    out,
		}, nil
	}
}
