package systems

import (
	"github.com/sirupsen/logrus"

	"spaceship-server/internal/domain"
	"spaceship-server/pkg/balance"
	"spaceship-server/pkg/logger"
)

// StartGame moves a SETUP session into the first room and brings all
// seated players alive. Requires at least one player.
func StartGame(s *domain.GameSession, sched Scheduler) error {
	if s.Phase != domain.PhaseSetup {
		return domain.ErrWrongPhase
	}
	if len(s.Players) == 0 {
		return domain.ErrNoPlayers
	}
	for _, p := range s.Players {
		p.Status = domain.PlayerAlive
	}
	s.Phase = domain.PhaseRoomClearing
	s.Stats = domain.NewRoomStats()
	ScheduleRoom(s, sched, s.Progress.CurrentRoomIndex)

	logger.Log.WithFields(logrus.Fields{
		"component":  "progression",
		"session_id": s.ID,
		"players":    len(s.Players),
		"difficulty": s.Config.Difficulty,
	}).Info("Game started")
	return nil
}

// Evaluate runs the end-of-tick phase checks: crew wipe, then room
// clearance. Oxygen expiry is checked earlier in the tick, before any
// of this. pendingSpawns must be true while spawner-owned entries are
// still queued, so a room is not declared clear between waves.
func Evaluate(s *domain.GameSession, pendingSpawns bool, emit func(domain.Event)) {
	if s.Phase.Terminal() {
		return
	}

	if s.Phase != domain.PhaseSetup && len(s.AlivePlayers()) == 0 {
		s.ForceDefeat()
		emit(domain.Event{Kind: domain.EventDefeat, SessionID: s.ID, TickMs: s.CurrentTickMs})
		return
	}

	if s.Phase == domain.PhaseRoomClearing && len(s.Monsters) == 0 && !pendingSpawns {
		s.Phase = domain.PhaseClueDecoding
		emit(domain.Event{
			Kind:      domain.EventRoomCleared,
			SessionID: s.ID,
			RoomIndex: s.Progress.CurrentRoomIndex,
			TickMs:    s.CurrentTickMs,
		})
	}
}

// ClueOutcome reports one clue submission back to the caller.
type ClueOutcome struct {
	Correct        bool   `json:"correct"`
	AttemptsLeft   int    `json:"attemptsLeft"`
	RevealedAnswer string `json:"revealedAnswer,omitempty"`
	RoomAdvanced   bool   `json:"roomAdvanced"`
	Victory        bool   `json:"victory"`
}

// SubmitClue handles one decode attempt during CLUE_DECODING. A
// correct answer (or a forced skip once the answer was revealed)
// completes the room: the oxygen reward is granted, the room is
// appended to the completed list and the campaign advances, flipping
// to VICTORY past the final room. Exhausting the attempt cap reveals
// the answer; the clue never hard-locks the session, running out of
// air is the real failure condition.
func SubmitClue(s *domain.GameSession, answer string, force bool, sched Scheduler, emit func(domain.Event)) (ClueOutcome, error) {
	if s.Phase != domain.PhaseClueDecoding {
		return ClueOutcome{}, domain.ErrWrongPhase
	}
	room := balance.RoomAt(s.Progress.CurrentRoomIndex)
	clue := room.Clue

	if force && s.Progress.ClueRevealed {
		return completeRoom(s, room, sched, emit), nil
	}

	if ValidateClueAnswer(clue, answer) {
		return completeRoom(s, room, sched, emit), nil
	}

	s.Progress.ClueAttempts++
	out := ClueOutcome{AttemptsLeft: clue.MaxAttempts() - s.Progress.ClueAttempts}
	if out.AttemptsLeft <= 0 {
		out.AttemptsLeft = 0
		s.Progress.ClueRevealed = true
		out.RevealedAnswer = clue.Answer
	}
	return out, nil
}

// SkipRoom force-completes the current room: pending spawns are
// cancelled, live monsters vanish with their scheduled effects, and
// the campaign advances as if the clue had been solved.
func SkipRoom(s *domain.GameSession, sched Scheduler, emit func(domain.Event)) (ClueOutcome, error) {
	if s.Phase != domain.PhaseRoomClearing && s.Phase != domain.PhaseClueDecoding {
		return ClueOutcome{}, domain.ErrWrongPhase
	}
	sched.CancelOwner(domain.SpawnOwner)
	for _, m := range append([]*domain.ActiveMonster(nil), s.Monsters...) {
		sched.CancelOwner(m.ID)
		s.RemoveMonster(m.ID)
	}
	room := balance.RoomAt(s.Progress.CurrentRoomIndex)
	return completeRoom(s, room, sched, emit), nil
}

func completeRoom(s *domain.GameSession, room balance.RoomConfig, sched Scheduler, emit func(domain.Event)) ClueOutcome {
	s.OxygenRemainingMs += room.OxygenReward
	s.Progress.Completed = append(s.Progress.Completed, room.ID)
	s.Progress.CurrentRoomIndex++
	s.Progress.ClueAttempts = 0
	s.Progress.ClueRevealed = false

	out := ClueOutcome{Correct: true, RoomAdvanced: true}

	if s.Progress.CurrentRoomIndex >= balance.RoomCount() {
		s.ForceVictory()
		emit(domain.Event{Kind: domain.EventVictory, SessionID: s.ID, TickMs: s.CurrentTickMs})
		out.Victory = true
		return out
	}

	s.Stats = domain.NewRoomStats()
	s.Phase = domain.PhaseRoomClearing
	ScheduleRoom(s, sched, s.Progress.CurrentRoomIndex)

	logger.Log.WithFields(logrus.Fields{
		"component":  "progression",
		"session_id": s.ID,
		"room_index": s.Progress.CurrentRoomIndex,
	}).Info("Advanced to next room")
	return out
}
