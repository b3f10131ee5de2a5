package engine

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine/handlers"
	"spaceship-server/internal/systems"
	"spaceship-server/pkg/logger"
)

// pendingAction is one queued command awaiting the next tick.
type pendingAction struct {
	actorID string // empty for admin commands
	kind    string
	payload json.RawMessage
}

// Session is the runtime wrapper around one GameSession: the pending
// action queue, the effect scheduler and the seeded rng. One session
// is a single logical unit of mutation; everything that touches the
// aggregate goes through the mutex, and gameplay mutation happens
// only inside Tick.
type Session struct {
	mu   sync.Mutex
	Game *domain.GameSession

	sched   *Scheduler
	rng     *rand.Rand
	pending []pendingAction

	service      *Service
	finishedWall time.Time
}

func newSession(game *domain.GameSession, svc *Service, seed int64) *Session {
	s := &Session{
		Game:    game,
		rng:     rand.New(rand.NewSource(seed)),
		service: svc,
	}
	s.sched = NewScheduler(func() int64 { return game.CurrentTickMs })
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.Game.ID
}

// Code returns the join code.
func (s *Session) Code() string {
	return s.Game.Code
}

// Join seats a new player during SETUP.
func (s *Session) Join(name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Game.AddPlayer(name)
}

// Enqueue appends a command to the pending queue. Commands are applied
// atomically at the start of the session's next tick, in submission
// order, which keeps concurrent requests from interleaving partial
// updates.
func (s *Session) Enqueue(actorID, kind string, payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, pendingAction{actorID: actorID, kind: kind, payload: payload})
}

// Tick advances the session by elapsed milliseconds: queued actions,
// then the oxygen clock, then due scheduled effects, then every
// monster's AI, then the phase checks. The oxygen-expiry check runs
// before any room-progression logic; running out of air pre-empts
// every other outcome.
func (s *Session) Tick(elapsedMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.Game

	// The queue drains first, even on paused or finished sessions,
	// so resume and post-game admin commands work. Player actions on
	// a finished session are dropped inside applyAction.
	s.drainActions()

	if game.Phase.Terminal() {
		s.noteFinished()
		return
	}
	if game.Paused {
		return
	}

	game.CurrentTickMs += elapsedMs

	inRoom := game.Phase == domain.PhaseRoomClearing || game.Phase == domain.PhaseClueDecoding
	if inRoom {
		for _, p := range game.Players {
			if p.IsAlive() {
				p.TimeAliveMs += elapsedMs
			}
			if p.StunnedMs > 0 {
				p.StunnedMs -= elapsedMs
				if p.StunnedMs < 0 {
					p.StunnedMs = 0
				}
			}
		}

		game.OxygenRemainingMs -= elapsedMs
		if game.OxygenRemainingMs <= 0 {
			game.OxygenRemainingMs = 0
			game.ForceDefeat()
			s.emit(domain.Event{Kind: domain.EventDefeat, SessionID: game.ID, TickMs: game.CurrentTickMs})
			s.noteFinished()
			return
		}
	}

	for _, eff := range s.sched.PopDue(game.CurrentTickMs) {
		systems.ExecuteEffect(game, eff, s.rng, s.sched)
	}

	// Step every monster; one faulty monster must not stall the rest.
	for _, m := range append([]*domain.ActiveMonster(nil), game.Monsters...) {
		s.stepMonsterIsolated(m, elapsedMs)
	}

	systems.Evaluate(game, s.sched.HasOwner(domain.SpawnOwner), s.emit)
	s.noteFinished()
}

// stepMonsterIsolated runs one AI step under a recover so balance
// faults stay contained to the monster that tripped them.
func (s *Session) stepMonsterIsolated(m *domain.ActiveMonster, elapsedMs int64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.WithFields(logrus.Fields{
				"component":  "ai",
				"session_id": s.Game.ID,
				"monster_id": m.ID,
				"type":       m.Type,
				"tier":       m.Tier,
				"panic":      r,
			}).Error("Monster AI step failed; skipping monster this tick")
		}
	}()
	if s.Game.MonsterByID(m.ID) == nil {
		return // removed earlier this tick (absorbed, effect kill)
	}
	systems.StepMonster(s.Game, m, elapsedMs, s.rng, s.sched)
}

func (s *Session) drainActions() {
	if len(s.pending) == 0 {
		return
	}
	queue := s.pending
	s.pending = nil

	for _, a := range queue {
		s.applyAction(a)
	}
}

func (s *Session) applyAction(a pendingAction) {
	var (
		handler handlers.HandlerFunc
		ok      bool
		actor   *domain.Player
	)
	if a.actorID == "" {
		handler, ok = s.service.adminHandlers[a.kind]
	} else {
		// Victory and Defeat are final: player commands queued before
		// or after the session ended are discarded, not applied.
		if s.Game.Phase.Terminal() {
			return
		}
		handler, ok = s.service.playerHandlers[a.kind]
		actor = s.Game.PlayerByID(a.actorID)
		if actor == nil {
			return
		}
	}
	if !ok {
		return
	}

	ctx := handlers.Context{
		Session: s.Game,
		Actor:   actor,
		Rng:     s.rng,
		Sched:   s.sched,
		Emit:    s.emit,
	}

	result, err := handler(ctx, a.payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component":  "engine",
			"session_id": s.Game.ID,
			"action":     a.kind,
		}).WithError(err).Warn("Action rejected")
		return
	}
	if result.Msg != "" {
		logger.Log.WithFields(logrus.Fields{
			"component":  "engine",
			"session_id": s.Game.ID,
			"action":     a.kind,
			"msg_type":   result.MsgType,
		}).Debug(result.Msg)
	}
}

func (s *Session) emit(e domain.Event) {
	s.service.sink.Publish(e)
}

func (s *Session) noteFinished() {
	if s.Game.Phase.Terminal() && s.finishedWall.IsZero() {
		s.finishedWall = time.Now()
	}
}

// teardown cancels all scheduled effects. Called with the session
// already removed from the store.
func (s *Session) teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.CancelAll()
}
