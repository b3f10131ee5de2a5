package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine/handlers"
	"spaceship-server/internal/engine/handlers/actions"
	"spaceship-server/internal/engine/handlers/admin"
	"spaceship-server/pkg/api"
	"spaceship-server/pkg/logger"
)

// SessionStore is the shared session index the engine depends on:
// id→session, code→session and player-token→session lookups. All
// mutations must be atomic across the maps; implementations guard
// them with a single lock, distinct from per-session tick locking.
type SessionStore interface {
	Create(s *Session) error
	ByID(id string) (*Session, bool)
	ByCode(code string) (*Session, bool)
	ByToken(token string) (*Session, string, bool)
	BindToken(token, sessionID, playerID string) error
	Delete(id string) (*Session, bool)
	All() []*Session
}

// Config holds the engine startup parameters.
type Config struct {
	// Seed is the master seed; each session derives its own rng from
	// it, so a fixed seed reproduces spawn rolls in tests.
	Seed int64
}

// NewConfig returns a config with a random master seed.
func NewConfig() Config {
	return Config{Seed: time.Now().UnixNano()}
}

// Service is the session registry facade: it creates, finds, ticks
// and deletes sessions, and routes player and admin commands into
// the per-session queues.
type Service struct {
	store SessionStore
	sink  domain.EventSink

	mu   sync.Mutex // guards rng and seed derivation
	rng  *rand.Rand
	seed int64

	playerHandlers map[string]handlers.HandlerFunc
	adminHandlers  map[string]handlers.HandlerFunc
}

// NewService wires the engine against a store and an event sink.
func NewService(cfg Config, store SessionStore, sink domain.EventSink) *Service {
	if sink == nil {
		sink = domain.NopSink{}
	}
	s := &Service{
		store: store,
		sink:  sink,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		seed:  cfg.Seed,
	}
	s.registerHandlers()
	return s
}

func (svc *Service) registerHandlers() {
	svc.playerHandlers = map[string]handlers.HandlerFunc{
		string(api.ActionMove):       handlers.WithPayload(actions.HandleMove),
		string(api.ActionShoot):      handlers.WithPayload(actions.HandleShoot),
		string(api.ActionReload):     handlers.WithEmptyPayload(actions.HandleReload),
		string(api.ActionSubmitClue): handlers.WithPayload(actions.HandleSubmitClue),
	}
	svc.adminHandlers = map[string]handlers.HandlerFunc{
		string(api.AdminStart):        handlers.WithEmptyPayload(admin.HandleStart),
		string(api.AdminPause):        handlers.WithEmptyPayload(admin.HandlePause),
		string(api.AdminResume):       handlers.WithEmptyPayload(admin.HandleResume),
		string(api.AdminSkipRoom):     handlers.WithEmptyPayload(admin.HandleSkipRoom),
		string(api.AdminForceVictory): handlers.WithEmptyPayload(admin.HandleForceVictory),
		string(api.AdminForceDefeat):  handlers.WithEmptyPayload(admin.HandleForceDefeat),
		string(api.AdminAdjustOxygen): handlers.WithPayload(admin.HandleAdjustOxygen),
	}
}

// CreateSession builds a fresh session in SETUP and registers it.
func (svc *Service) CreateSession(adminID string, cfg domain.SessionConfig) (*Session, error) {
	svc.mu.Lock()
	code := domain.NewJoinCode(svc.rng)
	seed := svc.rng.Int63()
	svc.mu.Unlock()

	game := domain.NewGameSession(adminID, code, cfg)
	sess := newSession(game, svc, seed)

	if err := svc.store.Create(sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "service",
		"session_id": game.ID,
		"code":       game.Code,
		"difficulty": game.Config.Difficulty,
	}).Info("Session created")
	return sess, nil
}

// JoinSession seats a player by join code and returns their token.
func (svc *Service) JoinSession(code, playerName string) (token, playerID string, err error) {
	sess, ok := svc.store.ByCode(code)
	if !ok {
		return "", "", domain.ErrSessionNotFound
	}
	player, err := sess.Join(playerName)
	if err != nil {
		return "", "", err
	}
	if err := svc.store.BindToken(player.Token, sess.ID(), player.ID); err != nil {
		return "", "", err
	}
	return player.Token, player.ID, nil
}

// SubmitAction validates the caller synchronously and queues the
// action for the session's next tick. Validation failures reject
// without mutating any state.
func (svc *Service) SubmitAction(sessionID, playerToken string, kind api.ActionKind, payload json.RawMessage) error {
	sess, ok := svc.store.ByID(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	tokenSess, playerID, ok := svc.store.ByToken(playerToken)
	if !ok || tokenSess.ID() != sess.ID() {
		return domain.ErrInvalidToken
	}
	if _, known := svc.playerHandlers[string(kind)]; !known {
		return domain.ErrUnknownAction
	}
	sess.Enqueue(playerID, string(kind), payload)
	return nil
}

// AdminAction queues a privileged command. Deletion is the exception:
// it runs synchronously because it must release the session from the
// store index atomically.
func (svc *Service) AdminAction(sessionID string, kind api.AdminKind, payload json.RawMessage) error {
	if kind == api.AdminDelete {
		return svc.DeleteSession(sessionID)
	}
	sess, ok := svc.store.ByID(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	if _, known := svc.adminHandlers[string(kind)]; !known {
		return domain.ErrUnknownAction
	}
	sess.Enqueue("", string(kind), payload)
	return nil
}

// Tick advances one session by the standard tick interval. Driven by
// the external cadence.
func (svc *Service) Tick(sessionID string) error {
	return svc.TickBy(sessionID, domain.TickIntervalMs)
}

// TickBy advances one session by an explicit elapsed duration.
func (svc *Service) TickBy(sessionID string, elapsedMs int64) error {
	sess, ok := svc.store.ByID(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.Tick(elapsedMs)
	return nil
}

// TickAll advances every live session by the standard tick interval.
func (svc *Service) TickAll() {
	for _, sess := range svc.store.All() {
		sess.Tick(domain.TickIntervalMs)
	}
}

// DeleteSession removes a session from every index, cancels its
// pending scheduled effects and publishes the deletion event.
func (svc *Service) DeleteSession(sessionID string) error {
	sess, ok := svc.store.Delete(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.teardown()
	svc.sink.Publish(domain.Event{Kind: domain.EventDeleted, SessionID: sessionID})

	logger.Log.WithFields(logrus.Fields{
		"component":  "service",
		"session_id": sessionID,
	}).Info("Session deleted")
	return nil
}

// ReapExpired deletes finished sessions older than the retention
// window.
func (svc *Service) ReapExpired(maxAge time.Duration) int {
	reaped := 0
	for _, sess := range svc.store.All() {
		sess.mu.Lock()
		expired := sess.Game.Phase.Terminal() &&
			!sess.finishedWall.IsZero() &&
			time.Since(sess.finishedWall) > maxAge
		sess.mu.Unlock()
		if expired {
			if err := svc.DeleteSession(sess.ID()); err == nil {
				reaped++
			}
		}
	}
	return reaped
}

// Snapshot serializes the full session aggregate for the persistence
// collaborator. AI states are runtime-only and excluded.
func (svc *Service) Snapshot(sessionID string) ([]byte, error) {
	sess, ok := svc.store.ByID(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return msgpack.Marshal(sess.Game)
}

// RestoreSnapshot rebuilds a session from a snapshot and registers it.
// AI states are recreated fresh; pending scheduled effects are not
// part of the snapshot, so a restored ROOM_CLEARING session re-queues
// nothing — its surviving monsters simply resume and an empty room
// clears on the next tick.
func (svc *Service) RestoreSnapshot(data []byte) (*Session, error) {
	var game domain.GameSession
	if err := msgpack.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	game.AIStates = make(map[string]*domain.MonsterAIState)
	for _, m := range game.Monsters {
		game.AIStates[m.ID] = domain.NewMonsterAIState()
	}

	svc.mu.Lock()
	seed := svc.rng.Int63()
	svc.mu.Unlock()

	sess := newSession(&game, svc, seed)
	if err := svc.store.Create(sess); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	for _, p := range game.Players {
		if err := svc.store.BindToken(p.Token, game.ID, p.ID); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// View projects a session into its client-facing snapshot.
func (svc *Service) View(sessionID string) (api.SessionView, error) {
	sess, ok := svc.store.ByID(sessionID)
	if !ok {
		return api.SessionView{}, domain.ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	game := sess.Game
	view := api.SessionView{
		ID:                game.ID,
		Code:              game.Code,
		Phase:             string(game.Phase),
		Paused:            game.Paused,
		OxygenRemainingMs: game.OxygenRemainingMs,
		CurrentRoomIndex:  game.Progress.CurrentRoomIndex,
		CompletedRooms:    append([]string(nil), game.Progress.Completed...),
		TotalKills:        game.TotalKills,
	}
	for _, p := range game.Players {
		view.Players = append(view.Players, api.PlayerView{
			ID: p.ID, Name: p.Name, Index: p.Index, Status: string(p.Status),
			Health: p.Health, Ammo: p.Ammo, X: p.X, Y: p.Y,
			TotalKills: p.TotalKills, Accuracy: p.Accuracy,
		})
	}
	for _, m := range game.Monsters {
		view.Monsters = append(view.Monsters, api.MonsterView{
			ID: m.ID, Type: string(m.Type), Tier: m.Tier,
			Health: m.Health, MaxHealth: m.MaxHealth, X: m.X, Y: m.Y,
			IsBoss: m.IsBoss, BossPhase: m.BossPhase,
		})
	}
	return view, nil
}
