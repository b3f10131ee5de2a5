package store

import (
	"errors"
	"testing"

	"spaceship-server/internal/domain"
	"spaceship-server/internal/engine"
)

func newStoreWithSession(t *testing.T) (*InMemorySessionStore, *engine.Session) {
	t.Helper()
	r := NewInMemorySessionStore()
	svc := engine.NewService(engine.Config{Seed: 1}, r, nil)
	sess, err := svc.CreateSession("admin", domain.SessionConfig{})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return r, sess
}

func TestLookupsAfterCreate(t *testing.T) {
	r, sess := newStoreWithSession(t)

	if got, ok := r.ByID(sess.ID()); !ok || got != sess {
		t.Error("ByID lookup failed")
	}
	if got, ok := r.ByCode(sess.Code()); !ok || got != sess {
		t.Error("ByCode lookup failed")
	}
	if _, ok := r.ByID("nosuch"); ok {
		t.Error("ByID must miss on unknown id")
	}
	if _, ok := r.ByCode("NOSUCH"); ok {
		t.Error("ByCode must miss on unknown code")
	}
}

func TestDuplicateJoinCodeRejected(t *testing.T) {
	r, sess := newStoreWithSession(t)

	// Build a second session elsewhere, then force a code collision.
	svc := engine.NewService(engine.Config{Seed: 2}, NewInMemorySessionStore(), nil)
	other, err := svc.CreateSession("admin2", domain.SessionConfig{})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	other.Game.Code = sess.Code()

	if err := r.Create(other); !errors.Is(err, ErrCodeTaken) {
		t.Errorf("Expected ErrCodeTaken, got %v", err)
	}
}

func TestTokenBindingAndLookup(t *testing.T) {
	r, sess := newStoreWithSession(t)

	if err := r.BindToken("tok-1", sess.ID(), "player-1"); err != nil {
		t.Fatalf("BindToken: %v", err)
	}

	got, playerID, ok := r.ByToken("tok-1")
	if !ok || got != sess || playerID != "player-1" {
		t.Errorf("ByToken mismatch: ok=%v player=%q", ok, playerID)
	}

	if _, _, ok := r.ByToken("nosuch"); ok {
		t.Error("ByToken must miss on unknown token")
	}

	if err := r.BindToken("tok-2", "nosuch-session", "p"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteClearsEveryIndex(t *testing.T) {
	r, sess := newStoreWithSession(t)
	if err := r.BindToken("tok-1", sess.ID(), "player-1"); err != nil {
		t.Fatalf("BindToken: %v", err)
	}

	got, ok := r.Delete(sess.ID())
	if !ok || got != sess {
		t.Fatal("Delete should return the removed session")
	}

	if _, ok := r.ByID(sess.ID()); ok {
		t.Error("Deleted session still in the id index")
	}
	if _, ok := r.ByCode(sess.Code()); ok {
		t.Error("Deleted session still in the code index")
	}
	if _, _, ok := r.ByToken("tok-1"); ok {
		t.Error("Deleted session's tokens must be unbound")
	}
	if len(r.All()) != 0 {
		t.Errorf("Expected an empty store, got %d sessions", len(r.All()))
	}

	if _, ok := r.Delete(sess.ID()); ok {
		t.Error("Double delete must report false")
	}
}

func TestAllListsEverySession(t *testing.T) {
	r := NewInMemorySessionStore()
	svc := engine.NewService(engine.Config{Seed: 3}, r, nil)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateSession("admin", domain.SessionConfig{}); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}

	if len(r.All()) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(r.All()))
	}
}
