package session

import (
	"errors"
	"testing"
	"time"

	"promptstudio/internal/domain"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	if sess.ID() == "" {
		t.Fatal("empty session id")
	}
	if got := sess.Snapshot().State; got != StateInitial {
		t.Fatalf("state = %s, want %s", got, StateInitial)
	}

	found, err := store.Get(sess.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found != sess {
		t.Fatal("Get returned a different session")
	}

	if _, err := store.Get("missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestStorePrune(t *testing.T) {
	store := NewStore()
	stale := store.Create()
	fresh := store.Create()

	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	if removed := store.Prune(30 * time.Minute); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := store.Get(stale.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("stale session survived: %v", err)
	}
	if _, err := store.Get(fresh.ID()); err != nil {
		t.Fatalf("fresh session pruned: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}
}
