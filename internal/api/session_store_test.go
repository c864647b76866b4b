package api

import (
	"testing"

	"github.com/pharmesol/outreach-ai/internal/conversation"
)

func TestSessionStoreCreateGetDelete(t *testing.T) {
	store := NewSessionStore()

	session := store.Create(conversation.NewState("+1-555-999-0000", nil))
	if session.ID == "" {
		t.Fatal("expected a generated session id")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session, got %d", store.Len())
	}

	got, ok := store.Get(session.ID)
	if !ok {
		t.Fatal("expected session to be found")
	}
	if got.State.CallerPhone != "+1-555-999-0000" {
		t.Errorf("unexpected caller phone %q", got.State.CallerPhone)
	}

	store.Delete(session.ID)
	if _, ok := store.Get(session.ID); ok {
		t.Error("expected session to be gone after delete")
	}
	if store.Len() != 0 {
		t.Errorf("expected 0 sessions, got %d", store.Len())
	}
}

func TestSessionStoreGetUnknown(t *testing.T) {
	store := NewSessionStore()
	if _, ok := store.Get("nope"); ok {
		t.Error("unknown id should not resolve")
	}

	// Deleting an unknown id is a no-op.
	store.Delete("nope")
}

func TestSessionStoreUniqueIDs(t *testing.T) {
	store := NewSessionStore()
	a := store.Create(conversation.NewState("+1-555-000-0001", nil))
	b := store.Create(conversation.NewState("+1-555-000-0002", nil))
	if a.ID == b.ID {
		t.Error("expected distinct session ids")
	}
}
