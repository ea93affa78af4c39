package memory

import (
	"context"
	"errors"
	"testing"

	"struggle-quiz-service/internal/domain"
)

func TestWordStoreRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewWordStore()
	scope := domain.Scope{GuildID: "g1", UserID: "u1"}

	if _, err := store.Add(ctx, scope, "kitab", "book", []byte{1, 0, 0, 0}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Add(ctx, scope, "kitab", "a different book", []byte{2, 0, 0, 0}); !errors.Is(err, domain.ErrDuplicateWord) {
		t.Fatalf("expected ErrDuplicateWord, got %v", err)
	}

	// Same term under another scope is a separate word.
	other := domain.Scope{GuildID: "g1", UserID: "u2"}
	if _, err := store.Add(ctx, other, "kitab", "book", []byte{1, 0, 0, 0}); err != nil {
		t.Fatalf("add other scope: %v", err)
	}
}

func TestWordStoreRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewWordStore()
	scope := domain.Scope{GuildID: "g1", UserID: "u1"}

	id, err := store.Add(ctx, scope, "kalb", "dog", []byte{1, 0, 0, 0})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	removedID, removed, err := store.Remove(ctx, scope, "kalb")
	if err != nil || !removed || removedID != id {
		t.Fatalf("expected removal of id %d, got id=%d removed=%v err=%v", id, removedID, removed, err)
	}
	if _, err := store.GetFingerprint(ctx, id); !errors.Is(err, domain.ErrWordNotFound) {
		t.Fatalf("expected fingerprint gone with word, got %v", err)
	}

	_, removed, err = store.Remove(ctx, scope, "kalb")
	if err != nil || removed {
		t.Fatalf("second remove must report false, got removed=%v err=%v", removed, err)
	}
	if words, _ := store.List(ctx, scope); len(words) != 0 {
		t.Fatalf("expected empty store, got %d words", len(words))
	}
}

func TestWordStoreFingerprintRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewWordStore()
	scope := domain.Scope{GuildID: "g1", UserID: "u1"}
	blob := []byte{0, 0, 128, 63, 0, 0, 0, 64}

	id, err := store.Add(ctx, scope, "yawm", "day", blob)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := store.GetFingerprint(ctx, id)
	if err != nil {
		t.Fatalf("get fingerprint: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("expected stored blob back, got %v", got)
	}
}
