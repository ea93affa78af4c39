package app_test

import (
	"context"
	"errors"
	"testing"

	"struggle-quiz-service/internal/app"
	"struggle-quiz-service/internal/domain"
	"struggle-quiz-service/internal/fingerprint"
	"struggle-quiz-service/internal/infra/memory"
)

func newSelectorFixture(t *testing.T, historySize int, terms map[string]string) (*app.Selector, domain.Scope) {
	t.Helper()
	store := memory.NewWordStore()
	words := app.NewWordService(store, fingerprint.NewCodec(memory.NewEmbedder(64)))
	scope := domain.Scope{GuildID: "g1", UserID: "u1"}
	for term, def := range terms {
		if _, err := words.AddWord(context.Background(), scope, term, def); err != nil {
			t.Fatalf("add %q: %v", term, err)
		}
	}
	return app.NewSelector(store, historySize), scope
}

func TestPickWithNoWords(t *testing.T) {
	selector, scope := newSelectorFixture(t, 5, nil)
	if _, err := selector.Pick(context.Background(), scope); !errors.Is(err, domain.ErrNoWords) {
		t.Fatalf("expected ErrNoWords, got %v", err)
	}
}

func TestPickSingleWordAlwaysReturned(t *testing.T) {
	selector, scope := newSelectorFixture(t, 5, map[string]string{"كتاب": "book"})
	for i := 0; i < 10; i++ {
		word, err := selector.Pick(context.Background(), scope)
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if word.Term != "كتاب" {
			t.Fatalf("expected the only word, got %q", word.Term)
		}
	}
}

func TestPickAvoidsImmediateRepeat(t *testing.T) {
	selector, scope := newSelectorFixture(t, 1, map[string]string{
		"كتاب": "book",
		"كلب":  "dog",
	})

	prev, err := selector.Pick(context.Background(), scope)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	for i := 0; i < 20; i++ {
		word, err := selector.Pick(context.Background(), scope)
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if word.ID == prev.ID {
			t.Fatalf("draw %d repeated %q immediately", i, word.Term)
		}
		prev = word
	}
}

func TestPickEventuallyServesEveryWord(t *testing.T) {
	selector, scope := newSelectorFixture(t, 5, map[string]string{
		"كتاب": "book",
		"كلب":  "dog",
		"يوم":  "day",
	})

	seen := make(map[int64]bool)
	for i := 0; i < 200 && len(seen) < 3; i++ {
		word, err := selector.Pick(context.Background(), scope)
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		seen[word.ID] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected all 3 words served, saw %d", len(seen))
	}
}

func TestForgetDropsHistory(t *testing.T) {
	selector, scope := newSelectorFixture(t, 5, map[string]string{"كتاب": "book"})
	if _, err := selector.Pick(context.Background(), scope); err != nil {
		t.Fatalf("pick: %v", err)
	}
	selector.Forget(scope)
	// History is soft state; selection must still work from a clean slate.
	if _, err := selector.Pick(context.Background(), scope); err != nil {
		t.Fatalf("pick after forget: %v", err)
	}
}
