package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"

	"struggle-quiz-service/internal/domain"
)

const defaultHistorySize = 5

// Selector picks a pseudo-random word for a scope while avoiding the last
// few words it served. The history is soft state: losing it only makes
// repeats more likely, never wrong.
type Selector struct {
	store       WordStore
	historySize int

	mu     sync.Mutex
	rnd    *rand.Rand
	recent map[domain.Scope][]int64
}

func NewSelector(store WordStore, historySize int) *Selector {
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	return &Selector{
		store:       store,
		historySize: historySize,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		recent:      make(map[domain.Scope][]int64),
	}
}

// Pick draws uniformly from the scope's words excluding recently served
// ones; when exclusion would leave nothing it falls back to the full set.
// A single-word list is returned as-is since repetition is unavoidable.
func (s *Selector) Pick(ctx context.Context, scope domain.Scope) (domain.StruggleWord, error) {
	words, err := s.store.List(ctx, scope)
	if err != nil {
		return domain.StruggleWord{}, err
	}
	if len(words) == 0 {
		return domain.StruggleWord{}, domain.ErrNoWords
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.recent[scope]
	candidates := lo.Filter(words, func(w domain.StruggleWord, _ int) bool {
		return !lo.Contains(history, w.ID)
	})
	if len(candidates) == 0 {
		candidates = words
	}

	choice := candidates[s.rnd.Intn(len(candidates))]
	s.remember(scope, choice.ID)
	return choice, nil
}

// remember appends under s.mu, evicting the oldest entry past the cap.
func (s *Selector) remember(scope domain.Scope, wordID int64) {
	history := append(s.recent[scope], wordID)
	if len(history) > s.historySize {
		history = history[len(history)-s.historySize:]
	}
	s.recent[scope] = history
}

// Forget drops the scope's selection history, e.g. after its last word is
// removed.
func (s *Selector) Forget(scope domain.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.recent, scope)
}
