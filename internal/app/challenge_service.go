package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"struggle-quiz-service/internal/domain"
	"struggle-quiz-service/internal/fingerprint"
)

// Clock supplies the current time; injected so timeout behavior is
// deterministic in tests.
type Clock func() time.Time

// ChallengeService arbitrates at most one live challenge per scope. It
// exclusively owns the live map; expiry is a read-time predicate on every
// path, not something only the sweeper enforces.
type ChallengeService struct {
	store     WordStore
	selector  *Selector
	codec     *fingerprint.Codec
	timeout   time.Duration
	threshold float64
	now       Clock

	mu     sync.Mutex
	active map[domain.Scope]*domain.Challenge
}

func NewChallengeService(store WordStore, selector *Selector, codec *fingerprint.Codec, timeout time.Duration, threshold float64) *ChallengeService {
	return NewChallengeServiceWithClock(store, selector, codec, timeout, threshold, time.Now)
}

// NewChallengeServiceWithClock allows deterministic timestamps in tests.
func NewChallengeServiceWithClock(store WordStore, selector *Selector, codec *fingerprint.Codec, timeout time.Duration, threshold float64, now Clock) *ChallengeService {
	return &ChallengeService{
		store:     store,
		selector:  selector,
		codec:     codec,
		timeout:   timeout,
		threshold: threshold,
		now:       now,
		active:    make(map[domain.Scope]*domain.Challenge),
	}
}

// Open installs a new challenge for the scope unless an unexpired one is
// already live. Check and install happen in one critical section, so
// concurrent Opens for the same scope cannot both succeed. An expired entry
// the sweeper has not yet reached counts as absent.
func (s *ChallengeService) Open(ctx context.Context, scope domain.Scope) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.active[scope]; ok && now.Before(existing.ExpiresAt) {
		return domain.Challenge{}, domain.ErrAlreadyActive
	}

	word, err := s.selector.Pick(ctx, scope)
	if err != nil {
		return domain.Challenge{}, err
	}

	chal := &domain.Challenge{
		ID:         uuid.NewString(),
		Scope:      scope,
		WordID:     word.ID,
		Term:       word.Term,
		Definition: word.Definition,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.timeout),
	}
	s.active[scope] = chal
	return *chal, nil
}

// Submit claims the scope's live challenge and scores the answer against the
// stored fingerprint. The claim removes the entry before scoring, so this is
// the single attempt: a second message, or one arriving after expiry, gets
// ErrNoActiveChallenge. Scoring runs outside the lock; if it cannot complete
// (word deleted mid-challenge, embedder down) the challenge still resolves,
// as OutcomeFailed with the cause attached.
func (s *ChallengeService) Submit(ctx context.Context, scope domain.Scope, answer string) (domain.Outcome, error) {
	s.mu.Lock()
	chal, ok := s.active[scope]
	if ok {
		delete(s.active, scope)
	}
	s.mu.Unlock()

	if !ok || !s.now().Before(chal.ExpiresAt) {
		return domain.Outcome{}, domain.ErrNoActiveChallenge
	}

	outcome := domain.Outcome{
		ChallengeID: chal.ID,
		Term:        chal.Term,
		Definition:  chal.Definition,
	}

	score, err := s.score(ctx, chal.WordID, answer)
	if err != nil {
		outcome.Kind = domain.OutcomeFailed
		outcome.Err = err
		return outcome, nil
	}

	outcome.Score = score
	if fingerprint.Classify(score, s.threshold) {
		outcome.Kind = domain.OutcomeCorrect
	} else {
		outcome.Kind = domain.OutcomeIncorrect
	}
	return outcome, nil
}

func (s *ChallengeService) score(ctx context.Context, wordID int64, answer string) (float64, error) {
	blob, err := s.store.GetFingerprint(ctx, wordID)
	if err != nil {
		return 0, err
	}
	stored, err := fingerprint.Deserialize(blob)
	if err != nil {
		return 0, err
	}
	answerFP, err := s.codec.Encode(ctx, answer)
	if err != nil {
		return 0, err
	}
	return fingerprint.Score(stored, answerFP), nil
}

// SweepExpired removes entries whose deadline has passed and reports how
// many it cleared. Expired scopes are collected first, then each removal is
// re-checked against the challenge id under the lock so a Submit or Open
// that won the race in between is never clobbered.
func (s *ChallengeService) SweepExpired() int {
	now := s.now()

	s.mu.Lock()
	expired := make(map[domain.Scope]string)
	for scope, chal := range s.active {
		if !now.Before(chal.ExpiresAt) {
			expired[scope] = chal.ID
		}
	}
	s.mu.Unlock()

	removed := 0
	for scope, id := range expired {
		s.mu.Lock()
		if cur, ok := s.active[scope]; ok && cur.ID == id {
			delete(s.active, scope)
			removed++
		}
		s.mu.Unlock()
	}
	return removed
}

// ActiveCount reports the number of live challenges, expired or not.
func (s *ChallengeService) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
