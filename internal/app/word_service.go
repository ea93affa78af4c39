package app

import (
	"context"
	"fmt"
	"strings"

	"struggle-quiz-service/internal/domain"
	"struggle-quiz-service/internal/fingerprint"
)

// WordStore abstracts how struggle words and their fingerprint blobs are
// persisted (in-memory, Postgres, wrapped in a cache). A word and its
// fingerprint travel together: Add stores both or neither, Remove deletes
// both, so readers never observe a word without a fingerprint.
type WordStore interface {
	Add(ctx context.Context, scope domain.Scope, term, definition string, fpBlob []byte) (int64, error)
	Remove(ctx context.Context, scope domain.Scope, term string) (int64, bool, error)
	List(ctx context.Context, scope domain.Scope) ([]domain.StruggleWord, error)
	GetFingerprint(ctx context.Context, wordID int64) ([]byte, error)
}

// PointsLedger is the external balance collaborator. Award upserts and
// increments, returning the new balance.
type PointsLedger interface {
	Award(ctx context.Context, scope domain.Scope, amount int64) (int64, error)
	Balance(ctx context.Context, scope domain.Scope) (int64, error)
}

// WordService contains the struggle-word CRUD use cases.
type WordService struct {
	store WordStore
	codec *fingerprint.Codec
}

func NewWordService(store WordStore, codec *fingerprint.Codec) *WordService {
	return &WordService{store: store, codec: codec}
}

// AddWord normalizes the term, computes the definition's fingerprint, and
// stores both in one step. An embedding failure aborts before anything is
// written, so there is no partial state to roll back.
func (s *WordService) AddWord(ctx context.Context, scope domain.Scope, term, definition string) (domain.StruggleWord, error) {
	term = normalizeTerm(term)
	definition = strings.TrimSpace(definition)
	if term == "" || definition == "" {
		return domain.StruggleWord{}, fmt.Errorf("term and definition must be non-empty")
	}

	fp, err := s.codec.Encode(ctx, definition)
	if err != nil {
		return domain.StruggleWord{}, err
	}

	id, err := s.store.Add(ctx, scope, term, definition, fingerprint.Serialize(fp))
	if err != nil {
		return domain.StruggleWord{}, err
	}
	return domain.StruggleWord{ID: id, Scope: scope, Term: term, Definition: definition}, nil
}

// RemoveWord deletes the word and its fingerprint. It reports false for a
// term that was never stored and leaves the store unchanged.
func (s *WordService) RemoveWord(ctx context.Context, scope domain.Scope, term string) (bool, error) {
	_, removed, err := s.store.Remove(ctx, scope, normalizeTerm(term))
	return removed, err
}

// ListWords returns the scope's words; enumeration is stable within a call.
func (s *WordService) ListWords(ctx context.Context, scope domain.Scope) ([]domain.StruggleWord, error) {
	return s.store.List(ctx, scope)
}

// normalizeTerm is the identity key transform: trim then casefold, matching
// what the store's uniqueness constraint sees.
func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
