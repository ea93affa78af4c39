package memory

import (
	"context"
	"sort"
	"sync"

	"struggle-quiz-service/internal/domain"
)

type wordRecord struct {
	word   domain.StruggleWord
	fpBlob []byte
}

// WordStore is an in-memory implementation of app.WordStore, used in tests
// and model-less demo runs. Word and fingerprint live in one record, so the
// add/remove atomicity the port demands is structural.
type WordStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*wordRecord
	terms  map[domain.Scope]map[string]int64
}

func NewWordStore() *WordStore {
	return &WordStore{
		byID:  make(map[int64]*wordRecord),
		terms: make(map[domain.Scope]map[string]int64),
	}
}

func (s *WordStore) Add(_ context.Context, scope domain.Scope, term, definition string, fpBlob []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	terms, ok := s.terms[scope]
	if !ok {
		terms = make(map[string]int64)
		s.terms[scope] = terms
	}
	if _, exists := terms[term]; exists {
		return 0, domain.ErrDuplicateWord
	}

	s.nextID++
	id := s.nextID
	blob := make([]byte, len(fpBlob))
	copy(blob, fpBlob)
	s.byID[id] = &wordRecord{
		word:   domain.StruggleWord{ID: id, Scope: scope, Term: term, Definition: definition},
		fpBlob: blob,
	}
	terms[term] = id
	return id, nil
}

func (s *WordStore) Remove(_ context.Context, scope domain.Scope, term string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.terms[scope][term]
	if !ok {
		return 0, false, nil
	}
	delete(s.terms[scope], term)
	delete(s.byID, id)
	return id, true, nil
}

func (s *WordStore) List(_ context.Context, scope domain.Scope) ([]domain.StruggleWord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words := make([]domain.StruggleWord, 0, len(s.terms[scope]))
	for _, id := range s.terms[scope] {
		words = append(words, s.byID[id].word)
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Term < words[j].Term })
	return words, nil
}

func (s *WordStore) GetFingerprint(_ context.Context, wordID int64) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[wordID]
	if !ok {
		return nil, domain.ErrWordNotFound
	}
	blob := make([]byte, len(rec.fpBlob))
	copy(blob, rec.fpBlob)
	return blob, nil
}
