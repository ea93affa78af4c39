package domain

import "errors"

var (
	// ErrDuplicateWord is returned when a scope already has the term stored.
	ErrDuplicateWord = errors.New("struggle word already exists")
	// ErrWordNotFound indicates the referenced word is not in the store.
	ErrWordNotFound = errors.New("struggle word not found")
	// ErrAlreadyActive is returned when a user opens a challenge while one is live.
	ErrAlreadyActive = errors.New("challenge already active")
	// ErrNoWords is returned when a user with zero words asks for a challenge.
	ErrNoWords = errors.New("no struggle words to quiz")
	// ErrNoActiveChallenge is returned for answers with no live (unexpired) challenge.
	ErrNoActiveChallenge = errors.New("no active challenge")
	// ErrEmbeddingUnavailable indicates the embedding model could not be invoked.
	ErrEmbeddingUnavailable = errors.New("embedding model unavailable")
	// ErrCorruptFingerprint indicates a stored fingerprint blob failed to decode.
	ErrCorruptFingerprint = errors.New("corrupt fingerprint")
)
