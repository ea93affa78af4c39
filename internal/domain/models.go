package domain

import "time"

// Scope identifies the (community, user) pair that owns words and challenges.
type Scope struct {
	GuildID string
	UserID  string
}

// Fingerprint is a fixed-length semantic vector for a piece of text.
type Fingerprint []float32

// StruggleWord is a term a user keeps getting wrong, with its definition
// and the stable id assigned by the store.
type StruggleWord struct {
	ID         int64  `json:"id"`
	Scope      Scope  `json:"-"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Challenge is the ephemeral in-flight question for one user. At most one
// exists per scope at any instant; it is removed the moment it resolves.
type Challenge struct {
	ID         string
	Scope      Scope
	WordID     int64
	Term       string
	Definition string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// OutcomeKind classifies how a challenge resolved.
type OutcomeKind string

const (
	// OutcomeCorrect means the answer scored at or above the threshold.
	OutcomeCorrect OutcomeKind = "correct"
	// OutcomeIncorrect means the answer scored below the threshold.
	OutcomeIncorrect OutcomeKind = "incorrect"
	// OutcomeFailed means the challenge resolved but could not be scored
	// (word deleted mid-challenge, embedder down). Err carries the cause.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the result of resolving a challenge. Term, Definition and Score
// are included so callers can decide how much to reveal; the core never
// re-scores a second message for the same challenge.
type Outcome struct {
	Kind        OutcomeKind
	ChallengeID string
	Term        string
	Definition  string
	Score       float64
	Err         error
}
