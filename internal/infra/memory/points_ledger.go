package memory

import (
	"context"
	"sync"

	"struggle-quiz-service/internal/domain"
)

// PointsLedger is an in-memory implementation of app.PointsLedger.
type PointsLedger struct {
	mu       sync.Mutex
	balances map[domain.Scope]int64
}

func NewPointsLedger() *PointsLedger {
	return &PointsLedger{balances: make(map[domain.Scope]int64)}
}

func (l *PointsLedger) Award(_ context.Context, scope domain.Scope, amount int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[scope] += amount
	return l.balances[scope], nil
}

func (l *PointsLedger) Balance(_ context.Context, scope domain.Scope) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[scope], nil
}
