package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"struggle-quiz-service/internal/domain"
)

// PointsLedger keeps balances in a Redis hash per guild:
// HINCRBY struggle:points:{guildID} {userID} {amount}
type PointsLedger struct {
	client *redis.Client
}

func NewPointsLedger(client *redis.Client) *PointsLedger {
	return &PointsLedger{client: client}
}

func (l *PointsLedger) Award(ctx context.Context, scope domain.Scope, amount int64) (int64, error) {
	balance, err := l.client.HIncrBy(ctx, l.key(scope), scope.UserID, amount).Result()
	if err != nil {
		return 0, fmt.Errorf("award points: %w", err)
	}
	return balance, nil
}

func (l *PointsLedger) Balance(ctx context.Context, scope domain.Scope) (int64, error) {
	balance, err := l.client.HGet(ctx, l.key(scope), scope.UserID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read points: %w", err)
	}
	return balance, nil
}

func (l *PointsLedger) key(scope domain.Scope) string {
	return "struggle:points:" + scope.GuildID
}
