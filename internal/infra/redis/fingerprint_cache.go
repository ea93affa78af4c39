package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"struggle-quiz-service/internal/app"
	"struggle-quiz-service/internal/domain"
)

// FingerprintCache decorates a WordStore with a Redis byte cache keyed by
// word id, so hot fingerprints skip the backing store. Entries are written
// on Add, dropped on Remove, and filled on first GetFingerprint miss;
// concurrent misses for one id collapse through singleflight. The cache is
// an optimization only: every answer is correct with Redis empty or gone.
type FingerprintCache struct {
	client *redis.Client
	next   app.WordStore
	ttl    time.Duration
	sf     singleflight.Group
}

func NewFingerprintCache(client *redis.Client, next app.WordStore, ttl time.Duration) *FingerprintCache {
	return &FingerprintCache{client: client, next: next, ttl: ttl}
}

func (c *FingerprintCache) Add(ctx context.Context, scope domain.Scope, term, definition string, fpBlob []byte) (int64, error) {
	id, err := c.next.Add(ctx, scope, term, definition, fpBlob)
	if err != nil {
		return 0, err
	}
	// best-effort populate
	_ = c.client.Set(ctx, c.key(id), fpBlob, c.ttl).Err()
	return id, nil
}

func (c *FingerprintCache) Remove(ctx context.Context, scope domain.Scope, term string) (int64, bool, error) {
	id, removed, err := c.next.Remove(ctx, scope, term)
	if removed {
		_ = c.client.Del(ctx, c.key(id)).Err()
	}
	return id, removed, err
}

func (c *FingerprintCache) List(ctx context.Context, scope domain.Scope) ([]domain.StruggleWord, error) {
	return c.next.List(ctx, scope)
}

func (c *FingerprintCache) GetFingerprint(ctx context.Context, wordID int64) ([]byte, error) {
	if blob, err := c.client.Get(ctx, c.key(wordID)).Bytes(); err == nil && len(blob) > 0 {
		return blob, nil
	}

	result, err, _ := c.sf.Do(c.key(wordID), func() (interface{}, error) {
		// Re-check in case another goroutine filled it.
		if blob, err := c.client.Get(ctx, c.key(wordID)).Bytes(); err == nil && len(blob) > 0 {
			return blob, nil
		}
		blob, err := c.next.GetFingerprint(ctx, wordID)
		if err != nil {
			return nil, err
		}
		_ = c.client.Set(ctx, c.key(wordID), blob, c.ttl).Err()
		return blob, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *FingerprintCache) key(wordID int64) string {
	return "struggle:fp:" + strconv.FormatInt(wordID, 10)
}
