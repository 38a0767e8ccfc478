package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore remembers which job an Idempotency-Key produced.
// Key format: idem:<owner_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the job id recorded for the owner's key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, ownerID int64, key string) (int64, bool, error) {
	v, err := s.client.Get(ctx, idempotencyKey(ownerID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: %w", err)
	}
	jobID, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: corrupt value %q: %w", v, err)
	}
	return jobID, true, nil
}

// Remember records jobID for the owner's key (expires after ttl).
func (s *IdempotencyStore) Remember(ctx context.Context, ownerID int64, key string, jobID int64, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyKey(ownerID, key), strconv.FormatInt(jobID, 10), ttl).Err()
}

func idempotencyKey(ownerID int64, key string) string {
	return fmt.Sprintf("idem:%d:%s", ownerID, key)
}
