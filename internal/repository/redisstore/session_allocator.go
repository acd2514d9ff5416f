package redisstore

import (
	"context"
	"fmt"

	"livelabs-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// SessionAllocator allocates feedback session ids with a per-site Redis
// counter. INCR is atomic, so ids are monotonic and unique per site across
// all serving workers.
type SessionAllocator struct {
	rdb *redis.Client
}

func NewSessionAllocator(rdb *redis.Client) contract.SessionAllocator {
	return &SessionAllocator{rdb: rdb}
}

func (a *SessionAllocator) NextSid(ctx context.Context, siteId string) (string, error) {
	n, err := a.rdb.Incr(ctx, "sid:"+siteId).Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate session id for site %s: %w", siteId, err)
	}
	return fmt.Sprintf("%s-s%d", siteId, n), nil
}
