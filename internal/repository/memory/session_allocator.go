package memory

import (
	"context"
	"fmt"
	"time"

	"livelabs-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SessionAllocator is the in-process counterpart of the Redis allocator,
// used by tests and single-node deployments.
type SessionAllocator struct {
	cache *cache.Cache
}

func NewSessionAllocator() contract.SessionAllocator {
	return &SessionAllocator{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (a *SessionAllocator) NextSid(ctx context.Context, siteId string) (string, error) {
	key := "sid:" + siteId
	n, err := a.cache.IncrementInt64(key, 1)
	if err != nil {
		a.cache.Set(key, int64(1), cache.NoExpiration)
		n = 1
	}
	return fmt.Sprintf("%s-s%d", siteId, n), nil
}
