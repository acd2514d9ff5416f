package contract

import "context"

// SessionAllocator hands out feedback session ids, monotonic and unique per
// site.
type SessionAllocator interface {
	NextSid(ctx context.Context, siteId string) (string, error)
}
