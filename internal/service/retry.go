package service

import (
	"context"
	"time"
)

const (
	readRetryAttempts = 3
	readRetryBackoff  = 50 * time.Millisecond
)

// retryRead reruns an idempotent store read a bounded number of times with
// doubling backoff. Repository reads report not-found as a nil result, so an
// error here is always a store-call failure. Writes never go through this.
func retryRead[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var out T
	var err error
	for attempt := 0; attempt < readRetryAttempts; attempt++ {
		out, err = fn()
		if err == nil {
			return out, nil
		}
		if attempt == readRetryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return out, err
		case <-time.After(readRetryBackoff << attempt):
		}
	}
	return out, err
}
