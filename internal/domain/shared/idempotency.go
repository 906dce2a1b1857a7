package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so a retried
// request returns the original result instead of repeating the mutation.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns claimed=true when the key was free.
	// Otherwise it returns the value recorded by Complete, which is empty while
	// the first request is still in flight.
	Reserve(ctx context.Context, key string, ttl time.Duration) (value string, claimed bool, err error)

	// Complete replaces the claim with the created resource's ID.
	Complete(ctx context.Context, key, value string, ttl time.Duration) error

	// Release drops a claim after a failed request so the client may retry
	Release(ctx context.Context, key string) error

	Close() error
}
