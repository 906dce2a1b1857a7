package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// sweepEvery is how many reservations pass between scans for expired keys.
const sweepEvery = 256

type reservation struct {
	result  string
	expires time.Time
}

// InMemoryIdempotencyStore keeps invoice request keys in process memory.
// Keys are not shared across instances. Expired keys are swept lazily
// while new keys are reserved, so no background goroutine is needed.
type InMemoryIdempotencyStore struct {
	mu       sync.Mutex
	keys     map[string]reservation
	reserved int
	now      func() time.Time
}

func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{keys: make(map[string]reservation), now: time.Now}
}

func (s *InMemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if r, ok := s.keys[key]; ok && now.Before(r.expires) {
		return r.result, false, nil
	}

	s.reserved++
	if s.reserved%sweepEvery == 0 {
		for k, r := range s.keys {
			if !now.Before(r.expires) {
				delete(s.keys, k)
			}
		}
	}
	s.keys[key] = reservation{expires: now.Add(ttl)}
	return "", true, nil
}

func (s *InMemoryIdempotencyStore) Complete(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = reservation{result: value, expires: s.now().Add(ttl)}
	return nil
}

func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func (s *InMemoryIdempotencyStore) Close() error { return nil }

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
