package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes tokens before they expire. Single tokens are
// revoked by jti on logout and refresh rotation; all of a user's sessions
// are revoked by timestamp when the password, status, role or branch changes.
type TokenBlacklist interface {
	// AddToBlacklist revokes one token. ttl should cover the token's remaining lifetime.
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// AddUserTokensToBlacklist revokes every token of userID issued up to now.
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

const blacklistPrefix = "jewelry:token:blacklist:"

func jtiKey(jti string) string { return blacklistPrefix + "jti:" + jti }
func userKey(userID string) string { return blacklistPrefix + "user:" + userID }
func issuedBefore(iat, cut time.Time) bool { return iat.Unix() <= cut.Unix() }

// RedisTokenBlacklist shares revocations between server instances.
type RedisTokenBlacklist struct {
	client redis.UniversalClient
}

func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, jtiKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	if err := b.client.Set(ctx, userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	cut, err := b.client.Get(ctx, userKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked user sessions: %w", err)
	}
	return issuedBefore(tokenIssuedAt, time.Unix(cut, 0)), nil
}

// InMemoryTokenBlacklist serves single-instance deployments and tests.
// Revocations are lost on restart.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	entries map[string]revocation
}

// revocation with a zero expires never lapses, matching a Redis key without TTL.
type revocation struct {
	at      time.Time
	expires time.Time
}

func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{entries: make(map[string]revocation)}
}

func (b *InMemoryTokenBlacklist) put(key string, ttl time.Duration) {
	r := revocation{at: time.Now()}
	if ttl > 0 {
		r.expires = r.at.Add(ttl)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = r
}

// lookup drops the entry once it has expired.
func (b *InMemoryTokenBlacklist) lookup(key string) (revocation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.entries[key]
	if ok && !r.expires.IsZero() && !time.Now().Before(r.expires) {
		delete(b.entries, key)
		return revocation{}, false
	}
	return r, ok
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.put(jtiKey(jti), ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := b.lookup(jtiKey(jti))
	return ok, nil
}

func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, ttl time.Duration) error {
	b.put(userKey(userID), ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	r, ok := b.lookup(userKey(userID))
	return ok && issuedBefore(tokenIssuedAt, r.at), nil
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
