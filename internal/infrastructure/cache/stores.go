package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errRedisDisabled = errors.New("redis not configured")

// Stores hands out the state that server instances share: revoked tokens
// and idempotency keys. With a Redis client both live in Redis, otherwise
// in process memory, where a retry routed to another instance is not
// recognised.
type Stores struct {
	client       redis.UniversalClient
	logger       *zap.Logger
	requireRedis bool
	pingTimeout  time.Duration
}

type StoresOption func(*Stores)

func WithLogger(logger *zap.Logger) StoresOption {
	return func(s *Stores) { s.logger = logger }
}

// WithInMemoryFallback(false) makes IdempotencyStore fail instead of
// degrading to memory when Redis does not answer.
func WithInMemoryFallback(allow bool) StoresOption {
	return func(s *Stores) { s.requireRedis = !allow }
}

// NewStores wraps client, which may be nil.
func NewStores(client redis.UniversalClient, opts ...StoresOption) *Stores {
	s := &Stores{client: client, logger: zap.NewNop(), pingTimeout: 3 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenStores connects to Redis when cfg enables it. The client is created
// lazily by go-redis, so an unreachable server surfaces on first use.
func OpenStores(cfg config.RedisConfig, opts ...StoresOption) *Stores {
	if !cfg.Enabled {
		return NewStores(nil, opts...)
	}
	return NewStores(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}), opts...)
}

func (s *Stores) Redis() bool { return s.client != nil }

// TokenBlacklist does not ping; revocation checks fail open.
func (s *Stores) TokenBlacklist() auth.TokenBlacklist {
	if s.client == nil {
		s.logger.Warn("Redis disabled, token revocation is local to this instance")
		return auth.NewInMemoryTokenBlacklist()
	}
	s.logger.Info("Using Redis token blacklist")
	return auth.NewRedisTokenBlacklist(s.client)
}

// IdempotencyStore returns the Redis store when the server answers a ping.
func (s *Stores) IdempotencyStore(ctx context.Context) (shared.IdempotencyStore, error) {
	err := errRedisDisabled
	if s.client != nil {
		if err = s.Ping(ctx); err == nil {
			s.logger.Info("Using Redis idempotency store")
			return NewRedisIdempotencyStore(s.client, ""), nil
		}
	}
	if s.requireRedis {
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}
	s.logger.Warn("Falling back to in-memory idempotency store", zap.Error(err))
	return NewInMemoryIdempotencyStore(), nil
}

// Ping is the readiness check for the shared stores.
func (s *Stores) Ping(ctx context.Context) error {
	if s.client == nil {
		return errRedisDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

func (s *Stores) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
