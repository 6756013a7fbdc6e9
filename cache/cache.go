// Package cache implements the response cache: a best-effort gateway over a
// Redis backend, deterministic key construction, and read-through HTTP
// middleware. The cache is never authoritative; every entry is
// reconstructible from the document store, so all backend failures degrade
// to misses or no-ops instead of failing the request.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/user/product-catalog-go/config"
	"github.com/user/product-catalog-go/logging"
)

// Store is the cache gateway contract. Implementations are best-effort:
// Get reports a miss on any failure, and the mutating operations are no-ops
// on failure. Callers never receive an error.
type Store interface {
	// Get retrieves the cached value for key. The second return value is
	// false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete removes a single key.
	Delete(ctx context.Context, key string)

	// Clear removes all keys matching pattern. A trailing "*" matches any
	// key-space with that prefix.
	Clear(ctx context.Context, pattern string)
}

// Service is the Redis-backed Store implementation.
type Service struct {
	rdb *redis.Client
	log zerolog.Logger
}

var _ Store = (*Service)(nil)

// NewClient creates a Redis client from configuration. REDIS_URL takes
// precedence over host/port when set. The connection is verified with a ping
// so a dead cache backend is visible at startup, but callers may choose to
// continue without it.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.Addr()}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return client, err
	}
	return client, nil
}

// NewService creates a cache service over the given Redis client.
func NewService(rdb *redis.Client) *Service {
	return &Service{
		rdb: rdb,
		log: logging.NewLogger("cache"),
	}
}

// Get retrieves the cached value for key. Backend failures are logged and
// reported as misses.
func (s *Service) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return data, true
}

// Set stores value under key with the given TTL. Failures are logged and
// swallowed.
func (s *Service) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Delete removes a single key. Failures are logged and swallowed.
func (s *Service) Delete(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

// Clear removes all keys matching pattern using SCAN iteration, so a large
// key-space does not block the backend the way KEYS would.
func (s *Service) Clear(ctx context.Context, pattern string) {
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warn().Err(err).Str("pattern", pattern).Msg("cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Str("pattern", pattern).Msg("cache clear failed")
		return
	}
	s.log.Debug().Str("pattern", pattern).Int("keys", len(keys)).Msg("cache cleared")
}
