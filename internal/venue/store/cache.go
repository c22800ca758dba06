package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"boxoffice/internal/venue/models"
)

const cacheKey = "boxoffice:venue"

// CachedStore caches the venue payload in Redis with a fixed TTL. Cache
// failures fall through to the inner store so Redis never takes the venue
// endpoint down with it.
type CachedStore struct {
	inner  Store
	client goredis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps a venue store with a Redis cache.
func NewCached(inner Store, client goredis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (s *CachedStore) Get(ctx context.Context) (*models.Venue, error) {
	raw, err := s.client.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var venue models.Venue
		if err := json.Unmarshal(raw, &venue); err == nil {
			return &venue, nil
		}
		// Corrupt payloads are dropped, not served.
		s.client.Del(ctx, cacheKey)
	} else if !errors.Is(err, goredis.Nil) {
		s.logger.Warn("venue cache read failed", "error", err)
	}

	venue, err := s.inner.Get(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(venue); err == nil {
		if err := s.client.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
			s.logger.Warn("venue cache write failed", "error", err)
		}
	} else {
		return nil, fmt.Errorf("marshal venue for cache: %w", err)
	}
	return venue, nil
}

// Invalidate drops the cached payload.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, cacheKey).Err()
}
