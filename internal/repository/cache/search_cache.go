// Package cache memoizes search results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wahinekai/memberdb-backend/internal/domain"
)

const (
	namespace     = "members:search"
	generationKey = namespace + ":gen"
)

// backend is the slice of Redis the cache needs
type backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

type redisBackend struct {
	client redis.UniversalClient
}

func (b redisBackend) Get(ctx context.Context, key string) (string, error) {
	return b.client.Get(ctx, key).Result()
}

func (b redisBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

func (b redisBackend) Incr(ctx context.Context, key string) (int64, error) {
	return b.client.Incr(ctx, key).Result()
}

// NewRedisClient connects to a single Redis node
func NewRedisClient(addr, password string, db int) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SearchCache wraps a domain.SearchRepository and caches its answers.
// Invalidate bumps a generation counter so every earlier entry is ignored.
// Redis failures fall through to the wrapped repository.
type SearchCache struct {
	inner   domain.SearchRepository
	backend backend
	ttl     time.Duration
}

var _ domain.SearchRepository = (*SearchCache)(nil)

// NewSearchCache creates a new SearchCache
func NewSearchCache(inner domain.SearchRepository, client redis.UniversalClient, ttl time.Duration) *SearchCache {
	return &SearchCache{inner: inner, backend: redisBackend{client: client}, ttl: ttl}
}

func (c *SearchCache) Search(ctx context.Context, query string) ([]uuid.UUID, error) {
	return c.cachedIDs(ctx, "search", query, c.inner.Search)
}

func (c *SearchCache) Suggest(ctx context.Context, partial string) ([]uuid.UUID, error) {
	return c.cachedIDs(ctx, "suggest", partial, c.inner.Suggest)
}

func (c *SearchCache) AutoComplete(ctx context.Context, partial string) (string, error) {
	key := c.key(ctx, "autocomplete", partial)
	if key != "" {
		if hit, err := c.backend.Get(ctx, key); err == nil {
			return hit, nil
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("Search cache read failed")
		}
	}

	text, err := c.inner.AutoComplete(ctx, partial)
	if err != nil {
		return "", err
	}
	c.store(ctx, key, text)
	return text, nil
}

// Invalidate drops every cached answer. Call it after any member write.
func (c *SearchCache) Invalidate(ctx context.Context) {
	if _, err := c.backend.Incr(ctx, generationKey); err != nil {
		log.Warn().Err(err).Msg("Search cache invalidation failed")
	}
}

func (c *SearchCache) cachedIDs(ctx context.Context, kind, query string, load func(context.Context, string) ([]uuid.UUID, error)) ([]uuid.UUID, error) {
	key := c.key(ctx, kind, query)
	if key != "" {
		hit, err := c.backend.Get(ctx, key)
		switch {
		case err == nil:
			var ids []uuid.UUID
			if jsonErr := json.Unmarshal([]byte(hit), &ids); jsonErr == nil {
				return ids, nil
			}
		case !errors.Is(err, redis.Nil):
			log.Warn().Err(err).Msg("Search cache read failed")
		}
	}

	ids, err := load(ctx, query)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(ids); err == nil {
		c.store(ctx, key, string(raw))
	}
	return ids, nil
}

// key returns "" when the generation cannot be read, which disables caching for the call
func (c *SearchCache) key(ctx context.Context, kind, query string) string {
	gen, err := c.backend.Get(ctx, generationKey)
	switch {
	case errors.Is(err, redis.Nil):
		gen = "0"
	case err != nil:
		log.Warn().Err(err).Msg("Search cache generation read failed")
		return ""
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return namespace + ":" + gen + ":" + kind + ":" + strconv.Quote(normalized)
}

func (c *SearchCache) store(ctx context.Context, key, value string) {
	if key == "" {
		return
	}
	if err := c.backend.Set(ctx, key, value, c.ttl); err != nil {
		log.Warn().Err(err).Msg("Search cache write failed")
	}
}
