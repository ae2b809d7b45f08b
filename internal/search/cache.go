package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/redis/go-redis/v9"
)

const generationKey = "search:generation"

// DefaultCacheTTL bounds how long a ranked result stays cached.
const DefaultCacheTTL = 10 * time.Minute

// Cache stores ranked results in Redis. Keys embed an index generation that
// Invalidate bumps, so a reindex makes every older entry unreachable. A nil
// *Cache is valid and never hits. Redis errors are logged and treated as a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns a cache over client, or nil when client is nil.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(ctx context.Context, lexemes []string, excludeID *int64, limit int) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	exclude := "-"
	if excludeID != nil {
		exclude = fmt.Sprint(*excludeID)
	}
	return fmt.Sprintf("search:%d:%s:%s:%d", gen, strings.Join(lexemes, "+"), exclude, limit), nil
}

// Get returns the cached hits for a query, if any.
func (c *Cache) Get(ctx context.Context, lexemes []string, excludeID *int64, limit int) ([]Hit, bool) {
	if c == nil {
		return nil, false
	}
	key, err := c.key(ctx, lexemes, excludeID, limit)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("search cache unavailable")
		return nil, false
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Ctx(ctx).Warn().Err(err).Msg("search cache read failed")
		}
		return nil, false
	}
	var hits []Hit
	if err := json.Unmarshal(b, &hits); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("discarding corrupt search cache entry")
		return nil, false
	}
	return hits, true
}

// Set stores hits for a query.
func (c *Cache) Set(ctx context.Context, lexemes []string, excludeID *int64, limit int, hits []Hit) {
	if c == nil {
		return
	}
	key, err := c.key(ctx, lexemes, excludeID, limit)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("search cache unavailable")
		return
	}
	if hits == nil {
		hits = []Hit{}
	}
	b, err := json.Marshal(hits)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("search cache write failed")
	}
}

// Invalidate makes every cached result stale.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to bump search index generation")
	}
}
