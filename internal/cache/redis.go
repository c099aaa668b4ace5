// Package cache provides the Redis-backed caches used by the rental service.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/application"
	"github.com/peershare/service-rental/internal/config"
)

const (
	searchKeyPrefix     = "items:search"
	searchGenerationKey = "items:search:gen"
	searchTTL           = 5 * time.Minute
)

// ItemSearchCache caches item search pages in Redis. Invalidation bumps a
// generation counter instead of scanning keys; stale entries expire by TTL.
// Backend failures are logged and treated as cache misses.
type ItemSearchCache struct {
	client *redis.Client
	logger *zap.Logger
}

var _ application.ItemSearchCache = (*ItemSearchCache)(nil)

// NewItemSearchCache creates an ItemSearchCache and verifies the connection.
func NewItemSearchCache(cfg config.RedisConfig, logger *zap.Logger) (*ItemSearchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &ItemSearchCache{
		client: client,
		logger: logger,
	}, nil
}

// Get returns the cached page for the query, if present.
func (c *ItemSearchCache) Get(ctx context.Context, text string, from, size int) ([]application.ItemDTO, bool) {
	key, err := c.key(ctx, text, from, size)
	if err != nil {
		c.logger.Warn("item search cache unavailable", zap.Error(err))
		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("failed to read item search cache", zap.Error(err))
		}
		return nil, false
	}

	var items []application.ItemDTO
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("failed to decode cached item search page", zap.Error(err))
		return nil, false
	}
	return items, true
}

// Set stores the page for the query under the current generation.
func (c *ItemSearchCache) Set(ctx context.Context, text string, from, size int, items []application.ItemDTO) {
	key, err := c.key(ctx, text, from, size)
	if err != nil {
		c.logger.Warn("item search cache unavailable", zap.Error(err))
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("failed to encode item search page", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, searchTTL).Err(); err != nil {
		c.logger.Warn("failed to write item search cache", zap.Error(err))
	}
}

// Invalidate drops all cached search pages by advancing the generation.
func (c *ItemSearchCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, searchGenerationKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate item search cache", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *ItemSearchCache) Close() error {
	return c.client.Close()
}

func (c *ItemSearchCache) key(ctx context.Context, text string, from, size int) (string, error) {
	gen, err := c.client.Get(ctx, searchGenerationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d:%s:%d:%d", searchKeyPrefix, gen, text, from, size), nil
}
