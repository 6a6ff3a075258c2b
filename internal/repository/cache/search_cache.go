package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geosql-kit/internal/domain"
	"github.com/geosql-kit/internal/domain/repository"
)

const searchKeyPrefix = "geosql:search:"

type searchCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewSearchCache stores spatial search results under the fragment-derived
// key that produced them.
func NewSearchCache(r *Redis, ttl time.Duration) repository.CacheRepository {
	return &searchCache{
		client: r.client,
		logger: r.logger,
		ttl:    ttl,
	}
}

func (c *searchCache) GetSearch(ctx context.Context, key string) ([]*domain.Place, bool) {
	raw, err := c.client.Get(ctx, searchKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Search cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var places []*domain.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		c.logger.Warn("Search cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return places, true
}

func (c *searchCache) SetSearch(ctx context.Context, key string, places []*domain.Place) error {
	raw, err := json.Marshal(places)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, searchKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Search cache write failed", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}
