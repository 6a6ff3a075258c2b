package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geosql-kit/internal/domain"
	"github.com/geosql-kit/internal/domain/repository"
)

func newTestCache(t *testing.T, ttl time.Duration) (repository.CacheRepository, *Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	r := &Redis{
		client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		logger: zap.NewNop(),
	}

	return NewSearchCache(r, ttl), r, mr
}

func TestSearchCache_RoundTrip(t *testing.T) {
	c, r, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	places := []*domain.Place{
		{ID: uuid.New(), Name: "Sagrada Família", Category: "landmark", Lat: 41.4036, Lon: 2.1744},
		{ID: uuid.New(), Name: "Park Güell", Category: "park", Lat: 41.4145, Lon: 2.1527},
	}

	require.NoError(t, c.SetSearch(ctx, "nearby:test", places))

	exists, err := r.Client().Exists(ctx, searchKeyPrefix+"nearby:test").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	got, ok := c.GetSearch(ctx, "nearby:test")
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, places[0].Name, got[0].Name)
	assert.Equal(t, places[1].Lat, got[1].Lat)
}

func TestSearchCache_Miss(t *testing.T) {
	c, _, _ := newTestCache(t, time.Minute)

	_, ok := c.GetSearch(context.Background(), "never-set")
	assert.False(t, ok)
}

func TestSearchCache_Expiry(t *testing.T) {
	c, _, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, c.SetSearch(ctx, "short-lived", []*domain.Place{{Name: "x"}}))

	mr.FastForward(2 * time.Second)

	_, ok := c.GetSearch(ctx, "short-lived")
	assert.False(t, ok)
}

func TestSearchCache_CorruptEntry(t *testing.T) {
	c, _, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set(searchKeyPrefix+"bad", "not json"))

	_, ok := c.GetSearch(context.Background(), "bad")
	assert.False(t, ok)
}
