package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geosql-kit/internal/domain"
	"github.com/geosql-kit/internal/pkg/errors"
	"github.com/geosql-kit/internal/usecase/dto"
)

type fakePlaceRepo struct {
	nearbyCalls int
	withinCalls int
	places      []*domain.Place
}

func (f *fakePlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	return nil, errors.ErrPlaceNotFound
}

func (f *fakePlaceRepo) SearchNearby(ctx context.Context, shape any, radiusMeters float64, categories []string, limit int) ([]*domain.Place, error) {
	f.nearbyCalls++
	return f.places, nil
}

func (f *fakePlaceRepo) SearchWithin(ctx context.Context, shape any, categories []string, limit int) ([]*domain.Place, error) {
	f.withinCalls++
	return f.places, nil
}

type fakeCache struct {
	entries map[string][]*domain.Place
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]*domain.Place{}}
}

func (f *fakeCache) GetSearch(ctx context.Context, key string) ([]*domain.Place, bool) {
	places, ok := f.entries[key]
	return places, ok
}

func (f *fakeCache) SetSearch(ctx context.Context, key string, places []*domain.Place) error {
	f.entries[key] = places
	return nil
}

func testPlaces() []*domain.Place {
	meters := 1500.0
	return []*domain.Place{
		{
			ID:             uuid.New(),
			Name:           "Sagrada Família",
			Category:       "landmark",
			Lat:            41.4036,
			Lon:            2.1744,
			DistanceMeters: &meters,
		},
	}
}

func TestSearchNearby(t *testing.T) {
	shape := map[string]any{"lat": 41.4, "lon": 2.17}

	t.Run("converts distances into the requested unit", func(t *testing.T) {
		repo := &fakePlaceRepo{places: testPlaces()}
		uc := NewSearchUseCase(repo, newFakeCache(), zap.NewNop())

		resp, err := uc.SearchNearby(context.Background(), dto.NearbySearchRequest{
			Shape:  shape,
			Radius: 2000.0,
			Unit:   "kilometers",
		})
		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		require.NotNil(t, resp.Results[0].Distance)
		assert.InDelta(t, 1.5, *resp.Results[0].Distance, 1e-9)
		assert.Equal(t, "kilometers", resp.Results[0].Unit)
	})

	t.Run("measurement string radius", func(t *testing.T) {
		repo := &fakePlaceRepo{places: testPlaces()}
		uc := NewSearchUseCase(repo, newFakeCache(), zap.NewNop())

		resp, err := uc.SearchNearby(context.Background(), dto.NearbySearchRequest{
			Shape:  shape,
			Radius: "2km",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, 1, repo.nearbyCalls)
	})

	t.Run("second identical search hits the cache", func(t *testing.T) {
		repo := &fakePlaceRepo{places: testPlaces()}
		uc := NewSearchUseCase(repo, newFakeCache(), zap.NewNop())

		req := dto.NearbySearchRequest{Shape: shape, Radius: 500.0}
		_, err := uc.SearchNearby(context.Background(), req)
		require.NoError(t, err)
		_, err = uc.SearchNearby(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 1, repo.nearbyCalls)
	})

	t.Run("absent shape returns an empty result, not an error", func(t *testing.T) {
		repo := &fakePlaceRepo{places: testPlaces()}
		uc := NewSearchUseCase(repo, newFakeCache(), zap.NewNop())

		resp, err := uc.SearchNearby(context.Background(), dto.NearbySearchRequest{
			Shape:  map[string]any{"lat": nil, "lon": 2.17},
			Radius: 500.0,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
		assert.Equal(t, 0, repo.nearbyCalls)
	})

	t.Run("unknown unit is rejected", func(t *testing.T) {
		uc := NewSearchUseCase(&fakePlaceRepo{}, newFakeCache(), zap.NewNop())

		_, err := uc.SearchNearby(context.Background(), dto.NearbySearchRequest{
			Shape:  shape,
			Radius: 500.0,
			Unit:   "parsecs",
		})
		assert.Equal(t, errors.ErrInvalidUnit, err)
	})

	t.Run("unparseable radius is rejected", func(t *testing.T) {
		uc := NewSearchUseCase(&fakePlaceRepo{}, newFakeCache(), zap.NewNop())

		_, err := uc.SearchNearby(context.Background(), dto.NearbySearchRequest{
			Shape:  shape,
			Radius: "five minutes",
		})
		assert.Equal(t, errors.ErrInvalidRadius, err)
	})
}

func TestSearchWithin(t *testing.T) {
	ring := []any{
		map[string]any{"lat": 1.0, "lon": -1.0},
		map[string]any{"lat": 2.0, "lon": -2.0},
		map[string]any{"lat": 3.0, "lon": -3.0},
		map[string]any{"lat": 1.0, "lon": -1.0},
	}

	t.Run("polygon search", func(t *testing.T) {
		repo := &fakePlaceRepo{places: testPlaces()}
		uc := NewSearchUseCase(repo, newFakeCache(), zap.NewNop())

		resp, err := uc.SearchWithin(context.Background(), dto.WithinSearchRequest{Shape: ring})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, 1, repo.withinCalls)
	})

	t.Run("open path is still a searchable shape", func(t *testing.T) {
		repo := &fakePlaceRepo{places: testPlaces()}
		uc := NewSearchUseCase(repo, newFakeCache(), zap.NewNop())

		resp, err := uc.SearchWithin(context.Background(), dto.WithinSearchRequest{
			Shape: ring[:2],
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("invalid shape skips the repository", func(t *testing.T) {
		repo := &fakePlaceRepo{places: testPlaces()}
		uc := NewSearchUseCase(repo, newFakeCache(), zap.NewNop())

		resp, err := uc.SearchWithin(context.Background(), dto.WithinSearchRequest{
			Shape: []any{},
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
		assert.Equal(t, 0, repo.withinCalls)
	})
}
