package repository

import (
	"context"

	"github.com/geosql-kit/internal/domain"
)

// CacheRepository stores search results keyed by the query that produced
// them. A miss is not an error.
type CacheRepository interface {
	GetSearch(ctx context.Context, key string) ([]*domain.Place, bool)
	SetSearch(ctx context.Context, key string, places []*domain.Place) error
}
