package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/geosql-kit/internal/domain"
)

// PlaceRepository queries places by spatial predicates. Shape arguments
// are loose values (decoded JSON, typed geom shapes, or column names); an
// argument that does not describe a valid shape leaves the result empty
// rather than failing the query.
type PlaceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)

	// SearchNearby returns places within radiusMeters of the shape, ordered
	// by distance. Distances come back in meters; unit conversion for the
	// response is the caller's concern.
	SearchNearby(ctx context.Context, shape any, radiusMeters float64, categories []string, limit int) ([]*domain.Place, error)

	// SearchWithin returns places whose location falls inside the shape.
	SearchWithin(ctx context.Context, shape any, categories []string, limit int) ([]*domain.Place, error)
}
