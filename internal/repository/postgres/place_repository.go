package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/geosql-kit/internal/domain"
	"github.com/geosql-kit/internal/domain/repository"
	"github.com/geosql-kit/internal/pkg/errors"
	"github.com/geosql-kit/pkg/geosql"
)

type placeRepository struct {
	db        *sqlx.DB
	logger    *zap.Logger
	fragments *geosql.Factory
}

func NewPlaceRepository(db *DB) repository.PlaceRepository {
	return &placeRepository{
		db:        db.DB,
		logger:    db.logger,
		fragments: geosql.NewFactory(nil),
	}
}

func (r *placeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	query := `
		SELECT id, name, category, lat, lon
		FROM places
		WHERE id = $1
	`

	var place domain.Place
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&place.ID, &place.Name, &place.Category, &place.Lat, &place.Lon,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrPlaceNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get place by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &place, nil
}

func (r *placeRepository) SearchNearby(
	ctx context.Context,
	shape any,
	radiusMeters float64,
	categories []string,
	limit int,
) ([]*domain.Place, error) {
	query, err := nearbyQuery(r.fragments, shape, radiusMeters, len(categories) > 0)
	if err != nil {
		return nil, errors.ErrInvalidRadius
	}
	if query == "" {
		// The shape did not resolve; skip the search entirely.
		return []*domain.Place{}, nil
	}

	args := []interface{}{}
	if len(categories) > 0 {
		args = append(args, pq.Array(categories))
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to search nearby places", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return scanPlaces(rows, true)
}

func (r *placeRepository) SearchWithin(
	ctx context.Context,
	shape any,
	categories []string,
	limit int,
) ([]*domain.Place, error) {
	query := withinQuery(r.fragments, shape, len(categories) > 0)
	if query == "" {
		return []*domain.Place{}, nil
	}

	args := []interface{}{}
	if len(categories) > 0 {
		args = append(args, pq.Array(categories))
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to search places within shape", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return scanPlaces(rows, false)
}

// nearbyQuery composes a proximity search around any shape. The spatial
// predicate and the computed distance column are literal fragments; the
// category filter and limit stay bind parameters. An unresolvable shape
// yields an empty query, a non-finite radius an error.
func nearbyQuery(f *geosql.Factory, shape any, radiusMeters float64, withCategories bool) (string, error) {
	within, err := f.DWithin("location", shape, radiusMeters)
	if err != nil {
		return "", err
	}
	if within == "" {
		return "", nil
	}

	distance, err := f.Func("ST_Distance").Arg("location").Arg(shape).Alias("distance_meters").Build()
	if err != nil || distance == "" {
		return "", err
	}

	query := fmt.Sprintf(`
		SELECT id, name, category, lat, lon, %s
		FROM places
		WHERE %s
	`, distance, within)

	argIdx := 1
	if withCategories {
		query += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		argIdx++
	}
	query += fmt.Sprintf(` ORDER BY "distance_meters" LIMIT $%d`, argIdx)

	return query, nil
}

// withinQuery composes a containment search; an unresolvable shape yields
// an empty query.
func withinQuery(f *geosql.Factory, shape any, withCategories bool) string {
	// ST_Covers works on geography directly, unlike ST_Contains.
	contains, err := f.Func("ST_Covers").Arg(shape).Arg("location").Build()
	if err != nil || contains == "" {
		return ""
	}

	query := fmt.Sprintf(`
		SELECT id, name, category, lat, lon
		FROM places
		WHERE %s
	`, contains)

	argIdx := 1
	if withCategories {
		query += fmt.Sprintf(" AND category = ANY($%d)", argIdx)
		argIdx++
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)

	return query
}

func scanPlaces(rows *sql.Rows, withDistance bool) ([]*domain.Place, error) {
	var places []*domain.Place
	for rows.Next() {
		var p domain.Place
		var err error
		if withDistance {
			err = rows.Scan(&p.ID, &p.Name, &p.Category, &p.Lat, &p.Lon, &p.DistanceMeters)
		} else {
			err = rows.Scan(&p.ID, &p.Name, &p.Category, &p.Lat, &p.Lon)
		}
		if err != nil {
			continue
		}
		places = append(places, &p)
	}
	return places, nil
}
