package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geosql-kit/internal/domain"
	"github.com/geosql-kit/internal/domain/repository"
	"github.com/geosql-kit/internal/pkg/errors"
	"github.com/geosql-kit/internal/usecase/dto"
	"github.com/geosql-kit/pkg/geom"
	"github.com/geosql-kit/pkg/unit"
)

const defaultLimit = 50

// SearchUseCase orchestrates spatial place searches: shape classification
// at the boundary, cache lookups, repository queries and unit conversion
// for responses.
type SearchUseCase struct {
	placeRepo repository.PlaceRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

func NewSearchUseCase(
	placeRepo repository.PlaceRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		placeRepo: placeRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// GetPlace fetches a single place by identifier.
func (uc *SearchUseCase) GetPlace(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	return uc.placeRepo.GetByID(ctx, id)
}

// SearchNearby finds places around the request shape. A request whose
// shape does not classify returns an empty result rather than an error;
// absent coordinates mean the caller intentionally omitted the input.
func (uc *SearchUseCase) SearchNearby(ctx context.Context, req dto.NearbySearchRequest) (*dto.SearchResponse, error) {
	if req.Limit == 0 {
		req.Limit = defaultLimit
	}

	resultUnit, err := resolveUnit(req.Unit)
	if err != nil {
		return nil, errors.ErrInvalidUnit
	}

	radiusMeters, err := resolveRadius(req.Radius)
	if err != nil {
		return nil, errors.ErrInvalidRadius
	}

	shapeSQL, ok := geom.ConvertToSQL(req.Shape)
	if !ok {
		return &dto.SearchResponse{Results: []dto.PlaceResult{}}, nil
	}

	key := searchKey("nearby", shapeSQL, fmt.Sprintf("%g", radiusMeters), req.Categories, req.Limit)
	if places, hit := uc.cacheRepo.GetSearch(ctx, key); hit {
		return uc.toResponse(places, resultUnit)
	}

	places, err := uc.placeRepo.SearchNearby(ctx, req.Shape, radiusMeters, req.Categories, req.Limit)
	if err != nil {
		uc.logger.Error("Nearby search failed", zap.Error(err))
		return nil, err
	}

	if err := uc.cacheRepo.SetSearch(ctx, key, places); err != nil {
		uc.logger.Warn("Failed to cache nearby search", zap.Error(err))
	}

	return uc.toResponse(places, resultUnit)
}

// SearchWithin finds places contained in the request shape.
func (uc *SearchUseCase) SearchWithin(ctx context.Context, req dto.WithinSearchRequest) (*dto.SearchResponse, error) {
	if req.Limit == 0 {
		req.Limit = defaultLimit
	}

	shapeSQL, ok := geom.ConvertToSQL(req.Shape)
	if !ok {
		return &dto.SearchResponse{Results: []dto.PlaceResult{}}, nil
	}

	key := searchKey("within", shapeSQL, "", req.Categories, req.Limit)
	if places, hit := uc.cacheRepo.GetSearch(ctx, key); hit {
		return uc.toResponse(places, unit.Meters)
	}

	places, err := uc.placeRepo.SearchWithin(ctx, req.Shape, req.Categories, req.Limit)
	if err != nil {
		uc.logger.Error("Within search failed", zap.Error(err))
		return nil, err
	}

	if err := uc.cacheRepo.SetSearch(ctx, key, places); err != nil {
		uc.logger.Warn("Failed to cache within search", zap.Error(err))
	}

	return uc.toResponse(places, unit.Meters)
}

func (uc *SearchUseCase) toResponse(places []*domain.Place, resultUnit unit.Unit) (*dto.SearchResponse, error) {
	results := make([]dto.PlaceResult, 0, len(places))
	for _, p := range places {
		var distance *float64
		if p.DistanceMeters != nil {
			converted, err := unit.FromMeters(*p.DistanceMeters, resultUnit)
			if err != nil {
				return nil, errors.ErrInvalidUnit
			}
			distance = &converted
		}
		results = append(results, dto.ConvertPlace(p, distance, string(resultUnit)))
	}

	return &dto.SearchResponse{
		Results: results,
		Total:   len(results),
	}, nil
}

// resolveUnit validates the requested response unit, defaulting to meters.
func resolveUnit(name string) (unit.Unit, error) {
	if name == "" {
		return unit.Meters, nil
	}
	u := unit.Unit(name)
	if _, err := unit.Factor(u); err != nil {
		return "", err
	}
	return u, nil
}

// resolveRadius normalizes a radius given as a number of meters or a
// unit-suffixed string.
func resolveRadius(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		if unit.HasUnitSuffix(v) {
			m, err := unit.ParseMeasurement(v)
			if err != nil {
				return 0, err
			}
			return unit.ToMeters(m.Value, m.Unit)
		}
		return 0, fmt.Errorf("radius %q has no recognizable unit", v)
	default:
		return 0, fmt.Errorf("radius must be a number or a measurement string")
	}
}

// searchKey derives a deterministic cache key from the fragment that will
// drive the query.
func searchKey(kind, shapeSQL, radius string, categories []string, limit int) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d", kind, shapeSQL, radius, strings.Join(categories, ","), limit)
}
