package dto

import "github.com/geosql-kit/internal/domain"

// NearbySearchRequest asks for places around a shape. Shape is loose data
// classified at the boundary; Radius is a number of meters or a
// unit-suffixed string such as "2km".
type NearbySearchRequest struct {
	Shape      any      `json:"shape" validate:"required"`
	Radius     any      `json:"radius" validate:"required"`
	Categories []string `json:"categories"`
	Limit      int      `json:"limit" validate:"omitempty,min=1,max=1000"`
	Unit       string   `json:"unit"`
}

// WithinSearchRequest asks for places contained in a shape.
type WithinSearchRequest struct {
	Shape      any      `json:"shape" validate:"required"`
	Categories []string `json:"categories"`
	Limit      int      `json:"limit" validate:"omitempty,min=1,max=1000"`
}

type PlaceResult struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Distance *float64 `json:"distance,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

type SearchResponse struct {
	Results []PlaceResult `json:"results"`
	Total   int           `json:"total"`
}

// ConvertPlace maps a domain place onto the API result, converting the
// stored meter distance into the response unit when one was computed.
func ConvertPlace(p *domain.Place, distance *float64, unitName string) PlaceResult {
	result := PlaceResult{
		ID:       p.ID.String(),
		Name:     p.Name,
		Category: p.Category,
		Lat:      p.Lat,
		Lon:      p.Lon,
	}
	if distance != nil {
		result.Distance = distance
		result.Unit = unitName
	}
	return result
}
