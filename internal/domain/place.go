package domain

import "github.com/google/uuid"

// Place is a named point of interest with a geography location column in
// PostGIS and denormalized lat/lon for API responses.
type Place struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Category string    `json:"category" db:"category"`
	Lat      float64   `json:"lat" db:"lat"`
	Lon      float64   `json:"lon" db:"lon"`

	// DistanceMeters is filled by proximity queries, nil otherwise.
	DistanceMeters *float64 `json:"distance_meters,omitempty" db:"distance_meters"`
}
