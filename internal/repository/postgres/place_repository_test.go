package postgres

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosql-kit/pkg/geom"
	"github.com/geosql-kit/pkg/geosql"
)

func TestNearbyQuery(t *testing.T) {
	f := geosql.NewFactory(nil)
	point := geom.LatLon(41.4, 2.17)

	t.Run("composes predicate and distance column", func(t *testing.T) {
		query, err := nearbyQuery(f, point, 500, false)
		require.NoError(t, err)
		assert.Contains(t, query, `ST_DWithin("location", 'POINT(2.17 41.4)'::geography, 500)`)
		assert.Contains(t, query, `ST_Distance("location", 'POINT(2.17 41.4)'::geography) AS "distance_meters"`)
		assert.Contains(t, query, `ORDER BY "distance_meters" LIMIT $1`)
		assert.NotContains(t, query, "ANY")
	})

	t.Run("category filter shifts the limit parameter", func(t *testing.T) {
		query, err := nearbyQuery(f, point, 500, true)
		require.NoError(t, err)
		assert.Contains(t, query, "AND category = ANY($1)")
		assert.Contains(t, query, "LIMIT $2")
	})

	t.Run("loose shape input", func(t *testing.T) {
		query, err := nearbyQuery(f, map[string]any{"lat": 41.4, "lon": 2.17}, 500, false)
		require.NoError(t, err)
		assert.Contains(t, query, "'POINT(2.17 41.4)'::geography")
	})

	t.Run("unresolvable shape skips the query", func(t *testing.T) {
		query, err := nearbyQuery(f, map[string]any{"lat": nil, "lon": 2.17}, 500, false)
		require.NoError(t, err)
		assert.Equal(t, "", query)
	})

	t.Run("non-finite radius is an error", func(t *testing.T) {
		_, err := nearbyQuery(f, point, math.NaN(), false)
		assert.Error(t, err)
	})
}

func TestWithinQuery(t *testing.T) {
	f := geosql.NewFactory(nil)
	ring := []geom.Point{
		geom.LatLon(1, -1), geom.LatLon(2, -2), geom.LatLon(3, -3), geom.LatLon(1, -1),
	}

	t.Run("polygon containment", func(t *testing.T) {
		query := withinQuery(f, ring, false)
		assert.Contains(t, query,
			`ST_Covers('POLYGON(-1 1, -2 2, -3 3, -1 1)'::geography, "location")`)
		assert.Contains(t, query, "LIMIT $1")
	})

	t.Run("invalid shape yields no query", func(t *testing.T) {
		query := withinQuery(f, []geom.Point{geom.LatLon(1, -1)}, false)
		assert.Equal(t, "", query)
	})
}
