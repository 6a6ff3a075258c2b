package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSQL_Point(t *testing.T) {
	t.Run("geography emits lon before lat", func(t *testing.T) {
		sql, ok := ToSQL(LatLon(1, -1))
		require.True(t, ok)
		assert.Equal(t, "'POINT(-1 1)'::geography", sql)
	})

	t.Run("geometry emits x before y", func(t *testing.T) {
		sql, ok := ToSQL(XY(3, 4))
		require.True(t, ok)
		assert.Equal(t, "'POINT(3 4)'::geometry", sql)
	})

	t.Run("srid prefix inside the quoted literal", func(t *testing.T) {
		sql, ok := ToSQL(LatLon(1, -1).WithSRID(4326))
		require.True(t, ok)
		assert.Equal(t, "'SRID=4326;POINT(-1 1)'::geography", sql)
	})
}

func TestToSQL_Circle(t *testing.T) {
	sql, ok := ToSQL(Circle{Center: LatLon(1, -1), RadiusMeters: 100})
	require.True(t, ok)
	assert.Equal(t, "ST_Buffer('POINT(-1 1)'::geography, 100)", sql)
}

func TestToSQL_LineAndPolygon(t *testing.T) {
	t.Run("linestring", func(t *testing.T) {
		sql, ok := ToSQL(Line{Points: []Point{LatLon(1, -1), LatLon(2, -2)}})
		require.True(t, ok)
		assert.Equal(t, "'LINESTRING(-1 1, -2 2)'::geography", sql)
	})

	t.Run("polygon keeps input ring order", func(t *testing.T) {
		sql, ok := ToSQL(Polygon{Points: []Point{LatLon(1, -1), LatLon(2, -2), LatLon(3, -3), LatLon(1, -1)}})
		require.True(t, ok)
		assert.Equal(t, "'POLYGON(-1 1, -2 2, -3 3, -1 1)'::geography", sql)
	})

	t.Run("geometry line with srid", func(t *testing.T) {
		srid := 3857
		sql, ok := ToSQL(Line{Points: []Point{XY(0, 0), XY(10, 10)}, SRID: &srid})
		require.True(t, ok)
		assert.Equal(t, "'SRID=3857;LINESTRING(0 0, 10 10)'::geometry", sql)
	})
}

func TestToSQL_MultiShapes(t *testing.T) {
	triangle := []Point{LatLon(1, -1), LatLon(2, -2), LatLon(3, -3), LatLon(1, -1)}
	other := []Point{LatLon(4, -4), LatLon(5, -5), LatLon(6, -6), LatLon(4, -4)}

	t.Run("multipolygon", func(t *testing.T) {
		sql, ok := ToSQL(MultiPolygon{Polygons: []Polygon{{Points: triangle}, {Points: other}}})
		require.True(t, ok)
		assert.Equal(t,
			"'MULTIPOLYGON((-1 1, -2 2, -3 3, -1 1), (-4 4, -5 5, -6 6, -4 4))'::geography",
			sql)
	})

	t.Run("multilinestring", func(t *testing.T) {
		sql, ok := ToSQL(MultiLine{Lines: []Line{
			{Points: []Point{LatLon(1, -1), LatLon(2, -2)}},
			{Points: []Point{LatLon(3, -3), LatLon(4, -4)}},
		}})
		require.True(t, ok)
		assert.Equal(t, "'MULTILINESTRING((-1 1, -2 2), (-3 3, -4 4))'::geography", sql)
	})
}

func TestToSQL_UndefinedPropagation(t *testing.T) {
	lat := 1.0

	t.Run("point with half a pair", func(t *testing.T) {
		_, ok := ToSQL(Point{Lat: &lat})
		assert.False(t, ok)
	})

	t.Run("line containing an absent coordinate", func(t *testing.T) {
		_, ok := ToSQL(Line{Points: []Point{LatLon(1, 2), {Lat: &lat}}})
		assert.False(t, ok)
	})

	t.Run("structural minimums", func(t *testing.T) {
		_, ok := ToSQL(Line{Points: []Point{LatLon(1, 2)}})
		assert.False(t, ok)

		_, ok = ToSQL(Polygon{Points: []Point{LatLon(1, 2), LatLon(1, 2)}})
		assert.False(t, ok)

		_, ok = ToSQL(MultiPolygon{})
		assert.False(t, ok)
	})
}

func TestConvertToSQL(t *testing.T) {
	t.Run("loose circle input", func(t *testing.T) {
		sql, ok := ConvertToSQL(map[string]any{"lat": 1.0, "lon": -1.0, "radius": 100.0})
		require.True(t, ok)
		assert.Equal(t, "ST_Buffer('POINT(-1 1)'::geography, 100)", sql)
	})

	t.Run("srid propagation from loose input", func(t *testing.T) {
		sql, ok := ConvertToSQL(map[string]any{"lat": 1.0, "lon": -1.0, "srid": 4326.0})
		require.True(t, ok)
		assert.Equal(t, "'SRID=4326;POINT(-1 1)'::geography", sql)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, ok := ConvertToSQL(map[string]any{"lat": nil, "lon": 1.0})
		assert.False(t, ok)
	})
}
