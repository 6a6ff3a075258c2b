package geom

import (
	"strconv"

	"github.com/geosql-kit/pkg/unit"
)

// Classify inspects an arbitrary value and returns its tagged shape, or nil
// when the value is not a shape. It accepts already-typed geom values as
// well as loose decoded-JSON data: maps with lat/lon or x/y (plus optional
// radius and srid) keys, and nested slices of them.
//
// Classification is structural and deterministic: a defined radius makes a
// circle; a point slice of length two is always a line; a point slice of
// length three or more whose first and last coordinates match is a polygon,
// otherwise a line; slices of slices become multi-lines or multi-polygons
// when every member classifies consistently. Anything else, including a
// shape mixing lat/lon and x/y points, yields nil so that callers skip the
// clause instead of emitting malformed SQL.
func Classify(v any) Shape {
	switch val := v.(type) {
	case nil:
		return nil
	case Shape:
		return val
	case map[string]any:
		return pointOrCircle(val)
	case []Point:
		return fromPoints(val)
	case [][]Point:
		groups := make([]Shape, 0, len(val))
		for _, pts := range val {
			groups = append(groups, fromPoints(pts))
		}
		return fromGroups(groups)
	case []Line:
		if len(val) == 0 {
			return nil
		}
		return MultiLine{Lines: val, SRID: val[0].SRID}
	case []Polygon:
		if len(val) == 0 {
			return nil
		}
		return MultiPolygon{Polygons: val, SRID: val[0].SRID}
	case []any:
		return fromSlice(val)
	default:
		return nil
	}
}

// fromSlice classifies a loose slice: either a point sequence or a
// collection of point sequences. Mixing the two levels is invalid.
func fromSlice(items []any) Shape {
	if len(items) == 0 {
		return nil
	}

	var pts []Point
	var groups []Shape
	for _, item := range items {
		switch member := item.(type) {
		case map[string]any:
			if groups != nil {
				return nil
			}
			// A radius makes a circle, and circles have no place in a
			// point sequence; dropping the radius would change the query.
			if _, hasRadius := member["radius"]; hasRadius {
				return nil
			}
			p, ok := pointFrom(member)
			if !ok {
				return nil
			}
			pts = append(pts, p)
		case []any:
			if pts != nil {
				return nil
			}
			groups = append(groups, fromSlice(member))
		case []Point:
			if pts != nil {
				return nil
			}
			groups = append(groups, fromPoints(member))
		case Point:
			if groups != nil {
				return nil
			}
			pts = append(pts, member)
		default:
			return nil
		}
	}

	if pts != nil {
		return fromPoints(pts)
	}
	return fromGroups(groups)
}

// fromPoints applies the line/polygon rules to an ordered point sequence.
func fromPoints(pts []Point) Shape {
	if len(pts) < 2 || !uniform(pts) {
		return nil
	}

	srid := pts[0].SRID

	// Two points never close a ring; the closure test only applies from
	// three vertices up.
	if len(pts) >= 3 && sameCoordinate(pts[0], pts[len(pts)-1]) {
		return Polygon{Points: pts, SRID: srid}
	}
	return Line{Points: pts, SRID: srid}
}

// fromGroups folds classified members into a multi shape. Every member must
// be a polygon (multi-polygon) or every member a line (multi-line).
func fromGroups(groups []Shape) Shape {
	if len(groups) == 0 {
		return nil
	}

	lines := make([]Line, 0, len(groups))
	polygons := make([]Polygon, 0, len(groups))
	for _, g := range groups {
		switch member := g.(type) {
		case Line:
			lines = append(lines, member)
		case Polygon:
			polygons = append(polygons, member)
		default:
			return nil
		}
	}

	switch {
	case len(polygons) == len(groups):
		return MultiPolygon{Polygons: polygons, SRID: polygons[0].SRID}
	case len(lines) == len(groups):
		return MultiLine{Lines: lines, SRID: lines[0].SRID}
	default:
		return nil
	}
}

// pointOrCircle classifies a loose map as a circle when it carries a
// defined radius, and as a point otherwise. A radius key holding nil or
// garbage invalidates the whole value.
func pointOrCircle(m map[string]any) Shape {
	p, ok := pointFrom(m)
	if !ok {
		return nil
	}

	raw, present := m["radius"]
	if !present {
		return p
	}

	meters, ok := radiusMeters(raw)
	if !ok {
		return nil
	}
	return Circle{Center: p, RadiusMeters: meters}
}

// pointFrom extracts a point from a loose map. The map must carry a
// complete lat/lon or x/y pair; a key that is present but nil counts as an
// absent coordinate and invalidates the point.
func pointFrom(m map[string]any) (Point, bool) {
	lat, latBad := coordinate(m, "lat")
	lon, lonBad := coordinate(m, "lon")
	x, xBad := coordinate(m, "x")
	y, yBad := coordinate(m, "y")
	if latBad || lonBad || xBad || yBad {
		return Point{}, false
	}

	p := Point{Lat: lat, Lon: lon, X: x, Y: y}
	if srid, present := m["srid"]; present {
		n, ok := asNumber(srid)
		if !ok {
			return Point{}, false
		}
		v := int(n)
		p.SRID = &v
	}

	if geographyPoint(p) || geometryPoint(p) {
		return p, true
	}
	return Point{}, false
}

// coordinate reads one coordinate key. The second result flags a key that
// is present but not a number.
func coordinate(m map[string]any, key string) (*float64, bool) {
	raw, present := m[key]
	if !present {
		return nil, false
	}
	n, ok := asNumber(raw)
	if !ok {
		return nil, true
	}
	return &n, false
}

// radiusMeters normalizes a radius given as a number (already meters) or a
// numeric string with an optional unit suffix ("10mi", "250").
func radiusMeters(raw any) (float64, bool) {
	if n, ok := asNumber(raw); ok {
		return n, true
	}

	s, ok := raw.(string)
	if !ok {
		return 0, false
	}

	if unit.HasUnitSuffix(s) {
		m, ok := unit.TryParseMeasurement(s)
		if !ok {
			return 0, false
		}
		meters, err := unit.ToMeters(m.Value, m.Unit)
		if err != nil {
			return 0, false
		}
		return meters, true
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// uniform reports whether all points share one complete coordinate system.
func uniform(pts []Point) bool {
	geography := 0
	geometry := 0
	for _, p := range pts {
		switch {
		case geographyPoint(p):
			geography++
		case geometryPoint(p):
			geometry++
		default:
			return false
		}
	}
	return geography == len(pts) || geometry == len(pts)
}

// sameCoordinate reports whether two points name the same position in the
// same coordinate system.
func sameCoordinate(a, b Point) bool {
	if geographyPoint(a) && geographyPoint(b) {
		return *a.Lat == *b.Lat && *a.Lon == *b.Lon
	}
	if geometryPoint(a) && geometryPoint(b) {
		return *a.X == *b.X && *a.Y == *b.Y
	}
	return false
}
