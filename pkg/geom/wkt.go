package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// castGeography and castGeometry are the PostGIS types a WKT literal is
// cast to, chosen by the coordinate system of the shape.
const (
	castGeography = "geography"
	castGeometry  = "geometry"
)

// ToSQL renders a classified shape as a quoted WKT literal cast to
// geography or geometry, or, for circles, as an ST_Buffer expression around
// the center point. It returns false for invalid shapes, the signal for
// callers to leave their query untouched.
func ToSQL(s Shape) (string, bool) {
	cast, ok := castFor(s)
	if !ok {
		return "", false
	}

	switch v := s.(type) {
	case Point:
		return literal(pointWKT(v, cast), v.SRID, cast), true
	case Circle:
		if math.IsNaN(v.RadiusMeters) {
			return "", false
		}
		center := literal(pointWKT(v.Center, cast), v.Center.SRID, cast)
		return fmt.Sprintf("ST_Buffer(%s, %s)", center, formatCoord(v.RadiusMeters)), true
	case Line:
		if len(v.Points) < 2 {
			return "", false
		}
		return literal("LINESTRING("+ring(v.Points, cast)+")", v.SRID, cast), true
	case Polygon:
		if len(v.Points) < 3 {
			return "", false
		}
		return literal("POLYGON("+ring(v.Points, cast)+")", v.SRID, cast), true
	case MultiLine:
		parts, ok := rings(linePoints(v.Lines), 2, cast)
		if !ok {
			return "", false
		}
		return literal("MULTILINESTRING("+parts+")", v.SRID, cast), true
	case MultiPolygon:
		parts, ok := rings(polygonPoints(v.Polygons), 3, cast)
		if !ok {
			return "", false
		}
		return literal("MULTIPOLYGON("+parts+")", v.SRID, cast), true
	default:
		return "", false
	}
}

// ConvertToSQL classifies an arbitrary value and serializes it in one step.
func ConvertToSQL(v any) (string, bool) {
	s := Classify(v)
	if s == nil {
		return "", false
	}
	return ToSQL(s)
}

// castFor picks the PostGIS cast from the shape's coordinate system.
// Geography wins when a shape happens to satisfy both.
func castFor(s Shape) (string, bool) {
	switch {
	case IsValidGeography(s):
		return castGeography, true
	case IsValidGeometry(s):
		return castGeometry, true
	default:
		return "", false
	}
}

// literal wraps a WKT body in single quotes with an optional SRID prefix
// and the trailing cast.
func literal(wkt string, srid *int, cast string) string {
	var b strings.Builder
	b.WriteByte('\'')
	if srid != nil {
		b.WriteString("SRID=")
		b.WriteString(strconv.Itoa(*srid))
		b.WriteByte(';')
	}
	b.WriteString(wkt)
	b.WriteString("'::")
	b.WriteString(cast)
	return b.String()
}

func pointWKT(p Point, cast string) string {
	x, y := coords(p, cast)
	return "POINT(" + formatCoord(x) + " " + formatCoord(y) + ")"
}

// ring emits a comma-separated coordinate list in input order.
func ring(pts []Point, cast string) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteString(", ")
		}
		x, y := coords(p, cast)
		b.WriteString(formatCoord(x))
		b.WriteByte(' ')
		b.WriteString(formatCoord(y))
	}
	return b.String()
}

// rings emits each member ring parenthesized, rejecting members below the
// structural minimum.
func rings(members [][]Point, minPoints int, cast string) (string, bool) {
	if len(members) == 0 {
		return "", false
	}
	var b strings.Builder
	for i, pts := range members {
		if len(pts) < minPoints {
			return "", false
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(ring(pts, cast))
		b.WriteByte(')')
	}
	return b.String(), true
}

// coords returns the WKT (X Y) pair: longitude before latitude for
// geography shapes, x before y for geometry shapes.
func coords(p Point, cast string) (float64, float64) {
	if cast == castGeography {
		return *p.Lon, *p.Lat
	}
	return *p.X, *p.Y
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func linePoints(lines []Line) [][]Point {
	out := make([][]Point, len(lines))
	for i, l := range lines {
		out[i] = l.Points
	}
	return out
}

func polygonPoints(polygons []Polygon) [][]Point {
	out := make([][]Point, len(polygons))
	for i, p := range polygons {
		out[i] = p.Points
	}
	return out
}
