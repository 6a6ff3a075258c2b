package geom

// leafPoints collects every point of a shape, recursing through multi-part
// variants.
func leafPoints(s Shape) []Point {
	switch v := s.(type) {
	case Point:
		return []Point{v}
	case Circle:
		return []Point{v.Center}
	case Line:
		return v.Points
	case Polygon:
		return v.Points
	case MultiLine:
		var pts []Point
		for _, l := range v.Lines {
			pts = append(pts, l.Points...)
		}
		return pts
	case MultiPolygon:
		var pts []Point
		for _, p := range v.Polygons {
			pts = append(pts, p.Points...)
		}
		return pts
	default:
		return nil
	}
}

func geographyPoint(p Point) bool {
	return p.Lat != nil && p.Lon != nil
}

func geometryPoint(p Point) bool {
	return p.X != nil && p.Y != nil
}

// IsValidGeography reports whether every leaf point of the shape carries a
// complete lat/lon pair.
func IsValidGeography(s Shape) bool {
	pts := leafPoints(s)
	if len(pts) == 0 {
		return false
	}
	for _, p := range pts {
		if !geographyPoint(p) {
			return false
		}
	}
	return true
}

// IsValidGeometry reports whether every leaf point of the shape carries a
// complete x/y pair.
func IsValidGeometry(s Shape) bool {
	pts := leafPoints(s)
	if len(pts) == 0 {
		return false
	}
	for _, p := range pts {
		if !geometryPoint(p) {
			return false
		}
	}
	return true
}

// IsValidShape reports whether the shape uses one coordinate system,
// geography or geometry, consistently across all of its leaf points. A
// shape mixing the two systems, or containing a point with half of a
// coordinate pair missing, is not valid and must not modify a query.
func IsValidShape(s Shape) bool {
	if s == nil {
		return false
	}
	return IsValidGeography(s) || IsValidGeometry(s)
}
