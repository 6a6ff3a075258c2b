// Package geom models the geometric shapes understood by the SQL fragment
// builders: points, circles, lines, polygons and their multi-part variants,
// in either geography (lat/lon) or geometry (x/y) coordinates.
//
// Shapes arrive at the system boundary as loose data (decoded JSON, plain
// maps and slices) and are classified once, by Classify, into one of the
// tagged variants below. Downstream code switches on the concrete type and
// never re-inspects raw structure.
package geom

// Kind identifies the variant of a classified shape.
type Kind int

const (
	KindInvalid Kind = iota
	KindPoint
	KindCircle
	KindLine
	KindPolygon
	KindMultiLine
	KindMultiPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	case KindMultiLine:
		return "multiline"
	case KindMultiPolygon:
		return "multipolygon"
	default:
		return "invalid"
	}
}

// Shape is the closed set of geometric variants. It is implemented only by
// the types in this package.
type Shape interface {
	Kind() Kind
	shape()
}

// Point is a 2-D coordinate expressed either as a geography lat/lon pair or
// a geometry x/y pair. Exactly one pair should be fully set; a point with
// one coordinate of a pair missing is never valid and signals intentionally
// absent input rather than an error.
type Point struct {
	Lat, Lon *float64
	X, Y     *float64
	SRID     *int
}

// Circle is a point buffered by a radius. The radius is always held in
// meters; unit-suffixed inputs are normalized during classification.
type Circle struct {
	Center       Point
	RadiusMeters float64
}

// Line is an open path of two or more points (first and last differ).
type Line struct {
	Points []Point
	SRID   *int
}

// Polygon is a closed ring of points: first and last coordinates are equal
// and the ring has at least three vertices. Coordinates are emitted in input
// order; rings are never re-closed or re-wound.
type Polygon struct {
	Points []Point
	SRID   *int
}

// MultiLine is a collection of lines.
type MultiLine struct {
	Lines []Line
	SRID  *int
}

// MultiPolygon is a collection of polygons.
type MultiPolygon struct {
	Polygons []Polygon
	SRID     *int
}

func (Point) Kind() Kind        { return KindPoint }
func (Circle) Kind() Kind       { return KindCircle }
func (Line) Kind() Kind         { return KindLine }
func (Polygon) Kind() Kind      { return KindPolygon }
func (MultiLine) Kind() Kind    { return KindMultiLine }
func (MultiPolygon) Kind() Kind { return KindMultiPolygon }

func (Point) shape()        {}
func (Circle) shape()       {}
func (Line) shape()         {}
func (Polygon) shape()      {}
func (MultiLine) shape()    {}
func (MultiPolygon) shape() {}

// LatLon builds a geography point.
func LatLon(lat, lon float64) Point {
	return Point{Lat: &lat, Lon: &lon}
}

// XY builds a geometry point.
func XY(x, y float64) Point {
	return Point{X: &x, Y: &y}
}

// WithSRID returns a copy of the point carrying the given spatial reference
// identifier.
func (p Point) WithSRID(srid int) Point {
	p.SRID = &srid
	return p
}
