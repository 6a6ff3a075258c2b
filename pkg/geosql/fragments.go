package geosql

import (
	"fmt"
	"math"
	"strconv"

	"github.com/geosql-kit/pkg/unit"
)

// comparisonOps is the closed set of operators accepted by Compare. An
// operator outside this set is a programmer error, never silently skipped.
var comparisonOps = map[string]struct{}{
	"=":  {},
	"<>": {},
	"!=": {},
	"<":  {},
	"<=": {},
	">":  {},
	">=": {},
}

// Distance renders ST_Distance(a, b), optionally converted from meters into
// resultUnit. Either operand may be a column name or a shape; an absent or
// invalid operand yields an empty fragment.
func (f *Factory) Distance(a, b any, resultUnit unit.Unit) (string, error) {
	builder := f.Func("ST_Distance").Arg(a).Arg(b)
	if resultUnit != "" {
		builder.Unit(resultUnit)
	}
	return builder.Build()
}

// Area renders ST_Area(v), optionally converted into resultUnit (the square
// of distance units is the caller's concern; hectares and acres are the
// usual choices).
func (f *Factory) Area(v any, resultUnit unit.Unit) (string, error) {
	builder := f.Func("ST_Area").Arg(v)
	if resultUnit != "" {
		builder.Unit(resultUnit)
	}
	return builder.Build()
}

// Length renders ST_Length(v), optionally converted into resultUnit.
func (f *Factory) Length(v any, resultUnit unit.Unit) (string, error) {
	builder := f.Func("ST_Length").Arg(v)
	if resultUnit != "" {
		builder.Unit(resultUnit)
	}
	return builder.Build()
}

// Buffer renders ST_Buffer(v, radiusMeters). The radius is required; NaN or
// infinite values are rejected rather than skipped.
func (f *Factory) Buffer(v any, radiusMeters float64) (string, error) {
	if err := requireFinite("buffer radius", radiusMeters); err != nil {
		return "", err
	}
	return f.Func("ST_Buffer").Arg(v).Arg(radiusMeters).Build()
}

// Intersection renders ST_Intersection(a, b).
func (f *Factory) Intersection(a, b any) (string, error) {
	return f.Func("ST_Intersection").Arg(a).Arg(b).Build()
}

// Centroid renders ST_Centroid(v).
func (f *Factory) Centroid(v any) (string, error) {
	return f.Func("ST_Centroid").Arg(v).Build()
}

// Within renders ST_Within(a, b).
func (f *Factory) Within(a, b any) (string, error) {
	return f.Func("ST_Within").Arg(a).Arg(b).Build()
}

// Contains renders ST_Contains(a, b).
func (f *Factory) Contains(a, b any) (string, error) {
	return f.Func("ST_Contains").Arg(a).Arg(b).Build()
}

// Intersects renders ST_Intersects(a, b).
func (f *Factory) Intersects(a, b any) (string, error) {
	return f.Func("ST_Intersects").Arg(a).Arg(b).Build()
}

// DWithin renders ST_DWithin(a, b, distanceMeters). The distance is
// required and must be finite.
func (f *Factory) DWithin(a, b any, distanceMeters float64) (string, error) {
	if err := requireFinite("dwithin distance", distanceMeters); err != nil {
		return "", err
	}
	return f.Func("ST_DWithin").Arg(a).Arg(b).Arg(distanceMeters).Build()
}

// Compare appends a comparison against a numeric threshold to an existing
// fragment, e.g. Compare(distanceExpr, "<", 500). An empty fragment stays
// empty (the upstream clause was skipped); an unrecognized operator or a
// non-finite threshold is an error.
func (f *Factory) Compare(fragment, op string, threshold float64) (string, error) {
	if fragment == "" {
		return "", nil
	}
	if _, ok := comparisonOps[op]; !ok {
		return "", fmt.Errorf("unknown comparison operator %q", op)
	}
	if err := requireFinite("comparison threshold", threshold); err != nil {
		return "", err
	}
	return fragment + " " + op + " " + strconv.FormatFloat(threshold, 'f', -1, 64), nil
}

func requireFinite(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s is required and must be a finite number", what)
	}
	return nil
}
