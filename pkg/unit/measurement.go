package unit

import (
	"fmt"
	"strconv"
	"strings"
)

// Measurement is a parsed human-readable quantity such as "5 miles" or "10km".
type Measurement struct {
	Value float64
	Unit  Unit
}

// shortCodes maps exact unit abbreviations to their unit.
var shortCodes = map[string]Unit{
	"m":  Meters,
	"mi": Miles,
	"km": Kilometers,
	"ha": Hectares,
	"ac": Acres,
	"ft": Feet,
	"yd": Yards,
	"in": Inches,
}

// longForms maps word prefixes to their unit, so that singular and plural
// spellings both match ("mile", "miles", "kilometer", "kilometers", ...).
var longForms = []struct {
	prefix string
	unit   Unit
}{
	{"mile", Miles},
	{"meter", Meters},
	{"kilometer", Kilometers},
	{"hectare", Hectares},
	{"acre", Acres},
	{"feet", Feet},
	{"yard", Yards},
	{"inch", Inches},
}

// ParseMeasurement parses strings like "5 miles", "10km" or "1in" into a
// value and unit. The numeric part is standard float syntax; the remainder
// is matched against short codes and long-form unit names. An unrecognized
// unit is a programmer error and is reported, not swallowed.
func ParseMeasurement(s string) (Measurement, error) {
	num, suffix := splitMeasurement(s)
	if num == "" {
		return Measurement{}, fmt.Errorf("measurement %q has no numeric value", s)
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Measurement{}, fmt.Errorf("measurement %q has invalid numeric value %q", s, num)
	}

	u, ok := matchUnit(strings.ToLower(suffix))
	if !ok {
		return Measurement{}, fmt.Errorf("unrecognized unit %q in measurement %q", suffix, s)
	}

	return Measurement{Value: value, Unit: u}, nil
}

// TryParseMeasurement is the non-erroring variant of ParseMeasurement.
func TryParseMeasurement(s string) (Measurement, bool) {
	m, err := ParseMeasurement(s)
	if err != nil {
		return Measurement{}, false
	}
	return m, true
}

// HasUnitSuffix reports whether s looks like a measurement: a leading
// number followed by a recognizable unit suffix. The match is
// case-insensitive so that callers can use it as a cheap pre-check before
// parsing, without mistaking plain numbers or column names for measurements.
func HasUnitSuffix(s string) bool {
	num, suffix := splitMeasurement(s)
	if num == "" || suffix == "" {
		return false
	}
	if _, err := strconv.ParseFloat(num, 64); err != nil {
		return false
	}
	_, ok := matchUnit(strings.ToLower(suffix))
	return ok
}

// splitMeasurement separates the leading float portion from the trailing
// unit text, tolerating whitespace between the two.
func splitMeasurement(s string) (num, suffix string) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || ((c == '+' || c == '-') && i == 0) {
			i++
			continue
		}
		break
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func matchUnit(suffix string) (Unit, bool) {
	if u, ok := shortCodes[suffix]; ok {
		return u, true
	}
	for _, lf := range longForms {
		if strings.HasPrefix(suffix, lf.prefix) {
			return lf.unit, true
		}
	}
	return "", false
}
