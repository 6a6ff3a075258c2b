// Package unit converts between physical distance/area units and meters,
// both numerically and as SQL arithmetic suffixes for PostGIS expressions.
package unit

import (
	"fmt"
	"strconv"
)

// Unit is a physical unit understood by the conversion helpers.
type Unit string

const (
	Meters     Unit = "meters"
	Miles      Unit = "miles"
	Kilometers Unit = "kilometers"
	Hectares   Unit = "hectares"
	Acres      Unit = "acres"
	Feet       Unit = "feet"
	Yards      Unit = "yards"
	Inches     Unit = "inches"
)

// metersPer holds the meters-per-unit constant for every supported unit.
var metersPer = map[Unit]float64{
	Meters:     1,
	Miles:      1609.344,
	Kilometers: 1000,
	Hectares:   10000,
	Acres:      4046.8564224,
	Feet:       0.3048,
	Yards:      0.9144,
	Inches:     0.0254,
}

// Factor returns the meters-per-unit constant for u.
func Factor(u Unit) (float64, error) {
	k, ok := metersPer[u]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", u)
	}
	return k, nil
}

// ToMeters converts a value expressed in u into meters.
func ToMeters(v float64, u Unit) (float64, error) {
	k, err := Factor(u)
	if err != nil {
		return 0, err
	}
	return v * k, nil
}

// FromMeters converts a value expressed in meters into u.
func FromMeters(v float64, u Unit) (float64, error) {
	k, err := Factor(u)
	if err != nil {
		return 0, err
	}
	return v / k, nil
}

// ToMetersSQL returns the SQL arithmetic suffix that converts a value
// expressed in u into meters, e.g. " * 1609.344" for miles. Meters is the
// identity and yields an empty suffix.
func ToMetersSQL(u Unit) (string, error) {
	k, err := Factor(u)
	if err != nil {
		return "", err
	}
	if k == 1 {
		return "", nil
	}
	return " * " + formatFactor(k), nil
}

// FromMetersSQL returns the SQL arithmetic suffix that converts a value
// expressed in meters into u, e.g. " / 1609.344" for miles.
func FromMetersSQL(u Unit) (string, error) {
	k, err := Factor(u)
	if err != nil {
		return "", err
	}
	if k == 1 {
		return "", nil
	}
	return " / " + formatFactor(k), nil
}

func formatFactor(k float64) string {
	return strconv.FormatFloat(k, 'f', -1, 64)
}
