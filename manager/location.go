package manager

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLocation parses a "latitude,longitude" argument. Both parts must be
// numbers within their geographic range; any other input wraps ErrInvalidLocation.
func ParseLocation(raw string) (Location, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("%w: expected \"latitude,longitude\", got %q", ErrInvalidLocation, raw)
	}

	latitude, err := parseCoordinate("latitude", parts[0], 90)
	if err != nil {
		return Location{}, err
	}

	longitude, err := parseCoordinate("longitude", parts[1], 180)
	if err != nil {
		return Location{}, err
	}

	return Location{
		Raw:       raw,
		Latitude:  latitude,
		Longitude: longitude,
	}, nil
}

func parseCoordinate(name, value string, limit float64) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: %s is empty", ErrInvalidLocation, name)
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidLocation, name, value)
	}

	// negated so that NaN is rejected too
	if !(v >= -limit && v <= limit) {
		return 0, fmt.Errorf("%w: %s must be between %v and %v, got %s", ErrInvalidLocation, name, -limit, limit, value)
	}

	return v, nil
}

// FormatCoordinate renders a coordinate for use in a query string.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
