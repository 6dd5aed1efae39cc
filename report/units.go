package report

import (
	"fmt"
	"strings"
)

// Units selects how daily temperatures are shown.
type Units string

const (
	// Fahrenheit converts every value to degrees Fahrenheit.
	Fahrenheit Units = "fahrenheit"
	// Celsius converts every value to degrees Celsius.
	Celsius Units = "celsius"
	// Source prints values and labels exactly as the forecast API sent them.
	Source Units = "source"
)

func ParseUnits(s string) (Units, error) {
	switch u := Units(strings.ToLower(strings.TrimSpace(s))); u {
	case Fahrenheit, Celsius, Source:
		return u, nil
	default:
		return "", fmt.Errorf("unsupported units %q (available: %s, %s, %s)", s, Fahrenheit, Celsius, Source)
	}
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// Convert returns value, reported by the API with sourceLabel, in the unit
// system u together with the label to print next to it.
func (u Units) Convert(value float64, sourceLabel string) (float64, string) {
	switch u {
	case Fahrenheit:
		if isFahrenheit(sourceLabel) {
			return value, "F"
		}
		return CelsiusToFahrenheit(value), "F"
	case Celsius:
		if isFahrenheit(sourceLabel) {
			return FahrenheitToCelsius(value), "C"
		}
		return value, "C"
	default:
		return value, sourceLabel
	}
}

// isFahrenheit reports whether an API unit label such as "°F" denotes
// Fahrenheit. Anything else, including an empty label, is taken as Celsius.
func isFahrenheit(label string) bool {
	return strings.HasSuffix(strings.TrimSpace(label), "F")
}
