// Package report renders a fetched forecast as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"dailytemp/manager"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (available: %s, %s, %s)", s, Text, JSON, YAML)
	}
}

type Printer struct {
	w      io.Writer
	units  Units
	format Format
}

func New(w io.Writer, units Units, format Format) *Printer {
	return &Printer{
		w:      w,
		units:  units,
		format: format,
	}
}

// Print writes the report for forecast, headed by location exactly as the
// user typed it.
func (p *Printer) Print(location string, forecast manager.Forecast) error {
	if err := forecast.Daily.Validate(); err != nil {
		return err
	}

	doc := p.document(location, forecast)

	switch p.format {
	case JSON:
		encoder := json.NewEncoder(p.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	case YAML:
		encoder := yaml.NewEncoder(p.w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return err
		}
		return encoder.Close()
	default:
		_, err := io.WriteString(p.w, text(doc))
		return err
	}
}

type document struct {
	Location             string  `json:"location"              yaml:"location"`
	Timezone             string  `json:"timezone"              yaml:"timezone"`
	Elevation            float64 `json:"elevation"             yaml:"elevation"`
	GenerationTimeMs     float64 `json:"generation_time_ms"    yaml:"generation_time_ms"`
	Latitude             float64 `json:"latitude"              yaml:"latitude"`
	Longitude            float64 `json:"longitude"             yaml:"longitude"`
	TimezoneAbbreviation string  `json:"timezone_abbreviation" yaml:"timezone_abbreviation"`
	UTCOffsetSeconds     int     `json:"utc_offset_seconds"    yaml:"utc_offset_seconds"`
	Days                 []day   `json:"days"                  yaml:"days"`
}

type day struct {
	Date    string  `json:"date"     yaml:"date"`
	Max     float64 `json:"max"      yaml:"max"`
	MaxUnit string  `json:"max_unit" yaml:"max_unit"`
	Min     float64 `json:"min"      yaml:"min"`
	MinUnit string  `json:"min_unit" yaml:"min_unit"`
}

func (p *Printer) document(location string, forecast manager.Forecast) document {
	doc := document{
		Location:             location,
		Timezone:             forecast.Timezone,
		Elevation:            forecast.Elevation,
		GenerationTimeMs:     forecast.GenerationTimeMs,
		Latitude:             forecast.Latitude,
		Longitude:            forecast.Longitude,
		TimezoneAbbreviation: forecast.TimezoneAbbreviation,
		UTCOffsetSeconds:     forecast.UTCOffsetSeconds,
		Days:                 make([]day, 0, forecast.Daily.Len()),
	}

	for i, date := range forecast.Daily.Time {
		maxValue, maxUnit := p.units.Convert(forecast.Daily.TemperatureMax[i], forecast.DailyUnits.TemperatureMax)
		minValue, minUnit := p.units.Convert(forecast.Daily.TemperatureMin[i], forecast.DailyUnits.TemperatureMin)

		doc.Days = append(doc.Days, day{
			Date:    date,
			Max:     maxValue,
			MaxUnit: maxUnit,
			Min:     minValue,
			MinUnit: minUnit,
		})
	}

	return doc
}

func text(doc document) string {
	b := &strings.Builder{}

	fmt.Fprintf(b, "Weather data for %s:\n", doc.Location)
	fmt.Fprintf(b, "Timezone: %s\n", doc.Timezone)
	fmt.Fprintf(b, "Elevation: %v meters\n", doc.Elevation)
	fmt.Fprintf(b, "Generation Time (ms): %v\n", doc.GenerationTimeMs)
	fmt.Fprintf(b, "Latitude: %v\n", doc.Latitude)
	fmt.Fprintf(b, "Longitude: %v\n", doc.Longitude)
	fmt.Fprintf(b, "Timezone Abbreviation: %s\n", doc.TimezoneAbbreviation)
	fmt.Fprintf(b, "UTC Offset (seconds): %d\n", doc.UTCOffsetSeconds)

	for _, d := range doc.Days {
		fmt.Fprintf(b, "Date: %s\n", d.Date)
		fmt.Fprintf(b, "Max Temperature: %.1f %s\n", d.Max, d.MaxUnit)
		fmt.Fprintf(b, "Min Temperature: %.1f %s\n", d.Min, d.MinUnit)
		b.WriteString("\n")
	}

	return b.String()
}
