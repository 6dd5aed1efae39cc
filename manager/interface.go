package manager

import (
	"context"
	"fmt"
)

type Weather interface {
	Get(ctx context.Context, location Location) (Forecast, error)
}

// TimezoneResolver maps a coordinate to an IANA timezone name.
type TimezoneResolver interface {
	Timezone(ctx context.Context, location Location) (string, error)
}

// ForecastFetcher returns the daily forecast for a located coordinate.
// location.Timezone is already resolved when Forecast is called.
type ForecastFetcher interface {
	Forecast(ctx context.Context, location Location) (Forecast, error)
}

type Location struct {
	Raw       string
	Latitude  float64
	Longitude float64
	Timezone  string
}

type Forecast struct {
	Elevation            float64     `json:"elevation"`
	GenerationTimeMs     float64     `json:"generationtime_ms"`
	Latitude             float64     `json:"latitude"`
	Longitude            float64     `json:"longitude"`
	Timezone             string      `json:"timezone"`
	TimezoneAbbreviation string      `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int         `json:"utc_offset_seconds"`
	Daily                DailySeries `json:"daily"`
	DailyUnits           DailyUnits  `json:"daily_units"`
}

// DailySeries holds index-aligned per-day values: Time[i] is the date of
// TemperatureMax[i] and TemperatureMin[i].
type DailySeries struct {
	Time           []string  `json:"time"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
}

type DailyUnits struct {
	Time           string `json:"time"`
	TemperatureMax string `json:"temperature_2m_max"`
	TemperatureMin string `json:"temperature_2m_min"`
}

func (d DailySeries) Len() int {
	return len(d.Time)
}

func (d DailySeries) Validate() error {
	if len(d.TemperatureMax) != len(d.Time) || len(d.TemperatureMin) != len(d.Time) {
		return fmt.Errorf("%w: %d dates, %d max, %d min",
			ErrMisalignedSeries, len(d.Time), len(d.TemperatureMax), len(d.TemperatureMin))
	}

	return nil
}
