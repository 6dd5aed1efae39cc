package openmeteo_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailytemp/apis/openmeteo"
	"dailytemp/apis/rest"
	"dailytemp/manager"
)

const berlinResponse = `{
  "latitude": 52.52,
  "longitude": 13.419998,
  "generationtime_ms": 0.0270605087280273,
  "utc_offset_seconds": 3600,
  "timezone": "Europe/Berlin",
  "timezone_abbreviation": "CET",
  "elevation": 38.0,
  "daily_units": {"time": "iso8601", "temperature_2m_min": "°C", "temperature_2m_max": "°C"},
  "daily": {
    "time": ["2024-01-01", "2024-01-02"],
    "temperature_2m_min": [-2.0, 0.4],
    "temperature_2m_max": [10.0, 6.3]
  }
}`

func newFetcher(t *testing.T, forecastDays int, handler http.HandlerFunc) manager.ForecastFetcher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return openmeteo.New(rest.New("dailytemp-test", logger), server.URL+"/v1/forecast", forecastDays, logger)
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

var berlin = manager.Location{
	Raw:       "52.52,13.405",
	Latitude:  52.52,
	Longitude: 13.405,
	Timezone:  "Europe/Berlin",
}

func TestOpenMeteo_Forecast(t *testing.T) {
	ctx := context.Background()

	t.Run("successful forecast", func(t *testing.T) {
		fetcher := newFetcher(t, 0, func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Equal(t, "/v1/forecast", r.URL.Path)
			assert.Equal(t, "52.52", query.Get("latitude"))
			assert.Equal(t, "13.405", query.Get("longitude"))
			assert.Equal(t, "Europe/Berlin", query.Get("timezone"))
			assert.Equal(t, "temperature_2m_min,temperature_2m_max", query.Get("daily"))
			assert.False(t, query.Has("forecast_days"))

			reply(http.StatusOK, berlinResponse)(w, r)
		})

		forecast, err := fetcher.Forecast(ctx, berlin)

		require.NoError(t, err)
		assert.InDelta(t, 38.0, forecast.Elevation, 1e-9)
		assert.InDelta(t, 0.0270605087280273, forecast.GenerationTimeMs, 1e-12)
		assert.InDelta(t, 52.52, forecast.Latitude, 1e-9)
		assert.InDelta(t, 13.419998, forecast.Longitude, 1e-9)
		assert.Equal(t, "Europe/Berlin", forecast.Timezone)
		assert.Equal(t, "CET", forecast.TimezoneAbbreviation)
		assert.Equal(t, 3600, forecast.UTCOffsetSeconds)
		assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, forecast.Daily.Time)
		assert.Equal(t, []float64{10.0, 6.3}, forecast.Daily.TemperatureMax)
		assert.Equal(t, []float64{-2.0, 0.4}, forecast.Daily.TemperatureMin)
		assert.Equal(t, "°C", forecast.DailyUnits.TemperatureMax)
		assert.Equal(t, "°C", forecast.DailyUnits.TemperatureMin)
		assert.Equal(t, "iso8601", forecast.DailyUnits.Time)
	})

	t.Run("forecast days requested", func(t *testing.T) {
		fetcher := newFetcher(t, 3, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "3", r.URL.Query().Get("forecast_days"))
			reply(http.StatusOK, berlinResponse)(w, r)
		})

		_, err := fetcher.Forecast(ctx, berlin)

		require.NoError(t, err)
	})

	t.Run("unresolved timezone is rejected before the request", func(t *testing.T) {
		var hits atomic.Int32
		fetcher := newFetcher(t, 0, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			reply(http.StatusOK, berlinResponse)(w, r)
		})

		location := berlin
		location.Timezone = ""
		_, err := fetcher.Forecast(ctx, location)

		require.ErrorIs(t, err, manager.ErrTimezoneNotFound)
		assert.Zero(t, hits.Load())
	})

	t.Run("API error reason", func(t *testing.T) {
		fetcher := newFetcher(t, 0, reply(http.StatusBadRequest,
			`{"error":true,"reason":"Invalid timezone"}`))

		_, err := fetcher.Forecast(ctx, berlin)

		var apiErr *manager.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Invalid timezone", apiErr.Message)
	})

	t.Run("HTTP error without reason", func(t *testing.T) {
		fetcher := newFetcher(t, 0, reply(http.StatusBadGateway, `bad gateway`))

		_, err := fetcher.Forecast(ctx, berlin)

		var apiErr *manager.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "bad gateway", apiErr.Message)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		fetcher := newFetcher(t, 0, reply(http.StatusOK, `{"daily":{"time":"2024-01-01"}}`))

		_, err := fetcher.Forecast(ctx, berlin)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})

	t.Run("misaligned daily series", func(t *testing.T) {
		fetcher := newFetcher(t, 0, reply(http.StatusOK,
			`{"daily":{"time":["2024-01-01","2024-01-02"],"temperature_2m_max":[1.0],"temperature_2m_min":[0.0,1.0]}}`))

		_, err := fetcher.Forecast(ctx, berlin)

		require.ErrorIs(t, err, manager.ErrMisalignedSeries)
	})

	t.Run("cancelled context", func(t *testing.T) {
		fetcher := newFetcher(t, 0, reply(http.StatusOK, berlinResponse))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := fetcher.Forecast(cancelled, berlin)

		require.ErrorIs(t, err, context.Canceled)
	})
}
