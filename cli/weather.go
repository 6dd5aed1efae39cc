package cli

import (
	"log/slog"

	"dailytemp/apis/geonames"
	"dailytemp/apis/openmeteo"
	"dailytemp/apis/rest"
	"dailytemp/apis/tzfinder"
	"dailytemp/config"
	"dailytemp/manager"
	"dailytemp/metrics"
)

// NewWeather is the production Factory: GeoNames or tzf for the timezone,
// Open-Meteo for the forecast.
func NewWeather(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (manager.Weather, error) {
	client := rest.New(cfg.HTTP.UserAgent, logger)

	weather := manager.New(cfg.HTTP.Timeout, m, logger)

	switch cfg.Timezone.Provider {
	case config.ProviderOffline:
		finder, err := tzfinder.New()
		if err != nil {
			return nil, err
		}
		weather.SetResolver(finder)
	default:
		weather.SetResolver(geonames.New(client, cfg.GeoNames.URL, cfg.GeoNames.Username, logger))
	}

	weather.RegisterAPI(openmeteo.New(client, cfg.OpenMeteo.URL, cfg.OpenMeteo.ForecastDays, logger))

	return weather, nil
}
