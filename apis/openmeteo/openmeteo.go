package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"dailytemp/apis/rest"
	"dailytemp/manager"
)

const apiName = "api.open-meteo.com"

var dailyVars = []string{
	"temperature_2m_min",
	"temperature_2m_max",
}

func New(client *resty.Client, url string, forecastDays int, logger *slog.Logger) *openMeteo {
	return &openMeteo{
		client:       client,
		url:          url,
		forecastDays: forecastDays,
		log:          logger,
	}
}

type openMeteo struct {
	client       *resty.Client
	url          string
	forecastDays int
	log          *slog.Logger
}

func (o *openMeteo) Name() string {
	return apiName
}

func (o *openMeteo) Forecast(ctx context.Context, location manager.Location) (manager.Forecast, error) {
	if location.Timezone == "" {
		return manager.Forecast{}, fmt.Errorf("%s: %w", apiName, manager.ErrTimezoneNotFound)
	}

	params := map[string]string{
		"latitude":  manager.FormatCoordinate(location.Latitude),
		"longitude": manager.FormatCoordinate(location.Longitude),
		"timezone":  location.Timezone,
		"daily":     strings.Join(dailyVars, ","),
	}
	if o.forecastDays > 0 {
		params["forecast_days"] = strconv.Itoa(o.forecastDays)
	}

	o.log.DebugContext(ctx, "Open-Meteo forecast request", "params", params)

	return o.processRequest(ctx, params)
}

func (o *openMeteo) processRequest(ctx context.Context, params map[string]string) (manager.Forecast, error) {
	request := o.client.R().SetContext(ctx)
	request.SetQueryParams(params)

	response, err := request.Get(o.url)
	if err != nil {
		return manager.Forecast{}, fmt.Errorf("%s: %w", apiName, err)
	}

	if err = rest.CheckStatus(apiName, response); err != nil {
		var apiErr *manager.APIError
		if errors.As(err, &apiErr) {
			if reason := errorReason(response.Body()); reason != "" {
				apiErr.Message = reason
			}
		}
		return manager.Forecast{}, err
	}

	return unmarshal(response.Body())
}

func unmarshal(data []byte) (manager.Forecast, error) {
	var forecast manager.Forecast

	if err := json.Unmarshal(data, &forecast); err != nil {
		return manager.Forecast{}, fmt.Errorf("%s: failed to decode response: %w", apiName, err)
	}

	if err := forecast.Daily.Validate(); err != nil {
		return manager.Forecast{}, fmt.Errorf("%s: %w", apiName, err)
	}

	return forecast, nil
}

// errorReason extracts the reason of an Open-Meteo error body:
// {"error": true, "reason": "..."}.
func errorReason(data []byte) string {
	var body struct {
		Error  bool   `json:"error"`
		Reason string `json:"reason"`
	}

	if err := json.Unmarshal(data, &body); err != nil || !body.Error {
		return ""
	}

	return body.Reason
}
