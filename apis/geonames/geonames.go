package geonames

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"dailytemp/apis/rest"
	"dailytemp/manager"
)

const apiName = "api.geonames.org"

func New(client *resty.Client, url, username string, logger *slog.Logger) *geonames {
	return &geonames{
		client:   client,
		url:      url,
		username: username,
		log:      logger,
	}
}

type geonames struct {
	client   *resty.Client
	url      string
	username string
	log      *slog.Logger
}

func (g *geonames) Name() string {
	return apiName
}

func (g *geonames) Timezone(ctx context.Context, location manager.Location) (string, error) {
	params := map[string]string{
		"lat":      manager.FormatCoordinate(location.Latitude),
		"lng":      manager.FormatCoordinate(location.Longitude),
		"username": g.username,
	}

	g.log.DebugContext(ctx, "GeoNames timezone request", "lat", params["lat"], "lng", params["lng"])

	result, err := g.processRequest(ctx, params)
	if err != nil {
		return "", err
	}

	return timezoneID(result)
}

func (g *geonames) processRequest(ctx context.Context, params map[string]string) (map[string]interface{}, error) {
	request := g.client.R().SetContext(ctx)
	request.SetQueryParams(params)

	response, err := request.Get(g.url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", apiName, err)
	}

	if err = rest.CheckStatus(apiName, response); err != nil {
		return nil, err
	}

	result := make(map[string]interface{})
	if err = json.Unmarshal(response.Body(), &result); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", apiName, err)
	}

	return result, nil
}

// timezoneID extracts the "timezoneId" field. GeoNames answers errors such as
// an unknown username with status 200 and a "status" object instead.
func timezoneID(result map[string]interface{}) (string, error) {
	if id, ok := result["timezoneId"].(string); ok && id != "" {
		return id, nil
	}

	if status, ok := result["status"].(map[string]interface{}); ok {
		if message, ok := status["message"].(string); ok && message != "" {
			return "", fmt.Errorf("%w: %s", manager.ErrTimezoneNotFound, message)
		}
	}

	return "", fmt.Errorf("%w: response has no timezoneId", manager.ErrTimezoneNotFound)
}
