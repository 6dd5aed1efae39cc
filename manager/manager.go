package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dailytemp/metrics"
)

// Named is implemented by stages that want their provider name on metrics.
type Named interface {
	Name() string
}

func New(timeout time.Duration, metrics *metrics.Metrics, logger *slog.Logger) *weather {
	return &weather{
		timeout: timeout,
		metrics: metrics,
		log:     logger,
	}
}

type weather struct {
	resolver TimezoneResolver
	forecast ForecastFetcher
	timeout  time.Duration
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// Get resolves the timezone of location and then fetches its forecast. The
// stages run one after the other, each bounded by the configured timeout.
func (w *weather) Get(ctx context.Context, location Location) (Forecast, error) {
	if w.resolver == nil {
		return Forecast{}, fmt.Errorf("%w: timezone resolver not set", ErrNotConfigured)
	}
	if w.forecast == nil {
		return Forecast{}, fmt.Errorf("%w: forecast api not registered", ErrNotConfigured)
	}

	timezone, err := runStage(ctx, w, StageResolve, providerName(w.resolver), func(ctx context.Context) (string, error) {
		return w.resolver.Timezone(ctx, location)
	})
	if err != nil {
		return Forecast{}, err
	}

	w.log.DebugContext(ctx, "Timezone resolved", "location", location.Raw, "timezone", timezone)
	location.Timezone = timezone

	forecast, err := runStage(ctx, w, StageFetch, providerName(w.forecast), func(ctx context.Context) (Forecast, error) {
		return w.forecast.Forecast(ctx, location)
	})
	if err != nil {
		return Forecast{}, err
	}

	w.log.DebugContext(ctx, "Forecast fetched", "location", location.Raw, "days", forecast.Daily.Len())

	return forecast, nil
}

func (w *weather) SetResolver(resolver TimezoneResolver) {
	w.resolver = resolver
}

func (w *weather) RegisterAPI(forecast ForecastFetcher) {
	w.forecast = forecast
}

func runStage[T any](
	ctx context.Context,
	w *weather,
	stage Stage,
	provider string,
	call func(ctx context.Context) (T, error),
) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	timer := prometheus.NewTimer(w.metrics.StageSeconds.WithLabelValues(string(stage), provider))
	result, err := call(ctx)
	timer.ObserveDuration()

	if err != nil {
		w.metrics.StageErrors.WithLabelValues(string(stage), provider).Inc()

		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%s did not answer within %s: %w", provider, w.timeout, err)
		}
		w.log.WarnContext(ctx, "Pipeline stage failed", "stage", stage, "provider", provider, "error", err)

		var zero T
		return zero, &StageError{Stage: stage, Err: err}
	}

	return result, nil
}

func providerName(v any) string {
	if named, ok := v.(Named); ok {
		return named.Name()
	}

	return "unknown"
}
