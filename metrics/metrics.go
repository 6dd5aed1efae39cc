package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StageSeconds *prometheus.HistogramVec
	StageErrors  *prometheus.CounterVec
	DaysReported prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		StageSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dailytemp_stage_duration_seconds",
			Help:    "Duration of each forecast pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage", "provider"}),
		StageErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "dailytemp_stage_errors_total",
			Help: "Total number of failed forecast pipeline stages.",
		}, []string{"stage", "provider"}),
		DaysReported: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "dailytemp_days_reported_total",
			Help: "Total number of forecast days printed.",
		}),
	}
}

// WriteTextfile dumps every metric of g in the text exposition format, for
// pickup by a node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
