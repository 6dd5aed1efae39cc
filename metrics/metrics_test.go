package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailytemp/metrics"
)

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.DaysReported.Add(7)
	m.StageErrors.WithLabelValues("resolve", "api.geonames.org").Inc()
	m.StageSeconds.WithLabelValues("fetch", "api.open-meteo.com").Observe(0.2)

	path := filepath.Join(t.TempDir(), "dailytemp.prom")
	require.NoError(t, metrics.WriteTextfile(path, reg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "dailytemp_days_reported_total 7")
	assert.Contains(t, out, `dailytemp_stage_errors_total{provider="api.geonames.org",stage="resolve"} 1`)
	assert.Contains(t, out, `dailytemp_stage_duration_seconds_count{provider="api.open-meteo.com",stage="fetch"} 1`)
}

func TestWriteTextfile_BadPath(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)

	err := metrics.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dailytemp.prom"), reg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics textfile")
}
