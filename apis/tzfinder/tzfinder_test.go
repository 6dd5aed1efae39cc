package tzfinder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailytemp/manager"
)

func TestFinder_Timezone(t *testing.T) {
	finder, err := New()
	require.NoError(t, err)
	assert.Equal(t, "tzf", finder.Name())

	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		want      string
	}{
		{name: "Berlin", latitude: 52.52, longitude: 13.405, want: "Europe/Berlin"},
		{name: "New York City", latitude: 40.7128, longitude: -74.0060, want: "America/New_York"},
		{name: "Tokyo", latitude: 35.6762, longitude: 139.6503, want: "Asia/Tokyo"},
		{name: "Aspen", latitude: 39.11539, longitude: -107.65840, want: "America/Denver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finder.Timezone(context.Background(), manager.Location{
				Latitude:  tt.latitude,
				Longitude: tt.longitude,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinder_TimezoneCancelled(t *testing.T) {
	finder, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = finder.Timezone(ctx, manager.Location{Latitude: 52.52, Longitude: 13.405})
	require.ErrorIs(t, err, context.Canceled)
}
