// Package tzfinder resolves timezones offline from the polygon data bundled
// with github.com/ringsaturn/tzf.
package tzfinder

import (
	"context"
	"fmt"

	"github.com/ringsaturn/tzf"

	"dailytemp/manager"
)

const name = "tzf"

type finder struct {
	finder tzf.F
}

// New loads the timezone polygons into memory, which takes a noticeable
// fraction of a second.
func New() (*finder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize timezone finder: %w", err)
	}

	return &finder{finder: f}, nil
}

func (f *finder) Name() string {
	return name
}

func (f *finder) Timezone(ctx context.Context, location manager.Location) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	timezone := f.finder.GetTimezoneName(location.Longitude, location.Latitude)
	if timezone == "" {
		return "", fmt.Errorf("%w: no polygon contains lat=%f, lon=%f",
			manager.ErrTimezoneNotFound, location.Latitude, location.Longitude)
	}

	return timezone, nil
}
