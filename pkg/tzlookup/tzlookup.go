// Package tzlookup infers time zones from coordinates without a network
// round trip.
package tzlookup

import (
	"context"
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"

	"github.com/spencer-p/goldenhour/pkg/geo"
)

// Finder looks up IANA zone names in the boundary data bundled with tzf.
type Finder struct {
	finder tzf.F
}

var (
	instance *Finder
	initErr  error
	once     sync.Once
)

// NewFinder returns the process-wide Finder. The boundary data is large, so it
// is loaded once.
func NewFinder() (*Finder, error) {
	once.Do(func() {
		f, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &Finder{finder: f}
	})
	return instance, initErr
}

// TimeZone returns the zone name at c, e.g. "America/Chicago".
func (f *Finder) TimeZone(_ context.Context, c geo.Coordinate) (string, error) {
	name := f.finder.GetTimezoneName(c.Long, c.Lat)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for %s", c)
	}
	return name, nil
}
