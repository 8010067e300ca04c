package sunset

import (
	"math"
	"time"

	"github.com/spencer-p/goldenhour/pkg/ephemeris"
	"github.com/spencer-p/goldenhour/pkg/geo"
)

const (
	// tolerance is the interval width at which bisection stops.
	tolerance = 30 * time.Second
	// maxIterations guards against intervals that never shrink.
	maxIterations = 60
)

// FindCrossing bisects [start, end] for the instant the Sun's altitude equals
// angle degrees. It returns false unless the altitude minus the angle changes
// sign (or touches zero) between the two ends.
func FindCrossing(p ephemeris.Provider, start, end time.Time, c geo.Coordinate, angle float64) (time.Time, bool) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return time.Time{}, false
	}

	target := ephemeris.Radians(angle)
	f := func(t time.Time) float64 {
		return p.Altitude(t, c) - target
	}

	a, b := f(start), f(end)
	if !finite(a) || !finite(b) || a == b || a*b > 0 {
		return time.Time{}, false
	}

	for i := 0; i < maxIterations && end.Sub(start) > tolerance; i++ {
		mid := start.Add(end.Sub(start) / 2)
		fm := f(mid)
		if a*fm <= 0 {
			end = mid
		} else {
			start, a = mid, fm
		}
	}
	return start.Add(end.Sub(start) / 2), true
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
