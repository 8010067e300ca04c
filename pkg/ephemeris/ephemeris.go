// Package ephemeris answers where the Sun is for a coordinate and instant.
// Providers are pure: the same inputs always give the same outputs.
package ephemeris

import (
	"math"
	"time"

	"github.com/spencer-p/goldenhour/pkg/geo"
)

const day = 24 * time.Hour

// Provider locates the Sun relative to an observer.
type Provider interface {
	// Altitude returns the Sun's geometric altitude above the horizon in
	// radians.
	Altitude(t time.Time, c geo.Coordinate) float64
	// DayTimes returns sunrise, solar noon and sunset for the calendar day
	// that begins at date (UTC midnight).
	DayTimes(date time.Time, c geo.Coordinate) DayTimes
}

// DayTimes holds the sun events of one day. A zero time means the event does
// not happen or could not be computed (e.g. polar night).
type DayTimes struct {
	Sunrise   time.Time
	SolarNoon time.Time
	Sunset    time.Time
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// meanNoon is 12:00 local mean time on the UTC calendar day starting at date.
func meanNoon(date time.Time, c geo.Coordinate) time.Time {
	return date.UTC().Add(12*time.Hour - time.Duration(c.Long/15*float64(time.Hour)))
}

// plausible drops times that are too far from the requested day to belong to
// it. Providers report impossible events with garbage instants.
func plausible(t, date time.Time) time.Time {
	if t.IsZero() || t.Before(date.Add(-day)) || t.After(date.Add(2*day)) {
		return time.Time{}
	}
	return t
}

// New returns the provider registered under name.
func New(name string) (Provider, bool) {
	switch name {
	case "", "suncalc":
		return SunCalc{}, true
	case "meeus":
		return Meeus{}, true
	}
	return nil, false
}
