// Package sunset finds when the Sun crosses a given altitude during a day.
package sunset

import (
	"fmt"
	"time"

	"github.com/spencer-p/goldenhour/pkg/ephemeris"
)

const day = 24 * time.Hour

// Engine computes sun events with an ephemeris provider.
type Engine struct {
	Ephemeris ephemeris.Provider
}

// NewEngine returns an Engine backed by p.
func NewEngine(p ephemeris.Provider) *Engine {
	return &Engine{Ephemeris: p}
}

// ComputeDay returns the sunrise, solar noon, sunset and crossings of the
// query's angle. Days where the angle cannot be bracketed are Unreachable.
// The query's coordinate and date must be valid.
func (e *Engine) ComputeDay(q Query) Result {
	c := q.Coordinate
	times := e.Ephemeris.DayTimes(q.Date, c)

	if times.SolarNoon.IsZero() {
		return Unreachable{
			Reason:  SolarNoonUnavailable,
			Message: "Solar noon unavailable for this date/location.",
			Sunrise: times.Sunrise,
			Sunset:  times.Sunset,
		}
	}

	noonAlt := e.Ephemeris.Altitude(times.SolarNoon, c)
	noonDeg := ephemeris.Degrees(noonAlt)

	if noonAlt < ephemeris.Radians(q.Angle) {
		return Unreachable{
			Reason:       AngleNeverReached,
			Message:      fmt.Sprintf("The Sun never reaches %g° on this date here. Try a smaller angle.", q.Angle),
			Sunrise:      times.Sunrise,
			SolarNoon:    times.SolarNoon,
			Sunset:       times.Sunset,
			NoonAltitude: &noonDeg,
		}
	}

	morning, _ := FindCrossing(e.Ephemeris, times.Sunrise, times.SolarNoon, c, q.Angle)
	evening, _ := FindCrossing(e.Ephemeris, times.SolarNoon, times.Sunset, c, q.Angle)

	if morning.IsZero() && evening.IsZero() {
		return Unreachable{
			Reason:       NoCrossingFound,
			Message:      "Couldn't find crossings today; this can happen near the poles.",
			Sunrise:      times.Sunrise,
			SolarNoon:    times.SolarNoon,
			Sunset:       times.Sunset,
			NoonAltitude: &noonDeg,
		}
	}

	return Resolved{
		Sunrise:   times.Sunrise,
		SolarNoon: times.SolarNoon,
		Sunset:    times.Sunset,
		Morning:   morning,
		Evening:   evening,
		Angle:     q.Angle,
	}
}

// ComputeDays returns the results for numDays consecutive days starting with
// the query's date.
func (e *Engine) ComputeDays(q Query, numDays int) []Result {
	ret := make([]Result, 0, numDays)
	for i := 0; i < numDays; i++ {
		dq := q
		dq.Date = q.Date.Add(time.Duration(i) * day)
		ret = append(ret, e.ComputeDay(dq))
	}
	return ret
}
