package ephemeris

import (
	"math"
	"time"

	"github.com/keep94/sunrise"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/spencer-p/goldenhour/pkg/geo"
)

const (
	// noonWindow bounds the search for the altitude maximum around the
	// mean solar noon.
	noonWindow = 90 * time.Minute
	// noonPrecision is when the golden-section search stops.
	noonPrecision = time.Second
)

// invPhi is 1/φ for golden-section search.
var invPhi = (math.Sqrt(5) - 1) / 2

// Meeus is a Provider built on the algorithms of Jean Meeus. Altitude comes
// from the apparent solar coordinates; sunrise and sunset from the sunrise
// package; solar noon is the altitude maximum.
type Meeus struct{}

func (Meeus) Altitude(t time.Time, c geo.Coordinate) float64 {
	jd := julian.TimeToJD(t.UTC())
	α, δ := solar.ApparentEquatorial(jd)
	st := sidereal.Apparent(jd)
	// Meeus measures longitude positively westward.
	_, h := coord.EqToHz(α, δ, unit.AngleFromDeg(c.Lat), unit.AngleFromDeg(-c.Long), st)
	return h.Rad()
}

func (m Meeus) DayTimes(date time.Time, c geo.Coordinate) DayTimes {
	noon := m.noon(date, c)

	// The sunrise package works on the calendar day of the time it is given,
	// so hand it noon in local mean time.
	lmt := time.FixedZone("LMT", int(c.Long/15*3600))
	var s sunrise.Sunrise
	s.Around(c.Lat, c.Long, noon.In(lmt))

	rise, set := s.Sunrise().UTC(), s.Sunset().UTC()
	// The sunrise package reports nonsense for days without a sunrise.
	if !rise.Before(noon) || noon.Sub(rise) > 12*time.Hour {
		rise = time.Time{}
	}
	if !set.After(noon) || set.Sub(noon) > 12*time.Hour {
		set = time.Time{}
	}

	return DayTimes{
		Sunrise:   plausible(rise, date),
		SolarNoon: plausible(noon, date),
		Sunset:    plausible(set, date),
	}
}

// noon finds the altitude maximum with a golden-section search near the mean
// solar noon of the day.
func (m Meeus) noon(date time.Time, c geo.Coordinate) time.Time {
	mean := meanNoon(date, c)
	a, b := mean.Add(-noonWindow), mean.Add(noonWindow)

	for b.Sub(a) > noonPrecision {
		span := b.Sub(a)
		x1 := b.Add(-time.Duration(float64(span) * invPhi))
		x2 := a.Add(time.Duration(float64(span) * invPhi))
		if m.Altitude(x1, c) < m.Altitude(x2, c) {
			a = x1
		} else {
			b = x2
		}
	}
	return a.Add(b.Sub(a) / 2)
}
