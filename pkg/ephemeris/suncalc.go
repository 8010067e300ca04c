package ephemeris

import (
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/spencer-p/goldenhour/pkg/geo"
)

// SunCalc is a Provider backed by the suncalc algorithms.
type SunCalc struct{}

func (SunCalc) Altitude(t time.Time, c geo.Coordinate) float64 {
	return suncalc.GetPosition(t, c.Lat, c.Long).Altitude
}

// DayTimes hands suncalc the mean local noon of the day. suncalc rounds to
// the nearest transit, so UTC midnight lands on the previous day west of
// Greenwich.
func (SunCalc) DayTimes(date time.Time, c geo.Coordinate) DayTimes {
	times := suncalc.GetTimes(meanNoon(date, c), c.Lat, c.Long)
	return DayTimes{
		Sunrise:   plausible(times[suncalc.Sunrise].Value, date),
		SolarNoon: plausible(times[suncalc.SolarNoon].Value, date),
		Sunset:    plausible(times[suncalc.Sunset].Value, date),
	}
}
