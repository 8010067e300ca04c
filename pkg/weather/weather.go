// Package weather gathers the forecast shown next to the sun times.
package weather

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spencer-p/goldenhour/pkg/geo"
	"github.com/spencer-p/goldenhour/pkg/log"
)

// Source is a forecast provider.
type Source interface {
	Daily(ctx context.Context, p geo.Place, date time.Time) (*Daily, error)
	Hourly(ctx context.Context, p geo.Place, date time.Time) ([]Hourly, error)
}

// Fetch requests the daily summary and hourly cloud cover concurrently. A
// failed request leaves its part of the report empty; it never fails the
// other.
func Fetch(ctx context.Context, src Source, p geo.Place, date time.Time) Report {
	var r Report
	var g errgroup.Group

	g.Go(func() error {
		d, err := src.Daily(ctx, p, date)
		if err != nil {
			log.Warnw("daily forecast failed", "place", p.Label, "err", err)
			return nil
		}
		r.Daily = d
		return nil
	})
	g.Go(func() error {
		h, err := src.Hourly(ctx, p, date)
		if err != nil {
			log.Warnw("hourly forecast failed", "place", p.Label, "err", err)
			return nil
		}
		r.Hourly = h
		return nil
	})

	_ = g.Wait()
	return r
}

// Condition describes a WMO weather code.
type Condition struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

var conditions = map[int]Condition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Drizzle", "🌦️"},
	55: {"Heavy drizzle", "🌦️"},
	56: {"Freezing drizzle", "🌧️"},
	57: {"Heavy freezing drizzle", "🌧️"},
	61: {"Light rain", "🌧️"},
	63: {"Rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Freezing rain", "🌧️"},
	67: {"Heavy freezing rain", "🌧️"},
	71: {"Light snow", "🌨️"},
	73: {"Snow", "🌨️"},
	75: {"Heavy snow", "❄️"},
	77: {"Snow grains", "🌨️"},
	80: {"Rain showers", "🌦️"},
	81: {"Heavy rain showers", "🌧️"},
	82: {"Violent rain showers", "⛈️"},
	85: {"Snow showers", "🌨️"},
	86: {"Heavy snow showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm + hail", "⛈️"},
	99: {"Severe thunderstorm + hail", "⛈️"},
}

// CodeInfo describes a WMO weather code. Unknown codes are plain "Weather".
func CodeInfo(code int) Condition {
	if c, ok := conditions[code]; ok {
		return c
	}
	return Condition{"Weather", "🌤️"}
}

// Condition describes the day's weather code.
func (d *Daily) Condition() Condition {
	return CodeInfo(d.Code)
}
