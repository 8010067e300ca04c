package handlers

import (
	"time"

	"github.com/spencer-p/goldenhour/pkg/geo"
	"github.com/spencer-p/goldenhour/pkg/meta"
	"github.com/spencer-p/goldenhour/pkg/resolve"
	"github.com/spencer-p/goldenhour/pkg/sunset"
	"github.com/spencer-p/goldenhour/pkg/timetricks"
	"github.com/spencer-p/goldenhour/pkg/weather"
)

// Report is the answer to a golden hour query. Candidates is set instead of
// Days when the input matched several places.
type Report struct {
	Place      *geo.Place           `json:"place,omitempty"`
	Candidates resolve.CandidateSet `json:"candidates,omitempty"`
	Days       []Day                `json:"days,omitempty"`
	Weather    *Weather             `json:"weather,omitempty"`

	// chart is the first day's cloud chart SVG, if any.
	chart string
}

// Day is one computed day in the place's time zone.
type Day struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	// Reason and Message are set for unreachable days.
	Reason       string   `json:"reason,omitempty"`
	Message      string   `json:"message,omitempty"`
	Angle        float64  `json:"angle"`
	NoonAltitude *float64 `json:"noon_altitude,omitempty"`

	Sunrise   *time.Time `json:"sunrise,omitempty"`
	SolarNoon *time.Time `json:"solar_noon,omitempty"`
	Sunset    *time.Time `json:"sunset,omitempty"`
	Morning   *time.Time `json:"morning,omitempty"`
	Evening   *time.Time `json:"evening,omitempty"`

	Clocks  Clocks        `json:"clocks"`
	Windows []meta.Window `json:"windows,omitempty"`
}

// Clocks are the day's events on the place's wall clock.
type Clocks struct {
	Sunrise   string `json:"sunrise"`
	SolarNoon string `json:"solar_noon"`
	Sunset    string `json:"sunset"`
	Morning   string `json:"morning"`
	Evening   string `json:"evening"`
}

// Weather is the forecast for the first day.
type Weather struct {
	weather.Report
	Condition *weather.Condition `json:"condition,omitempty"`
}

const (
	statusResolved    = "resolved"
	statusUnreachable = "unreachable"
)

// NewDay converts a result into a Day in loc. Absent events are nil.
func NewDay(date time.Time, r sunset.Result, loc *time.Location) Day {
	d := Day{Date: date.Format(timetricks.DateFormat)}
	sunset.Match(r, func(r sunset.Resolved) {
		d.Status = statusResolved
		d.Angle = r.Angle
		d.setTimes(loc, r.Sunrise, r.SolarNoon, r.Sunset, r.Morning, r.Evening)
	}, func(u sunset.Unreachable) {
		d.Status = statusUnreachable
		d.Reason = u.Reason.String()
		d.Message = u.Message
		d.NoonAltitude = u.NoonAltitude
		d.setTimes(loc, u.Sunrise, u.SolarNoon, u.Sunset, time.Time{}, time.Time{})
	})
	return d
}

func (d *Day) setTimes(loc *time.Location, rise, noon, set, morning, evening time.Time) {
	d.Sunrise, d.SolarNoon, d.Sunset = in(rise, loc), in(noon, loc), in(set, loc)
	d.Morning, d.Evening = in(morning, loc), in(evening, loc)
	d.Clocks = Clocks{
		Sunrise:   timetricks.Clock(rise, loc),
		SolarNoon: timetricks.Clock(noon, loc),
		Sunset:    timetricks.Clock(set, loc),
		Morning:   timetricks.Clock(morning, loc),
		Evening:   timetricks.Clock(evening, loc),
	}
}

func in(t time.Time, loc *time.Location) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.In(loc)
	return &t
}

// outcome labels a result for metrics.
func outcome(r sunset.Result) string {
	if u, ok := r.(sunset.Unreachable); ok {
		return u.Reason.String()
	}
	return statusResolved
}

func newWeather(r weather.Report) *Weather {
	if r.Daily == nil && len(r.Hourly) == 0 {
		return nil
	}
	w := &Weather{Report: r}
	if r.Daily != nil {
		c := r.Daily.Condition()
		w.Condition = &c
	}
	return w
}
