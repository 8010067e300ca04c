package meta

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spencer-p/goldenhour/pkg/timetricks"
)

const timeFmt = "3:04 PM"

// Window is a stretch of the day where the Sun sits low over the horizon.
type Window struct {
	Kind     Kind          `json:"kind"`
	Time     time.Time     `json:"time"`
	Duration time.Duration `json:"duration,omitempty"`
	Reasons  []string      `json:"reasons"`
	// Cloud is the interpolated cloud cover in percent at the middle of the
	// window, or nil without an hourly forecast.
	Cloud *float64 `json:"cloud,omitempty"`

	// PrettyTime is a human-readable version of the time, relative to the
	// current date. Optional.
	PrettyTime string `json:"pretty_time,omitempty"`
}

// Kind tells the morning window from the evening one.
type Kind string

const (
	Morning Kind = "morning"
	Evening Kind = "evening"
)

// End is the instant the window closes.
func (w *Window) End() time.Time {
	return w.Time.Add(w.Duration)
}

// Describe formats the window relative to now.
func (w *Window) Describe(now time.Time) string {
	return fmt.Sprintf("%s, %s",
		w.prettyTime(now),
		strings.Join(w.Reasons, " and "))
}

func (w *Window) prettyTime(now time.Time) string {
	return fmt.Sprintf("%s at %s", timetricks.Day(w.Time, now), w.TimeRange())
}

// UpdatePrettyTime makes sure that the window's pretty time is set.
func (w *Window) UpdatePrettyTime(now time.Time) {
	if w.PrettyTime == "" {
		w.PrettyTime = w.prettyTime(now)
	}
}

// TimeRange returns the window's wall clock range without the date.
func (w *Window) TimeRange() string {
	until := ""
	if w.Duration != 0 {
		until = fmt.Sprintf(" until %s", w.End().Format(timeFmt))
	}
	return fmt.Sprintf("%s%s", w.Time.Format(timeFmt), until)
}

func (w *Window) MarshalJSON() ([]byte, error) {
	// Fill in pretty time on a copy if needed.
	c := *w
	c.UpdatePrettyTime(time.Now())
	// The alias drops this method so Marshal does not recurse.
	type window Window
	return json.Marshal((*window)(&c))
}
