package timetricks

import (
	"fmt"
	"time"
)

const (
	dayFormat      = "20060102"
	DateFormat     = "2006-01-02"
	clockFormat    = "3:04 PM"
	weekPlusMinute = 7*24*time.Hour + time.Minute
)

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

func TrimClock(t time.Time) time.Time {
	h, m, s := t.Clock()
	return t.Add(-1 *
		(time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second +
			time.Duration(t.Nanosecond())))
}

// ParseDate reads a YYYY-MM-DD calendar date as the UTC midnight that starts
// it.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q not in fmt %q: %w", s, DateFormat, err)
	}
	return t, nil
}

// UTCDate returns the UTC midnight of the UTC calendar day containing t.
func UTCDate(t time.Time) time.Time {
	return TrimClock(t.UTC())
}

// Clock formats t as a 12 hour wall clock time in loc. Zero times are shown as
// a dash.
func Clock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "—"
	}
	return t.In(loc).Format(clockFormat)
}

// HourOfDay returns the wall clock time of t in loc as fractional hours since
// midnight.
func HourOfDay(t time.Time, loc *time.Location) float64 {
	h, m, _ := t.In(loc).Clock()
	return float64(h) + float64(m)/60
}

// Day names the day of t relative to now: "Today", "Tomorrow", a weekday
// within the coming week, or the month and day.
func Day(t, now time.Time) string {
	now = now.In(t.Location())
	switch {
	case SameDay(t, now):
		return "Today"
	case SameDay(t.Add(-24*time.Hour), now):
		return "Tomorrow"
	case WithinWeek(t, now):
		return t.Weekday().String()
	default:
		return t.Format("01/02")
	}
}

// WithinWeek reports whether t falls between the start of now's day and the
// same time one week later.
func WithinWeek(t, now time.Time) bool {
	// Trim current time so they have no wall clock component, just
	// calendar date, and use it to compute the first minute of the coming week.
	// Then check if our time t occurs before then, as well as after the start
	// of today (minus a minute in case t falls at midnight).
	start := TrimClock(now)
	firstMinuteOfNextWeek := start.Add(weekPlusMinute)
	return t.After(start.Add(-1*time.Minute)) && t.Before(firstMinuteOfNextWeek)
}
