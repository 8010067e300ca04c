package sunset

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/goldenhour/pkg/ephemeris"
	"github.com/spencer-p/goldenhour/pkg/geo"
)

// parabola is a provider whose Sun peaks at noon UTC and follows a parabola
// that reaches the horizon at rise and set.
type parabola struct {
	peak     float64 // degrees
	halfDay  time.Duration
	noRise   bool
	noNoon   bool
	constant bool
}

func (p parabola) noonOf(date time.Time) time.Time {
	return date.Add(12 * time.Hour)
}

func (p parabola) Altitude(t time.Time, _ geo.Coordinate) float64 {
	if p.constant {
		return ephemeris.Radians(p.peak)
	}
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	h := t.Sub(noon).Hours() / p.halfDay.Hours()
	return ephemeris.Radians(p.peak) * (1 - h*h)
}

func (p parabola) DayTimes(date time.Time, _ geo.Coordinate) ephemeris.DayTimes {
	var dt ephemeris.DayTimes
	if !p.noNoon {
		dt.SolarNoon = p.noonOf(date)
	}
	if !p.noRise {
		dt.Sunrise = p.noonOf(date).Add(-p.halfDay)
		dt.Sunset = p.noonOf(date).Add(p.halfDay)
	}
	return dt
}

var (
	day0      = time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	wichita   = geo.Coordinate{Lat: 37.545, Long: -97.268}
	svalbard  = geo.Coordinate{Lat: 78.2232, Long: 15.6267}
	midwinter = time.Date(2024, time.December, 21, 0, 0, 0, 0, time.UTC)
)

func ExampleEngine_ComputeDay() {
	e := NewEngine(parabola{peak: 40, halfDay: 6 * time.Hour})
	r := e.ComputeDay(Query{Date: day0, Angle: 15})
	Match(r, func(r Resolved) {
		fmt.Println("morning", r.Morning.Format("15:04"))
		fmt.Println("noon", r.SolarNoon.Format("15:04"))
		fmt.Println("evening", r.Evening.Format("15:04"))
	}, func(u Unreachable) {
		fmt.Println(u.Message)
	})
	// Output:
	// morning 07:15
	// noon 12:00
	// evening 16:44
}

func TestFindCrossing(t *testing.T) {
	p := parabola{peak: 40, halfDay: 6 * time.Hour}
	noon := day0.Add(12 * time.Hour)
	rise := noon.Add(-6 * time.Hour)

	table := []struct {
		name       string
		start, end time.Time
		angle      float64
		want       bool
	}{
		{"rising", rise, noon, 15, true},
		{"setting", noon, noon.Add(6 * time.Hour), 15, true},
		{"both below", rise, rise.Add(time.Hour), 30, false},
		{"both above", noon.Add(-time.Hour), noon, 5, false},
		{"reversed", noon, rise, 15, false},
		{"empty", noon, noon, 15, false},
		{"zero start", time.Time{}, noon, 15, false},
		{"zero end", rise, time.Time{}, 15, false},
		{"touches zero at end", rise, noon, 40, true},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FindCrossing(p, tc.start, tc.end, geo.Coordinate{}, tc.angle)
			if ok != tc.want {
				t.Fatalf("found = %v, want %v (at %s)", ok, tc.want, got)
			}
			if !ok {
				return
			}
			if got.Before(tc.start) || got.After(tc.end) {
				t.Errorf("crossing %s outside [%s, %s]", got, tc.start, tc.end)
			}
			alt := ephemeris.Degrees(p.Altitude(got, geo.Coordinate{}))
			if math.Abs(alt-tc.angle) > 0.1 {
				t.Errorf("altitude at crossing is %.3f°, want %.3f°", alt, tc.angle)
			}
		})
	}
}

func TestFindCrossingNotFinite(t *testing.T) {
	p := parabola{peak: math.NaN(), halfDay: 6 * time.Hour}
	noon := day0.Add(12 * time.Hour)
	if got, ok := FindCrossing(p, noon.Add(-time.Hour), noon, geo.Coordinate{}, 0); ok {
		t.Errorf("found crossing %s with NaN altitudes", got)
	}
}

func TestFindCrossingConstant(t *testing.T) {
	p := parabola{peak: 10, constant: true}
	noon := day0.Add(12 * time.Hour)
	if got, ok := FindCrossing(p, noon.Add(-time.Hour), noon, geo.Coordinate{}, 10); ok {
		t.Errorf("found crossing %s on a flat altitude", got)
	}
}

func TestComputeDayUnreachable(t *testing.T) {
	table := []struct {
		name   string
		p      ephemeris.Provider
		angle  float64
		want   Reason
		hasAlt bool
	}{
		{"no noon", parabola{peak: 40, halfDay: 6 * time.Hour, noNoon: true}, 15, SolarNoonUnavailable, false},
		{"too low", parabola{peak: 10, halfDay: 6 * time.Hour}, 15, AngleNeverReached, true},
		{"midnight sun", parabola{peak: 40, halfDay: 6 * time.Hour, noRise: true}, 15, NoCrossingFound, true},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			r := NewEngine(tc.p).ComputeDay(Query{Date: day0, Angle: tc.angle})
			u, ok := r.(Unreachable)
			if !ok {
				t.Fatalf("got %T, want Unreachable", r)
			}
			if u.Reason != tc.want {
				t.Errorf("reason = %s, want %s", u.Reason, tc.want)
			}
			if (u.NoonAltitude != nil) != tc.hasAlt {
				t.Errorf("noon altitude = %v, want present = %v", u.NoonAltitude, tc.hasAlt)
			}
			if u.Message == "" {
				t.Errorf("missing message")
			}
		})
	}
}

func TestComputeDayAngleMessage(t *testing.T) {
	r := NewEngine(parabola{peak: 10, halfDay: 6 * time.Hour}).ComputeDay(Query{Date: day0, Angle: 12.5})
	u := r.(Unreachable)
	want := "The Sun never reaches 12.5° on this date here. Try a smaller angle."
	if diff := cmp.Diff(want, u.Message); diff != "" {
		t.Errorf("message (-want,+got): %s", diff)
	}
	if math.Abs(*u.NoonAltitude-10) > 1e-9 {
		t.Errorf("noon altitude = %v, want 10", *u.NoonAltitude)
	}
}

func TestComputeDayBoundary(t *testing.T) {
	// The angle equals the noon altitude, so both crossings collapse to
	// solar noon.
	e := NewEngine(parabola{peak: 40, halfDay: 6 * time.Hour})
	res := e.ComputeDay(Query{Date: day0, Angle: 40})
	r, ok := res.(Resolved)
	if !ok {
		t.Fatalf("got %#v, want Resolved", res)
	}
	if r.Morning.IsZero() || r.Evening.IsZero() {
		t.Fatalf("missing crossings: %+v", r)
	}
	for name, got := range map[string]time.Time{"morning": r.Morning, "evening": r.Evening} {
		if d := got.Sub(r.SolarNoon); d < -tolerance || d > tolerance {
			t.Errorf("%s crossing %s is %s from noon", name, got, d)
		}
	}
}

func TestComputeDayTemperate(t *testing.T) {
	for _, p := range []ephemeris.Provider{ephemeris.SunCalc{}, ephemeris.Meeus{}} {
		t.Run(fmt.Sprintf("%T", p), func(t *testing.T) {
			r := NewEngine(p).ComputeDay(Query{Coordinate: wichita, Date: day0, Angle: 15})
			res, ok := r.(Resolved)
			if !ok {
				t.Fatalf("got %#v, want Resolved", r)
			}
			if res.Morning.IsZero() || res.Evening.IsZero() {
				t.Fatalf("missing crossings: %+v", res)
			}
			order := []time.Time{res.Sunrise, res.Morning, res.SolarNoon, res.Evening, res.Sunset}
			for i := 1; i < len(order); i++ {
				if order[i].Before(order[i-1]) {
					t.Errorf("events out of order: %v", order)
				}
			}
			if res.Angle != 15 {
				t.Errorf("angle = %v, want 15", res.Angle)
			}
		})
	}
}

func TestComputeDayMonotonic(t *testing.T) {
	e := NewEngine(ephemeris.SunCalc{})
	var prev Resolved
	for i, angle := range []float64{0, 5, 10, 20, 40, 60, 75} {
		r, ok := e.ComputeDay(Query{Coordinate: wichita, Date: day0, Angle: angle}).(Resolved)
		if !ok {
			t.Fatalf("angle %v: want Resolved", angle)
		}
		if i > 0 {
			if r.Morning.Before(prev.Morning) {
				t.Errorf("angle %v: morning %s moved earlier than %s", angle, r.Morning, prev.Morning)
			}
			if r.Evening.After(prev.Evening) {
				t.Errorf("angle %v: evening %s moved later than %s", angle, r.Evening, prev.Evening)
			}
		}
		prev = r
	}
}

func TestComputeDayPolar(t *testing.T) {
	e := NewEngine(ephemeris.SunCalc{})

	r, ok := e.ComputeDay(Query{Coordinate: svalbard, Date: midwinter, Angle: 15}).(Unreachable)
	if !ok {
		t.Fatalf("winter: want Unreachable")
	}
	if r.Reason != AngleNeverReached {
		t.Errorf("winter: reason = %s", r.Reason)
	}
	if r.NoonAltitude == nil || *r.NoonAltitude >= 15 {
		t.Errorf("winter: noon altitude = %v, want < 15", r.NoonAltitude)
	}

	// Midnight sun: the Sun stays above 15° only part of the day but never
	// rises or sets, so there is nothing to bracket against.
	r, ok = e.ComputeDay(Query{Coordinate: svalbard, Date: day0, Angle: 15}).(Unreachable)
	if !ok {
		t.Fatalf("summer: want Unreachable")
	}
	if r.Reason != NoCrossingFound {
		t.Errorf("summer: reason = %s", r.Reason)
	}
}

func TestComputeDays(t *testing.T) {
	e := NewEngine(parabola{peak: 40, halfDay: 6 * time.Hour})
	results := e.ComputeDays(Query{Date: day0, Angle: 15}, 3)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		res, ok := r.(Resolved)
		if !ok {
			t.Fatalf("day %d: want Resolved", i)
		}
		want := day0.Add(time.Duration(i)*day + 12*time.Hour)
		if !res.SolarNoon.Equal(want) {
			t.Errorf("day %d: noon %s, want %s", i, res.SolarNoon, want)
		}
	}
}
