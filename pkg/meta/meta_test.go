package meta

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/goldenhour/pkg/sunset"
	"github.com/spencer-p/goldenhour/pkg/weather"
)

var base = time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func hourly(clouds ...float64) []weather.Hourly {
	var out []weather.Hourly
	for i, c := range clouds {
		out = append(out, weather.Hourly{Time: at(i, 0), Hour: float64(i), Cloud: c})
	}
	return out
}

func TestGoldenHours(t *testing.T) {
	day := sunset.Resolved{
		Sunrise:   at(6, 0),
		Morning:   at(7, 0),
		SolarNoon: at(12, 0),
		Evening:   at(19, 0),
		Sunset:    at(20, 0),
		Angle:     6,
	}
	// Clear mornings, cloudy evenings.
	clouds := make([]float64, 24)
	for i := 12; i < 24; i++ {
		clouds[i] = 90
	}

	got := GoldenHours(Conditions{Sun: day, Weather: weather.Report{Hourly: hourly(clouds...)}})
	if len(got) != 2 {
		t.Fatalf("got %d windows, want 2", len(got))
	}

	morning, evening := got[0], got[1]
	if morning.Kind != Morning || !morning.Time.Equal(at(6, 0)) || morning.Duration != time.Hour {
		t.Errorf("morning window = %+v", morning)
	}
	if evening.Kind != Evening || !evening.Time.Equal(at(19, 0)) || !evening.End().Equal(at(20, 0)) {
		t.Errorf("evening window = %+v", evening)
	}
	if diff := cmp.Diff([]string{"the sun is below 6°", "skies are mostly clear"}, morning.Reasons); diff != "" {
		t.Errorf("morning reasons (-want,+got): %s", diff)
	}
	if diff := cmp.Diff([]string{"the sun is below 6°", "clouds cover 90%"}, evening.Reasons); diff != "" {
		t.Errorf("evening reasons (-want,+got): %s", diff)
	}
	if evening.Cloud == nil || math.Abs(*evening.Cloud-90) > 1e-6 {
		t.Errorf("evening cloud = %v", evening.Cloud)
	}
}

func TestGoldenHoursWithoutForecast(t *testing.T) {
	day := sunset.Resolved{Sunrise: at(6, 0), Morning: at(7, 0), Evening: at(19, 0), Sunset: at(20, 0), Angle: 6}
	got := GoldenHours(Conditions{Sun: day, Location: time.FixedZone("CDT", -5*60*60)})
	if len(got) != 2 {
		t.Fatalf("got %d windows, want 2", len(got))
	}
	for _, w := range got {
		if w.Cloud != nil || len(w.Reasons) != 1 {
			t.Errorf("window without forecast has cloud info: %+v", w)
		}
		if name, _ := w.Time.Zone(); name != "CDT" {
			t.Errorf("window in zone %s, want CDT", name)
		}
	}
}

func TestGoldenHoursPartial(t *testing.T) {
	table := []struct {
		name string
		sun  sunset.Result
		want []Kind
	}{{
		name: "evening only",
		sun:  sunset.Resolved{Evening: at(19, 0), Sunset: at(20, 0), Angle: 6},
		want: []Kind{Evening},
	}, {
		name: "crossing before sunrise",
		sun:  sunset.Resolved{Sunrise: at(6, 0), Morning: at(5, 0), Angle: 6},
		want: nil,
	}, {
		name: "unreachable",
		sun:  sunset.Unreachable{Reason: sunset.AngleNeverReached},
		want: nil,
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			var got []Kind
			for _, w := range GoldenHours(Conditions{Sun: tc.sun}) {
				got = append(got, w.Kind)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want,+got): %s", diff)
			}
		})
	}
}
