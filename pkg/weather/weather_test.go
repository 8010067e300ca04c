package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/goldenhour/pkg/geo"
)

type fakeSource struct {
	daily     *Daily
	hourly    []Hourly
	dailyErr  error
	hourlyErr error
}

func (f fakeSource) Daily(context.Context, geo.Place, time.Time) (*Daily, error) {
	return f.daily, f.dailyErr
}

func (f fakeSource) Hourly(context.Context, geo.Place, time.Time) ([]Hourly, error) {
	return f.hourly, f.hourlyErr
}

func TestFetch(t *testing.T) {
	daily := &Daily{Date: "2024-06-21", MaxTempC: 30, Code: 2}
	hourly := []Hourly{{Hour: 6, Cloud: 20}, {Hour: 7, Cloud: 40}}
	boom := errors.New("boom")

	table := []struct {
		name string
		src  fakeSource
		want Report
	}{{
		name: "both",
		src:  fakeSource{daily: daily, hourly: hourly},
		want: Report{Daily: daily, Hourly: hourly},
	}, {
		name: "daily failed",
		src:  fakeSource{dailyErr: boom, hourly: hourly},
		want: Report{Hourly: hourly},
	}, {
		name: "hourly failed",
		src:  fakeSource{daily: daily, hourlyErr: boom},
		want: Report{Daily: daily},
	}, {
		name: "both failed",
		src:  fakeSource{dailyErr: boom, hourlyErr: boom},
		want: Report{},
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got := Fetch(context.Background(), tc.src, geo.Place{Label: "here"}, time.Now())
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want,+got): %s", diff)
			}
		})
	}
}

func TestCodeInfo(t *testing.T) {
	table := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{3, "Overcast"},
		{96, "Thunderstorm + hail"},
		{4, "Weather"},
		{-1, "Weather"},
	}
	for _, tc := range table {
		if got := CodeInfo(tc.code).Text; got != tc.want {
			t.Errorf("CodeInfo(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
	if got := (&Daily{Code: 61}).Condition().Emoji; got != "🌧️" {
		t.Errorf("emoji = %q", got)
	}
}
