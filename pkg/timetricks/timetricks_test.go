package timetricks

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func ExampleWithinWeek() {
	now := time.Date(2024, time.March, 4, 15, 30, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		fmt.Println(i, WithinWeek(now.Add(time.Duration(i)*24*time.Hour), now))
	}
	// Output:
	// 0 true
	// 1 true
	// 2 true
	// 3 true
	// 4 true
	// 5 true
	// 6 true
	// 7 false
}

func ExampleClock() {
	chicago, _ := time.LoadLocation("America/Chicago")
	t := time.Date(2024, time.June, 21, 11, 5, 42, 0, time.UTC)
	fmt.Println(Clock(t, chicago))
	fmt.Println(Clock(time.Time{}, time.UTC))
	// Output:
	// 6:05 AM
	// —
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-21")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("got %s, want %s", got, want)
	}

	for _, bad := range []string{"", "06/21/2024", "2024-13-01", "2024-06-21T00:00:00Z"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) succeeded", bad)
		}
	}
}

func TestUTCDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	in := time.Date(2024, time.June, 22, 3, 0, 0, 5, tokyo)
	want := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	if got := UTCDate(in); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestHourOfDay(t *testing.T) {
	in := time.Date(2024, time.June, 21, 18, 45, 0, 0, time.UTC)
	if got := HourOfDay(in, time.UTC); got != 18.75 {
		t.Errorf("got %v, want 18.75", got)
	}
}

func TestDay(t *testing.T) {
	now := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC) // a Monday
	table := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, time.March, 4, 16, 27, 0, 0, time.UTC), "Today"},
		{time.Date(2024, time.March, 5, 6, 0, 0, 0, time.UTC), "Tomorrow"},
		{time.Date(2024, time.March, 7, 13, 0, 0, 0, time.UTC), "Thursday"},
		{time.Date(2024, time.March, 14, 13, 0, 0, 0, time.UTC), "03/14"},
	}
	for _, tc := range table {
		t.Run(tc.want, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Day(tc.t, now)); diff != "" {
				t.Errorf("(-want,+got): %s", diff)
			}
		})
	}
}
