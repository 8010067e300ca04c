package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/spencer-p/goldenhour/pkg/geo"
	"github.com/spencer-p/goldenhour/pkg/handlers"
	"github.com/spencer-p/goldenhour/pkg/resolve"
	"github.com/spencer-p/goldenhour/pkg/sunset"
)

var (
	day0 = time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	cdt  = time.FixedZone("CDT", -5*60*60)
)

func at(h, m int) time.Time {
	return time.Date(2024, time.June, 21, h, m, 0, 0, cdt)
}

func TestChoose(t *testing.T) {
	set := resolve.CandidateSet{{Label: "a"}, {Label: "b"}}
	table := []struct {
		name string
		set  resolve.CandidateSet
		pick int
		want string
		err  bool
	}{
		{"single", set[:1], 0, "a", false},
		{"ambiguous", set, 0, "", true},
		{"picked", set, 2, "b", false},
		{"out of range", set, 3, "", true},
		{"negative", set, -1, "", true},
	}
	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, err := choose(tc.set, tc.pick)
			if (err != nil) != tc.err {
				t.Fatalf("err = %v, want error %v", err, tc.err)
			}
			if got.Label != tc.want {
				t.Errorf("got %q, want %q", got.Label, tc.want)
			}
		})
	}
}

func TestPrintDay(t *testing.T) {
	now := at(9, 0)
	table := []struct {
		name string
		r    sunset.Result
		want string
	}{{
		name: "resolved",
		r: sunset.Resolved{
			Sunrise:   at(6, 8),
			Morning:   at(6, 40),
			SolarNoon: at(13, 28),
			Evening:   at(20, 16),
			Sunset:    at(20, 48),
			Angle:     6,
		},
		want: "2024-06-21\tsunrise 6:08 AM\tmorning 6:40 AM\tnoon 1:28 PM\tevening 8:16 PM\tsunset 8:48 PM\n" +
			"\tmorning: Today at 6:08 AM until 6:40 AM, the sun is below 6°\n" +
			"\tevening: Today at 8:16 PM until 8:48 PM, the sun is below 6°\n",
	}, {
		name: "evening only",
		r:    sunset.Resolved{SolarNoon: at(13, 28), Evening: at(20, 16), Angle: 6},
		want: "2024-06-21\tsunrise —\tmorning —\tnoon 1:28 PM\tevening 8:16 PM\tsunset —\n",
	}, {
		name: "unreachable",
		r:    sunset.Unreachable{Reason: sunset.NoCrossingFound, Message: "Couldn't find crossings today; this can happen near the poles."},
		want: "2024-06-21\tCouldn't find crossings today; this can happen near the poles.\n",
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			var b bytes.Buffer
			printDay(&b, day0, tc.r, cdt, now)
			if diff := cmp.Diff(tc.want, b.String()); diff != "" {
				t.Errorf("(-want,+got): %s", diff)
			}
		})
	}
}

func TestPrintCandidates(t *testing.T) {
	var b bytes.Buffer
	printCandidates(&b, resolve.CandidateSet{{
		Label:      "Derby, Kansas, US",
		Coordinate: geo.Coordinate{Lat: 37.54557, Long: -97.26893},
		TimeZone:   "America/Chicago",
	}})
	want := "1  Derby, Kansas, US  37.5456, -97.2689  America/Chicago\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("(-want,+got): %s", diff)
	}
}

func TestPrintJSON(t *testing.T) {
	alt := 10.0
	place := geo.Place{Label: "Derby, Kansas, US", TimeZone: "America/Chicago"}
	results := []sunset.Result{
		sunset.Resolved{Sunrise: at(6, 8), Morning: at(6, 40), SolarNoon: at(13, 28), Evening: at(20, 16), Sunset: at(20, 48), Angle: 6},
		sunset.Unreachable{Reason: sunset.AngleNeverReached, Message: "too low", SolarNoon: at(13, 28), NoonAltitude: &alt},
	}

	var b bytes.Buffer
	require.NoError(t, printJSON(&b, place, day0, results))
	if strings.Contains(b.String(), "0001-01-01") {
		t.Errorf("absent times encoded as zero times: %s", b.String())
	}

	var rep handlers.Report
	require.NoError(t, json.Unmarshal(b.Bytes(), &rep))
	require.Len(t, rep.Days, 2)

	table := []struct {
		date, status, reason string
		hasMorning           bool
		windows              int
	}{
		{"2024-06-21", "resolved", "", true, 2},
		{"2024-06-22", "unreachable", sunset.AngleNeverReached.String(), false, 0},
	}
	for i, tc := range table {
		d := rep.Days[i]
		if d.Date != tc.date || d.Status != tc.status || d.Reason != tc.reason {
			t.Errorf("day %d = %s %s %s, want %s %s %s", i, d.Date, d.Status, d.Reason, tc.date, tc.status, tc.reason)
		}
		if (d.Morning != nil) != tc.hasMorning {
			t.Errorf("day %d: morning = %v", i, d.Morning)
		}
		if len(d.Windows) != tc.windows {
			t.Errorf("day %d: got %d windows, want %d", i, len(d.Windows), tc.windows)
		}
	}
	if rep.Days[1].Sunrise != nil || rep.Days[1].NoonAltitude == nil || *rep.Days[1].NoonAltitude != 10 {
		t.Errorf("unreachable day = %+v", rep.Days[1])
	}
}
