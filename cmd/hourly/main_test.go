package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/goldenhour/pkg/weather"
)

func TestPrintClouds(t *testing.T) {
	base := time.Date(2024, time.June, 21, 6, 0, 0, 0, time.UTC)
	hours := []weather.Hourly{
		{Time: base, Hour: 6, Cloud: 0},
		{Time: base.Add(time.Hour), Hour: 7, Cloud: 100},
	}

	var b bytes.Buffer
	if err := printClouds(&b, hours, 30*time.Minute); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	want := "06:00   0.0%\n06:30  50.0%\n07:00 100.0%\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("(-want,+got): %s", diff)
	}
}

func TestPrintCloudsTooShort(t *testing.T) {
	var b bytes.Buffer
	if err := printClouds(&b, []weather.Hourly{{Time: time.Now()}}, time.Hour); err == nil {
		t.Errorf("expected an error for a single point")
	}
}
