// Package meta derives golden-hour windows from the sun events and forecast
// of a day.
package meta

import (
	"fmt"
	"math"
	"time"

	"github.com/spencer-p/goldenhour/pkg/splines"
	"github.com/spencer-p/goldenhour/pkg/sunset"
	"github.com/spencer-p/goldenhour/pkg/weather"
)

const clearSkyThresh = 25.0 // percent

// Conditions is the set of data we can perform meta analysis on.
type Conditions struct {
	Sun     sunset.Result
	Weather weather.Report
	// Location is the zone windows are reported in.
	Location *time.Location
}

// GoldenHours returns the windows between sunrise and the morning crossing
// and between the evening crossing and sunset. Days without crossings have no
// windows.
func GoldenHours(c Conditions) []Window {
	res, ok := c.Sun.(sunset.Resolved)
	if !ok {
		return nil
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	clouds := splines.CloudCover(c.Weather.Hourly)

	result := []Window{}
	if w, ok := window(Morning, res.Sunrise, res.Morning, res.Angle, clouds, loc); ok {
		result = append(result, w)
	}
	if w, ok := window(Evening, res.Evening, res.Sunset, res.Angle, clouds, loc); ok {
		result = append(result, w)
	}
	return result
}

func window(kind Kind, start, end time.Time, angle float64, clouds splines.Spline, loc *time.Location) (Window, bool) {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return Window{}, false
	}
	w := Window{
		Kind:     kind,
		Time:     start.In(loc),
		Duration: end.Sub(start),
		Reasons:  []string{fmt.Sprintf("the sun is below %g°", angle)},
	}

	mid := start.Add(w.Duration / 2)
	if cloud := clouds.Eval(mid); !math.IsNaN(cloud) {
		cloud = math.Max(0, math.Min(100, cloud))
		w.Cloud = &cloud
		if cloud <= clearSkyThresh {
			w.Reasons = append(w.Reasons, "skies are mostly clear")
		} else {
			w.Reasons = append(w.Reasons, fmt.Sprintf("clouds cover %.0f%%", cloud))
		}
	}
	return w, true
}
