// Package visualize draws the hourly cloud chart.
package visualize

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spencer-p/goldenhour/pkg/sunset"
	"github.com/spencer-p/goldenhour/pkg/timetricks"
	"github.com/spencer-p/goldenhour/pkg/weather"
)

const (
	width  = 720
	height = 200

	// Plot margins.
	left   = 40
	right  = 12
	top    = 12
	bottom = 28

	plotWidth  = width - left - right
	plotHeight = height - top - bottom

	morningColor = "#f59e0b"
	eveningColor = "#ec4899"
)

// CloudChart is an SVG of a day's hourly cloud cover with the golden-hour
// crossings marked.
type CloudChart struct {
	hourly []weather.Hourly
	sun    sunset.Result
	loc    *time.Location
}

// NewCloudChart charts hourly on the wall clock of loc. sun may be nil.
func NewCloudChart(hourly []weather.Hourly, sun sunset.Result, loc *time.Location) *CloudChart {
	if loc == nil {
		loc = time.UTC
	}
	return &CloudChart{
		hourly: hourly,
		sun:    sun,
		loc:    loc,
	}
}

// String renders the chart, or "" when there is nothing to draw.
func (img *CloudChart) String() string {
	var b strings.Builder
	if _, err := img.Encode(&b); err != nil {
		return ""
	}
	return b.String()
}

// Encode writes the SVG to w. Charts without hourly data are an error.
func (img *CloudChart) Encode(w io.Writer) (int, error) {
	if len(img.hourly) == 0 {
		return 0, fmt.Errorf("no hourly data")
	}

	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil {
			err = nexterr
		}
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height))
	io(fmt.Fprintf(w, `<rect class="frame" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#e5e7eb"/>`,
		left, top, plotWidth, plotHeight))

	var rise, set, morning, evening time.Time
	if img.sun != nil {
		sunset.Match(img.sun, func(r sunset.Resolved) {
			rise, set, morning, evening = r.Sunrise, r.Sunset, r.Morning, r.Evening
		}, func(u sunset.Unreachable) {
			rise, set = u.Sunrise, u.Sunset
		})
	}

	// Shade the night on either side of the daylight.
	if !rise.IsZero() && !set.IsZero() {
		risex, setx := img.timeToX(rise), img.timeToX(set)
		if risex < setx {
			io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="10%%" x="%d" y="%d" width="%.1f" height="%d"/>`,
				left, top, risex-left, plotHeight))
			io(fmt.Fprintf(w, `<rect class="night" fill="blue" fill-opacity="10%%" x="%.1f" y="%d" width="%.1f" height="%d"/>`,
				setx, top, left+plotWidth-setx, plotHeight))
		}
	}

	// Draw the cloud cover line and its points.
	points := make([]string, 0, len(img.hourly))
	for _, h := range img.hourly {
		points = append(points, fmt.Sprintf("%.1f,%.1f", hourToX(h.Hour), cloudToY(h.Cloud)))
	}
	io(fmt.Fprintf(w, `<path class="clouds" d="M %s" fill="none" stroke="#0ea5e9" stroke-width="2"/>`,
		strings.Join(points, " L ")))
	for _, h := range img.hourly {
		io(fmt.Fprintf(w, `<circle cx="%.1f" cy="%.1f" r="2" fill="#0ea5e9"/>`, hourToX(h.Hour), cloudToY(h.Cloud)))
	}

	// Mark the crossings.
	for _, m := range []struct {
		class string
		at    time.Time
		color string
	}{
		{"morning", morning, morningColor},
		{"evening", evening, eveningColor},
	} {
		if m.at.IsZero() {
			continue
		}
		x := img.timeToX(m.at)
		io(fmt.Fprintf(w, `<line class="%s" x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-dasharray="4 3"/>`,
			m.class, x, top, x, top+plotHeight, m.color))
	}

	// Axes.
	for _, t := range []int{0, 6, 12, 18, 24} {
		x := hourToX(float64(t))
		io(fmt.Fprintf(w, `<line x1="%.1f" x2="%.1f" y1="%d" y2="%d" stroke="#6b7280"/>`,
			x, x, top+plotHeight, top+plotHeight+4))
		io(fmt.Fprintf(w, `<text x="%.1f" y="%d" font-size="10" text-anchor="middle" fill="#6b7280">%d</text>`,
			x, top+plotHeight+16, t))
	}
	for _, v := range []float64{0, 50, 100} {
		y := cloudToY(v)
		io(fmt.Fprintf(w, `<line x1="%d" x2="%d" y1="%.1f" y2="%.1f" stroke="#6b7280"/>`,
			left-4, left, y, y))
		io(fmt.Fprintf(w, `<text x="%d" y="%.1f" font-size="10" text-anchor="end" fill="#6b7280">%.0f%%</text>`,
			left-8, y+3, v))
	}

	io(fmt.Fprintf(w, `</svg>`))
	return n, err
}

func hourToX(hour float64) float64 {
	return left + hour/24*plotWidth
}

func cloudToY(cloud float64) float64 {
	cloud = math.Max(0, math.Min(100, cloud))
	return top + (1-cloud/100)*plotHeight
}

func (img *CloudChart) timeToX(t time.Time) float64 {
	return hourToX(timetricks.HourOfDay(t, img.loc))
}
