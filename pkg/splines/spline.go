// Package splines finds a continuous curve through single time series points.
package splines

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/spencer-p/goldenhour/pkg/weather"
)

// Point is one sample of a time series.
type Point struct {
	Time  time.Time
	Value float64
}

// Curve links one point to the next smoothly. Its derivative at Start and End
// is zero and it is undefined outside Start and End.
type Curve struct {
	Start, End time.Time
	a, b, c, d float64
}

// A Spline is a slice of curves linked together to form a full picture.
type Spline []Curve

// CurvesBetween links consecutive points. Points must be sorted by time.
func CurvesBetween(points []Point) Spline {
	if len(points) < 2 {
		return nil
	}

	curves := make([]Curve, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		curves[i] = curveBetween(
			points[i].Time,
			points[i].Value,
			points[i+1].Time,
			points[i+1].Value)
	}
	return curves
}

// CloudCover builds a spline through hourly cloud cover samples, in time
// order.
func CloudCover(hours []weather.Hourly) Spline {
	points := make([]Point, 0, len(hours))
	for _, h := range hours {
		points = append(points, Point{Time: h.Time, Value: h.Cloud})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	return CurvesBetween(points)
}

// Discrete samples n evenly spaced values across the spline.
func Discrete(spline Spline, n int) []float64 {
	if len(spline) < 1 || n < 2 {
		return nil
	}
	start := spline[0].Start
	end := spline[len(spline)-1].End
	dur := end.Sub(start)
	step := time.Duration(float64(dur) / float64(n-1))

	result := make([]float64, n)
	for i := range result {
		t := start.Add(step * time.Duration(i))
		if i == n-1 {
			t = end
		}
		result[i] = spline.Eval(t)
	}
	return result
}

func curveBetween(time1 time.Time, h1 float64, time2 time.Time, h2 float64) Curve {
	t1 := 0.0
	t2 := xrel(time1, time2)
	denominator := math.Pow(t1-t2, 3.0)
	a := (-2 * (h1 - h2)) / denominator
	b := (3 * (h1 - h2) * (t1 + t2)) / denominator
	c := (-6 * (h1 - h2) * t1 * t2) / denominator
	d := -1 * (-1*h2*math.Pow(t1, 3) + 3*h2*math.Pow(t1, 2)*t2 - 3*h1*t1*math.Pow(t2, 2) + h1*math.Pow(t2, 3)) / denominator
	return Curve{
		Start: time1,
		End:   time2,
		a:     a,
		b:     b,
		c:     c,
		d:     d,
	}
}

// Eval returns the spline's value at t, or NaN outside of it.
func (s Spline) Eval(t time.Time) float64 {
	left, right := 0, len(s)
	for right > left {
		mid := left + (right-left)/2
		if t.Before(s[mid].Start) {
			right = mid
		} else if t.After(s[mid].End) {
			left = mid + 1
		} else {
			return s[mid].Eval(t)
		}
	}
	// Function not defined.
	return math.NaN()
}

func (c Curve) Eval(t time.Time) float64 {
	if t.Before(c.Start) || t.After(c.End) {
		return math.NaN()
	}
	x := xrel(c.Start, t)
	return c.a*x*x*x + c.b*x*x + c.c*x + c.d
}

// xrel computes an x coordinate for t that is relative to origin.
// This reduces large floating point errors by moving x coordinates closer to
// the "origin" (just the start of a particular curve).
func xrel(origin time.Time, t time.Time) float64 {
	return float64(t.Unix() - origin.Unix())
}

func (c Curve) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	_, err := fmt.Fprintf(&buf, `{"start":%d,"end":%d,"a":%g,"b":%g,"c":%g,"d":%g}`,
		c.Start.Unix(), c.End.Unix(),
		c.a, c.b, c.c, c.d)
	return buf.Bytes(), err
}
