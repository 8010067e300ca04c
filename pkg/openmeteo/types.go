package openmeteo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spencer-p/goldenhour/pkg/geo"
)

const localTimeFormat = "2006-01-02T15:04"

// Verify the custom types can be unmarshaled
var _ json.Unmarshaler = new(LocalTime)

// SearchQuery looks up places by name.
type SearchQuery struct {
	Name     string
	Count    int
	Language string
}

// ForecastQuery asks for forecast variables at a coordinate. An empty
// TimeZone asks the API to infer it.
type ForecastQuery struct {
	Coordinate geo.Coordinate
	TimeZone   string
	// Start and End are calendar dates; zero means the API default.
	Start, End time.Time
	Daily      []string
	Hourly     []string
}

type searchResult struct {
	Results []struct {
		Name        string  `json:"name"`
		Admin1      string  `json:"admin1"`
		CountryCode string  `json:"country_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Timezone    string  `json:"timezone"`
	} `json:"results"`
}

type forecastResult struct {
	Timezone string `json:"timezone"`
	Daily    struct {
		Time          []string   `json:"time"`
		TempMax       []*float64 `json:"temperature_2m_max"`
		TempMin       []*float64 `json:"temperature_2m_min"`
		Precipitation []*float64 `json:"precipitation_sum"`
		CloudCover    []*float64 `json:"cloud_cover_mean"`
		WeatherCode   []*int     `json:"weathercode"`
	} `json:"daily"`
	Hourly struct {
		Time       []LocalTime `json:"time"`
		CloudCover []*float64  `json:"cloud_cover"`
	} `json:"hourly"`
}

// LocalTime is a wall clock time without a zone, as the forecast API reports
// it. It decodes as UTC; see In.
type LocalTime time.Time

func (t *LocalTime) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("forecast time %q not string: %w", buf, err)
	}
	parsed, err := time.ParseInLocation(localTimeFormat, s, time.UTC)
	if err != nil {
		return fmt.Errorf("forecast time %q not in fmt %q: %w", s, localTimeFormat, err)
	}
	*t = LocalTime(parsed)
	return nil
}

// In reads the wall clock time in loc.
func (t LocalTime) In(loc *time.Location) time.Time {
	u := time.Time(t)
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), 0, 0, loc)
}

func at[T any](vals []*T, i int) T {
	var zero T
	if i >= len(vals) || vals[i] == nil {
		return zero
	}
	return *vals[i]
}
