package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spencer-p/goldenhour/pkg/cache"
	"github.com/spencer-p/goldenhour/pkg/fetch"
	"github.com/spencer-p/goldenhour/pkg/geo"
	"github.com/spencer-p/goldenhour/pkg/weather"
)

const (
	GeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	ForecastURL  = "https://api.open-meteo.com/v1/forecast"
	DATE_FMT     = "2006-01-02"

	// SearchLimit is how many places a name search returns.
	SearchLimit = 10
)

var dailyVariables = []string{
	"temperature_2m_max",
	"temperature_2m_min",
	"precipitation_sum",
	"cloud_cover_mean",
	"weathercode",
}

// Client talks to the geocoding and forecast APIs.
type Client struct {
	GeocodingURL string
	ForecastURL  string
	Language     string

	geocoding *fetch.Client
	forecast  *fetch.Client
}

// NewClient returns a Client using the public endpoints. Responses are kept in
// c, which may be nil.
func NewClient(c cache.Cache) *Client {
	return &Client{
		GeocodingURL: GeocodingURL,
		ForecastURL:  ForecastURL,
		Language:     "en",
		geocoding:    fetch.New("openmeteo-geocoding", c),
		forecast:     fetch.New("openmeteo-forecast", c),
	}
}

// Search returns up to SearchLimit places matching name in the API's order.
func (c *Client) Search(ctx context.Context, name string) ([]geo.Match, error) {
	q := SearchQuery{Name: name, Count: SearchLimit, Language: c.Language}
	addr, err := url.Parse(c.GeocodingURL)
	if err != nil {
		return nil, err
	}
	addr.RawQuery = q.build().Encode()

	var result searchResult
	if err := c.geocoding.GetJSON(ctx, addr, &result); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", name, err)
	}

	matches := make([]geo.Match, 0, len(result.Results))
	for _, r := range result.Results {
		matches = append(matches, geo.Match{
			Name:        r.Name,
			Admin1:      r.Admin1,
			CountryCode: r.CountryCode,
			Lat:         r.Latitude,
			Long:        r.Longitude,
			TimeZone:    r.Timezone,
		})
	}
	return matches, nil
}

// TimeZone asks the forecast API which time zone c lies in.
func (c *Client) TimeZone(ctx context.Context, coord geo.Coordinate) (string, error) {
	var result forecastResult
	q := ForecastQuery{Coordinate: coord, Hourly: []string{"temperature_2m"}}
	if err := c.getForecast(ctx, &q, &result); err != nil {
		return "", err
	}
	if result.Timezone == "" {
		return "", fmt.Errorf("no time zone for %s", coord)
	}
	return result.Timezone, nil
}

// Daily returns the forecast summary for the calendar day date at p. It
// returns nil when the API has no data for the day.
func (c *Client) Daily(ctx context.Context, p geo.Place, date time.Time) (*weather.Daily, error) {
	var result forecastResult
	q := ForecastQuery{
		Coordinate: p.Coordinate,
		TimeZone:   p.TimeZone,
		Start:      date,
		End:        date,
		Daily:      dailyVariables,
	}
	if err := c.getForecast(ctx, &q, &result); err != nil {
		return nil, err
	}

	d := result.Daily
	if len(d.Time) == 0 {
		return nil, nil
	}
	return &weather.Daily{
		Date:     d.Time[0],
		MaxTempC: at(d.TempMax, 0),
		MinTempC: at(d.TempMin, 0),
		PrecipMM: at(d.Precipitation, 0),
		CloudPct: at(d.CloudCover, 0),
		Code:     at(d.WeatherCode, 0),
	}, nil
}

// Hourly returns the hourly cloud cover for the calendar day date at p, or nil
// when there is none.
func (c *Client) Hourly(ctx context.Context, p geo.Place, date time.Time) ([]weather.Hourly, error) {
	var result forecastResult
	q := ForecastQuery{
		Coordinate: p.Coordinate,
		TimeZone:   p.TimeZone,
		Start:      date,
		End:        date,
		Hourly:     []string{"cloud_cover"},
	}
	if err := c.getForecast(ctx, &q, &result); err != nil {
		return nil, err
	}

	loc := p.Location()
	h := result.Hourly
	if len(h.Time) == 0 {
		return nil, nil
	}
	out := make([]weather.Hourly, 0, len(h.Time))
	for i, lt := range h.Time {
		wall := time.Time(lt)
		out = append(out, weather.Hourly{
			Time:  lt.In(loc),
			Hour:  float64(wall.Hour()) + float64(wall.Minute())/60,
			Cloud: at(h.CloudCover, i),
		})
	}
	return out, nil
}

func (c *Client) getForecast(ctx context.Context, q *ForecastQuery, v *forecastResult) error {
	addr, err := url.Parse(c.ForecastURL)
	if err != nil {
		return err
	}
	addr.RawQuery = q.build().Encode()
	if err := c.forecast.GetJSON(ctx, addr, v); err != nil {
		return fmt.Errorf("forecast at %s: %w", q.Coordinate, err)
	}
	return nil
}

func (q *SearchQuery) build() url.Values {
	vals := make(url.Values)
	vals.Add("name", q.Name)
	vals.Add("count", strconv.Itoa(q.Count))
	vals.Add("language", q.Language)
	vals.Add("format", "json")
	return vals
}

func (q *ForecastQuery) build() url.Values {
	vals := make(url.Values)
	vals.Add("latitude", strconv.FormatFloat(q.Coordinate.Lat, 'f', -1, 64))
	vals.Add("longitude", strconv.FormatFloat(q.Coordinate.Long, 'f', -1, 64))
	if q.TimeZone != "" {
		vals.Add("timezone", q.TimeZone)
	} else {
		vals.Add("timezone", "auto")
	}
	if !q.Start.IsZero() {
		vals.Add("start_date", q.Start.Format(DATE_FMT))
	}
	if !q.End.IsZero() {
		vals.Add("end_date", q.End.Format(DATE_FMT))
	}
	if len(q.Daily) > 0 {
		vals.Add("daily", strings.Join(q.Daily, ","))
	}
	if len(q.Hourly) > 0 {
		vals.Add("hourly", strings.Join(q.Hourly, ","))
	}
	return vals
}
