// Package geo holds the place records shared by location resolution and the
// solar computations.
package geo

import (
	"fmt"
	"time"
)

// UTC is the zone name used whenever a time zone cannot be determined.
const UTC = "UTC"

// Coordinate is a lat/long pair on the Earth in degrees.
type Coordinate struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"lon"`
}

// Valid reports whether the coordinate is within the lat/long ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Long >= -180 && c.Long <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Long)
}

// Place is a coordinate matched with a display label and its time zone.
type Place struct {
	Label      string `json:"label"`
	Coordinate `json:"coordinate"`
	TimeZone   string `json:"tz"`
}

// Location loads the place's time zone. Unknown or empty zones are UTC.
func (p Place) Location() *time.Location {
	if p.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Key identifies a place by its label and exact coordinate.
func (p Place) Key() string {
	return fmt.Sprintf("%s|%v|%v", p.Label, p.Lat, p.Long)
}

// Match is one result of a geocoding search.
type Match struct {
	Name        string
	Admin1      string
	CountryCode string
	Lat, Long   float64
	TimeZone    string
}
