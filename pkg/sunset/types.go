package sunset

import (
	"fmt"
	"time"

	"github.com/spencer-p/goldenhour/pkg/geo"
)

// Query asks for the sun events of one calendar day.
type Query struct {
	Coordinate geo.Coordinate
	// Date is the UTC midnight starting the calendar day.
	Date time.Time
	// Angle is the target altitude in degrees.
	Angle float64
}

// Result is either Resolved or Unreachable.
type Result interface {
	result()
}

// Reason explains why no crossing of the target angle is reported.
type Reason int

const (
	// SolarNoonUnavailable means the provider could not place solar noon.
	SolarNoonUnavailable Reason = iota
	// AngleNeverReached means the Sun peaks below the target angle.
	AngleNeverReached
	// NoCrossingFound means no crossing was bracketed between sunrise and
	// sunset, which happens near the poles.
	NoCrossingFound
)

func (r Reason) String() string {
	switch r {
	case SolarNoonUnavailable:
		return "solar_noon_unavailable"
	case AngleNeverReached:
		return "angle_never_reached"
	case NoCrossingFound:
		return "no_crossing_found"
	default:
		return "invalid"
	}
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Resolved holds the crossings of the target angle for a day. Zero times are
// absent; at least one of Morning and Evening is set.
type Resolved struct {
	Sunrise   time.Time
	SolarNoon time.Time
	Sunset    time.Time
	Morning   time.Time
	Evening   time.Time
	Angle     float64
}

// Unreachable explains a day with no usable crossing. Zero times are absent
// and NoonAltitude is nil when solar noon is unknown.
type Unreachable struct {
	Reason       Reason
	Message      string
	Sunrise      time.Time
	SolarNoon    time.Time
	Sunset       time.Time
	NoonAltitude *float64 // degrees
}

func (Resolved) result()    {}
func (Unreachable) result() {}

// Match calls exactly one of the functions depending on the variant of r.
func Match(r Result, resolved func(Resolved), unreachable func(Unreachable)) {
	switch v := r.(type) {
	case Resolved:
		resolved(v)
	case Unreachable:
		unreachable(v)
	default:
		panic(fmt.Sprintf("sunset: unknown result %T", r))
	}
}
