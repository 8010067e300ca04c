// Package resolve turns free-form location input into candidate places.
//
// Input is tried against a chain of strategies:
//
//  1. literal coordinates ("37.545,-97.268") resolve to a single place;
//  2. five digit postal codes are rewritten to "<town>, <state>";
//  3. everything else is searched by name, retrying with simplified queries
//     when nothing matches.
package resolve

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spencer-p/goldenhour/pkg/geo"
	"github.com/spencer-p/goldenhour/pkg/log"
	"github.com/spencer-p/goldenhour/pkg/postal"
)

var (
	coordinatePattern  = regexp.MustCompile(`^\s*(-?\d+\.?\d*)\s*,\s*(-?\d+\.?\d*)\s*$`)
	postalCodePattern  = regexp.MustCompile(`^\d{5}$`)
	countryHintPattern = regexp.MustCompile(`[,\s][A-Za-z]{2,}$`)
)

// Geocoder searches places by name.
type Geocoder interface {
	Search(ctx context.Context, name string) ([]geo.Match, error)
}

// PostalLookup finds the town of a postal code.
type PostalLookup interface {
	Lookup(ctx context.Context, code string) (postal.Place, error)
}

// ZoneInferrer finds the time zone at a coordinate.
type ZoneInferrer interface {
	TimeZone(ctx context.Context, c geo.Coordinate) (string, error)
}

// CandidateSet is an ordered list of places without duplicates.
type CandidateSet []geo.Place

// Resolver resolves location input. Postal and Zones may be nil, in which case
// postal codes are searched as text and coordinates are given UTC.
type Resolver struct {
	Geocoder Geocoder
	Postal   PostalLookup
	Zones    ZoneInferrer
	// DefaultCountry is appended to queries without a country hint that
	// found nothing. This assumes the market the service runs in; empty
	// disables the retry.
	DefaultCountry string
}

// New returns a Resolver that falls back to US places.
func New(g Geocoder, p PostalLookup, z ZoneInferrer) *Resolver {
	return &Resolver{
		Geocoder:       g,
		Postal:         p,
		Zones:          z,
		DefaultCountry: "US",
	}
}

// query is the state passed along the strategy chain.
type query struct {
	raw  string
	text string
}

// strategy either resolves the query (done) or leaves it, possibly rewritten,
// for the next strategy.
type strategy func(r *Resolver, ctx context.Context, q *query) (set CandidateSet, done bool, err error)

var chain = []strategy{
	(*Resolver).coordinates,
	(*Resolver).postalCode,
	(*Resolver).search,
}

// Resolve returns the places matching raw, possibly none. Only failures of the
// geocoding search are errors.
func (r *Resolver) Resolve(ctx context.Context, raw string) (CandidateSet, error) {
	q := &query{raw: raw, text: strings.TrimSpace(raw)}
	for _, s := range chain {
		set, done, err := s(r, ctx, q)
		if err != nil {
			return nil, err
		}
		if done {
			return set, nil
		}
	}
	return CandidateSet{}, nil
}

// Find is Resolve with ErrNoMatches instead of an empty result.
func (r *Resolver) Find(ctx context.Context, raw string) (CandidateSet, error) {
	set, err := r.Resolve(ctx, raw)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, ErrNoMatches
	}
	return set, nil
}

func (r *Resolver) coordinates(ctx context.Context, q *query) (CandidateSet, bool, error) {
	m := coordinatePattern.FindStringSubmatch(q.text)
	if m == nil {
		return nil, false, nil
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	long, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil || !finite(lat) || !finite(long) {
		return nil, false, nil
	}

	c := geo.Coordinate{Lat: lat, Long: long}
	return CandidateSet{{
		Label:      c.String(),
		Coordinate: c,
		TimeZone:   r.zoneAt(ctx, c),
	}}, true, nil
}

// zoneAt returns the time zone at c, or UTC when it cannot be inferred.
func (r *Resolver) zoneAt(ctx context.Context, c geo.Coordinate) string {
	if r.Zones == nil {
		return geo.UTC
	}
	zone, err := r.Zones.TimeZone(ctx, c)
	switch {
	case err != nil:
		log.Debugf("time zone at %s unknown, using %s: %v", c, geo.UTC, err)
		return geo.UTC
	case zone == "":
		return geo.UTC
	}
	return zone
}

// postalCode rewrites a known postal code to its town and state. Unknown codes
// and lookup failures leave the query as it is.
func (r *Resolver) postalCode(ctx context.Context, q *query) (CandidateSet, bool, error) {
	if r.Postal == nil || !postalCodePattern.MatchString(q.text) {
		return nil, false, nil
	}
	p, err := r.Postal.Lookup(ctx, q.text)
	switch {
	case err != nil:
		log.Debugf("postal lookup of %q failed, searching as text: %v", q.text, err)
		return nil, false, nil
	case p.Name == "" || p.State == "":
		log.Debugf("postal lookup of %q incomplete, searching as text", q.text)
		return nil, false, nil
	}
	q.text = fmt.Sprintf("%s, %s", p.Name, p.State)
	return nil, false, nil
}

// search looks the query up by name, retrying without the part after a comma
// and then with the default country when nothing is found.
func (r *Resolver) search(ctx context.Context, q *query) (CandidateSet, bool, error) {
	text := q.text
	attempts := []string{text}
	if strings.Contains(text, ",") {
		attempts = append(attempts, strings.TrimSpace(strings.SplitN(text, ",", 2)[0]))
	}
	if r.DefaultCountry != "" && !countryHintPattern.MatchString(text) {
		attempts = append(attempts, text+", "+r.DefaultCountry)
	}

	var matches []geo.Match
	for _, a := range attempts {
		var err error
		matches, err = r.Geocoder.Search(ctx, a)
		if err != nil {
			return nil, true, &ServiceError{Err: err}
		}
		if len(matches) > 0 {
			break
		}
	}

	set := make(CandidateSet, 0, len(matches))
	for _, m := range matches {
		set = append(set, place(m))
	}
	return Dedupe(set), true, nil
}

func place(m geo.Match) geo.Place {
	var parts []string
	for _, s := range []string{m.Name, m.Admin1, m.CountryCode} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	tz := m.TimeZone
	if tz == "" {
		tz = geo.UTC
	}
	return geo.Place{
		Label:      strings.Join(parts, ", "),
		Coordinate: geo.Coordinate{Lat: m.Lat, Long: m.Long},
		TimeZone:   tz,
	}
}

// Dedupe drops places whose label and coordinate were already seen, keeping
// the first.
func Dedupe(places []geo.Place) CandidateSet {
	seen := make(map[string]struct{}, len(places))
	out := make(CandidateSet, 0, len(places))
	for _, p := range places {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
