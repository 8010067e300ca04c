// Package handlers serves the golden hour page and its JSON API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/spencer-p/goldenhour/pkg/geo"
	"github.com/spencer-p/goldenhour/pkg/history"
	"github.com/spencer-p/goldenhour/pkg/log"
	"github.com/spencer-p/goldenhour/pkg/meta"
	"github.com/spencer-p/goldenhour/pkg/metrics"
	"github.com/spencer-p/goldenhour/pkg/resolve"
	"github.com/spencer-p/goldenhour/pkg/sunset"
	"github.com/spencer-p/goldenhour/pkg/timetricks"
	"github.com/spencer-p/goldenhour/pkg/visualize"
	"github.com/spencer-p/goldenhour/pkg/weather"
)

const (
	defaultAngle = 15.0
	minAngle     = 0.0
	maxAngle     = 89.0
	maxDays      = 14

	// defaultWeatherTimeout bounds the forecast requests of one page.
	defaultWeatherTimeout = 4 * time.Second
)

// Server holds the dependencies of the handlers. Weather and History may be
// nil.
type Server struct {
	Resolver *resolve.Resolver
	Engine   *sunset.Engine
	Weather  weather.Source
	Sessions *history.SessionStore
	History  history.Store
	// Now is the clock used for default dates.
	Now func() time.Time
	// WeatherTimeout bounds the forecast requests. Zero means
	// defaultWeatherTimeout.
	WeatherTimeout time.Duration
}

// Register adds the page, API and static routes to r.
func Register(r *mux.Router, prefix string, s *Server) {
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.WeatherTimeout == 0 {
		s.WeatherTimeout = defaultWeatherTimeout
	}
	r.Handle("/", s.makeServerSideIndex())
	r.HandleFunc("/api/v1/places", s.servePlaces).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/goldenhour", s.serveGoldenHour).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/recent", s.serveRecent).Methods(http.MethodGet, http.MethodDelete)
	r.HandleFunc("/recent/clear", s.makeClearRecent(prefix)).Methods(http.MethodPost)
	r.PathPrefix("/static/").Handler(http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.FileServer(http.FS(content))))
}

// badRequest is an error in the request parameters.
type badRequest struct {
	msg string
}

func (e badRequest) Error() string {
	return e.msg
}

func badRequestf(format string, args ...any) error {
	return badRequest{msg: fmt.Sprintf(format, args...)}
}

// query holds the parsed parameters shared by the page and the API.
type query struct {
	text  string
	place *geo.Place
	date  time.Time
	angle float64
	days  int
}

func (s *Server) parseQuery(ctx context.Context, r *http.Request) (query, error) {
	q := query{
		text:  strings.TrimSpace(r.FormValue("q")),
		date:  timetricks.UTCDate(s.Now()),
		angle: defaultAngle,
		days:  1,
	}

	if v := r.FormValue("date"); v != "" {
		d, err := timetricks.ParseDate(v)
		if err != nil {
			return q, badRequestf("Invalid date %q, want YYYY-MM-DD.", v)
		}
		q.date = d
	}
	if v := r.FormValue("angle"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(a) || a < minAngle || a > maxAngle {
			return q, badRequestf("Invalid angle %q, want %g to %g degrees.", v, minAngle, maxAngle)
		}
		q.angle = a
	}
	if v := r.FormValue("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxDays {
			return q, badRequestf("Invalid days %q, want 1 to %d.", v, maxDays)
		}
		q.days = n
	}

	lat, lon := r.FormValue("lat"), r.FormValue("lon")
	if lat == "" && lon == "" {
		return q, nil
	}
	p, err := s.placeFromParams(ctx, lat, lon, r.FormValue("label"), r.FormValue("tz"))
	if err != nil {
		return q, err
	}
	q.place = &p
	return q, nil
}

// placeFromParams builds the place a visitor picked. A missing time zone is
// inferred like for typed coordinates.
func (s *Server) placeFromParams(ctx context.Context, latStr, lonStr, label, tz string) (geo.Place, error) {
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lon, err2 := strconv.ParseFloat(lonStr, 64)
	c := geo.Coordinate{Lat: lat, Long: lon}
	if err1 != nil || err2 != nil || !c.Valid() {
		return geo.Place{}, badRequestf("Invalid coordinate %q, %q.", latStr, lonStr)
	}

	p := geo.Place{Label: label, Coordinate: c, TimeZone: tz}
	if p.TimeZone == "" {
		set, err := s.Resolver.Resolve(ctx, strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lon, 'f', -1, 64))
		if err == nil && len(set) == 1 {
			p.TimeZone = set[0].TimeZone
		} else {
			p.TimeZone = geo.UTC
		}
	}
	if p.Label == "" {
		p.Label = c.String()
	}
	return p, nil
}

// compute runs the engine for each requested day and fetches the first day's
// weather. Forecasts that miss WeatherTimeout are dropped.
func (s *Server) compute(ctx context.Context, p geo.Place, q query) Report {
	loc := p.Location()
	results := s.Engine.ComputeDays(sunset.Query{Coordinate: p.Coordinate, Date: q.date, Angle: q.angle}, q.days)

	var forecast weather.Report
	if s.Weather != nil {
		wctx, cancel := context.WithTimeout(ctx, s.WeatherTimeout)
		forecast = weather.Fetch(wctx, s.Weather, p, q.date)
		cancel()
	}

	rep := Report{Place: &p, Weather: newWeather(forecast)}
	for i, r := range results {
		metrics.ObserveSolarOutcome(outcome(r))
		date := q.date.AddDate(0, 0, i)
		day := NewDay(date, r, loc)

		cond := meta.Conditions{Sun: r, Location: loc}
		if i == 0 {
			cond.Weather = forecast
		}
		day.Windows = meta.GoldenHours(cond)
		rep.Days = append(rep.Days, day)
	}
	if len(results) > 0 {
		rep.chart = visualize.NewCloudChart(forecast.Hourly, results[0], loc).String()
	}
	return rep
}

// recent returns the visitor's places, preferring the store over the cookie.
func (s *Server) recent(ctx context.Context, sess *history.Session) history.Recent {
	if s.History != nil {
		r, err := s.History.Recent(ctx, sess.Visitor())
		if err != nil {
			log.Warnf("Failed to load recent places: %v", err)
		} else if len(r) > 0 {
			return r
		}
	}
	return sess.Recent()
}

func (s *Server) setRecent(ctx context.Context, sess *history.Session, r history.Recent) {
	sess.SetRecent(r)
	if s.History != nil {
		if err := s.History.Save(ctx, sess.Visitor(), r); err != nil {
			log.Warnf("Failed to save recent places: %v", err)
		}
	}
}

func (s *Server) remember(ctx context.Context, sess *history.Session, p geo.Place) history.Recent {
	r := s.recent(ctx, sess).Add(p)
	s.setRecent(ctx, sess, r)
	return r
}

func (s *Server) openSession(w http.ResponseWriter, r *http.Request) *history.Session {
	sess := s.Sessions.Open(w, r)
	metrics.ObserveUserRequest(sess.KnownVisitor())
	return sess
}

func saveSession(sess *history.Session) {
	if err := sess.Save(); err != nil {
		log.Warnf("Failed to save session: %v", err)
	}
}

func (s *Server) servePlaces(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.FormValue("q"))
	if text == "" {
		writeError(w, badRequestf("Missing q."))
		return
	}
	set, err := s.Resolver.Find(r.Context(), text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) serveGoldenHour(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.openSession(w, r)

	q, err := s.parseQuery(ctx, r)
	if err != nil {
		saveSession(sess)
		writeError(w, err)
		return
	}

	var place geo.Place
	switch {
	case q.place != nil:
		place = *q.place
	case q.text != "":
		set, err := s.Resolver.Find(ctx, q.text)
		if err != nil {
			saveSession(sess)
			writeError(w, err)
			return
		}
		if len(set) > 1 {
			saveSession(sess)
			writeJSON(w, http.StatusOK, Report{Candidates: set})
			return
		}
		place = set[0]
	default:
		saveSession(sess)
		writeError(w, badRequestf("Missing q, or lat and lon."))
		return
	}

	s.remember(ctx, sess, place)
	saveSession(sess)
	writeJSON(w, http.StatusOK, s.compute(ctx, place, q))
}

func (s *Server) serveRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.openSession(w, r)

	if r.Method == http.MethodDelete {
		s.setRecent(ctx, sess, nil)
		saveSession(sess)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	recent := s.recent(ctx, sess)
	saveSession(sess)
	if recent == nil {
		recent = history.Recent{}
	}
	writeJSON(w, http.StatusOK, recent)
}

// errorStatus maps an error to its HTTP status and the message shown to
// visitors.
func errorStatus(err error) (int, string) {
	var se *resolve.ServiceError
	var br badRequest
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest, br.msg
	case errors.Is(err, resolve.ErrNoMatches):
		return http.StatusNotFound, "No matches found."
	case errors.As(err, &se):
		if code := se.Status(); code != 0 {
			return http.StatusBadGateway, fmt.Sprintf("Geocoding failed (%d).", code)
		}
		return http.StatusBadGateway, "Geocoding failed."
	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}

func writeError(w http.ResponseWriter, err error) {
	code, msg := errorStatus(err)
	if code >= http.StatusInternalServerError {
		log.Errorf("Request failed: %v", err)
	}
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("Failed to encode JSON result: %v", err)
	}
}
