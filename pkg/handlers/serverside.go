package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/spencer-p/goldenhour/pkg/geo"
	"github.com/spencer-p/goldenhour/pkg/history"
	"github.com/spencer-p/goldenhour/pkg/log"
	"github.com/spencer-p/goldenhour/pkg/timetricks"
)

//go:embed static
var content embed.FS

var tips = []string{
	"Type a city + state/country, a ZIP like 67037, or lat,lon like 37.545,-97.268.",
	"If multiple places match, pick the exact one from the list.",
	"15° is a nice proxy for golden-hour portraits.",
}

type TemplateInput struct {
	Query string
	Date  string
	Angle float64

	Status     int
	Error      string
	Report     *Report
	Chart      template.HTML
	Candidates []PlaceLink
	Recent     []PlaceLink
	Tips       []string
}

// PlaceLink selects a place with the current date and angle.
type PlaceLink struct {
	Label string
	Href  string
}

func placeLinks(places []geo.Place, q query) []PlaceLink {
	links := make([]PlaceLink, 0, len(places))
	for _, p := range places {
		v := url.Values{}
		v.Set("label", p.Label)
		v.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
		v.Set("lon", strconv.FormatFloat(p.Long, 'f', -1, 64))
		v.Set("tz", p.TimeZone)
		v.Set("date", q.date.Format(timetricks.DateFormat))
		v.Set("angle", strconv.FormatFloat(q.angle, 'f', -1, 64))
		links = append(links, PlaceLink{Label: p.Label, Href: "?" + v.Encode()})
	}
	return links
}

// makeServerSideIndex serves the golden hour page fully rendered on the
// server. A single match is computed right away; several are listed to pick
// from.
func (s *Server) makeServerSideIndex() http.HandlerFunc {
	indexTemplate := template.Must(template.ParseFS(content, "static/index.template.html"))

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := s.openSession(w, r)

		q, err := s.parseQuery(ctx, r)
		tinput := TemplateInput{
			Query:  q.text,
			Date:   q.date.Format(timetricks.DateFormat),
			Angle:  q.angle,
			Status: http.StatusOK,
			Tips:   tips,
		}

		var place *geo.Place
		switch {
		case err != nil:
			tinput.Status, tinput.Error = errorStatus(err)
		case q.place != nil:
			place = q.place
		case q.text != "":
			set, err := s.Resolver.Find(ctx, q.text)
			switch {
			case err != nil:
				tinput.Status, tinput.Error = errorStatus(err)
				if tinput.Status >= http.StatusInternalServerError {
					log.Errorf("Failed to resolve %q: %v", q.text, err)
				}
			case len(set) == 1:
				place = &set[0]
			default:
				tinput.Candidates = placeLinks(set, q)
			}
		}

		var recent history.Recent
		if place != nil {
			recent = s.remember(ctx, sess, *place)
			rep := s.compute(ctx, *place, q)
			tinput.Report = &rep
			tinput.Chart = template.HTML(rep.chart)
		} else {
			recent = s.recent(ctx, sess)
		}
		tinput.Recent = placeLinks(recent, q)
		saveSession(sess)

		w.Header().Add("Content-Type", "text/html")
		w.WriteHeader(tinput.Status)
		if err := indexTemplate.Execute(w, tinput); err != nil {
			log.Errorf("Failed to execute template: %v", err)
		}
	}
}

// makeClearRecent forgets the visitor's places and sends them back to the
// page.
func (s *Server) makeClearRecent(redirectPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.openSession(w, r)
		s.setRecent(r.Context(), sess, nil)
		saveSession(sess)
		http.Redirect(w, r, pathJoinPreservePrefix(redirectPrefix, "/"), http.StatusFound)
	}
}

func pathJoinPreservePrefix(prefix string, suffix string) string {
	trimmedPrefix := path.Join(prefix, "")
	result := path.Join(prefix, suffix)
	if result == trimmedPrefix {
		return prefix
	}
	return result
}
