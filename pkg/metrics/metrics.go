package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spencer-p/goldenhour/pkg/log"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "goldenhour",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)
	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "upstream_latency",
			Subsystem: "goldenhour",
			Help:      "Latency of requests to upstream APIs in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4},
		},
		[]string{"upstream", "code"},
	)
	solarOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "solar_outcomes_total",
			Subsystem: "goldenhour",
			Help:      "Computed days by outcome.",
		},
		[]string{"outcome"},
	)
	visitorRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "visitor_requests_total",
			Subsystem: "goldenhour",
			Help:      "Page views split by returning and new visitors.",
		},
		[]string{"visitor"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		upstreamLatency,
		solarOutcomes,
		visitorRequests,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveUpstream records one request to an upstream API. Code is "0" when no
// response arrived.
func ObserveUpstream(upstream, code string, latency float64) {
	upstreamLatency.With(prometheus.Labels{
		"upstream": upstream,
		"code":     code,
	}).Observe(latency)
}

// ObserveSolarOutcome counts a computed day, e.g. "resolved" or
// "angle_never_reached".
func ObserveSolarOutcome(outcome string) {
	solarOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveUserRequest counts a page view by a visitor, identified by any
// session value. A nil id is a new visitor.
func ObserveUserRequest(id any) {
	if id == nil {
		visitorRequests.WithLabelValues("new").Inc()
		return
	}
	visitorRequests.WithLabelValues("returning").Inc()
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, strconv.Itoa(rec.code), time.Since(t).Seconds())
			log.Infow("request", "verb", verb, "path", path, "code", rec.code, "dur", time.Since(t))
		}()

		next.ServeHTTP(rec, r)
	})
}
