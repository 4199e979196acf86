package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// NotesCreatedTotal counts note creations, split by whether the note has an owner.
	NotesCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_created_total",
			Help: "Total number of notes created",
		},
		[]string{"owned"},
	)

	// SessionsPurgedTotal counts expired session rows removed by the purge job.
	SessionsPurgedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_purged_total",
			Help: "Total number of expired sessions purged",
		},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, NotesCreatedTotal, SessionsPurgedTotal)
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /edit/123 -> /edit/{id}, /delete/45 -> /delete/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncNotesCreated increments the note creation counter. owned says whether
// the note got an owner at creation time.
func IncNotesCreated(owned bool) {
	NotesCreatedTotal.WithLabelValues(strconv.FormatBool(owned)).Inc()
}

// AddSessionsPurged adds n purged sessions to the counter.
func AddSessionsPurged(n int64) {
	if n > 0 {
		SessionsPurgedTotal.Add(float64(n))
	}
}
