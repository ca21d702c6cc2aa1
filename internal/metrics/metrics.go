package metrics

import (
	"strconv"
	"sync"

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

	// EntriesSubmitted counts timesheet entries appended through the submit endpoint.
	EntriesSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "timesheet_entries_submitted_total",
			Help: "Total number of timesheet entries submitted by employees",
		},
	)

	// MailSent counts outbound mail attempts by outcome (ok, error, disabled).
	MailSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_sent_total",
			Help: "Total number of outbound mail attempts by outcome",
		},
		[]string{"status"},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, EntriesSubmitted, MailSent)
	})
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncEntriesSubmitted increments the submitted-entries counter.
func IncEntriesSubmitted() {
	EntriesSubmitted.Inc()
}

// IncMailSent increments the mail counter for the given outcome.
func IncMailSent(status string) {
	MailSent.WithLabelValues(status).Inc()
}
