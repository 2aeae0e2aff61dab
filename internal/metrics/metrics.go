package metrics

import (
	"regexp"
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

	// DonationsTotal counts accepted donations.
	DonationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "donations_total",
			Help: "Total number of accepted donations",
		},
	)

	// DonatedAmountTotal accumulates the amount donated across all projects.
	DonatedAmountTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "donated_amount_total",
			Help: "Total amount donated across all projects",
		},
	)

	// MilestonesReconciled counts milestone flags fixed up by the reconciler.
	MilestonesReconciled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "milestones_reconciled_total",
			Help: "Milestone flags settled by the background reconciler",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, DonationsTotal, DonatedAmountTotal, MilestonesReconciled)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /projects/123/donate -> /projects/{id}/donate.
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

// RecordDonation records one accepted donation of the given amount.
func RecordDonation(amount float64) {
	DonationsTotal.Inc()
	DonatedAmountTotal.Add(amount)
}
