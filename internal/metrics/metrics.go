// Package metrics exposes Prometheus instruments for the engagement core and
// the HTTP layer. Everything is registered on the default registry through
// promauto and served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// View outcomes.
const (
	ViewCounted   = "counted"
	ViewDuplicate = "duplicate"
	ViewSkipped   = "skipped" // chapter not published or not part of the book
)

var (
	ViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_chapter_views_total",
			Help: "Chapter views by outcome of the per-session deduplication",
		},
		[]string{"result"},
	)

	EngagementEdgesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_engagement_edges_total",
			Help: "Favourite and follow edge mutations",
		},
		[]string{"kind", "action"}, // kind: favourite, follow; action: added, removed, noop
	)

	ViewMarkersPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folio_view_markers_purged_total",
			Help: "Expired view markers removed by the background purge",
		},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordView records the outcome of one view attempt.
func RecordView(result string) {
	ViewsTotal.WithLabelValues(result).Inc()
}

// RecordEdge records a favourite or follow mutation. changed is false when
// the mutation was a no-op (edge already present, or already absent).
func RecordEdge(kind, action string, changed bool) {
	if !changed {
		action = "noop"
	}
	EngagementEdgesTotal.WithLabelValues(kind, action).Inc()
}

// RecordPurge adds the number of purged view markers.
func RecordPurge(n int64) {
	if n > 0 {
		ViewMarkersPurged.Add(float64(n))
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
