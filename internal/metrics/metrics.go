// Package metrics exposes Prometheus instrumentation for the listing core
// and the HTTP surface.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domainerrors "github.com/curatorapp/curator-server/internal/errors"
	"github.com/curatorapp/curator-server/internal/paging"
)

var (
	// Core operations
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curator_operation_duration_seconds",
			Help:    "Duration of listing core operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "kind"},
	)

	OperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_operation_errors_total",
			Help: "Total number of failed listing core operations by error code",
		},
		[]string{"operation", "code"},
	)

	SlugConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_slug_conflict_retries_total",
			Help: "Writes retried after a concurrent writer claimed the derived slug",
		},
	)

	FavoriteToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_favorite_toggles_total",
			Help: "Favorite toggles by resulting state",
		},
		[]string{"state"}, // "added", "removed"
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curator_search_results",
			Help:    "Number of items returned per search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	PageOutOfRange = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_page_out_of_range_total",
			Help: "Listing requests past the last page",
		},
	)

	SearchIndexDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curator_search_index_documents",
			Help: "Documents in the search index after the last rebuild",
		},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curator_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curator_api_active_requests",
			Help: "Requests currently being served",
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// ObserveOperation records the duration and outcome of a core operation.
// Typical use:
//
//	defer metrics.ObserveOperation("list_tags", kind, time.Now(), &err)
func ObserveOperation(operation, kind string, start time.Time, errp *error) {
	OperationDuration.WithLabelValues(operation, kind).Observe(time.Since(start).Seconds())
	if errp != nil && *errp != nil {
		OperationErrors.WithLabelValues(operation, errorCode(*errp)).Inc()
	}
}

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordFavoriteToggle records the state an item ended in.
func RecordFavoriteToggle(added bool) {
	if added {
		FavoriteToggles.WithLabelValues("added").Inc()
		return
	}
	FavoriteToggles.WithLabelValues("removed").Inc()
}

// errorCode keeps label cardinality bounded to the domain codes.
func errorCode(err error) string {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		return string(domainErr.Code)
	}
	var oor *paging.OutOfRangeError
	if errors.As(err, &oor) {
		return "OUT_OF_RANGE"
	}
	return "OTHER"
}
