package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/suteetoe/catalogadmin/pkg/config"
)

var (
	// HTTP request metrics (catalogd)
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Sync engine metrics
	FetchesTotal          *prometheus.CounterVec
	FetchDuration         prometheus.Histogram
	StaleResponsesDropped prometheus.Counter
	CoalescedChanges      prometheus.Counter
	FetchErrorsCounter    prometheus.Counter

	// Mutation metrics
	MutationOperationsCounter *prometheus.CounterVec

	// Reference data metrics
	CategoryCacheSize prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_fetches_total",
			Help: "Total number of product list fetches dispatched",
		},
		[]string{"trigger"},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_fetch_duration_seconds",
			Help:    "Duration of product list fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StaleResponsesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_stale_responses_dropped_total",
			Help: "Total number of superseded fetch responses discarded",
		},
	)

	CoalescedChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_coalesced_changes_total",
			Help: "Total number of query changes absorbed by debouncing",
		},
	)

	FetchErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_fetch_errors_total",
			Help: "Total number of failed product list fetches",
		},
	)

	MutationOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_mutation_operations_total",
			Help: "Total number of mutation operations",
		},
		[]string{"operation", "result"},
	)

	CategoryCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_category_cache_size",
			Help: "Number of categories held in the reference data cache",
		},
	)
}

// RecordFetch increments the fetch counter for the given trigger kind.
func RecordFetch(trigger string) {
	if FetchesTotal != nil {
		FetchesTotal.WithLabelValues(trigger).Inc()
	}
}

// TrackFetchDuration returns a function that records the duration of a fetch.
func TrackFetchDuration() func(startTime time.Time) {
	return func(startTime time.Time) {
		if FetchDuration != nil {
			FetchDuration.Observe(time.Since(startTime).Seconds())
		}
	}
}

// RecordStaleResponse increments the stale response counter.
func RecordStaleResponse() {
	if StaleResponsesDropped != nil {
		StaleResponsesDropped.Inc()
	}
}

// RecordCoalescedChange increments the coalesced change counter.
func RecordCoalescedChange() {
	if CoalescedChanges != nil {
		CoalescedChanges.Inc()
	}
}

// RecordFetchError increments the fetch error counter.
func RecordFetchError() {
	if FetchErrorsCounter != nil {
		FetchErrorsCounter.Inc()
	}
}

// RecordMutationOperation increments the counter for mutation operations
func RecordMutationOperation(operation, result string) {
	if MutationOperationsCounter != nil {
		MutationOperationsCounter.WithLabelValues(operation, result).Inc()
	}
}

// SetCategoryCacheSize updates the category cache gauge.
func SetCategoryCacheSize(n int) {
	if CategoryCacheSize != nil {
		CategoryCacheSize.Set(float64(n))
	}
}
