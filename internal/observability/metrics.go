// Package observability defines the Prometheus collectors for the backend.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos.
const (
	// Scrape cycle outcomes.
	CycleOutcomeSuccess = "success"
	CycleOutcomePartial = "partial"
	CycleOutcomeFailure = "failure"
)

var (
	// ScrapeCyclesTotal counts completed scrape cycles by outcome.
	ScrapeCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gymcrowd",
		Subsystem: "scraper",
		Name:      "cycles_total",
		Help:      "Completed scrape cycles by outcome.",
	}, []string{"outcome"})

	// FetchErrorsTotal counts failed source fetches and facility parses.
	FetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gymcrowd",
		Subsystem: "scraper",
		Name:      "fetch_errors_total",
		Help:      "Failed crowd-data fetches by source.",
	}, []string{"source"})

	// ReadingsFetched counts facility readings successfully parsed.
	ReadingsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gymcrowd",
		Subsystem: "scraper",
		Name:      "readings_fetched_total",
		Help:      "Facility readings parsed from crowd-data sources.",
	})

	// ReadingsDiscarded counts readings that matched no catalog gym.
	ReadingsDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gymcrowd",
		Subsystem: "scraper",
		Name:      "readings_discarded_total",
		Help:      "Readings discarded because no catalog gym matched.",
	})

	// SnapshotsInserted counts crowd-data rows appended by the reconciler.
	SnapshotsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gymcrowd",
		Subsystem: "scraper",
		Name:      "snapshots_inserted_total",
		Help:      "Crowd-data snapshot rows appended.",
	})

	// CycleDuration observes wall time of a full fetch+reconcile cycle.
	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gymcrowd",
		Subsystem: "scraper",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of a full scrape cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	lastCycleGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gymcrowd",
		Subsystem: "scraper",
		Name:      "last_cycle_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed scrape cycle.",
	})

	// HTTPRequestsTotal counts API requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gymcrowd",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "API requests by route and status code.",
	}, []string{"route", "status"})

	// HTTPRequestDuration observes API request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gymcrowd",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API request latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})
)

// RecordCycleCompleted updates the last-cycle watermark gauge.
func RecordCycleCompleted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastCycleGauge.Set(float64(ts.Unix()))
}
