package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AdeebK1129/GymCrowd-backend/internal/observability"
)

// fetcher is the fetch half of a cycle.
type fetcher interface {
	Fetch(ctx context.Context) ([]Reading, []FetchError)
}

// reconciler is the persist half of a cycle.
type reconciler interface {
	Reconcile(ctx context.Context, readings []Reading) ReconcileResult
}

// CycleStats summarises one full fetch+reconcile cycle.
type CycleStats struct {
	CycleID      string
	Readings     int
	FetchErrors  int
	Inserted     int
	Discarded    int
	InsertFailed int
	Duration     time.Duration
}

// Outcome classifies the cycle for logging and metrics.
func (s CycleStats) Outcome() string {
	switch {
	case s.Readings == 0 && s.FetchErrors > 0:
		return observability.CycleOutcomeFailure
	case s.FetchErrors > 0 || s.InsertFailed > 0 || s.Discarded > 0:
		return observability.CycleOutcomePartial
	default:
		return observability.CycleOutcomeSuccess
	}
}

// Driver runs scrape cycles on a fixed interval. The interval is measured from
// the end of one cycle to the start of the next, so cycles never overlap. The
// driver stops when its context is cancelled; a cycle in flight loses only its
// not-yet-reconciled readings.
type Driver struct {
	fetcher          fetcher
	reconciler       reconciler
	interval         time.Duration
	logger           *slog.Logger
	shutdownComplete chan struct{}
}

// NewDriver constructs a Driver.
func NewDriver(f fetcher, r reconciler, interval time.Duration, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		fetcher:          f,
		reconciler:       r,
		interval:         interval,
		logger:           logger,
		shutdownComplete: make(chan struct{}),
	}
}

// Start launches the scrape loop. It should be called in a goroutine.
func (d *Driver) Start(ctx context.Context) {
	defer close(d.shutdownComplete)

	d.logger.Info("scrape driver started", "interval", d.interval)
	timer := time.NewTimer(0) // first cycle runs immediately
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("scrape driver stopped")
			return
		case <-timer.C:
		}

		d.RunCycle(ctx)
		timer.Reset(d.interval)
	}
}

// Wait blocks until the driver has returned to idle after cancellation.
func (d *Driver) Wait() {
	<-d.shutdownComplete
}

// RunCycle executes one fetch+reconcile pass. Per-gym failures never abort the
// cycle; the cycle outcome is logged and recorded in metrics.
func (d *Driver) RunCycle(ctx context.Context) CycleStats {
	start := time.Now()
	stats := CycleStats{CycleID: uuid.NewString()}

	readings, fetchErrors := d.fetcher.Fetch(ctx)
	stats.Readings = len(readings)
	stats.FetchErrors = len(fetchErrors)
	for _, fe := range fetchErrors {
		observability.FetchErrorsTotal.WithLabelValues(fe.Source).Inc()
		d.logger.Warn("crowd fetch failure", "cycle_id", stats.CycleID, "source", fe.Source, "facility", fe.Facility, "error", fe.Err)
	}
	observability.ReadingsFetched.Add(float64(len(readings)))

	result := d.reconciler.Reconcile(ctx, readings)
	stats.Inserted = result.Inserted
	stats.Discarded = result.Discarded
	stats.InsertFailed = result.Failed
	stats.Duration = time.Since(start)

	outcome := stats.Outcome()
	observability.ScrapeCyclesTotal.WithLabelValues(outcome).Inc()
	observability.CycleDuration.Observe(stats.Duration.Seconds())
	observability.RecordCycleCompleted(time.Now())

	d.logger.Info("scrape cycle completed",
		"cycle_id", stats.CycleID,
		"outcome", outcome,
		"readings", stats.Readings,
		"inserted", stats.Inserted,
		"discarded", stats.Discarded,
		"fetch_errors", stats.FetchErrors,
		"insert_failures", stats.InsertFailed,
		"duration_ms", stats.Duration.Milliseconds())
	return stats
}
