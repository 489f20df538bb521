package scraper

import (
	"context"
	"log/slog"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
	"github.com/AdeebK1129/GymCrowd-backend/internal/observability"
)

// GymResolver resolves a facility name against the gym catalog. A nil gym with
// a nil error means no catalog entry matches.
type GymResolver interface {
	GetByName(ctx context.Context, name string) (*domain.Gym, error)
}

// SnapshotAppender appends crowd-data rows.
type SnapshotAppender interface {
	Insert(ctx context.Context, snapshot domain.CrowdSnapshot) (*domain.CrowdSnapshot, error)
}

// Reconciler matches fetched readings to gym identities and appends one
// snapshot per matched reading. It never mutates existing snapshots and never
// creates gyms.
type Reconciler struct {
	gyms      GymResolver
	snapshots SnapshotAppender
	logger    *slog.Logger
}

// NewReconciler constructs a Reconciler.
func NewReconciler(gyms GymResolver, snapshots SnapshotAppender, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{gyms: gyms, snapshots: snapshots, logger: logger}
}

// ReconcileResult summarises one reconcile pass.
type ReconcileResult struct {
	Inserted  int
	Discarded int // readings with no matching catalog gym
	Failed    int // readings lost to store errors
}

// Reconcile processes each reading independently: resolve the gym by name,
// append a snapshot on match, log and discard on no match. A failure on one
// reading never aborts the rest.
func (r *Reconciler) Reconcile(ctx context.Context, readings []Reading) ReconcileResult {
	var result ReconcileResult

	for _, reading := range readings {
		if err := ctx.Err(); err != nil {
			result.Failed += 1
			r.logger.Warn("reconcile interrupted", "error", err)
			return result
		}

		gym, err := r.gyms.GetByName(ctx, reading.FacilityName)
		if err != nil {
			result.Failed++
			r.logger.Error("gym lookup failed", "facility", reading.FacilityName, "error", err)
			continue
		}
		if gym == nil {
			result.Discarded++
			observability.ReadingsDiscarded.Inc()
			r.logger.Warn("no matching gym for reading", "facility", reading.FacilityName)
			continue
		}

		_, err = r.snapshots.Insert(ctx, domain.CrowdSnapshot{
			GymID:          gym.ID,
			Occupancy:      reading.Occupancy,
			PercentageFull: reading.PercentageFull,
			LastUpdated:    reading.LastUpdated,
		})
		if err != nil {
			result.Failed++
			r.logger.Error("snapshot insert failed", "gym", gym.Name, "error", err)
			continue
		}

		result.Inserted++
		observability.SnapshotsInserted.Inc()
		r.logger.Debug("snapshot appended",
			"gym", gym.Name,
			"occupancy", reading.Occupancy,
			"last_updated", reading.LastUpdated)
	}
	return result
}
