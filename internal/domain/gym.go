// Package domain defines the business logic for the GymCrowd backend.
package domain

import (
	"context"
	"time"
)

// Gym is a row of the seeded gym catalog. Reference data: created by the seed
// step, rarely updated.
type Gym struct {
	ID        int64
	Name      string
	Location  string
	Type      string
	CreatedAt time.Time
}

// CrowdSnapshot is one timestamped occupancy reading for a gym. Snapshots are
// append-only: a scrape cycle inserts new rows and never rewrites old ones.
type CrowdSnapshot struct {
	ID             int64
	GymID          int64
	Occupancy      int
	PercentageFull *float64 // nil when the source reported no percentage
	LastUpdated    time.Time
}

// GymDetail bundles a gym with its snapshots ordered latest first.
type GymDetail struct {
	Gym
	CrowdData []CrowdSnapshot
}

// GymRepository captures persistence operations for the gym catalog.
type GymRepository interface {
	List(ctx context.Context) ([]GymDetail, error)
	Get(ctx context.Context, gymID int64) (*GymDetail, error)
	GetByName(ctx context.Context, name string) (*Gym, error)
	Upsert(ctx context.Context, gym Gym) (*Gym, error)
}

// SnapshotRepository captures persistence operations for crowd data.
type SnapshotRepository interface {
	Insert(ctx context.Context, snapshot CrowdSnapshot) (*CrowdSnapshot, error)
	List(ctx context.Context) ([]CrowdSnapshot, error)
	Get(ctx context.Context, crowdID int64) (*CrowdSnapshot, error)
}

// GymService serves the read-only gym and crowd-data surface.
type GymService struct {
	gyms      GymRepository
	snapshots SnapshotRepository
}

// NewGymService constructs a GymService.
func NewGymService(gyms GymRepository, snapshots SnapshotRepository) *GymService {
	return &GymService{gyms: gyms, snapshots: snapshots}
}

// ListGyms returns the catalog with nested crowd data, latest snapshot first.
func (s *GymService) ListGyms(ctx context.Context) ([]GymDetail, error) {
	return s.gyms.List(ctx)
}

// GetGym returns one gym with nested crowd data. The first snapshot is the
// current crowd level (max by last_updated).
func (s *GymService) GetGym(ctx context.Context, gymID int64) (*GymDetail, error) {
	detail, err := s.gyms.Get(ctx, gymID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNotFound
	}
	return detail, nil
}

// ListSnapshots returns every raw snapshot.
func (s *GymService) ListSnapshots(ctx context.Context) ([]CrowdSnapshot, error) {
	return s.snapshots.List(ctx)
}

// GetSnapshot returns one raw snapshot by id.
func (s *GymService) GetSnapshot(ctx context.Context, crowdID int64) (*CrowdSnapshot, error) {
	snap, err := s.snapshots.Get(ctx, crowdID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNotFound
	}
	return snap, nil
}
