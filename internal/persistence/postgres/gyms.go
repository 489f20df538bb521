package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

const gymColumns = `gym_id, name, location, type, created_at`

// GymRepository persists the gym catalog.
type GymRepository struct {
	pool *pgxpool.Pool
}

// NewGymRepository constructs a GymRepository.
func NewGymRepository(pool *pgxpool.Pool) *GymRepository {
	return &GymRepository{pool: pool}
}

// List returns every gym with nested crowd data, latest snapshot first.
func (r *GymRepository) List(ctx context.Context) ([]domain.GymDetail, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+gymColumns+` FROM gyms ORDER BY gym_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.GymDetail, 0)
	for rows.Next() {
		var detail domain.GymDetail
		if err := scanGymInto(rows, &detail.Gym); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range details {
		snapshots, err := r.listSnapshotsForGym(ctx, details[i].ID)
		if err != nil {
			return nil, err
		}
		details[i].CrowdData = snapshots
	}
	return details, nil
}

// Get returns one gym with nested crowd data, or nil when the id is unknown.
func (r *GymRepository) Get(ctx context.Context, gymID int64) (*domain.GymDetail, error) {
	var detail domain.GymDetail
	row := r.pool.QueryRow(ctx, `SELECT `+gymColumns+` FROM gyms WHERE gym_id=$1`, gymID)
	if err := scanGymInto(row, &detail.Gym); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	snapshots, err := r.listSnapshotsForGym(ctx, gymID)
	if err != nil {
		return nil, err
	}
	detail.CrowdData = snapshots
	return &detail, nil
}

// GetByName resolves a gym by its exact catalog name. Used by the reconciler.
func (r *GymRepository) GetByName(ctx context.Context, name string) (*domain.Gym, error) {
	var gym domain.Gym
	row := r.pool.QueryRow(ctx, `SELECT `+gymColumns+` FROM gyms WHERE name=$1`, name)
	if err := scanGymInto(row, &gym); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &gym, nil
}

// Upsert inserts a gym or refreshes location/type of an existing one. Used by
// the seed step only; the scrape path never creates gyms.
func (r *GymRepository) Upsert(ctx context.Context, gym domain.Gym) (*domain.Gym, error) {
	const stmt = `INSERT INTO gyms (name, location, type)
        VALUES ($1,$2,$3)
        ON CONFLICT (name) DO UPDATE SET location=EXCLUDED.location, type=EXCLUDED.type
        RETURNING ` + gymColumns

	var out domain.Gym
	row := r.pool.QueryRow(ctx, stmt, gym.Name, gym.Location, gym.Type)
	if err := scanGymInto(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GymRepository) listSnapshotsForGym(ctx context.Context, gymID int64) ([]domain.CrowdSnapshot, error) {
	const query = `SELECT crowd_id, gym_id, occupancy, percentage_full, last_updated
        FROM crowd_data WHERE gym_id=$1 ORDER BY last_updated DESC, crowd_id DESC`

	rows, err := r.pool.Query(ctx, query, gymID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

func scanGymInto(row pgx.Row, gym *domain.Gym) error {
	return row.Scan(&gym.ID, &gym.Name, &gym.Location, &gym.Type, &gym.CreatedAt)
}

// SnapshotRepository persists crowd-data snapshots. Append-only.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository constructs a SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Insert appends one snapshot row. Rows are never updated afterwards.
func (r *SnapshotRepository) Insert(ctx context.Context, snapshot domain.CrowdSnapshot) (*domain.CrowdSnapshot, error) {
	const stmt = `INSERT INTO crowd_data (gym_id, occupancy, percentage_full, last_updated)
        VALUES ($1,$2,$3,$4)
        RETURNING crowd_id, gym_id, occupancy, percentage_full, last_updated`

	var out domain.CrowdSnapshot
	row := r.pool.QueryRow(ctx, stmt, snapshot.GymID, snapshot.Occupancy, snapshot.PercentageFull, snapshot.LastUpdated)
	if err := row.Scan(&out.ID, &out.GymID, &out.Occupancy, &out.PercentageFull, &out.LastUpdated); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every snapshot, latest first.
func (r *SnapshotRepository) List(ctx context.Context) ([]domain.CrowdSnapshot, error) {
	const query = `SELECT crowd_id, gym_id, occupancy, percentage_full, last_updated
        FROM crowd_data ORDER BY last_updated DESC, crowd_id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// Get returns one snapshot by id, or nil when unknown.
func (r *SnapshotRepository) Get(ctx context.Context, crowdID int64) (*domain.CrowdSnapshot, error) {
	const query = `SELECT crowd_id, gym_id, occupancy, percentage_full, last_updated
        FROM crowd_data WHERE crowd_id=$1`

	var snap domain.CrowdSnapshot
	row := r.pool.QueryRow(ctx, query, crowdID)
	if err := row.Scan(&snap.ID, &snap.GymID, &snap.Occupancy, &snap.PercentageFull, &snap.LastUpdated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

func scanSnapshots(rows pgx.Rows) ([]domain.CrowdSnapshot, error) {
	snapshots := make([]domain.CrowdSnapshot, 0)
	for rows.Next() {
		var snap domain.CrowdSnapshot
		if err := rows.Scan(&snap.ID, &snap.GymID, &snap.Occupancy, &snap.PercentageFull, &snap.LastUpdated); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
