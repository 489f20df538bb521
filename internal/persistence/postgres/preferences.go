package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AdeebK1129/GymCrowd-backend/internal/domain"
)

const preferenceQuery = `SELECT p.preference_id, p.user_id, p.max_crowd_level, p.created_at,
        g.gym_id, g.name, g.location, g.type, g.created_at
    FROM user_preferences p JOIN gyms g ON g.gym_id = p.gym_id`

// PreferenceRepository persists crowd-level preferences.
type PreferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository constructs a PreferenceRepository.
func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

// ListByUser returns the user's preferences with nested gym data.
func (r *PreferenceRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Preference, error) {
	return listPreferencesByUser(ctx, r.pool, userID)
}

// Create inserts a preference, surfacing domain.ErrPreferenceExists when the
// (user, gym) pair already has a row.
func (r *PreferenceRepository) Create(ctx context.Context, userID, gymID int64, maxCrowdLevel float64) (*domain.Preference, error) {
	const stmt = `INSERT INTO user_preferences (user_id, gym_id, max_crowd_level)
        VALUES ($1,$2,$3) RETURNING preference_id`

	var preferenceID int64
	if err := r.pool.QueryRow(ctx, stmt, userID, gymID, maxCrowdLevel).Scan(&preferenceID); err != nil {
		return nil, mapUniqueViolation(err)
	}
	return r.Get(ctx, preferenceID)
}

// Get fetches one preference with nested gym data.
func (r *PreferenceRepository) Get(ctx context.Context, preferenceID int64) (*domain.Preference, error) {
	rows, err := r.pool.Query(ctx, preferenceQuery+` WHERE p.preference_id=$1`, preferenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	preferences, err := scanPreferences(rows)
	if err != nil {
		return nil, err
	}
	if len(preferences) == 0 {
		return nil, nil
	}
	return &preferences[0], nil
}

// Update rewrites the gym and crowd level of an existing row in place.
func (r *PreferenceRepository) Update(ctx context.Context, preferenceID, gymID int64, maxCrowdLevel float64) (*domain.Preference, error) {
	const stmt = `UPDATE user_preferences SET gym_id=$2, max_crowd_level=$3 WHERE preference_id=$1`

	tag, err := r.pool.Exec(ctx, stmt, preferenceID, gymID, maxCrowdLevel)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.Get(ctx, preferenceID)
}

// Delete removes one preference row.
func (r *PreferenceRepository) Delete(ctx context.Context, preferenceID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_preferences WHERE preference_id=$1`, preferenceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func listPreferencesByUser(ctx context.Context, pool *pgxpool.Pool, userID int64) ([]domain.Preference, error) {
	rows, err := pool.Query(ctx, preferenceQuery+` WHERE p.user_id=$1 ORDER BY p.preference_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPreferences(rows)
}

func scanPreferences(rows pgx.Rows) ([]domain.Preference, error) {
	preferences := make([]domain.Preference, 0)
	for rows.Next() {
		var pref domain.Preference
		if err := rows.Scan(&pref.ID, &pref.UserID, &pref.MaxCrowdLevel, &pref.CreatedAt,
			&pref.Gym.ID, &pref.Gym.Name, &pref.Gym.Location, &pref.Gym.Type, &pref.Gym.CreatedAt); err != nil {
			return nil, err
		}
		preferences = append(preferences, pref)
	}
	return preferences, rows.Err()
}
